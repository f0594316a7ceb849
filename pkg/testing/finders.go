package testing

import (
	"fmt"

	"github.com/go-drift/hooks/pkg/view"
)

// Finder locates nodes in a recorded view tree.
type Finder = view.Matcher

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []view.Node
	finder Finder
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() view.Node {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.describe()))
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) view.Node {
	if index < 0 || index >= len(r.nodes) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.nodes), r.describe()))
	}
	return r.nodes[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []view.Node {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

// Texts returns the label of every match.
func (r FinderResult) Texts() []string {
	texts := make([]string, len(r.nodes))
	for i, n := range r.nodes {
		texts[i] = n.Label()
	}
	return texts
}

// ByText matches nodes whose own text equals text.
func ByText(text string) Finder { return view.ByText(text) }

// ByTag matches nodes with the given tag.
func ByTag(tag string) Finder { return view.ByTag(tag) }

// ByClass matches nodes carrying class.
func ByClass(class string) Finder { return view.ByClass(class) }

// ByKey matches nodes whose key equals key.
func ByKey(key any) Finder { return view.ByKey(key) }

type predicateFinder struct {
	match func(view.Node) bool
	desc  string
}

func (f predicateFinder) Match(n view.Node) bool { return f.match(n) }
func (f predicateFinder) Description() string    { return f.desc }

// ByPredicate matches nodes for which match returns true.
func ByPredicate(desc string, match func(view.Node) bool) Finder {
	return predicateFinder{match: match, desc: fmt.Sprintf("ByPredicate(%s)", desc)}
}

// Within evaluates finder inside the subtrees of every match.
func (r FinderResult) Within(finder Finder) FinderResult {
	var nodes []view.Node
	for _, n := range r.nodes {
		for _, c := range n.Children {
			nodes = append(nodes, view.FindAll(c, finder)...)
		}
	}
	desc := fmt.Sprintf("%s within %s", finder.Description(), r.describe())
	return FinderResult{nodes: nodes, finder: predicateFinder{match: finder.Match, desc: desc}}
}
