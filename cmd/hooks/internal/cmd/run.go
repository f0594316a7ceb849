package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/go-drift/hooks/pkg/rendering"
	"github.com/go-drift/hooks/pkg/view"
)

const (
	historyFile = ".hooks_history"
	prompt      = "hooks> "
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Drive a demo from an interactive prompt",
		Long: `Mount a demo component and drive it from a prompt.

After every render the tree is printed as an outline followed by a
numbered list of its buttons and checkboxes.

Prompt commands:
  <n>            Activate the n-th interactive node
  <label>        Activate the first node whose label matches
  :tree          Print the current tree again
  :wait          Wait for background requests and render their results
  :quit          Exit (Ctrl-D works too)

Flags:
  --log             Log store actions to stderr
  --persist         Send todo edits to the API
  --policy NAME     Setter policy: sync (default) or batch
  --sync            Load todos inline instead of in the background`,
		Usage: "hooks run [counter|reducer|todos] [--log] [--persist] [--policy sync|batch] [--sync]",
		Run:   runRun,
	})
}

func runRun(args []string) error {
	opts, rest, err := parseDemoArgs(args)
	if err != nil {
		return err
	}
	opts.async = true
	for _, arg := range rest {
		switch arg {
		case "--sync":
			opts.async = false
		default:
			return fmt.Errorf("unknown flag %q", arg)
		}
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	r := &repl{out: os.Stdout}
	s, err := newSession(cfg, opts, r, os.Stdout)
	if err != nil {
		return err
	}
	defer s.Close()
	r.session = s

	fmt.Printf("%s: %s demo (%s policy)\n", cfg.AppName, opts.name, s.root.Policy())
	if err := s.root.Render(); err != nil {
		return err
	}
	if opts.async && opts.name == "todos" {
		if err := s.settle(cfg.Timeout); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		if err := s.sync(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		line, err := ln.Prompt(prompt)
		if stderrors.Is(err, io.EOF) || stderrors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if r.exec(line) {
			return nil
		}
	}
}

// repl renders trees as numbered outlines and executes prompt commands.
type repl struct {
	out     io.Writer
	session *session
	targets []view.Node
}

// RenderTree prints tree and remembers its interactive nodes.
func (r *repl) RenderTree(tree view.Node) error {
	r.targets = view.Interactive(tree)
	r.print(tree)
	return nil
}

func (r *repl) print(tree view.Node) {
	fmt.Fprint(r.out, rendering.Format(tree, "  "))
	for i, n := range r.targets {
		fmt.Fprintf(r.out, "  %d) %s\n", i+1, targetText(n))
	}
}

// targetText is the outline line of an interactive node. Nodes without
// tag, text or children lay out to nothing and print as a bare button.
func targetText(n view.Node) string {
	if lines := rendering.Layout(n); len(lines) > 0 {
		return lines[0].String()
	}
	return "[]"
}

// exec runs one prompt line and reports whether the user asked to quit.
func (r *repl) exec(line string) (quit bool) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case ":quit", ":q", ":exit":
		return true
	case ":tree":
		r.print(r.session.root.Tree())
		return false
	case ":wait":
		if err := r.session.settle(r.session.cfg.Timeout); err != nil {
			fmt.Fprintln(r.out, "error:", err)
		}
		return false
	}
	if strings.HasPrefix(line, ":") {
		fmt.Fprintln(r.out, "unknown command. Type :quit to exit.")
		return false
	}

	target, ok := r.lookup(line)
	if !ok {
		fmt.Fprintf(r.out, "no button or checkbox %q\n", line)
		return false
	}
	if err := view.Activate(target); err != nil {
		fmt.Fprintln(r.out, "error:", err)
	}
	return false
}

// lookup resolves a 1-based index or a label to an interactive node.
func (r *repl) lookup(arg string) (view.Node, bool) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(r.targets) {
			return view.Node{}, false
		}
		return r.targets[n-1], true
	}
	for _, t := range r.targets {
		if t.Label() == arg {
			return t, true
		}
	}
	return view.Node{}, false
}
