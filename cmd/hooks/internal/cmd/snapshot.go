package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-drift/hooks/pkg/rendering"
	"github.com/go-drift/hooks/pkg/view"
)

func init() {
	RegisterCommand(&Command{
		Name:  "snapshot",
		Short: "Render a demo to a PNG image",
		Long: `Mount a demo, optionally tap buttons by label, and write the final
tree as a PNG image. The todo list is loaded before the image is taken.

Flags:
  -o, --out FILE    Output file (default: <app>-<demo>.png in the project root)
  --tap LABEL       Activate the node labelled LABEL; may be repeated
  --text            Also print the tree outline to stdout
  --width PX        Image width in pixels (default: 320)
  --policy NAME     Setter policy: sync (default) or batch`,
		Usage: "hooks snapshot [counter|reducer|todos] [-o FILE] [--tap LABEL]... [--text] [--width PX]",
		Run:   runSnapshot,
	})
}

type snapshotOptions struct {
	out   string
	taps  []string
	text  bool
	width int
}

func parseSnapshotArgs(args []string) (snapshotOptions, error) {
	var opts snapshotOptions
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-o", "--out", "--tap", "--width":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a value", arg)
			}
			value := args[i+1]
			i++
			switch arg {
			case "--tap":
				opts.taps = append(opts.taps, value)
			case "--width":
				width, err := strconv.Atoi(value)
				if err != nil || width <= 0 {
					return opts, fmt.Errorf("--width must be a positive number (got %q)", value)
				}
				opts.width = width
			default:
				opts.out = value
			}
		case "--text":
			opts.text = true
		default:
			return opts, fmt.Errorf("unknown flag %q", arg)
		}
	}
	return opts, nil
}

func runSnapshot(args []string) error {
	demoOpts, rest, err := parseDemoArgs(args)
	if err != nil {
		return err
	}
	opts, err := parseSnapshotArgs(rest)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if opts.out == "" {
		opts.out = filepath.Join(cfg.Root, fmt.Sprintf("%s-%s.png", cfg.AppName, demoOpts.name))
	}

	img := &rendering.ImageRenderer{Width: opts.width}
	s, err := newSession(cfg, demoOpts, img, io.Discard)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.root.Render(); err != nil {
		return err
	}
	for _, label := range opts.taps {
		if err := tap(s, label); err != nil {
			return err
		}
	}

	tree := s.root.Tree()
	if opts.text {
		fmt.Print(rendering.Format(tree, "  "))
	}
	if err := writePNG(img, tree, opts.out); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", opts.out)
	return nil
}

// tap activates the first interactive node labelled label and flushes.
func tap(s *session, label string) error {
	for _, n := range view.Interactive(s.root.Tree()) {
		if strings.TrimSpace(n.Label()) != label {
			continue
		}
		if err := view.Activate(n); err != nil {
			return fmt.Errorf("tap %q: %w", label, err)
		}
		return s.root.Flush()
	}
	return fmt.Errorf("tap %q: no button or checkbox with that label", label)
}

func writePNG(img *rendering.ImageRenderer, tree view.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	img.Out = f
	err = img.RenderTree(tree)
	img.Out = nil
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
