package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/hooks/pkg/errors"
	"github.com/go-drift/hooks/pkg/terminal"
)

func init() {
	RegisterCommand(&Command{
		Name:  "tui",
		Short: "Run a demo in a full-screen terminal UI",
		Long: `Mount a demo component on a full-screen terminal.

Keys:
  tab, down, j        Focus the next button or checkbox
  shift-tab, up, k    Focus the previous one
  enter, space        Activate the focused node
  q, esc, ctrl-c      Quit

Flags:
  --log             Log store actions to stderr (shown after exit)
  --persist         Send todo edits to the API
  --policy NAME     Setter policy: sync (default) or batch
  --sound           Click on activation (overrides tui.sound)
  --no-sound        Stay silent (overrides tui.sound)
  --elements        Show element headers such as <ul.todo-list>`,
		Usage: "hooks tui [counter|reducer|todos] [--log] [--persist] [--policy sync|batch] [--sound|--no-sound] [--elements]",
		Run:   runTUI,
	})
}

type tuiOptions struct {
	sound    *bool
	elements bool
}

func parseTUIArgs(args []string) (tuiOptions, error) {
	var opts tuiOptions
	for _, arg := range args {
		switch arg {
		case "--sound", "--no-sound":
			on := arg == "--sound"
			opts.sound = &on
		case "--elements":
			opts.elements = true
		default:
			return opts, fmt.Errorf("unknown flag %q", arg)
		}
	}
	return opts, nil
}

func runTUI(args []string) error {
	demoOpts, rest, err := parseDemoArgs(args)
	if err != nil {
		return err
	}
	demoOpts.async = true
	opts, err := parseTUIArgs(rest)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	sound := cfg.Sound
	if opts.sound != nil {
		sound = *opts.sound
	}

	// The action log is held back until the screen is gone.
	var log bytes.Buffer
	demoOpts.logOut = &log
	defer func() { _, _ = log.WriteTo(os.Stderr) }()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	// Error reports would draw over the screen.
	errors.SetHandler(&errors.LogHandler{Out: io.Discard})
	defer errors.SetHandler(&errors.LogHandler{Verbose: globals.verbose})

	r := terminal.NewRenderer(screen)
	r.ShowElements = opts.elements

	if sound {
		chime := terminal.NewChime()
		// Audio is optional: without a device the UI stays silent.
		if err := chime.Init(); err == nil {
			r.SetSounder(chime)
			defer chime.Close()
		}
	}

	// The counter effects print to out; keep them off the screen too.
	s, err := newSession(cfg, demoOpts, r, io.Discard)
	if err != nil {
		return err
	}
	defer s.Close()
	r.Title = fmt.Sprintf("%s: %s (%s policy)", cfg.AppName, demoOpts.name, s.root.Policy())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return r.Run(ctx, s.root, s.dispatcher)
}
