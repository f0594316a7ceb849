package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-drift/hooks/cmd/hooks/internal/config"
	"github.com/go-drift/hooks/pkg/app"
	"github.com/go-drift/hooks/pkg/core"
	"github.com/go-drift/hooks/pkg/store"
	"github.com/go-drift/hooks/pkg/todos"
)

const defaultDemo = "todos"

// demo builds a component. Demos that talk to the API receive the
// session's store and loader.
type demo func(s *session) core.Component

var demos = map[string]demo{
	"counter": func(s *session) core.Component { return app.Counter(s.out) },
	"reducer": func(*session) core.Component { return app.ReducerCounter },
	"todos": func(s *session) core.Component {
		return app.TodoList(s.store, s.load)
	},
}

func demoNames() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type demoOptions struct {
	name   string
	log    bool
	policy string
	// async runs API requests in the background and delivers results
	// through the session dispatcher.
	async bool
	// persist mirrors todo edits to the API.
	persist bool
	// logOut receives the action log. Nil means os.Stderr.
	logOut io.Writer
}

// parseDemoArgs extracts the demo name and the flags shared by the demo
// commands. Unknown arguments are returned for the caller.
func parseDemoArgs(args []string) (demoOptions, []string, error) {
	opts := demoOptions{name: defaultDemo}
	var rest []string
	named := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--log":
			opts.log = true
		case arg == "--persist":
			opts.persist = true
		case arg == "--policy":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--policy requires sync or batch")
			}
			opts.policy = args[i+1]
			i++
		case strings.HasPrefix(arg, "--policy="):
			opts.policy = strings.TrimPrefix(arg, "--policy=")
		case !strings.HasPrefix(arg, "-") && !named:
			if _, ok := demos[arg]; !ok {
				return opts, nil, fmt.Errorf("unknown demo %q (use %s)", arg, strings.Join(demoNames(), ", "))
			}
			opts.name = arg
			named = true
		default:
			rest = append(rest, arg)
		}
	}
	return opts, rest, nil
}

// session wires one demo: configuration, todo store, REST client, loader,
// dispatcher and render root.
type session struct {
	cfg        *config.Resolved
	out        io.Writer
	store      *store.Store[todos.RootState]
	client     *todos.Client
	load       *todos.LoadTodos
	dispatcher *core.Dispatcher
	root       *core.Root
}

// resolveConfig loads hooks.yaml from --dir or the project root.
func resolveConfig() (*config.Resolved, error) {
	dir := globals.dir
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return nil, err
		}
		dir = root
	}
	return config.Resolve(dir)
}

// newSession builds the demo named in opts and mounts it on a root that
// renders to renderer. Nothing is rendered yet.
func newSession(cfg *config.Resolved, opts demoOptions, renderer core.Renderer, out io.Writer) (*session, error) {
	build, ok := demos[opts.name]
	if !ok {
		return nil, fmt.Errorf("unknown demo %q", opts.name)
	}

	rootOpts := cfg.RootOptions()
	if opts.policy != "" {
		p, err := core.ParsePolicy(opts.policy)
		if err != nil {
			return nil, err
		}
		rootOpts = append(rootOpts, core.WithPolicy(p))
	}

	client := todos.NewClient(cfg.BaseURL, cfg.Timeout)
	var mw []store.Middleware[todos.RootState]
	if opts.log {
		logOut := opts.logOut
		if logOut == nil {
			logOut = os.Stderr
		}
		mw = append(mw, store.Logger[todos.RootState](store.LoggerOptions{
			Out:       logOut,
			Collapsed: !globals.verbose,
		}))
	}
	if opts.persist {
		mw = append(mw, todos.Persist(client, opts.async))
	}

	s := &session{
		cfg:        cfg,
		out:        out,
		store:      todos.NewStore(mw...),
		client:     client,
		dispatcher: core.NewDispatcher(),
	}
	var scheduler store.Scheduler
	if opts.async {
		scheduler = s.dispatcher.Post
	}
	s.load = todos.NewLoadTodos(s.client, scheduler)
	s.root = core.NewRoot(build(s), renderer, rootOpts...)
	return s, nil
}

// sync runs the queued background callbacks and flushes the root.
func (s *session) sync() error {
	if s.dispatcher.Drain() == 0 && !s.root.NeedsRender() {
		return nil
	}
	return s.root.Flush()
}

// settle waits up to timeout for background work to be posted, then syncs.
func (s *session) settle(timeout time.Duration) error {
	if s.dispatcher.Pending() == 0 {
		select {
		case <-s.dispatcher.Ready():
		case <-time.After(timeout):
		}
	}
	return s.sync()
}

// Close disposes the root and stops the dispatcher.
func (s *session) Close() {
	s.root.Dispose()
	s.dispatcher.Close()
}
