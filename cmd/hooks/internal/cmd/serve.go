package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-drift/hooks/pkg/todos"
)

func init() {
	RegisterCommand(&Command{
		Name:  "serve",
		Short: "Start the mock todo REST API",
		Long: `Serve the todo REST API the todos demo loads from.

Routes:
  GET    /todos          List todos
  POST   /todos          Create a todo
  GET    /todos/{id}     Get one todo
  PATCH  /todos/{id}     Update title or done
  PUT    /todos/{id}     Replace a todo
  DELETE /todos/{id}     Delete a todo

The todos are read from the db file ({"todos": [...]}, JSON or YAML by
extension) and written back after every change. A missing file starts
empty.

Flags:
  --addr ADDR   Listen address (default: server.addr or :3001)
  --db FILE     Fixture file (default: server.db or db.json)`,
		Usage: "hooks serve [--addr ADDR] [--db FILE]",
		Run:   runServe,
	})
}

type serveOptions struct {
	addr string
	db   string
}

func parseServeArgs(args []string) (serveOptions, error) {
	var opts serveOptions
	for i := 0; i < len(args); i++ {
		arg := args[i]
		var target *string
		switch {
		case arg == "--addr":
			target = &opts.addr
		case arg == "--db":
			target = &opts.db
		case strings.HasPrefix(arg, "--addr="):
			opts.addr = strings.TrimPrefix(arg, "--addr=")
			continue
		case strings.HasPrefix(arg, "--db="):
			opts.db = strings.TrimPrefix(arg, "--db=")
			continue
		default:
			return opts, fmt.Errorf("unknown flag %q", arg)
		}
		if i+1 >= len(args) {
			return opts, fmt.Errorf("%s requires a value", arg)
		}
		*target = args[i+1]
		i++
	}
	return opts, nil
}

func runServe(args []string) error {
	opts, err := parseServeArgs(args)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if opts.addr == "" {
		opts.addr = cfg.ServerAddr
	}
	if opts.db == "" {
		opts.db = cfg.ServerDB
	}

	srv, err := todos.OpenServer(opts.db)
	if err != nil {
		return err
	}
	addr, err := srv.Start(opts.addr)
	if err != nil {
		return err
	}
	fmt.Printf("Serving %d todos from %s on http://%s/todos\n", len(srv.Todos()), opts.db, addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	fmt.Println("Shutting down")
	return srv.Shutdown(shutdownCtx)
}
