// Package cmd implements the hooks CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (run, tui, snapshot, serve).
package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/go-drift/hooks/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

var rootCmd = &Command{
	Name:  "hooks",
	Short: "hooks - stateful components without classes, in Go",
	Long: `hooks runs the demo components of the hooks runtime: a counter with
two effects, a reducer counter and a todo list backed by a REST API.

Use "hooks <command> --help" for more information about a command.`,
	Usage: "hooks <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// globals holds the flags accepted before the command name.
var globals struct {
	dir     string
	verbose bool
}

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return execute(os.Args[1:], os.Stdout)
}

func execute(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		printHelp(stdout)
		return nil
	}

	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(stdout)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "hooks version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--verbose":
			globals.verbose = true
		case "--dir":
			if i+1 >= len(args) {
				return fmt.Errorf("--dir requires a directory path")
			}
			globals.dir = args[i+1]
			i++
		default:
			if strings.HasPrefix(arg, "--dir=") {
				globals.dir = strings.TrimPrefix(arg, "--dir=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(stdout)
		return nil
	}

	errors.SetHandler(&errors.LogHandler{Verbose: globals.verbose})

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(stdout)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(stdout, cmd)
			return nil
		}
	}

	return runCommand(cmd, cmdArgs)
}

// runCommand runs cmd, reporting a panic to the error handler and
// returning it as an error.
func runCommand(cmd *Command, args []string) (err error) {
	defer errors.RecoverWithCallback("cmd."+cmd.Name, func(r any) {
		err = fmt.Errorf("%s: panic: %v", cmd.Name, r)
	})
	return cmd.Run(args)
}

func sortedCommands() []*Command {
	cmds := make([]*Command, 0, len(commands))
	for _, c := range commands {
		cmds = append(cmds, c)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, rootCmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", rootCmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range sortedCommands() {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w, "  --dir DIR            Project directory holding hooks.yaml (default: nearest go.mod)")
	fmt.Fprintln(w, "  --verbose            Log errors with kinds, slots and stack traces")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Demos:")
	fmt.Fprintf(w, "  %s\n", strings.Join(demoNames(), ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  hooks serve               Start the mock todo API on :3001")
	fmt.Fprintln(w, "  hooks run counter         Drive the counter demo from a prompt")
	fmt.Fprintln(w, "  hooks tui todos --log     Todo list in the terminal, logging actions")
}

func printCommandHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
}
