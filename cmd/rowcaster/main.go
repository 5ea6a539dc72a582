// Package main provides the CLI entrypoint for rowcaster.
//
// rowcaster compiles a YAML mapping of Go structs to SQL tables into
// generated row codecs:
//   - gen      writes the *_sqlrow.go files next to the mapped types
//   - check    resolves the mapping and reports configuration problems
//   - conform  compares mapped columns with the reference schema files
//   - dump     prints the resolved plan
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dekarrin/jellog"
	"github.com/spf13/pflag"

	"rowcaster/internal/logging"
)

const (
	exitSuccess = iota
	exitError
	exitUsage
)

var errUsage = errors.New("usage error")

// options holds the flags shared by every command.
type options struct {
	Mapping string
	Pkg     string
	Out     string
	DryRun  bool
	Watch   bool
	Verbose bool
	LogFile string
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, env *env) error
}

var commands = []command{
	{name: "gen", usage: "generate row codecs for the mapped types", run: runGen},
	{name: "check", usage: "resolve the mapping and report problems", run: runCheck},
	{name: "conform", usage: "compare mapped columns with the reference schemas", run: runConform},
	{name: "dump", usage: "print the resolved plan", run: runDump},
}

// env is what a command runs with.
type env struct {
	opts   options
	log    jellog.Logger[string]
	stdout io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitUsage
	}

	cmd, ok := findCommand(args[0])
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		printUsage(stderr)

		return exitUsage
	}

	opts, err := parseFlags(cmd.name, args[1:], stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return exitSuccess
	}

	if err != nil {
		return exitUsage
	}

	logger, err := logging.New(opts.Verbose, opts.LogFile)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %s\n", err.Error())
		return exitError
	}

	err = cmd.run(ctx, &env{opts: opts, log: logger, stdout: stdout})
	if errors.Is(err, errUsage) {
		fmt.Fprintf(stderr, "ERROR: %s\n", err.Error())
		return exitUsage
	}

	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %s\n", err.Error())
		return exitError
	}

	return exitSuccess
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}

	return command{}, false
}

func parseFlags(name string, args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.Mapping, "mapping", "m", "rowcaster.yaml", "Path to the mapping file")
	fs.StringVar(&opts.Pkg, "pkg", "", "Package pattern to load, overriding the mapping file")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "Log debug messages")
	fs.StringVar(&opts.LogFile, "log-file", "", "Also write a trace log to this file")

	if name == "gen" {
		fs.StringVar(&opts.Out, "out", "", "Directory for unformatted debug output when gofmt rejects a file (default: the mapped package directory)")
		fs.BoolVar(&opts.DryRun, "dry-run", false, "Print generated files instead of writing them")
		fs.BoolVar(&opts.Watch, "watch", false, "Regenerate whenever the mapping or package sources change")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		return opts, errUsage
	}

	if opts.Watch && opts.DryRun {
		fmt.Fprintln(stderr, "--watch and --dry-run cannot be combined")
		return opts, errUsage
	}

	return opts, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: rowcaster <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")

	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.usage)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run rowcaster <command> --help for the flags of a command.")
}
