// Command calc evaluates arithmetic expressions.
//
// With no subcommand, calc evaluates each argument as an expression and
// prints its value. Without arguments it reads an expression from standard
// input, or one per line with -n. The repl subcommand starts an interactive
// prompt, and serve exposes the evaluator over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
	"github.com/zephyrtronium/calc/internal/logging"
)

const description = "Evaluate arithmetic expressions over 64-bit integers and floats."

// Exit statuses.
const (
	exitOK    = 0
	exitError = 1
	exitParse = 2
	exitValue = 3
)

// sys holds the process surroundings the commands use.
type sys struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	exit   func(int)
	// configs are the config files to consult, in order.
	configs []string
}

func main() {
	s := &sys{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		exit:    os.Exit,
		configs: []string{config.DefaultPath()},
	}
	os.Exit(run(context.Background(), s, os.Args[1:]))
}

// run parses args, runs the selected command, and returns the exit status.
func run(ctx context.Context, s *sys, args []string) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name(config.Name),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Exit(s.exit),
		kong.Writers(s.stdout, s.stderr),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Profile.group()}),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true}),
		kong.Configuration(config.Load, s.configs...),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(s),
		cli.vars(),
	)
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		return exitError
	}
	ktx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%v", err)
		var perr *kong.ParseError
		if errors.As(err, &perr) {
			_ = perr.Context.PrintUsage(true)
		}
		return exitError
	}
	log, err := logging.New(s.stderr, cli.Log.options())
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		return exitError
	}
	ktx.Bind(log)
	defer cli.Profile.start(log)()

	err = ktx.Run()
	if err == nil {
		return exitOK
	}
	var r reported
	if !errors.As(err, &r) {
		log.Error("command failed", slog.String("command", ktx.Command()), slog.Any("error", err))
	}
	return exitCode(err)
}

// reported wraps an error that the command has already shown to the user.
type reported struct {
	err error
}

func (r reported) Error() string { return r.err.Error() }
func (r reported) Unwrap() error { return r.err }

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case calc.IsParseError(err):
		return exitParse
	case calc.IsValueError(err):
		return exitValue
	default:
		return exitError
	}
}
