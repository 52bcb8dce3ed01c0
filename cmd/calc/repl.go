package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"

	"github.com/zephyrtronium/calc/internal/report"
)

type replCmd struct {
	Prompt  string `default:"> "             help:"Prompt string."`
	History string `default:"${historyFile}" help:"History file; empty disables history." type:"path"`
	Echo    bool   `                         help:"Print parse trees along with results."`
}

// Run reads expressions until end of input or an interrupt on an empty line.
func (c *replCmd) Run(ctx context.Context, s *sys, log *slog.Logger) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.Prompt,
		HistoryFile:     c.History,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          s.stdout,
		Stderr:          s.stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	p := textPrinter{rl.Stdout()}
	for ctx.Err() == nil {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}
		if err := evalLine(p, line, c.Echo, log); err != nil {
			return err
		}
	}
	return nil
}

// evalLine evaluates one line of interactive input. Evaluation failures are
// printed, not returned; the error is only for failing to print.
func evalLine(p printer, line string, echo bool, log *slog.Logger) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	r := report.Evaluate(line, echo)
	if err := r.Err(); err != nil {
		log.Debug("evaluation failed", slog.String("expr", line), slog.Any("error", err))
	}
	return p.print(r)
}
