package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/zephyrtronium/calc/internal/report"
)

type evalCmd struct {
	Exprs  []string `arg:"" help:"Expressions to evaluate."                                optional:""`
	In     string   `       help:"Read expressions from a file, or - for standard input." short:"i"`
	Lines  bool     `       help:"Treat each input line as a separate expression."         short:"n"`
	Echo   bool     `       help:"Print parse trees along with results."`
	Output string   `       help:"Result format (${enum})."                                 short:"o" default:"text" enum:"${outputFormats}"`
}

// Run evaluates every expression, printing each result. The first failure
// decides the exit status, but evaluation continues past it.
func (e *evalCmd) Run(ctx context.Context, s *sys, log *slog.Logger) error {
	srcs, err := e.sources(s.stdin)
	if err != nil {
		return err
	}
	p, err := newPrinter(e.Output, s.stdout)
	if err != nil {
		return err
	}
	var first error
	for _, src := range srcs {
		if err := ctx.Err(); err != nil {
			return err
		}
		r := report.Evaluate(src, e.Echo)
		if err := p.print(r); err != nil {
			return err
		}
		if err := r.Err(); err != nil {
			log.Debug("evaluation failed", slog.String("expr", src), slog.Any("error", err))
			if first == nil {
				first = err
			}
		}
	}
	if first != nil {
		return reported{first}
	}
	return nil
}

// sources collects the expressions to evaluate: those read from the input
// file, then the arguments. Standard input is read when there are no
// arguments and no input file.
func (e *evalCmd) sources(stdin io.Reader) ([]string, error) {
	var srcs []string
	switch {
	case e.In == "-", e.In == "" && len(e.Exprs) == 0:
		s, err := e.read(stdin)
		if err != nil {
			return nil, err
		}
		srcs = s
	case e.In != "":
		f, err := os.Open(e.In)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		s, err := e.read(f)
		if err != nil {
			return nil, err
		}
		srcs = s
	}
	return append(srcs, e.Exprs...), nil
}

// read splits input into expressions. Blank input holds none.
func (e *evalCmd) read(r io.Reader) ([]string, error) {
	if !e.Lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		src := strings.TrimSpace(string(b))
		if src == "" {
			return nil, nil
		}
		return []string{src}, nil
	}
	var srcs []string
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, math.MaxInt)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		srcs = append(srcs, line)
	}
	return srcs, sc.Err()
}
