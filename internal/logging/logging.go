// Package logging builds the structured logger shared by the calc front ends.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Formats lists the accepted values for Options.Format.
const Formats = "text,json"

// Levels lists the accepted values for Options.Level.
const Levels = "debug,info,warn,error"

// Options configures a logger.
type Options struct {
	// Level is the minimum level name, e.g. "info".
	Level string
	// Format is "text" or "json".
	Format string
	// Journal additionally sends records to the systemd journal.
	Journal bool
}

// New creates a logger writing to w and, if requested, to the systemd
// journal. If the journal is unavailable, the logger warns on w and carries
// on without it. That fails only if the warning itself cannot be written.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	level := slog.LevelInfo
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}
	ho := &slog.HandlerOptions{Level: level}
	var local slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		local = slog.NewTextHandler(w, ho)
	case "json":
		local = slog.NewJSONHandler(w, ho)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
	handlers := []slog.Handler{local}
	if opts.Journal {
		j, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = journalKey(a.Key)
				return a
			},
		})
		if err != nil {
			if err := journalUnavailable(local, err); err != nil {
				return nil, err
			}
		} else {
			handlers = append(handlers, j)
		}
	}
	return slog.New(slogmulti.Fanout(handlers...)), nil
}

// journalUnavailable warns on h that the journal could not be opened. If even
// the warning cannot be written, the result holds both errors.
func journalUnavailable(h slog.Handler, err error) error {
	r := slog.NewRecord(time.Now(), slog.LevelWarn, "systemd journal unavailable", 0)
	r.AddAttrs(slog.Any("error", err))
	if herr := h.Handle(context.Background(), r); herr != nil {
		return fmt.Errorf("systemd journal: %w", errors.Join(err, herr))
	}
	return nil
}

// journalKey converts an attribute key to a valid journal field name.
func journalKey(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			return r
		case 'a' <= r && r <= 'z':
			return r - 'a' + 'A'
		default:
			return '_'
		}
	}, s)
}

// Discard is a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
