package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zephyrtronium/calc/internal/server"
)

type serveCmd struct {
	Addr            string        `default:":8080"   help:"Address to listen on."`
	ReadTimeout     time.Duration `default:"10s"     help:"Maximum time to read a request."`
	WriteTimeout    time.Duration `default:"10s"     help:"Maximum time to write a response."`
	BodyLimit       int           `default:"1048576" help:"Maximum request body size in bytes."`
	BatchLimit      int           `default:"100"     help:"Maximum number of expressions in one batch request."`
	ShutdownTimeout time.Duration `default:"5s"      help:"Time to wait for open requests on shutdown."`
}

// Run serves until the listener fails or the process is interrupted.
func (c *serveCmd) Run(ctx context.Context, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(log, server.Options{
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
		BodyLimit:    c.BodyLimit,
		BatchLimit:   c.BatchLimit,
	})
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Listen(c.Addr)
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", slog.Duration("timeout", c.ShutdownTimeout))
	sctx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	return <-errc
}
