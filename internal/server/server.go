// Package server exposes the calculator over HTTP.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/zephyrtronium/calc/internal/report"
)

// Options configures a Server.
type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// BodyLimit is the maximum request body size in bytes.
	BodyLimit int
	// BatchLimit is the maximum number of expressions in one batch request.
	BatchLimit int
}

// Server is the HTTP API for evaluating expressions.
type Server struct {
	app  *fiber.App
	log  *slog.Logger
	opts Options
}

// evalRequest is the body of POST /v1/eval.
type evalRequest struct {
	Expr string `json:"expr"`
	Tree bool   `json:"tree"`
}

// batchRequest is the body of POST /v1/batch.
type batchRequest struct {
	Exprs []string `json:"exprs"`
	Tree  bool     `json:"tree"`
}

type batchResponse struct {
	Results []report.Result `json:"results"`
}

type errorResponse struct {
	Error report.Error `json:"error"`
}

// New creates a new API server.
func New(log *slog.Logger, opts Options) *Server {
	if opts.BatchLimit <= 0 {
		opts.BatchLimit = 100
	}
	srv := &Server{log: log, opts: opts}
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		BodyLimit:             opts.BodyLimit,
		ErrorHandler:          srv.handleError,
	})
	app.Use(srv.requestID)
	app.Get("/healthz", srv.healthz)
	app.Get("/v1/eval", srv.evalQuery)
	app.Post("/v1/eval", srv.evalBody)
	app.Post("/v1/batch", srv.batch)
	srv.app = app
	return srv
}

// Listen starts the HTTP server on the given address.
func (s *Server) Listen(addr string) error {
	s.log.Info("listening", slog.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server, waiting for open requests until
// ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// requestID tags each request with an ID for logs and the response header.
func (s *Server) requestID(c *fiber.Ctx) error {
	id := uuid.NewString()
	c.Locals("request-id", id)
	c.Set("X-Request-Id", id)
	return c.Next()
}

func (s *Server) logger(c *fiber.Ctx) *slog.Logger {
	id, _ := c.Locals("request-id").(string)
	return s.log.With(slog.String("request_id", id))
}

func (s *Server) healthz(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func (s *Server) evalQuery(c *fiber.Ctx) error {
	expr := c.Query("expr")
	tree := c.QueryBool("tree")
	return s.respond(c, report.Evaluate(expr, tree))
}

func (s *Server) evalBody(c *fiber.Ctx) error {
	var req evalRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	return s.respond(c, report.Evaluate(req.Expr, req.Tree))
}

func (s *Server) batch(c *fiber.Ctx) error {
	var req batchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if len(req.Exprs) > s.opts.BatchLimit {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "too many expressions in batch")
	}
	resp := batchResponse{Results: make([]report.Result, len(req.Exprs))}
	failed := 0
	for i, expr := range req.Exprs {
		resp.Results[i] = report.Evaluate(expr, req.Tree)
		if resp.Results[i].Error != nil {
			failed++
		}
	}
	s.logger(c).Debug("batch evaluated",
		slog.Int("count", len(req.Exprs)),
		slog.Int("failed", failed),
	)
	return c.JSON(resp)
}

// respond writes one evaluation result. Parse errors are the client's fault
// and give 400; value errors are well-formed requests without an answer and
// give 422.
func (s *Server) respond(c *fiber.Ctx, r report.Result) error {
	log := s.logger(c).With(slog.String("expr", r.Expr))
	if r.Error == nil {
		log.Debug("evaluated", slog.String("kind", r.Kind), slog.String("value", r.Value))
		return c.JSON(r)
	}
	log.Warn("evaluation failed", slog.String("kind", r.Error.Kind), slog.String("error", r.Error.Message))
	status := fiber.StatusInternalServerError
	switch r.Error.Kind {
	case report.KindParse:
		status = fiber.StatusBadRequest
	case report.KindValue:
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(r)
}

// handleError renders errors returned from handlers in the API's error shape.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	s.logger(c).Warn("request failed",
		slog.String("path", c.Path()),
		slog.Int("status", code),
		slog.Any("error", err),
	)
	return c.Status(code).JSON(errorResponse{Error: report.Error{Kind: "request", Message: err.Error()}})
}
