package server

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Options configures the Server.
type Options struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
}

// Server wires the Handler's routes into an echo instance.
type Server struct {
	echo *echo.Echo
	addr string
}

// New constructs the HTTP server around h.
func New(h *Handler, optFns ...func(o *Options)) *Server {
	opts := Options{Addr: ":8080"}
	for _, fn := range optFns {
		fn(&opts)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.POST("/v1/agents/:agent_kind/runs", h.CreateRun)
	e.GET("/v1/threads/:thread_id/messages", h.GetThreadMessages)
	e.GET("/v1/threads/:thread_id/artifacts", h.GetThreadArtifacts)
	e.GET("/healthz", h.Health)

	return &Server{echo: e, addr: opts.Addr}
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error { return s.echo.Start(s.addr) }

// Shutdown gracefully stops the server, waiting for in-flight runs.
func (s *Server) Shutdown(ctx context.Context) error { return s.echo.Shutdown(ctx) }

// Echo exposes the underlying instance for tests.
func (s *Server) Echo() *echo.Echo { return s.echo }
