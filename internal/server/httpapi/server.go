// Package httpapi exposes the notes service as a JSON HTTP API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/akuzmin/notehub/internal/service"
	"github.com/akuzmin/notehub/internal/token"
)

// Pinger reports whether the backing store is reachable. Implemented by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires services into HTTP handlers.
type Server struct {
	e      *echo.Echo
	auth   service.AuthService
	notes  service.NoteService
	issuer *token.Issuer
	store  Pinger
	log    *zap.Logger
}

// New constructs the HTTP server with all routes and middleware registered.
func New(auth service.AuthService, notes service.NoteService, issuer *token.Issuer, store Pinger, log *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{e: e, auth: auth, notes: notes, issuer: issuer, store: store, log: log}

	e.Use(s.recoverPanics, s.logRequests)

	e.GET("/healthz", s.health)

	a := e.Group("/auth")
	a.POST("/register", s.register)
	a.POST("/login", s.login)
	a.GET("/me", s.me, s.requireAuth)

	n := e.Group("/notes", s.requireAuth)
	n.GET("", s.listNotes)
	n.POST("", s.createNote)
	n.PUT("/:id", s.updateNote)
	n.DELETE("/:id", s.deleteNote)
	n.PATCH("/:id/pin", s.togglePin)

	return s
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Start begins serving on addr and blocks until Shutdown or failure.
func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
