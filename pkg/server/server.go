// Package server serves graphs to the viewer over HTTP.
//
// The API is mounted at /v1:
//
//	GET  /v1/hello          liveness probe
//	GET  /v1/graph          the current graph (?name= selects a stored graph)
//	POST /v1/document/show  {"id": N}: a node was clicked in a viewer
//	GET  /v1/events         recent node-open events, oldest first
//
// Graphs come from a [store.Store]. Node-open requests are recorded as
// [OpenEvent] values and handed to a [ShowFunc], which decides what opening
// a node means (launch an editor, print a path, ...).
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/spiderweb/pkg/graph"
	"github.com/matzehuels/spiderweb/pkg/store"
)

const (
	// DefaultAddr matches the port the viewer expects by default.
	DefaultAddr = "127.0.0.1:7462"

	defaultEventLimit = 64
	shutdownTimeout   = 5 * time.Second
)

// OpenEvent records one node-open request.
type OpenEvent struct {
	ID     string     `json:"id"`
	NodeID int        `json:"node_id"`
	Name   string     `json:"name"`
	Kind   graph.Kind `json:"kind"`
	Graph  string     `json:"graph"`
	At     time.Time  `json:"at"`
}

// ShowFunc opens the document behind a clicked node. Errors are logged and
// reported to the caller but the event stays recorded.
type ShowFunc func(ctx context.Context, ev OpenEvent) error

// Server is the graph HTTP server.
type Server struct {
	store  store.Store
	name   string
	logger *log.Logger
	show   ShowFunc

	mu     sync.Mutex
	events []OpenEvent
	limit  int
}

// Option configures a Server.
type Option func(*Server)

// WithGraphName selects the graph served when a request names none.
func WithGraphName(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets the request and event logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithShowFunc sets the node-open handler.
func WithShowFunc(fn ShowFunc) Option {
	return func(s *Server) { s.show = fn }
}

// WithEventLimit sets how many open events are kept for GET /events.
func WithEventLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.limit = n
		}
	}
}

// New creates a server backed by st.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:  st,
		name:   store.DefaultName,
		logger: log.Default(),
		limit:  defaultEventLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the root router with the API mounted at /v1.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	v1 := chi.NewRouter()
	v1.Get("/hello", s.handleHello)
	v1.Get("/graph", s.handleGraph)
	v1.Post("/document/show", s.handleShow)
	v1.Get("/events", s.handleEvents)
	r.Mount("/v1", v1)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("graph server listening", "addr", addr, "graph", s.name)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Events returns a copy of the recorded open events, oldest first.
func (s *Server) Events() []OpenEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]OpenEvent(nil), s.events...)
}

func (s *Server) record(ev OpenEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) >= s.limit {
		// drop oldest
		copy(s.events, s.events[1:])
		s.events = s.events[:len(s.events)-1]
	}
	s.events = append(s.events, ev)
}
