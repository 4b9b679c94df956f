// Package status serves live run statistics over HTTP while a batch runs.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Camier/MinerOUI/internal/logging"
	"github.com/Camier/MinerOUI/internal/stats"
	"github.com/go-chi/chi/v5"
)

// Source supplies the live numbers; *pipeline.Pipeline implements it.
type Source interface {
	Snapshot() stats.RunStatistics
	InFlight() int
}

// Report is the /stats payload: the persisted summary shape plus live
// progress fields.
type Report struct {
	stats.RunStatistics
	InFlight  int `json:"in_flight"`
	Remaining int `json:"remaining"`
}

// NewRouter returns the chi router with GET /health and GET /stats.
func NewRouter(src Source) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"service":"minerbatch"}`))
	})

	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		snap := src.Snapshot()
		rep := Report{
			RunStatistics: snap,
			InFlight:      src.InFlight(),
			Remaining:     max(snap.TotalFiles-snap.Done(), 0),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(rep); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	return r
}

// Server is a running status endpoint.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	log        *logging.Logger
	done       chan struct{}
}

// Start binds addr and serves in the background. Bind errors are returned
// here rather than surfacing later from the serve goroutine.
func Start(addr string, src Source, log *logging.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("status endpoint: %w", err)
	}
	s := &Server{
		httpServer: &http.Server{
			Handler:      NewRouter(src),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		listener: ln,
		log:      log,
		done:     make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Status endpoint stopped: %v", err)
		}
	}()
	log.Info("Status endpoint: http://%s/stats", ln.Addr())
	return s, nil
}

// Addr returns the bound address (useful with port 0).
func (s *Server) Addr() string { return s.listener.Addr().String() }

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("status endpoint shutdown failed: %w", err)
	}
	<-s.done
	return nil
}
