package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Server exposes a hub over HTTP:
//
//	GET /snapshot  latest snapshot message as JSON
//	GET /ws        WebSocket stream of every published snapshot
//	GET /session   current session id
type Server struct {
	hub    *Hub
	router *mux.Router
}

func NewServer(hub *Hub) *Server {
	s := &Server{hub: hub, router: mux.NewRouter()}
	s.router.HandleFunc("/snapshot", s.handleSnapshot).Methods("GET")
	s.router.HandleFunc("/session", s.handleSession).Methods("GET")
	s.router.HandleFunc("/ws", hub.ServeWS)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	latest := s.hub.Latest()
	if latest == nil {
		respondError(w, http.StatusServiceUnavailable, "no snapshot published yet")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(latest)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"session_id": s.hub.Session().String()})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// ListenAndServe runs the hub and an HTTP server on addr until ctx is
// cancelled, then shuts both down.
func ListenAndServe(ctx context.Context, addr string, hub *Hub) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mirror listen %s: %w", addr, err)
	}
	return Serve(ctx, ln, hub)
}

func Serve(ctx context.Context, ln net.Listener, hub *Hub) error {
	httpServer := &http.Server{
		Handler:      NewServer(hub),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go hub.Run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("spectator mirror on http://%s (session %s)", ln.Addr(), hub.Session())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mirror server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("mirror shutdown: %w", err)
	}
	return nil
}
