package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/ChicagoDave/wren/internal/ws"
	"github.com/ChicagoDave/wren/pkg/scene2d"
	"github.com/ChicagoDave/wren/pkg/spec"
	"github.com/ChicagoDave/wren/pkg/validation"
)

// Server is the local preview server for one panel project.
type Server struct {
	projectPath string
	port        int
	log         *slog.Logger
	hub         *ws.Hub

	// push serializes solves and the broadcasts that follow them, so
	// clients see envelopes in sequence order.
	push sync.Mutex

	mu     sync.RWMutex
	state  *state
	solves int
}

// state is the result of one solve. Scene is nil when validation failed.
type state struct {
	Spec       *spec.PanelSpec    `json:"spec,omitempty"`
	Scene      *scene2d.Scene2D   `json:"scene,omitempty"`
	Validation *validation.Report `json:"validation"`
	Err        string             `json:"error,omitempty"`
}

// Envelope is the message pushed to stream clients.
type Envelope struct {
	Sequence int    `json:"sequence"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

// New creates a server for the given project directory or spec file.
func New(projectPath string, port int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		projectPath: projectPath,
		port:        port,
		log:         logger,
		hub:         ws.NewHub(),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /api/spec", s.handleSpec)
	mux.HandleFunc("POST /api/solve", s.handleSolve)
	mux.HandleFunc("GET /api/stream", s.handleStream)
	mux.HandleFunc("GET /", s.handleIndex)

	return mux
}

// Start solves the project, watches it for changes and serves HTTP until ctx
// is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.Solve()

	watchErr := make(chan error, 1)
	go func() { watchErr <- s.Watch(ctx) }()

	addr := fmt.Sprintf(":%d", s.port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("wren preview server starting", "url", "http://localhost"+addr)
	s.log.Info("watching project", "path", s.projectPath)

	serveErr := make(chan error, 1)
	go func() { serveErr <- httpSrv.ListenAndServe() }()

	select {
	case err := <-serveErr:
		return err
	case err := <-watchErr:
		if err != nil {
			_ = httpSrv.Close()
			return fmt.Errorf("watching project: %w", err)
		}
		// Watcher stopped with ctx; fall through to shutdown.
		<-ctx.Done()
	case <-ctx.Done():
	}

	s.hub.CloseAll("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Solve reloads the project from disk, decomposes it, stores the result and
// pushes it to stream clients.
func (s *Server) Solve() {
	s.push.Lock()
	defer s.push.Unlock()

	st := s.solve()

	s.mu.Lock()
	s.state = st
	s.solves++
	seq := s.solves
	s.mu.Unlock()

	if st.Err != "" {
		s.log.Warn("solve failed", "path", s.projectPath, "error", st.Err)
	} else {
		s.log.Info("solved", "path", s.projectPath, "summary", st.Validation.Summary)
	}
	s.broadcast(seq, st)
}

func (s *Server) solve() *state {
	ps, err := spec.LoadProject(s.projectPath)
	if err != nil {
		return &state{Validation: validation.NewReport(), Err: err.Error()}
	}

	report := validation.ValidateSpec(ps)
	st := &state{Spec: ps, Validation: report}
	if err := report.Err(); err != nil {
		st.Err = err.Error()
		return st
	}

	w, err := ps.Decompose()
	if err != nil {
		st.Err = err.Error()
		return st
	}
	report.Merge(validation.ValidateDecomposition(w))
	st.Scene = scene2d.Assemble(ps.Name, w, scene2d.SpaceDisplay)
	return st
}

func (s *Server) current() (*state, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.solves
}

func (s *Server) broadcast(seq int, st *state) {
	data, err := json.Marshal(envelopeFor(seq, st))
	if err != nil {
		s.log.Error("encoding stream message", "error", err)
		return
	}
	s.hub.Broadcast(data)
}

func envelopeFor(seq int, st *state) Envelope {
	if st.Scene == nil {
		return Envelope{Sequence: seq, Type: "SolveFailed", Payload: st}
	}
	return Envelope{Sequence: seq, Type: "SceneChanged", Payload: st.Scene}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Wren</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Wren</h1>
<p>Panel preview data is served at <code>/api/scene</code> and streamed on <code>/api/stream</code>.</p>
</div>
</body></html>`)
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	st, _ := s.current()
	if st == nil || st.Scene == nil {
		writeJSON(w, http.StatusUnprocessableEntity, st)
		return
	}
	writeJSON(w, http.StatusOK, st.Scene)
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	st, _ := s.current()
	if st == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not solved yet"})
		return
	}
	writeJSON(w, http.StatusOK, st.Validation)
}

func (s *Server) handleSpec(w http.ResponseWriter, _ *http.Request) {
	st, _ := s.current()
	if st == nil || st.Spec == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"status": "no spec loaded"})
		return
	}
	writeJSON(w, http.StatusOK, st.Spec)
}

func (s *Server) handleSolve(w http.ResponseWriter, _ *http.Request) {
	s.Solve()
	st, seq := s.current()
	status := http.StatusOK
	if st.Scene == nil {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, envelopeFor(seq, st))
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")
	s.subscribe(r.Context(), conn)
	defer s.hub.Remove(conn)

	// Clients only listen; reading keeps control frames flowing.
	for {
		if _, _, err := conn.Read(r.Context()); err != nil {
			return
		}
	}
}

// subscribe registers conn and sends it the current state before any later
// broadcast can reach it.
func (s *Server) subscribe(ctx context.Context, conn *websocket.Conn) {
	s.push.Lock()
	defer s.push.Unlock()

	s.hub.Add(conn)
	st, seq := s.current()
	if st == nil {
		return
	}
	data, err := json.Marshal(envelopeFor(seq, st))
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, ws.WriteTimeout)
	defer cancel()
	_ = conn.Write(ctx, websocket.MessageText, data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
