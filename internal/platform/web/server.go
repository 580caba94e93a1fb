package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/loop"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

//go:embed static
var static embed.FS

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	Game   config.SnakeConfig
	Policy loop.Policy // nil means the reference curve
	Seed   int64       // 0 picks a time-based seed per game
	Clock  loop.Clock  // nil means the wall clock

	// Store records finished games; nil disables saving and /api/scores.
	Store *storage.Store

	// Logger defaults to a timestamped stderr logger.
	Logger *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address: ":8080",
		Game:    config.DefaultSnakeConfig(),
	}
}

// Server serves the canvas page and one game per websocket connection.
type Server struct {
	cfg      Config
	logger   *log.Logger
	upgrader websocket.Upgrader

	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex // guards closed and sessions.Add
	closed   bool
	sessions sync.WaitGroup
}

// NewServer creates a web server. Call Close to end running sessions.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "snake-web",
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Handler returns the HTTP routes: the page, /ws and /api/scores.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	page, err := fs.Sub(static, "static")
	if err != nil {
		panic(err) // embedded directory is always present
	}
	mux.Handle("GET /", http.FileServerFS(page))
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /api/scores", s.handleScores)

	return s.loggingMiddleware(mux)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if !s.track() {
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.sessions.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	player := r.URL.Query().Get("name")
	if player == "" {
		player = "web"
	}

	sess := newSession(s, conn, player)
	sess.logger.Info("session started")
	sess.serve(s.ctx)
	sess.logger.Info("session ended")
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		http.Error(w, "scores are disabled", http.StatusServiceUnavailable)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := s.cfg.Store.TopScores(limit)
	if err != nil {
		s.logger.Error("could not load scores", "error", err)
		http.Error(w, "could not load scores", http.StatusInternalServerError)
		return
	}

	type entry struct {
		Player     string    `json:"player"`
		Score      int       `json:"score"`
		Level      int       `json:"level"`
		Outcome    string    `json:"outcome"`
		Difficulty string    `json:"difficulty"`
		CreatedAt  time.Time `json:"created_at"`
	}
	out := make([]entry, 0, len(records))
	for _, rec := range records {
		out = append(out, entry{
			Player:     rec.Player,
			Score:      rec.Score,
			Level:      rec.Level,
			Outcome:    rec.Outcome.String(),
			Difficulty: rec.Difficulty,
			CreatedAt:  rec.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// loggingMiddleware logs every request except the long-lived websocket,
// which logs its own session events.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if r.URL.Path != "/ws" {
			s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
		}
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.Close()
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

// track registers a new session. It reports false once Close has started.
func (s *Server) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.sessions.Add(1)
	return true
}

// Close ends every running session and waits for them to finish.
// Connections arriving afterwards are refused.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.sessions.Wait()
}
