package web

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/loop"
	"github.com/vovakirdan/tui-snake/internal/storage"
	"github.com/vovakirdan/tui-snake/internal/world"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// clientMessage is what the page sends: a key code or a restart request.
type clientMessage struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

// session is one browser connection.
type session struct {
	srv    *Server
	conn   *websocket.Conn
	player string
	logger *log.Logger
	frames *frameRenderer

	mu      sync.Mutex
	ctrl    *loop.Controller
	restart chan struct{}
}

func newSession(srv *Server, conn *websocket.Conn, player string) *session {
	return &session{
		srv:     srv,
		conn:    conn,
		player:  player,
		logger:  srv.logger.With("player", player, "remote", conn.RemoteAddr().String()),
		frames:  newFrameRenderer(srv.cfg.Policy),
		restart: make(chan struct{}, 1),
	}
}

// serve runs the session until the browser disconnects or ctx ends.
func (s *session) serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.writePump(ctx)
	}()
	go func() {
		defer wg.Done()
		s.play(ctx)
	}()

	s.readPump()
	cancel()
	wg.Wait()
	s.conn.Close()
}

// play runs games back to back, waiting for a restart request between them.
func (s *session) play(ctx context.Context) {
	for n := 1; ; n++ {
		ctrl := s.newGame(n)
		if err := ctrl.Run(ctx, loop.NewFrameScheduler(s.srv.cfg.Clock)); err != nil {
			return
		}

		select {
		case <-s.restart:
		case <-ctx.Done():
			return
		}
	}
}

func (s *session) newGame(n int) *loop.Controller {
	seed := s.srv.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := world.New(s.srv.cfg.Game.World(seed))
	s.frames.setGame(n)

	var ctrl *loop.Controller
	ctrl = loop.New(w, s.frames,
		loop.WithPolicy(s.srv.cfg.Policy),
		loop.WithKeyMap(loop.BrowserKeyMap()),
		loop.WithLogger(s.logger),
		loop.WithHaltHook(func(final world.Status) {
			s.save(final, ctrl.Ticks())
		}),
	)

	s.mu.Lock()
	s.ctrl = ctrl
	// drop a second restart sent for the game that just ended
	select {
	case <-s.restart:
	default:
	}
	s.mu.Unlock()
	return ctrl
}

func (s *session) save(final world.Status, ticks uint64) {
	store := s.srv.cfg.Store
	if store == nil {
		return
	}
	_, err := store.SaveGame(storage.GameRecord{
		Player:     s.player,
		Score:      final.Score,
		Level:      final.Level,
		Outcome:    final.Outcome,
		Difficulty: string(s.srv.cfg.Game.Difficulty.Preset),
		Ticks:      ticks,
	})
	if err != nil {
		s.logger.Warn("could not save score", "error", err)
	}
}

// readPump applies browser input until the connection fails.
func (s *session) readPump() {
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("read failed", "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Debug("bad message", "error", err)
			continue
		}
		s.handle(msg)
	}
}

func (s *session) handle(msg clientMessage) {
	if msg.Type == "restart" {
		s.requestRestart()
		return
	}

	s.mu.Lock()
	ctrl := s.ctrl
	s.mu.Unlock()
	if ctrl != nil && msg.Code != "" {
		ctrl.Input(msg.Code)
	}
}

// requestRestart queues a restart when the current game is over.
// Requests sent while a game is running are dropped.
func (s *session) requestRestart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil || s.ctrl.Phase() != loop.PhaseHalted {
		return
	}
	select {
	case s.restart <- struct{}{}:
	default:
	}
}

// writePump is the only writer on the connection.
func (s *session) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.frames.ready:
			f := s.frames.take()
			if f == nil {
				continue
			}
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(f); err != nil {
				s.conn.Close()
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.conn.Close()
				return
			}

		case <-ctx.Done():
			s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			s.conn.Close()
			return
		}
	}
}
