package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/spectate"
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

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Spectating is read-only and public.
		return true
	},
}

// WatchFrame is one message of the spectator stream.
type WatchFrame struct {
	Player       spectate.Player  `json:"player"`
	DisplayScore int              `json:"displayScore"`
	Game         int              `json:"game"`
	RestartInMS  int64            `json:"restartInMs,omitempty"`
	State        session.Snapshot `json:"state"`
}

func frameOf(v *spectate.Viewer, now time.Time) WatchFrame {
	return WatchFrame{
		Player:       v.Player(),
		DisplayScore: v.DisplayScore(),
		Game:         v.Games(),
		RestartInMS:  v.RestartIn(now).Milliseconds(),
		State:        v.Snapshot(),
	}
}

// handleWatch streams an autopilot game for a player. A frame is sent on
// connect and after every advance or restart.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	p, ok := s.deps.Players.Get(mux.Vars(r)["id"])
	if !ok {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	cfg := s.deps.Config
	viewer := spectate.NewViewer(p, cfg.Rules(), cfg.AutopilotPolicy(), cfg.RestartDelay(),
		session.WithSeed(s.deps.Seed))
	s.logger.Debug("spectator connected", "player", p.Username, "remote", r.RemoteAddr)

	closed := make(chan struct{})
	go s.readPump(conn, closed)

	frameRate := max(1, cfg.Session.FrameRate)
	frames := time.NewTicker(time.Second / time.Duration(frameRate))
	pings := time.NewTicker(pingPeriod)
	defer frames.Stop()
	defer pings.Stop()
	lastRefresh := time.Now()

	if err := writeFrame(conn, frameOf(viewer, lastRefresh)); err != nil {
		return
	}

	for {
		select {
		case <-closed:
			return

		case now := <-frames.C:
			if now.Sub(lastRefresh) >= cfg.RefreshInterval() {
				lastRefresh = now
				if latest, ok := s.deps.Players.Get(p.ID); ok {
					viewer.SetPlayer(latest)
				}
			}
			if !viewer.Tick(now) {
				continue
			}
			if err := writeFrame(conn, frameOf(viewer, now)); err != nil {
				return
			}

		case <-pings.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // write fails below
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeFrame(conn *websocket.Conn, f WatchFrame) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // write fails below
	return conn.WriteJSON(f)
}

// readPump consumes control frames so pongs and close messages are seen.
// Spectators send nothing else.
func (s *Server) readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck // next read fails
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket error", "err", err)
			}
			return
		}
	}
}
