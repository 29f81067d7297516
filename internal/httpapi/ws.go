package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/arcade2048/internal/ai"
	"github.com/vovakirdan/arcade2048/internal/game"
	"github.com/vovakirdan/arcade2048/internal/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsWriteWait = 5 * time.Second

// stepMessage is sent after every AI move.
type stepMessage struct {
	Type string `json:"type"`
	service.Step
}

// doneMessage ends the stream.
type doneMessage struct {
	Type  string     `json:"type"`
	Moves int        `json:"moves"`
	State game.State `json:"game_state"`
	Error string     `json:"error,omitempty"`
}

// handleAutoplay streams an AI game over a websocket until the board is
// stuck or the client goes away.
func (s *Server) handleAutoplay(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := queryID(r, service.AIGameID)
	d := ai.ParseDifficulty(q.Get("difficulty"))

	delay := s.config.AutoplayDelay
	if v := q.Get("delay_ms"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			writeJSONError(w, http.StatusBadRequest, "invalid delay_ms")
			return
		}
		delay = time.Duration(ms) * time.Millisecond
	}

	// Fail with a plain 404 before upgrading.
	if _, err := s.svc.State(r.Context(), id); err != nil {
		s.writeServiceError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reads only detect the client closing the connection.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.logger.Info("autoplay started", "game_id", id, "difficulty", d, "delay", delay)

	n, err := s.svc.Autoplay(ctx, id, d, delay, func(step service.Step) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(stepMessage{Type: "step", Step: step})
	})
	if errors.Is(err, context.Canceled) {
		s.logger.Info("autoplay client left", "game_id", id, "moves", n)
		return
	}

	done := doneMessage{Type: "done", Moves: n}
	if err != nil {
		done.Type = "error"
		done.Error = err.Error()
	}
	if state, stateErr := s.svc.State(context.Background(), id); stateErr == nil {
		done.State = state
	}

	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(done); err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
