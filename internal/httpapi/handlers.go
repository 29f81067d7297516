package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/vovakirdan/arcade2048/internal/ai"
	"github.com/vovakirdan/arcade2048/internal/service"
	"github.com/vovakirdan/arcade2048/internal/storage"
)

type envelope map[string]any

// gameRequest is the union of all POST bodies.
type gameRequest struct {
	GameID     *string `json:"game_id"`
	GridSize   int     `json:"grid_size"`
	Direction  string  `json:"direction"`
	Difficulty string  `json:"difficulty"`
}

// id returns the requested game id, or def when the field is absent.
func (r gameRequest) id(def string) string {
	if r.GameID == nil {
		return def
	}
	return *r.GameID
}

func (r gameRequest) difficulty() ai.Difficulty {
	return ai.ParseDifficulty(r.Difficulty)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{"success": false, "error": msg})
}

// decode reads the request body into req. An empty body is accepted.
func decode(w http.ResponseWriter, r *http.Request, req *gameRequest) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// writeServiceError maps service errors to HTTP responses.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		writeJSONError(w, http.StatusNotFound, "Game not found")
	case errors.Is(err, service.ErrInvalidGridSize):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoMoveAvailable):
		writeJSONError(w, http.StatusOK, "No valid moves available")
	default:
		s.logger.Error("request failed", "err", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func queryID(r *http.Request, def string) string {
	if id := r.URL.Query().Get("game_id"); id != "" {
		return id
	}
	return def
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if !decode(w, r, &req) {
		return
	}

	id, state, err := s.svc.NewGame(r.Context(), req.id(service.DefaultGameID), req.GridSize)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success":    true,
		"game_id":    id,
		"game_state": state,
	})
}

func (s *Server) handleNewVsGame(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if !decode(w, r, &req) {
		return
	}

	vs, err := s.svc.NewVsGame(r.Context(), req.GridSize, req.difficulty())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success":     true,
		"human_state": vs.Human,
		"ai_state":    vs.AI,
	})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := s.svc.Move(r.Context(), req.id(service.DefaultGameID), req.Direction)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success":    true,
		"moved":      res.Moved,
		"game_state": res.State,
	})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if !decode(w, r, &req) {
		return
	}

	ok, state, err := s.svc.Undo(r.Context(), req.id(service.DefaultGameID))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	body := envelope{"success": ok, "game_state": nil}
	if ok {
		body["game_state"] = state
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if !decode(w, r, &req) {
		return
	}

	dir, ok, err := s.svc.Hint(r.Context(), req.id(service.DefaultGameID), req.difficulty())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	body := envelope{"success": true, "hint": nil}
	if ok {
		body["hint"] = dir
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleAIMove(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := s.svc.AIMove(r.Context(), req.id(service.AIGameID), req.difficulty())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success":    true,
		"move":       res.Direction,
		"moved":      res.Moved,
		"game_state": res.State,
	})
}

func (s *Server) handleEvaluateMove(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if !decode(w, r, &req) {
		return
	}

	ms, err := s.svc.EvaluateMove(r.Context(), req.id(service.DefaultGameID), req.Direction)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	if !ms.Moved {
		writeJSON(w, http.StatusOK, envelope{
			"success":          true,
			"moved":            false,
			"evaluation_score": ms.Score,
		})
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success":          true,
		"moved":            true,
		"evaluation_score": ms.Score,
		"points_gained":    ms.PointsGained,
	})
}

func (s *Server) handleBestMoves(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if !decode(w, r, &req) {
		return
	}

	moves, err := s.svc.BestMoves(r.Context(), req.id(service.DefaultGameID))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "moves": moves})
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	state, err := s.svc.State(r.Context(), queryID(r, service.DefaultGameID))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "game_state": state})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats(r.Context(), queryID(r, service.DefaultGameID))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "stats": stats})
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(r.Context(), queryID(r, service.DefaultGameID)); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h := s.svc.Health()
	writeJSON(w, http.StatusOK, envelope{
		"success":           true,
		"status":            h.Status,
		"active_games":      h.ActiveGames,
		"active_ai_players": h.ActiveAIPlayers,
	})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	scores, err := s.svc.Scores(r.Context(), r.URL.Query().Get("mode"), limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if scores == nil {
		scores = []storage.Result{}
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "scores": scores})
}
