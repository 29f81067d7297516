package service

import (
	"context"
	"errors"
	"time"

	"github.com/vovakirdan/arcade2048/internal/ai"
)

// Step is one move of an autoplay run.
type Step struct {
	Number int `json:"step"`
	MoveResult
}

// Autoplay lets the AI play game id until no move is left or ctx is done.
// fn is called after every move with the entry unlocked; returning an error
// stops the run with that error. delay is waited between moves.
// Returns the number of moves played.
func (s *Service) Autoplay(ctx context.Context, id string, d ai.Difficulty, delay time.Duration, fn func(Step) error) (int, error) {
	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		e, err := s.acquire(id)
		if err != nil {
			return n, err
		}
		res, err := s.aiStep(ctx, id, e, d)
		e.Unlock()

		if errors.Is(err, ErrNoMoveAvailable) {
			s.logger.Info("autoplay finished", "game_id", id, "moves", n, "score", res.State.Score)
			return n, nil
		}
		if err != nil {
			return n, err
		}

		n++
		if fn != nil {
			if err := fn(Step{Number: n, MoveResult: res}); err != nil {
				return n, err
			}
		}

		if delay > 0 {
			t := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return n, ctx.Err()
			case <-t.C:
			}
		}
	}
}
