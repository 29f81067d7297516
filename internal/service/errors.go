package service

import "errors"

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrNoMoveAvailable = errors.New("no valid moves available")
	ErrInvalidGridSize = errors.New("invalid grid size")
)
