package model

import "errors"

var (
	ErrOutOfBounds  = errors.New("position out of bounds")
	ErrNoPiece      = errors.New("no piece at from square")
	ErrNotYourPiece = errors.New("piece belongs to the other side")
	ErrIllegalMove  = errors.New("invalid move, not legal")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrGameOver     = errors.New("game is over")
	ErrUnknownMode  = errors.New("unknown game mode")
)
