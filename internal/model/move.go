package model

import "github.com/benbeisheim/chessrules-backend/internal/engine"

type MoveRequest struct {
	From engine.Position `json:"from"`
	To   engine.Position `json:"to"`
}

type SelectRequest struct {
	engine.Position
}

// SettingsRequest changes mode and/or difficulty; empty fields are left alone.
type SettingsRequest struct {
	Mode       Mode              `json:"mode,omitempty"`
	Difficulty engine.Difficulty `json:"difficulty,omitempty"`
}

type CreateRequest struct {
	Mode       Mode              `json:"mode"`
	Difficulty engine.Difficulty `json:"difficulty"`
}

type CapturedPieces struct {
	White []engine.Piece `json:"white"`
	Black []engine.Piece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]engine.Piece, 0),
		Black: make([]engine.Piece, 0),
	}
}
