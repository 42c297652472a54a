package engine

import (
	"errors"
	"fmt"
)

// Callers that break these contracts get a panic wrapping one of the errors
// below. They are exported so tests and recover handlers can match them.
var (
	ErrOutOfBounds   = errors.New("position out of bounds")
	ErrNoPiece       = errors.New("no piece at position")
	ErrPieceMismatch = errors.New("piece does not match board")
	ErrInvalidColor  = errors.New("invalid color")

	// returned, not panicked
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

func mustInBounds(pos Position) {
	if !InBounds(pos) {
		panic(fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, pos.Row, pos.Col))
	}
}

func mustColor(c Color) {
	if !c.Valid() {
		panic(fmt.Errorf("%w: %q", ErrInvalidColor, c))
	}
}

// mustOccupant checks that piece is what actually stands on pos.
func mustOccupant(b *Board, pos Position, piece Piece) {
	occupant := b.At(pos)
	if occupant == nil {
		panic(errNoPieceAt(pos))
	}
	if occupant.Type != piece.Type || occupant.Color != piece.Color {
		panic(fmt.Errorf("%w: %s holds %s %s, got %s %s", ErrPieceMismatch, pos, occupant.Color, occupant.Type, piece.Color, piece.Type))
	}
}

func errNoPieceAt(pos Position) error {
	return fmt.Errorf("%w: %s", ErrNoPiece, pos)
}
