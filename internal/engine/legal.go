package engine

// LegalMoves returns the pseudo-legal destinations of the piece on pos that
// do not leave its own king in check. Each candidate is played on a scratch
// copy of b; b itself is never touched. It panics if piece is not what
// stands on pos.
func LegalMoves(b Board, pos Position, piece Piece) []Position {
	mustOccupant(&b, pos, piece)
	return legalMoves(&b, pos, piece)
}

func legalMoves(b *Board, pos Position, piece Piece) []Position {
	legal := []Position{}
	for _, to := range pseudoLegalMoves(b, pos, piece) {
		if isMoveSafe(b, pos, to, piece.Color) {
			legal = append(legal, to)
		}
	}
	return legal
}

func isMoveSafe(b *Board, from, to Position, mover Color) bool {
	scratch := b.apply(from, to)
	return !isKingInCheck(&scratch, mover)
}

// IsMoveLegal reports whether moving the piece on from to to is legal.
func IsMoveLegal(b Board, from, to Position) bool {
	mustInBounds(to)
	piece := b.At(from)
	if piece == nil {
		return false
	}
	for _, dest := range legalMoves(&b, from, *piece) {
		if dest.Equal(to) {
			return true
		}
	}
	return false
}

// AllLegalMoves enumerates every legal move for color, scanning the board in
// row-major order and each piece's destinations in generation order.
func AllLegalMoves(b Board, color Color) []Move {
	mustColor(color)
	return allLegalMoves(&b, color)
}

func allLegalMoves(b *Board, color Color) []Move {
	moves := []Move{}
	b.Pieces(color, func(from Position, piece Piece) {
		for _, to := range legalMoves(b, from, piece) {
			moves = append(moves, newMove(b, from, to, piece))
		}
	})
	return moves
}

func hasLegalMove(b *Board, color Color) bool {
	found := false
	b.Pieces(color, func(from Position, piece Piece) {
		if !found && len(legalMoves(b, from, piece)) > 0 {
			found = true
		}
	})
	return found
}
