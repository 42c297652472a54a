package engine

// IsSquareAttacked reports whether any piece of attacker has target among its
// pseudo-legal destinations.
func IsSquareAttacked(b Board, target Position, attacker Color) bool {
	mustInBounds(target)
	mustColor(attacker)
	return isSquareAttacked(&b, target, attacker)
}

func isSquareAttacked(b *Board, target Position, attacker Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p == nil || p.Color != attacker {
				continue
			}
			for _, dest := range pseudoLegalMoves(b, Position{Row: row, Col: col}, *p) {
				if dest.Equal(target) {
					return true
				}
			}
		}
	}
	return false
}

// FindKing returns the square of color's king. With more than one king on
// the board the first in row-major order wins.
func FindKing(b Board, color Color) (Position, bool) {
	mustColor(color)
	return findKing(&b, color)
}

func findKing(b *Board, color Color) (Position, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b[row][col]; p != nil && p.Type == King && p.Color == color {
				return Position{Row: row, Col: col}, true
			}
		}
	}
	return Position{}, false
}

// IsKingInCheck reports whether color's king is attacked by the opponent. A
// side without a king is never in check.
func IsKingInCheck(b Board, color Color) bool {
	mustColor(color)
	return isKingInCheck(&b, color)
}

func isKingInCheck(b *Board, color Color) bool {
	king, ok := findKing(b, color)
	if !ok {
		return false
	}
	return isSquareAttacked(b, king, color.Opponent())
}
