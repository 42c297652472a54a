package engine

var (
	rookDirs   = []Position{{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1}}
	bishopDirs = []Position{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	knightDirs = []Position{{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1}, {Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2}}
	kingDirs   = []Position{{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1}, {Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
)

// PseudoLegalMoves returns the destinations the piece on pos can reach by its
// movement rules alone. Whether the move would expose its own king is not
// considered. It panics if piece is not what stands on pos.
func PseudoLegalMoves(b Board, pos Position, piece Piece) []Position {
	mustOccupant(&b, pos, piece)
	return pseudoLegalMoves(&b, pos, piece)
}

func pseudoLegalMoves(b *Board, pos Position, piece Piece) []Position {
	switch piece.Type {
	case Pawn:
		return pawnMoves(b, pos, piece.Color)
	case Knight:
		return stepMoves(b, pos, piece.Color, knightDirs)
	case Bishop:
		return slideMoves(b, pos, piece.Color, bishopDirs)
	case Rook:
		return slideMoves(b, pos, piece.Color, rookDirs)
	case Queen:
		return append(slideMoves(b, pos, piece.Color, rookDirs), slideMoves(b, pos, piece.Color, bishopDirs)...)
	case King:
		return stepMoves(b, pos, piece.Color, kingDirs)
	default:
		return []Position{}
	}
}

func pawnMoves(b *Board, pos Position, color Color) []Position {
	moves := []Position{}
	dir, startRow := -1, 6
	if color == Black {
		dir, startRow = 1, 1
	}

	oneStep := Position{Row: pos.Row + dir, Col: pos.Col}
	if InBounds(oneStep) && b[oneStep.Row][oneStep.Col] == nil {
		moves = append(moves, oneStep)
		twoSteps := Position{Row: pos.Row + 2*dir, Col: pos.Col}
		if pos.Row == startRow && InBounds(twoSteps) && b[twoSteps.Row][twoSteps.Col] == nil {
			moves = append(moves, twoSteps)
		}
	}

	// Diagonals only when there is something to take.
	for _, dc := range []int{-1, 1} {
		target := Position{Row: pos.Row + dir, Col: pos.Col + dc}
		if !InBounds(target) {
			continue
		}
		if p := b[target.Row][target.Col]; p != nil && p.Color != color {
			moves = append(moves, target)
		}
	}
	return moves
}

func slideMoves(b *Board, pos Position, color Color, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		target := Position{Row: pos.Row + dir.Row, Col: pos.Col + dir.Col}
		for InBounds(target) {
			p := b[target.Row][target.Col]
			if p == nil {
				moves = append(moves, target)
			} else {
				if p.Color != color {
					moves = append(moves, target)
				}
				break
			}
			target = Position{Row: target.Row + dir.Row, Col: target.Col + dir.Col}
		}
	}
	return moves
}

func stepMoves(b *Board, pos Position, color Color, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		target := Position{Row: pos.Row + dir.Row, Col: pos.Col + dir.Col}
		if !InBounds(target) {
			continue
		}
		if p := b[target.Row][target.Col]; p == nil || p.Color != color {
			moves = append(moves, target)
		}
	}
	return moves
}
