package engine

type GameStatus string

const (
	StatusPlaying   GameStatus = "playing"
	StatusCheck     GameStatus = "check"
	StatusCheckmate GameStatus = "checkmate"
	StatusStalemate GameStatus = "stalemate"
	// StatusDraw is part of the wire vocabulary only; no rule produces it.
	StatusDraw GameStatus = "draw"
)

// Terminal reports whether no further moves can be made.
func (s GameStatus) Terminal() bool {
	return s == StatusCheckmate || s == StatusStalemate || s == StatusDraw
}

// Report is the derived state of a position for the side to move. It must be
// recomputed after every change to the board.
type Report struct {
	Status       GameStatus `json:"status"`
	InCheck      bool       `json:"inCheck"`
	KingPosition *Position  `json:"kingPosition"`
	Checkmate    bool       `json:"checkmate"`
	Stalemate    bool       `json:"stalemate"`
}

// Evaluate computes check, checkmate and stalemate for side on b.
func Evaluate(b Board, side Color) Report {
	mustColor(side)

	var r Report
	if king, ok := findKing(&b, side); ok && isSquareAttacked(&b, king, side.Opponent()) {
		r.InCheck = true
		r.KingPosition = &king
	}
	noMoves := !hasLegalMove(&b, side)
	r.Checkmate = r.InCheck && noMoves
	r.Stalemate = !r.InCheck && noMoves

	switch {
	case r.Checkmate:
		r.Status = StatusCheckmate
	case r.InCheck:
		r.Status = StatusCheck
	case r.Stalemate:
		r.Status = StatusStalemate
	default:
		r.Status = StatusPlaying
	}
	return r
}

// IsCheckmate reports whether color is in check with no legal move.
func IsCheckmate(b Board, color Color) bool {
	mustColor(color)
	return isKingInCheck(&b, color) && !hasLegalMove(&b, color)
}

// IsStalemate reports whether color is not in check but has no legal move.
func IsStalemate(b Board, color Color) bool {
	mustColor(color)
	return !isKingInCheck(&b, color) && !hasLegalMove(&b, color)
}
