package engine

// Move is a proposal; applying it is up to the owner of the board. The
// en passant, castling and promotion fields exist for the wire format but
// the engine never sets them.
type Move struct {
	From        Position  `json:"from"`
	To          Position  `json:"to"`
	Piece       Piece     `json:"piece"`
	Captured    *Piece    `json:"capturedPiece,omitempty"`
	IsEnPassant bool      `json:"isEnPassant,omitempty"`
	IsCastling  bool      `json:"isCastling,omitempty"`
	Promotion   PieceType `json:"promotion,omitempty"`
}

func (m Move) IsCapture() bool {
	return m.Captured != nil
}

func newMove(b *Board, from, to Position, piece Piece) Move {
	m := Move{From: from, To: to, Piece: piece}
	if target := b[to.Row][to.Col]; target != nil {
		captured := *target
		m.Captured = &captured
	}
	return m
}

// NewMove builds the move of the piece on from to to as it would be played
// on b, recording whatever it captures.
func NewMove(b Board, from, to Position) Move {
	mustInBounds(to)
	piece := b.At(from)
	if piece == nil {
		panic(errNoPieceAt(from))
	}
	return newMove(&b, from, to, *piece)
}

// Apply returns b with m played on it and marks the moved piece as moved.
func Apply(b Board, m Move) Board {
	mustInBounds(m.To)
	if b.At(m.From) == nil {
		panic(errNoPieceAt(m.From))
	}
	next := b.apply(m.From, m.To)
	next[m.To.Row][m.To.Col].HasMoved = true
	return next
}
