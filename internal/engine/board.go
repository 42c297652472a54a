// Package engine implements the rules of a reduced chess variant: board setup,
// move generation, check detection and bot move selection. Every function is
// pure with respect to the board it is given.
package engine

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Valid() bool {
	return c == White || c == Black
}

// Piece is a value; moving one relocates it rather than mutating it.
// HasMoved is reserved for castling and is not read by any rule.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved,omitempty"`
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("%c%d", p.Col+'a', 8-p.Row)
}

// Equal reports whether both positions name the same square.
func (p Position) Equal(o Position) bool {
	return p.Row == o.Row && p.Col == o.Col
}

// InBounds reports whether the position lies on the 8x8 board.
func InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}

// Board is indexed as Board[row][col]. Row 0 is black's back rank and row 7
// is white's. Assigning a Board copies it, which is what legality
// simulation relies on.
type Board [8][8]*Piece

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	var b Board
	for col := 0; col < 8; col++ {
		b[0][col] = &Piece{Type: backRank[col], Color: Black}
		b[1][col] = &Piece{Type: Pawn, Color: Black}
		b[6][col] = &Piece{Type: Pawn, Color: White}
		b[7][col] = &Piece{Type: backRank[col], Color: White}
	}
	return b
}

// At returns the piece on pos, or nil for an empty square. It panics if pos
// is off the board.
func (b *Board) At(pos Position) *Piece {
	mustInBounds(pos)
	return b[pos.Row][pos.Col]
}

// Set places p on pos; a nil p clears the square.
func (b *Board) Set(pos Position, p *Piece) {
	mustInBounds(pos)
	b[pos.Row][pos.Col] = p
}

// Pieces calls fn for every occupied square of color in row-major order.
func (b *Board) Pieces(color Color, fn func(Position, Piece)) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b[row][col]; p != nil && p.Color == color {
				fn(Position{Row: row, Col: col}, *p)
			}
		}
	}
}

// apply returns a copy of b with the piece on from relocated to to. Whatever
// stood on to is overwritten.
func (b Board) apply(from, to Position) Board {
	moved := *b[from.Row][from.Col]
	b[to.Row][to.Col] = &moved
	b[from.Row][from.Col] = nil
	return b
}
