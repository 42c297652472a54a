package engine

import (
	"errors"
	"testing"
)

// sq converts algebraic coordinates like "e2" to a Position.
func sq(s string) Position {
	return Position{Row: 8 - int(s[1]-'0'), Col: int(s[0] - 'a')}
}

type placement struct {
	at    string
	piece Piece
}

func boardWith(placements ...placement) Board {
	var b Board
	for _, p := range placements {
		piece := p.piece
		b.Set(sq(p.at), &piece)
	}
	return b
}

func wp(t PieceType) Piece { return Piece{Type: t, Color: White} }
func bp(t PieceType) Piece { return Piece{Type: t, Color: Black} }

func expectPanic(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v", want)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, want) {
			t.Fatalf("expected panic wrapping %v, got %v", want, r)
		}
	}()
	fn()
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	count := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if b[row][col] != nil {
				count++
			}
		}
	}
	if count != 32 {
		t.Fatalf("expected 32 pieces, got %d", count)
	}

	tests := []struct {
		at   string
		want Piece
	}{
		{"a1", wp(Rook)}, {"b1", wp(Knight)}, {"c1", wp(Bishop)}, {"d1", wp(Queen)},
		{"e1", wp(King)}, {"f1", wp(Bishop)}, {"g1", wp(Knight)}, {"h1", wp(Rook)},
		{"a8", bp(Rook)}, {"d8", bp(Queen)}, {"e8", bp(King)}, {"h8", bp(Rook)},
		{"a2", wp(Pawn)}, {"h2", wp(Pawn)}, {"a7", bp(Pawn)}, {"h7", bp(Pawn)},
	}
	for _, tt := range tests {
		got := b.At(sq(tt.at))
		if got == nil || *got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.at, tt.want, got)
		}
	}
	for _, empty := range []string{"a3", "d4", "e5", "h6"} {
		if b.At(sq(empty)) != nil {
			t.Errorf("%s: expected empty square", empty)
		}
	}
}

func TestNewBoardIndependentCopies(t *testing.T) {
	a := NewBoard()
	b := NewBoard()
	a.Set(sq("e2"), nil)
	if b.At(sq("e2")) == nil {
		t.Fatal("boards share state")
	}
}

func TestInBoundsAndEqual(t *testing.T) {
	tests := []struct {
		pos  Position
		want bool
	}{
		{Position{0, 0}, true},
		{Position{7, 7}, true},
		{Position{-1, 0}, false},
		{Position{0, 8}, false},
		{Position{8, 3}, false},
	}
	for _, tt := range tests {
		if got := InBounds(tt.pos); got != tt.want {
			t.Errorf("InBounds(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}

	if !(Position{3, 4}).Equal(Position{3, 4}) {
		t.Error("expected equal positions")
	}
	if (Position{3, 4}).Equal(Position{4, 3}) {
		t.Error("expected different positions")
	}
	if got := sq("e2").String(); got != "e2" {
		t.Errorf("expected e2, got %s", got)
	}
}

func TestAtOutOfBoundsPanics(t *testing.T) {
	b := NewBoard()
	expectPanic(t, ErrOutOfBounds, func() { b.At(Position{Row: 8, Col: 0}) })
	expectPanic(t, ErrOutOfBounds, func() { b.Set(Position{Row: 0, Col: -1}, nil) })
}

func TestApplyLeavesOriginalUntouched(t *testing.T) {
	b := NewBoard()
	before := b

	next := Apply(b, NewMove(b, sq("e2"), sq("e4")))

	if b != before {
		t.Fatal("Apply mutated its input")
	}
	if next.At(sq("e2")) != nil {
		t.Error("expected e2 to be empty after the move")
	}
	moved := next.At(sq("e4"))
	if moved == nil || moved.Type != Pawn || !moved.HasMoved {
		t.Errorf("expected a moved pawn on e4, got %v", moved)
	}
	if b.At(sq("e2")).HasMoved {
		t.Error("original pawn was marked as moved")
	}
}
