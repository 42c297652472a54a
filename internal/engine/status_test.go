package engine

import (
	"reflect"
	"testing"
)

// play applies the moves in order, failing the test if any is illegal.
func play(t *testing.T, b Board, moves ...[2]string) Board {
	t.Helper()
	for _, mv := range moves {
		from, to := sq(mv[0]), sq(mv[1])
		if !IsMoveLegal(b, from, to) {
			t.Fatalf("%s-%s is not legal", mv[0], mv[1])
		}
		b = Apply(b, NewMove(b, from, to))
	}
	return b
}

func foolsMate(t *testing.T) Board {
	return play(t, NewBoard(),
		[2]string{"f2", "f3"},
		[2]string{"e7", "e5"},
		[2]string{"g2", "g4"},
		[2]string{"d8", "h4"},
	)
}

// stalemate has black to move: king h8, white queen f7, white king g6.
func stalemate() Board {
	return boardWith(
		placement{"h8", bp(King)},
		placement{"f7", wp(Queen)},
		placement{"g6", wp(King)},
	)
}

func TestStartPositionIsQuiet(t *testing.T) {
	b := NewBoard()
	for _, side := range []Color{White, Black} {
		if IsKingInCheck(b, side) {
			t.Errorf("%s should not be in check", side)
		}
		if IsCheckmate(b, side) {
			t.Errorf("%s should not be checkmated", side)
		}
		if IsStalemate(b, side) {
			t.Errorf("%s should not be stalemated", side)
		}
		r := Evaluate(b, side)
		if r.Status != StatusPlaying || r.KingPosition != nil {
			t.Errorf("%s: unexpected report %+v", side, r)
		}
	}
}

func TestFindKing(t *testing.T) {
	b := NewBoard()
	if pos, ok := FindKing(b, White); !ok || !pos.Equal(sq("e1")) {
		t.Errorf("expected white king on e1, got %v %v", pos, ok)
	}
	if pos, ok := FindKing(b, Black); !ok || !pos.Equal(sq("e8")) {
		t.Errorf("expected black king on e8, got %v %v", pos, ok)
	}
	if _, ok := FindKing(boardWith(placement{"a1", wp(Rook)}), White); ok {
		t.Error("expected no king on a board without one")
	}
}

func TestFoolsMate(t *testing.T) {
	b := foolsMate(t)

	if !IsKingInCheck(b, White) {
		t.Fatal("expected white to be in check")
	}
	if !IsCheckmate(b, White) {
		t.Fatal("expected checkmate for white")
	}
	if IsStalemate(b, White) {
		t.Fatal("checkmate is not stalemate")
	}
	b.Pieces(White, func(pos Position, piece Piece) {
		if moves := LegalMoves(b, pos, piece); len(moves) != 0 {
			t.Errorf("%s %s on %s still has moves %v", piece.Color, piece.Type, pos, names(moves))
		}
	})

	r := Evaluate(b, White)
	if r.Status != StatusCheckmate || !r.InCheck || !r.Checkmate || r.Stalemate {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.KingPosition == nil || !r.KingPosition.Equal(sq("e1")) {
		t.Fatalf("expected king position e1, got %v", r.KingPosition)
	}
	if IsCheckmate(b, Black) || IsKingInCheck(b, Black) {
		t.Fatal("black is fine")
	}
}

func TestStalemate(t *testing.T) {
	b := stalemate()
	if IsKingInCheck(b, Black) {
		t.Fatal("expected black not to be in check")
	}
	if !IsStalemate(b, Black) {
		t.Fatal("expected stalemate")
	}
	if IsCheckmate(b, Black) {
		t.Fatal("stalemate is not checkmate")
	}
	r := Evaluate(b, Black)
	if r.Status != StatusStalemate || r.InCheck || r.KingPosition != nil || !r.Stalemate {
		t.Fatalf("unexpected report %+v", r)
	}
	if !r.Status.Terminal() {
		t.Fatal("stalemate should be terminal")
	}
}

func TestCheckWithEscape(t *testing.T) {
	b := boardWith(
		placement{"e1", wp(King)},
		placement{"e8", bp(Rook)},
		placement{"a8", bp(King)},
	)
	r := Evaluate(b, White)
	if r.Status != StatusCheck || !r.InCheck || r.Checkmate || r.Stalemate {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.KingPosition == nil || !r.KingPosition.Equal(sq("e1")) {
		t.Fatalf("expected king position e1, got %v", r.KingPosition)
	}
	if r.Status.Terminal() {
		t.Fatal("check is not terminal")
	}
}

func TestKinglessSideIsNeverInCheck(t *testing.T) {
	b := boardWith(
		placement{"a1", wp(Rook)},
		placement{"a8", bp(Rook)},
		placement{"h8", bp(King)},
	)
	if IsKingInCheck(b, White) {
		t.Fatal("a side without a king cannot be in check")
	}
	if r := Evaluate(b, White); r.Status != StatusPlaying {
		t.Fatalf("expected playing, got %s", r.Status)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	boards := map[string]struct {
		board Board
		side  Color
	}{
		"start":     {NewBoard(), White},
		"fools":     {foolsMate(t), White},
		"stalemate": {stalemate(), Black},
	}
	for name, tc := range boards {
		first := Evaluate(tc.board, tc.side)
		second := Evaluate(tc.board, tc.side)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("%s: %+v != %+v", name, first, second)
		}
	}
}

func TestInvalidColorPanics(t *testing.T) {
	expectPanic(t, ErrInvalidColor, func() { Evaluate(NewBoard(), Color("green")) })
	expectPanic(t, ErrInvalidColor, func() { IsKingInCheck(NewBoard(), Color("")) })
}
