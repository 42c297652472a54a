package engine

import (
	"fmt"
	"strings"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Easy, Medium, Hard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
}

// Rand is the random source used by the easy and medium tiers.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

var captureValues = map[PieceType]int{
	Pawn:   1,
	Knight: 3,
	Bishop: 3,
	Rook:   5,
	Queen:  9,
	King:   100,
}

var centerSquares = []Position{{Row: 3, Col: 3}, {Row: 3, Col: 4}, {Row: 4, Col: 3}, {Row: 4, Col: 4}}

// ScoreMove is the static evaluation used by the hard tier: ten times the
// value of the captured piece plus two for landing on a center square.
func ScoreMove(m Move) int {
	score := 0
	if m.Captured != nil {
		score += captureValues[m.Captured.Type] * 10
	}
	for _, sq := range centerSquares {
		if sq.Equal(m.To) {
			score += 2
			break
		}
	}
	return score
}

// Bot picks moves for one side of the board.
type Bot struct {
	Side Color
	Rand Rand
}

func NewBot(side Color, rng Rand) *Bot {
	mustColor(side)
	return &Bot{Side: side, Rand: rng}
}

// SelectMove returns a legal move for the bot's side, or false if there is
// none. Unknown difficulties play like easy.
func (bot *Bot) SelectMove(b Board, difficulty Difficulty) (Move, bool) {
	moves := allLegalMoves(&b, bot.Side)
	if len(moves) == 0 {
		return Move{}, false
	}

	switch difficulty {
	case Medium:
		captures := []Move{}
		for _, m := range moves {
			if m.IsCapture() {
				captures = append(captures, m)
			}
		}
		if len(captures) > 0 {
			return bot.pick(captures), true
		}
		return bot.pick(moves), true
	case Hard:
		best, bestScore := moves[0], ScoreMove(moves[0])
		for _, m := range moves[1:] {
			// Strictly greater keeps the first of equal scores.
			if s := ScoreMove(m); s > bestScore {
				best, bestScore = m, s
			}
		}
		return best, true
	default:
		return bot.pick(moves), true
	}
}

func (bot *Bot) pick(moves []Move) Move {
	return moves[bot.Rand.IntN(len(moves))]
}

// SelectBotMove picks a move for black, the side the bot conventionally plays.
func SelectBotMove(b Board, difficulty Difficulty, rng Rand) (Move, bool) {
	return NewBot(Black, rng).SelectMove(b, difficulty)
}
