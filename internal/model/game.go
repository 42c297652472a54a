package model

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
)

type Mode string

const (
	ModeTwoPlayer Mode = "two-player"
	ModeBot       Mode = "bot"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeTwoPlayer, ModeBot:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// The Game struct owns one board and everything derived from it. The engine
// never sees the session; it is handed a copy of the board on every call.
type Game struct {
	ID          string
	OwnerID     string
	mu          sync.Mutex
	state       GameState
	botSide     engine.Color
	generation  uint64
	version     uint64
	connections *GameConnections
}

type GameState struct {
	Board               engine.Board      `json:"board"`
	CurrentPlayer       engine.Color      `json:"currentPlayer"`
	SelectedSquare      *engine.Position  `json:"selectedSquare"`
	ValidMoves          []engine.Position `json:"validMoves"`
	GameStatus          engine.GameStatus `json:"gameStatus"`
	MoveHistory         []engine.Move     `json:"moveHistory"`
	CapturedPieces      CapturedPieces    `json:"capturedPieces"`
	LastMove            *engine.Move      `json:"lastMove"`
	GameMode            Mode              `json:"gameMode"`
	BotDifficulty       engine.Difficulty `json:"botDifficulty"`
	BotSide             engine.Color      `json:"botSide"`
	IsThinking          bool              `json:"isThinking"`
	IsInCheck           bool              `json:"isInCheck"`
	KingInCheckPosition *engine.Position  `json:"kingInCheckPosition"`
	// CheckResolved is set only on the state published by the move that
	// lifted a check; the next change of any kind clears it.
	CheckResolved bool `json:"checkResolved"`
}

type Options struct {
	Mode       Mode
	Difficulty engine.Difficulty
	BotSide    engine.Color
}

func NewGame(id, ownerID string, opts Options) *Game {
	if opts.Mode == "" {
		opts.Mode = ModeTwoPlayer
	}
	if opts.Difficulty == "" {
		opts.Difficulty = engine.Medium
	}
	if !opts.BotSide.Valid() {
		opts.BotSide = engine.Black
	}
	g := &Game{
		ID:          id,
		OwnerID:     ownerID,
		botSide:     opts.BotSide,
		connections: NewGameConnections(),
	}
	g.state = g.newGameState(opts.Mode, opts.Difficulty)
	return g
}

func (g *Game) newGameState(mode Mode, difficulty engine.Difficulty) GameState {
	state := GameState{
		Board:          engine.NewBoard(),
		CurrentPlayer:  engine.White,
		ValidMoves:     make([]engine.Position, 0),
		GameStatus:     engine.StatusPlaying,
		MoveHistory:    make([]engine.Move, 0),
		CapturedPieces: newCapturedPieces(),
		GameMode:       mode,
		BotDifficulty:  difficulty,
		BotSide:        g.botSide,
	}
	return state
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

// publish pushes the current state to every connection. Callers hold g.mu.
func (g *Game) publish() {
	g.version++
	go g.broadcastState(g.snapshot(), g.version)
}

func (g *Game) snapshot() GameState {
	s := g.state
	s.ValidMoves = slices.Clone(s.ValidMoves)
	s.MoveHistory = slices.Clone(s.MoveHistory)
	s.CapturedPieces = CapturedPieces{
		White: slices.Clone(s.CapturedPieces.White),
		Black: slices.Clone(s.CapturedPieces.Black),
	}
	return s
}

// LegalMoves returns the legal destinations of the piece on pos against the
// current board. An empty square has none.
func (g *Game) LegalMoves(pos engine.Position) ([]engine.Position, error) {
	if !engine.InBounds(pos) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	piece := g.state.Board.At(pos)
	if piece == nil {
		return []engine.Position{}, nil
	}
	return engine.LegalMoves(g.state.Board, pos, *piece), nil
}

// SelectSquare mirrors a click on the board: select an own piece, deselect
// it, switch to another own piece, or commit a move to a highlighted square.
func (g *Game) SelectSquare(pos engine.Position) error {
	if !engine.InBounds(pos) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.GameStatus.Terminal() {
		return ErrGameOver
	}
	if g.isBotTurn() {
		return ErrNotYourTurn
	}

	piece := g.state.Board.At(pos)
	selected := g.state.SelectedSquare
	switch {
	case selected != nil && selected.Equal(pos):
		g.clearSelection()
	case piece != nil && piece.Color == g.state.CurrentPlayer:
		g.state.SelectedSquare = &pos
		g.state.ValidMoves = engine.LegalMoves(g.state.Board, pos, *piece)
	case selected != nil && slices.ContainsFunc(g.state.ValidMoves, pos.Equal):
		// The highlighted set may be stale; executeMove re-validates.
		if err := g.executeMove(*selected, pos); err != nil {
			return err
		}
		return nil
	default:
		g.clearSelection()
	}
	g.state.CheckResolved = false
	g.publish()
	return nil
}

func (g *Game) clearSelection() {
	g.state.SelectedSquare = nil
	g.state.ValidMoves = make([]engine.Position, 0)
}

// MakeMove validates a human move against the current board and plays it.
func (g *Game) MakeMove(move MoveRequest) (engine.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	log.Debugf("game %s: move %s-%s", g.ID, move.From, move.To)

	if g.state.GameStatus.Terminal() {
		return engine.Move{}, ErrGameOver
	}
	if g.isBotTurn() {
		return engine.Move{}, ErrNotYourTurn
	}
	if err := g.executeMove(move.From, move.To); err != nil {
		return engine.Move{}, err
	}
	return *g.state.LastMove, nil
}

func (g *Game) validateMove(move MoveRequest) error {
	if !engine.InBounds(move.From) || !engine.InBounds(move.To) {
		return fmt.Errorf("%w: %s-%s", ErrOutOfBounds, move.From, move.To)
	}
	if g.state.GameStatus.Terminal() {
		return ErrGameOver
	}
	piece := g.state.Board.At(move.From)
	if piece == nil {
		return ErrNoPiece
	}
	if piece.Color != g.state.CurrentPlayer {
		return ErrNotYourPiece
	}
	return nil
}

// executeMove plays from-to after checking it against a freshly computed
// legal set, then refreshes the derived status. Callers hold g.mu.
func (g *Game) executeMove(from, to engine.Position) error {
	if err := g.validateMove(MoveRequest{From: from, To: to}); err != nil {
		return err
	}
	if !engine.IsMoveLegal(g.state.Board, from, to) {
		return ErrIllegalMove
	}

	move := engine.NewMove(g.state.Board, from, to)
	g.state.Board = engine.Apply(g.state.Board, move)
	if move.Captured != nil {
		switch move.Piece.Color {
		case engine.White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, *move.Captured)
		case engine.Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, *move.Captured)
		}
	}
	g.state.MoveHistory = append(g.state.MoveHistory, move)
	g.state.LastMove = &move
	g.state.CurrentPlayer = g.state.CurrentPlayer.Opponent()
	g.clearSelection()

	g.refreshStatus()
	g.publish()
	return nil
}

// refreshStatus recomputes check, checkmate and stalemate for the side to
// move. It must run after every change to the board.
func (g *Game) refreshStatus() {
	wasInCheck := g.state.IsInCheck
	report := engine.Evaluate(g.state.Board, g.state.CurrentPlayer)

	g.state.IsInCheck = report.InCheck
	g.state.KingInCheckPosition = report.KingPosition
	g.state.CheckResolved = wasInCheck && !report.InCheck
	g.state.GameStatus = report.Status

	if report.Status.Terminal() {
		log.Infof("game %s: %s for %s", g.ID, report.Status, g.state.CurrentPlayer)
	}
}

func (g *Game) isBotTurn() bool {
	return g.state.GameMode == ModeBot && g.state.CurrentPlayer == g.botSide
}

// BotToMove reports whether the bot should be scheduled now.
func (g *Game) BotToMove() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isBotTurn() && !g.state.GameStatus.Terminal() && !g.state.IsThinking
}

// BeginThinking marks the bot as thinking and returns the generation the
// eventual move must match. ok is false when no bot move is due.
func (g *Game) BeginThinking() (generation uint64, difficulty engine.Difficulty, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isBotTurn() || g.state.GameStatus.Terminal() || g.state.IsThinking {
		return 0, "", false
	}
	g.state.IsThinking = true
	g.state.CheckResolved = false
	g.publish()
	return g.generation, g.state.BotDifficulty, true
}

// PlayBotMove asks choose for a move on the board as it is now and plays it.
// Nothing happens if the game was reset or reconfigured since BeginThinking.
func (g *Game) PlayBotMove(generation uint64, choose func(engine.Board, engine.Difficulty) (engine.Move, bool)) (engine.Move, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if generation != g.generation {
		log.Debugf("game %s: dropping stale bot move", g.ID)
		return engine.Move{}, false, nil
	}
	g.state.IsThinking = false
	if !g.isBotTurn() || g.state.GameStatus.Terminal() {
		g.publish()
		return engine.Move{}, false, nil
	}

	move, ok := choose(g.state.Board, g.state.BotDifficulty)
	if !ok {
		// No legal move means the status already says mate or stalemate.
		g.refreshStatus()
		g.publish()
		return engine.Move{}, false, nil
	}
	if err := g.executeMove(move.From, move.To); err != nil {
		g.publish()
		return engine.Move{}, false, err
	}
	return move, true, nil
}

func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.reset(g.state.GameMode)
	g.publish()
}

func (g *Game) reset(mode Mode) {
	g.generation++
	g.state = g.newGameState(mode, g.state.BotDifficulty)
}

// ApplySettings changes the game mode and difficulty. A new mode starts a new
// game; a new difficulty applies from the next bot move.
func (g *Game) ApplySettings(req SettingsRequest) error {
	var (
		mode       Mode
		difficulty engine.Difficulty
		err        error
	)
	if req.Mode != "" {
		if mode, err = ParseMode(string(req.Mode)); err != nil {
			return err
		}
	}
	if req.Difficulty != "" {
		if difficulty, err = engine.ParseDifficulty(string(req.Difficulty)); err != nil {
			return err
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if difficulty != "" {
		g.state.BotDifficulty = difficulty
	}
	g.state.CheckResolved = false
	if mode != "" {
		g.reset(mode)
	}
	g.publish()
	return nil
}
