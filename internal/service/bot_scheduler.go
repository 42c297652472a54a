package service

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/chessrules-backend/internal/config"
	"github.com/benbeisheim/chessrules-backend/internal/engine"
	"github.com/benbeisheim/chessrules-backend/internal/model"
)

// BotScheduler plays the automated side after an artificial thinking delay.
type BotScheduler struct {
	delays config.ThinkDelays
	// bot.Rand is not safe for concurrent use
	mu  sync.Mutex
	bot *engine.Bot
	wg  sync.WaitGroup
}

func NewBotScheduler(cfg config.BotConfig) *BotScheduler {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &BotScheduler{
		delays: cfg.Delays,
		bot:    engine.NewBot(cfg.Side, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))),
	}
}

// Schedule starts the bot's turn if one is due. The move is chosen when the
// delay expires, against the board as it is then.
func (s *BotScheduler) Schedule(game *model.Game) {
	generation, difficulty, ok := game.BeginThinking()
	if !ok {
		return
	}
	delay := s.delays.For(difficulty)
	log.Debugf("game %s: bot thinking for %s at %s", game.ID, delay, difficulty)

	s.wg.Add(1)
	time.AfterFunc(delay, func() {
		defer s.wg.Done()
		s.play(game, generation)
	})
}

func (s *BotScheduler) play(game *model.Game, generation uint64) {
	move, played, err := game.PlayBotMove(generation, s.choose)
	if err != nil {
		log.Errorf("game %s: bot move rejected: %v", game.ID, err)
		return
	}
	if played {
		log.Debugf("game %s: bot played %s-%s", game.ID, move.From, move.To)
	}
}

func (s *BotScheduler) choose(b engine.Board, difficulty engine.Difficulty) (engine.Move, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bot.SelectMove(b, difficulty)
}

// Wait blocks until every scheduled bot turn has finished.
func (s *BotScheduler) Wait() {
	s.wg.Wait()
}
