package service

import (
	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/chessrules-backend/internal/config"
	"github.com/benbeisheim/chessrules-backend/internal/engine"
	"github.com/benbeisheim/chessrules-backend/internal/model"
)

type GameService struct {
	gameManager *GameManager
	scheduler   *BotScheduler
	botConfig   config.BotConfig
}

func NewGameService(gameManager *GameManager, scheduler *BotScheduler, botConfig config.BotConfig) *GameService {
	return &GameService{
		gameManager: gameManager,
		scheduler:   scheduler,
		botConfig:   botConfig,
	}
}

func (gs *GameService) CreateGame(playerID string, req model.CreateRequest) (string, error) {
	opts := model.Options{
		Mode:       model.ModeTwoPlayer,
		Difficulty: gs.botConfig.DefaultDifficulty,
		BotSide:    gs.botConfig.Side,
	}
	if req.Mode != "" {
		mode, err := model.ParseMode(string(req.Mode))
		if err != nil {
			return "", err
		}
		opts.Mode = mode
	}
	if req.Difficulty != "" {
		difficulty, err := engine.ParseDifficulty(string(req.Difficulty))
		if err != nil {
			return "", err
		}
		opts.Difficulty = difficulty
	}

	game := gs.gameManager.CreateGame(playerID, opts)
	gs.scheduler.Schedule(game)
	return game.ID, nil
}

func (gs *GameService) ListGames(playerID string) []string {
	return gs.gameManager.ListGames(playerID)
}

func (gs *GameService) GetGameState(gameID, playerID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID, playerID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gs *GameService) LegalMoves(gameID, playerID string, pos engine.Position) ([]engine.Position, error) {
	game, err := gs.gameManager.GetGame(gameID, playerID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(pos)
}

func (gs *GameService) SelectSquare(gameID, playerID string, pos engine.Position) (model.GameState, error) {
	return gs.mutate(gameID, playerID, func(game *model.Game) error {
		return game.SelectSquare(pos)
	})
}

func (gs *GameService) HandleMove(gameID, playerID string, move model.MoveRequest) (model.GameState, error) {
	return gs.mutate(gameID, playerID, func(game *model.Game) error {
		_, err := game.MakeMove(move)
		return err
	})
}

func (gs *GameService) ResetGame(gameID, playerID string) (model.GameState, error) {
	return gs.mutate(gameID, playerID, func(game *model.Game) error {
		game.Reset()
		log.Infof("game %s reset by player %s", gameID, playerID)
		return nil
	})
}

func (gs *GameService) UpdateSettings(gameID, playerID string, req model.SettingsRequest) (model.GameState, error) {
	return gs.mutate(gameID, playerID, func(game *model.Game) error {
		return game.ApplySettings(req)
	})
}

// mutate runs fn against an owned game and hands the turn to the bot if it
// is due afterwards.
func (gs *GameService) mutate(gameID, playerID string, fn func(*model.Game) error) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID, playerID)
	if err != nil {
		return model.GameState{}, err
	}
	if err := fn(game); err != nil {
		return model.GameState{}, err
	}
	gs.scheduler.Schedule(game)
	return game.GetState(), nil
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn model.Conn) error {
	game, err := gs.gameManager.GetGame(gameID, playerID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string, conn model.Conn) {
	game, err := gs.gameManager.GetGame(gameID, playerID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

func (gs *GameService) SendError(gameID, playerID string, conn model.Conn, message string) {
	game, err := gs.gameManager.GetGame(gameID, playerID)
	if err != nil {
		return
	}
	game.SendError(conn, message)
}
