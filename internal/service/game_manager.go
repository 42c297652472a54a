// service/game_manager.go
package service

import (
	"errors"
	"sort"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNotOwner     = errors.New("game belongs to another player")
)

type GameManager struct {
	games map[string]*model.Game
	// playerID -> set of owned game ids
	owned map[string]map[string]struct{}
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
		owned: make(map[string]map[string]struct{}),
	}
}

func (gm *GameManager) CreateGame(ownerID string, opts model.Options) *model.Game {
	gameID := uuid.New().String()
	game := model.NewGame(gameID, ownerID, opts)

	gm.mu.Lock()
	defer gm.mu.Unlock()

	gm.games[gameID] = game
	if gm.owned[ownerID] == nil {
		gm.owned[ownerID] = make(map[string]struct{})
	}
	gm.owned[ownerID][gameID] = struct{}{}
	log.Infof("created %s game %s for player %s", opts.Mode, gameID, ownerID)
	return game
}

// GetGame returns the game if playerID owns it.
func (gm *GameManager) GetGame(gameID, playerID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	if game.OwnerID != playerID {
		return nil, ErrNotOwner
	}
	return game, nil
}

// ListGames returns the ids of the games playerID owns, sorted.
func (gm *GameManager) ListGames(playerID string) []string {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	ids := maps.Keys(gm.owned[playerID])
	sort.Strings(ids)
	return ids
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
