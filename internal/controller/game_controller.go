package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/benbeisheim/chessrules-backend/internal/engine"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// Routes mounts the REST endpoints on router, which must already resolve
// the player id.
func (gc *GameController) Routes(router fiber.Router) {
	router.Get("/games", gc.ListGames)

	gameRoutes := router.Group("/game")
	gameRoutes.Post("/create", gc.CreateGame)
	gameRoutes.Get("/:gameId", gc.GetGameState)
	gameRoutes.Get("/:gameId/legal", gc.LegalMoves)
	gameRoutes.Post("/:gameId/select", gc.SelectSquare)
	gameRoutes.Post("/:gameId/move", gc.MakeMove)
	gameRoutes.Post("/:gameId/reset", gc.ResetGame)
	gameRoutes.Put("/:gameId/settings", gc.UpdateSettings)
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	var req model.CreateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
	}
	gameID, err := gc.gameService.CreateGame(playerID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)
	return c.JSON(fiber.Map{
		"games": gc.gameService.ListGames(playerID),
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"), c.Locals("playerID").(string))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	pos := engine.Position{Row: c.QueryInt("row", -1), Col: c.QueryInt("col", -1)}

	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), c.Locals("playerID").(string), pos)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"from":  pos,
		"moves": moves,
	})
}

func (gc *GameController) SelectSquare(c *fiber.Ctx) error {
	var req model.SelectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return gc.respondState(c)(gc.gameService.SelectSquare(c.Params("gameId"), c.Locals("playerID").(string), req.Position))
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req model.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return gc.respondState(c)(gc.gameService.HandleMove(c.Params("gameId"), c.Locals("playerID").(string), req))
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	return gc.respondState(c)(gc.gameService.ResetGame(c.Params("gameId"), c.Locals("playerID").(string)))
}

func (gc *GameController) UpdateSettings(c *fiber.Ctx) error {
	var req model.SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	return gc.respondState(c)(gc.gameService.UpdateSettings(c.Params("gameId"), c.Locals("playerID").(string), req))
}

func (gc *GameController) respondState(c *fiber.Ctx) func(model.GameState, error) error {
	return func(state model.GameState, err error) error {
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(state)
	}
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid request body: " + err.Error(),
	})
}

func respondError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotOwner), errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrNotYourTurn), errors.Is(err, model.ErrGameOver):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrNotYourPiece),
		errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrUnknownMode),
		errors.Is(err, engine.ErrUnknownDifficulty):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
