package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// Routes mounts the live game channel. An empty origins list accepts any origin.
func (wsc *WebSocketController) Routes(router fiber.Router, origins []string) {
	router.Get("/ws/game/:gameId",
		middleware.EnsurePlayerID(),
		middleware.WebSocketUpgrade(),
		wsc.Authorize,
		websocket.New(wsc.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Origins:         origins,
		}),
	)
}

// Authorize rejects the upgrade with the usual HTTP error when the game is
// unknown or owned by someone else.
func (wsc *WebSocketController) Authorize(c *fiber.Ctx) error {
	if _, err := wsc.gameService.GetGameState(c.Params("gameId"), c.Locals("playerID").(string)); err != nil {
		return respondError(c, err)
	}
	return c.Next()
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)
	log.Debugf("websocket connection for game %s, player %s", gameID, playerID)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnf("failed to register connection: %v", err)
		c.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()),
		)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("game %s: read error: %v", gameID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.gameService.SendError(gameID, playerID, c, "malformed message")
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debugf("game %s: %s rejected: %v", gameID, msg.Type, err)
			wsc.gameService.SendError(gameID, playerID, c, err.Error())
		}
	}
}

// handleMessage applies one client message. The resulting state reaches the
// client through the game's broadcast, not through the return value.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("invalid move payload: %w", err)
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err

	case ws.MessageTypeSelect:
		var sel model.SelectRequest
		if err := json.Unmarshal(msg.Payload, &sel); err != nil {
			return fmt.Errorf("invalid select payload: %w", err)
		}
		_, err := wsc.gameService.SelectSquare(gameID, playerID, sel.Position)
		return err

	case ws.MessageTypeReset:
		_, err := wsc.gameService.ResetGame(gameID, playerID)
		return err

	case ws.MessageTypeSettings:
		var settings model.SettingsRequest
		if err := json.Unmarshal(msg.Payload, &settings); err != nil {
			return fmt.Errorf("invalid settings payload: %w", err)
		}
		_, err := wsc.gameService.UpdateSettings(gameID, playerID, settings)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
