package main

import (
	"slices"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chessrules-backend/internal/config"
	"github.com/benbeisheim/chessrules-backend/internal/engine"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
)

func TestShutdownFinishesPendingBotTurn(t *testing.T) {
	cfg := config.Default().Bot
	cfg.Seed = 3
	cfg.Delays.Medium = config.Duration(30 * time.Millisecond)
	scheduler := service.NewBotScheduler(cfg)
	gs := service.NewGameService(service.NewGameManager(), scheduler, cfg)

	id, err := gs.CreateGame("p1", model.CreateRequest{Mode: model.ModeBot})
	if err != nil {
		t.Fatal(err)
	}
	move := model.MoveRequest{From: engine.Position{Row: 6, Col: 4}, To: engine.Position{Row: 4, Col: 4}}
	if state, err := gs.HandleMove(id, "p1", move); err != nil || !state.IsThinking {
		t.Fatalf("expected the bot to be thinking, got %v", err)
	}

	_ = shutdown(fiber.New(), scheduler)

	state, _ := gs.GetGameState(id, "p1")
	if state.IsThinking || len(state.MoveHistory) != 2 {
		t.Fatalf("expected the bot reply before shutdown returned, got %+v", state.MoveHistory)
	}
}

func TestOrigins(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"http://localhost:5173", []string{"http://localhost:5173"}},
		{" http://a.test , http://b.test ,", []string{"http://a.test", "http://b.test"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := origins(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("origins(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
