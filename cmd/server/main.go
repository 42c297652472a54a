package main

import (
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/benbeisheim/chessrules-backend/internal/config"
	"github.com/benbeisheim/chessrules-backend/internal/controller"
	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.AllowOrigins, "origins", cfg.AllowOrigins, "comma separated CORS origins")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	flag.Uint64Var(&cfg.Bot.Seed, "seed", cfg.Bot.Seed, "bot random seed, 0 seeds from the clock")
	saveConfig := flag.Bool("save-config", false, "write the effective config to the XDG config dir and exit")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *saveConfig {
		if err := cfg.Save(); err != nil {
			log.Fatalf("saving config: %v", err)
		}
		os.Exit(0)
	}
	log.SetLevel(cfg.Level())

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, PUT, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager()
	scheduler := service.NewBotScheduler(cfg.Bot)
	gameService := service.NewGameService(gameManager, scheduler, cfg.Bot)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	wsController.Routes(app, origins(cfg.AllowOrigins))
	gameController.Routes(app.Group("/api", middleware.EnsurePlayerID()))

	go func() {
		log.Infof("listening on %s", cfg.Addr)
		if err := app.Listen(cfg.Addr); err != nil {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
	if err := shutdown(app, scheduler); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}

// shutdown stops accepting requests, then lets pending bot turns finish.
func shutdown(app *fiber.App, scheduler *service.BotScheduler) error {
	err := app.ShutdownWithTimeout(5 * time.Second)
	scheduler.Wait()
	return err
}

func origins(list string) []string {
	var out []string
	for _, o := range strings.Split(list, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
