// ====================================
// File: cmd/bot/main.go
// ====================================
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/joeinnnn/arbix-bot/internal/bot"
	"github.com/joeinnnn/arbix-bot/internal/config"
	"github.com/joeinnnn/arbix-bot/internal/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	// Environment first: the token usually lives in .env.
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not found, continuing with process environment")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(cfg.DebugLogging, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting ArbiX bot")

	runner := bot.NewRunner(logger)
	if err := runner.Initialize(cfg); err != nil {
		logger.Fatal("Failed to initialize bot", zap.Error(err))
	}

	if err := runner.Run(ctx); err != nil {
		logger.Fatal("Bot execution error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
