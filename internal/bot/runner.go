// internal/bot/runner.go
package bot

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/joeinnnn/arbix-bot/internal/config"
)

// Runner owns the bot lifecycle: load config, assemble the service,
// run the update loop until the context is cancelled.
type Runner struct {
	logger  *zap.Logger
	cfg     *config.Config
	service *Service
}

// NewRunner constructs a Runner with the given logger.
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{logger: logger}
}

// Initialize connects to Telegram with the loaded configuration.
func (r *Runner) Initialize(cfg *config.Config) error {
	r.cfg = cfg

	service, err := NewService(cfg, r.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize bot service: %w", err)
	}
	r.service = service

	r.logger.Info("Bot initialized",
		zap.String("bot_username", cfg.BotUsername),
		zap.Bool("support_configured", cfg.SupportConfigured()))
	return nil
}

// Run blocks until ctx is cancelled or the update stream ends.
func (r *Runner) Run(ctx context.Context) error {
	if r.service == nil {
		return errors.New("runner not initialized")
	}
	err := r.service.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
