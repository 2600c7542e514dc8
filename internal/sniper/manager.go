// internal/sniper/manager.go
package sniper

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/joeinnnn/arbix-bot/internal/store"
)

// ErrNoToken is reported when a snipe is triggered before a token mint
// has been configured.
var ErrNoToken = errors.New("no token mint set")

// ErrInvalidAmount is reported for amount inputs that are not a finite
// positive number.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInvalidSlippage is reported for slippage inputs outside (0, 50].
var ErrInvalidSlippage = errors.New("invalid slippage")

// Manager owns the per-user sniper configurations. Raw chat text is
// parsed defensively; state is only mutated after validation passes.
type Manager struct {
	logger  *zap.Logger
	configs *store.Store[Config]
}

// NewManager constructs a Manager with the given logger.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		logger:  logger.Named("sniper"),
		configs: store.New(func(int64) Config { return DefaultConfig() }),
	}
}

// Get returns the user's config, materializing the default lazily.
func (m *Manager) Get(userID int64) Config {
	return m.configs.GetOrCreate(userID)
}

// SetToken records the token mint to snipe. The mint is recognized by
// shape upstream (LooksLikeMint), never typed in directly.
func (m *Manager) SetToken(userID int64, mint string) Config {
	cfg := m.configs.GetOrCreate(userID)
	cfg.TokenMint = mint
	m.configs.Put(userID, cfg)
	m.logger.Info("Sniper token set", zap.Int64("user_id", userID), zap.String("mint", mint))
	return cfg
}

// SetAmount parses text as a SOL amount and stores it rounded to six
// fractional digits. Rejects non-finite and non-positive values.
func (m *Manager) SetAmount(userID int64, text string) (Config, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) || v <= 0 {
		return m.Get(userID), fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}

	rounded := math.Round(v*1e6) / 1e6
	if math.IsInf(rounded, 0) {
		return m.Get(userID), fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}

	cfg := m.configs.GetOrCreate(userID)
	cfg.AmountSol = rounded
	m.configs.Put(userID, cfg)
	m.logger.Info("Sniper amount set", zap.Int64("user_id", userID), zap.Float64("amount_sol", cfg.AmountSol))
	return cfg, nil
}

// SetSlippagePercent parses text as a percent in (0, 50] and stores it
// as integer basis points.
func (m *Manager) SetSlippagePercent(userID int64, text string) (Config, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) || v <= MinSlippagePercent || v > MaxSlippagePercent {
		return m.Get(userID), fmt.Errorf("%w: %q", ErrInvalidSlippage, text)
	}

	cfg := m.configs.GetOrCreate(userID)
	cfg.SlippageBps = int(math.Round(v * 100))
	m.configs.Put(userID, cfg)
	m.logger.Info("Sniper slippage set", zap.Int64("user_id", userID), zap.Int("slippage_bps", cfg.SlippageBps))
	return cfg, nil
}

// ToggleAuto flips the auto-buy flag and returns the updated config.
func (m *Manager) ToggleAuto(userID int64) Config {
	cfg := m.configs.GetOrCreate(userID)
	cfg.AutoBuy = !cfg.AutoBuy
	m.configs.Put(userID, cfg)
	return cfg
}

// Snipe validates that a token is configured and simulates the buy.
// The quote/execute step is a stub boundary: a real implementation
// slots in here without changing the surrounding contract. The config
// is left unchanged either way.
func (m *Manager) Snipe(userID int64) (Config, error) {
	cfg := m.configs.GetOrCreate(userID)
	if cfg.TokenMint == "" {
		return cfg, ErrNoToken
	}
	m.logger.Info("Simulated snipe",
		zap.Int64("user_id", userID),
		zap.String("mint", cfg.TokenMint),
		zap.Float64("amount_sol", cfg.AmountSol),
		zap.Int("slippage_bps", cfg.SlippageBps))
	return cfg, nil
}
