// internal/sniper/config.go
package sniper

import "fmt"

// Slippage bounds accepted from user input, in percent.
const (
	MinSlippagePercent = 0.0
	MaxSlippagePercent = 50.0
)

// Config holds one user's auto-buy parameters.
type Config struct {
	TokenMint   string  // base58 token address to buy, "" until set
	AmountSol   float64 // amount in SOL to spend
	SlippageBps int     // 1% = 100 bps
	AutoBuy     bool    // whether to auto-execute when armed
}

// DefaultConfig returns the config every user starts with.
func DefaultConfig() Config {
	return Config{
		TokenMint:   "",
		AmountSol:   0.1,
		SlippageBps: 150,
		AutoBuy:     false,
	}
}

// SlippagePercent returns the slippage as a percent for display.
func (c Config) SlippagePercent() float64 {
	return float64(c.SlippageBps) / 100.0
}

func (c Config) String() string {
	token := c.TokenMint
	if token == "" {
		token = "—"
	}
	auto := "OFF"
	if c.AutoBuy {
		auto = "ON"
	}
	return fmt.Sprintf("token=%s amount=%g SOL slippage=%.2f%% auto=%s",
		token, c.AmountSol, c.SlippagePercent(), auto)
}
