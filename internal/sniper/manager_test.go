package sniper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetReturnsDefaults(t *testing.T) {
	m := NewManager(zap.NewNop())

	cfg := m.Get(1)
	assert.Equal(t, "", cfg.TokenMint)
	assert.Equal(t, 0.1, cfg.AmountSol)
	assert.Equal(t, 150, cfg.SlippageBps)
	assert.False(t, cfg.AutoBuy)
}

func TestSetAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "simple decimal", input: "0.1", want: 0.1},
		{name: "integer", input: "2", want: 2},
		{name: "surrounding spaces", input: " 0.5 ", want: 0.5},
		{name: "rounds to six digits", input: "0.12345678", want: 0.123457},
		{name: "zero rejected", input: "0", wantErr: true},
		{name: "negative rejected", input: "-5", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "infinity rejected", input: "Inf", wantErr: true},
		{name: "overflow on rounding rejected", input: "1e305", wantErr: true},
		{name: "nan rejected", input: "NaN", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(zap.NewNop())
			cfg, err := m.SetAmount(1, tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAmount)
				assert.Equal(t, 0.1, m.Get(1).AmountSol, "rejected input must not mutate state")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.AmountSol)
			assert.Equal(t, tt.want, m.Get(1).AmountSol)
		})
	}
}

func TestSetSlippagePercent(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantBps int
		wantErr bool
	}{
		{name: "one and a half percent", input: "1.5", wantBps: 150},
		{name: "max boundary", input: "50", wantBps: 5000},
		{name: "fractional rounding", input: "0.333", wantBps: 33},
		{name: "zero rejected", input: "0", wantErr: true},
		{name: "above max rejected", input: "51", wantErr: true},
		{name: "negative rejected", input: "-1", wantErr: true},
		{name: "not a number", input: "fast", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(zap.NewNop())
			cfg, err := m.SetSlippagePercent(1, tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSlippage)
				assert.Equal(t, 150, m.Get(1).SlippageBps, "rejected input must not mutate state")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBps, cfg.SlippageBps)
		})
	}
}

func TestToggleAuto(t *testing.T) {
	m := NewManager(zap.NewNop())

	assert.True(t, m.ToggleAuto(1).AutoBuy)
	assert.False(t, m.ToggleAuto(1).AutoBuy)
}

func TestSnipeRequiresToken(t *testing.T) {
	m := NewManager(zap.NewNop())

	_, err := m.Snipe(1)
	assert.ErrorIs(t, err, ErrNoToken)

	mint := strings.Repeat("A", 44)
	m.SetToken(1, mint)
	cfg, err := m.Snipe(1)
	require.NoError(t, err)
	assert.Equal(t, mint, cfg.TokenMint)
	// Simulation leaves the config untouched.
	assert.Equal(t, cfg, m.Get(1))
}

func TestLooksLikeMint(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "typical mint length", text: strings.Repeat("A", 44), want: true},
		{name: "real-looking mint", text: "So11111111111111111111111111111111111111112", want: true},
		{name: "lower bound", text: strings.Repeat("z", 32), want: true},
		{name: "upper bound", text: strings.Repeat("z", 60), want: true},
		{name: "too short", text: strings.Repeat("A", 10), want: false},
		{name: "too long", text: strings.Repeat("A", 61), want: false},
		{name: "contains zero", text: strings.Repeat("A", 59) + "0", want: false},
		{name: "contains capital O", text: "O" + strings.Repeat("A", 43), want: false},
		{name: "contains capital I", text: "I" + strings.Repeat("A", 43), want: false},
		{name: "contains lowercase l", text: "l" + strings.Repeat("A", 43), want: false},
		{name: "lowercase i allowed", text: "i" + strings.Repeat("A", 43), want: true},
		{name: "contains space", text: strings.Repeat("A", 20) + " " + strings.Repeat("A", 20), want: false},
		{name: "empty", text: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeMint(tt.text))
		})
	}
}
