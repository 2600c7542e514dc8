// internal/bot/copy.go
package bot

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Copy holds the user-facing message templates. Every key has a
// compiled-in default; a YAML file of key→text pairs can override any
// subset of them.
type Copy struct {
	messages map[string]string
}

var defaultCopy = map[string]string{
	"rename_prompt":      "Send the new name for your main wallet (or type /cancel).",
	"renamed":            "Wallet renamed to: %s",
	"amount_prompt":      "Send the amount in SOL (e.g., 0.1).",
	"amount_invalid":     "Please send a valid positive number for amount in SOL.",
	"amount_updated":     "Amount updated.",
	"slip_prompt":        "Send slippage in percent (e.g., 1.5).",
	"slip_invalid":       "Please send a slippage between 0 and 50 (percent).",
	"slip_updated":       "Slippage updated.",
	"token_prompt":       "Paste the SPL token mint address to snipe.",
	"token_set":          "Token set for sniper.",
	"snipe_no_token":     "Set a token mint first.",
	"snipe_preparing":    "Preparing snipe (quote → swap) ...",
	"snipe_done":         "Snipe simulated. On-chain execution coming soon.",
	"wallet_created":     "Created %s:\n→ %s",
	"wallet_deleted":     "Deleted wallet: %s",
	"no_wallet_delete":   "No wallet to delete.",
	"no_wallet_export":   "No wallet to export.",
	"export_secret":      "⚠️ Private key (keep secret):\n%s",
	"ticket_prompt":      "Describe your issue. We will forward it to support. (/cancel to abort)",
	"ticket_cancelled":   "Ticket creation cancelled.",
	"ticket_sent":        "Thanks! Your message has been sent to support. We will get back to you.",
	"ticket_unavailable": "Support is currently unavailable. Please DM the support bot.",
	"claim_none":         "No rakeback to claim yet.",
	"claim_done":         "Rakeback claimed.",
	"keyboard_hidden":    "Keyboard hidden.",
	"unauthorized":       "Unauthorized.",
	"credit_usage":       "Usage: /rake_credit <userId> <amountSOL>",
	"credit_invalid":     "Invalid arguments.",
	"credit_done":        "Credited %s SOL rakeback to user %d.",
	"help":               "Support: DM @%s or open a ticket.",
	"withdraw":           "Withdraw: move funds to your main wallet.",
	"withdraw_soon":      "Withdrawals are coming soon.",
}

// NewCopy returns the compiled-in copy deck.
func NewCopy() *Copy {
	messages := make(map[string]string, len(defaultCopy))
	for k, v := range defaultCopy {
		messages[k] = v
	}
	return &Copy{messages: messages}
}

// LoadCopy returns the default deck with overrides from path applied.
// A missing or unreadable file falls back to the defaults; unknown
// keys in the file are rejected so typos surface instead of silently
// shipping default text.
func LoadCopy(path string, logger *zap.Logger) *Copy {
	c := NewCopy()
	if path == "" {
		return c
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		logger.Warn("Copy overrides not loaded", zap.String("path", path), zap.Error(err))
		return c
	}

	overrides := make(map[string]string)
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		logger.Warn("Failed to parse copy overrides", zap.String("path", path), zap.Error(err))
		return c
	}

	applied := 0
	for key, text := range overrides {
		if _, ok := c.messages[key]; !ok {
			logger.Warn("Unknown copy key ignored", zap.String("key", key))
			continue
		}
		if text != "" {
			c.messages[key] = text
			applied++
		}
	}
	logger.Info("Loaded copy overrides", zap.String("path", path), zap.Int("applied", applied))
	return c
}

// Get returns the message for key. Unknown keys return the key itself
// so a miss is visible in the chat rather than an empty message.
func (c *Copy) Get(key string) string {
	if text, ok := c.messages[key]; ok {
		return text
	}
	return key
}

// Getf formats the message for key with args.
func (c *Copy) Getf(key string, args ...interface{}) string {
	return fmt.Sprintf(c.Get(key), args...)
}
