// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	TelegramToken      string `mapstructure:"telegram_token"`
	BotUsername        string `mapstructure:"bot_username"`
	SupportAdminChatID int64  `mapstructure:"support_admin_chat_id"`
	CardImagePath      string `mapstructure:"card_image_path"`
	CopyFile           string `mapstructure:"copy_file"`
	PriceFeedURL       string `mapstructure:"price_feed_url"`
	LogFile            string `mapstructure:"log_file"`
	DebugLogging       bool   `mapstructure:"debug_logging"`
	UpdateTimeout      int    `mapstructure:"update_timeout"`
}

const (
	DefaultBotUsername   = "ArbiXSolanabot"
	DefaultCardImagePath = "ArbiX.jpg"
	DefaultLogFile       = "logs/bot.log"
	DefaultUpdateTimeout = 60
)

// SupportConfigured reports whether a support destination exists.
func (c *Config) SupportConfigured() bool {
	return c.SupportAdminChatID != 0
}

// Load reads the config file at path, then applies environment
// overrides. A missing file is not an error: the bot can run entirely
// from environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"bot_username":    DefaultBotUsername,
		"card_image_path": DefaultCardImagePath,
		"log_file":        DefaultLogFile,
		"update_timeout":  DefaultUpdateTimeout,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvironmentVariables(v, &cfg)

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if cfg.TelegramToken == "" {
		return errors.New("missing telegram_token in configuration")
	}
	if cfg.BotUsername == "" {
		return errors.New("bot_username must not be empty")
	}
	if cfg.UpdateTimeout <= 0 {
		return errors.New("invalid update_timeout")
	}
	return nil
}

func loadEnvironmentVariables(v *viper.Viper, cfg *Config) {
	v.AutomaticEnv()

	if token := v.GetString("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if username := v.GetString("TELEGRAM_BOT_USERNAME"); username != "" {
		cfg.BotUsername = username
	}
	if chatID := v.GetInt64("SUPPORT_ADMIN_CHAT_ID"); chatID != 0 {
		cfg.SupportAdminChatID = chatID
	}
	if feed := v.GetString("PRICE_FEED_URL"); feed != "" {
		cfg.PriceFeedURL = feed
	}
}
