// internal/bot/cards.go
package bot

import (
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// send delivers a plain text message. Delivery failures are logged and
// swallowed; they never reach the conversation.
func (s *Service) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := s.api.Send(msg); err != nil {
		s.logger.Warn("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// sendWithMenu delivers text with an inline keyboard attached.
func (s *Service) sendWithMenu(chatID int64, text string, menu tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = menu
	if _, err := s.api.Send(msg); err != nil {
		s.logger.Warn("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// sendCard delivers a caption over the branded card image when the
// image exists on disk, falling back to a plain keyboard message.
func (s *Service) sendCard(chatID int64, caption string, menu tgbotapi.InlineKeyboardMarkup) {
	path := s.cfg.CardImagePath
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path))
			photo.Caption = caption
			photo.ReplyMarkup = menu
			_, err := s.api.Send(photo)
			if err == nil {
				return
			}
			s.logger.Warn("Failed to send card photo, falling back to text",
				zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
	s.sendWithMenu(chatID, caption, menu)
}

// sendEphemeral delivers text and schedules its deletion. The timer is
// fire-and-forget: a failed deletion (already gone, no permission) is
// discarded and never affects conversation state.
func (s *Service) sendEphemeral(chatID int64, text string, ttl time.Duration) {
	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := s.api.Send(msg)
	if err != nil {
		s.logger.Warn("Failed to send ephemeral message", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	s.scheduleRedaction(chatID, sent.MessageID, ttl)
}

func (s *Service) scheduleRedaction(chatID int64, messageID int, ttl time.Duration) {
	time.AfterFunc(ttl, func() {
		del := tgbotapi.NewDeleteMessage(chatID, messageID)
		if _, err := s.api.Request(del); err != nil {
			s.logger.Debug("Redaction failed",
				zap.Int64("chat_id", chatID),
				zap.Int("message_id", messageID),
				zap.Error(err))
		}
	})
}

// clearReplyKeyboard sends a throwaway message that removes any reply
// keyboard, then deletes it almost immediately.
func (s *Service) clearReplyKeyboard(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "⁠")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	sent, err := s.api.Send(msg)
	if err != nil {
		return
	}
	s.scheduleRedaction(chatID, sent.MessageID, 200*time.Millisecond)
}
