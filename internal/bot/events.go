// internal/bot/events.go
package bot

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Kind discriminates inbound events at the transport boundary.
type Kind int

const (
	// KindText is a free-text message, including commands.
	KindText Kind = iota
	// KindButton is an inline keyboard press.
	KindButton
	// KindStart is /start, possibly carrying a deep-link payload.
	KindStart
)

// Event is the validated, transport-neutral form of one Telegram
// update. Exactly the fields implied by Kind are populated.
type Event struct {
	Kind      Kind
	UserID    int64
	ChatID    int64
	Username  string
	FirstName string

	Text    string // KindText: message body
	Action  string // KindButton: callback data
	Payload string // KindStart: deep-link payload

	CallbackID string // KindButton: id to acknowledge
}

// SenderLabel is the @username when present, the numeric id otherwise.
func (e Event) SenderLabel() string {
	if e.Username != "" {
		return "@" + e.Username
	}
	return strconv.FormatInt(e.UserID, 10)
}

// FromUpdate validates a raw update into an Event. Updates without a
// sender or without content we handle (edits, media, joins) are
// dropped with ok=false.
func FromUpdate(u tgbotapi.Update) (Event, bool) {
	if cb := u.CallbackQuery; cb != nil && cb.From != nil && cb.Data != "" {
		ev := Event{
			Kind:       KindButton,
			UserID:     cb.From.ID,
			ChatID:     cb.From.ID,
			Username:   cb.From.UserName,
			FirstName:  cb.From.FirstName,
			Action:     cb.Data,
			CallbackID: cb.ID,
		}
		if cb.Message != nil && cb.Message.Chat != nil {
			ev.ChatID = cb.Message.Chat.ID
		}
		return ev, true
	}

	msg := u.Message
	if msg == nil || msg.From == nil || msg.Chat == nil || msg.Text == "" {
		return Event{}, false
	}

	ev := Event{
		UserID:    msg.From.ID,
		ChatID:    msg.Chat.ID,
		Username:  msg.From.UserName,
		FirstName: msg.From.FirstName,
	}
	if msg.IsCommand() && msg.Command() == "start" {
		ev.Kind = KindStart
		ev.Payload = msg.CommandArguments()
		return ev, true
	}
	ev.Kind = KindText
	ev.Text = msg.Text
	return ev, true
}
