// internal/bot/service.go
package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/joeinnnn/arbix-bot/internal/config"
	"github.com/joeinnnn/arbix-bot/internal/pricefeed"
	"github.com/joeinnnn/arbix-bot/internal/referral"
	"github.com/joeinnnn/arbix-bot/internal/router"
	"github.com/joeinnnn/arbix-bot/internal/sniper"
	"github.com/joeinnnn/arbix-bot/internal/wallet"
)

// exportRedactionDelay is how long an exported secret key stays
// visible before the message is proactively deleted.
const exportRedactionDelay = 10 * time.Minute

// Service wires the Telegram transport to the conversation core: the
// managers own the state, the router interprets free text, and this
// layer renders cards and keyboards.
type Service struct {
	api    *tgbotapi.BotAPI
	cfg    *config.Config
	logger *zap.Logger
	copy   *Copy

	wallets   *wallet.Manager
	sniper    *sniper.Manager
	referrals *referral.Ledger
	router    *router.Router
	prices    *pricefeed.Client

	redactAfter time.Duration
	wg          sync.WaitGroup
}

// NewService connects to Telegram and assembles the managers.
func NewService(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	api.Debug = cfg.DebugLogging

	logger = logger.Named("bot")
	logger.Info("Authorized on Telegram", zap.String("username", api.Self.UserName))

	wallets := wallet.NewManager(logger)
	sniperMgr := sniper.NewManager(logger)

	return &Service{
		api:         api,
		cfg:         cfg,
		logger:      logger,
		copy:        LoadCopy(cfg.CopyFile, logger),
		wallets:     wallets,
		sniper:      sniperMgr,
		referrals:   referral.NewLedger(logger),
		router:      router.New(logger, wallets, sniperMgr, cfg.SupportConfigured()),
		prices:      pricefeed.NewClient(cfg.PriceFeedURL, logger),
		redactAfter: exportRedactionDelay,
	}, nil
}

// Run consumes updates until ctx is cancelled, then waits for
// in-flight handlers to drain.
func (s *Service) Run(ctx context.Context) error {
	s.registerCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = s.cfg.UpdateTimeout
	updates := s.api.GetUpdatesChan(u)

	s.logger.Info("Listening for updates")
	for {
		select {
		case <-ctx.Done():
			s.api.StopReceivingUpdates()
			s.wg.Wait()
			s.logger.Info("Update loop stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				s.wg.Wait()
				return nil
			}
			ev, ok := FromUpdate(update)
			if !ok {
				continue
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.handleEvent(ev)
			}()
		}
	}
}

func (s *Service) handleEvent(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Handler panic", zap.Any("panic", r), zap.Int64("user_id", ev.UserID))
		}
	}()

	switch ev.Kind {
	case KindStart:
		s.referrals.Attribute(ev.UserID, ev.Payload)
		s.showWelcome(ev)
	case KindButton:
		s.ackCallback(ev.CallbackID, "")
		s.handleAction(ev)
	case KindText:
		s.handleText(ev)
	}
}

// handleText runs the pending-input router and renders its outcome.
// Commands reach handleCommand only on fallthrough: a pending prompt
// consumes the next message whatever it looks like.
func (s *Service) handleText(ev Event) {
	res := s.router.Route(ev.UserID, ev.Username, ev.Text)

	switch res.Outcome {
	case router.OutcomeNone:
		// Consumed with nothing to show.
	case router.OutcomeRenamed:
		s.sendCard(ev.ChatID, s.copy.Getf("renamed", res.Wallet.Name), mainMenu())
	case router.OutcomeTicketCancelled:
		s.send(ev.ChatID, s.copy.Get("ticket_cancelled"))
	case router.OutcomeTicketSent:
		s.forwardTicket(res.Ticket)
		s.send(ev.ChatID, s.copy.Get("ticket_sent"))
	case router.OutcomeTicketUnavailable:
		s.send(ev.ChatID, s.copy.Get("ticket_unavailable"))
	case router.OutcomeAmountInvalid:
		s.send(ev.ChatID, s.copy.Get("amount_invalid"))
	case router.OutcomeAmountSet:
		s.send(ev.ChatID, s.copy.Get("amount_updated"))
		s.showSniper(ev)
	case router.OutcomeSlippageInvalid:
		s.send(ev.ChatID, s.copy.Get("slip_invalid"))
	case router.OutcomeSlippageSet:
		s.send(ev.ChatID, s.copy.Get("slip_updated"))
		s.showSniper(ev)
	case router.OutcomeTokenSet:
		s.send(ev.ChatID, s.copy.Get("token_set"))
		s.showSniper(ev)
	case router.OutcomeForward:
		if isCommand(ev.Text) {
			s.handleCommand(ev)
		}
		// Plain chatter that matched nothing is dropped.
	}
}

// forwardTicket delivers a support ticket to the operator chat.
func (s *Service) forwardTicket(t *router.Ticket) {
	if t == nil || !s.cfg.SupportConfigured() {
		return
	}
	sender := t.Username
	if sender != "" {
		sender = "@" + sender
	} else {
		sender = fmt.Sprintf("%d", t.UserID)
	}
	header := fmt.Sprintf("📨 Support Ticket from %s\nUser ID: %d", sender, t.UserID)
	s.send(s.cfg.SupportAdminChatID, header+"\n\n"+t.Body)
}

func (s *Service) registerCommands() {
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Show welcome and main menu"},
		tgbotapi.BotCommand{Command: "menu", Description: "Show main menu"},
		tgbotapi.BotCommand{Command: "trade", Description: "Start trading flow"},
		tgbotapi.BotCommand{Command: "sniper", Description: "Configure sniping"},
		tgbotapi.BotCommand{Command: "portfolio", Description: "View balances and PnL"},
		tgbotapi.BotCommand{Command: "wallet", Description: "Show your wallet address"},
		tgbotapi.BotCommand{Command: "settings", Description: "Configure bot and wallet"},
		tgbotapi.BotCommand{Command: "help", Description: "Get help and support"},
	)
	if _, err := s.api.Request(cmds); err != nil {
		s.logger.Warn("Failed to register commands", zap.Error(err))
	}
}

func (s *Service) ackCallback(callbackID, text string) {
	if callbackID == "" {
		return
	}
	if _, err := s.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		s.logger.Debug("Failed to answer callback", zap.Error(err))
	}
}

func isCommand(text string) bool {
	return len(text) > 1 && text[0] == '/'
}
