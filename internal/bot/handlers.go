// internal/bot/handlers.go
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/joeinnnn/arbix-bot/internal/router"
)

func (s *Service) showWelcome(ev Event) {
	firstName := ev.FirstName
	if firstName == "" {
		firstName = "there"
	}
	list := s.wallets.List(ev.UserID)
	pubkey := "—"
	if len(list) > 0 {
		pubkey = list[0].PublicKey().String()
	}

	caption := strings.Join([]string{
		fmt.Sprintf("👋 Welcome %s!", firstName),
		"ArbiX — Telegram memecoin trading, simplified.",
		"",
		"Your Solana Wallet Address:",
		"→ " + pubkey,
		"",
		"Resources:",
		"• Website: https://arbi-x-lake.vercel.app/",
		"• Docs: https://github.com/Joeinnnn/ArbiX",
		fmt.Sprintf("• Support: https://t.me/%s?start=%s", s.cfg.BotUsername, "support"),
		"",
		"Use the menu below to get started.",
	}, "\n")

	s.clearReplyKeyboard(ev.ChatID)
	s.sendCard(ev.ChatID, caption, mainMenu())
}

func (s *Service) showWallets(ev Event) {
	list := s.wallets.List(ev.UserID)
	lines := make([]string, 0, len(list)+4)
	lines = append(lines, "🧾 Wallets", "")
	for _, w := range list {
		lines = append(lines, fmt.Sprintf("→ %s - %s", w.Name, w.PublicKey()))
	}
	lines = append(lines, "", "💡 Select an action below.")
	s.sendCard(ev.ChatID, strings.Join(lines, "\n"), walletMenu())
}

func (s *Service) showSniper(ev Event) {
	cfg := s.sniper.Get(ev.UserID)
	token := cfg.TokenMint
	if token == "" {
		token = "—"
	}
	auto := "OFF"
	if cfg.AutoBuy {
		auto = "ON"
	}
	text := strings.Join([]string{
		"🎯 Sniper",
		"",
		"Token: " + token,
		fmt.Sprintf("Amount: %g SOL", cfg.AmountSol),
		fmt.Sprintf("Slippage: %.2f%%", cfg.SlippagePercent()),
		"Auto-Buy: " + auto,
		"",
		"Tips:",
		"• Paste a token mint address to set token.",
		"• You can also tap buttons to adjust settings.",
	}, "\n")
	s.sendCard(ev.ChatID, text, sniperMenu(cfg))
}

func (s *Service) showReferrals(ev Event) {
	rs := s.referrals.Get(ev.UserID)
	link := s.referrals.InviteLink(ev.UserID, s.cfg.BotUsername)
	text := strings.Join([]string{
		"👥 Referral Program",
		"",
		"Invite link: " + link,
		fmt.Sprintf("Referred users: %d", rs.ReferredCount),
		fmt.Sprintf("Rakeback: %s SOL", rs.Rakeback),
		fmt.Sprintf("Total earned: %s SOL", rs.TotalEarned),
	}, "\n")
	s.sendCard(ev.ChatID, text, referralsMenu(link))
}

func (s *Service) showReferralStats(ev Event) {
	rs := s.referrals.Get(ev.UserID)
	link := s.referrals.InviteLink(ev.UserID, s.cfg.BotUsername)
	text := strings.Join([]string{
		"📈 My Referral Stats",
		"",
		"Invite link: " + link,
		fmt.Sprintf("Referred users: %d", rs.ReferredCount),
		fmt.Sprintf("Rakeback: %s SOL", rs.Rakeback),
		fmt.Sprintf("Total earned: %s SOL", rs.TotalEarned),
	}, "\n")
	s.sendCard(ev.ChatID, text, referralsMenu(link))
}

func (s *Service) showRakeback(ev Event) {
	rs := s.referrals.Get(ev.UserID)
	text := strings.Join([]string{
		"🎁 Rakeback",
		"",
		fmt.Sprintf("Current balance: %s SOL", rs.Rakeback),
		fmt.Sprintf("Total earned: %s SOL", rs.TotalEarned),
		"",
		"Earn rakeback when your referrals trade. Coming soon.",
	}, "\n")
	s.sendCard(ev.ChatID, text, rakebackMenu())
}

func (s *Service) showSupport(ev Event) {
	s.sendCard(ev.ChatID, "Support Center", supportMenu(s.cfg.BotUsername))
}

func (s *Service) showFAQ(ev Event) {
	faq := strings.Join([]string{
		"❓ FAQ",
		"",
		"Q: Is ArbiX self-custodial?",
		"A: Yes, your keys stay in your device/session. Export any time.",
		"",
		"Q: What networks are supported?",
		"A: Solana for now.",
		"",
		"Q: How do I report a bug?",
		"A: Open a ticket in Support or DM the support bot.",
	}, "\n")
	s.sendCard(ev.ChatID, faq, faqBackMenu())
}

// showBalances lists wallet addresses with a SOL price line when the
// feed answers in time. A feed failure just drops the price line.
func (s *Service) showBalances(ev Event) {
	list := s.wallets.List(ev.UserID)
	lines := make([]string, 0, len(list)+4)
	lines = append(lines, "💼 Balances", "")
	for _, w := range list {
		lines = append(lines, fmt.Sprintf("→ %s - %s", w.Name, w.PublicKey()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if price, err := s.prices.SolPrice(ctx); err == nil {
		lines = append(lines, "", fmt.Sprintf("SOL price: $%.2f", price))
	}

	s.sendCard(ev.ChatID, strings.Join(lines, "\n"), portfolioMenu())
}

func (s *Service) handleAction(ev Event) {
	switch ev.Action {
	case actionTrade:
		s.sendCard(ev.ChatID, "Trade", tradeMenu())
	case actionSniper:
		s.showSniper(ev)
	case actionPortfolio:
		s.sendCard(ev.ChatID, "Portfolio", portfolioMenu())
	case actionAutomations:
		s.sendCard(ev.ChatID, "Automations", automationsMenu())
	case actionLimitOrders:
		s.sendCard(ev.ChatID, "Limit Orders", limitOrdersMenu())
	case actionSettings:
		s.sendCard(ev.ChatID, "Settings", settingsMenu())
	case actionWithdraw:
		s.sendCard(ev.ChatID, s.copy.Get("withdraw"), withdrawMenu())
	case actionWdMain, actionWdCustom:
		s.sendCard(ev.ChatID, s.copy.Get("withdraw_soon"), mainMenu())
	case actionReferrals:
		s.showReferrals(ev)
	case actionRefMyStats:
		s.showReferralStats(ev)
	case actionRakeback:
		s.showRakeback(ev)
	case actionRakeClaim:
		s.handleClaim(ev)
	case actionSupport:
		s.showSupport(ev)
	case actionSupportBack, actionBackHome, actionRefresh, actionSniperBack:
		s.showWelcome(ev)
	case actionSupportFAQ:
		s.showFAQ(ev)
	case actionSupportTix:
		s.router.Expect(ev.UserID, router.ExpectTicket)
		s.send(ev.ChatID, s.copy.Get("ticket_prompt"))

	case actionWallet:
		s.showWallets(ev)
	case actionWalletCreate:
		s.handleWalletCreate(ev)
	case actionWalletExport:
		s.handleWalletExport(ev)
	case actionWalletRename:
		s.router.Expect(ev.UserID, router.ExpectRename)
		s.send(ev.ChatID, s.copy.Get("rename_prompt"))
	case actionWalletDelete:
		s.handleWalletDelete(ev)
	case actionWalletClose:
		s.showWelcome(ev)

	case actionSniperSetToken, actionTradePaste:
		s.send(ev.ChatID, s.copy.Get("token_prompt"))
	case actionSniperSetAmount:
		s.router.Expect(ev.UserID, router.ExpectAmount)
		s.send(ev.ChatID, s.copy.Get("amount_prompt"))
	case actionSniperSetSlip, actionTradeSetSlip, "set_slip":
		s.router.Expect(ev.UserID, router.ExpectSlippage)
		s.send(ev.ChatID, s.copy.Get("slip_prompt"))
	case actionSniperToggleAuto:
		s.sniper.ToggleAuto(ev.UserID)
		s.showSniper(ev)
	case actionSniperNow:
		s.handleSnipe(ev)

	case actionPfBalances:
		s.showBalances(ev)

	default:
		s.logger.Debug("Unhandled action", zap.String("action", ev.Action), zap.Int64("user_id", ev.UserID))
	}
}

func (s *Service) handleWalletCreate(ev Event) {
	w, err := s.wallets.Create(ev.UserID)
	if err != nil {
		s.logger.Error("Wallet creation failed", zap.Int64("user_id", ev.UserID), zap.Error(err))
		return
	}
	s.sendCard(ev.ChatID, s.copy.Getf("wallet_created", w.Name, w.PublicKey()), mainMenu())
}

func (s *Service) handleWalletExport(ev Event) {
	secret, ok := s.wallets.Export(ev.UserID)
	if !ok {
		s.sendWithMenu(ev.ChatID, s.copy.Get("no_wallet_export"), mainMenu())
		return
	}
	// The secret stays visible for a fixed window, then the message is
	// proactively deleted if Telegram still allows it.
	s.sendEphemeral(ev.ChatID, s.copy.Getf("export_secret", secret), s.redactAfter)
}

func (s *Service) handleWalletDelete(ev Event) {
	removed, ok := s.wallets.Delete(ev.UserID)
	if !ok {
		s.send(ev.ChatID, s.copy.Get("no_wallet_delete"))
		return
	}
	s.send(ev.ChatID, s.copy.Getf("wallet_deleted", removed.Name))
}

func (s *Service) handleSnipe(ev Event) {
	if _, err := s.sniper.Snipe(ev.UserID); err != nil {
		s.send(ev.ChatID, s.copy.Get("snipe_no_token"))
		return
	}
	s.send(ev.ChatID, s.copy.Get("snipe_preparing"))
	s.send(ev.ChatID, s.copy.Get("snipe_done"))
	s.showSniper(ev)
}

func (s *Service) handleClaim(ev Event) {
	if _, ok := s.referrals.Claim(ev.UserID); !ok {
		s.send(ev.ChatID, s.copy.Get("claim_none"))
		return
	}
	s.send(ev.ChatID, s.copy.Get("claim_done"))
}

func (s *Service) handleCommand(ev Event) {
	cmd := ev.Text
	if i := strings.IndexAny(cmd, " \t"); i > 0 {
		cmd = cmd[:i]
	}
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}

	switch cmd {
	case "/menu":
		s.showWelcome(ev)
	case "/trade":
		s.sendCard(ev.ChatID, "Trade", tradeMenu())
	case "/sniper":
		s.showSniper(ev)
	case "/portfolio":
		s.sendCard(ev.ChatID, "Portfolio", portfolioMenu())
	case "/wallet":
		s.showWallets(ev)
	case "/settings":
		s.sendCard(ev.ChatID, "Settings", settingsMenu())
	case "/help":
		s.sendWithMenu(ev.ChatID, s.copy.Getf("help", s.cfg.BotUsername), mainMenu())
	case "/hide":
		msg := tgbotapi.NewMessage(ev.ChatID, s.copy.Get("keyboard_hidden"))
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		if _, err := s.api.Send(msg); err != nil {
			s.logger.Warn("Failed to send message", zap.Error(err))
		}
	case "/rake_credit":
		s.handleRakeCredit(ev)
	default:
		s.logger.Debug("Unknown command", zap.String("command", cmd), zap.Int64("user_id", ev.UserID))
	}
}

// handleRakeCredit is the operator command that credits rakeback
// manually: /rake_credit <userId> <amountSOL>. The ACL is the
// transport identity check against the configured admin chat.
func (s *Service) handleRakeCredit(ev Event) {
	if !s.cfg.SupportConfigured() || ev.UserID != s.cfg.SupportAdminChatID {
		s.send(ev.ChatID, s.copy.Get("unauthorized"))
		return
	}

	parts := strings.Fields(ev.Text)
	if len(parts) < 3 {
		s.send(ev.ChatID, s.copy.Get("credit_usage"))
		return
	}
	userID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		s.send(ev.ChatID, s.copy.Get("credit_invalid"))
		return
	}
	amount, err := decimal.NewFromString(parts[2])
	if err != nil || !amount.IsPositive() {
		s.send(ev.ChatID, s.copy.Get("credit_invalid"))
		return
	}

	if err := s.referrals.Credit(userID, amount); err != nil {
		s.send(ev.ChatID, s.copy.Get("credit_invalid"))
		return
	}
	s.send(ev.ChatID, s.copy.Getf("credit_done", amount, userID))
}
