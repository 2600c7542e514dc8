// internal/bot/menus.go
package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/joeinnnn/arbix-bot/internal/sniper"
)

// Callback actions. Button presses arrive as these strings.
const (
	actionTrade       = "trade"
	actionSniper      = "sniper"
	actionPortfolio   = "portfolio"
	actionAutomations = "automations"
	actionLimitOrders = "limit_orders"
	actionSettings    = "settings"
	actionWallet      = "wallet"
	actionWithdraw    = "withdraw"
	actionSupport     = "support"
	actionReferrals   = "referrals"
	actionRakeback    = "rakeback"
	actionRefresh     = "refresh"
	actionBackHome    = "back_home"

	actionWalletCreate = "wallet_create"
	actionWalletExport = "wallet_export"
	actionWalletRename = "wallet_rename"
	actionWalletDelete = "wallet_delete"
	actionWalletClose  = "wallet_close"

	actionSniperSetToken   = "sniper_set_token"
	actionSniperSetAmount  = "sniper_set_amount"
	actionSniperSetSlip    = "sniper_set_slip"
	actionSniperToggleAuto = "sniper_toggle_auto"
	actionSniperNow        = "sniper_now"
	actionSniperBack       = "sniper_back"

	actionTradePaste   = "trade_paste"
	actionTradeSetSlip = "trade_set_slip"

	actionWdMain   = "wd_main"
	actionWdCustom = "wd_custom"

	actionRefMyStats  = "ref_my_stats"
	actionRakeClaim   = "rake_claim"
	actionSupportBack = "support_back"
	actionSupportFAQ  = "support_faq"
	actionSupportTix  = "support_ticket"

	actionPfBalances = "pf_balances"
	actionPfPnL      = "pf_pnl"
	actionPfRecent   = "pf_recent"
)

func btn(label, action string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(label, action)
}

func row(buttons ...tgbotapi.InlineKeyboardButton) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(buttons...)
}

// mainMenu is the inline keyboard shown under welcome cards.
func mainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("📈 Trade", actionTrade), btn("🎯 Sniper", actionSniper), btn("📊 Portfolio", actionPortfolio)),
		row(btn("🤖 Automations", actionAutomations), btn("⏱ Limit Orders", actionLimitOrders), btn("⚙️ Settings", actionSettings)),
		row(btn("👛 Wallet", actionWallet), btn("💸 Withdraw", actionWithdraw), btn("🛟 Support", actionSupport)),
		row(btn("👥 Refer", actionReferrals), btn("🎁 Rakeback", actionRakeback)),
		row(btn("🔄 Refresh", actionRefresh)),
	)
}

func tradeMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("🪙 Paste Token", actionTradePaste)),
		row(btn("📉 Set Slippage", actionTradeSetSlip)),
		row(btn("⬅️ Back", actionBackHome)),
	)
}

func automationsMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("📈 DCA", "auto_dca"), btn("🎯 TP / SL", "auto_tp_sl")),
		row(btn("📉 Trailing Stop", "auto_trailing")),
		row(btn("⬅️ Back", actionBackHome)),
	)
}

func limitOrdersMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("🛒 Create Buy", "limit_create_buy"), btn("💰 Create Sell", "limit_create_sell")),
		row(btn("🗂 View Orders", "limit_view")),
		row(btn("⬅️ Back", actionBackHome)),
	)
}

func portfolioMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("💼 Balances", actionPfBalances), btn("📊 PnL", actionPfPnL)),
		row(btn("🧾 Recent Tx", actionPfRecent)),
		row(btn("⬅️ Back", actionBackHome)),
	)
}

func settingsMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("⚡ Gas Presets", "set_gas"), btn("📉 Slippage", "set_slip")),
		row(btn("👛 Wallet", actionWallet)),
		row(btn("⬅️ Back", actionBackHome)),
	)
}

func walletMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("💼 Create New", actionWalletCreate), btn("📤 Export", actionWalletExport)),
		row(btn("📝 Rename", actionWalletRename), btn("🗑 Delete", actionWalletDelete)),
		row(btn("⬅️ Close", actionWalletClose)),
	)
}

func sniperMenu(cfg sniper.Config) tgbotapi.InlineKeyboardMarkup {
	tokenMark := "⚪"
	if cfg.TokenMint != "" {
		tokenMark = "✅"
	}
	autoLabel := "⚪ Auto-Buy OFF"
	if cfg.AutoBuy {
		autoLabel = "🟢 Auto-Buy ON"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn(fmt.Sprintf("🎯 Token %s", tokenMark), actionSniperSetToken)),
		row(btn(fmt.Sprintf("💰 Amount: %g SOL", cfg.AmountSol), actionSniperSetAmount)),
		row(btn(fmt.Sprintf("📉 Slippage: %.2f%%", cfg.SlippagePercent()), actionSniperSetSlip)),
		row(btn(autoLabel, actionSniperToggleAuto)),
		row(btn("🚀 Snipe Now", actionSniperNow)),
		row(btn("⬅️ Back", actionSniperBack)),
	)
}

func referralsMenu(link string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(tgbotapi.NewInlineKeyboardButtonURL("🔗 Invite Link", link)),
		row(btn("📈 My Stats", actionRefMyStats)),
		row(btn("⬅️ Back", actionBackHome)),
	)
}

func rakebackMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("💵 Claim", actionRakeClaim)),
		row(btn("⬅️ Back", actionBackHome)),
	)
}

func supportMenu(botUsername string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(tgbotapi.NewInlineKeyboardButtonURL("💬 DM Support", "https://t.me/"+botUsername)),
		row(btn("📝 Open Ticket", actionSupportTix)),
		row(btn("❓ FAQ", actionSupportFAQ)),
		row(btn("⬅️ Back", actionSupportBack)),
	)
}

func faqBackMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("⬅️ Back", actionSupport)),
	)
}

func withdrawMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row(btn("➡️ To Main Wallet", actionWdMain), btn("✉️ Custom Address", actionWdCustom)),
		row(btn("⬅️ Back", actionBackHome)),
	)
}
