// internal/router/router.go
package router

import (
	"strings"

	"go.uber.org/zap"

	"github.com/joeinnnn/arbix-bot/internal/sniper"
	"github.com/joeinnnn/arbix-bot/internal/store"
	"github.com/joeinnnn/arbix-bot/internal/wallet"
)

// CancelKeyword aborts an open ticket prompt, matched case-insensitively.
const CancelKeyword = "/cancel"

// Outcome tells the transport what a routed message amounted to. The
// router never renders copy itself; it hands back plain data.
type Outcome int

const (
	// OutcomeNone means the message was consumed with nothing to show.
	OutcomeNone Outcome = iota
	OutcomeRenamed
	OutcomeTicketCancelled
	OutcomeTicketSent
	OutcomeTicketUnavailable
	OutcomeAmountInvalid
	OutcomeAmountSet
	OutcomeSlippageInvalid
	OutcomeSlippageSet
	OutcomeTokenSet
	// OutcomeForward means the message was not consumed and belongs to
	// command dispatch.
	OutcomeForward
)

// Ticket is a support request ready to forward to the operator chat.
type Ticket struct {
	UserID   int64
	Username string
	Body     string
}

// Result is the routed interpretation of one inbound text message.
type Result struct {
	Outcome Outcome
	Wallet  wallet.NamedWallet // set for OutcomeRenamed
	Config  sniper.Config      // set for the sniper outcomes
	Ticket  *Ticket            // set for OutcomeTicketSent
}

// Router is the conversational state machine: it decides which pending
// prompt an inbound free-text message answers, applies it through the
// owning manager, and clears the expectation.
type Router struct {
	logger           *zap.Logger
	wallets          *wallet.Manager
	sniper           *sniper.Manager
	pending          *store.Store[Expectation]
	supportAvailable bool
}

// New constructs a Router. supportAvailable reports whether a support
// destination is configured; without one, ticket bodies are answered
// with an unavailability notice instead of being forwarded.
func New(logger *zap.Logger, wallets *wallet.Manager, sn *sniper.Manager, supportAvailable bool) *Router {
	return &Router{
		logger:           logger.Named("router"),
		wallets:          wallets,
		sniper:           sn,
		pending:          store.New(func(int64) Expectation { return ExpectNone }),
		supportAvailable: supportAvailable,
	}
}

// Expect arms an expectation for the user's next message, superseding
// any previous one.
func (r *Router) Expect(userID int64, e Expectation) {
	r.pending.Put(userID, e)
	r.logger.Debug("Expectation set", zap.Int64("user_id", userID), zap.Stringer("expect", e))
}

// Pending returns the user's current expectation without clearing it.
func (r *Router) Pending(userID int64) Expectation {
	e, ok := r.pending.Peek(userID)
	if !ok {
		return ExpectNone
	}
	return e
}

// take reads and clears the expectation in one step.
func (r *Router) take(userID int64) Expectation {
	e := r.Pending(userID)
	if e != ExpectNone {
		r.pending.Put(userID, ExpectNone)
	}
	return e
}

// Route consumes one free-text message. Each branch is terminal for
// the message; a pending expectation is cleared regardless of whether
// the input validated.
func (r *Router) Route(userID int64, username, text string) Result {
	switch r.take(userID) {
	case ExpectRename:
		return r.consumeRename(userID, text)
	case ExpectTicket:
		return r.consumeTicket(userID, username, text)
	case ExpectAmount:
		return r.consumeAmount(userID, text)
	case ExpectSlippage:
		return r.consumeSlippage(userID, text)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed != "" && sniper.LooksLikeMint(trimmed) {
		cfg := r.sniper.SetToken(userID, trimmed)
		return Result{Outcome: OutcomeTokenSet, Config: cfg}
	}

	// Commands and anything else fall through to the dispatcher.
	return Result{Outcome: OutcomeForward}
}

func (r *Router) consumeRename(userID int64, text string) Result {
	w, ok := r.wallets.Rename(userID, text)
	if !ok {
		return Result{Outcome: OutcomeNone}
	}
	return Result{Outcome: OutcomeRenamed, Wallet: w}
}

func (r *Router) consumeTicket(userID int64, username, text string) Result {
	body := strings.TrimSpace(text)
	if strings.EqualFold(body, CancelKeyword) {
		return Result{Outcome: OutcomeTicketCancelled}
	}
	if body == "" {
		return Result{Outcome: OutcomeNone}
	}
	if !r.supportAvailable {
		return Result{Outcome: OutcomeTicketUnavailable}
	}
	r.logger.Info("Support ticket opened", zap.Int64("user_id", userID))
	return Result{
		Outcome: OutcomeTicketSent,
		Ticket:  &Ticket{UserID: userID, Username: username, Body: body},
	}
}

func (r *Router) consumeAmount(userID int64, text string) Result {
	cfg, err := r.sniper.SetAmount(userID, text)
	if err != nil {
		r.logger.Debug("Rejected amount input", zap.Int64("user_id", userID), zap.Error(err))
		return Result{Outcome: OutcomeAmountInvalid, Config: cfg}
	}
	return Result{Outcome: OutcomeAmountSet, Config: cfg}
}

func (r *Router) consumeSlippage(userID int64, text string) Result {
	cfg, err := r.sniper.SetSlippagePercent(userID, text)
	if err != nil {
		r.logger.Debug("Rejected slippage input", zap.Int64("user_id", userID), zap.Error(err))
		return Result{Outcome: OutcomeSlippageInvalid, Config: cfg}
	}
	return Result{Outcome: OutcomeSlippageSet, Config: cfg}
}
