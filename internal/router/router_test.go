package router

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/joeinnnn/arbix-bot/internal/sniper"
	"github.com/joeinnnn/arbix-bot/internal/wallet"
)

func newRouter(t *testing.T, supportAvailable bool) (*Router, *wallet.Manager, *sniper.Manager) {
	t.Helper()
	logger := zap.NewNop()
	wm := wallet.NewManager(logger)
	sm := sniper.NewManager(logger)
	return New(logger, wm, sm, supportAvailable), wm, sm
}

func TestRenameConsumption(t *testing.T) {
	r, wm, _ := newRouter(t, false)
	wm.List(1)
	r.Expect(1, ExpectRename)

	res := r.Route(1, "alice", "  Degen Stack ")
	assert.Equal(t, OutcomeRenamed, res.Outcome)
	assert.Equal(t, "Degen Stack", res.Wallet.Name)
	assert.Equal(t, ExpectNone, r.Pending(1))
}

func TestRenameEmptyKeepsName(t *testing.T) {
	r, wm, _ := newRouter(t, false)
	wm.List(1)
	r.Expect(1, ExpectRename)

	res := r.Route(1, "alice", "   ")
	assert.Equal(t, OutcomeRenamed, res.Outcome)
	assert.Equal(t, wallet.DefaultName, res.Wallet.Name)
}

func TestRenameWithoutWalletsConsumesSilently(t *testing.T) {
	r, _, _ := newRouter(t, false)
	r.Expect(1, ExpectRename)

	res := r.Route(1, "alice", "New Name")
	assert.Equal(t, OutcomeNone, res.Outcome)
	assert.Equal(t, ExpectNone, r.Pending(1))
}

func TestTicketFlow(t *testing.T) {
	tests := []struct {
		name             string
		supportAvailable bool
		text             string
		want             Outcome
	}{
		{name: "cancel keyword", supportAvailable: true, text: "/cancel", want: OutcomeTicketCancelled},
		{name: "cancel is case-insensitive", supportAvailable: true, text: "/CANCEL", want: OutcomeTicketCancelled},
		{name: "forwarded when configured", supportAvailable: true, text: "my snipe is stuck", want: OutcomeTicketSent},
		{name: "unavailable without destination", supportAvailable: false, text: "my snipe is stuck", want: OutcomeTicketUnavailable},
		{name: "empty body consumed silently", supportAvailable: true, text: "   ", want: OutcomeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newRouter(t, tt.supportAvailable)
			r.Expect(1, ExpectTicket)

			res := r.Route(1, "alice", tt.text)
			assert.Equal(t, tt.want, res.Outcome)
			assert.Equal(t, ExpectNone, r.Pending(1), "ticket prompt must clear in every branch")

			if tt.want == OutcomeTicketSent {
				require.NotNil(t, res.Ticket)
				assert.Equal(t, int64(1), res.Ticket.UserID)
				assert.Equal(t, "alice", res.Ticket.Username)
				assert.Equal(t, "my snipe is stuck", res.Ticket.Body)
			} else {
				assert.Nil(t, res.Ticket)
			}
		})
	}
}

func TestAmountConsumption(t *testing.T) {
	r, _, sm := newRouter(t, false)
	r.Expect(1, ExpectAmount)

	res := r.Route(1, "alice", "0.25")
	assert.Equal(t, OutcomeAmountSet, res.Outcome)
	assert.Equal(t, 0.25, res.Config.AmountSol)
	assert.Equal(t, 0.25, sm.Get(1).AmountSol)
}

func TestSingleShotPrompt(t *testing.T) {
	r, _, sm := newRouter(t, false)
	r.Expect(1, ExpectAmount)

	res := r.Route(1, "alice", "not a number")
	assert.Equal(t, OutcomeAmountInvalid, res.Outcome)
	assert.Equal(t, ExpectNone, r.Pending(1), "invalid input still clears the prompt")
	assert.Equal(t, 0.1, sm.Get(1).AmountSol)

	// A later valid-looking amount is no longer an answer to the
	// prompt: it goes down the heuristic/dispatcher path.
	res = r.Route(1, "alice", "0.5")
	assert.Equal(t, OutcomeForward, res.Outcome)
	assert.Equal(t, 0.1, sm.Get(1).AmountSol)
}

func TestSlippageConsumption(t *testing.T) {
	r, _, sm := newRouter(t, false)

	r.Expect(1, ExpectSlippage)
	res := r.Route(1, "alice", "1.5")
	assert.Equal(t, OutcomeSlippageSet, res.Outcome)
	assert.Equal(t, 150, sm.Get(1).SlippageBps)

	r.Expect(1, ExpectSlippage)
	res = r.Route(1, "alice", "51")
	assert.Equal(t, OutcomeSlippageInvalid, res.Outcome)
	assert.Equal(t, 150, sm.Get(1).SlippageBps)
	assert.Equal(t, ExpectNone, r.Pending(1))
}

func TestLastPromptWins(t *testing.T) {
	r, _, sm := newRouter(t, false)

	r.Expect(1, ExpectAmount)
	r.Expect(1, ExpectSlippage)

	res := r.Route(1, "alice", "2")
	assert.Equal(t, OutcomeSlippageSet, res.Outcome)
	assert.Equal(t, 200, sm.Get(1).SlippageBps)
	assert.Equal(t, 0.1, sm.Get(1).AmountSol, "superseded amount prompt must not apply")
}

func TestMintHeuristicPath(t *testing.T) {
	r, _, sm := newRouter(t, false)
	mint := "So11111111111111111111111111111111111111112"

	res := r.Route(1, "alice", mint)
	assert.Equal(t, OutcomeTokenSet, res.Outcome)
	assert.Equal(t, mint, sm.Get(1).TokenMint)
}

func TestNonMintTextForwards(t *testing.T) {
	r, _, _ := newRouter(t, false)

	for _, text := range []string{
		"/menu",
		"hello there",
		"short",
		strings.Repeat("A", 59) + "0", // disallowed char
		"",
	} {
		res := r.Route(1, "alice", text)
		assert.Equal(t, OutcomeForward, res.Outcome, "text %q", text)
	}
}

func TestExpectationsAreDisjointPerUser(t *testing.T) {
	r, _, sm := newRouter(t, false)
	r.Expect(1, ExpectAmount)

	// Another user's message must not consume user 1's prompt.
	res := r.Route(2, "bob", "0.5")
	assert.Equal(t, OutcomeForward, res.Outcome)
	assert.Equal(t, ExpectAmount, r.Pending(1))

	res = r.Route(1, "alice", "0.5")
	assert.Equal(t, OutcomeAmountSet, res.Outcome)
	assert.Equal(t, 0.5, sm.Get(1).AmountSol)
}
