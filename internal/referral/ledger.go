// internal/referral/ledger.go
package referral

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/joeinnnn/arbix-bot/internal/store"
)

// ReservedPayload is the deep-link payload used for the support flow,
// never resolvable as a referral code.
const ReservedPayload = "support"

// Stats is one user's referral record. InviterID is zero until the
// user is attributed; it is written at most once.
type Stats struct {
	Code          string
	InviterID     int64
	ReferredCount int
	Rakeback      decimal.Decimal
	TotalEarned   decimal.Decimal
}

// Attributed reports whether the user already has an inviter.
func (s Stats) Attributed() bool {
	return s.InviterID != 0
}

// Ledger owns referral codes, attribution and rakeback balances. The
// code→user reverse index is maintained alongside the stats store.
// Attribute and Claim are read-modify-write sequences guarded by the
// user's keyed mutex so rapid duplicate events cannot double-apply.
type Ledger struct {
	logger *zap.Logger
	stats  *store.Store[*Stats]
	locks  *store.KeyedMutex

	mu         sync.RWMutex
	codeToUser map[string]int64
}

// NewLedger constructs an empty Ledger.
func NewLedger(logger *zap.Logger) *Ledger {
	l := &Ledger{
		logger:     logger.Named("referral"),
		locks:      store.NewKeyedMutex(),
		codeToUser: make(map[string]int64),
	}
	l.stats = store.New(func(userID int64) *Stats {
		code := CodeFor(userID)
		l.mu.Lock()
		l.codeToUser[code] = userID
		l.mu.Unlock()
		return &Stats{
			Code:        code,
			Rakeback:    decimal.Zero,
			TotalEarned: decimal.Zero,
		}
	})
	return l
}

// CodeFor derives a user's referral code: a base36 rendering of the id
// behind a fixed prefix. Deterministic and collision-free, since the
// encoding is injective over user ids.
func CodeFor(userID int64) string {
	return "r" + strconv.FormatInt(userID, 36)
}

// Get returns the user's stats, creating the record and registering
// its code on first reference.
func (l *Ledger) Get(userID int64) Stats {
	unlock := l.locks.Lock(userID)
	defer unlock()
	return *l.stats.GetOrCreate(userID)
}

// Resolve maps a referral code to its owner, if any.
func (l *Ledger) Resolve(code string) (int64, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	id, ok := l.codeToUser[code]
	return id, ok
}

// Attribute records that newUserID arrived through the given deep-link
// payload. It is a silent no-op for an empty or reserved payload, an
// unknown code, a self-referral, or a user that is already attributed.
// First attribution wins and the inviter's referred count is bumped
// exactly once, so retries with the same arguments change nothing.
func (l *Ledger) Attribute(newUserID int64, payload string) {
	if payload == "" || payload == ReservedPayload {
		return
	}
	inviterID, ok := l.Resolve(payload)
	if !ok || inviterID == newUserID {
		return
	}

	unlock := l.locks.Lock(newUserID)
	rec := l.stats.GetOrCreate(newUserID)
	if rec.Attributed() {
		unlock()
		return
	}
	rec.InviterID = inviterID
	unlock()

	// Only the winning attribution reaches the increment, so holding
	// the two locks sequentially rather than nested stays correct and
	// cannot deadlock on mutual attribution.
	invUnlock := l.locks.Lock(inviterID)
	inv := l.stats.GetOrCreate(inviterID)
	inv.ReferredCount++
	referred := inv.ReferredCount
	invUnlock()

	l.logger.Info("Referral attributed",
		zap.Int64("user_id", newUserID),
		zap.Int64("inviter_id", inviterID),
		zap.Int("inviter_referred", referred))
}

// Credit adds amount to the user's rakeback balance. Amounts that are
// not strictly positive are rejected. Authorization is the caller's
// concern; the ledger performs no ACL check.
func (l *Ledger) Credit(userID int64, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("credit amount must be positive, got %s", amount)
	}

	unlock := l.locks.Lock(userID)
	defer unlock()

	rec := l.stats.GetOrCreate(userID)
	rec.Rakeback = rec.Rakeback.Add(amount)
	l.logger.Info("Rakeback credited",
		zap.Int64("user_id", userID),
		zap.String("amount", amount.String()),
		zap.String("balance", rec.Rakeback.String()))
	return nil
}

// Claim moves the entire rakeback balance into the earned total and
// zeroes it, atomically for one user. Returns the claimed amount and
// false when there was nothing to claim.
func (l *Ledger) Claim(userID int64) (decimal.Decimal, bool) {
	unlock := l.locks.Lock(userID)
	defer unlock()

	rec := l.stats.GetOrCreate(userID)
	if !rec.Rakeback.IsPositive() {
		return decimal.Zero, false
	}
	claimed := rec.Rakeback
	rec.TotalEarned = rec.TotalEarned.Add(claimed)
	rec.Rakeback = decimal.Zero

	l.logger.Info("Rakeback claimed",
		zap.Int64("user_id", userID),
		zap.String("amount", claimed.String()),
		zap.String("total_earned", rec.TotalEarned.String()))
	return claimed, true
}

// InviteLink formats the user's referral deep link. Pure formatting,
// no state change beyond lazily materializing the record.
func (l *Ledger) InviteLink(userID int64, botUsername string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", botUsername, l.Get(userID).Code)
}
