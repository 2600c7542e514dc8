// internal/wallet/manager.go
package wallet

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/joeinnnn/arbix-bot/internal/store"
)

// Manager owns the per-user wallet lists. Every operation takes the
// user's keyed mutex so two rapid events for the same user cannot
// interleave a read-modify-write on the list.
type Manager struct {
	logger  *zap.Logger
	wallets *store.Store[[]NamedWallet]
	locks   *store.KeyedMutex
}

// NewManager constructs a Manager with the given logger.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		logger:  logger.Named("wallet"),
		wallets: store.New(func(int64) []NamedWallet { return nil }),
		locks:   store.NewKeyedMutex(),
	}
}

// List returns the user's wallets, materializing a single default
// wallet if none exist yet.
func (m *Manager) List(userID int64) []NamedWallet {
	unlock := m.locks.Lock(userID)
	defer unlock()
	return m.listLocked(userID)
}

func (m *Manager) listLocked(userID int64) []NamedWallet {
	list := m.wallets.GetOrCreate(userID)
	if len(list) > 0 {
		return list
	}
	w, err := Generate(DefaultName)
	if err != nil {
		m.logger.Error("Failed to generate default wallet", zap.Int64("user_id", userID), zap.Error(err))
		return nil
	}
	list = []NamedWallet{w}
	m.wallets.Put(userID, list)
	m.logger.Debug("Materialized default wallet",
		zap.Int64("user_id", userID),
		zap.String("pubkey", w.String()))
	return list
}

// Create generates a new keypair and appends it to the user's list.
// Names follow a sequential scheme: the base name is used as-is when no
// existing wallet starts with it, otherwise "Base N+1".
func (m *Manager) Create(userID int64) (NamedWallet, error) {
	unlock := m.locks.Lock(userID)
	defer unlock()

	list := m.wallets.GetOrCreate(userID)
	name := nextName(list, DefaultName)
	w, err := Generate(name)
	if err != nil {
		return NamedWallet{}, err
	}
	m.wallets.Put(userID, append(list, w))
	m.logger.Info("Created wallet",
		zap.Int64("user_id", userID),
		zap.String("name", w.Name),
		zap.String("pubkey", w.String()))
	return w, nil
}

func nextName(list []NamedWallet, base string) string {
	count := 0
	for _, w := range list {
		if strings.HasPrefix(w.Name, base) {
			count++
		}
	}
	if count == 0 {
		return base
	}
	return fmt.Sprintf("%s %d", base, count+1)
}

// Rename sets the first wallet's name to the trimmed input. An empty
// trimmed input keeps the old name. Returns the (possibly unchanged)
// first wallet and false when the user has no wallets.
func (m *Manager) Rename(userID int64, newName string) (NamedWallet, bool) {
	unlock := m.locks.Lock(userID)
	defer unlock()

	list := m.wallets.GetOrCreate(userID)
	if len(list) == 0 {
		return NamedWallet{}, false
	}
	trimmed := strings.TrimSpace(newName)
	if trimmed != "" {
		list[0].Name = trimmed
		m.wallets.Put(userID, list)
	}
	return list[0], true
}

// Delete removes the first (oldest) wallet from the list. Returns the
// removed wallet and false when there was nothing to delete.
func (m *Manager) Delete(userID int64) (NamedWallet, bool) {
	unlock := m.locks.Lock(userID)
	defer unlock()

	list := m.wallets.GetOrCreate(userID)
	if len(list) == 0 {
		return NamedWallet{}, false
	}
	removed := list[0]
	m.wallets.Put(userID, list[1:])
	m.logger.Info("Deleted wallet",
		zap.Int64("user_id", userID),
		zap.String("name", removed.Name))
	return removed, true
}

// Export returns the base58 secret of the first wallet. The caller is
// responsible for time-boxing the exposure of the returned secret.
func (m *Manager) Export(userID int64) (string, bool) {
	unlock := m.locks.Lock(userID)
	defer unlock()

	list := m.wallets.GetOrCreate(userID)
	if len(list) == 0 {
		return "", false
	}
	return list[0].ExportSecret(), true
}
