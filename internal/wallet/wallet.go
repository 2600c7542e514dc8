// ==================================
// File: internal/wallet/wallet.go
// ==================================
package wallet

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// DefaultName is the base name for lazily created and new wallets.
const DefaultName = "Main Wallet"

// NamedWallet is one user-owned Solana keypair with a display name.
type NamedWallet struct {
	Name string
	Key  solana.PrivateKey
}

// Generate creates a wallet with a fresh random keypair.
func Generate(name string) (NamedWallet, error) {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return NamedWallet{}, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return NamedWallet{Name: name, Key: key}, nil
}

// PublicKey returns the receiving address of the wallet.
func (w NamedWallet) PublicKey() solana.PublicKey {
	return w.Key.PublicKey()
}

// ExportSecret returns the base58-encoded secret key. Callers own the
// exposure window of the returned value.
func (w NamedWallet) ExportSecret() string {
	return base58.Encode(w.Key)
}

// String returns the wallet's public key in base58.
func (w NamedWallet) String() string {
	return w.PublicKey().String()
}
