// internal/sniper/token.go
package sniper

// Mint address length bounds for the shape check.
const (
	minMintLen = 32
	maxMintLen = 60
)

// LooksLikeMint reports whether text has the shape of a base58 token
// mint address: 32 to 60 characters, all from the base58 alphabet
// (no 0, O, I or l). This is a shape check only, not a cryptographic
// validation — any conforming string is accepted.
func LooksLikeMint(text string) bool {
	if len(text) < minMintLen || len(text) > maxMintLen {
		return false
	}
	for _, r := range text {
		switch {
		case r >= '1' && r <= '9':
		case r >= 'A' && r <= 'H':
		case r >= 'J' && r <= 'N':
		case r >= 'P' && r <= 'Z':
		case r >= 'a' && r <= 'k':
		case r >= 'm' && r <= 'z':
		default:
			return false
		}
	}
	return true
}
