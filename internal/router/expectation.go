// internal/router/expectation.go
package router

// Expectation marks what the next free-text message from a user is
// answering. At most one expectation is pending per user; setting a
// new one supersedes the previous (last prompt wins), and consuming a
// message always clears it, valid input or not (single-shot prompts).
type Expectation int

const (
	ExpectNone Expectation = iota
	ExpectRename
	ExpectTicket
	ExpectAmount
	ExpectSlippage
)

func (e Expectation) String() string {
	switch e {
	case ExpectNone:
		return "none"
	case ExpectRename:
		return "rename"
	case ExpectTicket:
		return "ticket"
	case ExpectAmount:
		return "amount"
	case ExpectSlippage:
		return "slippage"
	default:
		return "unknown"
	}
}
