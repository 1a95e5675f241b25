package clients

import "fmt"

// ChainMismatchError is the distinguished wallet fault raised when a
// transfer fails because the wallet's signing chain differs from the chain
// it reports. Some wallets let the user switch chains without updating the
// reported chain id; the payment executor consumes this to force a second
// switch and retry once.
type ChainMismatchError struct {
	Expected uint64
	Actual   uint64
}

func (e *ChainMismatchError) Error() string {
	return fmt.Sprintf("wallet chain mismatch: expected chain %d, wallet is on %d", e.Expected, e.Actual)
}

// Wallet fault kinds reported alongside errors.
const (
	ErrSwitchRejected   = "chain_switch_rejected"
	ErrSwitchFailed     = "chain_switch_failed"
	ErrTransferRejected = "transfer_rejected"
	ErrTransferFailed   = "transfer_failed"
	ErrNoClientForChain = "no_client_for_chain"
)
