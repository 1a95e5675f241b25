package types

import "fmt"

// PayError is the typed error surfaced across the SDK boundary.
type PayError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *PayError) Error() string {
	return e.Message
}

// Error codes, grouped by the fault taxonomy.
const (
	// Precondition violations: contract faults in call sequencing.
	ErrNoOrderLoaded     = "no_order_loaded"
	ErrAmountNotEditable = "amount_not_editable"

	// Decode and lookup faults.
	ErrInvalidPayID  = "invalid_pay_id"
	ErrOrderNotFound = "order_not_found"

	// Service faults: transient network or backend errors.
	ErrServiceFault = "order_service_fault"

	// Wallet faults: user rejection, switch failure, submission failure.
	ErrWalletFault = "wallet_fault"

	// Missing data faults: hydration returned less than required.
	ErrMissingHandoffAddr = "missing_handoff_address"
	ErrMissingOptionData  = "missing_external_option_data"
)

// Errorf builds a PayError with a formatted message.
func Errorf(code, format string, args ...interface{}) *PayError {
	return &PayError{Code: code, Message: fmt.Sprintf(format, args...)}
}
