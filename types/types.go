package types

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// OrderMode tracks how far an order is through its lifecycle.
type OrderMode string

const (
	// OrderModePreview is an unhydrated order. The final amount may still be
	// editable and no execution addresses are assigned yet.
	OrderModePreview OrderMode = "preview"

	// OrderModeHydrated is a finalized order with a handoff address assigned.
	OrderModeHydrated OrderMode = "hydrated"
)

// Token identifies an asset on a specific chain. The zero contract address
// is the chain's native asset.
type Token struct {
	ChainID  uint64         `json:"chainId" validate:"required"`
	Token    common.Address `json:"token"`
	Symbol   string         `json:"symbol" validate:"required"`
	Decimals int32          `json:"decimals"`
	Usd      float64        `json:"usd"` // USD price per whole token
	LogoURI  string         `json:"logoURI,omitempty"`
}

// IsNative reports whether the token is the chain's native asset.
func (t Token) IsNative() bool {
	return t.Token == (common.Address{})
}

// TokenAmount is a token plus an amount in atomic units and its USD value.
type TokenAmount struct {
	Token  Token   `json:"token"`
	Amount string  `json:"amount" validate:"required"` // base-10 atomic units
	Usd    float64 `json:"usd"`
}

// BigAmount parses the atomic-unit amount.
func (ta TokenAmount) BigAmount() (*big.Int, error) {
	n, ok := new(big.Int).SetString(ta.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid token amount %q", ta.Amount)
	}
	return n, nil
}

// DisplayAmount renders the amount in whole-token units, rounded to four
// decimal places, for option labels.
func (ta TokenAmount) DisplayAmount() string {
	d, err := decimal.NewFromString(ta.Amount)
	if err != nil {
		return ta.Amount
	}
	return d.Shift(-ta.Token.Decimals).Round(4).String()
}

// TokenUnits converts a USD amount into atomic token units at the token's
// current USD price: round(usd / price * 10^decimals).
func TokenUnits(usd float64, t Token) (string, error) {
	if t.Usd <= 0 {
		return "", fmt.Errorf("token %s has no USD price", t.Symbol)
	}
	units := decimal.NewFromFloat(usd).
		Div(decimal.NewFromFloat(t.Usd)).
		Shift(t.Decimals).
		Round(0)
	return units.BigInt().String(), nil
}

// Order is the central entity: a payment being driven to completion.
// The three tx hash fields are append-only for a given order id; the
// backend never clears one once it has been observed.
type Order struct {
	ID             string    `json:"id" validate:"required"`
	Mode           OrderMode `json:"mode" validate:"required"`
	AmountEditable bool      `json:"amountEditable,omitempty"`

	// What the recipient ultimately receives.
	DestFinalCallTokenAmount TokenAmount `json:"destFinalCallTokenAmount"`

	// Intermediate amount minted on the destination chain before any final
	// call. Differs from the final amount when a post-processing call runs.
	DestMintTokenAmount TokenAmount `json:"destMintTokenAmount"`

	// What the payer actually sent, once a source payment is recorded.
	SourceTokenAmount *TokenAmount `json:"sourceTokenAmount,omitempty"`

	SourceInitiateTxHash *common.Hash `json:"sourceInitiateTxHash,omitempty"`
	DestFastFinishTxHash *common.Hash `json:"destFastFinishTxHash,omitempty"`
	DestClaimTxHash      *common.Hash `json:"destClaimTxHash,omitempty"`

	// Where the payer must send funds. Present only once hydrated.
	HandoffAddr *common.Address `json:"handoffAddr,omitempty"`
}

// SettlementPhase is the ordered lattice the monotonic tx hash fields encode.
// An order only ever moves forward through it (FastFinished may be skipped).
type SettlementPhase int

const (
	PhaseNotStarted SettlementPhase = iota
	PhaseSourceSubmitted
	PhaseFastFinished
	PhaseClaimed
)

func (p SettlementPhase) String() string {
	switch p {
	case PhaseSourceSubmitted:
		return "source_submitted"
	case PhaseFastFinished:
		return "fast_finished"
	case PhaseClaimed:
		return "claimed"
	default:
		return "not_started"
	}
}

// Phase derives the settlement phase from the recorded tx hashes.
func (o *Order) Phase() SettlementPhase {
	switch {
	case o == nil:
		return PhaseNotStarted
	case o.DestClaimTxHash != nil:
		return PhaseClaimed
	case o.DestFastFinishTxHash != nil:
		return PhaseFastFinished
	case o.SourceInitiateTxHash != nil:
		return PhaseSourceSubmitted
	default:
		return PhaseNotStarted
	}
}

// Hydrated reports whether execution addresses have been assigned.
func (o *Order) Hydrated() bool {
	return o != nil && o.Mode == OrderModeHydrated
}

// Done reports whether the payment has been fulfilled on the destination
// chain, via the fast path or the final claim.
func (o *Order) Done() bool {
	return o.Hydrated() && o.Phase() >= PhaseFastFinished
}

// PaymentOption is a candidate way to pay from the connected wallet:
// what must be sent, and what the wallet currently holds of that token.
type PaymentOption struct {
	Required TokenAmount `json:"required"`
	Balance  TokenAmount `json:"balance"`
}

// LogoShape hints how an external option's logo should be masked.
type LogoShape string

const (
	LogoShapeCircle   LogoShape = "circle"
	LogoShapeSquircle LogoShape = "squircle"
)

// ExternalPaymentOptionMetadata is a candidate non-wallet payment method,
// e.g. a card processor or another wallet app.
type ExternalPaymentOptionMetadata struct {
	ID        string    `json:"id" validate:"required"`
	CTA       string    `json:"cta" validate:"required"`
	LogoURI   string    `json:"logoURI"`
	LogoShape LogoShape `json:"logoShape"`
}

// ExternalOptionData is returned when an order is hydrated with an external
// option: where to send the user, and what to tell them while waiting.
type ExternalOptionData struct {
	URL            string `json:"url" validate:"required,url"`
	WaitingMessage string `json:"waitingMessage"`
}

// Platform identifies the payer's device class, used by the order service
// to pick appropriate external options and redirect flows.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformOther   Platform = "other"
)

// AddressContraction shortens an address for display: 0x1234…abcd.
func AddressContraction(addr common.Address) string {
	s := addr.Hex()
	return s[:6] + "…" + s[len(s)-4:]
}
