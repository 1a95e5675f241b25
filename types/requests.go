package types

import "github.com/ethereum/go-ethereum/common"

// Request and response shapes for the order service wire contract.

type GetOrderRequest struct {
	ID string `json:"id" validate:"required"`
}

type GetOrderResponse struct {
	// Nil when no order exists for the id.
	Order *Order `json:"order"`
}

type HydrateOrderRequest struct {
	ID                     string   `json:"id" validate:"required"`
	ChosenFinalTokenAmount string   `json:"chosenFinalTokenAmount" validate:"required"`
	Platform               Platform `json:"platform" validate:"required"`

	// Refund destination for wallet payments.
	RefundAddress *common.Address `json:"refundAddress,omitempty"`

	// Set when paying with an external method instead of a wallet token.
	ExternalPaymentOption string `json:"externalPaymentOption,omitempty"`
}

type HydrateOrderResponse struct {
	HydratedOrder *Order `json:"hydratedOrder" validate:"required"`

	// Present iff the request named an external payment option.
	ExternalPaymentOptionData *ExternalOptionData `json:"externalPaymentOptionData,omitempty"`
}

type SourcePaymentRequest struct {
	OrderID              string         `json:"orderId" validate:"required"`
	SourceInitiateTxHash common.Hash    `json:"sourceInitiateTxHash"`
	SourceChainID        uint64         `json:"sourceChainId" validate:"required"`
	SourceFulfillerAddr  common.Address `json:"sourceFulfillerAddr"`
	SourceToken          common.Address `json:"sourceToken"`
	SourceAmount         string         `json:"sourceAmount" validate:"required"`
}

type ExternalOptionsRequest struct {
	UsdRequired float64  `json:"usdRequired" validate:"required"`
	Platform    Platform `json:"platform" validate:"required"`
}

type WalletOptionsRequest struct {
	PayerAddress common.Address `json:"payerAddress"`
	UsdRequired  float64        `json:"usdRequired" validate:"required"`
	DestChainID  uint64         `json:"destChainId" validate:"required"`
}
