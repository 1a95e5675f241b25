package clients

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/nalinbhardwaj/connectkit/types"
)

// OrderService is the remote order/payment backend. All calls are
// idempotent at the application level: repeating a call with the same
// arguments is always safe.
type OrderService interface {
	// GetOrder fetches an order by numeric id. Returns (nil, nil) when no
	// such order exists.
	GetOrder(ctx context.Context, id string) (*types.Order, error)

	// HydrateOrder finalizes the order for execution: assigns a handoff
	// address and, when an external payment option is named, returns the
	// option's redirect data.
	HydrateOrder(ctx context.Context, req *types.HydrateOrderRequest) (*types.HydrateOrderResponse, error)

	// ProcessSourcePayment reports a submitted source-chain transaction.
	ProcessSourcePayment(ctx context.Context, req *types.SourcePaymentRequest) error

	// GetExternalPaymentOptions lists the non-wallet methods available for
	// the given amount and platform.
	GetExternalPaymentOptions(ctx context.Context, req *types.ExternalOptionsRequest) ([]types.ExternalPaymentOptionMetadata, error)

	// GetWalletPaymentOptions lists the connected wallet's viable funding
	// tokens for the given amount.
	GetWalletPaymentOptions(ctx context.Context, req *types.WalletOptionsRequest) ([]types.PaymentOption, error)
}

// WalletAdapter is the connected wallet. Every operation may fail or be
// rejected by the user. Send* faults may be a *ChainMismatchError, the
// distinguished signal that the signing chain silently diverged from the
// reported chain after a switch.
type WalletAdapter interface {
	CurrentChainID() uint64
	CurrentAddress() common.Address

	// SwitchChain asks the wallet to move to the target chain and returns
	// the chain id the wallet reports afterwards.
	SwitchChain(ctx context.Context, chainID uint64) (uint64, error)

	SendNativeTransfer(ctx context.Context, to common.Address, amount *big.Int) (common.Hash, error)
	SendTokenTransfer(ctx context.Context, token, to common.Address, amount *big.Int) (common.Hash, error)
}
