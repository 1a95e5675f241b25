package payment

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalinbhardwaj/connectkit/clients"
	"github.com/nalinbhardwaj/connectkit/types"
)

var usdcBase = types.Token{
	ChainID:  types.ChainBase,
	Token:    common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"),
	Symbol:   "USDC",
	Decimals: 6,
	Usd:      1,
}

func baseOption() types.PaymentOption {
	return types.PaymentOption{
		Required: types.TokenAmount{Token: usdcBase, Amount: "25000000", Usd: 25},
		Balance:  types.TokenAmount{Token: usdcBase, Amount: "100000000", Usd: 100},
	}
}

type switchingWallet struct {
	chainID     uint64
	switchCalls int
	switchErr   error
}

func (w *switchingWallet) CurrentChainID() uint64 { return w.chainID }

func (w *switchingWallet) CurrentAddress() common.Address { return common.Address{} }

func (w *switchingWallet) SwitchChain(ctx context.Context, chainID uint64) (uint64, error) {
	w.switchCalls++
	if w.switchErr != nil {
		return w.chainID, w.switchErr
	}
	w.chainID = chainID
	return chainID, nil
}

func (w *switchingWallet) SendNativeTransfer(ctx context.Context, to common.Address, amount *big.Int) (common.Hash, error) {
	return common.Hash{}, errors.New("unused")
}

func (w *switchingWallet) SendTokenTransfer(ctx context.Context, token, to common.Address, amount *big.Int) (common.Hash, error) {
	return common.Hash{}, errors.New("unused")
}

// scriptedPayer returns its queued errors in order, then nil.
type scriptedPayer struct {
	errs  []error
	calls int
}

func (p *scriptedPayer) PayWithToken(ctx context.Context, tokenAmount types.TokenAmount) error {
	p.calls++
	if len(p.errs) == 0 {
		return nil
	}
	err := p.errs[0]
	p.errs = p.errs[1:]
	return err
}

func TestExecuteNoSwitchWhenChainMatches(t *testing.T) {
	wallet := &switchingWallet{chainID: types.ChainBase}
	payer := &scriptedPayer{}
	e := NewExecutor(wallet, payer, time.Millisecond, nil, nil, nil)

	state := e.Execute(context.Background(), baseOption())
	assert.Equal(t, StateRequestSuccessful, state)
	assert.Equal(t, 0, wallet.switchCalls)
	assert.Equal(t, 1, payer.calls)
}

func TestExecuteSwitchesToRequiredChain(t *testing.T) {
	wallet := &switchingWallet{chainID: types.ChainEthereum}
	payer := &scriptedPayer{}
	e := NewExecutor(wallet, payer, time.Millisecond, nil, nil, nil)

	state := e.Execute(context.Background(), baseOption())
	assert.Equal(t, StateRequestSuccessful, state)
	assert.Equal(t, 1, wallet.switchCalls)
	assert.Equal(t, types.ChainBase, wallet.chainID)
}

func TestExecuteSwitchRejectedCancels(t *testing.T) {
	wallet := &switchingWallet{chainID: types.ChainEthereum, switchErr: errors.New("user rejected")}
	payer := &scriptedPayer{}
	e := NewExecutor(wallet, payer, time.Millisecond, nil, nil, nil)

	state := e.Execute(context.Background(), baseOption())
	assert.Equal(t, StateRequestCancelled, state)
	assert.Equal(t, 0, payer.calls, "no transfer after a failed switch")
}

func TestExecuteMismatchForcesSwitchAndRetriesOnce(t *testing.T) {
	wallet := &switchingWallet{chainID: types.ChainBase}
	payer := &scriptedPayer{errs: []error{
		&clients.ChainMismatchError{Expected: types.ChainBase, Actual: types.ChainEthereum},
	}}
	e := NewExecutor(wallet, payer, time.Millisecond, nil, nil, nil)

	state := e.Execute(context.Background(), baseOption())
	assert.Equal(t, StateRequestSuccessful, state)
	// The wallet already reported the right chain, so only the forced
	// re-switch after the mismatch touches it.
	assert.Equal(t, 1, wallet.switchCalls)
	assert.Equal(t, 2, payer.calls)
}

func TestExecuteMismatchRetriesExactlyOnce(t *testing.T) {
	wallet := &switchingWallet{chainID: types.ChainBase}
	payer := &scriptedPayer{errs: []error{
		&clients.ChainMismatchError{Expected: types.ChainBase, Actual: types.ChainEthereum},
		&clients.ChainMismatchError{Expected: types.ChainBase, Actual: types.ChainEthereum},
	}}
	e := NewExecutor(wallet, payer, time.Millisecond, nil, nil, nil)

	state := e.Execute(context.Background(), baseOption())
	assert.Equal(t, StateRequestCancelled, state)
	assert.Equal(t, 2, payer.calls, "a second mismatch is not retried again")
}

func TestExecuteOtherFaultCancelsWithoutRetry(t *testing.T) {
	wallet := &switchingWallet{chainID: types.ChainBase}
	payer := &scriptedPayer{errs: []error{errors.New("user rejected transfer")}}
	e := NewExecutor(wallet, payer, time.Millisecond, nil, nil, nil)

	state := e.Execute(context.Background(), baseOption())
	assert.Equal(t, StateRequestCancelled, state)
	assert.Equal(t, 1, payer.calls)
}

func TestExecuteSuccessFiresCallbackAfterDelay(t *testing.T) {
	wallet := &switchingWallet{chainID: types.ChainBase}
	payer := &scriptedPayer{}
	done := make(chan struct{})
	e := NewExecutor(wallet, payer, time.Millisecond, func() { close(done) }, nil, nil)

	assert.Equal(t, StateRequestSuccessful, e.Execute(context.Background(), baseOption()))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("success callback never fired")
	}
}

func TestTriggerOnce(t *testing.T) {
	wallet := &switchingWallet{chainID: types.ChainBase}
	payer := &scriptedPayer{}
	e := NewExecutor(wallet, payer, time.Millisecond, nil, nil, nil)

	state, ran := e.TriggerOnce(context.Background(), baseOption())
	require.True(t, ran)
	assert.Equal(t, StateRequestSuccessful, state)

	state, ran = e.TriggerOnce(context.Background(), baseOption())
	assert.False(t, ran)
	assert.Equal(t, StateRequestSuccessful, state)
	assert.Equal(t, 1, payer.calls)
}

func TestExplicitRetryAfterCancel(t *testing.T) {
	wallet := &switchingWallet{chainID: types.ChainBase}
	payer := &scriptedPayer{errs: []error{errors.New("user rejected transfer")}}
	e := NewExecutor(wallet, payer, time.Millisecond, nil, nil, nil)

	_, ran := e.TriggerOnce(context.Background(), baseOption())
	require.True(t, ran)
	assert.Equal(t, StateRequestCancelled, e.State())

	// A user-initiated retry calls Execute directly, bypassing the latch.
	assert.Equal(t, StateRequestSuccessful, e.Execute(context.Background(), baseOption()))
}
