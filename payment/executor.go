package payment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nalinbhardwaj/connectkit/clients"
	"github.com/nalinbhardwaj/connectkit/logger"
	"github.com/nalinbhardwaj/connectkit/metrics"
	"github.com/nalinbhardwaj/connectkit/types"
)

// PayState is the executor's state machine:
// RequestingPayment -> SwitchingChain -> RequestingPayment ->
// RequestSuccessful | RequestCancelled.
type PayState string

const (
	StateRequestingPayment PayState = "requesting_payment"
	StateSwitchingChain    PayState = "switching_chain"
	StateRequestCancelled  PayState = "request_cancelled"
	StateRequestSuccessful PayState = "request_successful"
)

// DefaultSuccessDelay keeps the success state visible briefly before the
// navigation callback fires.
const DefaultSuccessDelay = 200 * time.Millisecond

// TokenPayer is the slice of the order controller the executor drives.
type TokenPayer interface {
	PayWithToken(ctx context.Context, tokenAmount types.TokenAmount) error
}

// Executor guarantees the wallet is on a payment option's required chain
// before funds move, and recovers from one known class of wallet/chain
// desynchronization with a single forced re-switch and retry.
//
// RequestCancelled is terminal but user-retriable: re-running Execute from
// the top is always valid. The one-shot trigger (TriggerOnce) is what
// prevents accidental concurrent attempts; the controller itself does not.
type Executor struct {
	wallet clients.WalletAdapter
	payer  TokenPayer
	log    logger.Logger
	rec    metrics.Recorder

	successDelay time.Duration
	onSuccess    func()

	mu        sync.Mutex
	state     PayState
	triggered bool
}

// NewExecutor wires an executor. onSuccess, log and rec may be nil;
// successDelay <= 0 means DefaultSuccessDelay.
func NewExecutor(wallet clients.WalletAdapter, payer TokenPayer, successDelay time.Duration, onSuccess func(), log logger.Logger, rec metrics.Recorder) *Executor {
	if successDelay <= 0 {
		successDelay = DefaultSuccessDelay
	}
	if log == nil {
		log = logger.NoopLogger{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Executor{
		wallet:       wallet,
		payer:        payer,
		successDelay: successDelay,
		onSuccess:    onSuccess,
		log:          log,
		rec:          rec,
		state:        StateRequestingPayment,
	}
}

// State returns the current executor state.
func (e *Executor) State() PayState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// TriggerOnce runs Execute unless a run has already been triggered for this
// executor. It returns the resulting (or current) state and whether this
// call ran the attempt. Screens use it to guard against double-submits on
// re-entry; explicit user retries call Execute directly.
func (e *Executor) TriggerOnce(ctx context.Context, option types.PaymentOption) (PayState, bool) {
	e.mu.Lock()
	if e.triggered {
		state := e.state
		e.mu.Unlock()
		return state, false
	}
	e.triggered = true
	e.mu.Unlock()

	return e.Execute(ctx, option), true
}

// Execute drives one payment attempt to a terminal state.
//
// The retry after a chain-mismatch fault does not re-hydrate the order:
// the handoff address is assigned per order, not per source chain, so the
// first hydration stays valid.
func (e *Executor) Execute(ctx context.Context, option types.PaymentOption) PayState {
	required := option.Required.Token.ChainID

	e.setState(StateSwitchingChain)
	if !e.trySwitchingChain(ctx, required, false) {
		e.log.Warn("chain switch failed", map[string]any{"chainId": required})
		return e.cancel(required)
	}

	e.setState(StateRequestingPayment)
	err := e.payer.PayWithToken(ctx, option.Required)
	if err == nil {
		return e.succeed(required)
	}

	var mismatch *clients.ChainMismatchError
	if errors.As(err, &mismatch) {
		// The wallet switched but kept signing on the old chain. Force a
		// second switch and retry exactly once.
		e.log.Warn("chain mismatch after switch, retrying", map[string]any{
			"expected": mismatch.Expected,
			"actual":   mismatch.Actual,
		})
		e.rec.IncCounter(metrics.EventMismatchRetry, chainLabel(required))

		e.setState(StateSwitchingChain)
		if e.trySwitchingChain(ctx, required, true) {
			e.setState(StateRequestingPayment)
			retryErr := e.payer.PayWithToken(ctx, option.Required)
			if retryErr == nil {
				return e.succeed(required)
			}
			e.log.Error("payment failed after mismatch retry", map[string]any{"err": retryErr.Error()})
		}
		return e.cancel(required)
	}

	e.log.Error("payment failed", map[string]any{"err": err.Error()})
	return e.cancel(required)
}

// trySwitchingChain requests a switch when the wallet is not on the
// required chain, or unconditionally when force is set. It succeeds only
// when the wallet ends up reporting the required chain.
func (e *Executor) trySwitchingChain(ctx context.Context, required uint64, force bool) bool {
	if e.wallet.CurrentChainID() == required && !force {
		return true
	}

	e.rec.IncCounter(metrics.EventChainSwitch, chainLabel(required))
	result, err := e.wallet.SwitchChain(ctx, required)
	if err != nil {
		e.log.Warn("switch chain request failed", map[string]any{"chainId": required, "err": err.Error()})
		return false
	}
	return result == required
}

func (e *Executor) succeed(chainID uint64) PayState {
	e.setState(StateRequestSuccessful)
	e.rec.IncCounter(metrics.EventPaymentSucceeded, chainLabel(chainID))
	if e.onSuccess != nil {
		time.AfterFunc(e.successDelay, e.onSuccess)
	}
	return StateRequestSuccessful
}

func (e *Executor) cancel(chainID uint64) PayState {
	e.setState(StateRequestCancelled)
	e.rec.IncCounter(metrics.EventPaymentCancelled, chainLabel(chainID))
	return StateRequestCancelled
}

func (e *Executor) setState(s PayState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = s
}

func chainLabel(chainID uint64) map[string]string {
	return map[string]string{"chain": types.ChainName(chainID)}
}
