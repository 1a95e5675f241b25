package order

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/nalinbhardwaj/connectkit/clients"
	"github.com/nalinbhardwaj/connectkit/logger"
	"github.com/nalinbhardwaj/connectkit/metrics"
	"github.com/nalinbhardwaj/connectkit/types"
)

// Controller is the single source of truth for the order snapshot and the
// payer's selection, and the only component that calls the order service or
// submits transfers.
//
// The snapshot is versioned: every write bumps a sequence number, and an
// asynchronous refresh that started before a newer write is discarded
// instead of applied. The order's tx hash fields are monotonic, so dropping
// a stale read can at worst delay observing a hash by one polling cycle,
// never roll one back.
//
// The controller does not serialize concurrent payment attempts against
// itself; the payment executor's one-shot trigger owns that guarantee.
type Controller struct {
	svc      clients.OrderService
	wallet   clients.WalletAdapter
	platform types.Platform
	log      logger.Logger
	rec      metrics.Recorder

	mu             sync.Mutex
	order          *types.Order
	seq            uint64
	waitingMessage string
	selection      types.Selection
}

// NewController wires a controller. wallet may be nil when only external
// payments are used; log and rec may be nil.
func NewController(svc clients.OrderService, wallet clients.WalletAdapter, platform types.Platform, log logger.Logger, rec metrics.Recorder) *Controller {
	if log == nil {
		log = logger.NoopLogger{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	if platform == "" {
		platform = types.PlatformOther
	}
	return &Controller{
		svc:      svc,
		wallet:   wallet,
		platform: platform,
		log:      log,
		rec:      rec,
	}
}

// LoadOrder decodes payID and fetches the order it names. Re-entry with the
// pay id of the already-loaded order is a no-op. A missing order is logged
// and leaves the snapshot unchanged; the caller decides what to do next.
func (c *Controller) LoadOrder(ctx context.Context, payID string) error {
	id, err := types.ReadPayID(payID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.order != nil && c.order.ID == id {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	ord, err := c.svc.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if ord == nil {
		c.log.Error("no order found", map[string]any{"payId": payID, "id": id})
		return nil
	}

	c.setOrder(ord)
	c.rec.IncCounter(metrics.EventOrderLoaded, nil)
	c.log.Info("order loaded", map[string]any{"id": ord.ID, "mode": ord.Mode})
	return nil
}

// SetChosenUsd recomputes the final token amount from a chosen USD value.
// Valid only on a preview order marked amount-editable.
func (c *Controller) SetChosenUsd(usd float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.order == nil {
		return types.Errorf(types.ErrNoOrderLoaded, "setChosenUsd: no order loaded")
	}
	if c.order.Mode != types.OrderModePreview || !c.order.AmountEditable {
		return types.Errorf(types.ErrAmountNotEditable, "setChosenUsd: order %s amount is not editable", c.order.ID)
	}

	token := c.order.DestFinalCallTokenAmount.Token
	amount, err := types.TokenUnits(usd, token)
	if err != nil {
		return err
	}

	updated := *c.order
	updated.DestFinalCallTokenAmount = types.TokenAmount{
		Token:  token,
		Amount: amount,
		Usd:    usd,
	}
	c.order = &updated
	c.seq++

	c.log.Debug("chosen amount updated", map[string]any{"id": updated.ID, "usd": usd, "amount": amount})
	return nil
}

// PayWithToken hydrates the order and submits the transfer from the
// connected wallet. The snapshot is replaced with the hydrated order before
// the transfer is attempted and again after, so the handoff address is
// visible as soon as it is known and survives a failed submission. A
// submission fault is returned, not swallowed: the executor decides whether
// to retry.
func (c *Controller) PayWithToken(ctx context.Context, tokenAmount types.TokenAmount) error {
	c.mu.Lock()
	ord := c.order
	c.mu.Unlock()
	if ord == nil {
		return types.Errorf(types.ErrNoOrderLoaded, "payWithToken: no order loaded")
	}

	req := &types.HydrateOrderRequest{
		ID:                     ord.ID,
		ChosenFinalTokenAmount: ord.DestFinalCallTokenAmount.Amount,
		Platform:               c.platform,
	}
	if c.wallet != nil {
		refund := c.wallet.CurrentAddress()
		req.RefundAddress = &refund
	}

	resp, err := c.svc.HydrateOrder(ctx, req)
	if err != nil {
		return err
	}
	hydrated := resp.HydratedOrder

	c.setOrder(hydrated)
	c.rec.IncCounter(metrics.EventOrderHydrated, nil)
	c.log.Info("order hydrated", map[string]any{
		"id":    hydrated.ID,
		"token": tokenAmount.Token.Token.Hex(),
		"chain": tokenAmount.Token.ChainID,
	})

	if hydrated.HandoffAddr == nil {
		return types.Errorf(types.ErrMissingHandoffAddr, "payWithToken: hydrated order %s has no handoff address", hydrated.ID)
	}
	amount, err := tokenAmount.BigAmount()
	if err != nil {
		return err
	}

	c.rec.IncCounter(metrics.EventPaymentStarted, chainLabel(tokenAmount.Token.ChainID))

	var txHash common.Hash
	if tokenAmount.Token.IsNative() {
		txHash, err = c.wallet.SendNativeTransfer(ctx, *hydrated.HandoffAddr, amount)
	} else {
		txHash, err = c.wallet.SendTokenTransfer(ctx, tokenAmount.Token.Token, *hydrated.HandoffAddr, amount)
	}
	// Write the hydrated snapshot again regardless of the outcome, so a
	// retry does not need to re-hydrate.
	c.setOrder(hydrated)
	if err != nil {
		c.log.Error("transfer failed", map[string]any{"id": hydrated.ID, "err": err.Error()})
		return err
	}

	if err := c.svc.ProcessSourcePayment(ctx, &types.SourcePaymentRequest{
		OrderID:              hydrated.ID,
		SourceInitiateTxHash: txHash,
		SourceChainID:        tokenAmount.Token.ChainID,
		SourceFulfillerAddr:  c.wallet.CurrentAddress(),
		SourceToken:          tokenAmount.Token.Token,
		SourceAmount:         tokenAmount.Amount,
	}); err != nil {
		return err
	}

	c.log.Info("source payment reported", map[string]any{"id": hydrated.ID, "txHash": txHash.Hex()})
	return nil
}

// PayWithExternal hydrates the order with an external payment option and
// returns its redirect URL. Missing option data is fatal to the attempt.
func (c *Controller) PayWithExternal(ctx context.Context, optionID string) (string, error) {
	c.mu.Lock()
	ord := c.order
	c.mu.Unlock()
	if ord == nil {
		return "", types.Errorf(types.ErrNoOrderLoaded, "payWithExternal: no order loaded")
	}

	resp, err := c.svc.HydrateOrder(ctx, &types.HydrateOrderRequest{
		ID:                     ord.ID,
		ChosenFinalTokenAmount: ord.DestFinalCallTokenAmount.Amount,
		Platform:               c.platform,
		ExternalPaymentOption:  optionID,
	})
	if err != nil {
		return "", err
	}
	if resp.ExternalPaymentOptionData == nil {
		return "", types.Errorf(types.ErrMissingOptionData, "payWithExternal: no option data for %s", optionID)
	}

	c.mu.Lock()
	c.waitingMessage = resp.ExternalPaymentOptionData.WaitingMessage
	c.mu.Unlock()
	c.setOrder(resp.HydratedOrder)
	c.rec.IncCounter(metrics.EventOrderHydrated, nil)

	return resp.ExternalPaymentOptionData.URL, nil
}

// RefreshOrder re-fetches the order by its current id and replaces the
// snapshot, unless a newer write landed while the fetch was in flight.
// No-op when no order is loaded.
func (c *Controller) RefreshOrder(ctx context.Context) error {
	c.mu.Lock()
	if c.order == nil {
		c.mu.Unlock()
		return nil
	}
	id := c.order.ID
	startSeq := c.seq
	c.mu.Unlock()

	ord, err := c.svc.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if ord == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != startSeq {
		c.log.Debug("discarding stale refresh", map[string]any{"id": id})
		return nil
	}
	c.order = ord
	c.seq++
	return nil
}

// ExternalPaymentOptions lists the external methods available for the
// loaded order's USD amount.
func (c *Controller) ExternalPaymentOptions(ctx context.Context) ([]types.ExternalPaymentOptionMetadata, error) {
	c.mu.Lock()
	ord := c.order
	c.mu.Unlock()
	if ord == nil {
		return nil, types.Errorf(types.ErrNoOrderLoaded, "externalPaymentOptions: no order loaded")
	}

	return c.svc.GetExternalPaymentOptions(ctx, &types.ExternalOptionsRequest{
		UsdRequired: ord.DestFinalCallTokenAmount.Usd,
		Platform:    c.platform,
	})
}

// WalletPaymentOptions lists the payer's viable funding tokens for the
// loaded order.
func (c *Controller) WalletPaymentOptions(ctx context.Context, payer common.Address) ([]types.PaymentOption, error) {
	c.mu.Lock()
	ord := c.order
	c.mu.Unlock()
	if ord == nil {
		return nil, types.Errorf(types.ErrNoOrderLoaded, "walletPaymentOptions: no order loaded")
	}

	return c.svc.GetWalletPaymentOptions(ctx, &types.WalletOptionsRequest{
		PayerAddress: payer,
		UsdRequired:  ord.DestFinalCallTokenAmount.Usd,
		DestChainID:  ord.DestFinalCallTokenAmount.Token.ChainID,
	})
}

// Order returns a copy of the current snapshot, or nil.
func (c *Controller) Order() *types.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return nil
	}
	ord := *c.order
	return &ord
}

// PaymentWaitingMessage returns the message to show while an external
// payment is pending.
func (c *Controller) PaymentWaitingMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waitingMessage
}

// Select replaces the active funding selection.
func (c *Controller) Select(sel types.Selection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = sel
}

// ClearSelection drops the active funding selection.
func (c *Controller) ClearSelection() {
	c.Select(types.NoSelection())
}

// Selection returns the active funding selection.
func (c *Controller) Selection() types.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

func (c *Controller) setOrder(ord *types.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = ord
	c.seq++
}

func chainLabel(chainID uint64) map[string]string {
	return map[string]string{"chain": types.ChainName(chainID)}
}
