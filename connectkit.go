// Package connectkit drives a cross-chain crypto payment to completion:
// it loads and hydrates a payment order against a remote order service,
// sequences the user through funding-method selection, executes wallet
// payments with chain-switch recovery, and polls the order until
// settlement is observed.
package connectkit

import (
	"context"
	"net/http"
	"time"

	"github.com/nalinbhardwaj/connectkit/clients"
	"github.com/nalinbhardwaj/connectkit/logger"
	"github.com/nalinbhardwaj/connectkit/metrics"
	"github.com/nalinbhardwaj/connectkit/nav"
	"github.com/nalinbhardwaj/connectkit/order"
	"github.com/nalinbhardwaj/connectkit/payment"
	"github.com/nalinbhardwaj/connectkit/types"
	"github.com/nalinbhardwaj/connectkit/utils"
)

// Config carries checkout-wide settings.
type Config struct {
	// Base URL of the order service. Required unless a custom OrderService
	// is injected with WithOrderService.
	APIBaseURL string `json:"apiBaseUrl" validate:"omitempty,url"`

	// Payer device class reported on hydration. Defaults to PlatformOther;
	// derive it with utils.DetectPlatform when a user agent is available.
	Platform types.Platform `json:"platform,omitempty"`

	// Order refresh cadence while the confirmation screen is active.
	// Zero means order.DefaultPollInterval.
	PollInterval time.Duration `json:"pollInterval,omitempty"`

	// How long the payment-success state stays visible before navigating
	// to confirmation. Zero means payment.DefaultSuccessDelay.
	SuccessDelay time.Duration `json:"successDelay,omitempty"`

	// When set, the modal is forced non-closeable while the connected
	// wallet is on an unsupported chain.
	EnforceSupportedChains bool `json:"enforceSupportedChains,omitempty"`
}

// Checkout wires the order lifecycle controller, the navigation machine,
// the payment executor and the settlement poller into one flow.
type Checkout struct {
	cfg        *Config
	svc        clients.OrderService
	wallet     clients.WalletAdapter
	controller *order.Controller
	machine    *nav.Machine
	log        logger.Logger
	rec        metrics.Recorder
	httpClient *http.Client
}

// New builds a checkout flow. wallet may be nil when only external payment
// methods are offered.
func New(cfg *Config, wallet clients.WalletAdapter, opts ...Option) (*Checkout, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	c := &Checkout{
		cfg:    cfg,
		wallet: wallet,
		log:    logger.NoopLogger{},
		rec:    metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.svc == nil {
		if err := utils.Validate(cfg); err != nil {
			return nil, types.Errorf(types.ErrServiceFault, "invalid config: %v", err)
		}
		if cfg.APIBaseURL == "" {
			return nil, types.Errorf(types.ErrServiceFault, "config: APIBaseURL is required")
		}
		c.svc = clients.NewHTTPOrderService(cfg.APIBaseURL, c.httpClient, c.log, c.rec)
	}

	c.controller = order.NewController(c.svc, wallet, cfg.Platform, c.log, c.rec)
	c.machine = nav.NewMachine(c.controller, c.log)
	return c, nil
}

// Controller returns the order lifecycle controller.
func (c *Checkout) Controller() *order.Controller {
	return c.controller
}

// Navigation returns the modal navigation machine.
func (c *Checkout) Navigation() *nav.Machine {
	return c.machine
}

// NewPaymentExecutor builds a fresh executor for one pay-with-token screen
// entry. On success it navigates to confirmation after the configured
// delay. A fresh executor per screen entry resets the one-shot trigger.
func (c *Checkout) NewPaymentExecutor() *payment.Executor {
	return payment.NewExecutor(c.wallet, c.controller, c.cfg.SuccessDelay, func() {
		c.machine.Go(nav.RouteConfirmation)
	}, c.log, c.rec)
}

// StartPolling begins refreshing the order on the configured interval and
// returns a stop function. The poller does not stop itself on settlement;
// stop it when the confirmation screen unmounts or the snapshot reports
// Done.
func (c *Checkout) StartPolling(ctx context.Context) (stop func()) {
	p := order.NewPoller(c.cfg.PollInterval, c.controller.RefreshOrder, c.log)
	return p.Start(ctx)
}

// Controls computes the modal chrome for the current route given the
// wallet's connection state and active chain.
func (c *Checkout) Controls(connected bool, activeChainID uint64) nav.Controls {
	return c.machine.Controls(nav.Condition{
		Connected:              connected,
		ChainSupported:         types.IsChainSupported(activeChainID),
		EnforceSupportedChains: c.cfg.EnforceSupportedChains,
	})
}
