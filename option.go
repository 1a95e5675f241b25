package connectkit

import (
	"net/http"

	"github.com/nalinbhardwaj/connectkit/clients"
	"github.com/nalinbhardwaj/connectkit/logger"
	"github.com/nalinbhardwaj/connectkit/metrics"
)

type Option func(*Checkout)

func WithLogger(l logger.Logger) Option {
	return func(c *Checkout) {
		c.log = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(c *Checkout) {
		c.rec = r
	}
}

// WithHTTPClient overrides the HTTP client used to reach the order service.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Checkout) {
		c.httpClient = h
	}
}

// WithOrderService injects a custom order service implementation, bypassing
// the HTTP client entirely.
func WithOrderService(svc clients.OrderService) Option {
	return func(c *Checkout) {
		c.svc = svc
	}
}
