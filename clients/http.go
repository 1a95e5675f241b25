package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nalinbhardwaj/connectkit/logger"
	"github.com/nalinbhardwaj/connectkit/metrics"
	"github.com/nalinbhardwaj/connectkit/types"
	"github.com/nalinbhardwaj/connectkit/utils"
)

var _ OrderService = (*HTTPOrderService)(nil)

// HTTPOrderService talks to the order service over JSON POST endpoints,
// one per operation.
type HTTPOrderService struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
	rec     metrics.Recorder
}

// NewHTTPOrderService builds a client for the order service at baseURL.
// httpClient, log and rec may be nil.
func NewHTTPOrderService(baseURL string, httpClient *http.Client, log logger.Logger, rec metrics.Recorder) *HTTPOrderService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = logger.NoopLogger{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &HTTPOrderService{
		baseURL: baseURL,
		http:    httpClient,
		log:     log,
		rec:     rec,
	}
}

// GetOrder implements OrderService.
func (c *HTTPOrderService) GetOrder(ctx context.Context, id string) (*types.Order, error) {
	var resp types.GetOrderResponse
	if err := c.post(ctx, "getOrder", &types.GetOrderRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	if resp.Order != nil {
		if err := utils.Validate(resp.Order); err != nil {
			return nil, types.Errorf(types.ErrServiceFault, "malformed order in getOrder response: %v", err)
		}
	}
	return resp.Order, nil
}

// HydrateOrder implements OrderService.
func (c *HTTPOrderService) HydrateOrder(ctx context.Context, req *types.HydrateOrderRequest) (*types.HydrateOrderResponse, error) {
	var resp types.HydrateOrderResponse
	if err := c.post(ctx, "hydrateOrder", req, &resp); err != nil {
		return nil, err
	}
	if err := utils.Validate(&resp); err != nil {
		return nil, types.Errorf(types.ErrServiceFault, "malformed hydrateOrder response: %v", err)
	}
	return &resp, nil
}

// ProcessSourcePayment implements OrderService.
func (c *HTTPOrderService) ProcessSourcePayment(ctx context.Context, req *types.SourcePaymentRequest) error {
	var resp struct{}
	return c.post(ctx, "processSourcePayment", req, &resp)
}

// GetExternalPaymentOptions implements OrderService.
func (c *HTTPOrderService) GetExternalPaymentOptions(ctx context.Context, req *types.ExternalOptionsRequest) ([]types.ExternalPaymentOptionMetadata, error) {
	var resp []types.ExternalPaymentOptionMetadata
	if err := c.post(ctx, "getExternalPaymentOptions", req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetWalletPaymentOptions implements OrderService.
func (c *HTTPOrderService) GetWalletPaymentOptions(ctx context.Context, req *types.WalletOptionsRequest) ([]types.PaymentOption, error) {
	var resp []types.PaymentOption
	if err := c.post(ctx, "getWalletPaymentOptions", req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPOrderService) post(ctx context.Context, op string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return types.Errorf(types.ErrServiceFault, "encode %s request: %v", op, err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, op)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return types.Errorf(types.ErrServiceFault, "build %s request: %v", op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	httpResp, err := c.http.Do(httpReq)
	c.rec.ObserveLatency("order_service", time.Since(start), map[string]string{"operation": op})
	if err != nil {
		return types.Errorf(types.ErrServiceFault, "%s: %v", op, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		c.log.Warn("order service returned non-200", map[string]any{
			"operation": op,
			"status":    httpResp.StatusCode,
			"body":      string(snippet),
		})
		return types.Errorf(types.ErrServiceFault, "%s: status %d", op, httpResp.StatusCode)
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return types.Errorf(types.ErrServiceFault, "decode %s response: %v", op, err)
	}
	return nil
}
