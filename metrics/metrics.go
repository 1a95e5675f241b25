package metrics

import "time"

// Recorder receives checkout events and order-service call latencies.
type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}

// Well-known event names recorded by the SDK.
const (
	EventOrderLoaded      = "order_loaded"
	EventOrderHydrated    = "order_hydrated"
	EventPaymentStarted   = "payment_started"
	EventPaymentSucceeded = "payment_succeeded"
	EventPaymentCancelled = "payment_cancelled"
	EventChainSwitch      = "chain_switch"
	EventMismatchRetry    = "chain_mismatch_retry"
)
