// internal/webhook/delivery.go
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"tapline/internal/signature"
)

// Header names carried on every delivery.
const (
	HeaderEvent     = "X-Tapline-Event"
	HeaderSignature = "X-Tapline-Signature"
	HeaderDelivery  = "X-Tapline-Delivery"
)

// Config controls the delivery agent.
type Config struct {
	Endpoint    string
	Secret      string
	MaxAttempts int           // total attempts, default 4
	BaseDelay   time.Duration // first retry delay, default 1s, doubling
	RateLimit   float64       // outbound posts per second, 0 = unlimited
	RateBurst   int
	HTTPTimeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 4
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = time.Second
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 10 * time.Second
	}
}

// Agent delivers signed notifications to one external endpoint with
// bounded retries and exponential backoff. Deliveries dispatched from
// the order path run as detached background tasks; terminal failure is
// logged and never reaches the caller that created the order.
type Agent struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
	tracer  trace.Tracer
	wg      sync.WaitGroup
}

// NewAgent creates a delivery agent for cfg.Endpoint.
func NewAgent(cfg Config, logger *slog.Logger) *Agent {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	limit := rate.Inf
	burst := 0
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
		burst = cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
	}

	return &Agent{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.HTTPTimeout},
		limiter: rate.NewLimiter(limit, burst),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:     "webhook",
			Interval: time.Minute,
			Timeout:  30 * time.Second,
		}),
		logger: logger,
		tracer: otel.Tracer("tapline/webhook"),
	}
}

// Dispatch serializes and delivers payload in a detached goroutine.
// Fire and forget: exhausted deliveries are logged, nothing propagates.
func (a *Agent) Dispatch(event string, payload any) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		res := a.Deliver(context.Background(), event, payload)
		if res.State != StateSuccess {
			a.logger.Error("webhook delivery exhausted",
				"delivery_id", res.DeliveryID,
				"event", event,
				"attempts", res.Attempts,
				"error", res.Err,
			)
		}
	}()
}

// Wait blocks until all dispatched deliveries have terminated.
func (a *Agent) Wait() {
	a.wg.Wait()
}

// Deliver runs the full attempt schedule synchronously and returns the
// terminal result. The payload is serialized once and the signature is
// computed once; every attempt transmits the exact bytes that were
// signed.
func (a *Agent) Deliver(ctx context.Context, event string, payload any) Result {
	res := Result{DeliveryID: uuid.NewString(), State: StatePending}

	body, err := json.Marshal(payload)
	if err != nil {
		res.State = StateExhausted
		res.Err = fmt.Errorf("serialize payload: %w", err)
		return res
	}
	sig := signature.Sign(body, a.cfg.Secret)

	ctx, span := a.tracer.Start(ctx, "webhook.deliver",
		trace.WithAttributes(
			attribute.String("webhook.event", event),
			attribute.String("webhook.delivery_id", res.DeliveryID),
		),
	)
	defer span.End()

	operation := func() (struct{}, error) {
		res.Attempts++
		res.State = StateSending
		if err := a.limiter.Wait(ctx); err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		_, err := a.breaker.Execute(func() (interface{}, error) {
			return nil, a.post(ctx, event, body, sig, res.DeliveryID)
		})
		if err != nil {
			res.State = StateRetrying
			return struct{}{}, err
		}
		return struct{}{}, nil
	}

	notify := func(err error, delay time.Duration) {
		a.logger.Warn("webhook attempt failed, retrying",
			"delivery_id", res.DeliveryID,
			"attempt", res.Attempts,
			"delay", delay,
			"error", err,
		)
	}

	_, err = backoff.Retry(ctx, operation,
		backoff.WithBackOff(a.newBackOff()),
		backoff.WithMaxTries(uint(a.cfg.MaxAttempts)),
		backoff.WithNotify(notify),
	)
	if err != nil {
		res.State = StateExhausted
		res.Err = err
	} else {
		res.State = StateSuccess
		res.Err = nil
	}

	span.SetAttributes(
		attribute.Int("webhook.attempts", res.Attempts),
		attribute.String("webhook.state", string(res.State)),
	)
	return res
}

// newBackOff builds the deterministic doubling schedule: BaseDelay,
// 2*BaseDelay, 4*BaseDelay, ... with no jitter.
func (a *Agent) newBackOff() *backoff.ExponentialBackOff {
	return &backoff.ExponentialBackOff{
		InitialInterval:     a.cfg.BaseDelay,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         1 << 20 * a.cfg.BaseDelay,
	}
}

// post performs one HTTP attempt. Any transport error or non-2xx
// status is a failure.
func (a *Agent) post(ctx context.Context, event string, body []byte, sig, deliveryID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEvent, event)
	req.Header.Set(HeaderSignature, sig)
	req.Header.Set(HeaderDelivery, deliveryID)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
