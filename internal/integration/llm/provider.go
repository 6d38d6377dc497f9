package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pantrypal/onboarding-backend/internal/entity"
	"github.com/pantrypal/onboarding-backend/internal/pkg/metrics"
	pkgRetry "github.com/pantrypal/onboarding-backend/internal/pkg/retry"
	pkghttp "github.com/pantrypal/onboarding-backend/pkg/http"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Provider is implemented by every completion backend
type Provider interface {
	Name() string
	Complete(ctx context.Context, req *entity.CompletionRequest) (string, error)
}

// RetryingProvider re-issues failed completions that look transient
type RetryingProvider struct {
	next Provider
	cfg  pkgRetry.RetryConfig
}

func WithRetry(next Provider, cfg pkgRetry.RetryConfig) *RetryingProvider {
	return &RetryingProvider{next: next, cfg: cfg}
}

func (p *RetryingProvider) Name() string {
	return p.next.Name()
}

func (p *RetryingProvider) Complete(ctx context.Context, req *entity.CompletionRequest) (string, error) {
	opts := append(p.cfg.ToRetryOptions(),
		retry.Context(ctx),
		retry.RetryIf(IsRetryable),
		retry.OnRetry(func(n uint, err error) {
			ctxzap.Warn(ctx, "retrying completion",
				zap.Uint("attempt", n+1),
				zap.String("provider", p.next.Name()),
				zap.Error(err),
			)
		}),
	)

	return retry.DoWithData(func() (string, error) {
		return p.next.Complete(ctx, req)
	}, opts...)
}

// InstrumentedProvider records call counts and latency per provider and purpose
type InstrumentedProvider struct {
	next    Provider
	metrics *metrics.Metrics
}

func WithMetrics(next Provider, m *metrics.Metrics) *InstrumentedProvider {
	return &InstrumentedProvider{next: next, metrics: m}
}

func (p *InstrumentedProvider) Name() string {
	return p.next.Name()
}

func (p *InstrumentedProvider) Complete(ctx context.Context, req *entity.CompletionRequest) (string, error) {
	start := time.Now()
	text, err := p.next.Complete(ctx, req)
	p.metrics.ObserveCompletion(p.next.Name(), string(req.Purpose), time.Since(start), err)
	return text, err
}

// IsRetryable treats network failures, throttling and upstream 5xx as transient
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}

	return pkghttp.IsRetryable(err)
}

// Describe renders a provider chain for logs, e.g. "openai (retry x3)"
func Describe(p Provider, cfg pkgRetry.RetryConfig) string {
	if cfg.Attempts > 1 {
		return fmt.Sprintf("%s (retry x%d)", p.Name(), cfg.Attempts)
	}
	return p.Name()
}
