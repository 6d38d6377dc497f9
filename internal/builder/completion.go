package builder

import (
	"context"
	"fmt"

	"github.com/pantrypal/onboarding-backend/internal/config"
	"github.com/pantrypal/onboarding-backend/internal/integration/llm"
	"github.com/pantrypal/onboarding-backend/internal/pkg/metrics"
	"go.uber.org/zap"
)

// setupCompletion picks the provider from LLM_PROVIDER and wraps it with retries and metrics.
// The returned func releases provider resources.
func setupCompletion(ctx context.Context, cfg config.LLMConfig, m *metrics.Metrics, logger *zap.Logger) (llm.Provider, func(), error) {
	var (
		provider llm.Provider
		closer   = func() {}
	)

	switch cfg.Provider {
	case config.LLMProviderOpenAI:
		provider = llm.NewOpenAIConnector(cfg)
	case config.LLMProviderGemini:
		gemini, err := llm.NewGeminiConnector(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		provider = gemini
		closer = func() {
			if err := gemini.Close(); err != nil {
				logger.Warn("Failed to close gemini client", zap.Error(err))
			}
		}
	case config.LLMProviderHTTP:
		provider = llm.NewConnector(cfg, logger)
	case config.LLMProviderMock:
		logger.Info("Using mock completion provider")
		provider = llm.NewMockConnector(logger)
	default:
		return nil, nil, fmt.Errorf("unsupported completion provider %q", cfg.Provider)
	}

	logger.Info("Completion provider configured",
		zap.String("provider", llm.Describe(provider, cfg.Retry)),
		zap.String("model", cfg.Model),
		zap.Int("max_tokens", cfg.MaxTokens),
	)

	return llm.WithMetrics(llm.WithRetry(provider, cfg.Retry), m), closer, nil
}
