package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pantrypal/onboarding-backend/internal/config"
	"github.com/pantrypal/onboarding-backend/internal/entity"
	"github.com/pantrypal/onboarding-backend/internal/integration/common"
	pkghttp "github.com/pantrypal/onboarding-backend/pkg/http"
	"go.uber.org/zap"
)

const modelIDHeader = "X-Model-Id"

// Connector talks to a completion gateway that accepts a Bedrock-style
// messages body and answers with output.message.content[].text.
type Connector struct {
	config    config.LLMConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientCfg, logger),
		config:    cfg,
		logger:    logger,
	}
}

func (c *Connector) Name() string {
	return config.LLMProviderHTTP
}

// Complete sends the prompt as a single user message and returns the first text block
func (c *Connector) Complete(ctx context.Context, req *entity.CompletionRequest) (string, error) {
	ctxzap.Info(ctx, "requesting completion from gateway",
		zap.String("purpose", string(req.Purpose)),
		zap.String("model", c.config.Model),
	)

	body := entity.GatewayCompletionRequest{
		Messages: []entity.GatewayMessage{
			{
				Role:    "user",
				Content: []entity.GatewayContent{{Text: req.Prompt}},
			},
		},
		InferenceConfig: entity.GatewayInferenceConfig{
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
		},
	}

	var resp entity.GatewayCompletionResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.GatewayEndpoint, body, &resp,
		pkghttp.WithHeader(modelIDHeader, c.config.Model),
	)
	if err != nil {
		return "", fmt.Errorf("gateway completion: %w", err)
	}

	content := resp.Output.Message.Content
	if len(content) == 0 || strings.TrimSpace(content[0].Text) == "" {
		return "", fmt.Errorf("gateway completion: empty output")
	}

	ctxzap.Info(ctx, "completion received from gateway", zap.Int("length", len(content[0].Text)))

	return content[0].Text, nil
}
