package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pantrypal/onboarding-backend/internal/config"
	"github.com/pantrypal/onboarding-backend/internal/entity"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiConnector completes prompts with a Gemini generative model
type GeminiConnector struct {
	client *genai.Client
	model  string
}

func NewGeminiConnector(ctx context.Context, cfg config.LLMConfig) (*GeminiConnector, error) {
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiConnector{
		client: client,
		model:  cfg.Model,
	}, nil
}

func (c *GeminiConnector) Name() string {
	return config.LLMProviderGemini
}

func (c *GeminiConnector) Complete(ctx context.Context, req *entity.CompletionRequest) (string, error) {
	ctxzap.Info(ctx, "requesting completion from gemini",
		zap.String("purpose", string(req.Purpose)),
		zap.String("model", c.model),
	)

	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(req.Temperature)
	m.SetMaxOutputTokens(int32(req.MaxTokens))

	resp, err := m.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("gemini completion: %w", err)
	}

	return geminiText(resp)
}

func (c *GeminiConnector) Close() error {
	return c.client.Close()
}

// geminiText joins the text parts of the first candidate
func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini completion: no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("gemini completion: empty output")
	}

	return sb.String(), nil
}
