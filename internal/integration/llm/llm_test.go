package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/pantrypal/onboarding-backend/internal/config"
	"github.com/pantrypal/onboarding-backend/internal/entity"
	"github.com/pantrypal/onboarding-backend/internal/pkg/metrics"
	pkgRetry "github.com/pantrypal/onboarding-backend/internal/pkg/retry"
	pkghttp "github.com/pantrypal/onboarding-backend/pkg/http"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func questionsRequest() *entity.CompletionRequest {
	return &entity.CompletionRequest{
		Purpose:     entity.CompletionPurposeQuestions,
		Prompt:      "generate questions",
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}

func TestGatewayConnectorComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoke", r.URL.Path)
		assert.Equal(t, "nova", r.Header.Get(modelIDHeader))

		var body entity.GatewayCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Messages, 1)
		assert.Equal(t, "user", body.Messages[0].Role)
		assert.Equal(t, "generate questions", body.Messages[0].Content[0].Text)
		assert.Equal(t, 1024, body.InferenceConfig.MaxTokens)
		assert.InDelta(t, 0.7, body.InferenceConfig.Temperature, 0.0001)

		_, _ = w.Write([]byte(`{"output":{"message":{"role":"assistant","content":[{"text":"[]"}]}}}`))
	}))
	defer srv.Close()

	c := NewConnector(config.LLMConfig{
		Model:           "nova",
		GatewayEndpoint: "/invoke",
		HTTPClientCfg:   config.HTTPClientConfig{Url: srv.URL, RequestTimeout: 5 * time.Second},
	}, zap.NewNop())

	text, err := c.Complete(context.Background(), questionsRequest())
	require.NoError(t, err)
	assert.Equal(t, "[]", text)
	assert.Equal(t, config.LLMProviderHTTP, c.Name())
}

func TestGatewayConnectorEmptyOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"output":{"message":{"role":"assistant","content":[]}}}`))
	}))
	defer srv.Close()

	c := NewConnector(config.LLMConfig{
		GatewayEndpoint: "/invoke",
		HTTPClientCfg:   config.HTTPClientConfig{Url: srv.URL},
	}, zap.NewNop())

	_, err := c.Complete(context.Background(), questionsRequest())
	assert.Error(t, err)
}

func TestOpenAIConnectorComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"ok\":true}"},"finish_reason":"stop"}],"usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}}`))
	}))
	defer srv.Close()

	c := NewOpenAIConnector(config.LLMConfig{
		APIKey:        "key",
		Model:         "gpt-4o-mini",
		BaseURL:       srv.URL,
		HTTPClientCfg: config.HTTPClientConfig{RequestTimeout: 5 * time.Second},
	})

	text, err := c.Complete(context.Background(), questionsRequest())
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)
}

func TestOpenAIConnectorUpstreamErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer srv.Close()

	c := NewOpenAIConnector(config.LLMConfig{APIKey: "key", Model: "m", BaseURL: srv.URL})

	_, err := c.Complete(context.Background(), questionsRequest())
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
}

func TestMockConnectorRoutesByPurpose(t *testing.T) {
	m := NewMockConnector(zap.NewNop())

	questions, err := m.Complete(context.Background(), questionsRequest())
	require.NoError(t, err)
	assert.Contains(t, questions, `"questionId": "q8"`)

	profile, err := m.Complete(context.Background(), &entity.CompletionRequest{Purpose: entity.CompletionPurposeProfile})
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(profile)))

	_, err = m.Complete(context.Background(), &entity.CompletionRequest{Purpose: "unknown"})
	assert.Error(t, err)
}

func TestGeminiText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(`1}`)}}},
		},
	}

	text, err := geminiText(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)

	_, err = geminiText(&genai.GenerateContentResponse{})
	assert.Error(t, err)
}

type flakyProvider struct {
	failures int
	err      error
	calls    int
}

func (f *flakyProvider) Name() string { return "flaky" }

func (f *flakyProvider) Complete(context.Context, *entity.CompletionRequest) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", f.err
	}
	return "done", nil
}

func TestRetryingProviderRetriesTransientErrors(t *testing.T) {
	flaky := &flakyProvider{failures: 2, err: &pkghttp.HTTPError{StatusCode: http.StatusBadGateway}}
	p := WithRetry(flaky, pkgRetry.RetryConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: time.Millisecond})

	text, err := p.Complete(context.Background(), questionsRequest())
	require.NoError(t, err)
	assert.Equal(t, "done", text)
	assert.Equal(t, 3, flaky.calls)
}

func TestRetryingProviderStopsOnPermanentErrors(t *testing.T) {
	flaky := &flakyProvider{failures: 5, err: &pkghttp.HTTPError{StatusCode: http.StatusUnauthorized}}
	p := WithRetry(flaky, pkgRetry.RetryConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: time.Millisecond})

	_, err := p.Complete(context.Background(), questionsRequest())
	require.Error(t, err)
	assert.Equal(t, 1, flaky.calls)
}

func TestRetryingProviderDefaultIsSingleAttempt(t *testing.T) {
	flaky := &flakyProvider{failures: 1, err: &pkghttp.NetworkError{Err: errors.New("reset")}}
	p := WithRetry(flaky, *pkgRetry.DefaultRetryConfig())

	_, err := p.Complete(context.Background(), questionsRequest())
	require.Error(t, err)
	assert.Equal(t, 1, flaky.calls)
}

func TestInstrumentedProviderRecordsOutcome(t *testing.T) {
	m := metrics.New()
	p := WithMetrics(NewMockConnector(zap.NewNop()), m)

	_, err := p.Complete(context.Background(), questionsRequest())
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(m.Registry(), "onboarding_completion_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
