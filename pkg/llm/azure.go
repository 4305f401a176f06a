package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// AzureOpenAIClient is a minimal client for Azure OpenAI deployments. The
// wire format matches OpenAI chat completions; routing and auth differ.
type AzureOpenAIClient struct {
	apiKey     string
	endpoint   string
	deployment string
	apiVersion string
	client     *http.Client
	logger     *zap.Logger
}

// NewAzureOpenAIClient creates an Azure OpenAI client from config. The
// deployment name falls back to the model identifier when not set.
func NewAzureOpenAIClient(cfg *config.LLMConfig, logger *zap.Logger) (*AzureOpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("azure_openai: LLM_API_KEY is required")
	}
	if cfg.AzureEndpoint == "" {
		return nil, fmt.Errorf("azure_openai: AZURE_OPENAI_ENDPOINT is required")
	}

	deployment := cfg.AzureDeployment
	if deployment == "" {
		deployment = cfg.Model
	}

	return &AzureOpenAIClient{
		apiKey:     cfg.APIKey,
		endpoint:   strings.TrimSuffix(cfg.AzureEndpoint, "/"),
		deployment: deployment,
		apiVersion: cfg.AzureAPIVersion,
		client:     &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

// Name returns the provider name
func (a *AzureOpenAIClient) Name() string { return "azure_openai" }

// GenerateCompletion implements Provider
func (a *AzureOpenAIClient) GenerateCompletion(ctx context.Context, messages []Message, maxTokens int, temperature float64, jsonMode bool) (string, error) {
	reqBody := chatRequest{
		Model:       a.deployment,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
	if jsonMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %v", ErrAPI, err)
	}

	endpoint := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s", a.endpoint, a.deployment, a.apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAPI, err)
	}
	req.Header.Set("api-key", a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	text, usage, err := doChatRequest(a.client, req, "azure openai")
	if err != nil {
		return "", err
	}

	if a.logger != nil {
		a.logger.Info("Azure OpenAI API call successful",
			zap.Int("input_tokens", usage.PromptTokens),
			zap.Int("output_tokens", usage.CompletionTokens),
		)
	}

	return text, nil
}
