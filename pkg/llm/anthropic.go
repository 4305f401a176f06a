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

const anthropicAPIVersion = "2023-06-01"

// AnthropicClient is a minimal client for the Anthropic Messages API
type AnthropicClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewAnthropicClient creates an Anthropic client from config. Missing
// credentials fail here, not at the first call.
func NewAnthropicClient(cfg *config.LLMConfig, logger *zap.Logger) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: LLM_API_KEY is required")
	}

	base := cfg.BaseURL
	if base == "" {
		base = "https://api.anthropic.com"
	}

	return &AnthropicClient{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(base, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}, nil
}

// Name returns the provider name
func (a *AnthropicClient) Name() string { return "anthropic" }

type anthropicRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type anthropicError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateCompletion implements Provider. The Messages API takes a single
// system field, so all system messages are merged into one instruction.
func (a *AnthropicClient) GenerateCompletion(ctx context.Context, messages []Message, maxTokens int, temperature float64, jsonMode bool) (string, error) {
	system, rest := splitSystem(messages)
	if jsonMode {
		if system != "" {
			system += "\n\n" + jsonOnlyInstruction
		} else {
			system = jsonOnlyInstruction
		}
	}

	reqBody := anthropicRequest{
		Model:       a.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		System:      system,
		Messages:    rest,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %v", ErrAPI, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAPI, err)
	}
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("%w: anthropic returned status 429: %s", ErrRateLimit, decodeAnthropicError(resp))
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: anthropic returned status %d: %s", ErrAPI, resp.StatusCode, decodeAnthropicError(resp))
	}

	var ar anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrAPI, err)
	}
	if len(ar.Content) == 0 {
		return "", fmt.Errorf("%w: empty response from anthropic", ErrAPI)
	}

	if a.logger != nil {
		a.logger.Info("Anthropic API call successful",
			zap.Int("input_tokens", ar.Usage.InputTokens),
			zap.Int("output_tokens", ar.Usage.OutputTokens),
		)
	}

	return ar.Content[0].Text, nil
}

func decodeAnthropicError(resp *http.Response) string {
	var ae anthropicError
	if err := json.NewDecoder(resp.Body).Decode(&ae); err != nil || ae.Error.Message == "" {
		return "no error detail"
	}
	return ae.Error.Message
}
