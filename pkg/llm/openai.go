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

// OpenAIClient is a minimal client for the OpenAI chat completions API
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewOpenAIClient creates an OpenAI client from config
func NewOpenAIClient(cfg *config.LLMConfig, logger *zap.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: LLM_API_KEY is required")
	}

	base := cfg.BaseURL
	if base == "" {
		base = "https://api.openai.com"
	}

	return &OpenAIClient{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(base, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}, nil
}

// Name returns the provider name
func (o *OpenAIClient) Name() string { return "openai" }

// chatRequest is the OpenAI-compatible chat completion request shape, shared
// with the Azure adapter.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatResponse is a minimal OpenAI-compatible response shape
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

type chatError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateCompletion implements Provider. jsonMode uses the native
// response_format json_object flag.
func (o *OpenAIClient) GenerateCompletion(ctx context.Context, messages []Message, maxTokens int, temperature float64, jsonMode bool) (string, error) {
	reqBody := chatRequest{
		Model:       o.model,
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

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAPI, err)
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	text, usage, err := doChatRequest(o.client, req, "openai")
	if err != nil {
		return "", err
	}

	if o.logger != nil {
		o.logger.Info("OpenAI API call successful",
			zap.Int("input_tokens", usage.PromptTokens),
			zap.Int("output_tokens", usage.CompletionTokens),
		)
	}

	return text, nil
}

// chatUsage carries OpenAI-compatible token usage counts
type chatUsage struct {
	PromptTokens     int
	CompletionTokens int
}

// doChatRequest executes an OpenAI-compatible chat completion request and
// normalizes failures into the error taxonomy.
func doChatRequest(client *http.Client, req *http.Request, backend string) (string, chatUsage, error) {
	resp, err := client.Do(req)
	if err != nil {
		return "", chatUsage{}, fmt.Errorf("%w: %v", ErrAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", chatUsage{}, fmt.Errorf("%w: %s returned status 429: %s", ErrRateLimit, backend, decodeChatError(resp))
	}
	if resp.StatusCode >= 400 {
		return "", chatUsage{}, fmt.Errorf("%w: %s returned status %d: %s", ErrAPI, backend, resp.StatusCode, decodeChatError(resp))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", chatUsage{}, fmt.Errorf("%w: failed to decode response: %v", ErrAPI, err)
	}
	if len(cr.Choices) == 0 {
		return "", chatUsage{}, fmt.Errorf("%w: empty response from %s", ErrAPI, backend)
	}

	usage := chatUsage{
		PromptTokens:     cr.Usage.PromptTokens,
		CompletionTokens: cr.Usage.CompletionTokens,
	}
	return cr.Choices[0].Message.Content, usage, nil
}

func decodeChatError(resp *http.Response) string {
	var ce chatError
	if err := json.NewDecoder(resp.Body).Decode(&ce); err != nil || ce.Error.Message == "" {
		return "no error detail"
	}
	return ce.Error.Message
}
