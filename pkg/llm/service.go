package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// Service is a provider-agnostic façade over one configured LLM backend. It is
// constructed once at startup and shared by reference; the selected adapter
// never changes for the lifetime of the process.
type Service struct {
	provider Provider
	cfg      *config.LLMConfig
	logger   *zap.Logger

	// retryInitial is the base backoff delay between rate-limit retries.
	// Overridable in tests.
	retryInitial time.Duration
}

// NewService selects the adapter matching cfg.Provider (case-insensitive).
// Unknown provider names and adapter construction failures are fatal
// configuration errors surfaced here, before any meeting is touched.
func NewService(cfg *config.LLMConfig, logger *zap.Logger) (*Service, error) {
	var (
		provider Provider
		err      error
	)

	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		provider, err = NewAnthropicClient(cfg, logger)
	case "openai":
		provider, err = NewOpenAIClient(cfg, logger)
	case "azure_openai":
		provider, err = NewAzureOpenAIClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q (available options: anthropic, openai, azure_openai)", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}

	if logger != nil {
		logger.Info("Initialized LLM provider",
			zap.String("provider", provider.Name()),
			zap.String("model", cfg.Model),
		)
	}

	return &Service{
		provider:     provider,
		cfg:          cfg,
		logger:       logger,
		retryInitial: 2 * time.Second,
	}, nil
}

// GenerateCompletion calls the configured provider. Zero maxTokens/temperature
// fall back to the configured defaults. Rate-limit failures are retried with
// exponential backoff up to LLM_MAX_RETRIES attempts; any other failure
// propagates immediately.
func (s *Service) GenerateCompletion(ctx context.Context, messages []Message, maxTokens int, temperature float64, jsonMode bool) (string, error) {
	if maxTokens <= 0 {
		maxTokens = s.cfg.MaxTokens
	}
	if temperature <= 0 {
		temperature = s.cfg.Temperature
	}

	var out string
	op := func() error {
		text, err := s.provider.GenerateCompletion(ctx, messages, maxTokens, temperature, jsonMode)
		if err != nil {
			if errors.Is(err, ErrRateLimit) {
				if s.logger != nil {
					s.logger.Warn("LLM rate limit hit, will retry", zap.Error(err))
				}
				return err
			}
			return backoff.Permanent(err)
		}
		out = text
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.retryInitial
	bo.MaxInterval = 60 * time.Second
	bo.MaxElapsedTime = 0 // bounded by attempt count, not wall clock

	retries := uint64(0)
	if s.cfg.MaxRetries > 1 {
		retries = uint64(s.cfg.MaxRetries - 1)
	}

	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, retries), ctx)); err != nil {
		return "", err
	}
	return out, nil
}

// GenerateJSON calls GenerateCompletion in json mode and decodes the response
// into out. Markdown code fences around the payload are tolerated. Non-JSON
// output yields a *ResponseParseError carrying a bounded snippet of the text.
func (s *Service) GenerateJSON(ctx context.Context, messages []Message, maxTokens int, temperature float64, out any) error {
	text, err := s.GenerateCompletion(ctx, messages, maxTokens, temperature, true)
	if err != nil {
		return err
	}

	cleaned := extractJSON(text)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		if s.logger != nil {
			s.logger.Error("Failed to parse LLM response as JSON",
				zap.String("response", snippet(text)),
				zap.Error(err),
			)
		}
		return &ResponseParseError{Snippet: snippet(text), Err: err}
	}
	return nil
}

// ProviderName reports which backend the service was configured with
func (s *Service) ProviderName() string {
	return s.provider.Name()
}
