package llm

import (
	"context"
	"strings"
)

// Role identifies the author of a chat message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat message sent to an LLM backend
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Provider is the capability interface implemented by each LLM backend adapter.
// Implementations hold no per-call mutable state and are safe for concurrent use.
type Provider interface {
	// GenerateCompletion sends the messages to the backend and returns the raw
	// text of the first completion choice. When jsonMode is true the adapter
	// biases the backend toward JSON-only output, either natively or by
	// instruction.
	GenerateCompletion(ctx context.Context, messages []Message, maxTokens int, temperature float64, jsonMode bool) (string, error)

	// Name returns the provider name for logging
	Name() string
}

// jsonOnlyInstruction is appended to the system content for backends without a
// native structured-output flag.
const jsonOnlyInstruction = "You must respond with valid JSON only. No additional text."

// splitSystem merges all system messages into one instruction string and
// returns the remaining conversation messages. Backends with a single system
// field (Anthropic-style) need this.
func splitSystem(messages []Message) (string, []Message) {
	var system []string
	rest := make([]Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == RoleSystem {
			system = append(system, msg.Content)
			continue
		}
		rest = append(rest, msg)
	}
	return strings.Join(system, "\n\n"), rest
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
