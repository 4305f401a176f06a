package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIGenerateCompletion_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}

		var payload chatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.ResponseFormat == nil || payload.ResponseFormat.Type != "json_object" {
			t.Fatalf("expected json_object response format, got %+v", payload.ResponseFormat)
		}
		if len(payload.Messages) != 2 {
			t.Fatalf("expected both messages forwarded, got %d", len(payload.Messages))
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"summary":"done"}`}},
			},
			"usage": map[string]int{"prompt_tokens": 12, "completion_tokens": 4},
		})
	}))
	defer ts.Close()

	cfg := testLLMConfig(ts.URL)
	cfg.Provider = "openai"
	client, err := NewOpenAIClient(cfg, nil)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	messages := []Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "hello"},
	}
	text, err := client.GenerateCompletion(context.Background(), messages, 100, 0.3, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != `{"summary":"done"}` {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestOpenAIGenerateCompletion_NoJSONModeOmitsFormat(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload chatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.ResponseFormat != nil {
			t.Fatalf("response_format should be omitted, got %+v", payload.ResponseFormat)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "plain text"}},
			},
		})
	}))
	defer ts.Close()

	cfg := testLLMConfig(ts.URL)
	client, err := NewOpenAIClient(cfg, nil)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	text, err := client.GenerateCompletion(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, 100, 0.3, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "plain text" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestOpenAIGenerateCompletion_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer ts.Close()

	client, err := NewOpenAIClient(testLLMConfig(ts.URL), nil)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.GenerateCompletion(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, 100, 0.3, false)
	if !errors.Is(err, ErrAPI) {
		t.Fatalf("expected ErrAPI for empty choices, got %v", err)
	}
}
