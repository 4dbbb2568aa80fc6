package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/qwizz-labs/qwizz-core/internal/core/domain"
)

func TestOpenAILLM_Generate(t *testing.T) {
	var gotModel string
	var gotMaxTokens int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}

		var req struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			Messages  []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		gotModel = req.Model
		gotMaxTokens = req.MaxTokens

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "` + req.Model + `",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Alice leads the project."}, "finish_reason": "stop"}]
		}`))
	}))
	defer server.Close()

	svc, err := NewOpenAILLM("test-key", "gpt-4o-mini", server.URL+"/v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	answer, err := svc.Generate(context.Background(), "Who leads the project?", domain.GenerationSettings{
		Model:        "gpt-4o",
		Temperature:  0.2,
		AnswerLength: domain.AnswerLengthShort,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if answer != "Alice leads the project." {
		t.Errorf("unexpected answer %q", answer)
	}
	if gotModel != "gpt-4o" {
		t.Errorf("expected per-call model override, got %q", gotModel)
	}
	if gotMaxTokens != domain.AnswerLengthShort.Tokens() {
		t.Errorf("expected max tokens %d, got %d", domain.AnswerLengthShort.Tokens(), gotMaxTokens)
	}
}

func TestOpenAILLM_GenerateDefaultsModel(t *testing.T) {
	var gotModel string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "ok"}, "finish_reason": "stop"}]
		}`))
	}))
	defer server.Close()

	svc, err := NewOpenAILLM("test-key", "gpt-4o-mini", server.URL+"/v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Generate(context.Background(), "hello", domain.GenerationSettings{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotModel != "gpt-4o-mini" {
		t.Errorf("expected default model, got %q", gotModel)
	}
}

func TestOpenAILLM_GenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	svc, err := NewOpenAILLM("test-key", "gpt-4o-mini", server.URL+"/v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Generate(context.Background(), "hello", domain.GenerationSettings{}); err == nil {
		t.Fatal("expected error from API failure")
	}
}
