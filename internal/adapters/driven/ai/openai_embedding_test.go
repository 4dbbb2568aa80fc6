package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newEmbeddingTestServer returns an OpenAI-compatible embeddings endpoint
// that answers every input with the given vector.
func newEmbeddingTestServer(t *testing.T, vector []float32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}

		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		type datum struct {
			Object    string    `json:"object"`
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		}
		resp := struct {
			Object string  `json:"object"`
			Data   []datum `json:"data"`
			Model  string  `json:"model"`
		}{Object: "list", Model: req.Model}

		for i := range req.Input {
			resp.Data = append(resp.Data, datum{Object: "embedding", Index: i, Embedding: vector})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIEmbedding_Embed(t *testing.T) {
	server := newEmbeddingTestServer(t, []float32{0.1, 0.2, 0.3})
	defer server.Close()

	svc, err := NewOpenAIEmbedding("test-key", "text-embedding-3-small", server.URL+"/v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	embeddings, err := svc.Embed(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(embeddings) != 2 {
		t.Fatalf("expected 2 embeddings, got %d", len(embeddings))
	}
	if len(embeddings[0]) != 3 || embeddings[0][1] != 0.2 {
		t.Errorf("unexpected embedding %v", embeddings[0])
	}
}

func TestOpenAIEmbedding_EmbedEmptyInput(t *testing.T) {
	svc, err := NewOpenAIEmbedding("test-key", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	embeddings, err := svc.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embeddings != nil {
		t.Errorf("expected nil embeddings, got %v", embeddings)
	}
}

func TestOpenAIEmbedding_EmbedQuery(t *testing.T) {
	server := newEmbeddingTestServer(t, []float32{0.5, 0.6})
	defer server.Close()

	svc, err := NewOpenAIEmbedding("test-key", "text-embedding-3-small", server.URL+"/v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	embedding, err := svc.EmbedQuery(context.Background(), "what did Alice say")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(embedding) != 2 || embedding[0] != 0.5 {
		t.Errorf("unexpected embedding %v", embedding)
	}
}

func TestOpenAIEmbedding_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	svc, err := NewOpenAIEmbedding("test-key", "text-embedding-3-small", server.URL+"/v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Embed(context.Background(), []string{"text"}); err == nil {
		t.Fatal("expected error from API failure")
	}
}
