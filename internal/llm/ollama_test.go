package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOllamaProvider verifies that the provider talks to the Ollama HTTP API
// correctly. A httptest server stands in for Ollama so the test is hermetic.
func TestOllamaProvider(t *testing.T) {
	var capturedChat map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.WriteHeader(http.StatusOK)
		case "/api/tags":
			w.Header().Set("Content-Type", "application/json")
			_, err := w.Write([]byte(`{"models":[{"name":"llama3:8b","model":"llama3:8b","modified_at":"2024-01-01T00:00:00Z","size":42}]}`))
			assert.NoError(t, err)
		case "/api/chat":
			capturedChat = map[string]any{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&capturedChat))
			w.Header().Set("Content-Type", "application/x-ndjson")
			if stream, _ := capturedChat["stream"].(bool); !stream {
				_, _ = fmt.Fprintln(w, `{"model":"llama3:8b","message":{"role":"assistant","content":"Greeting"},"done":true}`)
				return
			}
			for _, part := range []string{"Hi", "!"} {
				_, _ = fmt.Fprintf(w, `{"model":"llama3:8b","message":{"role":"assistant","content":%q},"done":false}`+"\n", part)
			}
			_, _ = fmt.Fprintln(w, `{"model":"llama3:8b","message":{"role":"assistant","content":""},"done":true}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("Heartbeat", func(t *testing.T) {
		require.NoError(t, provider.Heartbeat(ctx))
	})

	t.Run("ListModels", func(t *testing.T) {
		models, err := provider.ListModels(ctx)
		require.NoError(t, err)
		require.Len(t, models.Models, 1)
		assert.Equal(t, "llama3:8b", models.Models[0].Name)
		assert.Equal(t, int64(42), models.Models[0].Size)
	})

	t.Run("GenerateStream", func(t *testing.T) {
		seed := 7
		req := &GenerateRequest{
			Model: "llama3:8b",
			Messages: []Message{
				{Role: "system", Content: "be brief"},
				{Role: "user", Content: "Hello!", Images: [][]byte{[]byte("png")}},
			},
			Options: Options{NumPredict: 256, Temperature: 0.2, TopP: 0.9, Seed: &seed},
		}
		ch := make(chan StreamResponse)
		errCh := make(chan error, 1)
		go func() { errCh <- provider.GenerateStream(ctx, req, ch) }()

		var parts []string
		var done bool
		for chunk := range ch {
			if chunk.Content != "" {
				parts = append(parts, chunk.Content)
			}
			done = done || chunk.Done
		}
		require.NoError(t, <-errCh)
		assert.Equal(t, []string{"Hi", "!"}, parts)
		assert.True(t, done)

		options, ok := capturedChat["options"].(map[string]any)
		require.True(t, ok)
		assert.EqualValues(t, 256, options["num_predict"])
		assert.EqualValues(t, 7, options["seed"])
		messages, ok := capturedChat["messages"].([]any)
		require.True(t, ok)
		assert.Len(t, messages, 2)
	})

	t.Run("Generate", func(t *testing.T) {
		resp, err := provider.Generate(ctx, &GenerateRequest{Model: "llama3:8b", Options: Options{NumPredict: 10}})
		require.NoError(t, err)
		assert.Equal(t, "Greeting", resp.Response)
		_, hasSeed := capturedChat["options"].(map[string]any)["seed"]
		assert.False(t, hasSeed)
	})
}

func TestOllamaProvider_StreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model not loaded"}`))
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(server.URL)
	require.NoError(t, err)

	ch := make(chan StreamResponse)
	errCh := make(chan error, 1)
	go func() { errCh <- provider.GenerateStream(context.Background(), &GenerateRequest{Model: "x"}, ch) }()
	for range ch {
	}
	assert.ErrorContains(t, <-errCh, "model not loaded")
}
