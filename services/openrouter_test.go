package services

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

func chatReply(content string) string {
	return fmt.Sprintf(`{"choices": [{"message": {"content": %q}}]}`, content)
}

func requestedModel(t *testing.T, r *http.Request) string {
	t.Helper()
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	return req.Model
}

func TestInvokeEscalatesAcrossModels(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		model := requestedModel(t, r)
		seen = append(seen, model)
		if len(seen) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, chatReply(`{"distance_km": 100}`))
	}))
	defer srv.Close()

	client := NewAIClient("test-key", srv.URL, []string{"model-a", "model-b", "model-c"})

	text, err := client.Invoke(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"distance_km": 100}`, text)
	assert.Equal(t, []string{"model-a", "model-b", "model-c"}, seen)
}

func TestInvokeExhaustsCandidateList(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewAIClient("test-key", srv.URL, []string{"model-a", "model-b"})

	_, err := client.Invoke(context.Background(), "system", "user")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelsExhausted)
	// one attempt per candidate, no same-model retries
	assert.Equal(t, 2, attempts)
}

func TestInvokeEmptyCompletionEscalates(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, chatReply(""))
			return
		}
		fmt.Fprint(w, chatReply("ok"))
	}))
	defer srv.Close()

	client := NewAIClient("test-key", srv.URL, []string{"model-a", "model-b"})

	text, err := client.Invoke(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 2, calls)
}

func TestInvokeWithoutAPIKey(t *testing.T) {
	client := NewAIClient("", "http://unused.invalid", []string{"model-a"})

	_, err := client.Invoke(context.Background(), "system", "user")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestInvokeSendsAuthAndFormatHints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "json_object", req.ResponseFormat.Type)
		assert.Equal(t, 4000, req.MaxTokens)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		fmt.Fprint(w, chatReply("{}"))
	}))
	defer srv.Close()

	client := NewAIClient("test-key", srv.URL, []string{"model-a"})

	_, err := client.Invoke(context.Background(), "sys prompt", "user prompt")
	require.NoError(t, err)
}
