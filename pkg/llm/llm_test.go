package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatClientComplete(t *testing.T) {
	var gotAuth, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "[]"}, "finish_reason": "stop"}]}`))
	}))
	defer server.Close()

	client := NewClient(&Config{
		Endpoint: server.URL,
		APIKey:   "test-key",
		Model:    "gpt-4o-mini",
	}, WithHTTPClient(server.Client()))

	out, err := client.Complete(context.Background(), "you relate notes", "suggest links")
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Contains(t, gotBody, `"model":"gpt-4o-mini"`)
	assert.Contains(t, gotBody, `"role":"system"`)
	assert.Contains(t, gotBody, "suggest links")
}

func TestChatClientCompleteHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited", "type": "rate_limit"}}`))
	}))
	defer server.Close()

	client := NewClient(&Config{Endpoint: server.URL, APIKey: "k"})

	_, err := client.Complete(context.Background(), "", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestChatClientCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "model overloaded", "type": "server_error"}}`))
	}))
	defer server.Close()

	client := NewClient(&Config{Endpoint: server.URL})

	_, err := client.Complete(context.Background(), "", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestChatClientCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewClient(&Config{Endpoint: server.URL})

	_, err := client.Complete(context.Background(), "", "hello")
	assert.Error(t, err)
}
