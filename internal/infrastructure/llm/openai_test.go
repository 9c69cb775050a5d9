package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gusrasch/ventii/internal/config"
	"github.com/gusrasch/ventii/internal/domain"
)

func testClient(endpoint string) *OpenAIClient {
	return NewOpenAIClient(config.OpenAIConfig{
		Endpoint:    endpoint,
		Model:       "gpt-4o",
		APIKey:      "test-key",
		Temperature: 0,
	})
}

func TestCompleteSendsVisionPayload(t *testing.T) {
	t.Parallel()

	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Yes, this is an event."}},
			},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	image := domain.EncodedImage{MediaType: "image/jpeg", Data: "ZmFrZQ=="}

	text, err := client.Complete(context.Background(), "is this an event?", []domain.EncodedImage{image})
	require.NoError(t, err)
	assert.Equal(t, "Yes, this is an event.", text)

	assert.Equal(t, "gpt-4o", captured["model"])

	messages := captured["messages"].([]any)
	require.Len(t, messages, 1)
	content := messages[0].(map[string]any)["content"].([]any)
	require.Len(t, content, 2)

	textPart := content[0].(map[string]any)
	assert.Equal(t, "text", textPart["type"])
	assert.Equal(t, "is this an event?", textPart["text"])

	imagePart := content[1].(map[string]any)
	assert.Equal(t, "image_url", imagePart["type"])
	assert.Equal(t, "data:image/jpeg;base64,ZmFrZQ==", imagePart["image_url"].(map[string]any)["url"])
}

func TestCompleteErrorStatusIsInferenceError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Complete(context.Background(), "prompt", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInference)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestCompleteEmptyChoicesIsInferenceError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Complete(context.Background(), "prompt", nil)
	assert.ErrorIs(t, err, domain.ErrInference)
}

func TestCompleteMisconfiguredClient(t *testing.T) {
	t.Parallel()

	client := NewOpenAIClient(config.OpenAIConfig{Endpoint: "http://localhost", Model: "gpt-4o"})
	_, err := client.Complete(context.Background(), "prompt", nil)
	assert.ErrorIs(t, err, domain.ErrInference)
}
