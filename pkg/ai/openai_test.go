package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/voice-transcriber/pkg/config"
)

func newOpenAITestClient(t *testing.T, h http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewOpenAIClient(&config.OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1/"}, "whisper-1")
}

func TestOpenAIClient_Transcribe(t *testing.T) {
	client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Empty(t, r.FormValue("language"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "recording.webm", hdr.Filename)
		data, _ := io.ReadAll(f)
		assert.Equal(t, "fake-audio", string(data))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"hello from the recording"}`))
	})

	text, err := client.Transcribe(context.Background(), strings.NewReader("fake-audio"), "recording.webm")
	require.NoError(t, err)
	assert.Equal(t, "hello from the recording", text)
}

func TestOpenAIClient_Complete(t *testing.T) {
	var body map[string]interface{}
	client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-3.5-turbo",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Two sentence summary."}}]
		}`))
	})

	out, err := client.Complete(context.Background(), ChatRequest{
		Model: "gpt-3.5-turbo",
		Messages: []ChatMessage{
			{Role: RoleSystem, Content: "be brief"},
			{Role: RoleUser, Content: "text"},
		},
		Temperature: 0.7,
		MaxTokens:   150,
	})
	require.NoError(t, err)
	assert.Equal(t, "Two sentence summary.", out)

	assert.Equal(t, "gpt-3.5-turbo", body["model"])
	assert.InDelta(t, 0.7, body["temperature"], 1e-9)
	assert.EqualValues(t, 150, body["max_tokens"])
	msgs, ok := body["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]interface{})["role"])
	assert.Equal(t, "user", msgs[1].(map[string]interface{})["role"])
}

func TestOpenAIClient_NoRetryOnServerError(t *testing.T) {
	var calls int32
	client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"upstream exploded","type":"server_error"}}`))
	})

	_, err := client.Complete(context.Background(), ChatRequest{Model: "gpt-3.5-turbo", Messages: []ChatMessage{{Role: RoleUser, Content: "x"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai chat completion failed")
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	})

	_, err := client.Complete(context.Background(), ChatRequest{Model: "m", Messages: []ChatMessage{{Role: RoleUser, Content: "x"}}})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}
