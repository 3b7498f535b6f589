package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChat serves /v1/chat/completions, replying with the given contents in turn.
func fakeChat(t *testing.T, replies ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		n := int(calls.Add(1)) - 1
		content := replies[min(n, len(replies)-1)]
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  req.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestOpenAIExtract(t *testing.T) {
	srv, calls := fakeChat(t, `[{"text":"ephemeral","phonetic":"/ɪˈfem(ə)rəl/","definition":"lasting a very short time"}]`)
	x := NewOpenAIExtractor(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})

	words, err := x.Extract(context.Background(), "Fame is ephemeral.")
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "ephemeral", words[0].Text)
	assert.Equal(t, "lasting a very short time", words[0].Definition)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAIExtractChunksAndDedupes(t *testing.T) {
	srv, calls := fakeChat(t,
		"```json\n[{\"text\":\"lucid\",\"definition\":\"clear\"}]\n```",
		`[{"text":"Lucid","definition":"clear"},{"text":"opaque","definition":"not clear"}]`,
	)
	x := NewOpenAIExtractor(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1", ChunkSize: 60})

	text := strings.Repeat("a", 50) + "\n\n" + strings.Repeat("b", 50)
	words, err := x.Extract(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, words, 2)
	assert.Equal(t, "lucid", words[0].Text)
	assert.Equal(t, "opaque", words[1].Text)
}

func TestOpenAIExtractBadReply(t *testing.T) {
	srv, _ := fakeChat(t, "Sorry, I cannot help with that.")
	x := NewOpenAIExtractor(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})

	_, err := x.Extract(context.Background(), "some text")
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestOpenAIExtractServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom","type":"server_error"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()
	x := NewOpenAIExtractor(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})

	_, err := x.Extract(context.Background(), "some text")
	assert.Error(t, err)
}

func TestParseReply(t *testing.T) {
	words, err := parseReply("Here you go:\n[]")
	require.NoError(t, err)
	assert.Empty(t, words)

	_, err = parseReply(`[{"text": 5}]`)
	assert.ErrorIs(t, err, ErrBadResponse)
}
