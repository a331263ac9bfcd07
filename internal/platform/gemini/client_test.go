package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeServer(t *testing.T, status int, parts []string, capture *http.Request) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			*capture = *r
		}
		if status != http.StatusOK {
			http.Error(w, "upstream error", status)
			return
		}
		type part struct {
			Text string `json:"text"`
		}
		var ps []part
		for _, text := range parts {
			ps = append(ps, part{Text: text})
		}
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": ps}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerateContent_JoinsParts(t *testing.T) {
	t.Parallel()

	var got http.Request
	srv := fakeServer(t, http.StatusOK, []string{"first", "second"}, &got)
	defer srv.Close()

	client := NewClient("test-key")
	client.BaseURL = srv.URL

	text, err := client.GenerateContent(context.Background(), "say something")
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", text)

	assert.Equal(t, "/models/gemini-2.0-flash-lite-001:generateContent", got.URL.Path)
	assert.Equal(t, "test-key", got.URL.Query().Get("key"))
}

func TestGenerateContent_NoCandidates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	client := NewClient("test-key")
	client.BaseURL = srv.URL

	text, err := client.GenerateContent(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestGenerateContent_UpstreamFailure(t *testing.T) {
	t.Parallel()

	srv := fakeServer(t, http.StatusInternalServerError, nil, nil)
	defer srv.Close()

	client := NewClient("test-key")
	client.BaseURL = srv.URL

	_, err := client.GenerateContent(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestGenerateContent_SendsPrompt(t *testing.T) {
	t.Parallel()

	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		body, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key")
	client.BaseURL = srv.URL

	_, err := client.GenerateContent(context.Background(), "the prompt text")
	require.NoError(t, err)

	var decoded generateRequest
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Len(t, decoded.Contents, 1)
	assert.Equal(t, "user", decoded.Contents[0].Role)
	require.Len(t, decoded.Contents[0].Parts, 1)
	assert.Equal(t, "the prompt text", decoded.Contents[0].Parts[0].Text)
}
