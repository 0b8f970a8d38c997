package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	// Packages
	client "github.com/mutablelogic/go-client"
	llm "github.com/mutablelogic/go-llmquery"
	anthropic "github.com/mutablelogic/go-llmquery/pkg/provider/anthropic"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

var (
	apiKey string
)

func TestMain(m *testing.M) {
	// API KEY
	apiKey = os.Getenv("ANTHROPIC_API_KEY")
	os.Exit(m.Run())
}

type capture struct {
	header http.Header
	body   map[string]any
}

func newServer(t *testing.T, status int, response string) (*httptest.Server, *capture) {
	t.Helper()
	captured := new(capture)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.header = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&captured.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func newClient(t *testing.T, server *httptest.Server) *anthropic.Client {
	t.Helper()
	c, err := anthropic.New("test-key", client.OptEndpoint(server.URL))
	require.NoError(t, err)
	return c
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_client_001(t *testing.T) {
	// Creating a client with an empty API key succeeds
	assert := assert.New(t)
	c, err := anthropic.New("")
	assert.NoError(err)
	assert.NotNil(c)
	assert.Equal("anthropic", c.Name())
}

func Test_client_002(t *testing.T) {
	// History, then the query, with the system prompt carried separately
	assert := assert.New(t)
	server, captured := newServer(t, http.StatusOK, `{
		"id": "msg_1", "type": "message", "role": "assistant",
		"content": [{"type": "text", "text": "Paris"}],
		"stop_reason": "end_turn"
	}`)
	c := newClient(t, server)

	reply, err := c.Query(context.Background(), schema.Request{
		Model:        "claude-3-7-sonnet-latest",
		Text:         "And of France?",
		SystemPrompt: "Be brief",
		Temperature:  0.5,
		MaxTokens:    1000,
		History: schema.Conversation{
			{Role: schema.RoleSystem, Content: "ignored"},
			{Role: schema.RoleUser, Content: "Capital of Spain?"},
			{Role: schema.RoleAssistant, Content: "Madrid"},
		},
	})
	assert.NoError(err)
	assert.Equal("Paris", reply)

	// Headers
	assert.Equal("test-key", captured.header.Get("x-api-key"))
	assert.Equal("2023-06-01", captured.header.Get("anthropic-version"))
	assert.Equal("interleaved-thinking-2025-05-14,token-efficient-tools-2025-02-19", captured.header.Get("anthropic-beta"))

	// Body
	assert.Equal("claude-3-7-sonnet-latest", captured.body["model"])
	assert.Equal("Be brief", captured.body["system"])
	assert.EqualValues(1000, captured.body["max_tokens"])
	assert.EqualValues(0.5, captured.body["temperature"])
	messages, ok := captured.body["messages"].([]any)
	if assert.True(ok) && assert.Len(messages, 3) {
		assert.Equal(map[string]any{"role": "user", "content": "Capital of Spain?"}, messages[0])
		assert.Equal(map[string]any{"role": "assistant", "content": "Madrid"}, messages[1])
		assert.Equal(map[string]any{"role": "user", "content": "And of France?"}, messages[2])
	}
}

func Test_client_003(t *testing.T) {
	// No beta header for models without beta features
	assert := assert.New(t)
	server, captured := newServer(t, http.StatusOK, `{"content": [{"type": "text", "text": "ok"}]}`)
	c := newClient(t, server)

	reply, err := c.Query(context.Background(), schema.Request{Model: "claude-3-opus-latest", Text: "hi", MaxTokens: 10})
	assert.NoError(err)
	assert.Equal("ok", reply)
	assert.Empty(captured.header.Get("anthropic-beta"))
}

func Test_client_004(t *testing.T) {
	// Status failures map to kinds
	assert := assert.New(t)
	server, _ := newServer(t, http.StatusUnauthorized, `{"type": "error", "error": {"type": "authentication_error", "message": "invalid x-api-key"}}`)
	_, err := newClient(t, server).Query(context.Background(), schema.Request{Model: "claude-3-opus-latest", Text: "hi", MaxTokens: 10})
	assert.ErrorIs(err, llm.ErrAuthentication)

	server, _ = newServer(t, http.StatusTooManyRequests, `{"type": "error"}`)
	_, err = newClient(t, server).Query(context.Background(), schema.Request{Model: "claude-3-opus-latest", Text: "hi", MaxTokens: 10})
	assert.ErrorIs(err, llm.ErrAPI)

	server, _ = newServer(t, http.StatusInternalServerError, `{"type": "error"}`)
	_, err = newClient(t, server).Query(context.Background(), schema.Request{Model: "claude-3-opus-latest", Text: "hi", MaxTokens: 10})
	assert.ErrorIs(err, llm.ErrAPI)
}

func Test_client_005(t *testing.T) {
	// An empty reply is an api error
	assert := assert.New(t)
	server, _ := newServer(t, http.StatusOK, `{"content": []}`)
	_, err := newClient(t, server).Query(context.Background(), schema.Request{Model: "claude-3-opus-latest", Text: "hi", MaxTokens: 10})
	assert.ErrorIs(err, llm.ErrAPI)
}

func Test_client_006(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("interleaved-thinking-2025-05-14,token-efficient-tools-2025-02-19", anthropic.BetaHeader("claude-3-7-sonnet-20250219"))
	assert.Equal("max-tokens-3-5-sonnet-2024-07-15,token-efficient-tools-2025-02-19", anthropic.BetaHeader("claude-3-5-sonnet-latest"))
	assert.Equal("interleaved-thinking-2025-05-14", anthropic.BetaHeader("claude-3-7-haiku"))
	assert.Equal("", anthropic.BetaHeader("claude-3-opus-latest"))
}

func Test_client_007(t *testing.T) {
	// Live query
	if apiKey == "" {
		t.Skip("ANTHROPIC_API_KEY not set, skipping")
	}
	assert := assert.New(t)
	c, err := anthropic.New(apiKey)
	assert.NoError(err)

	reply, err := c.Query(context.TODO(), schema.Request{Model: "claude-3-5-haiku-latest", Text: "Reply with the single word: yes", MaxTokens: 16})
	assert.NoError(err)
	assert.NotEmpty(reply)
	t.Log(reply)
}
