package clients_test

import (
	"testing"

	// Packages
	clients "github.com/mutablelogic/go-llmquery/pkg/clients"
	ollama "github.com/mutablelogic/go-llmquery/pkg/provider/ollama"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
	observer "go.uber.org/zap/zaptest/observer"
)

func Test_clients_001(t *testing.T) {
	// Missing credentials leave clients unavailable without failing
	assert := assert.New(t)
	core, logs := observer.New(zapcore.WarnLevel)
	set := clients.New(schema.Credentials{}, clients.WithLogger(zap.New(core)))
	assert.NotNil(set)

	assert.Nil(set.Get(schema.OpenAI))
	assert.Nil(set.Get(schema.Anthropic))
	assert.Nil(set.Get(schema.Google))
	assert.NotNil(set.Get(schema.Ollama))
	assert.Equal([]schema.Family{schema.Ollama}, set.Available())
	assert.Equal(3, logs.FilterMessage("client unavailable").Len())
}

func Test_clients_002(t *testing.T) {
	// Without a remote URL the remote client is the local client
	assert := assert.New(t)
	set := clients.New(schema.Credentials{})
	assert.False(set.HasRemoteOllama())
	assert.Same(set.Ollama(false), set.Ollama(true))

	local, ok := set.Ollama(false).(*ollama.Client)
	if assert.True(ok) {
		assert.False(local.IsRemote())
		assert.Equal("http://localhost:11434/api/chat", local.ChatURL())
	}
}

func Test_clients_003(t *testing.T) {
	// Every family is available with credentials
	assert := assert.New(t)
	set := clients.New(schema.Credentials{
		schema.OpenAIKey:       "sk-openai",
		schema.AnthropicKey:    "sk-anthropic",
		schema.GoogleKey:       "google",
		schema.OllamaKey:       "remote-key",
		schema.OllamaRemoteURL: "https://ai.example.com/api/v1",
	})
	assert.Equal([]schema.Family{schema.Anthropic, schema.Google, schema.Ollama, schema.OpenAI}, set.Available())
	for _, family := range schema.Families {
		if assert.NotNil(set.Get(family), family) {
			assert.Equal(family.String(), set.Get(family).Name())
		}
	}

	assert.True(set.HasRemoteOllama())
	remote, ok := set.Ollama(true).(*ollama.Client)
	if assert.True(ok) {
		assert.True(remote.IsRemote())
		assert.Equal("https://ai.example.com/api/chat", remote.ChatURL())
	}
}

func Test_clients_004(t *testing.T) {
	// Rebuild uses the new credentials
	assert := assert.New(t)
	set := clients.New(schema.Credentials{}, clients.WithLocalOllama("http://127.0.0.1:11500/api"))
	assert.Nil(set.Get(schema.Anthropic))

	rebuilt := set.Rebuild(schema.Credentials{schema.AnthropicKey: "sk-anthropic"})
	assert.NotNil(rebuilt.Get(schema.Anthropic))
	assert.Nil(set.Get(schema.Anthropic))

	local, ok := rebuilt.Ollama(false).(*ollama.Client)
	if assert.True(ok) {
		assert.Equal("http://127.0.0.1:11500/api/chat", local.ChatURL())
	}
}
