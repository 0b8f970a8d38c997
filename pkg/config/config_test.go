package config_test

import (
	"os"
	"path/filepath"
	"testing"

	// Packages
	llm "github.com/mutablelogic/go-llmquery"
	config "github.com/mutablelogic/go-llmquery/pkg/config"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

// unsetenv removes the variables for the test, restoring them afterwards
func unsetenv(t *testing.T) {
	t.Helper()
	for _, name := range []string{schema.OpenAIKey, schema.AnthropicKey, schema.GoogleKey, schema.OllamaKey, schema.OllamaRemoteURL} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func Test_config_001(t *testing.T) {
	// From the environment
	assert := assert.New(t)
	unsetenv(t)
	t.Setenv(schema.OpenAIKey, "sk-openai")
	t.Setenv(schema.OllamaRemoteURL, "https://ollama.example.com/v1")

	credentials, err := config.Load()
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("sk-openai", credentials.OpenAI)
	assert.Empty(credentials.Anthropic)

	values := credentials.Schema()
	assert.Equal([]string{schema.OllamaRemoteURL, schema.OpenAIKey}, values.Available())
	assert.Equal(schema.DefaultOllamaKey, values.Get(schema.OllamaKey))
	assert.NotContains(credentials.String(), "sk-openai")
}

func Test_config_002(t *testing.T) {
	// From a .env file, the environment takes precedence
	assert := assert.New(t)
	unsetenv(t)
	t.Setenv(schema.OpenAIKey, "sk-env")

	path := filepath.Join(t.TempDir(), ".env")
	assert.NoError(os.WriteFile(path, []byte("OPENAI_API_KEY=sk-file\nANTHROPIC_API_KEY=sk-ant\n"), 0600))

	credentials, err := config.Load(filepath.Join(t.TempDir(), "missing.env"), path)
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("sk-env", credentials.OpenAI)
	assert.Equal("sk-ant", credentials.Anthropic)
}

func Test_config_003(t *testing.T) {
	// Unreadable .env file
	assert := assert.New(t)
	unsetenv(t)
	_, err := config.Load(t.TempDir())
	assert.ErrorIs(err, llm.ErrConfiguration)
}
