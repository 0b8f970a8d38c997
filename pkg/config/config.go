/*
config reads provider credentials from the environment, after loading any
.env files which exist.
*/
package config

import (
	"errors"
	"os"

	// Packages
	godotenv "github.com/joho/godotenv"
	envconfig "github.com/kelseyhightower/envconfig"
	llm "github.com/mutablelogic/go-llmquery"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Credentials are the provider keys and the optional remote Ollama URL
type Credentials struct {
	OpenAI          string `envconfig:"OPENAI_API_KEY"`
	Anthropic       string `envconfig:"ANTHROPIC_API_KEY"`
	Google          string `envconfig:"GOOGLE_API_KEY"`
	Ollama          string `envconfig:"OLLAMA_API_KEY"`
	OllamaRemoteURL string `envconfig:"OLLAMA_REMOTE_URL"`
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Load reads credentials from the environment. Each file is loaded into the
// environment first, without overriding variables which are already set.
// Files which do not exist are skipped.
func Load(files ...string) (*Credentials, error) {
	for _, file := range files {
		if err := godotenv.Load(file); errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, llm.ErrConfiguration.Wrapf(err, "%s", file)
		}
	}

	var credentials Credentials
	if err := envconfig.Process("", &credentials); err != nil {
		return nil, llm.ErrConfiguration.Wrap(err)
	}
	return &credentials, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Schema returns the credentials keyed by name, omitting those not set
func (c Credentials) Schema() schema.Credentials {
	result := make(schema.Credentials, 5)
	for name, value := range map[string]string{
		schema.OpenAIKey:       c.OpenAI,
		schema.AnthropicKey:    c.Anthropic,
		schema.GoogleKey:       c.Google,
		schema.OllamaKey:       c.Ollama,
		schema.OllamaRemoteURL: c.OllamaRemoteURL,
	} {
		if value != "" {
			result[name] = value
		}
	}
	return result
}

func (c Credentials) String() string {
	return c.Schema().String()
}
