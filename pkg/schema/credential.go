package schema

import (
	"sort"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Credentials maps a credential name (for example OPENAI_API_KEY) to its value
type Credentials map[string]string

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	OpenAIKey       = "OPENAI_API_KEY"
	AnthropicKey    = "ANTHROPIC_API_KEY"
	GoogleKey       = "GOOGLE_API_KEY"
	OllamaKey       = "OLLAMA_API_KEY"
	OllamaRemoteURL = "OLLAMA_REMOTE_URL"
)

const (
	// Used for Ollama when no credential is set
	DefaultOllamaKey = "llama"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CredentialFor returns the name of the credential a family expects
func CredentialFor(family Family) string {
	switch family {
	case OpenAI:
		return OpenAIKey
	case Anthropic:
		return AnthropicKey
	case Google:
		return GoogleKey
	case Ollama:
		return OllamaKey
	}
	return ""
}

// Get returns the named credential. The Ollama credential falls back to
// DefaultOllamaKey when unset.
func (c Credentials) Get(name string) string {
	if value := c[name]; value != "" {
		return value
	}
	if name == OllamaKey {
		return DefaultOllamaKey
	}
	return ""
}

// Available returns the sorted names of the credentials which are set
func (c Credentials) Available() []string {
	result := make([]string, 0, len(c))
	for name, value := range c {
		if value != "" {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}

// Missing returns the sorted names of the cloud provider credentials
// which are not set
func (c Credentials) Missing() []string {
	var result []string
	for _, name := range []string{AnthropicKey, GoogleKey, OpenAIKey} {
		if c[name] == "" {
			result = append(result, name)
		}
	}
	return result
}

// String returns the credential names, never the values
func (c Credentials) String() string {
	return Stringify(c.Available())
}
