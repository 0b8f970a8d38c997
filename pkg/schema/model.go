package schema

import (
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Family identifies the provider family a model belongs to. Values outside
// the known set are kept verbatim so they can be reported back to the caller.
type Family string

// ModelDefinition is one entry of the model registry file, keyed by the
// canonical model name
type ModelDefinition struct {
	Model           string `json:"model" yaml:"model"`
	Alias           string `json:"alias,omitempty" yaml:"alias,omitempty"`
	Family          Family `json:"family,omitempty" yaml:"family,omitempty"`
	Series          string `json:"series,omitempty" yaml:"series,omitempty"`
	Provider        string `json:"provider,omitempty" yaml:"provider,omitempty"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	URL             string `json:"url,omitempty" yaml:"url,omitempty"`
	APIKey          string `json:"apikey,omitempty" yaml:"apikey,omitempty"`
	ContextWindow   int    `json:"context_window,omitempty" yaml:"context_window,omitempty"`
	MaxOutputTokens int    `json:"max_output_tokens,omitempty" yaml:"max_output_tokens,omitempty"`
	Available       int    `json:"available" yaml:"available"`
	Enabled         int    `json:"enabled" yaml:"enabled"`
	Vision          int    `json:"vision,omitempty" yaml:"vision,omitempty"`
	TrainingData    string `json:"training_data,omitempty" yaml:"training_data,omitempty"`
	InfoUpdated     string `json:"info_updated,omitempty" yaml:"info_updated,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	OpenAI    Family = "openai"
	Anthropic Family = "anthropic"
	Google    Family = "google"
	Ollama    Family = "ollama"
)

// Families in the order clients are constructed
var Families = []Family{OpenAI, Anthropic, Google, Ollama}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - FAMILY

// ParseFamily normalises a family name from the registry file
func ParseFamily(v string) Family {
	return Family(strings.ToLower(strings.TrimSpace(v)))
}

// Known returns true if the family is one of the four supported providers
func (f Family) Known() bool {
	switch f {
	case OpenAI, Anthropic, Google, Ollama:
		return true
	}
	return false
}

func (f Family) String() string {
	return string(f)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - MODEL DEFINITION

// IsSelectable returns true if the definition can be selected through its alias
func (m ModelDefinition) IsSelectable() bool {
	return m.Available > 0 && m.Enabled > 0
}

// HasVision returns true if the model accepts image input
func (m ModelDefinition) HasVision() bool {
	return m.Vision > 0
}

// IsZero returns true for the empty definition returned when an alias
// is not selectable
func (m ModelDefinition) IsZero() bool {
	return m == ModelDefinition{}
}

func (m ModelDefinition) String() string {
	return Stringify(m)
}
