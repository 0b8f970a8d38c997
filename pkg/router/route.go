package router

import (
	"strings"

	// Packages
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// predicate routes a model name to a family when the family is not known
type predicate struct {
	family   schema.Family
	prefixes []string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Families which are dispatched directly
var primary = map[schema.Family]bool{
	schema.OpenAI:    true,
	schema.Anthropic: true,
	schema.Google:    true,
	schema.Ollama:    true,
}

// Model name prefixes, in order. The first match wins.
var fallback = []predicate{
	{schema.Anthropic, []string{"claude"}},
	{schema.Ollama, []string{"llama", "nemo", "gemma"}},
	{schema.Google, []string{"gemini"}},
	{schema.OpenAI, []string{"gpt", "chatgpt", "o1", "o3", "o4"}},
}

// OpenAI models which only accept a temperature of 1
var fixedTemperature = []string{"o1", "o3", "o4"}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Route returns the family which serves a model, first by the family from
// its definition and then by its name. It returns false if neither matches.
func Route(family schema.Family, model string) (schema.Family, bool) {
	if family := schema.ParseFamily(family.String()); primary[family] {
		return family, true
	}
	model = strings.ToLower(model)
	for _, p := range fallback {
		if hasPrefix(model, p.prefixes) {
			return p.family, true
		}
	}
	return "", false
}

// FixedTemperature returns true if an OpenAI model only accepts a
// temperature of 1
func FixedTemperature(model string) bool {
	return hasPrefix(strings.ToLower(model), fixedTemperature)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func hasPrefix(model string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}
