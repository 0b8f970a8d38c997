package registry_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	// Packages
	llm "github.com/mutablelogic/go-llmquery"
	registry "github.com/mutablelogic/go-llmquery/pkg/registry"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
	observer "go.uber.org/zap/zaptest/observer"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

const testRegistry = `{
	"claude-3-7-sonnet-latest": {
		"model": "claude-3-7-sonnet-latest", "alias": "sonnet", "family": "anthropic",
		"series": "claude3", "url": "https://api.anthropic.com/v1", "apikey": "ANTHROPIC_API_KEY",
		"context_window": 200000, "max_output_tokens": 8192, "available": 9, "enabled": 1
	},
	"gpt-4o": {
		"model": "gpt-4o", "alias": "4o", "family": "openai",
		"series": "gpt4", "url": "https://api.openai.com/v1", "apikey": "OPENAI_API_KEY",
		"context_window": 128000, "max_output_tokens": 16384, "available": 8, "enabled": 1
	},
	"gpt-4o-old": {
		"model": "gpt-4o-old", "alias": "old", "family": "openai",
		"series": "gpt4", "url": "https://api.openai.com/v1", "apikey": "OPENAI_API_KEY",
		"context_window": 128000, "max_output_tokens": 4096, "available": 5, "enabled": 0
	},
	"gemini-retired": {
		"model": "gemini-retired", "alias": "retired", "family": "google",
		"series": "gemini1", "url": "https://generativelanguage.googleapis.com", "apikey": "GOOGLE_API_KEY",
		"context_window": 32000, "max_output_tokens": 2048, "available": 0, "enabled": 1
	},
	"llama3.2": {
		"model": "llama3.2", "alias": "4o", "family": "ollama",
		"series": "llama3", "url": "http://localhost:11434/v1", "apikey": "OLLAMA_API_KEY",
		"context_window": 128000, "max_output_tokens": 4096, "available": 9, "enabled": 1
	}
}`

type memSource struct {
	mtime time.Time
	data  string
	reads int
}

func (m *memSource) Stat(string) (time.Time, error) {
	return m.mtime, nil
}

func (m *memSource) ReadFile(string) ([]byte, error) {
	m.reads++
	return []byte(m.data), nil
}

func newRegistry(t *testing.T, data string) (*registry.Registry, *memSource, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	source := &memSource{mtime: time.Unix(1000, 0), data: data}
	r, err := registry.New("Models.json", registry.WithSource(source), registry.WithLogger(zap.New(core)))
	require.NoError(t, err)
	return r, source, logs
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_registry_001(t *testing.T) {
	// A canonical name resolves to itself
	assert := assert.New(t)
	r, _, _ := newRegistry(t, testRegistry)

	name, def, err := r.Resolve("gpt-4o")
	assert.NoError(err)
	assert.Equal("gpt-4o", name)
	assert.Equal(schema.OpenAI, def.Family)
	assert.Equal(16384, def.MaxOutputTokens)
}

func Test_registry_002(t *testing.T) {
	// An alias resolves to its canonical name, case-insensitively
	assert := assert.New(t)
	r, _, _ := newRegistry(t, testRegistry)

	name, def, err := r.Resolve("sonnet")
	assert.NoError(err)
	assert.Equal("claude-3-7-sonnet-latest", name)
	assert.Equal(schema.Anthropic, def.Family)

	name, _, err = r.Resolve("SONNET")
	assert.NoError(err)
	assert.Equal("claude-3-7-sonnet-latest", name)
}

func Test_registry_003(t *testing.T) {
	// A disabled alias is a soft failure
	assert := assert.New(t)
	r, _, logs := newRegistry(t, testRegistry)

	name, def, err := r.Resolve("old")
	assert.NoError(err)
	assert.Equal("", name)
	assert.True(def.IsZero())
	assert.Equal(1, logs.FilterMessage("alias is not enabled").Len())

	// The canonical name is still reachable
	name, _, err = r.Resolve("gpt-4o-old")
	assert.NoError(err)
	assert.Equal("gpt-4o-old", name)
}

func Test_registry_004(t *testing.T) {
	// An unavailable alias is a soft failure
	assert := assert.New(t)
	r, _, logs := newRegistry(t, testRegistry)

	name, def, err := r.Resolve("retired")
	assert.NoError(err)
	assert.Equal("", name)
	assert.True(def.IsZero())
	assert.Equal(1, logs.FilterMessage("alias is unavailable").Len())
}

func Test_registry_005(t *testing.T) {
	// Unknown names are model errors
	assert := assert.New(t)
	r, _, _ := newRegistry(t, testRegistry)

	_, _, err := r.Resolve("no-such-model")
	assert.ErrorIs(err, llm.ErrModel)
	assert.Contains(err.Error(), "no-such-model")
}

func Test_registry_006(t *testing.T) {
	// File and parse failures are configuration errors
	assert := assert.New(t)

	r, err := registry.New(filepath.Join(t.TempDir(), "missing.json"))
	assert.NoError(err)
	_, _, err = r.Resolve("gpt-4o")
	assert.ErrorIs(err, llm.ErrConfiguration)
	assert.NotErrorIs(err, llm.ErrModel)
	assert.ErrorIs(err, os.ErrNotExist)

	r, _, _ = newRegistry(t, `{ not json`)
	_, _, err = r.Resolve("gpt-4o")
	assert.ErrorIs(err, llm.ErrConfiguration)
	assert.NotErrorIs(err, llm.ErrModel)

	_, err = registry.New("")
	assert.ErrorIs(err, llm.ErrConfiguration)
}

func Test_registry_007(t *testing.T) {
	// Repeat lookups with an unchanged mtime read the file once
	assert := assert.New(t)
	r, source, _ := newRegistry(t, testRegistry)

	for i := 0; i < 5; i++ {
		_, _, err := r.Resolve("gpt-4o")
		assert.NoError(err)
	}
	assert.Equal(1, source.reads)

	// Forcing a reload reads again
	_, _, err := r.Resolve("gpt-4o", registry.WithForceReload())
	assert.NoError(err)
	assert.Equal(2, source.reads)
}

func Test_registry_008(t *testing.T) {
	// A changed mtime is never served from cache
	assert := assert.New(t)
	r, source, _ := newRegistry(t, testRegistry)

	_, _, err := r.Resolve("gpt-4o")
	assert.NoError(err)

	source.mtime = time.Unix(2000, 0)
	source.data = `{"gpt-5": {"model": "gpt-5", "family": "openai", "max_output_tokens": 128000, "available": 9, "enabled": 1}}`

	_, _, err = r.Resolve("gpt-4o")
	assert.ErrorIs(err, llm.ErrModel)

	name, _, err := r.Resolve("gpt-5")
	assert.NoError(err)
	assert.Equal("gpt-5", name)
	assert.Equal(2, source.reads)
}

func Test_registry_009(t *testing.T) {
	// Duplicate aliases resolve to the first canonical name in sorted order
	assert := assert.New(t)
	r, _, logs := newRegistry(t, testRegistry)

	name, _, err := r.Resolve("4o")
	assert.NoError(err)
	assert.Equal("gpt-4o", name)
	assert.Equal(1, logs.FilterMessage("duplicate alias").Len())
}

func Test_registry_010(t *testing.T) {
	// Exact canonical match wins over an alias
	assert := assert.New(t)
	r, _, _ := newRegistry(t, `{
		"mini": {"model": "mini", "available": 1, "enabled": 1},
		"gpt-4o-mini": {"model": "gpt-4o-mini", "alias": "mini", "available": 1, "enabled": 1}
	}`)
	name, _, err := r.Resolve("mini")
	assert.NoError(err)
	assert.Equal("mini", name)
}

func Test_registry_011(t *testing.T) {
	// List and Definitions skip unavailable models
	assert := assert.New(t)
	r, _, _ := newRegistry(t, testRegistry)

	names, err := r.List()
	assert.NoError(err)
	assert.Equal([]string{"claude-3-7-sonnet-latest", "gpt-4o", "gpt-4o-old", "llama3.2"}, names)

	defs, err := r.Definitions()
	assert.NoError(err)
	assert.Len(defs, 4)
	assert.NotContains(defs, "gemini-retired")
}

func Test_registry_012(t *testing.T) {
	// YAML registries are decoded by extension, and missing fields are warned
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "models.yaml")
	assert.NoError(os.WriteFile(path, []byte(`
llama3.2:
  alias: llama
  family: ollama
  max_output_tokens: 4096
  available: 9
  enabled: 1
`), 0o600))

	core, logs := observer.New(zapcore.WarnLevel)
	r, err := registry.New(path, registry.WithLogger(zap.New(core)))
	assert.NoError(err)

	name, def, err := r.Resolve("llama")
	assert.NoError(err)
	assert.Equal("llama3.2", name)
	assert.Equal("llama3.2", def.Model)
	assert.Equal(schema.Ollama, def.Family)
	assert.Equal(1, logs.FilterMessage("model is missing fields").Len())
}
