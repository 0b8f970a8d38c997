/*
registry resolves model names and aliases against a registry file of model
definitions. The file is a JSON (or YAML) object keyed by canonical model
name, and is re-read only when its modification time changes.
*/
package registry

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	// Packages
	llm "github.com/mutablelogic/go-llmquery"
	modelcache "github.com/mutablelogic/go-llmquery/pkg/modelcache"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	zap "go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Registry struct {
	path  string
	log   *zap.Logger
	cache *modelcache.RegistryCache
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultCacheSize = 4
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a registry for the file at path. The file is not read until
// the first lookup.
func New(path string, opt ...Opt) (*Registry, error) {
	o := opts{log: zap.NewNop()}
	for _, fn := range opt {
		if err := fn(&o); err != nil {
			return nil, err
		}
	}
	if path == "" {
		return nil, llm.ErrConfiguration.With("registry path is required")
	}

	self := new(Registry)
	self.path = path
	self.log = o.log
	if o.cache != nil {
		self.cache = o.cache
	} else {
		self.cache = modelcache.NewRegistryCache(o.source, defaultCacheSize)
	}

	// Return success
	return self, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Path returns the registry file path
func (r *Registry) Path() string {
	return r.path
}

// Resolve returns the canonical name and definition for a canonical name or
// alias. An alias bound to a model which is unavailable or disabled returns
// an empty name and definition with no error. An unknown name returns
// llm.ErrModel.
func (r *Registry) Resolve(name string, opts ...ResolveOpt) (string, schema.ModelDefinition, error) {
	models, err := r.load(opts...)
	if err != nil {
		return "", schema.ModelDefinition{}, err
	}

	// Exact match on the canonical name
	if def, exists := models[name]; exists {
		r.log.Debug("resolved model", zap.String("model", name))
		return name, def, nil
	}

	// Alias match, in canonical name order
	for _, key := range sortedKeys(models) {
		def := models[key]
		if def.Alias == "" || !strings.EqualFold(def.Alias, name) {
			continue
		}
		if def.Available <= 0 {
			r.log.Warn("alias is unavailable", zap.String("alias", name), zap.String("model", key))
			return "", schema.ModelDefinition{}, nil
		}
		if def.Enabled <= 0 {
			r.log.Warn("alias is not enabled", zap.String("alias", name), zap.String("model", key))
			return "", schema.ModelDefinition{}, nil
		}
		r.log.Debug("resolved alias", zap.String("alias", name), zap.String("model", key))
		return key, def, nil
	}

	// Not found
	return "", schema.ModelDefinition{}, llm.ErrModel.Withf("model %q not found in %s", name, r.path)
}

// List returns the sorted canonical names of models which are not marked
// unavailable
func (r *Registry) List(opts ...ResolveOpt) ([]string, error) {
	models, err := r.load(opts...)
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(models))
	for _, key := range sortedKeys(models) {
		if models[key].Available != 0 {
			result = append(result, key)
		}
	}
	return result, nil
}

// Definitions returns the available models keyed by canonical name
func (r *Registry) Definitions(opts ...ResolveOpt) (map[string]schema.ModelDefinition, error) {
	models, err := r.load(opts...)
	if err != nil {
		return nil, err
	}
	result := make(map[string]schema.ModelDefinition, len(models))
	for key, def := range models {
		if def.Available > 0 {
			result[key] = def
		}
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (r *Registry) load(opts ...ResolveOpt) (map[string]schema.ModelDefinition, error) {
	var o resolveopts
	for _, opt := range opts {
		opt(&o)
	}

	var models map[string]schema.ModelDefinition
	var err error
	if o.force {
		models, err = r.cache.Reload(r.path, r.parse)
	} else {
		models, err = r.cache.Get(r.path, r.parse)
	}
	if err != nil {
		return nil, llm.ErrConfiguration.Wrapf(err, "registry %s", r.path)
	}
	return models, nil
}

// parse decodes the registry by file extension, and warns about entries
// with missing fields or aliases which are shadowed by an earlier entry
func (r *Registry) parse(path string, data []byte) (map[string]schema.ModelDefinition, error) {
	var models map[string]schema.ModelDefinition
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &models); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &models); err != nil {
			return nil, err
		}
	}
	if models == nil {
		models = make(map[string]schema.ModelDefinition)
	}

	aliases := make(map[string]string, len(models))
	for _, key := range sortedKeys(models) {
		def := models[key]
		if def.Model == "" {
			def.Model = key
			models[key] = def
		}
		if missing := missingFields(def); len(missing) > 0 {
			r.log.Warn("model is missing fields", zap.String("model", key), zap.Strings("fields", missing))
		}
		if def.Alias == "" {
			continue
		}
		alias := strings.ToLower(def.Alias)
		if first, exists := aliases[alias]; exists {
			r.log.Warn("duplicate alias", zap.String("alias", def.Alias), zap.String("model", key), zap.String("resolves_to", first))
		} else {
			aliases[alias] = key
		}
	}

	r.log.Debug("loaded registry", zap.String("path", path), zap.Int("models", len(models)))
	return models, nil
}

func missingFields(def schema.ModelDefinition) []string {
	var result []string
	if def.Series == "" {
		result = append(result, "series")
	}
	if def.URL == "" {
		result = append(result, "url")
	}
	if def.APIKey == "" {
		result = append(result, "apikey")
	}
	if def.ContextWindow <= 0 {
		result = append(result, "context_window")
	}
	if def.MaxOutputTokens <= 0 {
		result = append(result, "max_output_tokens")
	}
	return result
}

func sortedKeys(models map[string]schema.ModelDefinition) []string {
	keys := make([]string, 0, len(models))
	for key := range models {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
