package modelcache

import (
	"os"
	"path/filepath"
	"time"

	// Packages
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Source provides the modification time and contents of a registry file
type Source interface {
	Stat(path string) (time.Time, error)
	ReadFile(path string) ([]byte, error)
}

// ParseFunc decodes the contents of a registry file
type ParseFunc func(path string, data []byte) (map[string]schema.ModelDefinition, error)

type modelts struct {
	mtime  time.Time
	models map[string]schema.ModelDefinition
}

// RegistryCache holds parsed registry files keyed by absolute path. An entry
// is served until the file modification time changes. It is not safe for
// concurrent use.
type RegistryCache struct {
	source Source
	model  map[string]modelts
}

type osSource struct{}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewRegistryCache(source Source, cap int) *RegistryCache {
	self := new(RegistryCache)

	// Read from the filesystem by default
	if source == nil {
		self.source = osSource{}
	} else {
		self.source = source
	}

	// Set cache capacity
	self.model = make(map[string]modelts, cap)

	// Return the registry cache
	return self
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Get returns the parsed registry at path, calling fn only when the path
// has not been seen or its modification time has changed
func (mc *RegistryCache) Get(path string, fn ParseFunc) (map[string]schema.ModelDefinition, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	// Stat the file on every call
	mtime, err := mc.source.Stat(key)
	if err != nil {
		delete(mc.model, key)
		return nil, err
	}

	// Cached registry
	if entry, ok := mc.model[key]; ok && entry.mtime.Equal(mtime) {
		return entry.models, nil
	}

	return mc.load(key, mtime, fn)
}

// Reload parses the registry at path regardless of the cached entry, and
// replaces it
func (mc *RegistryCache) Reload(path string, fn ParseFunc) (map[string]schema.ModelDefinition, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	mtime, err := mc.source.Stat(key)
	if err != nil {
		delete(mc.model, key)
		return nil, err
	}
	return mc.load(key, mtime, fn)
}

// Invalidate removes the entry for path
func (mc *RegistryCache) Invalidate(path string) {
	if key, err := filepath.Abs(path); err == nil {
		delete(mc.model, key)
	}
}

// Len returns the number of cached registries
func (mc *RegistryCache) Len() int {
	return len(mc.model)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (mc *RegistryCache) load(key string, mtime time.Time, fn ParseFunc) (map[string]schema.ModelDefinition, error) {
	data, err := mc.source.ReadFile(key)
	if err != nil {
		delete(mc.model, key)
		return nil, err
	}

	// A failed parse never leaves stale content behind
	models, err := fn(key, data)
	if err != nil {
		delete(mc.model, key)
		return nil, err
	}

	mc.model[key] = modelts{mtime: mtime, models: models}
	return models, nil
}

func (osSource) Stat(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func (osSource) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
