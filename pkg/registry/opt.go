package registry

import (
	// Packages
	modelcache "github.com/mutablelogic/go-llmquery/pkg/modelcache"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt sets an option on the registry
type Opt func(*opts) error

// ResolveOpt sets an option on a single lookup
type ResolveOpt func(*resolveopts)

type opts struct {
	log    *zap.Logger
	source modelcache.Source
	cache  *modelcache.RegistryCache
}

type resolveopts struct {
	force bool
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger sets the logger used for warnings
func WithLogger(log *zap.Logger) Opt {
	return func(o *opts) error {
		if log != nil {
			o.log = log
		}
		return nil
	}
}

// WithSource reads the registry file through source rather than the filesystem
func WithSource(source modelcache.Source) Opt {
	return func(o *opts) error {
		o.source = source
		return nil
	}
}

// WithCache shares a cache between registries
func WithCache(cache *modelcache.RegistryCache) Opt {
	return func(o *opts) error {
		o.cache = cache
		return nil
	}
}

// WithForceReload bypasses the cache for one lookup
func WithForceReload() ResolveOpt {
	return func(o *resolveopts) {
		o.force = true
	}
}
