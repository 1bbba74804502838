// Package schemacache holds the registry of loaded schema
// documents, keyed by absolute URI with the fragment stripped.
package schemacache

import (
	"maps"
	"sync"

	"github.com/schemata/draft3/pkg/types"
)

// Registry maps absolute URIs to loaded schema roots.
// At most one entry exists per key; writes are idempotent
// (first-writer-wins).
type Registry struct {
	m map[string]*types.Schema
}

// Lookup checks the registry for a schema.
// It returns nil if the URI is not registered.
func (r *Registry) Lookup(key string) *types.Schema {
	return r.m[key]
}

// Store registers a schema under a URI.
// It returns the schema to use, which may differ
// if one has already been registered.
func (r *Registry) Store(key string, s *types.Schema) *types.Schema {
	if sc := r.m[key]; sc != nil {
		return sc
	}

	if r.m == nil {
		r.m = make(map[string]*types.Schema)
	}

	r.m[key] = s
	return s
}

// Clear removes all entries.
func (r *Registry) Clear() {
	r.m = nil
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	return len(r.m)
}

// All returns a copy of the registry contents.
func (r *Registry) All() map[string]*types.Schema {
	return maps.Clone(r.m)
}

// ConcurrentRegistry is a registry that permits concurrent access.
type ConcurrentRegistry struct {
	reg Registry
	mu  sync.Mutex
}

// Lookup checks the registry for a schema.
// It returns nil if the URI is not registered.
func (cr *ConcurrentRegistry) Lookup(key string) *types.Schema {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.reg.Lookup(key)
}

// Store registers a schema under a URI.
// It returns the schema to use, which may differ
// if some other goroutine already registered one.
func (cr *ConcurrentRegistry) Store(key string, s *types.Schema) *types.Schema {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.reg.Store(key, s)
}

// Clear removes all entries.
func (cr *ConcurrentRegistry) Clear() {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.reg.Clear()
}

// Len returns the number of registered schemas.
func (cr *ConcurrentRegistry) Len() int {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.reg.Len()
}

// All returns a copy of the registry contents.
func (cr *ConcurrentRegistry) All() map[string]*types.Schema {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.reg.All()
}
