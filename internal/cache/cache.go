// Package cache provides the in-process response cache. Values are the
// serialized bodies written to the wire, so repeated cache hits are
// byte-identical.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache keys for resource collections invalidated on writes.
const (
	KeyAllMechanics = "all_mechanics"
	KeyAllInventory = "all_inventory"
)

// Store is a keyed store of serialized responses with TTL. Entries expire
// on their own or are removed explicitly when the underlying resource is
// mutated. No size-bound eviction.
type Store struct {
	c *gocache.Cache
}

// NewStore creates a store with the given default TTL for entries set via
// SetDefault.
func NewStore(defaultTTL time.Duration) *Store {
	return &Store{c: gocache.New(defaultTTL, 2*defaultTTL)}
}

// Get returns the cached body for key if present and unexpired.
func (s *Store) Get(key string) ([]byte, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false
	}
	body, ok := v.([]byte)
	return body, ok
}

// Set stores body under key with an explicit TTL.
func (s *Store) Set(key string, body []byte, ttl time.Duration) {
	s.c.Set(key, body, ttl)
}

// SetDefault stores body under key with the store's default TTL.
func (s *Store) SetDefault(key string, body []byte) {
	s.c.SetDefault(key, body)
}

// Delete removes key so the next read recomputes.
func (s *Store) Delete(key string) {
	s.c.Delete(key)
}
