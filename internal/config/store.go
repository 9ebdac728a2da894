package config

import "sync/atomic"

// Store holds the active configuration; watchers swap it on reload.
type Store struct {
	p atomic.Pointer[Config]
}

// NewStore creates a Store holding the initial configuration.
func NewStore(cfg *Config) *Store {
	s := &Store{}
	s.p.Store(cfg)
	return s
}

// Current returns the configuration in effect.
func (s *Store) Current() *Config {
	return s.p.Load()
}

// Update replaces the configuration; readers see it on their next Current call.
func (s *Store) Update(cfg *Config) {
	s.p.Store(cfg)
}
