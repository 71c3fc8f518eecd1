/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package form

import (
	"sync"
	"time"
)

const sweepInterval = 10 * time.Minute

type registryEntry struct {
	controller *Controller
	lastUsed   time.Time
}

// Registry keeps one controller per session.
type Registry struct {
	mu        sync.Mutex
	analyzer  Analyzer
	opts      []Option
	maxIdle   time.Duration
	entries   map[string]*registryEntry
	lastSweep time.Time
	now       func() time.Time
}

// NewRegistry returns a registry whose controllers submit through a.
// Controllers unused for maxIdle are dropped; zero keeps them forever.
func NewRegistry(a Analyzer, maxIdle time.Duration, opts ...Option) *Registry {
	return &Registry{
		analyzer: a,
		opts:     opts,
		maxIdle:  maxIdle,
		entries:  make(map[string]*registryEntry),
		now:      time.Now,
	}
}

// Get returns the controller for key, creating one with a single visit
// block on first use.
func (r *Registry) Get(key string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if r.maxIdle > 0 && now.Sub(r.lastSweep) >= sweepInterval {
		r.sweepLocked(now)
	}

	entry, ok := r.entries[key]
	if !ok {
		c := NewController(r.analyzer, r.opts...)
		c.AddVisitForm()

		entry = &registryEntry{controller: c}
		r.entries[key] = entry
	}

	entry.lastUsed = now

	return entry.controller
}

// Reset drops the controller for key.
func (r *Registry) Reset(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, key)
}

// Len returns the number of live controllers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// Sweep drops idle controllers and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sweepLocked(r.now())
}

func (r *Registry) sweepLocked(now time.Time) int {
	r.lastSweep = now
	if r.maxIdle <= 0 {
		return 0
	}

	removed := 0
	for key, entry := range r.entries {
		if now.Sub(entry.lastUsed) > r.maxIdle && !entry.controller.Loading() {
			delete(r.entries, key)
			removed++
		}
	}

	if removed > 0 {
		logger.Debug("swept idle form controllers", "removed", removed, "remaining", len(r.entries))
	}

	return removed
}
