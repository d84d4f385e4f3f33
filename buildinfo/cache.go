// Package buildinfo loads and caches the application's build metadata
// document together with its source revision identifier.
package buildinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrConfigUnavailable is returned when the metadata document or the
// revision cannot be loaded. The previous snapshot, if any, is kept.
var ErrConfigUnavailable = errors.New("configuration unavailable")

// DefaultTTL is how long a snapshot is served before a reload.
const DefaultTTL = 5 * time.Minute

// Metadata is the application metadata document.
type Metadata struct {
	Description string `json:"description"`
	Version     string `json:"version"`
}

// Snapshot is one atomic load: metadata and revision always come from the
// same load, never from two different ones.
type Snapshot struct {
	Metadata Metadata
	Revision string
	LoadedAt time.Time
}

// Cache memoizes metadata and revision for a fixed duration.
//
// The whole check-TTL/reload/store sequence runs under one mutex, so
// concurrent requests on an expired entry trigger exactly one reload
// rather than a thundering herd.
type Cache struct {
	path     string
	revision RevisionLookup
	ttl      time.Duration

	mu      sync.Mutex
	current *Snapshot
}

// NewCache creates a Cache reading the metadata document at path and
// resolving revisions through the given lookup.
func NewCache(path string, revision RevisionLookup, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		path:     path,
		revision: revision,
		ttl:      ttl,
	}
}

// Load returns the cached snapshot while it is younger than the TTL and
// reloads otherwise. A failed reload returns ErrConfigUnavailable and
// leaves the previous snapshot untouched.
func (c *Cache) Load(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && time.Since(c.current.LoadedAt) < c.ttl {
		return *c.current, nil
	}

	snapshot, err := c.reload(ctx)
	if err != nil {
		log.Error().Err(err).Msg("configuration loading failed")
		return Snapshot{}, ErrConfigUnavailable
	}

	c.current = &snapshot
	return snapshot, nil
}

func (c *Cache) reload(ctx context.Context) (Snapshot, error) {
	content, err := os.ReadFile(c.path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read metadata document: %w", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(content, &metadata); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse metadata document: %w", err)
	}

	revision, err := c.revision.Revision(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to resolve revision: %w", err)
	}

	return Snapshot{
		Metadata: metadata,
		Revision: revision,
		LoadedAt: time.Now(),
	}, nil
}
