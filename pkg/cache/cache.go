// Package cache provides pluggable byte caches for expensive pipeline stages.
//
// Layout computation is deterministic in the workflow document and the
// spacing options, so its results are cached under a content-addressed key.
// Three backends are provided:
//
//   - FileCache: per-user on-disk cache for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
//
// Keys are built by a Keyer so backends stay oblivious to key structure.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached stage.
const (
	// TTLLayout bounds how long computed layouts are kept. Layouts are
	// cheap to recompute; the TTL mostly caps disk usage.
	TTLLayout = 7 * 24 * time.Hour

	// TTLLint bounds how long validation results are kept.
	TTLLint = 24 * time.Hour
)

// Cache is a byte-oriented cache with TTL support.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss.
// Backend failures are returned as errors; callers treat them as misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts are the layout parameters that participate in the cache key.
// Two runs with the same workflow hash but different spacing must not share
// an entry.
type LayoutKeyOpts struct {
	LayerSpacing float64 `json:"layer_spacing"`
	NodeSpacing  float64 `json:"node_spacing"`
}

// Keyer builds cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey returns the key for a computed layout, given the content
	// hash of the workflow document and the layout options.
	LayoutKey(workflowHash string, opts LayoutKeyOpts) string

	// LintKey returns the key for a validation result, given the content
	// hash of the workflow document.
	LintKey(workflowHash string) string
}

// DefaultKeyer is the standard key scheme: "stage:sha256(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(workflowHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", workflowHash, opts)
}

// LintKey generates a key for validation caching.
func (k *DefaultKeyer) LintKey(workflowHash string) string {
	return hashKey("lint", workflowHash)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
