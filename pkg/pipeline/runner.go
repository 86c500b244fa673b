package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/oyalabs/flowcanvas/pkg/cache"
	"github.com/oyalabs/flowcanvas/pkg/errors"
	"github.com/oyalabs/flowcanvas/pkg/workflow"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → lint → layout pipeline with caching.
//
// Lint errors abort the run with an INVALID_WORKFLOW error before layout;
// warnings abort only in strict mode. Skipping lint skips both.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	w, hash, err := Load(opts)
	if err != nil {
		return nil, err
	}
	result.Workflow = w
	result.WorkflowHash = hash
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = len(w.Nodes)
	result.Stats.ConnectionCount = len(w.Connections)

	r.Logger.Info("loaded workflow",
		"path", opts.Path,
		"nodes", len(w.Nodes),
		"connections", len(w.Connections),
		"duration", result.Stats.LoadTime)

	// Stage 2: Lint
	if !opts.SkipLint {
		lintStart := time.Now()
		lint, lintHit := r.LintWithCacheInfo(ctx, w, hash, opts)
		result.Lint = lint
		result.Stats.LintTime = time.Since(lintStart)
		result.CacheInfo.LintHit = lintHit

		r.Logger.Info("linted workflow",
			"errors", lint.ErrorCount(),
			"warnings", lint.WarningCount(),
			"duration", result.Stats.LintTime)

		if lint.HasErrors() {
			return result, errors.New(errors.ErrCodeInvalidWorkflow,
				"workflow failed validation with %d error(s)", lint.ErrorCount())
		}
		if opts.Strict && lint.HasWarnings() {
			return result, errors.New(errors.ErrCodeInvalidWorkflow,
				"workflow has %d warning(s) (strict mode)", lint.WarningCount())
		}
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	layoutHit, err := r.LayoutWithCacheInfo(ctx, w, hash, opts)
	if err != nil {
		return result, err
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	if opts.FitView {
		w.FitView(opts.ViewportWidth, opts.ViewportHeight, opts.FitPadding)
	}

	return result, nil
}

// LintWithCacheInfo validates the workflow, consulting the cache first.
// Cache failures are silent; validation is cheap enough to recompute.
func (r *Runner) LintWithCacheInfo(ctx context.Context, w *workflow.Workflow, hash string, opts Options) (workflow.ValidationResult, bool) {
	key := r.Keyer.LintKey(hash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached workflow.ValidationResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, true
			}
		}
	}

	lint := workflow.Validate(w)

	if data, err := json.Marshal(lint); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLLint)
	}
	return lint, false
}

// nodePosition is the cached layout payload for one node.
type nodePosition struct {
	ID workflow.NodeID `json:"id"`
	X  float64         `json:"x"`
	Y  float64         `json:"y"`
}

// LayoutWithCacheInfo applies the layered layout to the workflow, consulting
// the cache first. On a hit the cached positions are applied directly; the
// engine only runs on a miss, and its result is cached for next time.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, w *workflow.Workflow, hash string, opts Options) (bool, error) {
	opts.SetLayoutDefaults()
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if applyCachedPositions(w, data) {
				return true, nil
			}
			// Corrupt or stale entry; recompute below.
		}
	}

	if err := opts.Engine().Apply(w); err != nil {
		return false, errors.Wrap(errors.ErrCodeCyclicGraph, err, "layout failed")
	}

	positions := make([]nodePosition, len(w.Nodes))
	for i, n := range w.Nodes {
		positions[i] = nodePosition{ID: n.ID, X: n.X, Y: n.Y}
	}
	if data, err := json.Marshal(positions); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLLayout)
	}
	return false, nil
}

// applyCachedPositions writes cached positions onto the workflow. Returns
// false when the payload doesn't decode or doesn't cover every node, in which
// case the workflow is left as loaded.
func applyCachedPositions(w *workflow.Workflow, data []byte) bool {
	var positions []nodePosition
	if err := json.Unmarshal(data, &positions); err != nil {
		return false
	}
	byID := make(map[workflow.NodeID]nodePosition, len(positions))
	for _, p := range positions {
		byID[p.ID] = p
	}
	for _, n := range w.Nodes {
		if _, ok := byID[n.ID]; !ok {
			return false
		}
	}
	for i := range w.Nodes {
		p := byID[w.Nodes[i].ID]
		w.Nodes[i].X = p.X
		w.Nodes[i].Y = p.Y
	}
	return true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
