// Package pipeline provides the core workflow processing pipeline for
// Flowcanvas.
//
// This package implements the complete load → lint → layout pipeline used by
// the CLI. Centralizing it keeps behavior consistent across entry points and
// makes caching policy a single concern.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and decode a workflow document from disk
//  2. Lint: Validate workflow structure (entry points, reachability, types)
//  3. Layout: Compute node positions with the layered layout engine
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path: "flow.json",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.NodeCount)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/oyalabs/flowcanvas/pkg/cache"
	"github.com/oyalabs/flowcanvas/pkg/errors"
	"github.com/oyalabs/flowcanvas/pkg/layout"
	"github.com/oyalabs/flowcanvas/pkg/workflow"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

const (
	// DefaultLayerSpacing is the vertical gap between layout layers.
	DefaultLayerSpacing = layout.DefaultLayerSpacing

	// DefaultNodeSpacing is the horizontal gap between layout siblings.
	DefaultNodeSpacing = layout.DefaultNodeSpacing

	// DefaultViewportWidth is the frame width used for fit-view.
	DefaultViewportWidth = 800.0

	// DefaultViewportHeight is the frame height used for fit-view.
	DefaultViewportHeight = 600.0

	// DefaultFitPadding is the slack left around the graph by fit-view.
	DefaultFitPadding = 40.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the workflow pipeline.
// This struct supports JSON serialization for config files.
type Options struct {
	// Load options
	Path string `json:"path"`

	// Lint options
	SkipLint bool `json:"skip_lint,omitempty"` // Skip structural validation
	Strict   bool `json:"strict,omitempty"`    // Treat lint warnings as errors

	// Layout options
	LayerSpacing float64 `json:"layer_spacing,omitempty"`
	NodeSpacing  float64 `json:"node_spacing,omitempty"`

	// Viewport options
	FitView        bool    `json:"fit_view,omitempty"` // Frame all nodes after layout
	ViewportWidth  float64 `json:"viewport_width,omitempty"`
	ViewportHeight float64 `json:"viewport_height,omitempty"`
	FitPadding     float64 `json:"fit_padding,omitempty"`

	// Refresh bypasses the cache and recomputes every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Workflow is the loaded document with layout applied.
	Workflow *workflow.Workflow

	// WorkflowHash is the content hash of the document as loaded,
	// before layout touched it.
	WorkflowHash string

	// Lint contains the validation issues, when linting ran.
	Lint workflow.ValidationResult

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount       int
	ConnectionCount int
	LoadTime        time.Duration
	LintTime        time.Duration
	LayoutTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LintHit   bool // Whether the lint result came from cache
	LayoutHit bool // Whether node positions came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetViewportDefaults()
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading a document.
func (o *Options) ValidateForLoad() error {
	if err := errors.ValidateWorkflowPath(o.Path); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.LayerSpacing == 0 {
		o.LayerSpacing = DefaultLayerSpacing
	}
	if o.NodeSpacing == 0 {
		o.NodeSpacing = DefaultNodeSpacing
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetViewportDefaults sets default values for the fit-view stage.
func (o *Options) SetViewportDefaults() {
	if o.ViewportWidth == 0 {
		o.ViewportWidth = DefaultViewportWidth
	}
	if o.ViewportHeight == 0 {
		o.ViewportHeight = DefaultViewportHeight
	}
	if o.FitPadding == 0 {
		o.FitPadding = DefaultFitPadding
	}
}

// Engine returns the layout engine configured by these options.
func (o *Options) Engine() layout.Engine {
	o.SetLayoutDefaults()
	return layout.Engine{
		LayerSpacing: o.LayerSpacing,
		NodeSpacing:  o.NodeSpacing,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		LayerSpacing: o.LayerSpacing,
		NodeSpacing:  o.NodeSpacing,
	}
}
