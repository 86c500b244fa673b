// Package pkg provides the core libraries behind the flowcanvas workflow editor.
//
// # Overview
//
// Flowcanvas models the workflow documents edited in the visual node editor:
// a directed acyclic graph of durable-execution steps with canvas positions
// and a viewport transform. The pkg directory is organized into four areas:
//
//  1. [workflow] - The aggregate model (nodes, connections, viewport,
//     undo/redo, connectivity rules, structural lint)
//  2. [layout] - The layered auto-layout engine
//  3. [catalog] / [geometry] - The node-type table and pure viewport math
//  4. [pipeline] / [cache] - Orchestration (load → lint → layout) with
//     content-addressed result caching
//
// # Architecture
//
// The typical data flow through flowcanvas:
//
//	Workflow document (JSON)
//	         ↓
//	    [workflow] package (parse + validate structure)
//	         ↓
//	    [layout] package (layered coordinates)
//	         ↓
//	    Workflow document with updated positions
//
// # Quick Start
//
// Build a workflow and lay it out:
//
//	import (
//	    "github.com/oyalabs/flowcanvas/pkg/layout"
//	    "github.com/oyalabs/flowcanvas/pkg/workflow"
//	)
//
//	w := workflow.New()
//	a := w.AddNode("http-handler", 0, 0)
//	b := w.AddNode("run", 0, 0)
//	w.AddConnection(a, b, "main", "main")
//
//	if err := layout.NewEngine().Apply(w); err != nil {
//	    // a cycle was detected; positions are untouched
//	}
//
// # Main Packages
//
// [workflow] - Aggregate root: ordered nodes and connections, the viewport
// transform, bounded undo/redo history, DAG-preserving connection checks,
// JSON serialization, and the structural lint surfaced by `validate`.
//
// [layout] - Layered auto-layout: topological sort, longest-path layering,
// barycenter crossing reduction, and coordinate assignment.
//
// [catalog] - The closed node-type table: category, label, icon, and the
// declared port types behind the advisory compatibility warning.
//
// [geometry] - Pure viewport and placement math with no model dependencies.
//
// [pipeline] - The load → lint → layout pipeline shared by all commands,
// with per-stage stats and cache accounting.
//
// [cache] - Cache backends (file, Redis, null) keyed by workflow content
// hash plus layout options.
//
// [errors] - Structured error codes and input validation used at the CLI
// and pipeline boundaries.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/layout/...       # Specific package
//
// [workflow]: https://pkg.go.dev/github.com/oyalabs/flowcanvas/pkg/workflow
// [layout]: https://pkg.go.dev/github.com/oyalabs/flowcanvas/pkg/layout
// [catalog]: https://pkg.go.dev/github.com/oyalabs/flowcanvas/pkg/catalog
// [geometry]: https://pkg.go.dev/github.com/oyalabs/flowcanvas/pkg/geometry
// [pipeline]: https://pkg.go.dev/github.com/oyalabs/flowcanvas/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/oyalabs/flowcanvas/pkg/cache
// [errors]: https://pkg.go.dev/github.com/oyalabs/flowcanvas/pkg/errors
package pkg
