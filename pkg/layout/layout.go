// Package layout implements automatic layered layout for workflow graphs.
//
// The algorithm is the classic Sugiyama pipeline specialized for small
// editor-sized graphs:
//
//  1. Topological ordering (Kahn). Cyclic graphs are rejected up front.
//  2. Longest-path layer assignment: each node sits one layer below its
//     deepest parent.
//  3. Crossing minimization: four fixed barycenter sweeps ordering each layer
//     by the mean position of its parents in the layer above.
//  4. Coordinate assignment: left-to-right within a layer, each node pulled
//     toward the mean x of its parents but never overlapping its left
//     neighbor, then every layer centered against the widest one.
//
// Finally all positions are normalized so the leftmost node sits at
// LeftPadding and the topmost at TopPadding. Layout is deterministic:
// ties everywhere break on node insertion order, so the same document always
// produces the same positions. Running it twice is a fixed point.
package layout

import (
	"errors"
	"sort"

	"github.com/oyalabs/flowcanvas/pkg/geometry"
	"github.com/oyalabs/flowcanvas/pkg/workflow"
)

// ErrCyclicGraph is returned when the connection graph contains a directed
// cycle. No positions are modified in that case. The connectivity layer
// prevents cycles at edit time, so this only fires on hand-edited documents.
var ErrCyclicGraph = errors.New("workflow graph contains a cycle")

// Canvas margins applied after layout.
const (
	LeftPadding = 120.0
	TopPadding  = 80.0
)

// Default spacing between layers and between adjacent nodes in a layer.
const (
	DefaultLayerSpacing = 140.0
	DefaultNodeSpacing  = 60.0
)

// Number of barycenter ordering sweeps. Fixed rather than
// run-to-convergence; four passes settle every graph an editor produces.
const sweepCount = 4

// Engine holds the layout spacing parameters. The zero value is not useful;
// use NewEngine for the defaults.
type Engine struct {
	// LayerSpacing is the vertical gap between consecutive layers,
	// measured between node edges.
	LayerSpacing float64

	// NodeSpacing is the minimum horizontal gap between adjacent nodes
	// within a layer.
	NodeSpacing float64
}

// NewEngine returns an engine with the default spacing.
func NewEngine() Engine {
	return Engine{
		LayerSpacing: DefaultLayerSpacing,
		NodeSpacing:  DefaultNodeSpacing,
	}
}

// Apply rewrites the X/Y position of every node in the workflow according to
// the layered layout. Connections, the viewport, and node order are left
// untouched. An empty workflow is a no-op.
//
// Returns ErrCyclicGraph, with all positions unchanged, when the connection
// graph is not a DAG.
func (e Engine) Apply(w *workflow.Workflow) error {
	if len(w.Nodes) == 0 {
		return nil
	}

	g := buildGraph(w)

	order, ok := g.topoSort()
	if !ok {
		return ErrCyclicGraph
	}

	layers := assignLayers(g, order)
	byLayer := groupByLayer(order, layers)

	for i := 0; i < sweepCount; i++ {
		sweepBarycenters(g, byLayer)
	}

	e.assignCoordinates(w, g, byLayer)
	normalize(w)
	return nil
}

// graph is the adjacency view of a workflow used during layout. Nodes are
// identified by their insertion index, which doubles as the deterministic
// tie-break key.
type graph struct {
	n       int
	parents [][]int // parents[i] = insertion indices with an edge into i
	indeg   []int
}

func buildGraph(w *workflow.Workflow) *graph {
	byID := make(map[workflow.NodeID]int, len(w.Nodes))
	for i, node := range w.Nodes {
		byID[node.ID] = i
	}

	g := &graph{
		n:       len(w.Nodes),
		parents: make([][]int, len(w.Nodes)),
		indeg:   make([]int, len(w.Nodes)),
	}
	for _, c := range w.Connections {
		src, okSrc := byID[c.Source]
		tgt, okTgt := byID[c.Target]
		if !okSrc || !okTgt {
			// Dangling edge in a hand-edited document; skip it.
			continue
		}
		g.parents[tgt] = append(g.parents[tgt], src)
		g.indeg[tgt]++
	}
	return g
}

// topoSort runs Kahn's algorithm, always picking the ready node with the
// lowest insertion index. Returns ok=false when a cycle prevents a full
// ordering.
func (g *graph) topoSort() ([]int, bool) {
	indeg := make([]int, g.n)
	copy(indeg, g.indeg)
	emitted := make([]bool, g.n)

	order := make([]int, 0, g.n)
	for len(order) < g.n {
		next := -1
		for i := 0; i < g.n; i++ {
			if !emitted[i] && indeg[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			return nil, false
		}
		emitted[next] = true
		order = append(order, next)
		for tgt, ps := range g.parents {
			for _, p := range ps {
				if p == next {
					indeg[tgt]--
				}
			}
		}
	}
	return order, true
}

// assignLayers places each node one layer below its deepest parent.
// Roots land on layer 0.
func assignLayers(g *graph, order []int) []int {
	layers := make([]int, g.n)
	for _, node := range order {
		layer := 0
		for _, p := range g.parents[node] {
			if layers[p]+1 > layer {
				layer = layers[p] + 1
			}
		}
		layers[node] = layer
	}
	return layers
}

// groupByLayer buckets nodes per layer, preserving topological order within
// each bucket.
func groupByLayer(order []int, layers []int) [][]int {
	var byLayer [][]int
	for _, node := range order {
		layer := layers[node]
		for len(byLayer) <= layer {
			byLayer = append(byLayer, nil)
		}
		byLayer[layer] = append(byLayer[layer], node)
	}
	return byLayer
}

// sweepBarycenters reorders every layer below the first by the mean position
// of each node's parents in the layer above. Nodes without a parent in the
// previous layer get barycenter 0 and drift left. Ties break on insertion
// index, so the sweep is deterministic.
func sweepBarycenters(g *graph, byLayer [][]int) {
	for li := 1; li < len(byLayer); li++ {
		prev := byLayer[li-1]
		prevPos := make(map[int]int, len(prev))
		for pos, node := range prev {
			prevPos[node] = pos
		}

		layer := byLayer[li]
		bary := make([]float64, len(layer))
		for i, node := range layer {
			sum, count := 0.0, 0.0
			for _, p := range g.parents[node] {
				if pos, ok := prevPos[p]; ok {
					sum += float64(pos)
					count++
				}
			}
			if count > 0 {
				bary[i] = sum / count
			}
		}

		idx := make([]int, len(layer))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			if bary[idx[a]] != bary[idx[b]] {
				return bary[idx[a]] < bary[idx[b]]
			}
			return layer[idx[a]] < layer[idx[b]]
		})

		reordered := make([]int, len(layer))
		for i, j := range idx {
			reordered[i] = layer[j]
		}
		byLayer[li] = reordered
	}
}

// assignCoordinates walks the layers top to bottom. Within a layer, nodes are
// placed left to right: each node prefers the mean x of its already-placed
// parents but is pushed right past its left neighbor when they would overlap.
// Layers are then centered against the widest layer.
func (e Engine) assignCoordinates(w *workflow.Workflow, g *graph, byLayer [][]int) {
	x := make([]float64, g.n)
	placed := make([]bool, g.n)
	maxLayerWidth := 0.0

	for li, layer := range byLayer {
		var prevX float64
		for pos, node := range layer {
			preferred := 0.0
			sum, count := 0.0, 0.0
			for _, p := range g.parents[node] {
				if placed[p] {
					sum += x[p]
					count++
				}
			}
			if count > 0 {
				preferred = sum / count
			}

			nx := preferred
			if pos > 0 {
				min := prevX + geometry.NodeWidth + e.NodeSpacing
				if nx < min {
					nx = min
				}
			}
			x[node] = nx
			placed[node] = true
			prevX = nx
		}

		if len(layer) > 0 {
			width := x[layer[len(layer)-1]] - x[layer[0]] + geometry.NodeWidth
			if width > maxLayerWidth {
				maxLayerWidth = width
			}
		}

		y := float64(li) * (geometry.NodeHeight + e.LayerSpacing)
		for _, node := range layer {
			w.Nodes[node].Y = y
		}
	}

	for _, layer := range byLayer {
		if len(layer) == 0 {
			continue
		}
		width := x[layer[len(layer)-1]] - x[layer[0]] + geometry.NodeWidth
		offset := (maxLayerWidth - width) / 2
		for _, node := range layer {
			w.Nodes[node].X = x[node] + offset
		}
	}
}

// normalize shifts all nodes so the bounding box starts at the canvas
// margins.
func normalize(w *workflow.Workflow) {
	minX, minY := w.Nodes[0].X, w.Nodes[0].Y
	for _, n := range w.Nodes[1:] {
		if n.X < minX {
			minX = n.X
		}
		if n.Y < minY {
			minY = n.Y
		}
	}
	for i := range w.Nodes {
		w.Nodes[i].X = w.Nodes[i].X - minX + LeftPadding
		w.Nodes[i].Y = w.Nodes[i].Y - minY + TopPadding
	}
}
