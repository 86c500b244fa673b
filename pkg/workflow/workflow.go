// Package workflow implements the aggregate model behind the visual workflow
// editor: nodes, connections, the viewport transform, undo/redo history, and
// the connectivity rules that keep the connection graph a DAG.
//
// A Workflow is a plain mutable value designed for a single writer. It holds
// no goroutines, does no I/O, and every operation runs to completion on the
// calling goroutine. Concurrent readers must work on a Clone.
//
// Node and connection order is significant: insertion order is the
// deterministic tie-break key for the auto-layout engine, so operations
// never reorder the slices.
package workflow

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/oyalabs/flowcanvas/pkg/catalog"
	"github.com/oyalabs/flowcanvas/pkg/geometry"
)

// ErrNodeNotFound is returned by operations that require an existing node.
// Position updates and removals deliberately do NOT return it; those degrade
// to no-ops so stale UI events cannot fail.
var ErrNodeNotFound = errors.New("node not found")

// placementStep is how far AddNode nudges a new node (both axes) when the
// requested position is already occupied.
const placementStep = 30.0

// NodeID uniquely identifies a node within a workflow for its lifetime.
// IDs are opaque UUID strings; never parse them.
type NodeID string

// NewNodeID returns a fresh random node ID.
func NewNodeID() NodeID { return NodeID(uuid.NewString()) }

// PortName names a logical input or output endpoint on a node.
// Comparisons are exact; "main" and "Main" are different ports.
type PortName string

// Node is a single step on the canvas.
type Node struct {
	ID          NodeID           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	NodeType    string           `json:"node_type"`
	Category    catalog.Category `json:"category"`
	Icon        string           `json:"icon"`
	X           float64          `json:"x"`
	Y           float64          `json:"y"`

	// Config is an open document; node-type forms read and write it freely.
	Config map[string]any `json:"config"`

	// LastOutput is the most recent execution result, if any.
	LastOutput any `json:"last_output,omitempty"`

	// Transient UI flags.
	Selected  bool   `json:"selected"`
	Executing bool   `json:"executing"`
	Skipped   bool   `json:"skipped"`
	Error     string `json:"error,omitempty"`
}

// Connection is a directed edge between two node ports.
type Connection struct {
	ID         string   `json:"id"`
	Source     NodeID   `json:"source"`
	Target     NodeID   `json:"target"`
	SourcePort PortName `json:"source_port"`
	TargetPort PortName `json:"target_port"`
}

// Viewport is the affine transform from model space to screen space:
// screen = model*zoom + (X, Y).
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// Workflow is the aggregate root. The zero value is not usable; use New.
type Workflow struct {
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
	Viewport    Viewport     `json:"viewport"`

	// ExecutionQueue and CurrentStep are consumed by the execution
	// subsystem; the editor core only carries them through clones and
	// serialization.
	ExecutionQueue []NodeID `json:"execution_queue"`
	CurrentStep    int      `json:"current_step"`

	// Undo/redo snapshot stacks. Not serialized.
	undo []*Workflow
	redo []*Workflow
}

// New creates an empty workflow with an identity viewport.
func New() *Workflow {
	return &Workflow{Viewport: Viewport{Zoom: 1.0}}
}

// AddNode creates a node of the given type near (x, y) and returns its ID.
// It never fails: unknown node types resolve to the catalog default, and an
// occupied position is nudged diagonally in 30-unit steps until free.
// The display name is "{nodeType} {n}" where n is the 1-based insertion count.
func (w *Workflow) AddNode(nodeType string, x, y float64) NodeID {
	existing := make([]geometry.Point, len(w.Nodes))
	for i, n := range w.Nodes {
		existing[i] = geometry.Point{X: n.X, Y: n.Y}
	}
	finalX, finalY := geometry.FindSafePosition(existing, x, y, placementStep)

	category, label, icon := catalog.Metadata(nodeType)

	id := NewNodeID()
	w.Nodes = append(w.Nodes, Node{
		ID:          id,
		Name:        fmt.Sprintf("%s %d", nodeType, len(w.Nodes)+1),
		Description: label,
		NodeType:    nodeType,
		Category:    category,
		Icon:        icon,
		X:           finalX,
		Y:           finalY,
		Config:      map[string]any{},
	})
	return id
}

// AddNodeAtViewportCenter creates a node at the model-space point currently
// shown at screen position (400, 300), the nominal canvas center.
func (w *Workflow) AddNodeAtViewportCenter(nodeType string) NodeID {
	nx := (400.0 - w.Viewport.X) / w.Viewport.Zoom
	ny := (300.0 - w.Viewport.Y) / w.Viewport.Zoom
	return w.AddNode(nodeType, nx, ny)
}

// RemoveNode deletes the node and every connection touching it.
// Removing an unknown ID is a no-op.
func (w *Workflow) RemoveNode(id NodeID) {
	w.Nodes = slices.DeleteFunc(w.Nodes, func(n Node) bool { return n.ID == id })
	w.Connections = slices.DeleteFunc(w.Connections, func(c Connection) bool {
		return c.Source == id || c.Target == id
	})
}

// UpdateNodePosition applies a drag delta to the node's position using the
// snapping and numeric-safety rules of geometry.UpdateNodePosition.
// Unknown IDs and non-finite deltas are no-ops.
func (w *Workflow) UpdateNodePosition(id NodeID, dx, dy float64) {
	n := w.node(id)
	if n == nil {
		return
	}
	n.X, n.Y = geometry.UpdateNodePosition(n.X, n.Y, dx, dy)
}

// SetNodeConfig replaces the node's config document.
// Returns ErrNodeNotFound for unknown IDs.
func (w *Workflow) SetNodeConfig(id NodeID, config map[string]any) error {
	n := w.node(id)
	if n == nil {
		return ErrNodeNotFound
	}
	if config == nil {
		config = map[string]any{}
	}
	n.Config = config
	return nil
}

// SelectNode marks a single node as selected and deselects all others.
func (w *Workflow) SelectNode(id NodeID) {
	for i := range w.Nodes {
		w.Nodes[i].Selected = w.Nodes[i].ID == id
	}
}

// DeselectAll clears the selected flag on every node.
func (w *Workflow) DeselectAll() {
	for i := range w.Nodes {
		w.Nodes[i].Selected = false
	}
}

// Node returns the node with the given ID, or nil and false.
// The pointer refers into the workflow; mutations are visible.
func (w *Workflow) Node(id NodeID) (*Node, bool) {
	n := w.node(id)
	return n, n != nil
}

func (w *Workflow) node(id NodeID) *Node {
	for i := range w.Nodes {
		if w.Nodes[i].ID == id {
			return &w.Nodes[i]
		}
	}
	return nil
}

// Zoom applies a relative zoom delta anchored at screen point (cx, cy).
func (w *Workflow) Zoom(delta, cx, cy float64) {
	oldZoom := w.Viewport.Zoom
	newZoom := geometry.ZoomDelta(delta, oldZoom)
	w.Viewport.X, w.Viewport.Y = geometry.PanOffset(w.Viewport.X, w.Viewport.Y, cx, cy, oldZoom, newZoom)
	w.Viewport.Zoom = newZoom
}

// Pan shifts the viewport offset. Non-finite deltas are ignored.
func (w *Workflow) Pan(dx, dy float64) {
	if math.IsNaN(dx) || math.IsInf(dx, 0) || math.IsNaN(dy) || math.IsInf(dy, 0) {
		return
	}
	w.Viewport.X += dx
	w.Viewport.Y += dy
}

// FitView frames all nodes within a viewport of the given dimensions.
// The viewport is left untouched (and false returned) when the workflow is
// empty or the inputs are unusable.
func (w *Workflow) FitView(viewportWidth, viewportHeight, padding float64) bool {
	positions := make([]geometry.Point, len(w.Nodes))
	for i, n := range w.Nodes {
		positions[i] = geometry.Point{X: n.X, Y: n.Y}
	}
	x, y, zoom, ok := geometry.FitView(positions, viewportWidth, viewportHeight, padding)
	if !ok {
		return false
	}
	w.Viewport = Viewport{X: x, Y: y, Zoom: zoom}
	return true
}

// Clone returns a deep copy of the workflow state. The undo/redo stacks are
// not copied; clones start with empty history.
func (w *Workflow) Clone() *Workflow {
	c := &Workflow{
		Nodes:          make([]Node, len(w.Nodes)),
		Connections:    slices.Clone(w.Connections),
		Viewport:       w.Viewport,
		ExecutionQueue: slices.Clone(w.ExecutionQueue),
		CurrentStep:    w.CurrentStep,
	}
	for i, n := range w.Nodes {
		n.Config = cloneDocument(n.Config)
		n.LastOutput = cloneValue(n.LastOutput)
		c.Nodes[i] = n
	}
	return c
}

// cloneDocument deep-copies a config document. Values other than nested maps
// and slices are copied by assignment; config blobs are JSON-shaped, so that
// covers everything that round-trips.
func cloneDocument(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneDocument(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
