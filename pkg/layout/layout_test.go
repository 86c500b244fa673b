package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/oyalabs/flowcanvas/pkg/geometry"
	"github.com/oyalabs/flowcanvas/pkg/workflow"
)

const tolerance = 1e-4

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestApply_EmptyWorkflow(t *testing.T) {
	w := workflow.New()
	if err := NewEngine().Apply(w); err != nil {
		t.Errorf("Apply on empty workflow: %v", err)
	}
}

func TestApply_LinearChain(t *testing.T) {
	w := workflow.New()
	a := w.AddNode("http-handler", 999, 999)
	b := w.AddNode("run", 500, 0)
	c := w.AddNode("run", 0, 500)
	w.AddConnection(a, b, "main", "main")
	w.AddConnection(b, c, "main", "main")

	if err := NewEngine().Apply(w); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// Single-node layers all align at the left margin; layers are
	// NodeHeight + LayerSpacing = 208 apart starting at the top margin.
	wantY := []float64{80, 288, 496}
	for i, n := range w.Nodes {
		if !almostEqual(n.X, 120) {
			t.Errorf("node %d X = %v, want 120", i, n.X)
		}
		if !almostEqual(n.Y, wantY[i]) {
			t.Errorf("node %d Y = %v, want %v", i, n.Y, wantY[i])
		}
	}
}

func TestApply_DiamondLayers(t *testing.T) {
	w := workflow.New()
	a := w.AddNode("http-handler", 0, 0)
	b := w.AddNode("run", 0, 0)
	c := w.AddNode("run", 0, 0)
	d := w.AddNode("run", 0, 0)
	w.AddConnection(a, b, "main", "main")
	w.AddConnection(a, c, "main", "main")
	w.AddConnection(b, d, "main", "main")
	w.AddConnection(c, d, "main", "main")

	if err := NewEngine().Apply(w); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	node := func(id workflow.NodeID) *workflow.Node {
		n, ok := w.Node(id)
		if !ok {
			t.Fatalf("node %s missing", id)
		}
		return n
	}

	na, nb, nc, nd := node(a), node(b), node(c), node(d)

	if !almostEqual(nb.Y, nc.Y) {
		t.Errorf("B and C should share a layer: %v vs %v", nb.Y, nc.Y)
	}
	if !(na.Y < nb.Y && nb.Y < nd.Y) {
		t.Errorf("layer order violated: A=%v B=%v D=%v", na.Y, nb.Y, nd.Y)
	}
	if nc.X-nb.X < 220+60-tolerance {
		t.Errorf("B and C overlap: B.X=%v C.X=%v", nb.X, nc.X)
	}
}

func TestApply_MinimumMargins(t *testing.T) {
	w := workflow.New()
	a := w.AddNode("http-handler", -5000, -5000)
	b := w.AddNode("run", 3000, -2000)
	c := w.AddNode("run", 0, 0)
	w.AddConnection(a, b, "main", "main")
	w.AddConnection(a, c, "main", "main")

	if err := NewEngine().Apply(w); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	minX, minY := math.Inf(1), math.Inf(1)
	for _, n := range w.Nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
	}
	if !almostEqual(minX, LeftPadding) {
		t.Errorf("min X = %v, want %v", minX, LeftPadding)
	}
	if !almostEqual(minY, TopPadding) {
		t.Errorf("min Y = %v, want %v", minY, TopPadding)
	}
}

func TestApply_Idempotent(t *testing.T) {
	w := workflow.New()
	a := w.AddNode("http-handler", 0, 0)
	b := w.AddNode("condition", 0, 0)
	c := w.AddNode("run", 0, 0)
	d := w.AddNode("sleep", 0, 0)
	e := w.AddNode("send-message", 0, 0)
	w.AddConnection(a, b, "main", "main")
	w.AddConnection(b, c, "true", "main")
	w.AddConnection(b, d, "false", "main")
	w.AddConnection(c, e, "main", "main")
	w.AddConnection(d, e, "main", "main")

	eng := NewEngine()
	if err := eng.Apply(w); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	first := snapshot(w)

	if err := eng.Apply(w); err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	for i, n := range w.Nodes {
		if !almostEqual(n.X, first[i][0]) || !almostEqual(n.Y, first[i][1]) {
			t.Errorf("node %d moved on re-layout: (%v, %v) vs (%v, %v)",
				i, n.X, n.Y, first[i][0], first[i][1])
		}
	}
}

func TestApply_DisconnectedComponents(t *testing.T) {
	build := func() *workflow.Workflow {
		w := workflow.New()
		a := w.AddNode("http-handler", 0, 0)
		b := w.AddNode("run", 0, 0)
		w.AddConnection(a, b, "main", "main")
		c := w.AddNode("cron-trigger", 0, 0)
		d := w.AddNode("run", 0, 0)
		w.AddConnection(c, d, "main", "main")
		w.AddNode("set-state", 0, 0) // isolated, no connections
		return w
	}

	w1, w2 := build(), build()
	eng := NewEngine()
	if err := eng.Apply(w1); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := eng.Apply(w2); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for i := range w1.Nodes {
		if !almostEqual(w1.Nodes[i].X, w2.Nodes[i].X) ||
			!almostEqual(w1.Nodes[i].Y, w2.Nodes[i].Y) {
			t.Errorf("layout not deterministic at node %d", i)
		}
	}

	// Repeated application must not drift.
	if err := eng.Apply(w1); err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	for i := range w1.Nodes {
		if !almostEqual(w1.Nodes[i].X, w2.Nodes[i].X) ||
			!almostEqual(w1.Nodes[i].Y, w2.Nodes[i].Y) {
			t.Errorf("layout not stable across repeated Apply at node %d", i)
		}
	}

	// Both roots and the isolated node share layer 0 and must not overlap.
	isolated := w1.Nodes[4]
	if !almostEqual(isolated.Y, w1.Nodes[0].Y) {
		t.Errorf("isolated node y = %v, want layer 0 at %v", isolated.Y, w1.Nodes[0].Y)
	}
	layer0 := []float64{w1.Nodes[0].X, w1.Nodes[2].X, isolated.X}
	for i := 0; i < len(layer0); i++ {
		for j := i + 1; j < len(layer0); j++ {
			if math.Abs(layer0[i]-layer0[j]) < geometry.NodeWidth {
				t.Errorf("layer 0 nodes %d and %d overlap: x=%v and x=%v", i, j, layer0[i], layer0[j])
			}
		}
	}
}

func TestApply_CyclicGraphUntouched(t *testing.T) {
	w := workflow.New()
	a := w.AddNode("http-handler", 11, 22)
	b := w.AddNode("run", 33, 44)

	// The editor forbids cycles, so fabricate one the way a hand-edited
	// document would carry it.
	w.Connections = append(w.Connections,
		workflow.Connection{ID: "c1", Source: a, Target: b, SourcePort: "main", TargetPort: "main"},
		workflow.Connection{ID: "c2", Source: b, Target: a, SourcePort: "main", TargetPort: "main"},
	)

	err := NewEngine().Apply(w)
	if !errors.Is(err, ErrCyclicGraph) {
		t.Fatalf("err = %v, want ErrCyclicGraph", err)
	}
	if w.Nodes[0].X != 11 || w.Nodes[0].Y != 22 || w.Nodes[1].X != 33 || w.Nodes[1].Y != 44 {
		t.Error("positions modified despite cycle")
	}
}

func TestApply_DanglingEdgeIgnored(t *testing.T) {
	w := workflow.New()
	a := w.AddNode("http-handler", 0, 0)
	b := w.AddNode("run", 0, 0)
	w.AddConnection(a, b, "main", "main")
	w.Connections = append(w.Connections, workflow.Connection{
		ID: "stale", Source: b, Target: workflow.NewNodeID(),
	})

	if err := NewEngine().Apply(w); err != nil {
		t.Errorf("Apply with dangling edge: %v", err)
	}
}

func TestApply_CustomSpacing(t *testing.T) {
	w := workflow.New()
	a := w.AddNode("http-handler", 0, 0)
	b := w.AddNode("run", 0, 0)
	w.AddConnection(a, b, "main", "main")

	eng := Engine{LayerSpacing: 40, NodeSpacing: 20}
	if err := eng.Apply(w); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	gap := w.Nodes[1].Y - w.Nodes[0].Y
	if !almostEqual(gap, 68+40) {
		t.Errorf("layer gap = %v, want %v", gap, 68+40.0)
	}
}

func snapshot(w *workflow.Workflow) [][2]float64 {
	out := make([][2]float64, len(w.Nodes))
	for i, n := range w.Nodes {
		out[i] = [2]float64{n.X, n.Y}
	}
	return out
}
