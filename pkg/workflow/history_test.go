package workflow

import "testing"

func TestUndoRedo_RoundTrip(t *testing.T) {
	w := New()
	w.AddNode("http-handler", 0, 0)

	w.SaveUndoPoint()
	w.AddNode("run", 300, 0)

	if len(w.Nodes) != 2 {
		t.Fatalf("node count = %d, want 2", len(w.Nodes))
	}
	if !w.Undo() {
		t.Fatal("Undo should succeed")
	}
	if len(w.Nodes) != 1 {
		t.Errorf("node count after undo = %d, want 1", len(w.Nodes))
	}
	if !w.Redo() {
		t.Fatal("Redo should succeed")
	}
	if len(w.Nodes) != 2 {
		t.Errorf("node count after redo = %d, want 2", len(w.Nodes))
	}
}

func TestUndo_EmptyStack(t *testing.T) {
	w := New()
	if w.Undo() {
		t.Error("Undo on empty history should return false")
	}
	if w.Redo() {
		t.Error("Redo on empty history should return false")
	}
}

func TestSaveUndoPoint_ClearsRedo(t *testing.T) {
	w := New()
	w.SaveUndoPoint()
	w.AddNode("run", 0, 0)
	w.Undo()

	if w.RedoDepth() != 1 {
		t.Fatalf("RedoDepth = %d, want 1", w.RedoDepth())
	}

	w.SaveUndoPoint()
	w.AddNode("sleep", 0, 0)

	if w.RedoDepth() != 0 {
		t.Errorf("RedoDepth = %d, want 0 after a new edit", w.RedoDepth())
	}
	if w.Redo() {
		t.Error("Redo should fail after the redo stack is cleared")
	}
}

func TestSaveUndoPoint_EvictsOldest(t *testing.T) {
	w := New()
	for i := 0; i < HistoryCapacity+10; i++ {
		w.SaveUndoPoint()
		w.AddNode("run", float64(i)*300, 0)
	}

	if w.UndoDepth() != HistoryCapacity {
		t.Fatalf("UndoDepth = %d, want %d", w.UndoDepth(), HistoryCapacity)
	}

	// Undo everything: the 10 oldest snapshots were evicted, so the deepest
	// restorable state still has 10 nodes.
	for w.Undo() {
	}
	if len(w.Nodes) != 10 {
		t.Errorf("node count after exhausting undo = %d, want 10", len(w.Nodes))
	}
}

func TestUndo_SnapshotsAreIsolated(t *testing.T) {
	w := New()
	id := w.AddNode("http-handler", 0, 0)
	w.SetNodeConfig(id, map[string]any{"path": "/a"})

	w.SaveUndoPoint()
	w.SetNodeConfig(id, map[string]any{"path": "/b"})
	w.Undo()

	n, _ := w.Node(id)
	if n.Config["path"] != "/a" {
		t.Errorf("config path = %v, want /a restored from snapshot", n.Config["path"])
	}
}

func TestUndo_RestoresLastOutputMutatedInPlace(t *testing.T) {
	w := New()
	id := w.AddNode("run", 0, 0)
	w.Nodes[0].LastOutput = map[string]any{"result": "before"}

	w.SaveUndoPoint()
	w.Nodes[0].LastOutput.(map[string]any)["result"] = "after"
	w.Undo()

	n, _ := w.Node(id)
	got := n.LastOutput.(map[string]any)["result"]
	if got != "before" {
		t.Errorf("last_output result = %v, want before restored from snapshot", got)
	}
}
