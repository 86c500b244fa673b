package workflow

// HistoryCapacity bounds the undo stack. When full, the oldest snapshot is
// evicted first, so memory stays proportional to the last 60 edits.
const HistoryCapacity = 60

// SaveUndoPoint pushes a full snapshot of the current state onto the undo
// stack and clears the redo stack. Callers snapshot BEFORE mutating, so undo
// restores the state as it was when the edit began.
func (w *Workflow) SaveUndoPoint() {
	if len(w.undo) >= HistoryCapacity {
		w.undo = w.undo[1:]
	}
	w.undo = append(w.undo, w.Clone())
	w.redo = nil
}

// Undo restores the most recent snapshot, pushing the current state onto the
// redo stack. Returns false when there is nothing to undo.
func (w *Workflow) Undo() bool {
	if len(w.undo) == 0 {
		return false
	}
	snapshot := w.undo[len(w.undo)-1]
	w.undo = w.undo[:len(w.undo)-1]
	w.redo = append(w.redo, w.Clone())
	w.restore(snapshot)
	return true
}

// Redo re-applies the most recently undone snapshot, pushing the current
// state back onto the undo stack. Returns false when there is nothing to redo.
func (w *Workflow) Redo() bool {
	if len(w.redo) == 0 {
		return false
	}
	snapshot := w.redo[len(w.redo)-1]
	w.redo = w.redo[:len(w.redo)-1]
	w.undo = append(w.undo, w.Clone())
	w.restore(snapshot)
	return true
}

// UndoDepth returns the number of snapshots available to Undo.
func (w *Workflow) UndoDepth() int { return len(w.undo) }

// RedoDepth returns the number of snapshots available to Redo.
func (w *Workflow) RedoDepth() int { return len(w.redo) }

// restore replaces the live state with a snapshot, keeping the history
// stacks of the receiver.
func (w *Workflow) restore(snapshot *Workflow) {
	w.Nodes = snapshot.Nodes
	w.Connections = snapshot.Connections
	w.Viewport = snapshot.Viewport
	w.ExecutionQueue = snapshot.ExecutionQueue
	w.CurrentStep = snapshot.CurrentStep
}
