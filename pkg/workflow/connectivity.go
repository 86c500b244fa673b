package workflow

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/oyalabs/flowcanvas/pkg/catalog"
)

// Sentinel errors for connection creation. All are locally recoverable:
// callers surface the condition to the user and take no destructive action.
var (
	// ErrSelfConnection is returned when source and target are the same node.
	ErrSelfConnection = errors.New("cannot connect node to itself")

	// ErrWouldCreateCycle is returned when the new edge would close a
	// directed cycle. The connection graph must stay a DAG; this check is
	// the sole gate enforcing that invariant.
	ErrWouldCreateCycle = errors.New("connection would create a cycle")

	// ErrDuplicateConnection is returned when a connection with the same
	// (source, target, source port, target port) tuple already exists.
	ErrDuplicateConnection = errors.New("duplicate connection")

	// ErrUnknownEndpoint is returned when either endpoint node does not
	// exist in the workflow.
	ErrUnknownEndpoint = errors.New("unknown endpoint node")
)

// TypeMismatchError reports incompatible declared port types. It is a hard
// failure only on the strict path (CheckPortTypes); AddConnectionChecked
// downgrades it to a warning.
type TypeMismatchError struct {
	SourceType string
	TargetType string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("port type mismatch: %s output cannot feed %s input", e.SourceType, e.TargetType)
}

// ConnectionResult is the outcome of a successful AddConnectionChecked call.
type ConnectionResult struct {
	// Connection is the edge that was appended to the workflow.
	Connection Connection

	// TypeWarning is a non-empty advisory message when the endpoint port
	// types are declared incompatible. The connection was still created.
	TypeWarning string
}

// AddConnectionChecked validates and creates a connection. Checks run in
// order and the first failure wins:
//
//  1. source == target fails with ErrSelfConnection.
//  2. An existing path target→source fails with ErrWouldCreateCycle.
//  3. An identical (source, target, ports) tuple fails with
//     ErrDuplicateConnection.
//  4. Declared-incompatible port types succeed with a TypeWarning.
//
// Endpoints must exist in the workflow (ErrUnknownEndpoint). On success the
// connection is appended with a fresh ID and the workflow remains acyclic.
func (w *Workflow) AddConnectionChecked(source, target NodeID, sourcePort, targetPort PortName) (ConnectionResult, error) {
	if source == target {
		return ConnectionResult{}, ErrSelfConnection
	}
	srcNode := w.node(source)
	tgtNode := w.node(target)
	if srcNode == nil || tgtNode == nil {
		return ConnectionResult{}, ErrUnknownEndpoint
	}
	if w.pathExists(target, source) {
		return ConnectionResult{}, ErrWouldCreateCycle
	}
	for _, c := range w.Connections {
		if c.Source == source && c.Target == target &&
			c.SourcePort == sourcePort && c.TargetPort == targetPort {
			return ConnectionResult{}, ErrDuplicateConnection
		}
	}

	conn := Connection{
		ID:         uuid.NewString(),
		Source:     source,
		Target:     target,
		SourcePort: sourcePort,
		TargetPort: targetPort,
	}
	w.Connections = append(w.Connections, conn)

	result := ConnectionResult{Connection: conn}
	if err := checkPortTypes(srcNode.NodeType, tgtNode.NodeType); err != nil {
		result.TypeWarning = err.Error()
	}
	return result, nil
}

// AddConnection is the boolean convenience wrapper around
// AddConnectionChecked for call sites that only need a success signal.
// Type warnings count as success.
func (w *Workflow) AddConnection(source, target NodeID, sourcePort, targetPort PortName) bool {
	_, err := w.AddConnectionChecked(source, target, sourcePort, targetPort)
	return err == nil
}

// RemoveConnection deletes the connection with the given ID.
// Unknown IDs are a no-op.
func (w *Workflow) RemoveConnection(id string) {
	for i, c := range w.Connections {
		if c.ID == id {
			w.Connections = append(w.Connections[:i], w.Connections[i+1:]...)
			return
		}
	}
}

// CheckPortTypes is the strict validation path: it returns a
// *TypeMismatchError when both node types declare port types and they are
// incompatible, without touching the workflow. The lenient creation path
// surfaces the same condition as ConnectionResult.TypeWarning instead.
func CheckPortTypes(sourceType, targetType string) error {
	return checkPortTypes(sourceType, targetType)
}

func checkPortTypes(sourceType, targetType string) error {
	out, okOut := catalog.OutputType(sourceType)
	in, okIn := catalog.InputType(targetType)
	if !okOut || !okIn {
		// Undeclared on either side: nothing to compare.
		return nil
	}
	if catalog.Compatible(out, in) {
		return nil
	}
	return &TypeMismatchError{SourceType: out, TargetType: in}
}

// pathExists reports whether any directed path leads from one node to
// another along existing connections. Iterative DFS with a visited set, so
// diamond-shaped ancestry terminates.
func (w *Workflow) pathExists(from, to NodeID) bool {
	visited := make(map[NodeID]struct{}, len(w.Nodes))
	stack := []NodeID{from}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current == to {
			return true
		}
		if _, seen := visited[current]; seen {
			continue
		}
		visited[current] = struct{}{}

		for _, c := range w.Connections {
			if c.Source == current {
				stack = append(stack, c.Target)
			}
		}
	}
	return false
}
