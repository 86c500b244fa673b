package workflow

import (
	"fmt"

	"github.com/oyalabs/flowcanvas/pkg/catalog"
)

// Severity classifies a validation issue.
type Severity string

// Issue severities. Errors block execution; warnings are advisory.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single structural problem found in a workflow.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	NodeID   NodeID   `json:"node_id,omitempty"`
}

// ValidationResult collects the issues found by Validate.
type ValidationResult struct {
	Issues []Issue `json:"issues"`
}

// HasErrors reports whether any issue has error severity.
func (r ValidationResult) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any issue has warning severity.
func (r ValidationResult) HasWarnings() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-severity issues.
func (r ValidationResult) ErrorCount() int { return r.count(SeverityError) }

// WarningCount returns the number of warning-severity issues.
func (r ValidationResult) WarningCount() int { return r.count(SeverityWarning) }

// IsValid reports whether the workflow has no error-severity issues.
func (r ValidationResult) IsValid() bool { return !r.HasErrors() }

func (r ValidationResult) count(s Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}

// Validate lints the workflow structure: it needs at least one node, an
// entry point, no unreachable or orphaned nodes, and only known node types.
// Validation never mutates the workflow.
func Validate(w *Workflow) ValidationResult {
	var issues []Issue

	if len(w.Nodes) == 0 {
		issues = append(issues, Issue{Severity: SeverityError, Message: "workflow has no nodes"})
		return ValidationResult{Issues: issues}
	}

	issues = append(issues, checkEntryPoints(w)...)
	issues = append(issues, checkReachability(w)...)
	issues = append(issues, checkOrphans(w)...)
	issues = append(issues, checkNodeTypes(w)...)

	return ValidationResult{Issues: issues}
}

func checkEntryPoints(w *Workflow) []Issue {
	for _, n := range w.Nodes {
		if n.Category == catalog.CategoryEntry {
			return nil
		}
	}
	return []Issue{{
		Severity: SeverityError,
		Message:  "workflow has no entry point (e.g. HTTP Handler, Kafka Consumer)",
	}}
}

// checkReachability warns about nodes that no entry point can reach and that
// have no incoming connections at all. Nodes with incoming connections from
// other unreachable nodes are not flagged; fixing the root of the island
// fixes them too.
func checkReachability(w *Workflow) []Issue {
	if len(w.Connections) == 0 {
		return nil
	}

	reachable := make(map[NodeID]struct{}, len(w.Nodes))
	var stack []NodeID
	for _, n := range w.Nodes {
		if n.Category == catalog.CategoryEntry {
			stack = append(stack, n.ID)
		}
	}
	if len(stack) == 0 {
		return nil
	}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := reachable[current]; seen {
			continue
		}
		reachable[current] = struct{}{}
		for _, c := range w.Connections {
			if c.Source == current {
				stack = append(stack, c.Target)
			}
		}
	}

	var issues []Issue
	for _, n := range w.Nodes {
		if _, ok := reachable[n.ID]; ok || n.Category == catalog.CategoryEntry {
			continue
		}
		if !w.hasIncoming(n.ID) {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("node %q is not reachable from any entry point", n.Name),
				NodeID:   n.ID,
			})
		}
	}
	return issues
}

func checkOrphans(w *Workflow) []Issue {
	if len(w.Nodes) <= 1 {
		return nil
	}

	var issues []Issue
	for _, n := range w.Nodes {
		if n.Category == catalog.CategoryEntry {
			continue
		}
		incoming := w.hasIncoming(n.ID)
		outgoing := w.hasOutgoing(n.ID)

		switch {
		case !incoming && !outgoing:
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("node %q is not connected to anything", n.Name),
				NodeID:   n.ID,
			})
		case !incoming:
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("node %q has no incoming connections", n.Name),
				NodeID:   n.ID,
			})
		}
	}
	return issues
}

func checkNodeTypes(w *Workflow) []Issue {
	var issues []Issue
	for _, n := range w.Nodes {
		if !catalog.Known(n.NodeType) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Message:  fmt.Sprintf("unknown node type: %s", n.NodeType),
				NodeID:   n.ID,
			})
		}
	}
	return issues
}

func (w *Workflow) hasIncoming(id NodeID) bool {
	for _, c := range w.Connections {
		if c.Target == id {
			return true
		}
	}
	return false
}

func (w *Workflow) hasOutgoing(id NodeID) bool {
	for _, c := range w.Connections {
		if c.Source == id {
			return true
		}
	}
	return false
}
