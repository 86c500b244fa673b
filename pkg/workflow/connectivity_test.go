package workflow

import (
	"errors"
	"testing"
)

func TestAddConnectionChecked_SelfConnection(t *testing.T) {
	w := New()
	a := w.AddNode("run", 0, 0)

	_, err := w.AddConnectionChecked(a, a, "main", "main")
	if !errors.Is(err, ErrSelfConnection) {
		t.Errorf("err = %v, want ErrSelfConnection", err)
	}
	if len(w.Connections) != 0 {
		t.Errorf("connection count = %d, want 0", len(w.Connections))
	}
}

func TestAddConnectionChecked_CycleRejected(t *testing.T) {
	w := New()
	a := w.AddNode("http-handler", 0, 0)
	b := w.AddNode("run", 300, 0)

	if _, err := w.AddConnectionChecked(a, b, "main", "main"); err != nil {
		t.Fatalf("A->B: %v", err)
	}
	_, err := w.AddConnectionChecked(b, a, "main", "main")
	if !errors.Is(err, ErrWouldCreateCycle) {
		t.Errorf("B->A err = %v, want ErrWouldCreateCycle", err)
	}
	if len(w.Connections) != 1 {
		t.Errorf("connection count = %d, want 1 (list unchanged on rejection)", len(w.Connections))
	}
}

func TestAddConnectionChecked_TransitiveCycleRejected(t *testing.T) {
	w := New()
	a := w.AddNode("http-handler", 0, 0)
	b := w.AddNode("run", 300, 0)
	c := w.AddNode("run", 600, 0)
	w.AddConnection(a, b, "main", "main")
	w.AddConnection(b, c, "main", "main")

	_, err := w.AddConnectionChecked(c, a, "main", "main")
	if !errors.Is(err, ErrWouldCreateCycle) {
		t.Errorf("C->A err = %v, want ErrWouldCreateCycle", err)
	}
}

func TestAddConnectionChecked_DiamondIsNotACycle(t *testing.T) {
	w := New()
	a := w.AddNode("http-handler", 0, 0)
	b := w.AddNode("run", 300, -100)
	c := w.AddNode("run", 300, 100)
	d := w.AddNode("run", 600, 0)
	w.AddConnection(a, b, "main", "main")
	w.AddConnection(a, c, "main", "main")
	w.AddConnection(b, d, "main", "main")

	if _, err := w.AddConnectionChecked(c, d, "main", "main"); err != nil {
		t.Errorf("closing a diamond should be legal, got %v", err)
	}
}

func TestAddConnectionChecked_Duplicate(t *testing.T) {
	w := New()
	a := w.AddNode("http-handler", 0, 0)
	b := w.AddNode("run", 300, 0)
	w.AddConnection(a, b, "main", "main")

	_, err := w.AddConnectionChecked(a, b, "main", "main")
	if !errors.Is(err, ErrDuplicateConnection) {
		t.Errorf("err = %v, want ErrDuplicateConnection", err)
	}

	// Same endpoints on different ports is a distinct connection.
	if _, err := w.AddConnectionChecked(a, b, "main", "retry"); err != nil {
		t.Errorf("different ports should be allowed, got %v", err)
	}
}

func TestAddConnectionChecked_UnknownEndpoint(t *testing.T) {
	w := New()
	a := w.AddNode("run", 0, 0)

	_, err := w.AddConnectionChecked(a, NewNodeID(), "main", "main")
	if !errors.Is(err, ErrUnknownEndpoint) {
		t.Errorf("err = %v, want ErrUnknownEndpoint", err)
	}
}

func TestAddConnectionChecked_TypeWarningStillConnects(t *testing.T) {
	w := New()
	// awakeable takes a signal input; run emits a payload.
	a := w.AddNode("run", 0, 0)
	b := w.AddNode("awakeable", 300, 0)

	res, err := w.AddConnectionChecked(a, b, "main", "main")
	if err != nil {
		t.Fatalf("AddConnectionChecked: %v", err)
	}
	if res.TypeWarning == "" {
		t.Error("expected a port type warning for payload -> signal")
	}
	if len(w.Connections) != 1 {
		t.Errorf("connection count = %d, want 1 despite warning", len(w.Connections))
	}
}

func TestAddConnectionChecked_CompatibleTypesNoWarning(t *testing.T) {
	w := New()
	a := w.AddNode("http-handler", 0, 0)
	b := w.AddNode("run", 300, 0)

	res, err := w.AddConnectionChecked(a, b, "main", "main")
	if err != nil {
		t.Fatalf("AddConnectionChecked: %v", err)
	}
	if res.TypeWarning != "" {
		t.Errorf("unexpected warning: %q", res.TypeWarning)
	}
	if res.Connection.ID == "" {
		t.Error("connection should carry a fresh ID")
	}
}

func TestCheckPortTypes_Strict(t *testing.T) {
	if err := CheckPortTypes("http-handler", "run"); err != nil {
		t.Errorf("event -> payload input: %v, want nil", err)
	}

	err := CheckPortTypes("run", "awakeable")
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want *TypeMismatchError", err)
	}
	if mismatch.TargetType != "signal" {
		t.Errorf("TargetType = %q, want %q", mismatch.TargetType, "signal")
	}

	// Unknown types declare no ports, so there is nothing to compare.
	if err := CheckPortTypes("made-up", "run"); err != nil {
		t.Errorf("undeclared source type: %v, want nil", err)
	}
}

func TestRemoveConnection(t *testing.T) {
	w := New()
	a := w.AddNode("http-handler", 0, 0)
	b := w.AddNode("run", 300, 0)
	res, _ := w.AddConnectionChecked(a, b, "main", "main")

	w.RemoveConnection("no-such-id")
	if len(w.Connections) != 1 {
		t.Fatalf("connection count = %d, want 1 after unknown-ID removal", len(w.Connections))
	}

	w.RemoveConnection(res.Connection.ID)
	if len(w.Connections) != 0 {
		t.Errorf("connection count = %d, want 0", len(w.Connections))
	}
}
