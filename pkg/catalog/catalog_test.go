package catalog

import "testing"

func TestMetadata_KnownType(t *testing.T) {
	category, label, icon := Metadata("http-handler")

	if category != CategoryEntry {
		t.Errorf("category = %q, want %q", category, CategoryEntry)
	}
	if label != "HTTP Handler" {
		t.Errorf("label = %q, want %q", label, "HTTP Handler")
	}
	if icon != "globe" {
		t.Errorf("icon = %q, want %q", icon, "globe")
	}
}

func TestMetadata_UnknownTypeFallsBack(t *testing.T) {
	category, label, icon := Metadata("totally-unknown")

	if category != CategoryDurable {
		t.Errorf("category = %q, want %q", category, CategoryDurable)
	}
	if label != "Unknown Node" {
		t.Errorf("label = %q, want %q", label, "Unknown Node")
	}
	if icon != "help-circle" {
		t.Errorf("icon = %q, want %q", icon, "help-circle")
	}
}

func TestLookup_ReportsFound(t *testing.T) {
	if _, ok := Lookup("condition"); !ok {
		t.Error("Lookup(condition) should report found")
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) should report not found")
	}
}

func TestPortTypes(t *testing.T) {
	out, ok := OutputType("http-handler")
	if !ok || out != TypeEvent {
		t.Errorf("OutputType(http-handler) = %q, %v, want %q, true", out, ok, TypeEvent)
	}

	in, ok := InputType("awakeable")
	if !ok || in != TypeSignal {
		t.Errorf("InputType(awakeable) = %q, %v, want %q, true", in, ok, TypeSignal)
	}

	// send-message declares no output.
	if _, ok := OutputType("send-message"); ok {
		t.Error("OutputType(send-message) should report not declared")
	}

	// Unknown types declare nothing.
	if _, ok := InputType("mystery"); ok {
		t.Error("InputType(mystery) should report not declared")
	}
}

func TestCompatible(t *testing.T) {
	cases := []struct {
		out, in string
		want    bool
	}{
		{TypePayload, TypePayload, true},
		{TypeEvent, TypePayload, false},
		{TypeEvent, TypeAny, true},
		{TypeAny, TypeSignal, true},
		{TypeSignal, TypePayload, false},
	}
	for _, c := range cases {
		if got := Compatible(c.out, c.in); got != c.want {
			t.Errorf("Compatible(%q, %q) = %v, want %v", c.out, c.in, got, c.want)
		}
	}
}

func TestTypes_CoversTable(t *testing.T) {
	types := Types()
	if len(types) != 24 {
		t.Errorf("Types() returned %d entries, want 24", len(types))
	}
	for _, nodeType := range types {
		if !Known(nodeType) {
			t.Errorf("Types() returned unknown type %q", nodeType)
		}
	}
}
