package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Workflow Serialization API
// =============================================================================

// Marshal converts a workflow to pretty-printed JSON bytes.
// Node and connection order is preserved exactly; it is part of the model.
func Marshal(w *Workflow) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(w, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a workflow.
func Unmarshal(data []byte) (*Workflow, error) {
	return readFrom(bytes.NewReader(data))
}

// Write writes a workflow as JSON to an io.Writer.
func Write(w *Workflow, out io.Writer) error {
	return writeTo(w, out)
}

// Read decodes a JSON workflow from an io.Reader.
func Read(r io.Reader) (*Workflow, error) {
	return readFrom(r)
}

// WriteFile writes a workflow to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(w *Workflow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(w, f)
}

// ReadFile reads a JSON file and returns the decoded workflow.
func ReadFile(path string) (*Workflow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(w *Workflow, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(w); err != nil {
		return fmt.Errorf("encode workflow: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (*Workflow, error) {
	var w Workflow
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("decode workflow: %w", err)
	}
	// A zero zoom means the document predates viewport persistence or was
	// hand-edited; treat it as identity rather than a degenerate transform.
	if w.Viewport.Zoom == 0 {
		w.Viewport.Zoom = 1.0
	}
	return &w, nil
}

// ContentHash returns a deterministic JSON encoding of the graph topology
// and positions, suitable for cache keys. Transient UI flags are included
// deliberately: they do not affect layout, but hashing the full document is
// simpler and false cache misses are harmless.
func ContentHash(w *Workflow) ([]byte, error) {
	return json.Marshal(w)
}
