package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// nodeTypeRegex matches valid node type keys: lowercase kebab-case.
var nodeTypeRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// ValidateNodeType validates a node type key.
// It checks the key shape only; whether the type exists in the catalog is a
// separate concern.
func ValidateNodeType(nodeType string) error {
	if nodeType == "" {
		return New(ErrCodeInvalidNodeType, "node type cannot be empty")
	}
	if len(nodeType) > 64 {
		return New(ErrCodeInvalidNodeType, "node type too long (max 64 characters)")
	}
	if !nodeTypeRegex.MatchString(nodeType) {
		return New(ErrCodeInvalidNodeType, "invalid node type: %q (must be lowercase kebab-case)", nodeType)
	}
	return nil
}

// ValidateNodeName validates a node display name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "node name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "node name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node name contains invalid control characters")
		}
	}
	return nil
}

// portNameRegex matches valid port names: a bare identifier, lowercase.
var portNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidatePortName validates a logical port name on a node.
func ValidatePortName(port string) error {
	if port == "" {
		return New(ErrCodeInvalidPort, "port name cannot be empty")
	}
	if !portNameRegex.MatchString(port) {
		return New(ErrCodeInvalidPort, "invalid port name: %q", port)
	}
	return nil
}

// ValidateWorkflowPath validates a workflow document path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateWorkflowPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
