package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. Useful
// when one Redis instance backs several projects or users and their cache
// entries must not collide.
//
// Example usage:
//
//	// Per-project keys
//	projectKeyer := NewScopedKeyer(NewDefaultKeyer(), "proj:billing:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(workflowHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(workflowHash, opts)
}

// LintKey generates a prefixed key for validation caching.
func (k *ScopedKeyer) LintKey(workflowHash string) string {
	return k.prefix + k.inner.LintKey(workflowHash)
}
