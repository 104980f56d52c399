package cache

// ScopedKeyer wraps a Keyer with a prefix. The server uses it to keep its
// entries apart from other users of a shared Redis database:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "imageforge:")
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

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(programHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(programHash, opts)
}
