package cache

// ScopedKeyer wraps a Keyer with a prefix so separate deployments can
// share one backend without key collisions:
//
//	apiKeyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key the
// inner keyer produces. A nil inner falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SearchKey returns the inner search key with the scope prefix.
func (k *ScopedKeyer) SearchKey(graphHash string, opts SearchKeyOpts) string {
	return k.prefix + k.inner.SearchKey(graphHash, opts)
}
