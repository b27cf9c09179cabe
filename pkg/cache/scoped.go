package cache

import "strings"

// ScopedKeyer prefixes every key of an inner [Keyer] with a scope, so that
// staging and production can share one Redis or MongoDB without reading
// each other's packings.
type ScopedKeyer struct {
	inner Keyer
	scope string
}

// NewScopedKeyer scopes inner (the [DefaultKeyer] when nil). A trailing
// colon is added to scope if it has none.
func NewScopedKeyer(inner Keyer, scope string) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if scope != "" && !strings.HasSuffix(scope, ":") {
		scope += ":"
	}
	return &ScopedKeyer{inner: inner, scope: scope}
}

// Scope returns the prefix, colon included.
func (k *ScopedKeyer) Scope() string { return k.scope }

func (k *ScopedKeyer) PackingKey(mapHash string, opts PackingKeyOpts) string {
	return k.scope + k.inner.PackingKey(mapHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(packingKey string, opts ArtifactKeyOpts) string {
	return k.scope + k.inner.ArtifactKey(packingKey, opts)
}

var _ Keyer = (*ScopedKeyer)(nil)
