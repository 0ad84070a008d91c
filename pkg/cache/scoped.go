package cache

// ScopedKeyer prefixes every generated key. Shared backends like Redis
// put all builders in one keyspace, so keys are scoped to keep one
// application's (or one tenant's) entries apart from another's:
//
//	// one namespace per user for private dashboards
//	userKeyer := NewScopedKeyer(nil, "user:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner so all keys carry the given prefix.
// A nil inner defaults to the standard key generator.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DatasetKey generates a prefixed key for dataset caching.
func (k *ScopedKeyer) DatasetKey(source string, opts DatasetKeyOpts) string {
	return k.prefix + k.inner.DatasetKey(source, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(itemHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(itemHash, opts)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
