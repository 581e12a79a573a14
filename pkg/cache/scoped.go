package cache

// ScopedKeyer prepends a fixed namespace to every key of an inner Keyer.
// The API server uses it to keep its entries apart from the CLI's when both
// share one Redis instance:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// TableKey returns the inner table key with the prefix.
func (k *ScopedKeyer) TableKey(graphKey string) string {
	return k.prefix + k.inner.TableKey(graphKey)
}

// PlotKey returns the inner plot key with the prefix.
func (k *ScopedKeyer) PlotKey(graphKey string, opts PlotKeyOpts) string {
	return k.prefix + k.inner.PlotKey(graphKey, opts)
}
