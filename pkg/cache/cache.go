// Package cache stores computed power-sum tables and rendered plots so that
// repeated requests for the same graph skip the subset enumeration.
//
// Backends implement [Cache]; keys are derived by a [Keyer] from the
// canonical form of the graph, so isomorphic inputs share an entry.
package cache

import (
	"context"
	"time"
)

// Default lifetimes. A power-sum table never changes for a given canonical
// graph, so tables live much longer than plots, whose styling may change
// between releases.
const (
	TTLTable = 90 * 24 * time.Hour
	TTLPlot  = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss with ok=false and a nil error. A ttl of zero means the
// entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// TableKey is the key for the power-sum table of the graph whose
	// canonical form is graphKey.
	TableKey(graphKey string) string
	// PlotKey is the key for a rendered plot of graphKey.
	PlotKey(graphKey string, opts PlotKeyOpts) string
}

// PlotKeyOpts holds the rendering options that change a plot's bytes.
type PlotKeyOpts struct {
	Format string `json:"format"`
	Title  string `json:"title,omitempty"`
	Layout string `json:"layout,omitempty"`
}

// DefaultKeyer hashes the key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// TableKey returns "table:<sha256>".
func (DefaultKeyer) TableKey(graphKey string) string {
	return hashKey("table", graphKey)
}

// PlotKey returns "plot:<sha256>".
func (DefaultKeyer) PlotKey(graphKey string, opts PlotKeyOpts) string {
	return hashKey("plot", graphKey, opts)
}
