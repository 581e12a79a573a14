package catalog

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend  string `toml:"backend"`
	Path     string `toml:"path"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Open returns the store described by cfg. An empty backend means badger
// when a path is set and memory otherwise.
func Open(ctx context.Context, cfg Config) (Store, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = BackendMemory
		if cfg.Path != "" {
			backend = BackendBadger
		}
	}
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendBadger:
		s, err := OpenBadger(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("mongo backend requires mongo_uri")
		}
		s, err := OpenMongo(ctx, cfg.MongoURI, cfg.Database)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
