package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, failures at
// error level. It implements all hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger, or to the default charm
// logger when nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

// Register installs h for every event category.
func (h *LogHooks) Register() {
	SetComputeHooks(h)
	SetCacheHooks(h)
	SetCatalogHooks(h)
}

func (h *LogHooks) OnComputeStart(_ context.Context, vertices, edges int) {
	h.logger.Debug("compute start", "vertices", vertices, "edges", edges)
}

func (h *LogHooks) OnComputeComplete(_ context.Context, vertices int, subsets uint64, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("compute failed", "vertices", vertices, "elapsed", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("compute done", "vertices", vertices, "subsets", subsets, "elapsed", d.Round(time.Microsecond))
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRecord(_ context.Context, id string, created bool) {
	h.logger.Debug("catalog record", "id", id, "created", created)
}

func (h *LogHooks) OnEqualFound(_ context.Context, id string, count int) {
	h.logger.Info("equal csf found", "id", id, "others", count)
}
