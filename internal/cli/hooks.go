package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logGraphHooks forwards graph generation events to the CLI logger.
type logGraphHooks struct {
	logger *log.Logger
}

func (h *logGraphHooks) OnGraphStart(_ context.Context, dir string) {
	h.logger.Debug("graph start", "dir", dir)
}

func (h *logGraphHooks) OnGraphComplete(_ context.Context, dir string, nodes, edges int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Error("graph failed", "dir", dir, "err", err)
		return
	}
	h.logger.Debug("graph complete", "dir", dir, "nodes", nodes, "edges", edges, "duration", duration.Round(time.Millisecond))
}

func (h *logGraphHooks) OnDirectorySkipped(_ context.Context, dir string) {
	h.logger.Warn("directory skipped", "dir", dir)
}

func (h *logGraphHooks) OnRelationCreated(_ context.Context, name string) {
	h.logger.Debug("relation created", "name", name)
}

// logCacheHooks forwards cache events to the CLI logger.
type logCacheHooks struct {
	logger *log.Logger
}

func (h *logCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
