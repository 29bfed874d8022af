package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level.
// It implements [PipelineHooks], [CacheHooks] and [HTTPHooks].
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger. The logger is prefixed
// with "hooks".
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

// RegisterAll installs h for every hook category.
func (h *LogHooks) RegisterAll() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnFetchStart(_ context.Context, source, orgUUID string) {
	h.logger.Debug("fetch start", "source", source, "org", orgUUID)
}

func (h *LogHooks) OnFetchComplete(_ context.Context, source, orgUUID string, orgCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fetch failed", "source", source, "org", orgUUID, "duration", d, "err", err)
		return
	}
	h.logger.Debug("fetch complete", "source", source, "org", orgUUID, "orgs", orgCount, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, rootID string, depthLimit int) {
	h.logger.Debug("layout start", "root", rootID, "depth", depthLimit)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, rootID string, nodeCount int, d time.Duration) {
	h.logger.Debug("layout complete", "root", rootID, "nodes", nodeCount, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render complete", "formats", formats, "duration", d, "err", err)
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

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
