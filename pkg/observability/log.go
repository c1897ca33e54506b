package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event as a debug line to Logger.
type LogHooks struct {
	Logger *log.Logger
}

var (
	_ CacheHooks = LogHooks{}
	_ HTTPHooks  = LogHooks{}
	_ HoverHooks = LogHooks{}
)

// NewLogHooks returns hooks that log to logger, or to log.Default() if nil.
func NewLogHooks(logger *log.Logger) LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return LogHooks{Logger: logger.WithPrefix("events")}
}

// Install registers h for every category.
func (h LogHooks) Install() {
	Install(Hooks{Cache: h, HTTP: h, Hover: h})
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "provider", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "provider", keyType)
}

func (h LogHooks) OnCacheEvict(_ context.Context, keyType string, age time.Duration) {
	h.Logger.Debug("cache evict", "provider", keyType, "age", age.Round(time.Second))
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "provider", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("http error", "method", method, "host", host, "path", path, "error", err)
}

func (h LogHooks) OnShown(link string, generation uint64, failed bool) {
	h.Logger.Debug("card shown", "link", link, "gen", generation, "failed", failed)
}

func (h LogHooks) OnDiscarded(link string, generation, current uint64) {
	h.Logger.Debug("response discarded", "link", link, "gen", generation, "current", current)
}
