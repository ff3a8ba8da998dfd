package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// SlowFrame is the draw time above which [Logging] reports a frame.
const SlowFrame = 16 * time.Millisecond

// Logging writes hook events to a charm logger at debug level. Frames are
// only logged when they take longer than SlowFrame.
type Logging struct {
	logger *log.Logger
}

// NewLogging returns hooks that log through logger.
func NewLogging(logger *log.Logger) *Logging {
	return &Logging{logger: logger}
}

func (l *Logging) OnFrame(_ context.Context, nodes, links int, d time.Duration) {
	if d > SlowFrame {
		l.logger.Debug("slow frame", "nodes", nodes, "links", links, "took", d)
	}
}

func (l *Logging) OnSettled(_ context.Context, ticks int) {
	l.logger.Debug("layout settled", "ticks", ticks)
}

func (l *Logging) OnOpen(_ context.Context, id int, err error) {
	if err != nil {
		l.logger.Warn("open node failed", "id", id, "error", err)
		return
	}
	l.logger.Debug("opened node", "id", id)
}

func (l *Logging) OnCacheHit(_ context.Context, keyType string) {
	l.logger.Debug("cache hit", "type", keyType)
}

func (l *Logging) OnCacheMiss(_ context.Context, keyType string) {
	l.logger.Debug("cache miss", "type", keyType)
}

func (l *Logging) OnCacheSet(_ context.Context, keyType string, size int) {
	l.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (l *Logging) OnRequest(_ context.Context, method, host, path string) {
	l.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (l *Logging) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	l.logger.Debug("response", "method", method, "path", path, "status", status, "took", d)
}

func (l *Logging) OnError(_ context.Context, method, host, path string, err error) {
	l.logger.Debug("request failed", "method", method, "host", host, "path", path, "error", err)
}
