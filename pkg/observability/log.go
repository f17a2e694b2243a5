package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes pipeline events to a logger at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnLoad(_ context.Context, path string, entities int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "error", err)
		return
	}
	h.logger.Debug("roster loaded", "path", path, "students", entities, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, kind string, entities int) {
	h.logger.Debug("layout start", "kind", kind, "students", entities)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, kind string, nodes int, d time.Duration) {
	h.logger.Debug("layout done", "kind", kind, "nodes", nodes, "duration", d)
}

func (h *LogHooks) OnSelectStart(_ context.Context, mode string, topN int) {
	h.logger.Debug("select start", "mode", mode, "top", topN)
}

func (h *LogHooks) OnSelectComplete(_ context.Context, mode string, links int, d time.Duration) {
	h.logger.Debug("select done", "mode", mode, "links", links, "duration", d)
}
