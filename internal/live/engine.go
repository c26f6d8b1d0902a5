package live

import (
	"context"
	"log/slog"
	"sync"

	"github.com/MikeSquared-Agency/mirror/internal/model"
	"github.com/MikeSquared-Agency/mirror/internal/store"
)

// Renderer regenerates the analytics output from the export directory.
type Renderer interface {
	Render(ctx context.Context) error
}

// Engine merges buffered live messages into persisted export documents.
// Appends are deduplicated against a bounded lookback window over the
// tail of the existing document; that bounds per-merge cost on large
// channels at the (accepted) risk of re-appending a message that arrived
// out of order more than a window's worth of messages ago.
type Engine struct {
	store    *store.Store
	buf      *Buffer
	renderer Renderer
	window   int
	logger   *slog.Logger

	mu        sync.Mutex
	snapshots map[string]*model.Export // in-memory copy of persisted documents
}

func NewEngine(st *store.Store, buf *Buffer, renderer Renderer, window int, logger *slog.Logger) *Engine {
	return &Engine{
		store:     st,
		buf:       buf,
		renderer:  renderer,
		window:    window,
		logger:    logger,
		snapshots: make(map[string]*model.Export),
	}
}

// Seed installs a freshly exported document as the in-memory base for a
// channel, replacing whatever the engine had loaded before.
func (e *Engine) Seed(channelID string, ex *model.Export) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snapshots[channelID] = ex
}

// Merge reconciles every buffered channel with its persisted document and
// invokes the renderer once. A channel with no persisted base keeps its
// buffer for a later cycle; a fabricated base is never created.
func (e *Engine) Merge(ctx context.Context) error {
	drained := e.buf.Drain()
	if len(drained) == 0 {
		return nil
	}

	merged := 0
	appended := 0
	for channelID, msgs := range drained {
		ex, err := e.base(channelID)
		if err != nil {
			e.logger.Error("failed to load persisted export", "channel", channelID, "error", err)
			e.buf.Requeue(channelID, msgs)
			continue
		}
		if ex == nil {
			e.logger.Debug("no persisted base for channel, holding buffer", "channel", channelID)
			e.buf.Requeue(channelID, msgs)
			continue
		}

		seen := recentIDs(ex.Messages, e.window)
		added := 0
		for _, m := range msgs {
			if seen[m.ID] {
				continue
			}
			ex.Messages = append(ex.Messages, m)
			seen[m.ID] = true
			added++
		}

		if err := e.store.WriteExport(channelID, ex); err != nil {
			// The snapshot already holds the appended messages; the next
			// successful write for this channel persists them.
			e.logger.Error("failed to persist merged export", "channel", channelID, "error", err)
			continue
		}
		merged++
		appended += added
	}

	e.logger.Info("live merge cycle complete", "channels", merged, "appended", appended)

	if err := e.renderer.Render(ctx); err != nil {
		e.logger.Warn("analytics render failed", "error", err)
	}
	return nil
}

// base returns the channel's document from the in-memory snapshot, loading
// it from storage on first use. (nil, nil) means no base exists.
func (e *Engine) base(channelID string) (*model.Export, error) {
	e.mu.Lock()
	if ex, ok := e.snapshots[channelID]; ok {
		e.mu.Unlock()
		return ex, nil
	}
	e.mu.Unlock()

	ex, err := e.store.ReadExport(channelID)
	if err != nil || ex == nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.snapshots[channelID] = ex
	return ex, nil
}

func recentIDs(msgs []model.Message, window int) map[string]bool {
	start := len(msgs) - window
	if start < 0 {
		start = 0
	}
	seen := make(map[string]bool, len(msgs)-start)
	for _, m := range msgs[start:] {
		seen[m.ID] = true
	}
	return seen
}
