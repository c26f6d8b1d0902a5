// Package scheduler orchestrates the weekly full export and the periodic
// live merge. The two never run concurrently: a single busy flag guards
// both, and each tick checks it before dispatching work, so a stalled
// export never wedges the tick loop itself.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/mirror/internal/live"
	"github.com/MikeSquared-Agency/mirror/internal/model"
	"github.com/MikeSquared-Agency/mirror/internal/store"
)

// ChannelLister enumerates export-eligible channels.
type ChannelLister interface {
	EligibleChannels(ctx context.Context, excluded map[string]bool) ([]*discordgo.Channel, error)
}

// ChannelExporter produces a full export document for one channel, or
// (nil, nil) for a channel with no history.
type ChannelExporter interface {
	ExportChannel(ctx context.Context, ch *discordgo.Channel) (*model.Export, error)
}

// MergeEngine is the live-merge side of the pipeline.
type MergeEngine interface {
	Seed(channelID string, ex *model.Export)
	Merge(ctx context.Context) error
}

// Publisher emits completion events. A nil Publisher disables events.
type Publisher interface {
	Publish(subject string, data any) error
}

const (
	SubjectExportCompleted = "mirror.export.completed"
	SubjectMergeCompleted  = "mirror.merge.completed"
)

type Config struct {
	Workers      int
	FullInterval time.Duration
	FullCheck    time.Duration
	LiveInterval time.Duration
	Excluded     map[string]bool
}

type Scheduler struct {
	cfg      Config
	lister   ChannelLister
	exporter ChannelExporter
	engine   MergeEngine
	buf      *live.Buffer
	save     *store.SaveFile
	store    *store.Store
	events   Publisher
	logger   *slog.Logger

	busy      atomic.Bool
	mu        sync.Mutex
	lastRunID string
}

func New(cfg Config, lister ChannelLister, exporter ChannelExporter, engine MergeEngine, buf *live.Buffer, save *store.SaveFile, st *store.Store, events Publisher, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		lister:   lister,
		exporter: exporter,
		engine:   engine,
		buf:      buf,
		save:     save,
		store:    st,
		events:   events,
		logger:   logger,
	}
}

// Run drives both tick loops until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	fullTick := time.NewTicker(s.cfg.FullCheck)
	defer fullTick.Stop()
	liveTick := time.NewTicker(s.cfg.LiveInterval)
	defer liveTick.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-fullTick.C:
			s.maybeFullExport(ctx)
		case <-liveTick.C:
			s.maybeLiveMerge(ctx)
		}
	}
}

// Busy reports whether a full export or live merge is in flight.
func (s *Scheduler) Busy() bool {
	return s.busy.Load()
}

// LastRunID returns the id of the most recent full-export run.
func (s *Scheduler) LastRunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunID
}

func (s *Scheduler) maybeFullExport(ctx context.Context) {
	if !due(s.save.LastFullExport(), s.cfg.FullInterval, time.Now()) {
		return
	}
	if !s.busy.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer s.busy.Store(false)
		s.runFullExport(ctx)
	}()
}

func (s *Scheduler) maybeLiveMerge(ctx context.Context) {
	if s.buf.ChannelCount() == 0 {
		return
	}
	if !s.busy.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer s.busy.Store(false)
		if err := s.engine.Merge(ctx); err != nil {
			s.logger.Error("live merge failed", "error", err)
			return
		}
		s.publish(SubjectMergeCompleted, map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}()
}

func (s *Scheduler) runFullExport(ctx context.Context) {
	runID := uuid.New().String()
	s.mu.Lock()
	s.lastRunID = runID
	s.mu.Unlock()

	s.logger.Info("full export interval elapsed, starting full export", "run_id", runID)

	channels, err := s.lister.EligibleChannels(ctx, s.cfg.Excluded)
	if err != nil {
		s.logger.Error("failed to enumerate channels", "run_id", runID, "error", err)
		return
	}

	total := len(channels)
	sem := make(chan struct{}, s.cfg.Workers)
	var wg sync.WaitGroup
	var exported, skipped, failed atomic.Int64

	for _, ch := range channels {
		wg.Add(1)
		go func(ch *discordgo.Channel) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			ex, err := s.exporter.ExportChannel(ctx, ch)
			if err != nil {
				failed.Add(1)
				s.logger.Error("channel export failed", "run_id", runID, "channel", ch.ID, "name", ch.Name, "error", err)
				return
			}
			if ex == nil {
				skipped.Add(1)
				return
			}
			if err := s.store.WriteExport(ch.ID, ex); err != nil {
				failed.Add(1)
				s.logger.Error("failed to persist export", "run_id", runID, "channel", ch.ID, "error", err)
				return
			}
			s.engine.Seed(ch.ID, ex)
			n := exported.Add(1)
			s.logger.Info("exported channel",
				"run_id", runID,
				"progress", progress(n, total),
				"channel", ch.Name,
				"id", ch.ID,
				"messages", ex.MessageCount,
			)
		}(ch)
	}
	wg.Wait()

	if err := s.save.Advance(time.Now()); err != nil {
		s.logger.Error("failed to persist watermark", "run_id", runID, "error", err)
	}

	s.logger.Info("full export complete",
		"run_id", runID,
		"channels", total,
		"exported", exported.Load(),
		"skipped", skipped.Load(),
		"failed", failed.Load(),
	)

	s.publish(SubjectExportCompleted, map[string]any{
		"run_id":    runID,
		"channels":  total,
		"exported":  exported.Load(),
		"failed":    failed.Load(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Scheduler) publish(subject string, data any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(subject, data); err != nil {
		s.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

// due reports whether a full export should start: strictly more than the
// interval has passed since the watermark.
func due(last time.Time, interval time.Duration, now time.Time) bool {
	return now.Sub(last) > interval
}

func progress(n int64, total int) string {
	return fmt.Sprintf("%d/%d", n, total)
}
