package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MikeSquared-Agency/mirror/internal/api"
	"github.com/MikeSquared-Agency/mirror/internal/cache"
	"github.com/MikeSquared-Agency/mirror/internal/config"
	"github.com/MikeSquared-Agency/mirror/internal/discord"
	"github.com/MikeSquared-Agency/mirror/internal/events"
	"github.com/MikeSquared-Agency/mirror/internal/export"
	"github.com/MikeSquared-Agency/mirror/internal/live"
	"github.com/MikeSquared-Agency/mirror/internal/render"
	"github.com/MikeSquared-Agency/mirror/internal/scheduler"
	"github.com/MikeSquared-Agency/mirror/internal/store"

	"github.com/bwmarrin/discordgo"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("mirror starting", "guild", cfg.GuildID, "export_dir", cfg.ExportDir)

	if cfg.Token == "" {
		slog.Error("MIRROR_TOKEN is required")
		os.Exit(1)
	}
	if cfg.GuildID == "" {
		slog.Error("MIRROR_GUILD_ID is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Watermark, created with a zero value when absent so the first full
	// export triggers immediately.
	save, err := store.LoadSave(cfg.SavePath)
	if err != nil {
		slog.Error("failed to load save file", "error", err)
		os.Exit(1)
	}

	st, err := store.New(cfg.ExportDir)
	if err != nil {
		slog.Error("failed to open export store", "error", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.AnalyticsDir, 0o755); err != nil {
		slog.Error("failed to create analytics directory", "error", err)
		os.Exit(1)
	}

	client, err := discord.New(cfg.Token, cfg.GuildID, slog.Default())
	if err != nil {
		slog.Error("failed to create discord client", "error", err)
		os.Exit(1)
	}
	if err := client.Open(); err != nil {
		slog.Error("failed to connect to discord", "error", err)
		os.Exit(1)
	}
	defer client.Close()
	slog.Info("connected to discord")

	// No export semantics can be satisfied without the guild.
	guild, err := client.Guild(ctx)
	if err != nil {
		slog.Error("could not find export guild", "guild", cfg.GuildID, "error", err)
		os.Exit(1)
	}

	// Full exports project usernames only; the live path keeps display
	// names, matching what readers see at event time.
	exportCache := cache.New(client, guild, true)
	exporter := export.NewExporter(client, client, export.NewTransformer(exportCache, client), guild)
	liveTransformer := export.NewTransformer(cache.New(client, guild, false), client)

	buf := live.NewBuffer()
	renderer := render.New(cfg.ExportDir, cfg.AnalyticsDir, slog.Default())
	engine := live.NewEngine(st, buf, renderer, cfg.DedupWindow, slog.Default())

	// Completion events are optional; the mirror runs fine without a
	// broker.
	var pub scheduler.Publisher
	if cfg.NatsURL != "" {
		ev, err := events.NewClient(cfg.NatsURL, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer ev.Close()
		pub = ev
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured, running without completion events")
	}

	excluded := make(map[string]bool, len(cfg.ExcludedChannels))
	for _, id := range cfg.ExcludedChannels {
		excluded[id] = true
	}

	sched := scheduler.New(
		scheduler.Config{
			Workers:      cfg.Workers,
			FullInterval: cfg.FullInterval,
			FullCheck:    cfg.FullCheck,
			LiveInterval: cfg.LiveInterval,
			Excluded:     excluded,
		},
		client, exporter, engine, buf, save, st, pub, slog.Default(),
	)

	// Real-time ingestion: transform eagerly, buffer per channel. Never
	// blocked by export or merge work.
	client.OnMessageCreate(func(m *discordgo.Message) {
		msg, err := liveTransformer.Transform(ctx, m)
		if err != nil {
			slog.Warn("failed to transform live message", "channel", m.ChannelID, "message", m.ID, "error", err)
			return
		}
		buf.Ingest(m.ChannelID, msg)
	})

	srv := api.NewServer(cfg.Port, func() api.Status {
		return api.Status{
			LastFullExport:   save.LastFullExport().Unix(),
			Busy:             sched.Busy(),
			BufferedChannels: buf.ChannelCount(),
			LastRunID:        sched.LastRunID(),
		}
	})
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		if err := sched.Run(ctx); err != nil && err != context.Canceled {
			slog.Error("scheduler error", "error", err)
		}
	}()

	slog.Info("mirror ready", "workers", cfg.Workers, "dedup_window", cfg.DedupWindow)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("mirror stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
