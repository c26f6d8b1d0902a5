package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"MIRROR_TOKEN", "MIRROR_GUILD_ID", "MIRROR_EXPORT_DIR", "MIRROR_ANALYTICS_DIR",
		"MIRROR_SAVE_PATH", "MIRROR_WORKERS", "MIRROR_EXCLUDED_CHANNELS",
		"MIRROR_FULL_INTERVAL", "MIRROR_FULL_CHECK", "MIRROR_LIVE_INTERVAL",
		"MIRROR_DEDUP_WINDOW", "MIRROR_PORT", "NATS_URL", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ExportDir != "exports" {
		t.Errorf("expected default export dir, got %s", cfg.ExportDir)
	}
	if cfg.AnalyticsDir != "analytics" {
		t.Errorf("expected default analytics dir, got %s", cfg.AnalyticsDir)
	}
	if cfg.SavePath != "save.json" {
		t.Errorf("expected default save path, got %s", cfg.SavePath)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected default workers 4, got %d", cfg.Workers)
	}
	if cfg.FullInterval != 7*24*time.Hour {
		t.Errorf("expected default full interval of one week, got %s", cfg.FullInterval)
	}
	if cfg.LiveInterval != 5*time.Minute {
		t.Errorf("expected default live interval 5m, got %s", cfg.LiveInterval)
	}
	if cfg.DedupWindow != 1000 {
		t.Errorf("expected default dedup window 1000, got %d", cfg.DedupWindow)
	}
	if cfg.Port != 8760 {
		t.Errorf("expected default port 8760, got %d", cfg.Port)
	}
	if len(cfg.ExcludedChannels) != 0 {
		t.Errorf("expected no excluded channels, got %v", cfg.ExcludedChannels)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("MIRROR_TOKEN", "test-token")
	t.Setenv("MIRROR_GUILD_ID", "123456789")
	t.Setenv("MIRROR_WORKERS", "8")
	t.Setenv("MIRROR_EXCLUDED_CHANNELS", "111, 222,333")
	t.Setenv("MIRROR_FULL_INTERVAL", "24h")
	t.Setenv("MIRROR_LIVE_INTERVAL", "30s")
	t.Setenv("MIRROR_DEDUP_WINDOW", "50")
	t.Setenv("NATS_URL", "nats://broker:4222")

	cfg := Load()

	if cfg.Token != "test-token" {
		t.Errorf("expected token, got %s", cfg.Token)
	}
	if cfg.GuildID != "123456789" {
		t.Errorf("expected guild id, got %s", cfg.GuildID)
	}
	if cfg.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Workers)
	}
	if len(cfg.ExcludedChannels) != 3 || cfg.ExcludedChannels[1] != "222" {
		t.Errorf("expected three excluded channels, got %v", cfg.ExcludedChannels)
	}
	if cfg.FullInterval != 24*time.Hour {
		t.Errorf("expected 24h full interval, got %s", cfg.FullInterval)
	}
	if cfg.LiveInterval != 30*time.Second {
		t.Errorf("expected 30s live interval, got %s", cfg.LiveInterval)
	}
	if cfg.DedupWindow != 50 {
		t.Errorf("expected dedup window 50, got %d", cfg.DedupWindow)
	}
	if cfg.NatsURL != "nats://broker:4222" {
		t.Errorf("expected nats url, got %s", cfg.NatsURL)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("MIRROR_WORKERS", "not-a-number")
	t.Setenv("MIRROR_FULL_INTERVAL", "eventually")

	cfg := Load()

	if cfg.Workers != 4 {
		t.Errorf("expected fallback workers 4, got %d", cfg.Workers)
	}
	if cfg.FullInterval != 7*24*time.Hour {
		t.Errorf("expected fallback full interval, got %s", cfg.FullInterval)
	}
}
