package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Token            string
	GuildID          string
	ExportDir        string
	AnalyticsDir     string
	SavePath         string
	Workers          int
	ExcludedChannels []string
	FullInterval     time.Duration // watermark cadence between full exports
	FullCheck        time.Duration // tick interval for the full-export gate
	LiveInterval     time.Duration // tick interval for live merges
	DedupWindow      int           // lookback window for merge dedup, in messages
	Port             int
	NatsURL          string
	LogLevel         string
}

func Load() Config {
	return Config{
		Token:            envStr("MIRROR_TOKEN", ""),
		GuildID:          envStr("MIRROR_GUILD_ID", ""),
		ExportDir:        envStr("MIRROR_EXPORT_DIR", "exports"),
		AnalyticsDir:     envStr("MIRROR_ANALYTICS_DIR", "analytics"),
		SavePath:         envStr("MIRROR_SAVE_PATH", "save.json"),
		Workers:          envInt("MIRROR_WORKERS", 4),
		ExcludedChannels: envList("MIRROR_EXCLUDED_CHANNELS"),
		FullInterval:     envDur("MIRROR_FULL_INTERVAL", 7*24*time.Hour),
		FullCheck:        envDur("MIRROR_FULL_CHECK", time.Minute),
		LiveInterval:     envDur("MIRROR_LIVE_INTERVAL", 5*time.Minute),
		DedupWindow:      envInt("MIRROR_DEDUP_WINDOW", 1000),
		Port:             envInt("MIRROR_PORT", 8760),
		NatsURL:          envStr("NATS_URL", ""),
		LogLevel:         envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
