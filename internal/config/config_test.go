package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(configPathEnv, "")
	t.Setenv(databaseDSNEnv, "")
	t.Setenv(openAIKeyEnv, "")
	t.Setenv(openAIModelEnv, "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Scheduler.FetchInterval() != 4*time.Hour {
		t.Fatalf("unexpected fetch interval: %v", cfg.Scheduler.FetchInterval())
	}
	if cfg.Scheduler.SummaryHour != 6 || cfg.Scheduler.SummaryMinute != 0 {
		t.Fatalf("unexpected summary time: %02d:%02d", cfg.Scheduler.SummaryHour, cfg.Scheduler.SummaryMinute)
	}
	if cfg.Scraping.ArticlesPerSource != 20 {
		t.Fatalf("unexpected per-source cap: %d", cfg.Scraping.ArticlesPerSource)
	}
	if cfg.Scraping.Lookback() != 24*time.Hour {
		t.Fatalf("unexpected lookback: %v", cfg.Scraping.Lookback())
	}

	if len(cfg.Sources) != 3 {
		t.Fatalf("expected 3 default sources, got %d", len(cfg.Sources))
	}
	strategies := map[string]string{}
	for _, src := range cfg.Sources {
		if !src.Enabled {
			t.Fatalf("default source %s must be enabled", src.Name)
		}
		strategies[src.Name] = src.Strategy
	}
	if strategies["OpenAI"] != StrategyFeed || strategies["Anthropic"] != StrategyNewsList || strategies["DeepMind"] != StrategyBlogLinks {
		t.Fatalf("unexpected default strategies: %v", strategies)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	clearEnv(t)

	raw := []byte(`
logging:
  level: warn
scheduler:
  fetchIntervalHours: 8
  summaryHour: 7
  summaryMinute: 30
openai:
  model: gpt-4o
sources:
  - name: Example
    url: https://example.com/feed.xml
    strategy: feed
    enabled: true
`)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(databaseDSNEnv, "postgres://env-wins@localhost/newsbuddy")

	cfg := Load()

	if cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected log level: %s", cfg.Logging.Level)
	}
	if cfg.Scheduler.FetchInterval() != 8*time.Hour {
		t.Fatalf("unexpected fetch interval: %v", cfg.Scheduler.FetchInterval())
	}
	if cfg.Scheduler.SummaryHour != 7 || cfg.Scheduler.SummaryMinute != 30 {
		t.Fatalf("unexpected summary time: %02d:%02d", cfg.Scheduler.SummaryHour, cfg.Scheduler.SummaryMinute)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("unexpected model: %s", cfg.OpenAI.Model)
	}
	if cfg.Database.DSN != "postgres://env-wins@localhost/newsbuddy" {
		t.Fatalf("environment must override the file, got %s", cfg.Database.DSN)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].Name != "Example" {
		t.Fatalf("file sources must replace defaults, got %+v", cfg.Sources)
	}
}

func TestLoadUnreadableFileFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()
	if len(cfg.Sources) != 3 {
		t.Fatalf("expected default sources on unreadable file, got %d", len(cfg.Sources))
	}
}
