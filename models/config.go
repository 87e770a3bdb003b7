package models

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all environment-derived runtime configuration. It is built
// once at startup and passed down; nothing in the pipeline reads the
// environment directly.
type Config struct {
	// Planner
	Mode        string
	WorkerCount int

	// Indexability rules
	PriorityServices  []string
	AllowlistSuburbs  []string
	MinWords          int
	RequireLocalProof bool

	// Emitter / sitemap
	SitemapMaxURLs int
	BaseURL        string
	Revalidate     time.Duration

	// Content source + fallback chain
	ContentAPIURL        string
	ContentTimeout       time.Duration
	SnapshotDBPath       string
	PracticeDefaultsPath string
}

// LoadConfig reads the recognized environment variables, applying defaults
// for anything unset. Call godotenv.Load before this if a .env file should
// participate.
func LoadConfig() *Config {
	return &Config{
		Mode:                 envString("GENERATION_MODE", StrategyPriority),
		WorkerCount:          envInt("WORKER_COUNT", 8),
		PriorityServices:     envList("INDEX_PRIORITY_SERVICES"),
		AllowlistSuburbs:     envList("INDEX_ALLOWLIST_SUBURBS"),
		MinWords:             envInt("INDEX_MIN_WORDS", 350),
		RequireLocalProof:    envBool("INDEX_REQUIRE_LOCAL_PROOF", false),
		SitemapMaxURLs:       envInt("SITEMAP_MAX_URLS", 2000),
		BaseURL:              envString("BASE_URL", "https://www.arnolddental.co.uk"),
		Revalidate:           time.Duration(envInt("REVALIDATE_SECONDS", 3600)) * time.Second,
		ContentAPIURL:        envString("CONTENT_API_URL", "http://localhost:4000"),
		ContentTimeout:       time.Duration(envInt("CONTENT_API_TIMEOUT_MS", 2000)) * time.Millisecond,
		SnapshotDBPath:       envString("SNAPSHOT_DB_PATH", ""),
		PracticeDefaultsPath: envString("PRACTICE_DEFAULTS_PATH", ""),
	}
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// envList parses a comma-separated value into lower-cased, trimmed slugs.
func envList(key string) []string {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
