package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	JSRender  JSRenderConfig
	Fetch     FetchConfig
	Crawl     CrawlConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// DefaultProxy is the default proxy URL for all browser traffic.
	DefaultProxy string

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string
}

// JSRenderConfig controls the render decision and the rendering engine.
type JSRenderConfig struct {
	// Enabled turns JavaScript rendering on at all.
	Enabled bool // default: true

	// ForceJSRender renders every URL that is not excluded by NeverRender.
	ForceJSRender bool // default: false

	// MaxJSRenderPages is the cumulative render ceiling of one engine.
	MaxJSRenderPages int // default: 100

	// DefaultViewport is "mobile" or "desktop".
	DefaultViewport string // default: "mobile"

	// Timeout is the overall per-render timeout.
	Timeout time.Duration // default: 30s

	// BlockResources lists resource types aborted during rendering.
	// Allowed: image, stylesheet, font, media. default: none
	BlockResources []string

	// AlwaysRender and NeverRender are URL glob lists. NeverRender wins.
	AlwaysRender []string
	NeverRender  []string

	// PatternsFile is an optional YAML file adding always/never globs.
	PatternsFile string

	// SeoReadySignals lists the signals the SEO-ready wait requires.
	SeoReadySignals []string // default: ["title", "h1"]

	// SeoReadyMaxWait bounds the SEO-ready poll.
	SeoReadyMaxWait time.Duration // default: 10s

	// SeoReadyPollInterval is the poll period of the SEO-ready wait.
	SeoReadyPollInterval time.Duration // default: 250ms

	// StabilityQuiet is the mutation-free period that counts as stable.
	StabilityQuiet time.Duration // default: 500ms

	// StabilityTimeout bounds the DOM stabilization phase.
	StabilityTimeout time.Duration // default: 5s

	// BatchConcurrency is the chunk size of RenderBatch.
	BatchConcurrency int // default: 3
}

// FetchConfig controls the raw HTTP fetch.
type FetchConfig struct {
	// Timeout is the per-request deadline.
	Timeout time.Duration // default: 15s

	// UserAgent overrides the default Chrome user agent.
	UserAgent string

	// MaxBodyBytes caps the decoded response body.
	MaxBodyBytes int64 // default: 10 MiB
}

// CrawlConfig controls the orchestrator.
type CrawlConfig struct {
	// BatchConcurrency bounds CrawlBatch.
	BatchConcurrency int // default: 5

	// DiffByDefault enables the raw-vs-rendered diff when a request does not say.
	DiffByDefault bool // default: true
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// CacheConfig controls the crawl response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached responses.
	MaxEntries int // default: 1000

	// TTL is the hard expiry of an entry regardless of max_age.
	TTL time.Duration // default: 1h
}

// WebhookConfig controls batch completion callbacks.
type WebhookConfig struct {
	// Timeout is the per-attempt HTTP deadline.
	Timeout time.Duration // default: 10s

	// RetryDelays is the delay before each delivery attempt.
	RetryDelays []time.Duration // default: [0s, 1s, 5s, 30s]
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"

	// File, when set, also writes logs to a rotating file.
	File       string
	MaxSizeMB  int // default: 100
	MaxBackups int // default: 5
	MaxAgeDays int // default: 28
}

// URLPatterns is the YAML layout of JSRENDER_PATTERNS_FILE.
type URLPatterns struct {
	AlwaysRender []string `yaml:"always_render"`
	NeverRender  []string `yaml:"never_render"`
}

// Load reads configuration from environment variables with sane defaults.
// A patterns file, if configured, is merged into the URL glob lists.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: envOr("JSRENDER_HOST", "0.0.0.0"),
			Port: envIntOr("JSRENDER_PORT", 8080),
			Mode: envOr("JSRENDER_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:     envBoolOr("JSRENDER_HEADLESS", true),
			DefaultProxy: os.Getenv("JSRENDER_PROXY"),
			NoSandbox:    envBoolOr("JSRENDER_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("JSRENDER_BROWSER_BIN"),
		},
		JSRender: JSRenderConfig{
			Enabled:              envBoolOr("JSRENDER_ENABLED", true),
			ForceJSRender:        envBoolOr("JSRENDER_FORCE", false),
			MaxJSRenderPages:     envIntOr("JSRENDER_MAX_PAGES", 100),
			DefaultViewport:      envOr("JSRENDER_VIEWPORT", "mobile"),
			Timeout:              envDurationOr("JSRENDER_TIMEOUT", 30*time.Second),
			BlockResources:       envSliceOr("JSRENDER_BLOCK_RESOURCES", nil),
			AlwaysRender:         envSliceOr("JSRENDER_ALWAYS_RENDER", nil),
			NeverRender:          envSliceOr("JSRENDER_NEVER_RENDER", nil),
			PatternsFile:         os.Getenv("JSRENDER_PATTERNS_FILE"),
			SeoReadySignals:      envSliceOr("JSRENDER_SEO_READY_SIGNALS", []string{"title", "h1"}),
			SeoReadyMaxWait:      envDurationOr("JSRENDER_SEO_READY_MAX_WAIT", 10*time.Second),
			SeoReadyPollInterval: envDurationOr("JSRENDER_SEO_READY_POLL", 250*time.Millisecond),
			StabilityQuiet:       envDurationOr("JSRENDER_STABILITY_QUIET", 500*time.Millisecond),
			StabilityTimeout:     envDurationOr("JSRENDER_STABILITY_TIMEOUT", 5*time.Second),
			BatchConcurrency:     envIntOr("JSRENDER_BATCH_CONCURRENCY", 3),
		},
		Fetch: FetchConfig{
			Timeout:      envDurationOr("JSRENDER_FETCH_TIMEOUT", 15*time.Second),
			UserAgent:    os.Getenv("JSRENDER_USER_AGENT"),
			MaxBodyBytes: int64(envIntOr("JSRENDER_FETCH_MAX_BYTES", 10<<20)),
		},
		Crawl: CrawlConfig{
			BatchConcurrency: envIntOr("JSRENDER_CRAWL_CONCURRENCY", 5),
			DiffByDefault:    envBoolOr("JSRENDER_DIFF_DEFAULT", true),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("JSRENDER_AUTH_ENABLED", true),
			APIKeys: envSliceOr("JSRENDER_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("JSRENDER_RATE_RPS", 5.0),
			Burst:             envIntOr("JSRENDER_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("JSRENDER_CACHE_MAX_ENTRIES", 1000),
			TTL:        envDurationOr("JSRENDER_CACHE_TTL", time.Hour),
		},
		Webhook: WebhookConfig{
			Timeout: envDurationOr("JSRENDER_WEBHOOK_TIMEOUT", 10*time.Second),
			RetryDelays: envDurationSliceOr("JSRENDER_WEBHOOK_RETRY_DELAYS",
				[]time.Duration{0, time.Second, 5 * time.Second, 30 * time.Second}),
		},
		Log: LogConfig{
			Level:      envOr("JSRENDER_LOG_LEVEL", "info"),
			Format:     envOr("JSRENDER_LOG_FORMAT", "json"),
			File:       os.Getenv("JSRENDER_LOG_FILE"),
			MaxSizeMB:  envIntOr("JSRENDER_LOG_MAX_SIZE_MB", 100),
			MaxBackups: envIntOr("JSRENDER_LOG_MAX_BACKUPS", 5),
			MaxAgeDays: envIntOr("JSRENDER_LOG_MAX_AGE_DAYS", 28),
		},
	}

	if cfg.JSRender.PatternsFile != "" {
		p, err := LoadPatterns(cfg.JSRender.PatternsFile)
		if err != nil {
			return nil, err
		}
		cfg.JSRender.AlwaysRender = append(cfg.JSRender.AlwaysRender, p.AlwaysRender...)
		cfg.JSRender.NeverRender = append(cfg.JSRender.NeverRender, p.NeverRender...)
	}

	if err := cfg.JSRender.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadPatterns reads always/never render globs from a YAML file.
func LoadPatterns(path string) (*URLPatterns, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read patterns file: %w", err)
	}
	var p URLPatterns
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("config: parse patterns file %s: %w", path, err)
	}
	return &p, nil
}

var (
	validViewports = map[string]bool{"mobile": true, "desktop": true}
	validResources = map[string]bool{"image": true, "stylesheet": true, "font": true, "media": true}
	validSignals   = map[string]bool{"title": true, "meta_description": true, "h1": true, "canonical": true}
)

// Validate rejects values outside the closed sets the renderer understands.
func (c *JSRenderConfig) Validate() error {
	if !validViewports[c.DefaultViewport] {
		return fmt.Errorf("config: invalid viewport %q (want mobile or desktop)", c.DefaultViewport)
	}
	for i, r := range c.BlockResources {
		r = strings.ToLower(r)
		if !validResources[r] {
			return fmt.Errorf("config: invalid blocked resource type %q", r)
		}
		c.BlockResources[i] = r
	}
	for _, s := range c.SeoReadySignals {
		if !validSignals[s] {
			return fmt.Errorf("config: invalid SEO-ready signal %q", s)
		}
	}
	if c.MaxJSRenderPages < 0 {
		return fmt.Errorf("config: max render pages must be >= 0, got %d", c.MaxJSRenderPages)
	}
	if c.BatchConcurrency < 1 {
		c.BatchConcurrency = 3
	}
	return nil
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}

func envDurationSliceOr(key string, fallback []time.Duration) []time.Duration {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]time.Duration, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				if d, err := time.ParseDuration(trimmed); err == nil {
					result = append(result, d)
				}
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
