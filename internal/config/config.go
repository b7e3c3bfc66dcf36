package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	AppURL      string
	Port        string
	AppTagline  string
	ContentPath string
	StaticPath  string

	// Blog
	BlogBasePath      string
	BlogTitle         string
	BlogDescription   string
	BlogLocale        string
	BlogDefaultAvatar string
	BlogPostsPerPage  int
	BlogFeaturedCount int

	// Content cache
	ContentReload bool // re-fingerprint the content root on every snapshot access
	ContentWatch  bool // invalidate the snapshot from file system events

	// Observability (optional)
	SentryDSN      string
	MetricsEnabled bool

	// Publishing (S3-compatible: MinIO, AWS S3, Cloudflare R2, DigitalOcean Spaces, etc.)
	S3Region            string
	S3Bucket            string
	S3AccessKey         string
	S3SecretKey         string
	S3Endpoint          string        // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	FeedPublishInterval time.Duration // 0 disables periodic publishing
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := FromEnv()

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// FromEnv reads the configuration from the process environment without
// touching .env files.
func FromEnv() *Config {
	appEnv := envString("APP_ENV", "development")
	dev := appEnv == "development"

	return &Config{
		// Application
		AppName:     envString("APP_NAME", "Uncharted"),
		AppEnv:      appEnv,
		AppURL:      strings.TrimSuffix(envString("APP_URL", "https://uncharted.sh"), "/"),
		Port:        envString("PORT", "8090"),
		AppTagline:  envString("APP_TAGLINE", "Your AI travel agent"),
		ContentPath: envString("CONTENT_PATH", "content"),
		StaticPath:  envString("STATIC_PATH", "static"),

		// Blog
		BlogBasePath:      normalizeBasePath(envString("BLOG_BASE_PATH", "/resources/blog")),
		BlogTitle:         envString("BLOG_TITLE", "Uncharted"),
		BlogDescription:   envString("BLOG_DESCRIPTION", "Stories, guides, and insights from the team building your AI travel agent."),
		BlogLocale:        envString("BLOG_LOCALE", "en-US"),
		BlogDefaultAvatar: envString("BLOG_DEFAULT_AVATAR", "/logo.png"),
		BlogPostsPerPage:  envInt("BLOG_POSTS_PER_PAGE", 6),
		BlogFeaturedCount: envInt("BLOG_FEATURED_COUNT", 2),

		// Content cache
		ContentReload: envBool("CONTENT_RELOAD", dev),
		ContentWatch:  envBool("CONTENT_WATCH", dev),

		// Observability
		SentryDSN:      envString("SENTRY_DSN", ""),
		MetricsEnabled: envBool("METRICS_ENABLED", false),

		// Publishing
		S3Region:            envString("S3_REGION", "us-east-1"),
		S3Bucket:            envString("S3_BUCKET", ""),
		S3AccessKey:         envString("S3_ACCESS_KEY", ""),
		S3SecretKey:         envString("S3_SECRET_KEY", ""),
		S3Endpoint:          envString("S3_ENDPOINT", ""),
		FeedPublishInterval: envDuration("FEED_PUBLISH_INTERVAL", 0),
	}
}

// Validate reports settings that would publish broken links or schedule a
// job with nowhere to write.
func (c *Config) Validate() error {
	u, err := url.Parse(c.AppURL)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("APP_URL must be an absolute https URL, got %q", c.AppURL)
	}
	if c.FeedPublishInterval > 0 && c.S3Bucket == "" {
		return fmt.Errorf("FEED_PUBLISH_INTERVAL requires S3_BUCKET")
	}
	return nil
}

// validateProduction ensures production deployments have canonical links and
// a publish target when publishing is scheduled.
func validateProduction(cfg *Config) {
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid production configuration",
			"error", err,
			"hint", "set APP_ENV=development for local testing")
		os.Exit(1)
	}
}

func normalizeBasePath(p string) string {
	p = "/" + strings.Trim(p, "/")
	if p == "/" {
		return ""
	}
	return p
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) PublishEnabled() bool {
	return c.S3Bucket != ""
}

// BlogURL joins the site origin, blog base path and p.
func (c *Config) BlogURL(p string) string {
	u := c.AppURL + c.BlogBasePath
	if p = strings.Trim(p, "/"); p != "" {
		u += "/" + p
	}
	return u
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets, credentials, and sensitive data are excluded.
// Safe to expose in ctx, templates and client-facing contexts.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:    c.AppName,
		AppEnv:     c.AppEnv,
		AppURL:     c.AppURL,
		Port:       c.Port,
		AppTagline: c.AppTagline,

		BlogBasePath:      c.BlogBasePath,
		BlogTitle:         c.BlogTitle,
		BlogDescription:   c.BlogDescription,
		BlogLocale:        c.BlogLocale,
		BlogDefaultAvatar: c.BlogDefaultAvatar,
		BlogPostsPerPage:  c.BlogPostsPerPage,
		BlogFeaturedCount: c.BlogFeaturedCount,

		S3Endpoint: c.S3Endpoint,
	}
}
