package engine

import (
	"net/http"
	"time"

	twitter "github.com/anatolykoptev/go-twitter"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	SiteHost             string // host treated as same-site by the link renderer
	WeeklyDir            string
	AnalyticsID          string
	FetchTimeout         time.Duration
	SocialTimeout        time.Duration
	FetchDelay           time.Duration
	FetchRetries         int
	MaxBodyBytes         int64
	PatternsFile         string
	OEmbedURL            string
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	HTTPClient           *http.Client
	BrowserClient        *BrowserClient  // nil = plain HTTP for social pages
	TwitterClient        *twitter.Client // nil = Twitter API lookup disabled
}

// Defaults used when a Config field is left zero.
const (
	DefaultSiteHost      = "opendisruption.com"
	DefaultWeeklyDir     = "weekly-links"
	DefaultFetchTimeout  = 8 * time.Second
	DefaultSocialTimeout = 10 * time.Second
	DefaultFetchDelay    = 1 * time.Second
	DefaultMaxBodyBytes  = 256 << 10
	DefaultOEmbedURL     = "https://publish.twitter.com/oembed"
)

var cfg = withDefaults(Config{})

// Cfg exposes the engine configuration for sub-packages.
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = withDefaults(c)
	Cfg = &cfg
}

func withDefaults(c Config) Config {
	if c.SiteHost == "" {
		c.SiteHost = DefaultSiteHost
	}
	if c.WeeklyDir == "" {
		c.WeeklyDir = DefaultWeeklyDir
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	if c.SocialTimeout <= 0 {
		c.SocialTimeout = DefaultSocialTimeout
	}
	if c.FetchDelay < 0 {
		c.FetchDelay = 0
	}
	if c.FetchRetries <= 0 {
		c.FetchRetries = 1
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.OEmbedURL == "" {
		c.OEmbedURL = DefaultOEmbedURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = newFetchClient()
	}
	return c
}
