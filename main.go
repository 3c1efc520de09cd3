// go_weekly is a weekly AI links curation toolkit.
//
// Creates dated link collections, titles and formats their links, renders
// HTML pages and keeps the archive index sorted. `go_weekly serve` exposes
// the same operations as MCP tools.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	twitter "github.com/anatolykoptev/go-twitter"
	"github.com/joho/godotenv"

	"github.com/anatolykoptev/go_weekly/internal/cli"
	"github.com/anatolykoptev/go_weekly/internal/engine"
	"github.com/anatolykoptev/go_weekly/internal/engine/htmlgen"
)

var version = "dev"

func main() {
	_ = godotenv.Load()
	initLogger()
	initEngine()
	defer engine.CloseCache()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, version)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		engine.CloseCache()
		os.Exit(1)
	}
}

func initLogger() {
	switch strings.ToLower(env.Str("LOG_LEVEL", "info")) {
	case "debug":
		cli.LogLevel.Set(slog.LevelDebug)
	case "warn", "warning":
		cli.LogLevel.Set(slog.LevelWarn)
	case "error":
		cli.LogLevel.Set(slog.LevelError)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cli.LogLevel})))
}

func initEngine() {
	c := engine.Config{
		SiteHost:             env.Str("SITE_HOST", engine.DefaultSiteHost),
		WeeklyDir:            env.Str("WEEKLY_DIR", engine.DefaultWeeklyDir),
		AnalyticsID:          env.Str("GA_MEASUREMENT_ID", htmlgen.DefaultAnalyticsID),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", engine.DefaultFetchTimeout),
		SocialTimeout:        env.Duration("SOCIAL_TIMEOUT", engine.DefaultSocialTimeout),
		FetchDelay:           env.Duration("FETCH_DELAY", engine.DefaultFetchDelay),
		FetchRetries:         env.Int("FETCH_RETRIES", 2),
		MaxBodyBytes:         int64(env.Int("MAX_BODY_BYTES", engine.DefaultMaxBodyBytes)),
		PatternsFile:         env.Str("PATTERNS_FILE", ""),
		OEmbedURL:            env.Str("OEMBED_URL", engine.DefaultOEmbedURL),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
	}

	// Whole seconds, like the tls-client option it wraps.
	timeoutSec := max(int(c.SocialTimeout/time.Second), 1)
	var opts []stealth.ClientOption
	opts = append(opts, stealth.WithTimeout(timeoutSec))

	if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
		pool, err := proxypool.NewWebshare(apiKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Debug("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Warn("stealth client init failed, social pages use plain HTTP", slog.Any("error", err))
	} else {
		c.BrowserClient = bc
	}

	// Twitter lookups only with configured accounts; otherwise oEmbed and
	// the post page are the social sources.
	if accounts := twitter.ParseAccounts(env.Str("TWITTER_ACCOUNTS", "")); len(accounts) > 0 {
		tw, err := twitter.NewClient(twitter.ClientConfig{Accounts: accounts})
		if err != nil {
			slog.Warn("twitter client init failed", slog.Any("error", err))
		} else {
			c.TwitterClient = tw
			slog.Debug("twitter client ready", slog.Int("pool_size", tw.Pool().Size()))
		}
	}

	engine.Init(c)

	if enabled, _ := strconv.ParseBool(env.Str("CACHE_ENABLED", "true")); enabled {
		engine.InitCache(env.Str("REDIS_URL", ""), env.Duration("CACHE_TTL", 24*time.Hour), c.CacheMaxEntries, c.CacheCleanupInterval)
	}
}
