package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TitleRequests     atomic.Int64
	CuratedHits       atomic.Int64
	MetadataHits      atomic.Int64
	PathTitles        atomic.Int64
	CategoryFallbacks atomic.Int64
	FetchRequests     atomic.Int64
	FetchErrors       atomic.Int64
	SocialRequests    atomic.Int64
	SocialScraped     atomic.Int64
	SocialFallbacks   atomic.Int64
	TwitterAPICalls   atomic.Int64
	FilesWritten      atomic.Int64
}

var metricKeys = []string{
	"title_requests", "curated_hits", "metadata_hits", "path_titles", "category_fallbacks",
	"fetch_requests", "fetch_errors",
	"social_requests", "social_scraped", "social_fallbacks", "twitter_api_calls",
	"files_written",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"title_requests":     metrics.TitleRequests.Load(),
		"curated_hits":       metrics.CuratedHits.Load(),
		"metadata_hits":      metrics.MetadataHits.Load(),
		"path_titles":        metrics.PathTitles.Load(),
		"category_fallbacks": metrics.CategoryFallbacks.Load(),
		"fetch_requests":     metrics.FetchRequests.Load(),
		"fetch_errors":       metrics.FetchErrors.Load(),
		"social_requests":    metrics.SocialRequests.Load(),
		"social_scraped":     metrics.SocialScraped.Load(),
		"social_fallbacks":   metrics.SocialFallbacks.Load(),
		"twitter_api_calls":  metrics.TwitterAPICalls.Load(),
		"files_written":      metrics.FilesWritten.Load(),
		"cache_hits":         hits,
		"cache_misses":       misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the resolver sub-packages.
func IncrTitleRequests()     { metrics.TitleRequests.Add(1) }
func IncrCuratedHits()       { metrics.CuratedHits.Add(1) }
func IncrMetadataHits()      { metrics.MetadataHits.Add(1) }
func IncrPathTitles()        { metrics.PathTitles.Add(1) }
func IncrCategoryFallbacks() { metrics.CategoryFallbacks.Add(1) }
func IncrSocialRequests()    { metrics.SocialRequests.Add(1) }
func IncrSocialScraped()     { metrics.SocialScraped.Add(1) }
func IncrSocialFallbacks()   { metrics.SocialFallbacks.Add(1) }
func IncrTwitterAPICalls()   { metrics.TwitterAPICalls.Add(1) }
func IncrFilesWritten()      { metrics.FilesWritten.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
