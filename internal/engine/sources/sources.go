// Package sources looks up titles from upstream APIs for URL shapes whose
// pages answer poorly to metadata scraping.
package sources

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anatolykoptev/go_weekly/internal/engine"
)

// Default upstream endpoints.
const (
	DefaultHNItemsURL       = "https://hn.algolia.com/api/v1/items/"
	DefaultYouTubeOEmbedURL = "https://www.youtube.com/oembed"
)

// ErrNoTitle means the upstream answered without a usable title.
var ErrNoTitle = errors.New("no title upstream")

// Client queries the upstream APIs. The zero value uses the default endpoints.
type Client struct {
	HNItemsURL       string
	YouTubeOEmbedURL string
	Timeout          time.Duration // per request; 0 = engine FetchTimeout
}

// Title returns "<Source>: <title>" for URLs this package knows, with ok
// false for any other URL.
func (c *Client) Title(ctx context.Context, rawURL string) (title string, ok bool, err error) {
	if id, isHN := HNItemID(rawURL); isHN {
		t, err := c.HNTitle(ctx, id)
		return prefixed("Hacker News", t), true, err
	}
	if IsYouTubeVideo(rawURL) {
		v, err := c.FetchYouTubeVideo(ctx, rawURL)
		return prefixed("YouTube", v.Title), true, err
	}
	return "", false, nil
}

// Handles reports whether Title would query an upstream for rawURL.
func Handles(rawURL string) bool {
	_, isHN := HNItemID(rawURL)
	return isHN || IsYouTubeVideo(rawURL)
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return engine.Cfg.FetchTimeout
}

func prefixed(source, title string) string {
	title = engine.CollapseSpace(title)
	if title == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(title), strings.ToLower(source)+":") {
		return title
	}
	return source + ": " + title
}
