package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_weekly/internal/engine"
)

// YouTubeVideo is the oEmbed description of a video.
type YouTubeVideo struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

// IsYouTubeVideo reports whether rawURL names a single video: youtu.be/ID,
// /watch?v=ID, /shorts/ID or /live/ID.
func IsYouTubeVideo(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch host {
	case "youtu.be":
		return segs[0] != ""
	case "youtube.com", "m.youtube.com", "music.youtube.com":
	default:
		return false
	}
	switch segs[0] {
	case "watch":
		return u.Query().Get("v") != ""
	case "shorts", "live":
		return len(segs) > 1 && segs[1] != ""
	}
	return false
}

// FetchYouTubeVideo looks the video up through the oEmbed endpoint.
func (c *Client) FetchYouTubeVideo(ctx context.Context, rawURL string) (YouTubeVideo, error) {
	base := c.YouTubeOEmbedURL
	if base == "" {
		base = DefaultYouTubeOEmbedURL
	}
	q := url.Values{"format": {"json"}, "url": {strings.TrimSpace(rawURL)}}
	var v YouTubeVideo
	if err := engine.FetchJSON(ctx, base+"?"+q.Encode(), c.timeout(), &v); err != nil {
		return YouTubeVideo{}, fmt.Errorf("youtube oembed: %w", err)
	}
	if strings.TrimSpace(v.Title) == "" {
		return v, fmt.Errorf("youtube oembed: %w", ErrNoTitle)
	}
	return v, nil
}
