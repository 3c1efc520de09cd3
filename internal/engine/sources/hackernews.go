package sources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_weekly/internal/engine"
)

// HNItem is an item from the HN Algolia items API.
type HNItem struct {
	ID     int64  `json:"id"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// HNItemID returns the item id of a news.ycombinator.com/item?id=N URL.
func HNItemID(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != "news.ycombinator.com" || strings.TrimSuffix(u.Path, "/") != "/item" {
		return "", false
	}
	id := u.Query().Get("id")
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return "", false
	}
	return id, true
}

// FetchHNItem fetches item id.
func (c *Client) FetchHNItem(ctx context.Context, id string) (HNItem, error) {
	base := c.HNItemsURL
	if base == "" {
		base = DefaultHNItemsURL
	}
	var item HNItem
	if err := engine.FetchJSON(ctx, base+url.PathEscape(id), c.timeout(), &item); err != nil {
		return HNItem{}, fmt.Errorf("hn item %s: %w", id, err)
	}
	return item, nil
}

// HNTitle returns the story title of item id. Comments have none.
func (c *Client) HNTitle(ctx context.Context, id string) (string, error) {
	item, err := c.FetchHNItem(ctx, id)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(item.Title) == "" {
		return "", fmt.Errorf("hn item %s (%s): %w", id, item.Type, ErrNoTitle)
	}
	return item.Title, nil
}
