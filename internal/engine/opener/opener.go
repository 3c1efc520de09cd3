// Package opener opens link lists in browser tabs, one at a time.
package opener

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/anatolykoptev/go_weekly/internal/engine/rawlinks"
)

// DefaultDelay separates consecutive tabs.
const DefaultDelay = 5 * time.Second

// Opener opens one URL in a new tab.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// Browser opens tabs in a visible Chrome driven over the DevTools protocol.
type Browser struct {
	browser *rod.Browser
}

// BrowserOptions selects the Chrome to drive.
type BrowserOptions struct {
	ControlURL string // attach to a running Chrome; "" launches one
	Bin        string // Chrome binary; "" lets the launcher find or fetch one
}

// NewBrowser launches (or attaches to) Chrome. The launched browser is left
// running when the process exits so the tabs stay open.
func NewBrowser(ctx context.Context, opts BrowserOptions) (*Browser, error) {
	controlURL := opts.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(false).Leakless(false)
		if opts.Bin != "" {
			l = l.Bin(opts.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = u
	}
	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	return &Browser{browser: b}, nil
}

// Open creates a tab for url without waiting for it to load.
func (b *Browser) Open(_ context.Context, url string) error {
	if _, err := b.browser.Page(proto.TargetCreateTarget{URL: url}); err != nil {
		return fmt.Errorf("open tab: %w", err)
	}
	return nil
}

// Printer is an Opener that only reports what would be opened.
type Printer struct {
	W io.Writer
}

// Open writes url to W.
func (p Printer) Open(_ context.Context, url string) error {
	_, err := fmt.Fprintf(p.W, "  [would open] %s\n", url)
	return err
}

// OpenAll opens items in order, waiting delay between tabs. A tab that
// fails to open is logged and skipped. It returns the number opened.
func OpenAll(ctx context.Context, o Opener, items []rawlinks.Item, delay time.Duration) (int, error) {
	opened := 0
	for i, it := range items {
		if i > 0 && delay > 0 {
			t := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return opened, ctx.Err()
			case <-t.C:
			}
		}
		if err := o.Open(ctx, it.URL); err != nil {
			slog.Warn("opener: open failed", slog.String("url", it.URL), slog.Any("error", err))
			continue
		}
		opened++
	}
	return opened, nil
}
