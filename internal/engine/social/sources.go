package social

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	twitter "github.com/anatolykoptev/go-twitter"

	"github.com/anatolykoptev/go_weekly/internal/engine"
)

// Source looks up the text of a post. Errors are never fatal to a resolve.
type Source interface {
	Name() string
	Text(ctx context.Context, p Post) (string, error)
}

var errNoText = errors.New("no usable text")

// --- Twitter API ---

type tweetText struct {
	ID   string
	Text string
}

type twitterSource struct {
	search func(ctx context.Context, query string) ([]tweetText, error)
}

// TwitterSource searches the author's conversation for the post itself.
func TwitterSource(tw *twitter.Client) Source {
	return &twitterSource{search: func(ctx context.Context, query string) ([]tweetText, error) {
		tweets, err := tw.SearchTimeline(ctx, query, 10)
		if err != nil {
			return nil, err
		}
		out := make([]tweetText, 0, len(tweets))
		for _, t := range tweets {
			out = append(out, tweetText{ID: t.ID, Text: t.Text})
		}
		return out, nil
	}}
}

func (s *twitterSource) Name() string { return "twitter" }

func (s *twitterSource) Text(ctx context.Context, p Post) (string, error) {
	if p.ID == "" {
		return "", errNoText
	}
	engine.IncrTwitterAPICalls()
	tweets, err := s.search(ctx, fmt.Sprintf("from:%s conversation_id:%s", p.Handle, p.ID))
	if err != nil {
		return "", fmt.Errorf("twitter search: %w", err)
	}
	for _, t := range tweets {
		if t.ID == p.ID {
			return t.Text, nil
		}
	}
	return "", errNoText
}

// --- oEmbed ---

type oembedSource struct {
	endpoint string
}

// OEmbedSource queries a public oEmbed endpoint for the post's blockquote.
func OEmbedSource(endpoint string) Source {
	return &oembedSource{endpoint: endpoint}
}

func (s *oembedSource) Name() string { return "oembed" }

func (s *oembedSource) Text(ctx context.Context, p Post) (string, error) {
	q := url.Values{}
	q.Set("url", p.URL)
	q.Set("omit_script", "1")
	q.Set("dnt", "true")

	var resp struct {
		HTML string `json:"html"`
	}
	if err := engine.FetchJSON(ctx, s.endpoint+"?"+q.Encode(), engine.Cfg.SocialTimeout, &resp); err != nil {
		return "", fmt.Errorf("oembed: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.HTML))
	if err != nil {
		return "", fmt.Errorf("oembed html: %w", err)
	}
	para, err := doc.Find("blockquote p").First().Html()
	if err != nil || strings.TrimSpace(para) == "" {
		return "", errNoText
	}
	md, err := htmltomarkdown.ConvertString(para)
	if err != nil {
		return engine.CleanHTML(para), nil
	}
	return stripMarkdown(md), nil
}

// --- post page ---

// Fetcher retrieves a post page.
type Fetcher func(ctx context.Context, pageURL string) ([]byte, error)

type pageSource struct {
	fetch Fetcher
}

// PageSource scrapes the post page with fetch.
func PageSource(fetch Fetcher) Source {
	return &pageSource{fetch: fetch}
}

// DefaultFetcher uses the stealth browser client when one is configured,
// plain HTTP otherwise.
func DefaultFetcher() Fetcher {
	return func(ctx context.Context, pageURL string) ([]byte, error) {
		if bc := engine.Cfg.BrowserClient; bc != nil {
			return engine.BrowserGet(ctx, bc, pageURL)
		}
		return engine.FetchHTMLWithin(ctx, pageURL, engine.Cfg.SocialTimeout)
	}
}

func (s *pageSource) Name() string { return "page" }

func (s *pageSource) Text(ctx context.Context, p Post) (string, error) {
	body, err := s.fetch(ctx, p.URL)
	if err != nil {
		return "", err
	}
	return pageText(body, p.URL)
}

// pageText tries meta descriptions, the tweet text node, the longest
// <article>, then JSON-LD, returning the first text long enough to use.
func pageText(body []byte, pageURL string) (string, error) {
	meta := engine.ParsePageMeta(body, pageURL)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	strategies := []func() string{
		func() string {
			if meta.OGDescription != "" {
				return meta.OGDescription
			}
			return meta.TwitterDescription
		},
		func() string {
			return doc.Find(`[data-testid="tweetText"]`).First().Text()
		},
		func() string {
			longest := ""
			doc.Find("article").Each(func(_ int, sel *goquery.Selection) {
				if t := strings.TrimSpace(sel.Text()); len(t) > len(longest) {
					longest = t
				}
			})
			return longest
		},
		func() string {
			return meta.JSONLDString("text", "articleBody", "description", "headline", "name")
		},
	}
	for _, try := range strategies {
		if t := cleanText(try()); t != "" {
			return t, nil
		}
	}
	return "", errNoText
}
