package engine

import (
	"bytes"
	"encoding/json"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// PageMeta holds the title-bearing fields of an HTML document.
type PageMeta struct {
	OGTitle            string
	TwitterTitle       string
	DocTitle           string
	ArticleTitle       string // readability, only filled when nothing else was found
	OGDescription      string
	TwitterDescription string
	Description        string
	JSONLD             []map[string]any
}

// Title returns the first non-empty title in priority order:
// og:title, twitter:title, JSON-LD, <title>, readability.
func (m PageMeta) Title() string {
	for _, t := range []string{
		m.OGTitle,
		m.TwitterTitle,
		m.JSONLDString("headline", "name", "title"),
		m.DocTitle,
		m.ArticleTitle,
	} {
		if t = CollapseSpace(t); t != "" {
			return t
		}
	}
	return ""
}

// JSONLDString returns the first string value found under any of keys,
// searching JSON-LD objects in document order.
func (m PageMeta) JSONLDString(keys ...string) string {
	for _, obj := range m.JSONLD {
		for _, k := range keys {
			if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// ParsePageMeta extracts metadata with goquery, falling back to readability
// for the title and to regex scanning when the document cannot be parsed.
func ParsePageMeta(body []byte, pageURL string) PageMeta {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return parseMetaFallback(string(body))
	}

	var m PageMeta
	m.OGTitle = metaContent(doc, `meta[property="og:title"]`)
	m.TwitterTitle = metaContent(doc, `meta[name="twitter:title"], meta[property="twitter:title"]`)
	m.OGDescription = metaContent(doc, `meta[property="og:description"]`)
	m.TwitterDescription = metaContent(doc, `meta[name="twitter:description"], meta[property="twitter:description"]`)
	m.Description = metaContent(doc, `meta[name="description"]`)
	m.DocTitle = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		m.JSONLD = append(m.JSONLD, decodeJSONLD(s.Text())...)
	})

	if m.OGTitle == "" && m.TwitterTitle == "" && m.DocTitle == "" && m.JSONLDString("headline", "name", "title") == "" {
		m.ArticleTitle = readabilityTitle(body, pageURL)
	}
	return m
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

// decodeJSONLD accepts a single object, an array of objects, or an @graph wrapper.
func decodeJSONLD(raw string) []map[string]any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var one map[string]any
	if json.Unmarshal([]byte(raw), &one) == nil {
		if graph, ok := one["@graph"].([]any); ok {
			return objects(graph)
		}
		return []map[string]any{one}
	}
	var many []any
	if json.Unmarshal([]byte(raw), &many) == nil {
		return objects(many)
	}
	return nil
}

func objects(items []any) []map[string]any {
	var out []map[string]any
	for _, it := range items {
		if obj, ok := it.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func readabilityTitle(body []byte, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(bytes.NewReader(body), u)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(article.Title)
}

var (
	titleRe   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	ogTitleRe = regexp.MustCompile(`(?i)<meta[^>]*property=["']og:title["'][^>]*content=["']([^"']+)["']`)
	ogDescRe  = regexp.MustCompile(`(?i)<meta[^>]*property=["']og:description["'][^>]*content=["']([^"']+)["']`)
)

// parseMetaFallback uses regex scanning when goquery fails.
func parseMetaFallback(doc string) PageMeta {
	var m PageMeta
	if mm := ogTitleRe.FindStringSubmatch(doc); len(mm) > 1 {
		m.OGTitle = html.UnescapeString(strings.TrimSpace(mm[1]))
	}
	if mm := titleRe.FindStringSubmatch(doc); len(mm) > 1 {
		m.DocTitle = html.UnescapeString(strings.TrimSpace(mm[1]))
	}
	if mm := ogDescRe.FindStringSubmatch(doc); len(mm) > 1 {
		m.OGDescription = html.UnescapeString(strings.TrimSpace(mm[1]))
	}
	return m
}
