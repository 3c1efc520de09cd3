// Package rawlinks parses the RAW_LINKS notes taken during a show: category
// headers, bare URLs and quoted search terms.
package rawlinks

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Kind tells a link from a search.
type Kind string

const (
	KindURL    Kind = "url"
	KindSearch Kind = "search"
)

// Categories recognised as section headers ("HEADLINES:"), case-insensitive.
var Categories = []string{"HEADLINES", "GRAPHICS", "LLMS", "AGENTS", "CODING", "OTHER", "LABOR"}

const searchURL = "https://www.google.com/search?"

var ErrNoURLs = errors.New("no URLs found")

// Item is one line worth opening.
type Item struct {
	URL      string `json:"url"`
	Kind     Kind   `json:"kind"`
	Category string `json:"category,omitempty"`
	Term     string `json:"term,omitempty"`
}

// Parse reads RAW_LINKS content. A non-empty category keeps only the items
// under that header. URLs are deduplicated; search terms are not.
func Parse(content, category string) []Item {
	category = strings.ToUpper(strings.TrimSpace(category))
	var (
		items   []Item
		seen    = make(map[string]bool)
		current string
	)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if name, ok := strings.CutSuffix(line, ":"); ok && slices.Contains(Categories, strings.ToUpper(name)) {
			current = strings.ToUpper(name)
			continue
		}
		if line == "" || strings.EqualFold(line, "xx") || line == "---" {
			continue
		}
		if category != "" && current != category {
			continue
		}

		switch {
		case len(line) > 2 && strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`):
			term := strings.TrimSpace(line[1 : len(line)-1])
			if term == "" {
				continue
			}
			items = append(items, Item{
				URL:      searchURL + url.Values{"q": {term}}.Encode(),
				Kind:     KindSearch,
				Category: current,
				Term:     term,
			})
		case strings.HasPrefix(line, "http://"), strings.HasPrefix(line, "https://"):
			if seen[line] {
				continue
			}
			seen[line] = true
			items = append(items, Item{URL: line, Kind: KindURL, Category: current})
		}
	}
	return items
}

// ParseFile is Parse over the file at path.
func ParseFile(path, category string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read raw links: %w", err)
	}
	return Parse(string(data), category), nil
}

// URLs returns the link items' URLs in order.
func URLs(items []Item) []string {
	var out []string
	for _, it := range items {
		if it.Kind == KindURL {
			out = append(out, it.URL)
		}
	}
	return out
}

// SearchTerms returns the quoted terms in order.
func SearchTerms(items []Item) []string {
	var out []string
	for _, it := range items {
		if it.Kind == KindSearch {
			out = append(out, it.Term)
		}
	}
	return out
}

// DateFromPath returns the base name of path when it is a YYYY-MM-DD date.
func DateFromPath(path string) (string, bool) {
	name := filepath.Base(path)
	if len(name) != len("2006-01-02") {
		return "", false
	}
	for i, r := range name {
		switch i {
		case 4, 7:
			if r != '-' {
				return "", false
			}
		default:
			if r < '0' || r > '9' {
				return "", false
			}
		}
	}
	return name, true
}
