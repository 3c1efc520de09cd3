package render

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parseAnchor returns the href, text and attribute count of the single <a> in s.
func parseAnchor(t *testing.T, s string) (href, text string, attrs map[string]string) {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"})
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	if len(nodes) != 1 || nodes[0].Data != "a" {
		t.Fatalf("expected exactly one <a>, got %d nodes for %q", len(nodes), s)
	}
	a := nodes[0]
	attrs = map[string]string{}
	for _, at := range a.Attr {
		attrs[at.Key] = at.Val
	}
	var sb strings.Builder
	for c := a.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			t.Fatalf("anchor has non-text child in %q", s)
		}
		sb.WriteString(c.Data)
	}
	return attrs["href"], sb.String(), attrs
}

func TestRenderExternal(t *testing.T) {
	r := New("opendisruption.com")
	got := r.Render(Entry{URL: "https://openai.com/index/introducing-aardvark/", Title: "OpenAI: Introducing Aardvark"})
	want := `<a href="https://openai.com/index/introducing-aardvark/" target="_blank" rel="noopener noreferrer">OpenAI: Introducing Aardvark</a>`
	if got != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderSameSite(t *testing.T) {
	r := New("www.opendisruption.com")
	tests := []struct {
		name string
		url  string
	}{
		{"relative", "./2025-01-29-links.md"},
		{"same host", "https://opendisruption.com/weekly-links/"},
		{"www variant", "https://WWW.OpenDisruption.com/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, attrs := parseAnchor(t, r.Render(Entry{URL: tt.url, Title: "x"}))
			if _, ok := attrs["target"]; ok {
				t.Errorf("same-site link should not open a new tab: %v", attrs)
			}
		})
	}
}

func TestRenderWellFormed(t *testing.T) {
	r := New("opendisruption.com")
	tests := []Entry{
		{URL: "https://example.com/?a=1&b=2", Title: "Ampersand & friends"},
		{URL: `https://example.com/"quoted"`, Title: `Say "hi" <script>alert(1)</script>`},
		{URL: "https://x.com/sama/status/12345", Title: "sama — AI Discussion"},
		{URL: "https://example.com/ünïcode", Title: "Ünïcode 'quotes'"},
	}
	for _, e := range tests {
		t.Run(e.Title, func(t *testing.T) {
			href, text, attrs := parseAnchor(t, r.Render(e))
			if href != e.URL {
				t.Errorf("href = %q, want %q", href, e.URL)
			}
			if text != e.Title {
				t.Errorf("text = %q, want %q", text, e.Title)
			}
			if attrs["rel"] != "noopener noreferrer" || attrs["target"] != "_blank" {
				t.Errorf("external attrs missing: %v", attrs)
			}
		})
	}
}

func TestList(t *testing.T) {
	r := New("opendisruption.com")
	got := r.List([]Entry{
		{URL: "https://a.com", Title: "A"},
		{URL: "./b", Title: "B"},
	})
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "- <a href=\"https://a.com\"") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != `- <a href="./b">B</a>` {
		t.Errorf("line 1 = %q", lines[1])
	}
}
