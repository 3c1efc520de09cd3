// Package htmlgen renders weekly markdown files as standalone HTML pages
// carrying the analytics tag.
package htmlgen

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/anatolykoptev/go_weekly/internal/engine"
	"github.com/anatolykoptev/go_weekly/internal/engine/weekly"
)

// DefaultAnalyticsID is the Google Analytics measurement ID of the site.
const DefaultAnalyticsID = "G-W5RHK6N572"

// Generator converts markdown documents to HTML pages.
type Generator struct {
	AnalyticsID string // "" omits the analytics snippet
	SiteHost    string
	md          goldmark.Markdown
}

// Page is one generated document.
type Page struct {
	Source  string `json:"source,omitempty"`
	Path    string `json:"path"`
	Title   string `json:"title"`
	HTML    string `json:"-"`
	Written bool   `json:"written"`
}

// New returns a Generator. Raw HTML in the markdown (the rendered anchors)
// is passed through.
func New(analyticsID, siteHost string) *Generator {
	return &Generator{
		AnalyticsID: analyticsID,
		SiteHost:    siteHost,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

// Render returns the full HTML page for doc.
func (g *Generator) Render(doc string) (Page, error) {
	var body bytes.Buffer
	if err := g.md.Convert([]byte(g.enhance(doc)), &body); err != nil {
		return Page{}, fmt.Errorf("convert markdown: %w", err)
	}
	p := Page{Title: weekly.Title(doc)}
	var out bytes.Buffer
	err := pageTmpl.Execute(&out, pageData{
		Title:       p.Title,
		AnalyticsID: g.AnalyticsID,
		Content:     template.HTML(body.String()),
	})
	if err != nil {
		return Page{}, fmt.Errorf("render page: %w", err)
	}
	p.HTML = out.String()
	return p, nil
}

// enhance appends the archive footer to documents that lack one.
func (g *Generator) enhance(doc string) string {
	if strings.Contains(doc, "Archive") {
		return doc
	}
	host := g.SiteHost
	if host == "" {
		host = engine.DefaultSiteHost
	}
	return strings.TrimRight(doc, "\n") + fmt.Sprintf(archiveFooter, host, host)
}

const archiveFooter = `

---

## 🗃️ Archive
You can find **all previous weeks** of curated AI news here:
👉 [Open Disruption Link Archive](https://%s/weekly-links/)

---

*Curated for [Open Disruption](https://%s/)*
`

// OutputPath is mdPath with an .html extension.
func OutputPath(mdPath string) string {
	return strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + ".html"
}

// ConvertFile renders in and writes it to out (OutputPath(in) when empty)
// unless dryRun is set.
func (g *Generator) ConvertFile(in, out string, dryRun bool) (Page, error) {
	data, err := os.ReadFile(in)
	if err != nil {
		return Page{}, fmt.Errorf("read input %s: %w", in, err)
	}
	p, err := g.Render(string(data))
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", in, err)
	}
	if out == "" {
		out = OutputPath(in)
	}
	p.Source, p.Path = in, out
	if dryRun {
		return p, nil
	}
	if err := os.WriteFile(out, []byte(p.HTML), 0o644); err != nil {
		return p, fmt.Errorf("write %s: %w", out, err)
	}
	engine.IncrFilesWritten()
	p.Written = true
	slog.Info("htmlgen: wrote page", slog.String("path", out), slog.String("title", p.Title))
	return p, nil
}

// ConvertAll renders every dated collection in dir. A file that fails is
// logged and skipped.
func (g *Generator) ConvertAll(dir string, dryRun bool) ([]Page, error) {
	files, err := weekly.Scan(dir)
	if err != nil {
		return nil, err
	}
	pages := make([]Page, 0, len(files))
	for _, f := range files {
		p, err := g.ConvertFile(f.Path, "", dryRun)
		if err != nil {
			slog.Warn("htmlgen: convert failed", slog.String("file", f.Name), slog.Any("error", err))
			continue
		}
		pages = append(pages, p)
	}
	return pages, nil
}
