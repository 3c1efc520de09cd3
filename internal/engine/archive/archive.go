// Package archive rebuilds the index page listing every weekly collection.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/anatolykoptev/go_weekly/internal/engine"
	"github.com/anatolykoptev/go_weekly/internal/engine/render"
	"github.com/anatolykoptev/go_weekly/internal/engine/weekly"
)

// Markers bounding the generated list inside the index.
const (
	StartMarker = "<!-- archive:start -->"
	EndMarker   = "<!-- archive:end -->"
)

// DefaultIndex is used when the existing index lacks either marker.
const DefaultIndex = `# 🧭 Open Disruption — Link Archive

Welcome to the **Open Disruption Link Archive**, a weekly collection of curated AI news, research papers, product launches, and X (Twitter) threads from our live Office Hours sessions.

> 📺 Watch the weekly show on [YouTube](https://youtube.com/@OpenDisruption)
> 🌐 Learn more at [opendisruption.com](https://opendisruption.com/)

---

## 🗓️ Archive

` + StartMarker + `
` + EndMarker + `

---

*This archive is open-source and updated weekly.*
`

// Indexer regenerates Dir/index.md from the dated files in Dir.
type Indexer struct {
	Dir      string
	Renderer render.Renderer
	DryRun   bool
}

// Index is the outcome of a rebuild.
type Index struct {
	Path    string
	Content string
	Files   []weekly.File
	Written bool
}

// New returns an Indexer for dir.
func New(dir string, r render.Renderer) *Indexer {
	return &Indexer{Dir: dir, Renderer: r}
}

// Path is the index file location.
func (ix *Indexer) Path() string {
	return filepath.Join(ix.Dir, weekly.IndexFile)
}

// Rebuild recomputes the index from the directory listing and writes it
// unless DryRun is set. Running it twice over an unchanged directory
// produces the same bytes.
func (ix *Indexer) Rebuild(ctx context.Context) (Index, error) {
	files, err := weekly.Scan(ix.Dir)
	if err != nil {
		return Index{}, err
	}
	out := Index{Path: ix.Path(), Files: files}

	current, err := os.ReadFile(out.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return out, fmt.Errorf("read index: %w", err)
	}

	base := string(current)
	if !hasMarkers(base) {
		if len(current) > 0 {
			slog.Warn("archive: index has no markers, using built-in template", slog.String("path", out.Path))
		}
		base = DefaultIndex
	}
	out.Content = Splice(base, ix.Renderer.List(Entries(files)))

	if ix.DryRun || bytes.Equal(current, []byte(out.Content)) {
		return out, nil
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}
	if err := os.WriteFile(out.Path, []byte(out.Content), 0o644); err != nil {
		return out, fmt.Errorf("write index: %w", err)
	}
	engine.IncrFilesWritten()
	out.Written = true
	slog.Info("archive: index updated", slog.String("path", out.Path), slog.Int("entries", len(files)))
	return out, nil
}

// Entries renders each file as a link labelled with its display date.
func Entries(files []weekly.File) []render.Entry {
	entries := make([]render.Entry, 0, len(files))
	for _, f := range files {
		entries = append(entries, render.Entry{URL: "./" + f.Name, Title: f.Date.Format(weekly.DisplayLayout)})
	}
	return entries
}

// Splice replaces whatever sits between the markers of doc with list.
// doc must contain both markers in order.
func Splice(doc, list string) string {
	before, rest, _ := strings.Cut(doc, StartMarker)
	_, after, _ := strings.Cut(rest, EndMarker)
	var b strings.Builder
	b.WriteString(before)
	b.WriteString(StartMarker)
	b.WriteString("\n")
	if list != "" {
		b.WriteString(list)
		b.WriteString("\n")
	}
	b.WriteString(EndMarker)
	b.WriteString(after)
	return b.String()
}

func hasMarkers(doc string) bool {
	i := strings.Index(doc, StartMarker)
	return i >= 0 && strings.Contains(doc[i+len(StartMarker):], EndMarker)
}
