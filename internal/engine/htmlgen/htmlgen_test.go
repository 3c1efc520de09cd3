package htmlgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const weeklyDoc = `# 🧠 Open Disruption — Weekly AI News Links
**Date:** January 29, 2025

## Links from Office Hours
- <a href="https://openai.com/index/introducing-aardvark/" target="_blank" rel="noopener noreferrer">OpenAI: Introducing Aardvark</a>

## 🗃️ Archive
👉 [Open Disruption Link Archive](./index.md)
`

func TestRender(t *testing.T) {
	p, err := New(DefaultAnalyticsID, "opendisruption.com").Render(weeklyDoc)
	require.NoError(t, err)

	assert.Equal(t, "🧠 Open Disruption — Weekly AI News Links", p.Title)
	assert.Contains(t, p.HTML, "<title>🧠 Open Disruption — Weekly AI News Links</title>")
	assert.Contains(t, p.HTML, "googletagmanager.com/gtag/js?id=G-W5RHK6N572")
	assert.Contains(t, p.HTML, `gtag('config', "G-W5RHK6N572")`)
	assert.Contains(t, p.HTML, "← Back to Open Disruption")
	assert.Contains(t, p.HTML, `<a href="https://openai.com/index/introducing-aardvark/" target="_blank" rel="noopener noreferrer">OpenAI: Introducing Aardvark</a>`)
	assert.Contains(t, p.HTML, `<a href="./index.md">Open Disruption Link Archive</a>`)
	assert.Equal(t, 1, strings.Count(p.HTML, "Archive</h2>"), "archive section must not be duplicated")

	_, err = html.Parse(strings.NewReader(p.HTML))
	assert.NoError(t, err)
}

func TestRenderWithoutAnalytics(t *testing.T) {
	p, err := New("", "").Render("plain text")
	require.NoError(t, err)
	assert.NotContains(t, p.HTML, "googletagmanager")
	assert.Equal(t, "Open Disruption — Weekly AI News Links", p.Title)
	assert.Contains(t, p.HTML, "https://opendisruption.com/weekly-links/", "archive footer appended")
}

func TestRenderEscapesTitle(t *testing.T) {
	p, err := New("", "").Render("# A <b>bold</b> & title\n")
	require.NoError(t, err)
	assert.Contains(t, p.HTML, "<title>A &lt;b&gt;bold&lt;/b&gt; &amp; title</title>")
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "2025-01-29-links.md")
	require.NoError(t, os.WriteFile(in, []byte(weeklyDoc), 0o644))
	g := New(DefaultAnalyticsID, "opendisruption.com")

	p, err := g.ConvertFile(in, "", true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2025-01-29-links.html"), p.Path)
	assert.False(t, p.Written)
	_, err = os.Stat(p.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	p, err = g.ConvertFile(in, "", false)
	require.NoError(t, err)
	data, err := os.ReadFile(p.Path)
	require.NoError(t, err)
	assert.Equal(t, p.HTML, string(data))

	_, err = g.ConvertFile(filepath.Join(dir, "missing.md"), "", false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConvertAll(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"2025-01-15-links.md", "2025-01-22-links.md", "index.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(weeklyDoc), 0o644))
	}
	pages, err := New(DefaultAnalyticsID, "").ConvertAll(dir, false)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, filepath.Join(dir, "2025-01-22-links.html"), pages[0].Path)

	_, err = os.Stat(filepath.Join(dir, "index.html"))
	assert.ErrorIs(t, err, os.ErrNotExist, "index.md is not converted")
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "a/b.html", OutputPath("a/b.md"))
	assert.Equal(t, "noext.html", OutputPath("noext"))
}
