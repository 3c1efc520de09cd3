package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_weekly/internal/engine/render"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("# x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRebuildOrder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "2025-01-15-links.md", "2025-01-29-links.md", "2025-01-22-links.md", "template.md")

	ix := New(dir, render.New("opendisruption.com"))
	got, err := ix.Rebuild(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !got.Written {
		t.Error("expected index to be written")
	}

	want := StartMarker + "\n" +
		`- <a href="./2025-01-29-links.md">January 29, 2025</a>` + "\n" +
		`- <a href="./2025-01-22-links.md">January 22, 2025</a>` + "\n" +
		`- <a href="./2025-01-15-links.md">January 15, 2025</a>` + "\n" +
		EndMarker
	if !strings.Contains(got.Content, want) {
		t.Errorf("index list not found in:\n%s", got.Content)
	}

	onDisk, err := os.ReadFile(filepath.Join(dir, "index.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(onDisk) != got.Content {
		t.Error("written index differs from returned content")
	}
}

func TestRebuildIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "2025-01-15-links.md", "2025-01-22-links.md")
	ix := New(dir, render.New("opendisruption.com"))
	ctx := context.Background()

	first, err := ix.Rebuild(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ix.Rebuild(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if first.Content != second.Content {
		t.Errorf("rebuild not idempotent:\n%s\n---\n%s", first.Content, second.Content)
	}
	if second.Written {
		t.Error("unchanged index should not be rewritten")
	}
}

func TestRebuildKeepsCustomIndex(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "2025-03-01-links.md")
	custom := "# My archive\n\nIntro text.\n\n" + StartMarker + "\n- stale entry\n" + EndMarker + "\n\nFooter\n"
	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := New(dir, render.New("opendisruption.com")).Rebuild(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := "# My archive\n\nIntro text.\n\n" + StartMarker + "\n" +
		`- <a href="./2025-03-01-links.md">March 01, 2025</a>` + "\n" + EndMarker + "\n\nFooter\n"
	if got.Content != want {
		t.Errorf("Content =\n%s\nwant\n%s", got.Content, want)
	}
}

func TestRebuildWithoutMarkers(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "2025-03-01-links.md")
	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte("- [old](./x.md)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := New(dir, render.New("")).Rebuild(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got.Content, "# 🧭 Open Disruption — Link Archive") {
		t.Errorf("expected built-in template, got:\n%s", got.Content)
	}
	if strings.Contains(got.Content, "./x.md") {
		t.Error("stale content survived")
	}
}

func TestRebuildDryRun(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "2025-01-15-links.md")
	ix := New(dir, render.New("opendisruption.com"))
	ix.DryRun = true

	got, err := ix.Rebuild(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.Written || !strings.Contains(got.Content, "January 15, 2025") {
		t.Errorf("unexpected dry-run result: %+v", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "index.md")); !os.IsNotExist(err) {
		t.Error("dry run wrote index.md")
	}
}

func TestRebuildSkipsInvalidAndEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "2025-02-30-links.md", "draft-links.md")

	got, err := New(dir, render.New("opendisruption.com")).Rebuild(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Files) != 0 {
		t.Errorf("Files = %v, want none", got.Files)
	}
	if !strings.Contains(got.Content, StartMarker+"\n"+EndMarker) {
		t.Errorf("expected empty marker region:\n%s", got.Content)
	}
}

func TestRebuildMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), render.New("")).Rebuild(context.Background())
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestSplice(t *testing.T) {
	doc := "a\n" + StartMarker + "old\nstuff" + EndMarker + "\nb"
	got := Splice(doc, "- one")
	want := "a\n" + StartMarker + "\n- one\n" + EndMarker + "\nb"
	if got != want {
		t.Errorf("Splice = %q, want %q", got, want)
	}
	if Splice(got, "- one") != got {
		t.Error("Splice not idempotent")
	}
}
