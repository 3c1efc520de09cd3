package engine

import (
	"context"
	"testing"
	"time"
)

func TestShortenAtWord(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "short text", 20, "short text"},
		{"word boundary", "the quick brown fox jumps", 12, "the quick..."},
		{"no space", "abcdefghijkl", 5, "abcde..."},
		{"trailing punctuation", "hello, world and more", 7, "hello..."},
		{"runes", "привет мир как дела", 10, "привет..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortenAtWord(tt.in, tt.limit, "..."); got != tt.want {
				t.Errorf("ShortenAtWord(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}

func TestTitleCaseWords(t *testing.T) {
	tests := map[string]string{
		"research.google": "Research.Google",
		"budgetlab.yale":  "Budgetlab.Yale",
		"openai":          "Openai",
		"3d-models":       "3D-Models",
		"HELLO world":     "Hello World",
	}
	for in, want := range tests {
		if got := TitleCaseWords(in); got != want {
			t.Errorf("TitleCaseWords(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCollapseSpace(t *testing.T) {
	if got := CollapseSpace("  a \n\t b  "); got != "a b" {
		t.Errorf("CollapseSpace = %q", got)
	}
	if got := CleanHTML("<p>hi <b>there</b></p>"); got != "hi there" {
		t.Errorf("CleanHTML = %q", got)
	}
}

func TestPacer(t *testing.T) {
	p := NewPacer(50 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	for range 3 {
		if err := p.Wait(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Errorf("three waits at 50ms spacing took only %v", elapsed)
	}

	var nilPacer *Pacer
	if err := nilPacer.Wait(ctx); err != nil {
		t.Errorf("nil pacer should not block: %v", err)
	}
	if err := NewPacer(0).Wait(ctx); err != nil {
		t.Errorf("zero pacer should not block: %v", err)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("short", 10, "…"); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := TruncateRunes("https://example.com/a/very/long/path", 12, "…"); len([]rune(got)) > 13 || got == "https://example.com/a/very/long/path" {
		t.Errorf("not truncated: %q", got)
	}
}
