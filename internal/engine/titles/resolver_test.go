package titles

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_weekly/internal/engine"
)

// newTestResolver returns a resolver whose page fetches are served by pages
// (keyed by URL) and counted in calls.
func newTestResolver(mode Mode, pages map[string]string, calls *int) *Resolver {
	r := New(DefaultTable(), Options{Mode: mode})
	r.fetch = func(_ context.Context, pageURL string, _ time.Duration) ([]byte, error) {
		if calls != nil {
			*calls++
		}
		body, ok := pages[pageURL]
		if !ok {
			return nil, errors.New("status 404")
		}
		return []byte(body), nil
	}
	return r
}

func TestResolveFastMode(t *testing.T) {
	calls := 0
	r := newTestResolver(ModeFast, nil, &calls)
	ctx := context.Background()

	tests := []struct {
		url  string
		want string
	}{
		{"https://openai.com/index/introducing-aardvark/", "OpenAI: Introducing Aardvark"},
		{"https://openai.com/index/introducing-gpt-oss-safeguard/", "OpenAI: Introducing GPT OSS Safeguard"},
		{"https://openai.com/index/built-to-benefit-everyone/", "OpenAI: Built to Benefit Everyone"},
		{"https://openai.com/foundation/", "OpenAI: Foundation"},
		{"https://www.anthropic.com/news/some-announcement", "Anthropic: Some Announcement"},
		{"https://cloud.google.com/blog/products/new-thing", "Google Cloud: Products New Thing"},
		{"https://blog.google/technology/ai-update", "Google: Technology AI Update"},
		{"https://techcrunch.com/2025/11/02/some-story-about-llms/", "TechCrunch: Some Story About LLMs"},
		{"https://news.mit.edu/2025/ai-model-1234", "News.Mit: AI Model 1234"},
		{"https://research.google/blog/some-post/?utm_source=x#top", "Research.Google: Some Post"},
		{"https://ai.meta.com/blog/llama-4", "Ai.Meta: Llama 4"},
		{"https://example.com/posts/hello%20world.html", "Example: Hello World"},
		{"https://example.com/blog/a1b2c3d4e5f6a7b8c9/", "Example: AI Resource"},

		// curated
		{"https://stateof.ai/", "State of AI 2025 Report"},
		{"https://www.anthropic.com/engineering/equipping-agents-for-the-real-world-with-agent-skills", "Anthropic: Equipping Agents for the Real World with Agent Skills"},
		{"https://github.com/antgroup/ditto-talkinghead", "GitHub: Ditto Talking Head (AI Video Generation)"},
		{"https://github.com/Tencent-Hunyuan/HunyuanWorld-Mirror", "GitHub: HunyuanWorld (Tencent AI World Model)"},

		// site rules
		{"https://arxiv.org/abs/2501.12345", "arXiv: Research Paper 2501.12345"},
		{"https://arxiv.org/pdf/2501.12345v2.pdf", "arXiv: Research Paper 2501.12345v2"},
		{"https://github.com/owner/repo/tree/main", "GitHub: owner/repo"},
		{"https://www.youtube.com/watch?v=abc123", "YouTube: AI Video Content"},
		{"https://youtu.be/abc123", "YouTube: AI Video Content"},

		// social delegation with scraping off
		{"https://x.com/sama/status/12345", "sama — AI Discussion"},
		{"x.com/sama/status/12345", "sama — AI Discussion"},

		// category fallback
		{"https://www.anthropic.com/", "Anthropic"},
		{"https://someplatform.ai/", "Someplatform: AI Platform"},
		{"https://cs.stanford.edu", "Cs.Stanford: Academic Research"},
		{"https://example.org", "Example: Research Organization"},
		{"https://deeplab.io", "Deeplab.Io: Research Publication"},
		{"https://example.com", "Example: AI Resource"},
		{"not a url", "AI Resource"},
		{"", "AI Resource"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(ctx, tt.url))
		})
	}
	assert.Zero(t, calls, "fast mode must not fetch")
}

func TestResolveTotal(t *testing.T) {
	r := newTestResolver(ModeSmart, nil, nil)
	ctx := context.Background()
	inputs := []string{
		"", " ", "http://", "://", "%%%", "https://[::1]/x", "mailto:a@b.c",
		"https://例え.jp/パス", "ftp://files.example.com/a.tar.gz", "javascript:alert(1)",
		"https://x.com/", "https://x.com/i/status/1", strings.Repeat("a", 5000),
		"https://example.com/" + strings.Repeat("word-", 80),
	}
	for _, in := range inputs {
		got := r.Resolve(ctx, in)
		assert.NotEmpty(t, strings.TrimSpace(got), "Resolve(%q)", in)
		assert.LessOrEqual(t, utf8.RuneCountInString(got), 200, "Resolve(%q) too long", in)
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := newTestResolver(ModeFast, nil, nil)
	ctx := context.Background()
	for _, u := range []string{
		"https://openai.com/index/introducing-aardvark/",
		"https://example.org/research/new-paper",
		"https://x.com/sama/status/12345",
	} {
		assert.Equal(t, r.Resolve(ctx, u), r.Resolve(ctx, u), u)
	}
}

func TestResolveMetadata(t *testing.T) {
	pages := map[string]string{
		"https://openai.com/index/introducing-aardvark/": `<html><head><title>Introducing Aardvark | OpenAI</title></head></html>`,
		"https://example.com/suffix":                     `<html><head><meta property="og:title" content="A fine article title - example.com"></head></html>`,
		"https://example.com/generic":                    `<html><head><title>Home</title><meta name="description" content="A longer description of what this page is actually about"></head></html>`,
		"https://example.com/tiny-page":                  `<html><head><title>Hi</title></head></html>`,
		"https://example.com/long":                       `<html><head><title>` + strings.Repeat("verbose ", 30) + `</title></head></html>`,
		"https://example.com/hyphen":                     `<html><head><title>GPT-5 and the state-of-the-art</title></head></html>`,
	}
	r := newTestResolver(ModeSmart, pages, nil)
	ctx := context.Background()

	res := r.Explain(ctx, "https://openai.com/index/introducing-aardvark/")
	assert.Equal(t, "Introducing Aardvark — OpenAI", res.Title)
	assert.Equal(t, "metadata", res.Strategy)

	assert.Equal(t, "A fine article title", r.Resolve(ctx, "https://example.com/suffix"))
	assert.Equal(t, "A longer description of what this page is actually about", r.Resolve(ctx, "https://example.com/generic"))
	assert.Equal(t, "GPT-5 and the state-of-the-art", r.Resolve(ctx, "https://example.com/hyphen"))

	// too short after cleanup: falls through to the path strategy
	res = r.Explain(ctx, "https://example.com/tiny-page")
	assert.Equal(t, "path", res.Strategy)
	assert.Equal(t, "Example: Tiny Page", res.Title)

	long := r.Resolve(ctx, "https://example.com/long")
	assert.LessOrEqual(t, utf8.RuneCountInString(long), 100)
	assert.True(t, strings.HasSuffix(long, "..."), long)

	// fetch failure falls through
	res = r.Explain(ctx, "https://openai.com/index/missing-page/")
	assert.Equal(t, "OpenAI: Missing Page", res.Title)
	assert.Equal(t, "path", res.Strategy)
}

func TestResolveHybridSkipsUnknownDomains(t *testing.T) {
	calls := 0
	r := newTestResolver(ModeHybrid, map[string]string{}, &calls)
	ctx := context.Background()

	r.Resolve(ctx, "https://random-blog.com/post/thoughts-on-agents")
	assert.Zero(t, calls)

	r.Resolve(ctx, "https://openai.com/index/x-y")
	assert.Equal(t, 1, calls)
}

func TestShouldFetch(t *testing.T) {
	tests := []struct {
		mode Mode
		url  string
		want bool
	}{
		{ModeHybrid, "https://openai.com/index/a", true},
		{ModeHybrid, "https://blog.google/technology/x", true},
		{ModeHybrid, "https://news.mit.edu/x", true},
		{ModeHybrid, "https://example.org/x", true},
		{ModeHybrid, "https://somelab.io/x", true},
		{ModeHybrid, "https://startup.ai/x", true},
		{ModeHybrid, "https://random-blog.com/x", false},
		{ModeHybrid, "https://www.youtube.com/watch?v=1", false},
		{ModeHybrid, "https://www.reddit.com/r/x", false},
		{ModeSmart, "https://random-blog.com/x", true},
		{ModeSmart, "https://x.com/a/status/1", false},
		{ModeSmart, "https://linkedin.com/in/a", false},
		{ModeFast, "https://openai.com/index/a", false},
		{ModeSmart, "garbage", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode)+" "+tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldFetch(tt.mode, tt.url))
		})
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeHybrid, "FAST": ModeFast, "smart": ModeSmart, " hybrid ": ModeHybrid} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("turbo")
	assert.Error(t, err)
}

func TestMetadataTimeout(t *testing.T) {
	engine.Init(engine.Config{FetchTimeout: 5 * time.Second})
	t.Cleanup(func() { engine.Init(engine.Config{}) })
	r := New(DefaultTable(), Options{MaxTimeout: 7 * time.Second})
	assert.Equal(t, 7*time.Second, r.timeout(parseTarget("https://openai.com/x")))
	assert.Equal(t, 5*time.Second, r.timeout(parseTarget("https://example.com/x")))

	r = New(DefaultTable(), Options{})
	assert.Equal(t, 8*time.Second, r.timeout(parseTarget("https://www.anthropic.com/x")))
}

func TestResolveCache(t *testing.T) {
	engine.InitCache("", time.Minute, 100, time.Minute)
	t.Cleanup(engine.CloseCache)

	calls := 0
	pages := map[string]string{"https://openai.com/cached": `<title>A cached page title</title>`}
	r := newTestResolver(ModeSmart, pages, &calls)
	r.opts.Cache = true
	ctx := context.Background()

	first := r.Explain(ctx, "https://openai.com/cached")
	second := r.Explain(ctx, "https://openai.com/cached")
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, "cache:metadata", second.Strategy)
	assert.Equal(t, 1, calls)
}

func TestResolveCacheSkipsFallbacks(t *testing.T) {
	engine.InitCache("", time.Minute, 100, time.Minute)
	t.Cleanup(engine.CloseCache)

	pages := map[string]string{}
	calls := 0
	r := newTestResolver(ModeSmart, pages, &calls)
	r.opts.Cache = true
	ctx := context.Background()
	u := "https://openai.com/flaky-page"

	// fetch fails: the path title is served but not stored
	first := r.Explain(ctx, u)
	assert.Equal(t, "path", first.Strategy)
	assert.Equal(t, "OpenAI: Flaky Page", first.Title)

	// the page comes back: the next lookup fetches again and wins
	pages[u] = `<title>The flaky page finally loaded</title>`
	second := r.Explain(ctx, u)
	assert.Equal(t, "metadata", second.Strategy)
	assert.Equal(t, "The flaky page finally loaded", second.Title)
	assert.Equal(t, 2, calls)

	assert.Equal(t, "cache:metadata", r.Explain(ctx, u).Strategy)
	assert.Equal(t, 2, calls)
}

func TestResolveCacheKeyedByTable(t *testing.T) {
	engine.InitCache("", time.Minute, 100, time.Minute)
	t.Cleanup(engine.CloseCache)

	u := "https://openai.com/announced"
	pages := map[string]string{u: `<title>Fetched announcement title</title>`}
	r := newTestResolver(ModeSmart, pages, nil)
	r.opts.Cache = true
	ctx := context.Background()
	assert.Equal(t, "Fetched announcement title", r.Resolve(ctx, u))

	curated := DefaultTable().Merge(Table{Patterns: map[string]string{"openai.com/announced": "OpenAI: Curated Announcement"}})
	r2 := New(curated, Options{Mode: ModeSmart, Cache: true})
	r2.fetch = r.fetch
	res := r2.Explain(ctx, u)
	assert.Equal(t, "OpenAI: Curated Announcement", res.Title)
	assert.Equal(t, "curated", res.Strategy)

	assert.NotEqual(t, DefaultTable().Fingerprint(), curated.Fingerprint())
	assert.Equal(t, DefaultTable().Fingerprint(), DefaultTable().Fingerprint())
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
patterns:
  "https://www.example.com/special/": "Example: Special Page"
  stateof.ai: "State of AI Report (override)"
labels:
  example.com: "Example Inc"
`), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)

	r := New(table, Options{Mode: ModeFast})
	ctx := context.Background()
	assert.Equal(t, "Example: Special Page", r.Resolve(ctx, "https://example.com/special/page-1"))
	assert.Equal(t, "State of AI Report (override)", r.Resolve(ctx, "https://stateof.ai"))
	assert.Equal(t, "Example Inc: Other Page", r.Resolve(ctx, "https://example.com/other-page"))

	// the built-in table is untouched
	assert.Equal(t, "State of AI 2025 Report", New(DefaultTable(), Options{Mode: ModeFast}).Resolve(ctx, "https://stateof.ai"))

	_, err = LoadTable(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("patterns: [unclosed"), 0o644))
	_, err = LoadTable(bad)
	assert.Error(t, err)
}

func TestTableMatchLongestPrefix(t *testing.T) {
	table := Table{Patterns: map[string]string{
		"example.com/a":   "short",
		"example.com/a/b": "long",
		"sub.example.com": "host",
	}}
	assert.Equal(t, "long", mustMatch(t, table, "https://example.com/a/b/c"))
	assert.Equal(t, "short", mustMatch(t, table, "https://example.com/a/x"))
	assert.Equal(t, "host", mustMatch(t, table, "https://deep.sub.example.com/anything"))

	_, ok := table.match(parseTarget("https://notsub.example.com.evil.io/"))
	assert.False(t, ok)
}

func mustMatch(t *testing.T, table Table, u string) string {
	t.Helper()
	got, ok := table.match(parseTarget(u))
	require.True(t, ok, u)
	return got
}

type fakeUpstream map[string]string

func (f fakeUpstream) Title(_ context.Context, rawURL string) (string, bool, error) {
	t, ok := f[rawURL]
	if !ok {
		return "", true, errors.New("upstream down")
	}
	return t, true, nil
}

func TestResolveUpstream(t *testing.T) {
	hn := "https://news.ycombinator.com/item?id=42"
	yt := "https://www.youtube.com/watch?v=abc123"
	up := fakeUpstream{hn: "Hacker News: Show HN: A tiny agent"}

	r := newTestResolver(ModeHybrid, nil, nil)
	r.upstream = up
	got := r.Explain(context.Background(), hn)
	assert.Equal(t, "Hacker News: Show HN: A tiny agent", got.Title)
	assert.Equal(t, "upstream", got.Strategy)

	// A failed lookup falls through to the site rule.
	got = r.Explain(context.Background(), yt)
	assert.Equal(t, "YouTube: AI Video Content", got.Title)
	assert.Equal(t, "site-rule", got.Strategy)

	fast := newTestResolver(ModeFast, nil, nil)
	fast.upstream = up
	assert.NotEqual(t, "upstream", fast.Explain(context.Background(), hn).Strategy)
}
