package titles

import "testing"

func TestPathTitle(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://openai.com/index/introducing-aardvark/", "Introducing Aardvark", true},
		{"https://example.com/blog/the-state-of-rag-in-2025", "The State of RAG in 2025", true},
		{"https://example.com/ChatGPT-for-teams", "ChatGPT for Teams", true},
		{"https://example.com/p/my_post_title.html", "My Post Title", true},
		{"https://example.com/posts/12345/", "", false},
		{"https://example.com/item/550e8400-e29b-41d4-a716-446655440000", "Item", true},
		{"https://example.com/research/", "", false},
		{"https://example.com/", "", false},
		{"https://example.com/x/caf%C3%A9-culture", "X Café Culture", true},
		{"https://example.com/ai-safety/new-report", "AI Safety New Report", true},
		{"https://blog.google/technology/ai-update", "Technology AI Update", true},
		{"https://example.com/2025/01/agents/in-the-wild/", "Agents in the Wild", true},
		{"https://example.com/en/docs/123/getting-started.html", "Docs Getting Started", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := pathTitle(parseTarget(tt.url))
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("pathTitle(%q) = %q, %v; want %q, %v", tt.url, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		raw, host, domain, key string
	}{
		{"https://www.OpenAI.com/Index/X/", "openai.com", "openai.com", "openai.com/index/x"},
		{"budgetlab.yale.edu/research", "budgetlab.yale.edu", "yale.edu", "budgetlab.yale.edu/research"},
		{"http://news.bbc.co.uk:8080/a", "news.bbc.co.uk", "bbc.co.uk", "news.bbc.co.uk/a"},
		{"localhost/x", "", "", ""},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			tg := parseTarget(tt.raw)
			if tg.host != tt.host || tg.domain != tt.domain || tg.key != tt.key {
				t.Errorf("parseTarget(%q) = {%q %q %q}, want {%q %q %q}",
					tt.raw, tg.host, tg.domain, tg.key, tt.host, tt.domain, tt.key)
			}
		})
	}
}

func TestLabelWalksParents(t *testing.T) {
	table := DefaultTable()
	tests := map[string]string{
		"https://budgetlab.yale.edu/x":   "Yale",
		"https://deepmind.google/blog/x": "Google DeepMind",
		"https://cloud.google.com/x":     "Google Cloud",
		"https://mail.google.com/x":      "Google",
	}
	for u, want := range tests {
		if got, ok := table.label(parseTarget(u)); !ok || got != want {
			t.Errorf("label(%q) = %q, %v; want %q", u, got, ok, want)
		}
	}
	if _, ok := table.label(parseTarget("https://example.com")); ok {
		t.Error("label(example.com) should not match")
	}
}

func TestCleanDomain(t *testing.T) {
	tests := map[string]string{
		"example.com":     "Example",
		"budget-lab.org":  "Budget-Lab",
		"research.google": "Research.Google",
		"someplatform.ai": "Someplatform",
		"news.mit.edu":    "News.Mit",
		"3d-models.io":    "3D-Models.Io",
		"deepmind.google": "Deepmind.Google",
	}
	for in, want := range tests {
		if got := cleanDomain(in); got != want {
			t.Errorf("cleanDomain(%q) = %q, want %q", in, got, want)
		}
	}
}
