package titles

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/anatolykoptev/go_weekly/internal/engine"
)

// Table is the curated knowledge the resolver consults before any heuristic.
// Patterns map a canonical "host/path" prefix to a fixed title; Labels map a
// host or registrable domain to the name used as a title prefix.
// A Table is never mutated after construction.
type Table struct {
	Patterns map[string]string `yaml:"patterns"`
	Labels   map[string]string `yaml:"labels"`
}

var defaultPatterns = map[string]string{
	// Anthropic
	"anthropic.com/engineering/equipping-agents":       "Anthropic: Equipping Agents for the Real World with Agent Skills",
	"anthropic.com/research/economic-policy-responses": "Anthropic: Economic Policy Responses Research",
	"anthropic.com/news/skills":                        "Anthropic: Agent Skills Announcement",
	"anthropic.com/news/statement-dario-amodei":        "Anthropic: Dario Amodei on American AI Leadership",

	// Google
	"deepmind.google/discover/blog/introducing-codemender":                               "Google DeepMind: CodeMender AI Agent for Code Security",
	"blog.google/technology/google-labs/video-overviews-nano-banana":                     "Google Labs: Video Overviews Nano Banana",
	"blog.google/technology/research/quantum-echoes":                                     "Google Research: Quantum Echoes Willow Advantage",
	"cloud.google.com/blog/products/ai-machine-learning/announcing-the-2025-dora-report": "Google Cloud: 2025 DORA Report Announcement",
	"pair.withgoogle.com/guidebook":                                                      "Google PAIR Guidebook",
	"learnyourway.withgoogle.com":                                                        "Google: Learn Your Way AI Learning Platform",

	// OpenAI
	"chatgpt.com/atlas":                          "OpenAI Atlas - AI Web Browser",
	"openai.com/index/introducing-chatgpt-atlas": "OpenAI: Introducing ChatGPT Atlas",

	// Research, policy and news
	"stateof.ai": "State of AI 2025 Report",
	"brookings.edu/articles/new-data-show-no-ai-jobs-apocalypse-for-now":         "Brookings: New Data Show No AI Jobs Apocalypse (For Now)",
	"budgetlab.yale.edu/research/evaluating-impact-ai-labor-market":              "Yale Budget Lab: Evaluating Impact of AI on Labor Market",
	"dallasfed.org/research/economics/2025/0624":                                 "Dallas Fed: AI and Economic Research",
	"fortune.com/2025/10/10/ai-cheating-on-homework-chatbots-students-education": "Fortune: AI Cheating on Homework - Students and Education",
	"superintelligence-statement.org":                                            "Statement on Superintelligence",
	"artificialanalysis.ai/media/survey-2025":                                    "Artificial Analysis: 2025 Generative Media Survey",
	"techcrunch.com/2025/10/21/netflix-goes-all-in":                              "TechCrunch: Netflix Goes All-In on Generative AI",
	"zdnet.com/article/adobe-mightve-just-solved":                                "ZDNet: Adobe Solves Generative AI Legal Risks",
	"creativebloq.com/ai/ai-art/could-this-iphone-nano-banana-camera":            "Creative Bloq: iPhone Nano Banana Camera for AI Photography",

	// Layoff trackers
	"layoffs.fyi":       "Layoffs.fyi - Tech Layoff Tracker",
	"trueup.io/layoffs": "TrueUp.io - Layoff Tracking",
	"warntracker.com":   "WarnTracker - Layoff Warnings",
	"publish.obsidian.md/vg-layoffs/archive/2025": "Obsidian: Layoffs Archive 2025",

	// Tools, models and projects
	"github.com/antgroup/ditto-talkinghead":          "GitHub: Ditto Talking Head (AI Video Generation)",
	"github.com/tencent-hunyuan/hunyuanworld-mirror": "GitHub: HunyuanWorld (Tencent AI World Model)",
	"metaphysic.ai/studios":                          "Metaphysic Studios - AI VFX Innovation",
	"deepseek.ai/blog/deepseek-ocr":                  "DeepSeek: OCR Context Compression",
	"wavespeed.ai":                                   "WaveSpeed.ai - AI Tool",
	"moondream.ai/blog/moondream-3-preview":          "Moondream 3 Preview",
	"huggingface.co/moondream/moondream3-preview":    "Hugging Face: Moondream3 Preview Model",
	"higgsfield.ai/sora-2-prompt-guide":              "Higgsfield.ai: Sora 2 Prompt Guide",
	"huixiang.baidu.com":                             "Baidu Huixiang AI Tool",
	"runware.ai/models":                              "Runware.ai: AI Models",
	"streamlake.ai/product/kat-coder":                "StreamLake.ai: Kat Coder Product",
	"scispace.com/ai-detector":                       "SciSpace AI Detector",
	"exa.ai/blog/exa-api-2-0":                        "Exa.ai: API 2.0 Launch",
	"video-zero-shot.github.io":                      "Video Zero-Shot Research Project",
	"kangliao929.github.io/projects/puffin":          "Puffin AI Project",
	"stable-diffusion-art.com/comfyui-desktop":       "Stable Diffusion Art - ComfyUI Desktop",
}

var defaultLabels = map[string]string{
	"anthropic.com":            "Anthropic",
	"openai.com":               "OpenAI",
	"chatgpt.com":              "OpenAI",
	"deepmind.google":          "Google DeepMind",
	"google.com":               "Google",
	"blog.google":              "Google",
	"cloud.google.com":         "Google Cloud",
	"pair.withgoogle.com":      "Google PAIR",
	"huggingface.co":           "Hugging Face",
	"brookings.edu":            "Brookings",
	"fortune.com":              "Fortune",
	"yale.edu":                 "Yale",
	"dallasfed.org":            "Dallas Fed",
	"techcrunch.com":           "TechCrunch",
	"theverge.com":             "The Verge",
	"zdnet.com":                "ZDNet",
	"layoffs.fyi":              "Layoffs.fyi",
	"trueup.io":                "TrueUp.io",
	"warntracker.com":          "WarnTracker",
	"wavespeed.ai":             "WaveSpeed.ai",
	"moondream.ai":             "Moondream",
	"higgsfield.ai":            "Higgsfield.ai",
	"runware.ai":               "Runware.ai",
	"streamlake.ai":            "StreamLake.ai",
	"scispace.com":             "SciSpace",
	"exa.ai":                   "Exa.ai",
	"creativebloq.com":         "Creative Bloq",
	"stable-diffusion-art.com": "Stable Diffusion Art",
	"publish.obsidian.md":      "Obsidian",
}

// DefaultTable returns a fresh copy of the built-in table.
func DefaultTable() Table {
	return Table{
		Patterns: normalizeKeys(defaultPatterns),
		Labels:   normalizeKeys(defaultLabels),
	}
}

// LoadTable returns the built-in table overlaid with the YAML file at path.
// An empty path returns DefaultTable.
func LoadTable(path string) (Table, error) {
	t := DefaultTable()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read patterns file: %w", err)
	}
	var extra Table
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return Table{}, fmt.Errorf("parse patterns file %s: %w", path, err)
	}
	return t.Merge(extra), nil
}

// Merge returns a new Table where entries of other win over t.
func (t Table) Merge(other Table) Table {
	out := Table{
		Patterns: maps.Clone(t.Patterns),
		Labels:   maps.Clone(t.Labels),
	}
	if out.Patterns == nil {
		out.Patterns = map[string]string{}
	}
	if out.Labels == nil {
		out.Labels = map[string]string{}
	}
	maps.Copy(out.Patterns, normalizeKeys(other.Patterns))
	maps.Copy(out.Labels, normalizeKeys(other.Labels))
	return out
}

// Fingerprint identifies the table contents; equal tables share it.
func (t Table) Fingerprint() string {
	parts := make([]string, 0, len(t.Patterns)+len(t.Labels))
	for _, k := range slices.Sorted(maps.Keys(t.Patterns)) {
		parts = append(parts, "p:"+k+"="+t.Patterns[k])
	}
	for _, k := range slices.Sorted(maps.Keys(t.Labels)) {
		parts = append(parts, "l:"+k+"="+t.Labels[k])
	}
	return engine.CacheKey(parts...)
}

// match returns the title of the longest pattern that prefixes key.
// Host-only patterns match the host and its subdomains.
func (t Table) match(tg *target) (string, bool) {
	best, title := "", ""
	for p, v := range t.Patterns {
		if len(p) <= len(best) {
			continue
		}
		if !strings.Contains(p, "/") {
			if tg.host == p || strings.HasSuffix(tg.host, "."+p) {
				best, title = p, v
			}
			continue
		}
		if strings.HasPrefix(tg.key, p) {
			best, title = p, v
		}
	}
	return title, best != ""
}

func normalizeKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		k = strings.ToLower(strings.TrimSpace(k))
		k = strings.TrimPrefix(strings.TrimPrefix(k, "https://"), "http://")
		k = strings.TrimSuffix(strings.TrimPrefix(k, "www."), "/")
		if k != "" && strings.TrimSpace(v) != "" {
			out[k] = strings.TrimSpace(v)
		}
	}
	return out
}
