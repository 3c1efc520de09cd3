package weekly

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Template file names looked up inside the weekly directory.
const (
	TemplateFile = "template.md"
	IndexFile    = "index.md"
)

// Default values for the video placeholders.
const (
	DefaultVideoURL  = "https://youtube.com/your-video-link"
	DefaultVideoText = "YouTube Link Here"
)

// DefaultTemplate is used when the weekly directory has no template.md.
const DefaultTemplate = `# 🧠 Open Disruption — Weekly AI News Links
**Date:** {DISPLAY_DATE}
**Episode:** Weekly Office Hours

Welcome to this week’s curated list of the most important stories, research papers, threads, and tools in AI.

> 📺 Watch the full episode on YouTube: [{YOUTUBE_TEXT}]({YOUTUBE_URL})

---

## Links from Office Hours
*Presented in the order they were discussed during the episode*

- https://example.com

---

## 🗃️ Archive
You can find **all previous weeks** of curated AI news here:
👉 [Open Disruption Link Archive](./index.md)

---

*Curated for [Open Disruption](https://opendisruption.com/)*
*Follow for weekly deep dives into the future of AI.*
`

// LoadTemplate returns dir/template.md, or DefaultTemplate when it does not exist.
func LoadTemplate(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, TemplateFile))
	if errors.Is(err, os.ErrNotExist) {
		return DefaultTemplate, nil
	}
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(data), nil
}

// Fill substitutes the brace placeholders and the bracket placeholders of
// older templates.
func Fill(tpl string, v Values) string {
	video := v.VideoURL
	if video == "" {
		video = DefaultVideoURL
	}
	text := v.VideoText
	if text == "" {
		text = DefaultVideoText
	}
	display := v.Date.Format(DisplayLayout)

	return strings.NewReplacer(
		"{DISPLAY_DATE}", display,
		"{DATE}", v.Date.Format(DateLayout),
		"{YOUTUBE_URL}", video,
		"{YOUTUBE_TEXT}", text,
		"[Month Day, Year]", display,
		"(https://youtube.com/your-video-link)", "("+video+")",
		"[YouTube Link Here]", "["+text+"]",
	).Replace(tpl)
}
