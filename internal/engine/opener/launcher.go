package opener

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/anatolykoptev/go_weekly/internal/engine/rawlinks"
)

var launcherTmpl = template.Must(template.New("launcher").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Office Hours Links — Open All</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 600px; margin: 2rem auto; padding: 1rem; }
        h1 { font-size: 1.25rem; }
        button { font-size: 1rem; padding: 0.75rem 1.5rem; cursor: pointer; background: #1a73e8; color: white; border: none; border-radius: 6px; }
        button:hover { background: #1557b0; }
        .count { color: #666; margin: 0.5rem 0; }
        li { margin: 0.25rem 0; }
    </style>
</head>
<body>
    <h1>Office Hours Links</h1>
    <p class="count">{{len .}} links</p>
    <button onclick="openAll()">Open All in New Tabs</button>
    <p style="margin-top: 1rem; font-size: 0.875rem; color: #666;">Note: Popup blockers may block multiple tabs. Allow popups for this page if needed.</p>
    <ul>
{{- range .}}
        <li><a href="{{.URL}}" target="_blank" rel="noopener noreferrer">{{if .Term}}🔎 {{.Term}}{{else}}{{.URL}}{{end}}</a></li>
{{- end}}
    </ul>
    <script>
        const urls = [{{range $i, $it := .}}{{if $i}}, {{end}}{{$it.URL}}{{end}}];
        function openAll() {
            urls.forEach(url => window.open(url, '_blank'));
        }
    </script>
</body>
</html>
`))

// LauncherPath is where the launcher page for a RAW_LINKS file goes:
// next to it, named "<input>-launcher.html".
func LauncherPath(input string) string {
	return filepath.Join(filepath.Dir(input), filepath.Base(input)+"-launcher.html")
}

// RenderLauncher returns a page with an "Open All" button for items.
func RenderLauncher(items []rawlinks.Item) ([]byte, error) {
	var buf bytes.Buffer
	if err := launcherTmpl.Execute(&buf, items); err != nil {
		return nil, fmt.Errorf("render launcher: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteLauncher renders the launcher page to path.
func WriteLauncher(path string, items []rawlinks.Item) error {
	data, err := RenderLauncher(items)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write launcher: %w", err)
	}
	return nil
}
