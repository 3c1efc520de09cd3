package rawlinks

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/anatolykoptev/go_weekly/internal/engine"
	"github.com/anatolykoptev/go_weekly/internal/engine/weekly"
)

// ImportOptions for Import. Date defaults to the input's base name.
type ImportOptions struct {
	Dir    string
	Input  string
	Date   string
	DryRun bool
}

// ImportResult is the weekly file produced by Import.
type ImportResult struct {
	Path     string   `json:"path"`
	URLs     []string `json:"urls"`
	Searches []string `json:"searches,omitempty"`
	Content  string   `json:"-"`
	Created  bool     `json:"created"`
	Written  bool     `json:"written"`
}

// Import puts the URLs of a RAW_LINKS file, unformatted, into the links
// section of the weekly file for its date. An existing weekly file keeps
// everything outside that section; otherwise one is made from the template.
// Search terms are reported but not written.
func Import(opts ImportOptions) (ImportResult, error) {
	date := opts.Date
	if date == "" {
		d, ok := DateFromPath(opts.Input)
		if !ok {
			return ImportResult{}, fmt.Errorf("%w: cannot infer date from %q: use --date YYYY-MM-DD",
				weekly.ErrBadDate, filepath.Base(opts.Input))
		}
		date = d
	}
	d, err := weekly.ParseDate(date)
	if err != nil {
		return ImportResult{}, err
	}

	items, err := ParseFile(opts.Input, "")
	if err != nil {
		return ImportResult{}, err
	}
	res := ImportResult{URLs: URLs(items), Searches: SearchTerms(items)}
	if len(res.URLs) == 0 {
		return res, fmt.Errorf("%w in %s", ErrNoURLs, opts.Input)
	}

	dir := opts.Dir
	if dir == "" {
		dir = engine.Cfg.WeeklyDir
	}
	res.Path = filepath.Join(dir, weekly.FileName(d))

	base, err := os.ReadFile(res.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		tpl, err := weekly.LoadTemplate(dir)
		if err != nil {
			return res, err
		}
		base = []byte(weekly.Fill(tpl, weekly.Values{Date: d}))
		res.Created = true
	case err != nil:
		return res, fmt.Errorf("read %s: %w", res.Path, err)
	}

	bullets := make([]string, 0, len(res.URLs))
	for _, u := range res.URLs {
		bullets = append(bullets, "- "+u)
	}
	res.Content, err = weekly.ReplaceLinks(string(base), strings.Join(bullets, "\n"))
	if err != nil {
		return res, fmt.Errorf("%s: %w", res.Path, err)
	}
	if len(res.Searches) > 0 {
		slog.Info("rawlinks: search topics left out", slog.Any("terms", res.Searches))
	}
	if opts.DryRun {
		return res, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, fmt.Errorf("create weekly dir: %w", err)
	}
	if err := os.WriteFile(res.Path, []byte(res.Content), 0o644); err != nil {
		return res, fmt.Errorf("write %s: %w", res.Path, err)
	}
	engine.IncrFilesWritten()
	res.Written = true
	slog.Info("rawlinks: imported", slog.String("path", res.Path), slog.Int("urls", len(res.URLs)))
	return res, nil
}
