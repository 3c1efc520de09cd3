// Package weekly creates dated weekly link collections and edits their
// "Links from Office Hours" section.
package weekly

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/anatolykoptev/go_weekly/internal/engine"
)

// Date layouts for file names and for display.
const (
	DateLayout    = "2006-01-02"
	DisplayLayout = "January 02, 2006"
)

var (
	ErrExists  = errors.New("weekly file already exists")
	ErrBadDate = errors.New("invalid date")
)

var fileNameRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-links\.md$`)

// Values fill a template.
type Values struct {
	Date      time.Time
	VideoURL  string
	VideoText string
}

// Options for Instantiate. An empty Date means today.
type Options struct {
	Dir       string
	Date      string // YYYY-MM-DD
	VideoURL  string
	VideoText string
	Force     bool // overwrite an existing file
	DryRun    bool // return the content without writing
}

// Result of Instantiate.
type Result struct {
	Path    string
	Date    time.Time
	Content string
	Written bool
}

// File is one dated collection on disk.
type File struct {
	Name string
	Path string
	Date time.Time
}

// ParseDate parses YYYY-MM-DD; an empty string means today.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: use YYYY-MM-DD", ErrBadDate, s)
	}
	return d, nil
}

// FileName is the collection file name for d.
func FileName(d time.Time) string {
	return d.Format(DateLayout) + "-links.md"
}

// ParseFileName extracts the date from a collection file name.
// ok is false for names outside the pattern; err is set when the name
// matches the pattern but the date is not a real one.
func ParseFileName(name string) (d time.Time, ok bool, err error) {
	m := fileNameRe.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false, nil
	}
	d, err = time.Parse(DateLayout, m[1])
	if err != nil {
		return time.Time{}, true, err
	}
	return d, true, nil
}

// Instantiate renders the template for opts.Date into dir and writes it
// unless DryRun is set. An existing file is an error without Force.
func Instantiate(opts Options) (Result, error) {
	d, err := ParseDate(opts.Date)
	if err != nil {
		return Result{}, err
	}
	dir := opts.Dir
	if dir == "" {
		dir = engine.Cfg.WeeklyDir
	}
	res := Result{Path: filepath.Join(dir, FileName(d)), Date: d}

	if _, err := os.Stat(res.Path); err == nil && !opts.Force {
		return res, fmt.Errorf("%w: %s: supply --force to overwrite", ErrExists, res.Path)
	}

	tpl, err := LoadTemplate(dir)
	if err != nil {
		return res, err
	}
	res.Content = Fill(tpl, Values{Date: d, VideoURL: opts.VideoURL, VideoText: opts.VideoText})
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
	slog.Info("weekly: created", slog.String("path", res.Path))
	return res, nil
}

// Scan lists the dated collections in dir, newest first. Names that look
// like collections but carry an impossible date are skipped with a warning.
func Scan(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read weekly dir: %w", err)
	}
	var files []File
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		d, ok, err := ParseFileName(e.Name())
		if !ok {
			if strings.HasSuffix(e.Name(), "-links.md") {
				slog.Warn("weekly: skipping file with unparsable name", slog.String("file", e.Name()))
			}
			continue
		}
		if err != nil {
			slog.Warn("weekly: skipping file with invalid date",
				slog.String("file", e.Name()), slog.Any("error", err))
			continue
		}
		files = append(files, File{Name: e.Name(), Path: filepath.Join(dir, e.Name()), Date: d})
	}
	slices.SortFunc(files, func(a, b File) int { return b.Date.Compare(a.Date) })
	return files, nil
}

// Latest returns the collection in dir modified most recently.
func Latest(dir string) (File, error) {
	files, err := Scan(dir)
	if err != nil {
		return File{}, err
	}
	var (
		best    File
		bestMod time.Time
	)
	for _, f := range files {
		info, err := os.Stat(f.Path)
		if err != nil {
			continue
		}
		if best.Path == "" || info.ModTime().After(bestMod) {
			best, bestMod = f, info.ModTime()
		}
	}
	if best.Path == "" {
		return File{}, fmt.Errorf("no weekly files in %s: %w", dir, os.ErrNotExist)
	}
	return best, nil
}
