// Package diagnostics writes failure artifacts (screenshot, cleaned DOM and
// page metadata) for a browser session.
package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"swaglabs-e2e/internal/application/port/output"
	"swaglabs-e2e/internal/domain/entity"
)

var _ output.DiagnosticsPort = (*Recorder)(nil)

const (
	screenshotFile = "screenshot.jpg"
	domFile        = "dom.html"
	metaFile       = "page.yaml"
)

type Recorder struct {
	dir    string
	logger output.LoggerPort
	now    func() time.Time
	seq    int
}

func NewRecorder(dir string, log output.LoggerPort) *Recorder {
	return &Recorder{
		dir:    dir,
		logger: log,
		now:    time.Now,
	}
}

type pageMeta struct {
	Label      string    `yaml:"label"`
	URL        string    `yaml:"url"`
	Title      string    `yaml:"title"`
	CapturedAt time.Time `yaml:"captured_at"`
	Screenshot string    `yaml:"screenshot,omitempty"`
	Errors     []string  `yaml:"errors,omitempty"`
}

// Snapshot reads URL, title and cleaned DOM from the session.
func (r *Recorder) Snapshot(ctx context.Context, session output.SessionPort) (*entity.PageSnapshot, error) {
	var errs []error

	url, err := session.CurrentURL(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("url: %w", err))
	}
	title, err := session.Title(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("title: %w", err))
	}
	raw, err := session.HTML(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("html: %w", err))
	}

	return &entity.PageSnapshot{
		URL:   url,
		Title: title,
		HTML:  CleanDOM(raw, nil),
	}, errors.Join(errs...)
}

// Capture writes the artifacts for label into a fresh directory and returns
// its path. Partial captures are kept; the error lists what was missing.
func (r *Recorder) Capture(ctx context.Context, session output.SessionPort, label string) (string, error) {
	r.seq++
	target := filepath.Join(r.dir, fmt.Sprintf("%s_%03d_%s", r.now().Format("2006-01-02_15-04-05"), r.seq, sanitize(label)))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	meta := pageMeta{Label: label, CapturedAt: r.now()}
	var errs []error

	snap, err := r.Snapshot(ctx, session)
	if err != nil {
		errs = append(errs, err)
	}
	meta.URL, meta.Title = snap.URL, snap.Title
	if snap.HTML != "" {
		if err := os.WriteFile(filepath.Join(target, domFile), []byte(snap.HTML), 0o644); err != nil {
			errs = append(errs, fmt.Errorf("write dom: %w", err))
		}
	}

	shot, err := session.Screenshot(ctx)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("screenshot: %w", err))
	case shot != nil:
		if err := os.WriteFile(filepath.Join(target, screenshotFile), shot.Data, 0o644); err != nil {
			errs = append(errs, fmt.Errorf("write screenshot: %w", err))
		} else {
			meta.Screenshot = screenshotFile
		}
	}

	for _, e := range errs {
		meta.Errors = append(meta.Errors, e.Error())
	}
	data, err := yaml.Marshal(&meta)
	if err != nil {
		errs = append(errs, fmt.Errorf("marshal meta: %w", err))
	} else if err := os.WriteFile(filepath.Join(target, metaFile), data, 0o644); err != nil {
		errs = append(errs, fmt.Errorf("write meta: %w", err))
	}

	if len(errs) > 0 && r.logger != nil {
		r.logger.Warn("incomplete diagnostics", "dir", target, "errors", len(errs))
	}
	return target, errors.Join(errs...)
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, s)
	s = strings.Trim(s, "_")
	if s == "" {
		return "capture"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
