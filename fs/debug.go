// Package fs provides file-based storage for debug pages and output tables.
package fs

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/fwojciec/coachdir"
)

// DefaultDebugDir is the directory debug pages are written to.
const DefaultDebugDir = "debug"

// debugTimeLayout gives second resolution: 20240131_154500.
const debugTimeLayout = "20060102_150405"

// SafeName converts a display name into a filename fragment by replacing
// every rune that is not a letter or digit with an underscore.
// Example: "Jane O'Neil" → "Jane_O_Neil"
func SafeName(name string) string {
	if name == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, name)
}

// DebugFilename returns the filename for a page saved at t.
// Example: ("Jane Doe", 2024-01-31 15:45:00) → debug_Jane_Doe_20240131_154500.html
func DebugFilename(name string, t time.Time) string {
	return "debug_" + SafeName(name) + "_" + t.Format(debugTimeLayout) + ".html"
}

// Ensure DebugSink implements coachdir.DebugSink at compile time.
var _ coachdir.DebugSink = (*DebugSink)(nil)

// DebugSink writes raw profile pages into a directory for offline inspection.
// The directory is created on first use.
type DebugSink struct {
	dir string
	now func() time.Time
}

// DebugOption configures a DebugSink.
type DebugOption func(*DebugSink)

// WithClock sets the time source used for filenames.
// Defaults to time.Now.
func WithClock(now func() time.Time) DebugOption {
	return func(s *DebugSink) {
		s.now = now
	}
}

// NewDebugSink creates a new DebugSink that writes to dir.
func NewDebugSink(dir string, opts ...DebugOption) *DebugSink {
	s := &DebugSink{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save writes html to the debug directory and returns the file path.
func (s *DebugSink) Save(name, html string) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, DebugFilename(name, s.now()))
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", err
	}
	return path, nil
}
