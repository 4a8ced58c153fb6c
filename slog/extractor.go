package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/coachdir"
)

// Ensure LoggingExtractor implements coachdir.Extractor.
var _ coachdir.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs how many fields each page
// resolved.
type LoggingExtractor struct {
	next   coachdir.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next coachdir.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the result.
func (e *LoggingExtractor) Extract(sourceURL, html string) (p coachdir.Profile) {
	defer func(begin time.Time) {
		missing := p.Missing()
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = f.String()
		}
		e.logger.Info("extract",
			"url", sourceURL,
			"found", len(coachdir.Fields())-len(missing),
			"missing", names,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(sourceURL, html)
}
