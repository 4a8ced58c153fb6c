package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/coachdir"
)

// Ensure LoggingProfileWriter implements coachdir.ProfileWriter.
var _ coachdir.ProfileWriter = (*LoggingProfileWriter)(nil)

// LoggingProfileWriter wraps a ProfileWriter with logging.
type LoggingProfileWriter struct {
	next   coachdir.ProfileWriter
	logger *slog.Logger
}

// NewLoggingProfileWriter creates a new LoggingProfileWriter.
func NewLoggingProfileWriter(next coachdir.ProfileWriter, logger *slog.Logger) *LoggingProfileWriter {
	return &LoggingProfileWriter{next: next, logger: logger}
}

// WriteProfiles delegates to the wrapped writer and logs the row count.
func (w *LoggingProfileWriter) WriteProfiles(ctx context.Context, profiles []coachdir.Profile) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write profiles",
			"rows", len(profiles),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteProfiles(ctx, profiles)
}
