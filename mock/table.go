package mock

import (
	"context"

	"github.com/fwojciec/coachdir"
)

// Compile-time interface verification.
var (
	_ coachdir.URLReader     = (*URLReader)(nil)
	_ coachdir.ProfileWriter = (*ProfileWriter)(nil)
)

// URLReader is a mock implementation of coachdir.URLReader.
type URLReader struct {
	ReadURLsFn func(ctx context.Context) ([]string, error)
}

func (r *URLReader) ReadURLs(ctx context.Context) ([]string, error) {
	return r.ReadURLsFn(ctx)
}

// ProfileWriter is a mock implementation of coachdir.ProfileWriter.
type ProfileWriter struct {
	WriteProfilesFn func(ctx context.Context, profiles []coachdir.Profile) error
}

func (w *ProfileWriter) WriteProfiles(ctx context.Context, profiles []coachdir.Profile) error {
	return w.WriteProfilesFn(ctx, profiles)
}
