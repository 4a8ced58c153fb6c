package mock

import "github.com/fwojciec/coachdir"

var (
	_ coachdir.Extractor = (*Extractor)(nil)
	_ coachdir.DebugSink = (*DebugSink)(nil)
)

// Extractor is a mock implementation of coachdir.Extractor.
type Extractor struct {
	ExtractFn func(sourceURL, html string) coachdir.Profile
}

func (e *Extractor) Extract(sourceURL, html string) coachdir.Profile {
	return e.ExtractFn(sourceURL, html)
}

// DebugSink is a mock implementation of coachdir.DebugSink.
type DebugSink struct {
	SaveFn func(name, html string) (string, error)
}

func (s *DebugSink) Save(name, html string) (string, error) {
	return s.SaveFn(name, html)
}
