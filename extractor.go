package coachdir

// Extractor turns one fetched profile page into a Profile.
type Extractor interface {
	// Extract never fails: fields that cannot be resolved are set to
	// Unknown. The returned profile always carries sourceURL.
	Extract(sourceURL, html string) Profile
}

// DebugSink keeps the raw HTML of pages that could not be fully extracted
// so they can be inspected offline.
type DebugSink interface {
	// Save stores html under a key derived from name and returns the
	// location it was written to.
	Save(name, html string) (string, error)
}
