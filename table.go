package coachdir

import "context"

// URLReader reads the raw URL column of a tabular input file.
// Values are returned as found; filtering invalid URLs is up to the caller.
type URLReader interface {
	ReadURLs(ctx context.Context) ([]string, error)
}

// ProfileWriter writes profiles as a flat table with a Columns header.
type ProfileWriter interface {
	WriteProfiles(ctx context.Context, profiles []Profile) error
}
