package coachdir

import "strings"

// Unknown marks a field that no extraction strategy could resolve.
// It is distinct from the empty string.
const Unknown = "N/A"

// Field identifies one of the optional profile fields.
type Field int

// Profile fields in column order.
const (
	FieldName Field = iota
	FieldEmail
	FieldCountry
	FieldExpertise
	FieldAvailability
	FieldMethod
	FieldLanguage
	FieldAbout
)

// Fields returns all optional profile fields in column order.
func Fields() []Field {
	return []Field{
		FieldName,
		FieldEmail,
		FieldCountry,
		FieldExpertise,
		FieldAvailability,
		FieldMethod,
		FieldLanguage,
		FieldAbout,
	}
}

// String returns the column header for the field.
func (f Field) String() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldEmail:
		return "Email"
	case FieldCountry:
		return "Country"
	case FieldExpertise:
		return "Expertise"
	case FieldAvailability:
		return "Availability"
	case FieldMethod:
		return "Method"
	case FieldLanguage:
		return "Language"
	case FieldAbout:
		return "About Me"
	}
	return "Unknown"
}

// URLColumn is the header of the source URL column.
const URLColumn = "URL"

// Columns returns the table header for profile output.
func Columns() []string {
	cols := []string{URLColumn}
	for _, f := range Fields() {
		cols = append(cols, f.String())
	}
	return cols
}

// Profile is the result of extracting one profile page.
// Every field except SourceURL holds either extracted text or Unknown.
type Profile struct {
	SourceURL    string `json:"url"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Country      string `json:"country"`
	Expertise    string `json:"expertise"`
	Availability string `json:"availability"`
	Method       string `json:"method"`
	Language     string `json:"language"`
	About        string `json:"about"`
}

// NewProfile returns a profile for sourceURL with every field set to Unknown.
func NewProfile(sourceURL string) Profile {
	return Profile{
		SourceURL:    sourceURL,
		Name:         Unknown,
		Email:        Unknown,
		Country:      Unknown,
		Expertise:    Unknown,
		Availability: Unknown,
		Method:       Unknown,
		Language:     Unknown,
		About:        Unknown,
	}
}

// Get returns the value of a field.
func (p Profile) Get(f Field) string {
	switch f {
	case FieldName:
		return p.Name
	case FieldEmail:
		return p.Email
	case FieldCountry:
		return p.Country
	case FieldExpertise:
		return p.Expertise
	case FieldAvailability:
		return p.Availability
	case FieldMethod:
		return p.Method
	case FieldLanguage:
		return p.Language
	case FieldAbout:
		return p.About
	}
	return Unknown
}

// Set returns a copy of the profile with f set to value.
// Blank values are stored as Unknown.
func (p Profile) Set(f Field, value string) Profile {
	if strings.TrimSpace(value) == "" {
		value = Unknown
	}
	switch f {
	case FieldName:
		p.Name = value
	case FieldEmail:
		p.Email = value
	case FieldCountry:
		p.Country = value
	case FieldExpertise:
		p.Expertise = value
	case FieldAvailability:
		p.Availability = value
	case FieldMethod:
		p.Method = value
	case FieldLanguage:
		p.Language = value
	case FieldAbout:
		p.About = value
	}
	return p
}

// Missing returns the fields that are still Unknown.
func (p Profile) Missing() []Field {
	var missing []Field
	for _, f := range Fields() {
		if p.Get(f) == Unknown {
			missing = append(missing, f)
		}
	}
	return missing
}

// Row returns the profile as a table row in Columns order.
func (p Profile) Row() []string {
	row := []string{p.SourceURL}
	for _, f := range Fields() {
		row = append(row, p.Get(f))
	}
	return row
}

// ValidURL reports whether s looks like an absolute HTTP(S) URL.
func ValidURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// FieldStat summarizes how often a field was resolved across profiles.
type FieldStat struct {
	Field    Field
	Complete int
	Missing  int
}

// Percent returns the share of complete values in the range 0-100.
func (s FieldStat) Percent() float64 {
	total := s.Complete + s.Missing
	if total == 0 {
		return 0
	}
	return float64(s.Complete) / float64(total) * 100
}

// Completion computes per-field completion statistics in column order.
// Returns nil for an empty slice.
func Completion(profiles []Profile) []FieldStat {
	if len(profiles) == 0 {
		return nil
	}

	stats := make([]FieldStat, 0, len(Fields()))
	for _, f := range Fields() {
		stat := FieldStat{Field: f}
		for _, p := range profiles {
			if p.Get(f) == Unknown {
				stat.Missing++
			} else {
				stat.Complete++
			}
		}
		stats = append(stats, stat)
	}
	return stats
}
