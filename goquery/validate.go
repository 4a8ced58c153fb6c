package goquery

import (
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/xpath"
	"github.com/fwojciec/coachdir"
)

// ValidateSelectors checks that every CSS selector compiles and every XPath
// expression parses. goquery silently treats an invalid selector as
// matching nothing, so bad overrides are rejected up front.
func ValidateSelectors(s coachdir.Selectors) error {
	css := []struct {
		name, value string
	}{
		{"name", s.Name},
		{"nameFallback", s.NameFallback},
		{"email", s.Email},
		{"emailLink", s.EmailLink},
		{"countryBlock", s.CountryBlock},
		{"about", s.About},
		{"paragraph", s.Paragraph},
		{"labels", s.Labels},
	}
	for _, c := range css {
		if c.value == "" {
			return coachdir.Errorf(coachdir.EINVALID, "selector %s is empty", c.name)
		}
		if _, err := cascadia.Compile(c.value); err != nil {
			return coachdir.Errorf(coachdir.EINVALID, "selector %s %q: %v", c.name, c.value, err)
		}
	}

	if _, err := xpath.Compile(s.ExpertisePath); err != nil {
		return coachdir.Errorf(coachdir.EINVALID, "selector expertisePath %q: %v", s.ExpertisePath, err)
	}
	for i, expr := range s.ExpertisePatterns {
		if _, err := xpath.Compile(expr); err != nil {
			return coachdir.Errorf(coachdir.EINVALID, "selector expertisePatterns[%d] %q: %v", i, expr, err)
		}
	}
	return nil
}
