package coachdir

// Selectors holds the site-specific queries used by the extractor.
// CSS fields are goquery selectors; XPath fields are XPath 1.0 expressions.
type Selectors struct {
	Name              string   `yaml:"name" json:"name"`
	NameFallback      string   `yaml:"nameFallback" json:"nameFallback"`
	Email             string   `yaml:"email" json:"email"`
	EmailLink         string   `yaml:"emailLink" json:"emailLink"`
	CountryBlock      string   `yaml:"countryBlock" json:"countryBlock"`
	About             string   `yaml:"about" json:"about"`
	Paragraph         string   `yaml:"paragraph" json:"paragraph"`
	Labels            string   `yaml:"labels" json:"labels"`
	ExpertisePath     string   `yaml:"expertisePath" json:"expertisePath"`
	ExpertisePatterns []string `yaml:"expertisePatterns" json:"expertisePatterns"`
}

// DefaultSelectors returns the selectors matching the directory's profile
// page markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Name:          "h1.c-person__name",
		NameFallback:  "h1",
		Email:         "a.c-person__email",
		EmailLink:     `a[href^="mailto:"]`,
		CountryBlock:  "div",
		About:         "div.c-person--content",
		Paragraph:     "p",
		Labels:        "strong, b, h2, h3, h4, h5, label",
		ExpertisePath: "/html/body/div[2]/div/main/article/div[1]/header/div[2]/div[3]/p[1]/text()",
		ExpertisePatterns: []string{
			"//p[contains(text(), 'Expertise')]",
			"//p[contains(text(), 'Specialty')]",
			"//p[contains(text(), 'Focus')]",
			"//div[contains(@class, 'expertise')]//p",
			"//div[contains(@class, 'specialty')]//p",
			"//div[contains(@class, 'person-info')]//p",
			"//h1[contains(@class, 'person')]/following-sibling::div//p",
		},
	}
}
