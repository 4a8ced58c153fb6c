package goquery

import (
	"log/slog"

	"github.com/fwojciec/coachdir"
)

// Ensure Extractor implements coachdir.Extractor at compile time.
var _ coachdir.Extractor = (*Extractor)(nil)

// detailMatchers identify the availability, method and language labels.
// Order matters: a label matching several sets goes to the first unset field.
var detailMatchers = []LabelMatcher{
	{Field: coachdir.FieldAvailability, Keywords: []string{"availability", "available", "schedule"}},
	{Field: coachdir.FieldMethod, Keywords: []string{"method", "delivery", "coaching method", "coaching style"}},
	{Field: coachdir.FieldLanguage, Keywords: []string{"language", "languages", "speaks"}},
}

// Extractor pulls profile fields out of a profile page. Each field has its
// own ordered list of strategies and the first non-empty result wins.
// Extractor holds no per-call state and is safe for concurrent use.
type Extractor struct {
	selectors coachdir.Selectors
	logger    *slog.Logger
	debug     coachdir.DebugSink
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSelectors overrides the default page selectors.
func WithSelectors(s coachdir.Selectors) Option {
	return func(e *Extractor) {
		e.selectors = s
	}
}

// WithLogger sets the logger used for per-strategy diagnostics.
// Defaults to discarding all output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithDebugSink enables debug mode: pages whose expertise cannot be found
// are handed to sink.
func WithDebugSink(sink coachdir.DebugSink) Option {
	return func(e *Extractor) {
		e.debug = sink
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		selectors: coachdir.DefaultSelectors(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the profile found in html. Fields no strategy can
// resolve are left as coachdir.Unknown.
func (e *Extractor) Extract(sourceURL, html string) coachdir.Profile {
	p := coachdir.NewProfile(sourceURL)
	logger := e.logger.With("url", sourceURL)

	d, err := ParseDocument(html)
	if err != nil {
		logger.Warn("failed to parse profile page", "err", err)
		return p
	}

	s := e.selectors
	p = e.resolve(d, p, coachdir.FieldName, nameStrategies(s), logger)
	p = e.resolve(d, p, coachdir.FieldEmail, emailStrategies(s), logger)
	if p.Name != coachdir.Unknown {
		p = e.resolve(d, p, coachdir.FieldCountry, countryStrategies(s), logger)
	}

	p = e.resolve(d, p, coachdir.FieldExpertise, expertiseStrategies(s), logger)
	if p.Expertise == coachdir.Unknown {
		logger.Warn("could not extract expertise using any method")
		e.dump(p, html, logger)
	}

	scanner := LabelScanner{
		Selector: s.Labels,
		Tactics:  []Tactic{ParentMinusLabel, NextSibling, NextMatching(s.Paragraph)},
		Logger:   logger,
	}
	hits := scanner.Scan(d, detailMatchers)
	for _, m := range detailMatchers {
		hit, ok := hits[m.Field]
		if !ok {
			continue
		}
		logger.Info("found field", "field", m.Field.String(), "label", hit.Label, "tactic", hit.Tactic)
		p = p.Set(m.Field, hit.Value)
	}

	p = e.resolve(d, p, coachdir.FieldAbout, aboutStrategies(s), logger)

	for _, f := range p.Missing() {
		logger.Warn("field not found", "field", f.String())
	}
	return p
}

func (e *Extractor) resolve(d *Document, p coachdir.Profile, field coachdir.Field, strategies []Strategy, logger *slog.Logger) coachdir.Profile {
	value, strategy := Cascade(d, field, strategies, logger)
	if value == "" {
		return p
	}
	logger.Info("found field", "field", field.String(), "strategy", strategy)
	return p.Set(field, value)
}

// dump hands the raw page to the debug sink, if one is configured.
// Failures are logged and otherwise ignored.
func (e *Extractor) dump(p coachdir.Profile, html string, logger *slog.Logger) {
	if e.debug == nil {
		return
	}
	name := p.Name
	if name == coachdir.Unknown {
		name = "unknown"
	}
	path, err := e.debug.Save(name, html)
	if err != nil {
		logger.Error("failed to save debug page", "err", err)
		return
	}
	logger.Info("saved page for inspection", "path", path)
}
