package goquery

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/coachdir"
)

// Tactic reads the value belonging to a field label such as
// <strong>Availability:</strong>. It returns "" when it finds nothing.
type Tactic struct {
	Name  string
	Value func(label *goquery.Selection) string
}

// ParentMinusLabel takes the text of the label's parent with the label
// text removed. Other text in the same container is kept.
var ParentMinusLabel = Tactic{
	Name: "parent",
	Value: func(label *goquery.Selection) string {
		parent := label.Parent()
		if parent.Length() == 0 {
			return ""
		}
		return strings.TrimSpace(strings.ReplaceAll(parent.Text(), label.Text(), ""))
	},
}

// NextSibling takes the text of the first non-blank node after the label.
var NextSibling = Tactic{
	Name: "next sibling",
	Value: func(label *goquery.Selection) string {
		if label.Length() == 0 {
			return ""
		}
		return nodeText(nextNonBlank(label.Get(0)))
	},
}

// NextMatching takes the text of the first element after the label, in
// document order, that matches selector. An invalid selector never matches.
func NextMatching(selector string) Tactic {
	sel, err := cascadia.Compile(selector)
	return Tactic{
		Name: "next " + selector,
		Value: func(label *goquery.Selection) string {
			if err != nil || label.Length() == 0 {
				return ""
			}
			return nodeText(following(label.Get(0), sel))
		},
	}
}

// LabelMatcher associates a field with the keywords that identify its label.
type LabelMatcher struct {
	Field    coachdir.Field
	Keywords []string
}

// Matches reports whether the lowercased label text contains any keyword.
func (m LabelMatcher) Matches(labelText string) bool {
	text := strings.ToLower(strings.TrimSpace(labelText))
	for _, kw := range m.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// LabelScanner finds field values by looking for label-like elements and
// reading the value next to them.
type LabelScanner struct {
	// Selector matches label-like elements (bold, strong, headings, label).
	Selector string

	// Tactics are tried in order for each matching label.
	Tactics []Tactic

	// Logger receives tactics that panicked. Nil discards them.
	Logger *slog.Logger
}

// LabelHit records which label and tactic produced a field value.
type LabelHit struct {
	Label  string
	Tactic string
	Value  string
}

// Scan walks labels in document order. Each label goes to the first
// matcher, in slice order, that matches it and has no value yet; a field
// keeps the first value found for it.
func (s LabelScanner) Scan(d *Document, matchers []LabelMatcher) map[coachdir.Field]LabelHit {
	hits := make(map[coachdir.Field]LabelHit)

	d.Find(s.Selector).EachWithBreak(func(_ int, label *goquery.Selection) bool {
		text := label.Text()
		for _, m := range matchers {
			if _, done := hits[m.Field]; done || !m.Matches(text) {
				continue
			}
			if hit, ok := s.read(label); ok {
				hit.Label = strings.TrimSpace(text)
				hits[m.Field] = hit
			}
			break
		}
		return len(hits) < len(matchers)
	})

	return hits
}

func (s LabelScanner) read(label *goquery.Selection) (LabelHit, bool) {
	for _, t := range s.Tactics {
		v, err := t.run(label)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warn("label tactic error", "label", strings.TrimSpace(label.Text()), "tactic", t.Name, "err", err)
			}
			continue
		}
		if v != "" {
			return LabelHit{Tactic: t.Name, Value: v}, true
		}
	}
	return LabelHit{}, false
}

// run evaluates the tactic, converting a panic into an error.
func (t Tactic) run(label *goquery.Selection) (value string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tactic %q: %v", t.Name, r)
		}
	}()
	return strings.TrimSpace(t.Value(label)), nil
}
