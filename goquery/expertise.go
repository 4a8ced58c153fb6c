package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/coachdir"
)

// expertiseKeywords flag a paragraph as describing the person's specialty.
var expertiseKeywords = []string{
	"expertise", "specialty", "specialist", "specializes", "specializing",
	"focus", "focuses", "focusing", "experienced in", "skilled in",
}

// expertiseLabel identifies an expertise field label.
var expertiseLabel = LabelMatcher{
	Field:    coachdir.FieldExpertise,
	Keywords: []string{"expertise", "specialty", "specialization"},
}

// paragraphScanLimit is how many leading paragraphs are checked for
// expertise keywords.
const paragraphScanLimit = 5

// PlausibleExpertise rejects candidates that look like a bare label:
// single words and anything starting with "Email".
func PlausibleExpertise(value string) bool {
	return len(strings.Fields(value)) > 1 && !strings.HasPrefix(value, "Email")
}

// xpathText returns the text of the first node matched by expr.
func xpathText(d *Document, expr string) (string, error) {
	nodes, err := d.XPath(expr)
	if err != nil {
		return "", err
	}
	if len(nodes) == 0 {
		return "", nil
	}
	return nodeText(nodes[0]), nil
}

func expertiseStrategies(s coachdir.Selectors) []Strategy {
	strategies := []Strategy{{
		Name: "structural path",
		Find: func(d *Document) (string, error) {
			return xpathText(d, s.ExpertisePath)
		},
	}}

	for _, pattern := range s.ExpertisePatterns {
		strategies = append(strategies, Strategy{
			Name: pattern,
			Find: func(d *Document) (string, error) {
				return xpathText(d, pattern)
			},
			Accept: PlausibleExpertise,
		})
	}

	strategies = append(strategies,
		Strategy{
			Name: "keyword paragraph",
			Find: func(d *Document) (string, error) {
				var found string
				d.Find(s.Paragraph).EachWithBreak(func(i int, p *goquery.Selection) bool {
					if i >= paragraphScanLimit {
						return false
					}
					text := strings.ToLower(p.Text())
					for _, kw := range expertiseKeywords {
						if strings.Contains(text, kw) {
							found = strings.TrimSpace(p.Text())
							return false
						}
					}
					return true
				})
				return found, nil
			},
		},
		Strategy{
			Name: "expertise label",
			Find: func(d *Document) (string, error) {
				scanner := LabelScanner{
					Selector: s.Labels,
					Tactics:  []Tactic{ParentMinusLabel, NextSibling},
				}
				hits := scanner.Scan(d, []LabelMatcher{expertiseLabel})
				return hits[coachdir.FieldExpertise].Value, nil
			},
		},
	)

	return strategies
}
