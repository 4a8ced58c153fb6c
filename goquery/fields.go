package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/coachdir"
)

// firstText returns the text of the first element matching selector
// whose trimmed text is non-empty.
func firstText(d *Document, selector string) string {
	var text string
	d.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text = strings.TrimSpace(s.Text())
		return text == ""
	})
	return text
}

// nameElement locates the element holding the display name, trying the
// dedicated name element first and any non-blank heading second.
func nameElement(d *Document, s coachdir.Selectors) *goquery.Selection {
	for _, selector := range []string{s.Name, s.NameFallback} {
		var found *goquery.Selection
		d.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			if strings.TrimSpace(el.Text()) != "" {
				found = el
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

func nameStrategies(s coachdir.Selectors) []Strategy {
	return []Strategy{
		{
			Name: "name element",
			Find: func(d *Document) (string, error) {
				return firstText(d, s.Name), nil
			},
		},
		{
			Name: "first heading",
			Find: func(d *Document) (string, error) {
				return firstText(d, s.NameFallback), nil
			},
		},
	}
}

// mailtoAddress returns the address part of a mailto: link.
func mailtoAddress(href string) string {
	href = strings.TrimSpace(href)
	if !strings.HasPrefix(strings.ToLower(href), "mailto:") {
		return ""
	}
	addr := href[len("mailto:"):]
	if i := strings.IndexByte(addr, '?'); i >= 0 {
		addr = addr[:i]
	}
	if unescaped, err := url.PathUnescape(addr); err == nil {
		addr = unescaped
	}
	return strings.TrimSpace(addr)
}

func emailStrategies(s coachdir.Selectors) []Strategy {
	return []Strategy{
		{
			Name: "email element",
			Find: func(d *Document) (string, error) {
				el := d.Find(s.Email).First()
				if text := strings.TrimSpace(el.Text()); text != "" {
					return text, nil
				}
				href, _ := el.Attr("href")
				return mailtoAddress(href), nil
			},
		},
		{
			Name: "mailto link",
			Find: func(d *Document) (string, error) {
				link := d.Find(s.EmailLink).First()
				if text := strings.TrimSpace(link.Text()); strings.Contains(text, "@") {
					return text, nil
				}
				href, _ := link.Attr("href")
				return mailtoAddress(href), nil
			},
		},
	}
}

func countryStrategies(s coachdir.Selectors) []Strategy {
	return []Strategy{
		{
			Name: "block after name",
			Find: func(d *Document) (string, error) {
				name := nameElement(d, s)
				if name == nil {
					return "", nil
				}
				sel, err := cascadia.Compile(s.CountryBlock)
				if err != nil {
					return "", err
				}
				return nodeText(following(name.Get(0), sel)), nil
			},
		},
	}
}

func aboutStrategies(s coachdir.Selectors) []Strategy {
	return []Strategy{
		{
			Name: "content block",
			Find: func(d *Document) (string, error) {
				return d.Find(s.About).First().Text(), nil
			},
		},
	}
}
