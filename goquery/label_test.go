package goquery_test

import (
	"bytes"
	"log/slog"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/coachdir"
	"github.com/fwojciec/coachdir/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.ParseDocument(html)
	require.NoError(t, err)
	return d
}

func TestParentMinusLabel(t *testing.T) {
	t.Parallel()

	t.Run("returns container text without the label", func(t *testing.T) {
		t.Parallel()

		d := parse(t, `<p><strong>Availability:</strong> Weekends and evenings</p>`)

		v := goquery.ParentMinusLabel.Value(d.Find("strong").First())

		assert.Equal(t, "Weekends and evenings", v)
	})

	t.Run("keeps unrelated text from the same container", func(t *testing.T) {
		t.Parallel()

		d := parse(t, `<div><strong>Language</strong> English <em>Call to book</em></div>`)

		v := goquery.ParentMinusLabel.Value(d.Find("strong").First())

		assert.Equal(t, "English Call to book", v)
	})

	t.Run("returns empty when the label is alone in its container", func(t *testing.T) {
		t.Parallel()

		d := parse(t, `<div><strong>Language</strong></div><p>English</p>`)

		v := goquery.ParentMinusLabel.Value(d.Find("strong").First())

		assert.Empty(t, v)
	})
}

func TestNextSibling(t *testing.T) {
	t.Parallel()

	t.Run("skips whitespace and comments", func(t *testing.T) {
		t.Parallel()

		d := parse(t, `<div><strong>Language</strong>
			<!-- spoken -->
			<span> English, French </span></div>`)

		v := goquery.NextSibling.Value(d.Find("strong").First())

		assert.Equal(t, "English, French", v)
	})

	t.Run("reads a bare text sibling", func(t *testing.T) {
		t.Parallel()

		d := parse(t, `<div><b>Schedule</b> Evenings</div>`)

		v := goquery.NextSibling.Value(d.Find("b").First())

		assert.Equal(t, "Evenings", v)
	})

	t.Run("returns empty when nothing follows", func(t *testing.T) {
		t.Parallel()

		d := parse(t, `<div><b>Schedule</b>   </div>`)

		v := goquery.NextSibling.Value(d.Find("b").First())

		assert.Empty(t, v)
	})
}

func TestNextMatching(t *testing.T) {
	t.Parallel()

	t.Run("reads the next paragraph in document order", func(t *testing.T) {
		t.Parallel()

		d := parse(t, `<section><h3>Coaching Method</h3></section><div><p>In person and online</p></div>`)

		v := goquery.NextMatching("p").Value(d.Find("h3").First())

		assert.Equal(t, "In person and online", v)
	})

	t.Run("never matches with an invalid selector", func(t *testing.T) {
		t.Parallel()

		d := parse(t, `<h3>Method</h3><p>Online</p>`)

		v := goquery.NextMatching("p[").Value(d.Find("h3").First())

		assert.Empty(t, v)
	})
}

func TestLabelScanner_Scan(t *testing.T) {
	t.Parallel()

	matchers := []goquery.LabelMatcher{
		{Field: coachdir.FieldAvailability, Keywords: []string{"availability", "available", "schedule"}},
		{Field: coachdir.FieldMethod, Keywords: []string{"method", "delivery", "coaching method", "coaching style"}},
		{Field: coachdir.FieldLanguage, Keywords: []string{"language", "languages", "speaks"}},
	}
	scanner := goquery.LabelScanner{
		Selector: "strong, b, h2, h3, h4, h5, label",
		Tactics:  []goquery.Tactic{goquery.ParentMinusLabel, goquery.NextSibling, goquery.NextMatching("p")},
	}

	t.Run("keeps the first value found for a field", func(t *testing.T) {
		t.Parallel()

		d := parse(t, `<body>
<p><strong>Availability</strong> Mornings</p>
<p><strong>Available</strong> Evenings</p>
</body>`)

		hits := scanner.Scan(d, matchers)

		require.Contains(t, hits, coachdir.FieldAvailability)
		assert.Equal(t, "Mornings", hits[coachdir.FieldAvailability].Value)
		assert.Equal(t, "parent", hits[coachdir.FieldAvailability].Tactic)
	})

	t.Run("assigns an ambiguous label to the first matching field", func(t *testing.T) {
		t.Parallel()

		d := parse(t, `<body>
<p><strong>Coaching method and language</strong> Online, English</p>
<p><strong>Languages</strong> English, German</p>
</body>`)

		hits := scanner.Scan(d, matchers)

		assert.Equal(t, "Online, English", hits[coachdir.FieldMethod].Value)
		assert.Equal(t, "English, German", hits[coachdir.FieldLanguage].Value)
		assert.NotContains(t, hits, coachdir.FieldAvailability)
	})

	t.Run("falls back to the next paragraph for bare heading labels", func(t *testing.T) {
		t.Parallel()

		d := parse(t, `<body>
<section><h4>Speaks</h4></section>
<article><p>Portuguese</p></article>
</body>`)

		hits := scanner.Scan(d, matchers)

		assert.Equal(t, "Portuguese", hits[coachdir.FieldLanguage].Value)
		assert.Equal(t, "next p", hits[coachdir.FieldLanguage].Tactic)
		assert.Equal(t, "Speaks", hits[coachdir.FieldLanguage].Label)
	})

	t.Run("skips a panicking tactic and logs it", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		broken := goquery.Tactic{
			Name:  "broken",
			Value: func(*gq.Selection) string { panic("boom") },
		}
		guarded := goquery.LabelScanner{
			Selector: "strong",
			Tactics:  []goquery.Tactic{broken, goquery.ParentMinusLabel},
			Logger:   slog.New(slog.NewTextHandler(&logs, nil)),
		}
		d := parse(t, `<p><strong>Availability:</strong> Weekdays</p>`)

		var hits map[coachdir.Field]goquery.LabelHit
		require.NotPanics(t, func() { hits = guarded.Scan(d, matchers) })

		assert.Equal(t, "Weekdays", hits[coachdir.FieldAvailability].Value)
		assert.Equal(t, "parent", hits[coachdir.FieldAvailability].Tactic)
		assert.Contains(t, logs.String(), "label tactic error")
		assert.Contains(t, logs.String(), "boom")
	})

	t.Run("returns no hits when no label matches", func(t *testing.T) {
		t.Parallel()

		d := parse(t, `<body><p><strong>Credentials</strong> ACC</p></body>`)

		assert.Empty(t, scanner.Scan(d, matchers))
	})
}

func TestLabelMatcher_Matches(t *testing.T) {
	t.Parallel()

	m := goquery.LabelMatcher{Keywords: []string{"coaching style", "delivery"}}

	assert.True(t, m.Matches("  Coaching Style: "))
	assert.True(t, m.Matches("DELIVERY"))
	assert.False(t, m.Matches("Style"))
}
