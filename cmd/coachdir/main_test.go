package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/coachdir"
	main "github.com/fwojciec/coachdir/cmd/coachdir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const janePage = `<html><body>
<h1 class="c-person__name">Jane Doe</h1>
<div>Canada</div>
<p><a href="mailto:jane@example.com">jane@example.com</a></p>
<div class="c-person--content">Bio text</div>
</body></html>`

// profileServer serves janePage at /jane and 404 everywhere else.
func profileServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jane" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(janePage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeInput(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, "links.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	help := stdout.String()
	for _, cmd := range []string{"scrape", "extract", "selectors"} {
		assert.Contains(t, help, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, help, "Usage:")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("writes one row per fetched profile and prints completion", func(t *testing.T) {
		t.Parallel()

		// Given an input listing a profile, a non-URL and a missing page
		srv := profileServer(t)
		dir := t.TempDir()
		input := writeInput(t, dir, "Name,URL", "Jane,"+srv.URL+"/jane", "Bad,not-a-url", "Gone,"+srv.URL+"/gone")
		output := filepath.Join(dir, "Scraped.csv")
		debugDir := filepath.Join(dir, "debug")

		// When scraping
		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{
			"scrape", "-i", input, "-o", output, "--delay", "0s", "--debug", "--debug-dir", debugDir,
		}, &stdout, &stderr)

		// Then only the reachable profile is written
		require.NoError(t, err)
		content, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t,
			"URL,Name,Email,Country,Expertise,Availability,Method,Language,About Me\n"+
				srv.URL+"/jane,Jane Doe,jane@example.com,Canada,N/A,N/A,N/A,N/A,Bio text\n",
			string(content))

		out := stdout.String()
		assert.Contains(t, out, "Found 2 profile URLs")
		assert.Contains(t, out, "Ignored 1 values that are not http(s) URLs")
		assert.Contains(t, out, "Failed to fetch 1 URLs")
		assert.Contains(t, out, "Saved 1 profiles")
		assert.Contains(t, out, "Name: 100.0% complete (0 missing)")
		assert.Contains(t, out, "Expertise: 0.0% complete (1 missing)")

		errOut := stderr.String()
		assert.Contains(t, errOut, "[1/2] Processing: "+srv.URL+"/jane")
		assert.Contains(t, errOut, "skip "+srv.URL+"/gone")

		// And the page without expertise is kept for inspection
		entries, err := os.ReadDir(debugDir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, strings.HasPrefix(entries[0].Name(), "debug_Jane_Doe_"))
	})

	t.Run("saves no pages without --debug", func(t *testing.T) {
		t.Parallel()

		// Given a profile without expertise
		srv := profileServer(t)
		dir := t.TempDir()
		input := writeInput(t, dir, "URL", srv.URL+"/jane")
		debugDir := filepath.Join(dir, "debug")

		// When scraping without --debug
		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{
			"scrape", "-i", input, "-o", filepath.Join(dir, "out.csv"), "--delay", "0s", "--debug-dir", debugDir,
		}, &stdout, &stderr)

		// Then the profile is saved but no page is dumped
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Saved 1 profiles")
		_, err = os.Stat(debugDir)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("writes xlsx output", func(t *testing.T) {
		t.Parallel()

		srv := profileServer(t)
		dir := t.TempDir()
		input := writeInput(t, dir, "URL", srv.URL+"/jane")
		output := filepath.Join(dir, "Scraped.xlsx")

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{
			"scrape", "-i", input, "-o", output, "--delay", "0s",
		}, &stdout, &stderr)

		require.NoError(t, err)
		f, err := excelize.OpenFile(output)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows(f.GetSheetName(0))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, coachdir.Columns(), rows[0])
		assert.Equal(t, "Jane Doe", rows[1][1])
	})

	t.Run("writes nothing when no URL is valid", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeInput(t, dir, "URL", "not-a-url", "ftp://example.com/x")
		output := filepath.Join(dir, "Scraped.csv")

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{
			"scrape", "-i", input, "-o", output, "--delay", "0s",
		}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No data to save")
		_, err = os.Stat(output)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("reports missing URL column", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeInput(t, dir, "Link", "https://example.com/coach/jane")

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{
			"scrape", "-i", input, "-o", filepath.Join(dir, "out.csv"),
		}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, coachdir.EINVALID, coachdir.ErrorCode(err))
		assert.Contains(t, stderr.String(), "available columns: Link")
	})

	t.Run("rejects unsupported input format", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{
			"scrape", "-i", "links.txt",
		}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, coachdir.EINVALID, coachdir.ErrorCode(err))
	})

	t.Run("rejects invalid selector overrides", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		selectors := filepath.Join(dir, "selectors.yaml")
		require.NoError(t, os.WriteFile(selectors, []byte("email: \"a[href\"\n"), 0644))

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{
			"--selectors", selectors, "scrape", "-i", writeInput(t, dir, "URL"),
		}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "email")
	})
}

func TestMain_Run_Extract(t *testing.T) {
	t.Parallel()

	t.Run("prints fields of a saved page", func(t *testing.T) {
		t.Parallel()

		page := filepath.Join(t.TempDir(), "jane.html")
		require.NoError(t, os.WriteFile(page, []byte(janePage), 0644))

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{
			"extract", page, "--url", "https://example.com/coach/jane",
		}, &stdout, &stderr)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "URL: https://example.com/coach/jane\n")
		assert.Contains(t, out, "Name: Jane Doe\n")
		assert.Contains(t, out, "Country: Canada\n")
		assert.Contains(t, out, "Expertise: N/A\n")
		assert.Contains(t, out, "About Me: Bio text\n")
	})

	t.Run("prints JSON", func(t *testing.T) {
		t.Parallel()

		page := filepath.Join(t.TempDir(), "jane.html")
		require.NoError(t, os.WriteFile(page, []byte(janePage), 0644))

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{
			"extract", page, "--json",
		}, &stdout, &stderr)

		require.NoError(t, err)
		var p coachdir.Profile
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &p))
		assert.Equal(t, page, p.SourceURL)
		assert.Equal(t, "jane@example.com", p.Email)
	})

	t.Run("saves page with --debug when expertise is missing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		page := filepath.Join(dir, "jane.html")
		require.NoError(t, os.WriteFile(page, []byte(janePage), 0644))
		debugDir := filepath.Join(dir, "debug")

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{
			"extract", page, "--debug", "--debug-dir", debugDir,
		}, &stdout, &stderr)

		require.NoError(t, err)
		entries, err := os.ReadDir(debugDir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("uses selector overrides", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		page := filepath.Join(dir, "page.html")
		require.NoError(t, os.WriteFile(page, []byte(`<html><body><h2 class="who">Jane Doe</h2></body></html>`), 0644))
		selectors := filepath.Join(dir, "selectors.yaml")
		require.NoError(t, os.WriteFile(selectors, []byte("name: h2.who\n"), 0644))

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(), []string{
			"--selectors", selectors, "extract", page,
		}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Name: Jane Doe\n")
	})
}

func TestMain_Run_Selectors(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := main.NewMain().Run(context.Background(), []string{"selectors"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "name: h1.c-person__name")
	assert.Contains(t, stdout.String(), "expertisePatterns:")
}
