package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/coachdir"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, err := os.ReadFile(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	sourceURL := c.URL
	if sourceURL == "" {
		sourceURL = c.Path
	}
	p := deps.Extractor.Extract(sourceURL, string(html))

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	fmt.Fprintf(deps.Stdout, "%s: %s\n", coachdir.URLColumn, p.SourceURL)
	for _, f := range coachdir.Fields() {
		fmt.Fprintf(deps.Stdout, "%s: %s\n", f, p.Get(f))
	}
	return nil
}
