package main

import "github.com/fwojciec/coachdir/yaml"

// Run executes the selectors command.
func (c *SelectorsDumpCmd) Run(deps *Dependencies) error {
	return yaml.DumpSelectors(deps.Stdout, deps.Selectors)
}
