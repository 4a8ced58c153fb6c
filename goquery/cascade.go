package goquery

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/coachdir"
)

// Strategy is one way of locating a field value in a document.
// Find returns an empty string when the strategy does not apply.
type Strategy struct {
	Name string
	Find func(d *Document) (string, error)

	// Accept, if set, rejects implausible candidates so the cascade
	// moves on to the next strategy.
	Accept func(value string) bool
}

// run evaluates the strategy, converting panics from query evaluation
// into errors.
func (s Strategy) run(d *Document) (value string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("strategy %q: %v", s.Name, r)
		}
	}()
	value, err = s.Find(d)
	return strings.TrimSpace(value), err
}

// Cascade tries strategies in order and returns the first accepted value
// with the name of the strategy that produced it. A failing strategy is
// logged and skipped. Returns two empty strings when nothing matched.
func Cascade(d *Document, field coachdir.Field, strategies []Strategy, logger *slog.Logger) (value, strategy string) {
	for _, s := range strategies {
		v, err := s.run(d)
		switch {
		case err != nil:
			logger.Warn("selector error", "field", field.String(), "strategy", s.Name, "err", err)
		case v == "":
			logger.Debug("strategy miss", "field", field.String(), "strategy", s.Name)
		case s.Accept != nil && !s.Accept(v):
			logger.Debug("candidate rejected", "field", field.String(), "strategy", s.Name, "value", v)
		default:
			logger.Debug("strategy hit", "field", field.String(), "strategy", s.Name, "value", v)
			return v, s.Name
		}
	}
	return "", ""
}
