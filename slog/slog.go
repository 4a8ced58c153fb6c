// Package slog provides logging decorators for coachdir services.
// Each decorator logs one line per call with its inputs, outcome and
// duration, then delegates to the wrapped implementation.
package slog
