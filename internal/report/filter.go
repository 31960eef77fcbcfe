// Package report computes read-only projections of the canonical batch table.
// Every function here is a pure function of the records plus its parameters;
// the canonical table is never mutated.
package report

import (
	"time"

	"github.com/borisandre/mrb-cli/internal/pipeline"
)

// Window is an optional half-open time filter [From, To) applied to
// (start_time, end_time). A zero bound is unbounded on that side.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether a record's cycle falls inside the window.
func (w Window) Contains(r *pipeline.Record) bool {
	if !w.From.IsZero() && r.Start.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && !r.End.Before(w.To) {
		return false
	}
	return true
}

// Filter returns the records inside the window, in input order.
func Filter(recs []pipeline.Record, w Window) []pipeline.Record {
	if w.From.IsZero() && w.To.IsZero() {
		return recs
	}
	out := make([]pipeline.Record, 0, len(recs))
	for i := range recs {
		if w.Contains(&recs[i]) {
			out = append(out, recs[i])
		}
	}
	return out
}

// Bounds returns the earliest start and latest end across the records, for
// defaulting an unset window in the UI shell.
func Bounds(recs []pipeline.Record) (from, to time.Time) {
	for i := range recs {
		r := &recs[i]
		if r.Start.IsZero() || r.End.IsZero() {
			continue
		}
		if from.IsZero() || r.Start.Before(from) {
			from = r.Start
		}
		if to.IsZero() || r.End.After(to) {
			to = r.End
		}
	}
	return from, to
}
