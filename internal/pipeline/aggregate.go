package pipeline

import (
	"fmt"
	"math"
	"strings"
)

// Aggregate derives the per-row batch metrics and drops exact-duplicate rows
// (overlapping uploads of the same export), preserving first-seen order.
func Aggregate(recs []Record) []Record {
	for i := range recs {
		r := &recs[i]
		r.TotalSetpoint = 0
		r.TotalConsumption = 0
		for _, d := range r.Units {
			if !math.IsNaN(d.SetpointDosed) {
				r.TotalSetpoint += d.SetpointDosed
			}
			if !math.IsNaN(d.Dosed) {
				r.TotalConsumption += d.Dosed
			}
		}
		if !r.Start.IsZero() && !r.End.IsZero() {
			r.CycleSeconds = r.End.Sub(r.Start).Seconds()
		} else {
			r.CycleSeconds = 0
		}
	}
	return dedupe(recs)
}

func dedupe(recs []Record) []Record {
	seen := make(map[string]struct{}, len(recs))
	out := recs[:0]
	for _, r := range recs {
		k := rowKey(&r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// rowKey folds every column into a deterministic string so duplicates match
// across all fields, NaN included (%v prints NaN stably).
func rowKey(r *Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d|%d|%d|%s|%s|%s|%s|%s|%s|%s|%s|",
		r.Lot, r.Date.Unix(), r.Start.Unix(), r.End.Unix(),
		r.Species, r.Category, r.Cultivar, r.Sieve,
		r.BagType, r.Operator, r.Observation, r.Formula)
	fmt.Fprintf(&b, "%v|%v|%v|%d|%v|%v|%v|%v",
		r.SeedWeight1000, r.SetpointTotal, r.ActualTotal, r.BatchCount,
		r.SetpointPerBatch, r.ActualPerBatch, r.MixTime, r.DischargeTime)
	for _, d := range r.Units {
		fmt.Fprintf(&b, "|%s|%v|%v|%v|%v|%v|%s",
			d.Product, d.Setpoint, d.SetpointDosed, d.Dosed, d.ErrorPct, d.Density, d.UnitOfMeasure)
	}
	return b.String()
}
