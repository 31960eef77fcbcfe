package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/borisandre/mrb-cli/internal/pipeline"
)

// Summary holds the headline metrics of a filtered period (the original
// dashboard's metric cards).
type Summary struct {
	EffectiveSeconds float64
	ProductionTon    float64
	// ProductivityTonPerHour is 0 when the effective time is zero.
	ProductivityTonPerHour float64
	Lots                   int
	Formulas               int
	Batches                int
	MeanBatchKg            float64
	MeanCycleSeconds       float64
}

// Summarize computes the period summary over the given (already filtered)
// records.
func Summarize(recs []pipeline.Record) Summary {
	var s Summary
	lots := map[string]struct{}{}
	formulas := map[string]struct{}{}
	var weight float64
	for i := range recs {
		r := &recs[i]
		s.EffectiveSeconds += r.CycleSeconds
		weight += nanZero(r.ActualPerBatch)
		lots[r.Lot] = struct{}{}
		formulas[r.Formula] = struct{}{}
	}
	s.Batches = len(recs)
	s.Lots = len(lots)
	s.Formulas = len(formulas)
	s.ProductionTon = weight / 1000
	if s.EffectiveSeconds > 0 {
		s.ProductivityTonPerHour = round2(s.ProductionTon / (s.EffectiveSeconds / 3600))
	}
	if s.Batches > 0 {
		s.MeanBatchKg = weight / float64(s.Batches)
		s.MeanCycleSeconds = s.EffectiveSeconds / float64(s.Batches)
	}
	return s
}

// LotSummary is one row of the period's (lot, formula) grouping. Quantities
// are tonnes and liters; VariancePct is the dosed-vs-required deviation.
type LotSummary struct {
	Lot         string
	Formula     string
	Start       time.Time
	End         time.Time
	TreatedTon  float64
	Batches     int
	RequiredL   float64
	DosedL      float64
	VariancePct float64
}

// LotSummaries groups by (lot, formula): earliest start, latest end, summed
// production and dosing, and the dosing variance. Variance short-circuits to
// 0 when the required quantity is zero. Sorted by start time.
func LotSummaries(recs []pipeline.Record) []LotSummary {
	type key struct{ lot, formula string }
	sums := map[key]*LotSummary{}
	var order []key
	for i := range recs {
		r := &recs[i]
		k := key{r.Lot, r.Formula}
		g := sums[k]
		if g == nil {
			g = &LotSummary{Lot: r.Lot, Formula: r.Formula, Start: r.Start, End: r.End}
			sums[k] = g
			order = append(order, k)
		}
		if !r.Start.IsZero() && (g.Start.IsZero() || r.Start.Before(g.Start)) {
			g.Start = r.Start
		}
		if r.End.After(g.End) {
			g.End = r.End
		}
		g.TreatedTon += nanZero(r.ActualPerBatch) / 1000
		g.Batches++
		g.RequiredL += nanZero(r.TotalSetpoint) / 1000
		g.DosedL += nanZero(r.TotalConsumption) / 1000
	}
	out := make([]LotSummary, 0, len(order))
	for _, k := range order {
		g := sums[k]
		if g.RequiredL != 0 {
			g.VariancePct = (g.DosedL/g.RequiredL - 1) * 100
		}
		out = append(out, *g)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// FormatDuration renders seconds as HH:MM:SS (hours may exceed 24).
func FormatDuration(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
