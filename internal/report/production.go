package report

import (
	"sort"

	"github.com/borisandre/mrb-cli/internal/pipeline"
)

// LabelTotal is one slice of a production breakdown, in tonnes.
type LabelTotal struct {
	Label string
	Ton   float64
}

func byLabel(recs []pipeline.Record, label func(*pipeline.Record) string) []LabelTotal {
	sums := map[string]float64{}
	var order []string
	for i := range recs {
		l := label(&recs[i])
		if _, ok := sums[l]; !ok {
			order = append(order, l)
		}
		sums[l] += nanZero(recs[i].ActualPerBatch) / 1000
	}
	out := make([]LabelTotal, 0, len(order))
	for _, l := range order {
		out = append(out, LabelTotal{Label: l, Ton: sums[l]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ton > out[j].Ton })
	return out
}

// ProductionByOperator sums treated tonnes per operator, largest first.
func ProductionByOperator(recs []pipeline.Record) []LabelTotal {
	return byLabel(recs, func(r *pipeline.Record) string { return r.Operator })
}

// ProductionBySpecies sums treated tonnes per species.
func ProductionBySpecies(recs []pipeline.Record) []LabelTotal {
	return byLabel(recs, func(r *pipeline.Record) string { return r.Species })
}

// ProductionByBagType sums treated tonnes per bagging type.
func ProductionByBagType(recs []pipeline.Record) []LabelTotal {
	return byLabel(recs, func(r *pipeline.Record) string { return r.BagType })
}

// ProductionBySieve sums treated tonnes per sieve.
func ProductionBySieve(recs []pipeline.Record) []LabelTotal {
	return byLabel(recs, func(r *pipeline.Record) string { return r.Sieve })
}

// ProductionByFormula sums treated tonnes per formula.
func ProductionByFormula(recs []pipeline.Record) []LabelTotal {
	return byLabel(recs, func(r *pipeline.Record) string { return r.Formula })
}

// HeatGrid is the weekday × hour-of-day production grid. Weekday 0 is
// Monday. Cells[w] spans MinHour..MaxHour inclusive, densified with zeros so
// every observed hour appears for every weekday.
type HeatGrid struct {
	MinHour int
	MaxHour int
	Cells   [7][]float64
}

// WeekdayHourProduction buckets treated tonnes by the cycle end's weekday and
// hour. Records without a parsed end time are skipped. An empty input yields
// a zero grid.
func WeekdayHourProduction(recs []pipeline.Record) HeatGrid {
	g := HeatGrid{MinHour: -1, MaxHour: -1}
	type bucket struct{ wd, hour int }
	sums := map[bucket]float64{}
	for i := range recs {
		r := &recs[i]
		if r.End.IsZero() {
			continue
		}
		wd := (int(r.End.Weekday()) + 6) % 7 // Monday = 0
		h := r.End.Hour()
		sums[bucket{wd, h}] += nanZero(r.ActualPerBatch) / 1000
		if g.MinHour < 0 || h < g.MinHour {
			g.MinHour = h
		}
		if h > g.MaxHour {
			g.MaxHour = h
		}
	}
	if g.MinHour < 0 {
		g.MinHour, g.MaxHour = 0, 0
	}
	span := g.MaxHour - g.MinHour + 1
	for wd := 0; wd < 7; wd++ {
		g.Cells[wd] = make([]float64, span)
		for h := g.MinHour; h <= g.MaxHour; h++ {
			g.Cells[wd][h-g.MinHour] = sums[bucket{wd, h}]
		}
	}
	return g
}
