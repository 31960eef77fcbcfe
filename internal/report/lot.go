package report

import (
	"errors"
	"sort"

	"github.com/borisandre/mrb-cli/internal/pipeline"
)

// ErrZeroProduction is returned by LotDetail when the selected lot has no
// treated-seed weight: the per-100kg dose columns would all divide by zero.
var ErrZeroProduction = errors.New("treated quantity is zero; cannot compute dose rates")

// Lots returns the distinct lot identifiers in first-seen order.
func Lots(recs []pipeline.Record) []string {
	seen := map[string]struct{}{}
	var out []string
	for i := range recs {
		if _, ok := seen[recs[i].Lot]; !ok {
			seen[recs[i].Lot] = struct{}{}
			out = append(out, recs[i].Lot)
		}
	}
	return out
}

// FormulasForLot returns the distinct formulas applied to a lot, first-seen
// order.
func FormulasForLot(recs []pipeline.Record, lot string) []string {
	seen := map[string]struct{}{}
	var out []string
	for i := range recs {
		if recs[i].Lot != lot {
			continue
		}
		if _, ok := seen[recs[i].Formula]; !ok {
			seen[recs[i].Formula] = struct{}{}
			out = append(out, recs[i].Formula)
		}
	}
	return out
}

// SelectLot filters to one (lot, formula) pair.
func SelectLot(recs []pipeline.Record, lot, formula string) []pipeline.Record {
	out := make([]pipeline.Record, 0)
	for i := range recs {
		if recs[i].Lot == lot && recs[i].Formula == formula {
			out = append(out, recs[i])
		}
	}
	return out
}

// LotInfo is the drill-down header: the lot's classification taken from its
// first cycle, plus the distinct non-missing observations.
type LotInfo struct {
	Lot          string
	Formula      string
	Species      string
	Sieve        string
	Category     string
	Cultivar     string
	Observations []string
}

// Info builds the lot header from the filtered records.
func Info(recs []pipeline.Record, lot, formula string) LotInfo {
	info := LotInfo{Lot: lot, Formula: formula}
	seen := map[string]struct{}{}
	for i := range recs {
		r := &recs[i]
		if i == 0 {
			info.Species = r.Species
			info.Sieve = r.Sieve
			info.Category = r.Category
			info.Cultivar = r.Cultivar
		}
		if r.Observation == pipeline.Missing {
			continue
		}
		if _, ok := seen[r.Observation]; !ok {
			seen[r.Observation] = struct{}{}
			info.Observations = append(info.Observations, r.Observation)
		}
	}
	return info
}

// ProductDetail is one row of the lot drill-down: absolute quantities in
// liters, dose rates in mL (or g) per 100 kg of treated seed.
type ProductDetail struct {
	Product       string
	RequiredL     float64
	DosedL        float64
	FormulaDose   float64 // required per 100 kg treated
	AchievedDose  float64 // dosed per 100 kg treated
	VariancePct   float64
}

// LotDetail consolidates per-product required and dosed quantities over every
// registered unit for the already-selected records. Products with no name or
// zero required quantity are dropped; rows sort by required quantity,
// largest first. Variance short-circuits to 0 for a zero required quantity.
func LotDetail(recs []pipeline.Record, reg pipeline.Registry) ([]ProductDetail, error) {
	var treatedKg float64
	for i := range recs {
		treatedKg += nanZero(recs[i].ActualPerBatch)
	}
	if treatedKg == 0 {
		return nil, ErrZeroProduction
	}

	type acc struct{ required, dosed float64 }
	sums := map[string]*acc{}
	var order []string
	for ui, ru := range reg.Units {
		if !ru.Has.Product || !ru.Has.Complete() {
			continue
		}
		for i := range recs {
			d := &recs[i].Units[ui]
			a := sums[d.Product]
			if a == nil {
				a = &acc{}
				sums[d.Product] = a
				order = append(order, d.Product)
			}
			a.required += nanZero(d.SetpointDosed)
			a.dosed += nanZero(d.Dosed)
		}
	}

	out := make([]ProductDetail, 0, len(order))
	for _, p := range order {
		a := sums[p]
		if p == pipeline.Missing || p == "" || a.required == 0 {
			continue
		}
		row := ProductDetail{
			Product:      p,
			RequiredL:    a.required / 1000,
			DosedL:       a.dosed / 1000,
			FormulaDose:  a.required / treatedKg * 100,
			AchievedDose: a.dosed / treatedKg * 100,
			VariancePct:  (a.dosed/a.required - 1) * 100,
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RequiredL > out[j].RequiredL })
	return out, nil
}
