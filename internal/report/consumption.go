package report

import (
	"math"
	"sort"

	"github.com/borisandre/mrb-cli/internal/pipeline"
)

// FormulaConsumption is one row of the consumption-by-formula view. Values
// are display units: liters of product, tonnes of treated seed.
type FormulaConsumption struct {
	Formula       string
	ConsumptionL  float64
	ProductionTon float64
}

// ByFormula sums consumption and production per formula, largest consumption
// first.
func ByFormula(recs []pipeline.Record) []FormulaConsumption {
	type acc struct{ cons, prod float64 }
	sums := map[string]*acc{}
	var order []string
	for i := range recs {
		r := &recs[i]
		a := sums[r.Formula]
		if a == nil {
			a = &acc{}
			sums[r.Formula] = a
			order = append(order, r.Formula)
		}
		a.cons += nanZero(r.TotalConsumption)
		a.prod += nanZero(r.ActualPerBatch)
	}
	out := make([]FormulaConsumption, 0, len(order))
	for _, f := range order {
		out = append(out, FormulaConsumption{
			Formula:       f,
			ConsumptionL:  sums[f].cons / 1000,
			ProductionTon: sums[f].prod / 1000,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ConsumptionL > out[j].ConsumptionL })
	return out
}

// ProductConsumption is one row of the consumption-by-product view.
type ProductConsumption struct {
	Product      string
	ConsumptionL float64
}

// ByProduct sums the dosed quantity per product name across every registered
// unit, consolidating the same product dosed from different units. Rows with
// no product name or a zero total are dropped. Largest first.
func ByProduct(recs []pipeline.Record, reg pipeline.Registry) []ProductConsumption {
	sums := map[string]float64{}
	var order []string
	for ui, ru := range reg.Units {
		if !ru.Has.Product || !ru.Has.Dosed {
			continue
		}
		for i := range recs {
			d := &recs[i].Units[ui]
			if _, seen := sums[d.Product]; !seen {
				order = append(order, d.Product)
			}
			sums[d.Product] += nanZero(d.Dosed)
		}
	}
	out := make([]ProductConsumption, 0, len(order))
	for _, p := range order {
		if p == pipeline.Missing || p == "" || sums[p] == 0 {
			continue
		}
		out = append(out, ProductConsumption{Product: p, ConsumptionL: sums[p] / 1000})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ConsumptionL > out[j].ConsumptionL })
	return out
}

// TotalConsumptionL is the grand total across the by-product view.
func TotalConsumptionL(rows []ProductConsumption) float64 {
	var t float64
	for _, r := range rows {
		t += r.ConsumptionL
	}
	return t
}

func nanZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
