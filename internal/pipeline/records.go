package pipeline

import (
	"math"
	"strings"
	"time"

	"github.com/borisandre/mrb-cli/internal/frame"
)

// Missing is the sentinel stored in classification fields whose source cell
// was empty or absent. Reports group on it like any other label; it is never
// a null that propagates.
const Missing = "nan"

// UnitDose holds one dosing unit's quantities for one batch cycle. Numeric
// fields use NaN as the missing marker; aggregations skip NaN.
type UnitDose struct {
	Product       string
	Setpoint      float64 // formula concentration, mL or g per 100 kg treated
	SetpointDosed float64 // absolute setpoint-equivalent dosed quantity, mL or g
	Dosed         float64 // absolute dosed quantity, mL or g
	ErrorPct      float64 // dosing error reported by the machine
	Density       float64
	UnitOfMeasure string
}

// Record is one canonical batch-treatment event. One Record per physical
// cycle; Units is indexed by registry position (canonical index - 1).
type Record struct {
	Lot   string
	Date  time.Time
	Start time.Time
	End   time.Time

	Species     string
	Category    string
	Cultivar    string
	Sieve       string
	BagType     string
	Operator    string
	Observation string
	Formula     string

	SeedWeight1000   float64
	SetpointTotal    float64 // kg
	ActualTotal      float64 // kg
	BatchCount       int
	SetpointPerBatch float64 // kg
	ActualPerBatch   float64 // kg
	MixTime          float64
	DischargeTime    float64

	Units []UnitDose

	// Derived by the aggregator.
	TotalSetpoint    float64
	TotalConsumption float64
	CycleSeconds     float64
}

// BuildRecords converts the mapped table into typed canonical records.
// Classification strings coerce to the "nan" sentinel when missing; numeric
// cells that fail to parse become NaN. Start and end clocks are anchored to
// the batch date, and a start later than the end is shifted back one day
// (shifts crossing midnight log the start on the previous date).
func BuildRecords(t *frame.Table, reg Registry) []Record {
	recs := make([]Record, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		r := Record{
			Lot:         strVal(t, i, ColLot),
			Species:     strVal(t, i, ColSpecies),
			Category:    strVal(t, i, ColCategory),
			Cultivar:    strVal(t, i, ColCultivar),
			Sieve:       strVal(t, i, ColSieve),
			BagType:     strVal(t, i, ColBagType),
			Operator:    strVal(t, i, ColOperator),
			Observation: strVal(t, i, ColObservation),
			Formula:     strVal(t, i, ColFormula),

			SeedWeight1000:   frame.FloatOrNaN(t.Cell(i, ColSeedWeight1000)),
			SetpointTotal:    frame.FloatOrNaN(t.Cell(i, ColSetpointTotal)),
			ActualTotal:      frame.FloatOrNaN(t.Cell(i, ColActualTotal)),
			SetpointPerBatch: frame.FloatOrNaN(t.Cell(i, ColSetpointBatch)),
			ActualPerBatch:   frame.FloatOrNaN(t.Cell(i, ColActualBatch)),
			MixTime:          frame.FloatOrNaN(t.Cell(i, ColMixTime)),
			DischargeTime:    frame.FloatOrNaN(t.Cell(i, ColDischargeTime)),
		}
		if n := frame.FloatOrNaN(t.Cell(i, ColBatchCount)); !math.IsNaN(n) {
			r.BatchCount = int(n)
		}
		if d, ok := frame.ParseDate(t.Cell(i, ColDate)); ok {
			r.Date = d
			r.Start = clockOn(d, t.Cell(i, ColStartTime))
			r.End = clockOn(d, t.Cell(i, ColEndTime))
			if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
				r.Start = r.Start.AddDate(0, 0, -1)
			}
		}

		r.Units = make([]UnitDose, reg.Len())
		for ui, ru := range reg.Units {
			d := UnitDose{
				Product:       strVal(t, i, canonicalUnitColumn(FieldProduct, ru.Index)),
				Setpoint:      frame.FloatOrNaN(t.Cell(i, canonicalUnitColumn(FieldSetpoint, ru.Index))),
				SetpointDosed: frame.FloatOrNaN(t.Cell(i, canonicalUnitColumn(FieldSetpointDosed, ru.Index))),
				Dosed:         frame.FloatOrNaN(t.Cell(i, canonicalUnitColumn(FieldDosed, ru.Index))),
				ErrorPct:      frame.FloatOrNaN(t.Cell(i, canonicalUnitColumn(FieldErrorPct, ru.Index))),
				Density:       frame.FloatOrNaN(t.Cell(i, canonicalUnitColumn(FieldDensity, ru.Index))),
				UnitOfMeasure: strVal(t, i, canonicalUnitColumn(FieldUOM, ru.Index)),
			}
			r.Units[ui] = d
		}
		recs = append(recs, r)
	}
	return recs
}

func strVal(t *frame.Table, row int, col string) string {
	v := strings.TrimSpace(t.Cell(row, col))
	if v == "" {
		return Missing
	}
	return v
}

func clockOn(date time.Time, cell string) time.Time {
	h, m, s, ok := frame.ParseClock(cell)
	if !ok {
		return time.Time{}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, s, 0, time.UTC)
}
