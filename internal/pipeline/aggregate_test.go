package pipeline

import (
	"math"
	"testing"
	"time"
)

func TestAggregateTotalsSkipNaN(t *testing.T) {
	recs := []Record{{
		Units: []UnitDose{
			{SetpointDosed: 100, Dosed: 95},
			{SetpointDosed: math.NaN(), Dosed: math.NaN()},
			{SetpointDosed: 50, Dosed: 55},
		},
	}}
	out := Aggregate(recs)
	if out[0].TotalSetpoint != 150 {
		t.Errorf("TotalSetpoint = %v, want 150", out[0].TotalSetpoint)
	}
	if out[0].TotalConsumption != 150 {
		t.Errorf("TotalConsumption = %v, want 150", out[0].TotalConsumption)
	}
}

func TestAggregateCycleSeconds(t *testing.T) {
	start := time.Date(2024, 3, 5, 7, 20, 0, 0, time.UTC)
	end := time.Date(2024, 3, 5, 7, 33, 12, 0, time.UTC)
	recs := []Record{
		{Start: start, End: end},
		{Start: start},           // no end: cycle stays zero
		{End: end},               // no start: cycle stays zero
		{},                       // neither
	}
	out := Aggregate(recs)
	if out[0].CycleSeconds != 792 {
		t.Errorf("CycleSeconds = %v, want 792", out[0].CycleSeconds)
	}
	for i := 1; i < len(out); i++ {
		if out[i].CycleSeconds != 0 {
			t.Errorf("row %d CycleSeconds = %v, want 0", i, out[i].CycleSeconds)
		}
	}
}

func TestAggregateDropsExactDuplicates(t *testing.T) {
	a := Record{Lot: "L001", Formula: "FORM A", ActualPerBatch: 1000,
		Units: []UnitDose{{Product: "Vitavax", Dosed: 500}}}
	b := a
	c := a
	c.ActualPerBatch = 999 // one field differs: not a duplicate
	out := Aggregate([]Record{a, b, c})
	if len(out) != 2 {
		t.Fatalf("records after dedupe = %d, want 2", len(out))
	}
	if out[0].ActualPerBatch != 1000 || out[1].ActualPerBatch != 999 {
		t.Fatalf("dedupe disturbed order: %v, %v", out[0].ActualPerBatch, out[1].ActualPerBatch)
	}
}

func TestAggregateDuplicatesWithNaN(t *testing.T) {
	a := Record{Lot: "L001", SeedWeight1000: math.NaN(),
		Units: []UnitDose{{Dosed: math.NaN()}}}
	b := Record{Lot: "L001", SeedWeight1000: math.NaN(),
		Units: []UnitDose{{Dosed: math.NaN()}}}
	out := Aggregate([]Record{a, b})
	if len(out) != 1 {
		t.Fatalf("NaN rows must still dedupe, got %d records", len(out))
	}
}
