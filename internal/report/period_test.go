package report

import (
	"math"
	"testing"

	"github.com/borisandre/mrb-cli/internal/pipeline"
)

func TestSummarize(t *testing.T) {
	recs := []pipeline.Record{
		{Lot: "L001", Formula: "A", ActualPerBatch: 1000, CycleSeconds: 792},
		{Lot: "L001", Formula: "A", ActualPerBatch: 1000, CycleSeconds: 808},
		{Lot: "L002", Formula: "B", ActualPerBatch: 500, CycleSeconds: 400},
	}
	s := Summarize(recs)
	if s.Batches != 3 || s.Lots != 2 || s.Formulas != 2 {
		t.Fatalf("counts = %+v", s)
	}
	if s.ProductionTon != 2.5 {
		t.Errorf("ProductionTon = %v", s.ProductionTon)
	}
	if s.EffectiveSeconds != 2000 {
		t.Errorf("EffectiveSeconds = %v", s.EffectiveSeconds)
	}
	// 2.5 t over 2000 s = 4.5 t/h.
	if s.ProductivityTonPerHour != 4.5 {
		t.Errorf("Productivity = %v", s.ProductivityTonPerHour)
	}
	if math.Abs(s.MeanBatchKg-2500.0/3) > 1e-9 {
		t.Errorf("MeanBatchKg = %v", s.MeanBatchKg)
	}
}

func TestSummarizeEmptyAndZeroTime(t *testing.T) {
	s := Summarize(nil)
	if s.Batches != 0 || s.ProductivityTonPerHour != 0 || s.MeanBatchKg != 0 {
		t.Fatalf("empty summary = %+v", s)
	}
	s = Summarize([]pipeline.Record{{ActualPerBatch: 1000}})
	if s.ProductivityTonPerHour != 0 {
		t.Fatalf("zero effective time must not divide: %+v", s)
	}
}

func TestLotSummaries(t *testing.T) {
	recs := []pipeline.Record{
		{Lot: "L001", Formula: "A", Start: at(5, 8, 0), End: at(5, 9, 0),
			ActualPerBatch: 1000, TotalSetpoint: 5000, TotalConsumption: 4998},
		{Lot: "L001", Formula: "A", Start: at(5, 7, 0), End: at(5, 8, 0),
			ActualPerBatch: 1000, TotalSetpoint: 5000, TotalConsumption: 5002},
		{Lot: "L002", Formula: "B", Start: at(5, 6, 0), End: at(5, 6, 30),
			ActualPerBatch: 500, TotalSetpoint: 0, TotalConsumption: 100},
	}
	rows := LotSummaries(recs)
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	// Sorted by start: L002 started earliest.
	if rows[0].Lot != "L002" {
		t.Fatalf("rows[0] = %+v", rows[0])
	}
	// Zero required quantity: variance short-circuits to zero.
	if rows[0].VariancePct != 0 {
		t.Errorf("variance with zero required = %v", rows[0].VariancePct)
	}
	g := rows[1]
	if g.Lot != "L001" || g.Batches != 2 || g.TreatedTon != 2 {
		t.Fatalf("L001 group = %+v", g)
	}
	if !g.Start.Equal(at(5, 7, 0)) || !g.End.Equal(at(5, 9, 0)) {
		t.Errorf("span = %v .. %v", g.Start, g.End)
	}
	// (10.0 L dosed / 10.0 L required - 1) * 100 = 0.
	if math.Abs(g.VariancePct) > 1e-9 {
		t.Errorf("variance = %v", g.VariancePct)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[float64]string{
		0:      "00:00:00",
		792:    "00:13:12",
		3661:   "01:01:01",
		90000:  "25:00:00",
	}
	for in, want := range cases {
		if got := FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%v) = %q, want %q", in, got, want)
		}
	}
}
