package pipeline

import (
	"testing"

	"github.com/borisandre/mrb-cli/internal/frame"
)

func TestNormalizeTableRenamesAliases(t *testing.T) {
	tab := frame.New(
		[]string{"Date", "Time", "Hora Inicial", "Lote", "Espécie", "Receita Selecionada", "PV Batelada (Kg)", "Unknown Column"},
		[][]string{{"2024-03-05", "07:33:12", "07:20:00", "L001", "Soja", "FORM A", "1000", "x"}},
	)
	NormalizeTable(tab)
	for _, want := range []string{ColDate, ColEndTime, ColStartTime, ColLot, ColSpecies, ColFormula, ColActualBatch} {
		if !tab.Has(want) {
			t.Errorf("missing canonical column %q after normalize; have %v", want, tab.Columns())
		}
	}
	if !tab.Has("Unknown Column") {
		t.Error("unknown headers must pass through untouched")
	}
}

func TestNormalizeTableRepairsDurationEndTime(t *testing.T) {
	tab := frame.New(
		[]string{"Time"},
		[][]string{{"0 days 07:33:12.500000"}, {"08:05:00"}, {"not a time"}},
	)
	NormalizeTable(tab)
	if got := tab.Cell(0, ColEndTime); got != "07:33:12" {
		t.Errorf("repaired cell = %q, want 07:33:12", got)
	}
	if got := tab.Cell(1, ColEndTime); got != "08:05:00" {
		t.Errorf("plain clock mangled: %q", got)
	}
	if got := tab.Cell(2, ColEndTime); got != "not a time" {
		t.Errorf("unparsable cell must stay as-is, got %q", got)
	}
}
