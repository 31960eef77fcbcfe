package pipeline

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/borisandre/mrb-cli/internal/ingest"
)

const sampleLog = `Date;Hora Inicial;Time;Lote;Espécie;Receita;Operador;PV Batelada (Kg);Qtd Batelada;SP Receita ED01;PV Dosagem ED01;Erro Dosagem ED01;Produto ED01
2024-03-05;07:20:00;0 days 07:33:12.500000;L001;Soja;FORM A;Alice;1.000,0;1;500;4900;2;Vitavax
2024-03-06;23:50:00;00:10:00;L002;Trigo;FORM B;Bob;950,5;1;500;4800;0;Vitavax
`

func writeSample(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(sampleLog), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadEndToEnd(t *testing.T) {
	path := writeSample(t, "log.csv")
	s, err := Load([]string{path}, ingest.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.ID == "" {
		t.Error("session id not set")
	}
	if len(s.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(s.Records))
	}
	if got := s.Registry.Labels(); len(got) != 1 || got[0] != "ED01" {
		t.Fatalf("registry = %v", got)
	}

	r := s.Records[0]
	if r.Lot != "L001" || r.Formula != "FORM A" || r.Operator != "Alice" {
		t.Fatalf("classification = %+v", r)
	}
	if r.ActualPerBatch != 1000 {
		t.Errorf("ActualPerBatch = %v, want 1000 (locale parse)", r.ActualPerBatch)
	}
	if r.CycleSeconds != 792 {
		t.Errorf("CycleSeconds = %v, want 792", r.CycleSeconds)
	}
	d := r.Units[0]
	if d.SetpointDosed != 5000 {
		t.Errorf("derived SetpointDosed = %v, want 5000", d.SetpointDosed)
	}
	// 4900 is inside the clamp band; the 2% error correction lands on 4998.
	if math.Abs(d.Dosed-4998) > 1e-9 {
		t.Errorf("corrected Dosed = %v, want 4998", d.Dosed)
	}
	if math.Abs(r.TotalConsumption-4998) > 1e-9 {
		t.Errorf("TotalConsumption = %v, want 4998", r.TotalConsumption)
	}
}

func TestLoadMidnightShift(t *testing.T) {
	path := writeSample(t, "log.csv")
	s, err := Load([]string{path}, ingest.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	r := s.Records[1]
	wantStart := time.Date(2024, 3, 5, 23, 50, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 3, 6, 0, 10, 0, 0, time.UTC)
	if !r.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v (shifted back a day)", r.Start, wantStart)
	}
	if !r.End.Equal(wantEnd) {
		t.Errorf("End = %v, want %v", r.End, wantEnd)
	}
	if r.CycleSeconds != 1200 {
		t.Errorf("CycleSeconds = %v, want 1200", r.CycleSeconds)
	}
}

func TestLoadDedupesAcrossFiles(t *testing.T) {
	a := writeSample(t, "a.csv")
	b := writeSample(t, "b.csv")
	s, err := Load([]string{a, b}, ingest.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Files) != 2 {
		t.Fatalf("files = %d", len(s.Files))
	}
	if len(s.Records) != 2 {
		t.Fatalf("records = %d, want 2 after dedupe of identical uploads", len(s.Records))
	}
}

func TestLoadSkipsBadFilesWithWarning(t *testing.T) {
	good := writeSample(t, "good.csv")
	bad := filepath.Join(t.TempDir(), "missing.csv")
	s, err := Load([]string{bad, good}, ingest.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Files) != 1 {
		t.Fatalf("files = %v", s.Files)
	}
	if len(s.Warnings) != 1 {
		t.Fatalf("warnings = %v", s.Warnings)
	}
}

func TestLoadDeterministic(t *testing.T) {
	// Two loads of the same file must agree: corrections fire exactly once per
	// load and never compound.
	path := writeSample(t, "log.csv")
	first, err := Load([]string{path}, ingest.Options{})
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	second, err := Load([]string{path}, ingest.Options{})
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if len(first.Records) != len(second.Records) {
		t.Fatalf("record counts differ: %d vs %d", len(first.Records), len(second.Records))
	}
	for i := range first.Records {
		if rowKey(&first.Records[i]) != rowKey(&second.Records[i]) {
			t.Fatalf("record %d differs between loads", i)
		}
	}
}

func TestLoadAllBadFails(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "missing.csv")
	_, err := Load([]string{bad}, ingest.Options{})
	if !errors.Is(err, ErrNoValidFiles) {
		t.Fatalf("err = %v, want ErrNoValidFiles", err)
	}
}
