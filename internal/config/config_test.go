package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Delimiter != "auto" {
		t.Errorf("delimiter = %q, want auto", c.Delimiter)
	}
	if c.SheetIndex != 0 || c.MaxRows != 0 {
		t.Errorf("defaults = %+v", c)
	}
	if c.OutputDir != "." {
		t.Errorf("output_dir = %q, want .", c.OutputDir)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Global{
		Delimiter:  ";",
		SheetName:  "Dados",
		SheetIndex: 2,
		MaxRows:    5000,
		OutputDir:  "/tmp/reports",
	}
	if err := Save(in, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *out != *in {
		t.Fatalf("roundtrip mismatch: %+v vs %+v", out, in)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("max_rows: 10\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MRB_MAX_ROWS", "99")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.MaxRows != 99 {
		t.Fatalf("env override ignored: max_rows = %d", c.MaxRows)
	}
}

func TestReaderDelimiter(t *testing.T) {
	cases := map[string]rune{
		"":     0,
		"auto": 0,
		";":    ';',
		",":    ',',
		"tab":  '\t',
		"\\t":  '\t',
	}
	for in, want := range cases {
		c := &Global{Delimiter: in}
		if got := c.ReaderDelimiter(); got != want {
			t.Errorf("ReaderDelimiter(%q) = %q, want %q", in, got, want)
		}
	}
}
