package ingest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeXLSX assembles a minimal workbook archive from raw part contents.
func writeXLSX(t *testing.T, parts map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log.xlsx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}
	return path
}

func fixtureParts() map[string]string {
	return map[string]string{
		"xl/workbook.xml": `<workbook xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
			<sheets>
				<sheet name="Dados" sheetId="1" r:id="rId1"/>
				<sheet name="Resumo" sheetId="2" r:id="rId2"/>
			</sheets>
		</workbook>`,
		"xl/_rels/workbook.xml.rels": `<Relationships>
			<Relationship Id="rId1" Target="worksheets/sheet1.xml"/>
			<Relationship Id="rId2" Target="worksheets/sheet2.xml"/>
		</Relationships>`,
		"xl/sharedStrings.xml": `<sst>
			<si><t>Lote</t></si>
			<si><t>PV Batelada (Kg)</t></si>
			<si><t>L001</t></si>
		</sst>`,
		"xl/worksheets/sheet1.xml": `<worksheet><sheetData>
			<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
			<row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2"><v>1000.5</v></c></row>
		</sheetData></worksheet>`,
		"xl/worksheets/sheet2.xml": `<worksheet><sheetData>
			<row r="1"><c r="A1" t="inlineStr"><is><t>Only</t></is></c></row>
			<row r="2"><c r="A2"><v>7</v></c></row>
		</sheetData></worksheet>`,
	}
}

func TestReadXLSXFirstSheet(t *testing.T) {
	path := writeXLSX(t, fixtureParts())
	tab, err := ReadFile(path, Options{})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if tab.Len() != 1 {
		t.Fatalf("rows = %d, want 1", tab.Len())
	}
	if got := tab.Cell(0, "Lote"); got != "L001" {
		t.Errorf("shared-string cell = %q", got)
	}
	if got := tab.Cell(0, "PV Batelada (Kg)"); got != "1000.5" {
		t.Errorf("numeric cell = %q", got)
	}
}

func TestReadXLSXSheetByName(t *testing.T) {
	path := writeXLSX(t, fixtureParts())
	tab, err := ReadFile(path, Options{SheetName: "Resumo"})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !tab.Has("Only") {
		t.Fatalf("columns = %v", tab.Columns())
	}
	if got := tab.Cell(0, "Only"); got != "7" {
		t.Errorf("cell = %q", got)
	}
}

func TestReadXLSXSheetByIndex(t *testing.T) {
	path := writeXLSX(t, fixtureParts())
	tab, err := ReadFile(path, Options{SheetIndex: 2})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !tab.Has("Only") {
		t.Fatalf("columns = %v", tab.Columns())
	}
}

func TestReadXLSXUnknownSheetListsAvailable(t *testing.T) {
	path := writeXLSX(t, fixtureParts())
	_, err := ReadFile(path, Options{SheetName: "Nope"})
	if err == nil {
		t.Fatal("expected error for unknown sheet")
	}
	if !strings.Contains(err.Error(), "Dados") || !strings.Contains(err.Error(), "Resumo") {
		t.Fatalf("error should list available sheets, got: %v", err)
	}
}

func TestReadXLSXSparseRow(t *testing.T) {
	parts := fixtureParts()
	// B2 absent: the gap must come back as an empty cell, not shift C2 left.
	parts["xl/worksheets/sheet1.xml"] = `<worksheet><sheetData>
		<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c><c r="C1" t="s"><v>2</v></c></row>
		<row r="2"><c r="A2"><v>1</v></c><c r="C2"><v>3</v></c></row>
	</sheetData></worksheet>`
	path := writeXLSX(t, parts)
	tab, err := ReadFile(path, Options{})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := tab.Cell(0, "PV Batelada (Kg)"); got != "" {
		t.Errorf("gap cell = %q, want empty", got)
	}
	if got := tab.Cell(0, "L001"); got != "3" {
		t.Errorf("C2 = %q, want 3", got)
	}
}
