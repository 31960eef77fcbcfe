package frame

import (
	"reflect"
	"testing"
)

func TestNewPadsShortRows(t *testing.T) {
	tab := New([]string{"a", "b", "c"}, [][]string{{"1"}, {"1", "2", "3", "4"}})
	if tab.Len() != 2 {
		t.Fatalf("Len = %d", tab.Len())
	}
	if got := tab.Cell(0, "b"); got != "" {
		t.Errorf("padded cell = %q, want empty", got)
	}
	if got := tab.Cell(1, "c"); got != "3" {
		t.Errorf("cell(1,c) = %q", got)
	}
}

func TestRename(t *testing.T) {
	tab := New([]string{"old", "other"}, [][]string{{"x", "y"}})
	if !tab.Rename("old", "new") {
		t.Fatal("rename failed")
	}
	if tab.Has("old") || !tab.Has("new") {
		t.Fatal("rename did not move the column")
	}
	if got := tab.Cell(0, "new"); got != "x" {
		t.Fatalf("cell after rename = %q", got)
	}
	if tab.Rename("new", "other") {
		t.Fatal("rename onto an existing column must be refused")
	}
}

func TestSumSkipsUnparsable(t *testing.T) {
	tab := New([]string{"v"}, [][]string{{"1,5"}, {""}, {"bad"}, {"2.5"}})
	if got := tab.Sum("v"); got != 4 {
		t.Fatalf("Sum = %v, want 4", got)
	}
	if got := tab.Sum("missing"); got != 0 {
		t.Fatalf("Sum of missing column = %v", got)
	}
}

func TestAppendUnionsColumns(t *testing.T) {
	a := New([]string{"x", "y"}, [][]string{{"1", "2"}})
	b := New([]string{"y", "z"}, [][]string{{"3", "4"}})
	a.Append(b)
	if a.Len() != 2 {
		t.Fatalf("Len = %d", a.Len())
	}
	if !reflect.DeepEqual(a.Columns(), []string{"x", "y", "z"}) {
		t.Fatalf("Columns = %v", a.Columns())
	}
	if a.Cell(1, "x") != "" || a.Cell(1, "y") != "3" || a.Cell(1, "z") != "4" {
		t.Fatalf("appended row = %q %q %q", a.Cell(1, "x"), a.Cell(1, "y"), a.Cell(1, "z"))
	}
	if a.Cell(0, "z") != "" {
		t.Fatalf("existing row should have empty cell for new column")
	}
}
