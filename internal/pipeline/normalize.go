package pipeline

import (
	"github.com/borisandre/mrb-cli/internal/frame"
)

// NormalizeTable renames known raw headers to canonical names and repairs the
// end-time column in place. It runs once per file, before concatenation.
//
// Some firmware versions log the end time ("Time") as an elapsed duration
// rather than a clock value; the HH:MM:SS fragment is extracted so the cell
// reparses as a time of day. Cells that fail every parse are left as-is and
// become missing values downstream, never load failures.
func NormalizeTable(t *frame.Table) {
	for _, raw := range t.Columns() {
		if canon, ok := headerAliases[raw]; ok {
			t.Rename(raw, canon)
		}
	}
	if !t.Has(ColEndTime) {
		return
	}
	for i := 0; i < t.Len(); i++ {
		if hms, ok := frame.ExtractClock(t.Cell(i, ColEndTime)); ok {
			t.SetCell(i, ColEndTime, hms)
		}
	}
}
