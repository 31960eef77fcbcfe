package pipeline

import "github.com/borisandre/mrb-cli/internal/frame"

const (
	maxLiquidUnits = 10
	maxPowderUnits = 4
)

// DiscoverUnits scans the normalized, concatenated table for dosing units
// that were actually used. A unit is active iff one of its setpoint-column
// spellings is present and that column sums to a strictly positive value over
// the whole dataset — activity is a property of the dataset, not of any one
// file, so this must run after concatenation.
//
// The returned order is fixed: liquid heads ED01..ED10 first, then powder
// heads DP01..DP04, ascending. Canonical indices are assigned later from this
// order, contiguously, regardless of which positions were skipped.
func DiscoverUnits(t *frame.Table) []Unit {
	var units []Unit
	for n := 1; n <= maxLiquidUnits; n++ {
		u := Unit{Kind: KindLiquid, Number: n}
		if col, ok := resolveAlias(t, u, FieldSetpoint); ok && t.Sum(col) > 0 {
			units = append(units, u)
		}
	}
	for n := 1; n <= maxPowderUnits; n++ {
		u := Unit{Kind: KindPowder, Number: n}
		if col, ok := resolveAlias(t, u, FieldSetpoint); ok && t.Sum(col) > 0 {
			units = append(units, u)
		}
	}
	return units
}
