package pipeline

import "github.com/borisandre/mrb-cli/internal/frame"

// FieldPresence records which per-unit columns existed in the dataset after
// all alias spellings were tried. Later stages must tolerate absent fields:
// the corrector skips a unit unless setpoint, dosed and error are all present.
type FieldPresence struct {
	Setpoint      bool
	SetpointDosed bool
	Dosed         bool
	ErrorPct      bool
	Product       bool
	Density       bool
	UOM           bool
}

// Complete reports whether the three fields the corrector needs are present.
func (p FieldPresence) Complete() bool {
	return p.Setpoint && p.Dosed && p.ErrorPct
}

// RegisteredUnit binds a discovered dosing unit to its canonical 1-based
// index for the session.
type RegisteredUnit struct {
	Unit  Unit
	Index int
	Has   FieldPresence
}

// Registry is the session's ordered dosing-unit registry: index i+1 is the
// canonical index of Units[i], stable for the life of the loaded dataset.
type Registry struct {
	Units []RegisteredUnit
}

// Len returns the number of registered units.
func (r Registry) Len() int { return len(r.Units) }

// Labels returns the raw labels ("ED02", "DP01", ...) in registry order.
func (r Registry) Labels() []string {
	out := make([]string, len(r.Units))
	for i, u := range r.Units {
		out[i] = u.Unit.Label()
	}
	return out
}

// MapUnitColumns renames each discovered unit's raw columns to canonical
// indexed names (registry order, canonical index = position, 1-based) and
// records which fields were found. A field absent under every spelling stays
// absent; no zero-filled columns are invented for it.
func MapUnitColumns(t *frame.Table, units []Unit) Registry {
	reg := Registry{Units: make([]RegisteredUnit, 0, len(units))}
	fields := []Field{
		FieldSetpoint, FieldSetpointDosed, FieldDosed,
		FieldErrorPct, FieldProduct, FieldDensity, FieldUOM,
	}
	for i, u := range units {
		ru := RegisteredUnit{Unit: u, Index: i + 1}
		for _, f := range fields {
			raw, ok := resolveAlias(t, u, f)
			if !ok {
				continue
			}
			t.Rename(raw, canonicalUnitColumn(f, ru.Index))
			switch f {
			case FieldSetpoint:
				ru.Has.Setpoint = true
			case FieldSetpointDosed:
				ru.Has.SetpointDosed = true
			case FieldDosed:
				ru.Has.Dosed = true
			case FieldErrorPct:
				ru.Has.ErrorPct = true
			case FieldProduct:
				ru.Has.Product = true
			case FieldDensity:
				ru.Has.Density = true
			case FieldUOM:
				ru.Has.UOM = true
			}
		}
		reg.Units = append(reg.Units, ru)
	}
	return reg
}
