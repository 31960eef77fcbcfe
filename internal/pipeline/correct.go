package pipeline

import "math"

// scaleThreshold separates values logged in liters/kilograms from the
// canonical milliliters/grams: a concentration or dose at or below 5 can only
// be a wrong-unit entry on a seed-treatment line.
const scaleThreshold = 5.0

// clampLow/clampHigh bound the plausible dosed quantity relative to the
// setpoint-equivalent; outside them the logged value is treated as a sensor
// or logging fault and replaced by the expected value.
const (
	clampLow  = 0.8
	clampHigh = 1.2
)

// errorTrustBand is the largest reported dosing error (in percent, either
// sign) still applied as a correction; larger readings are unreliable and
// ignored.
const errorTrustBand = 20.0

// ApplyCorrections runs the unit-scale and plausibility rules over every
// registered unit, in registry order. Units missing any of setpoint, dosed or
// error columns are skipped entirely.
//
// The step order is load-bearing: rescaling must precede the clamp (the clamp
// bounds come from the already-rescaled setpoint), and the error correction
// must be the final mutation so it is never itself clamped.
func ApplyCorrections(recs []Record, reg Registry) {
	for ui, ru := range reg.Units {
		if !ru.Has.Complete() {
			continue
		}
		rescaleSetpoint(recs, ui)
		rescaleDosed(recs, ui)
		if !ru.Has.SetpointDosed {
			deriveSetpointDosed(recs, ui)
		}
		clampDosed(recs, ui)
		applyErrorCorrection(recs, ui)
	}
}

// rescaleSetpoint multiplies wrong-unit setpoint concentrations by 1000. The
// trigger is any row inside [0, 5]; only rows inside the band are scaled, so
// a column already in mL/g is untouched and a second run is a no-op.
func rescaleSetpoint(recs []Record, ui int) {
	if !anyInScaleBand(recs, ui, func(d *UnitDose) float64 { return d.Setpoint }) {
		return
	}
	for i := range recs {
		if v := recs[i].Units[ui].Setpoint; inScaleBand(v) {
			recs[i].Units[ui].Setpoint = v * 1000
		}
	}
}

func rescaleDosed(recs []Record, ui int) {
	if !anyInScaleBand(recs, ui, func(d *UnitDose) float64 { return d.Dosed }) {
		return
	}
	for i := range recs {
		if v := recs[i].Units[ui].Dosed; inScaleBand(v) {
			recs[i].Units[ui].Dosed = v * 1000
		}
	}
}

// deriveSetpointDosed fills the setpoint-dosed-equivalent when the export had
// no explicit column: concentration is per 100 kg treated, so the absolute
// expectation is batch weight / 100 × concentration.
func deriveSetpointDosed(recs []Record, ui int) {
	for i := range recs {
		recs[i].Units[ui].SetpointDosed = recs[i].ActualPerBatch / 100 * recs[i].Units[ui].Setpoint
	}
}

// clampDosed replaces dosed values outside [0.8, 1.2] × setpoint-dosed with
// the setpoint-dosed value itself. NaN bounds fail the comparison, so a row
// with a missing setpoint-equivalent also takes the (missing) expectation:
// an unverifiable reading is never kept.
func clampDosed(recs []Record, ui int) {
	for i := range recs {
		d := &recs[i].Units[ui]
		if !(d.Dosed >= clampLow*d.SetpointDosed && d.Dosed <= clampHigh*d.SetpointDosed) {
			d.Dosed = d.SetpointDosed
		}
	}
}

// applyErrorCorrection folds the machine-reported dosing error into the dosed
// value. Non-numeric, missing and infinite readings count as zero; readings
// outside the trust band leave the clamped value standing.
func applyErrorCorrection(recs []Record, ui int) {
	for i := range recs {
		d := &recs[i].Units[ui]
		e := d.ErrorPct
		if math.IsNaN(e) || math.IsInf(e, 0) {
			e = 0
			d.ErrorPct = 0
		}
		if e >= -errorTrustBand && e <= errorTrustBand {
			d.Dosed *= 1 + e/100
		}
	}
}

func inScaleBand(v float64) bool {
	return v >= 0 && v <= scaleThreshold
}

func anyInScaleBand(recs []Record, ui int, get func(*UnitDose) float64) bool {
	for i := range recs {
		if inScaleBand(get(&recs[i].Units[ui])) {
			return true
		}
	}
	return false
}
