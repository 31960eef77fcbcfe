package pipeline

import (
	"fmt"
	"strings"

	"github.com/borisandre/mrb-cli/internal/frame"
)

// Canonical scalar column names shared by every firmware export once
// normalized. Raw headers are matched case- and accent-sensitively: the
// firmware writes them verbatim, localized spellings included.
const (
	ColDate            = "date"
	ColStartTime       = "start_time"
	ColEndTime         = "end_time"
	ColLot             = "lot"
	ColSpecies         = "species"
	ColCategory        = "category"
	ColCultivar        = "cultivar"
	ColSieve           = "sieve"
	ColBagType         = "bag_type"
	ColOperator        = "operator"
	ColObservation     = "observation"
	ColSeedWeight1000  = "seed_weight_1000"
	ColBatchCount      = "batch_count"
	ColFormula         = "formula"
	ColSetpointTotal   = "setpoint_total"
	ColActualTotal     = "actual_total"
	ColSetpointBatch   = "setpoint_per_batch"
	ColActualBatch     = "actual_per_batch"
	ColCycleTime       = "cycle_time"
	ColMixTime         = "mix_time"
	ColDischargeTime   = "discharge_time"
)

// headerAliases maps every known historical raw header to its canonical name.
// Raw names not listed pass through the normalizer untouched.
var headerAliases = map[string]string{
	"Date":                    ColDate,
	"Time":                    ColEndTime,
	"Hora Final":              ColEndTime,
	"Hora Inicial":            ColStartTime,
	"Lote":                    ColLot,
	"Espécie":                 ColSpecies,
	"Especie":                 ColSpecies,
	"Categoria":               ColCategory,
	"Cultivar":                ColCultivar,
	"Peneira":                 ColSieve,
	"Ensaque":                 ColBagType,
	"Operador":                ColOperator,
	"Observação":              ColObservation,
	"Observacao":              ColObservation,
	"Peso_Mil_Sementes":       ColSeedWeight1000,
	"Peso de Mil Sementes":    ColSeedWeight1000,
	"Qtd Batelada":            ColBatchCount,
	"Núm. Batelada":           ColBatchCount,
	"Núm. Bateladas":          ColBatchCount,
	"Receita":                 ColFormula,
	"Receita Selecionada":     ColFormula,
	"Tratamento Solicitado (Kg)": ColSetpointTotal,
	"Sementes Tratadas (Kg)":  ColActualTotal,
	"SP Batelada (Kg)":        ColSetpointBatch,
	"PV Batelada (Kg)":        ColActualBatch,
	"Tempo_Ciclo":             ColCycleTime,
	"Tempo de Ciclo":          ColCycleTime,
	"Tempo_Mistura":           ColMixTime,
	"Tempo de Mistura":        ColMixTime,
	"Tempo_Descarga":          ColDischargeTime,
	"Tempo de Descarga":       ColDischargeTime,
}

// Kind is the dosing-unit family: liquid metering heads ("ED", up to 10 per
// line) dose in mL and powder heads ("DP", up to 4) in g.
type Kind string

const (
	KindLiquid Kind = "ED"
	KindPowder Kind = "DP"
)

// Suffix is the unit-of-measure suffix some firmware versions append to the
// raw per-unit headers.
func (k Kind) Suffix() string {
	if k == KindPowder {
		return "(Kg)"
	}
	return "(L)"
}

// Unit identifies one physical dosing head by family and panel position.
type Unit struct {
	Kind   Kind
	Number int
}

// Label renders the raw-header form, e.g. "ED01" or "DP03".
func (u Unit) Label() string { return fmt.Sprintf("%s%02d", u.Kind, u.Number) }

// Field names one logical per-unit quantity.
type Field int

const (
	FieldSetpoint Field = iota // formula concentration setpoint ("SP Receita")
	FieldSetpointDosed         // absolute setpoint-dosed quantity ("SP Dosagem")
	FieldDosed                 // absolute dosed quantity ("PV Dosagem")
	FieldErrorPct              // reported dosing error ("Erro Dosagem")
	FieldProduct
	FieldDensity
	FieldUOM
)

// unitAliases lists the accepted raw spellings per field, most specific
// first. "{u}" is the unit label, "{s}" the kind's unit-of-measure suffix.
var unitAliases = map[Field][]string{
	FieldSetpoint:      {"SP Receita - {u} {s}", "SP Receita {u}", "SP Receita - {u}"},
	FieldSetpointDosed: {"SP Dosagem - {u} {s}", "SP Dosagem {u}", "SP Dosagem - {u}"},
	FieldDosed:         {"PV Dosagem - {u} {s}", "PV Dosagem {u}", "PV Dosagem - {u}"},
	FieldErrorPct:      {"Erro Dosagem - {u} (%)", "Erro Dosagem {u}"},
	FieldProduct:       {"Produto {u}"},
	FieldDensity:       {"Densidade {u}", "Densidade - {u}"},
	FieldUOM:           {"Unid medida {u}", "Unid. Medida - {u}", "Unid_Sementes_{u}"},
}

// aliasSpellings renders the accepted raw header spellings for one unit/field.
func aliasSpellings(u Unit, f Field) []string {
	patterns := unitAliases[f]
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		s := strings.ReplaceAll(p, "{u}", u.Label())
		s = strings.ReplaceAll(s, "{s}", u.Kind.Suffix())
		out = append(out, s)
	}
	return out
}

// resolveAlias returns the first accepted spelling present in the table.
func resolveAlias(t *frame.Table, u Unit, f Field) (string, bool) {
	for _, name := range aliasSpellings(u, f) {
		if t.Has(name) {
			return name, true
		}
	}
	return "", false
}

// canonicalUnitColumn names the canonical indexed column for a field, e.g.
// canonicalUnitColumn(FieldDosed, 2) == "actual_dosed02".
func canonicalUnitColumn(f Field, index int) string {
	switch f {
	case FieldSetpoint:
		return fmt.Sprintf("setpoint_concentration%02d", index)
	case FieldSetpointDosed:
		return fmt.Sprintf("setpoint_dosed%02d", index)
	case FieldDosed:
		return fmt.Sprintf("actual_dosed%02d", index)
	case FieldErrorPct:
		return fmt.Sprintf("dosing_error_pct%02d", index)
	case FieldProduct:
		return fmt.Sprintf("product_name%02d", index)
	case FieldDensity:
		return fmt.Sprintf("density%02d", index)
	case FieldUOM:
		return fmt.Sprintf("unit_of_measure%02d", index)
	}
	return ""
}
