package report

import (
	"fmt"
	"strings"

	"github.com/borisandre/mrb-cli/internal/pipeline"
)

const timeFormat = "02-01-2006 15:04:05"

func header(b *strings.Builder, s *pipeline.Session, title string) {
	b.WriteString("[" + title + "]\n")
	fmt.Fprintf(b, "Session: %s\n", s.ID)
	fmt.Fprintf(b, "Files: %d  Batches: %d  Units: %s\n\n",
		len(s.Files), len(s.Records), strings.Join(s.Registry.Labels(), ", "))
}

func windowLine(b *strings.Builder, recs []pipeline.Record, w Window) {
	from, to := w.From, w.To
	if from.IsZero() || to.IsZero() {
		bf, bt := Bounds(recs)
		if from.IsZero() {
			from = bf
		}
		if to.IsZero() {
			to = bt
		}
	}
	if !from.IsZero() {
		fmt.Fprintf(b, "Period: %s to %s\n\n", from.Format(timeFormat), to.Format(timeFormat))
	}
}

// RenderLoad summarizes a load action: the unit registry, the canonical
// table's shape and any per-file warnings.
func RenderLoad(s *pipeline.Session) string {
	var b strings.Builder
	header(&b, s, "LOAD SUMMARY")
	b.WriteString("[ACTIVE DOSING UNITS]\n")
	if s.Registry.Len() == 0 {
		b.WriteString("- none\n")
	}
	for _, ru := range s.Registry.Units {
		kind := "liquid"
		if ru.Unit.Kind == pipeline.KindPowder {
			kind = "powder"
		}
		fmt.Fprintf(&b, "- %02d: %s (%s)\n", ru.Index, ru.Unit.Label(), kind)
	}
	if from, to := Bounds(s.Records); !from.IsZero() {
		fmt.Fprintf(&b, "\nDataset spans %s to %s\n", from.Format(timeFormat), to.Format(timeFormat))
	}
	if len(s.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range s.Warnings {
			b.WriteString("- " + w + "\n")
		}
	}
	return b.String()
}

// RenderConsumption renders the by-formula and by-product consumption views.
func RenderConsumption(s *pipeline.Session, w Window) string {
	recs := Filter(s.Records, w)
	var b strings.Builder
	header(&b, s, "CONSUMPTION REPORT")
	windowLine(&b, recs, w)

	b.WriteString("[CONSUMPTION BY FORMULA]\n")
	b.WriteString("| Formula | Consumption (L) | Production (t) |\n| --- | --- | --- |\n")
	for _, row := range ByFormula(recs) {
		fmt.Fprintf(&b, "| %s | %.2f | %.2f |\n", row.Formula, row.ConsumptionL, row.ProductionTon)
	}

	products := ByProduct(recs, s.Registry)
	b.WriteString("\n[CONSUMPTION BY PRODUCT]\n")
	b.WriteString("| Product | Consumption (L) |\n| --- | --- |\n")
	for _, row := range products {
		fmt.Fprintf(&b, "| %s | %.2f |\n", row.Product, row.ConsumptionL)
	}
	fmt.Fprintf(&b, "\nTotal consumption: %.2f L\n", TotalConsumptionL(products))
	return b.String()
}

func writeSummary(b *strings.Builder, sum Summary) {
	fmt.Fprintf(b, "- Production: %.2f t\n", sum.ProductionTon)
	fmt.Fprintf(b, "- Effective time: %s\n", FormatDuration(sum.EffectiveSeconds))
	fmt.Fprintf(b, "- Mean productivity: %.2f t/h\n", sum.ProductivityTonPerHour)
	fmt.Fprintf(b, "- Mean batch weight: %.2f kg\n", sum.MeanBatchKg)
	fmt.Fprintf(b, "- Mean cycle time: %.1f s\n", sum.MeanCycleSeconds)
	fmt.Fprintf(b, "- Batches: %d  Lots: %d  Formulas: %d\n", sum.Batches, sum.Lots, sum.Formulas)
}

// RenderPeriod renders the period summary and the (lot, formula) grouping.
func RenderPeriod(s *pipeline.Session, w Window) string {
	recs := Filter(s.Records, w)
	var b strings.Builder
	header(&b, s, "PERIOD REPORT")
	windowLine(&b, recs, w)

	b.WriteString("[PERIOD SUMMARY]\n")
	writeSummary(&b, Summarize(recs))

	b.WriteString("\n[LOTS IN PERIOD]\n")
	b.WriteString("| Start | End | Lot | Formula | Treated (t) | Batches | Required (L) | Dosed (L) | Variance (%) |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, g := range LotSummaries(recs) {
		flag := ""
		if g.VariancePct < -5 || g.VariancePct > 5 {
			flag = " ⚠"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %.2f | %d | %.2f | %.2f | %.3f%s |\n",
			g.Start.Format(timeFormat), g.End.Format("15:04:05"), g.Lot, g.Formula,
			g.TreatedTon, g.Batches, g.RequiredL, g.DosedL, g.VariancePct, flag)
	}
	return b.String()
}

// RenderLot renders the drill-down for one (lot, formula) selection.
func RenderLot(s *pipeline.Session, lot, formula string) string {
	recs := SelectLot(s.Records, lot, formula)
	var b strings.Builder
	header(&b, s, "LOT REPORT")
	if len(recs) == 0 {
		fmt.Fprintf(&b, "No data for lot %q with formula %q.\n", lot, formula)
		fmt.Fprintf(&b, "Known lots: %s\n", strings.Join(Lots(s.Records), ", "))
		return b.String()
	}

	info := Info(recs, lot, formula)
	b.WriteString("[LOT]\n")
	fmt.Fprintf(&b, "- Lot: %s  Formula: %s\n", info.Lot, info.Formula)
	fmt.Fprintf(&b, "- Species: %s  Sieve: %s  Category: %s  Cultivar: %s\n",
		info.Species, info.Sieve, info.Category, info.Cultivar)

	b.WriteString("\n[TREATMENT]\n")
	from, to := Bounds(recs)
	fmt.Fprintf(&b, "- Start: %s  End: %s\n", from.Format(timeFormat), to.Format(timeFormat))
	writeSummary(&b, Summarize(recs))

	b.WriteString("\n[PRODUCTS]\n")
	details, err := LotDetail(recs, s.Registry)
	if err != nil {
		fmt.Fprintf(&b, "⚠ %v\n", err)
		return b.String()
	}
	b.WriteString("| Product | Required (L) | Dosed (L) | Formula (per 100kg) | Dose (per 100kg) | Variance (%) |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	var totalDosed, totalDose float64
	for _, d := range details {
		fmt.Fprintf(&b, "| %s | %.3f | %.3f | %.1f | %.1f | %.3f |\n",
			d.Product, d.RequiredL, d.DosedL, d.FormulaDose, d.AchievedDose, d.VariancePct)
		totalDosed += d.DosedL
		totalDose += d.AchievedDose
	}
	fmt.Fprintf(&b, "\nTotal dosed: %.2f L, mean dose: %.1f per 100kg\n", totalDosed, totalDose)
	if len(info.Observations) > 0 {
		b.WriteString("\n[OBSERVATIONS]\n")
		for _, o := range info.Observations {
			b.WriteString("- " + o + "\n")
		}
	}
	return b.String()
}

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// RenderProduction renders the production dashboard: summary, breakdowns and
// the weekday × hour grid.
func RenderProduction(s *pipeline.Session, w Window) string {
	recs := Filter(s.Records, w)
	var b strings.Builder
	header(&b, s, "PRODUCTION REPORT")
	windowLine(&b, recs, w)

	b.WriteString("[SUMMARY]\n")
	writeSummary(&b, Summarize(recs))

	breakdowns := []struct {
		title string
		rows  []LabelTotal
	}{
		{"PRODUCTION BY OPERATOR", ProductionByOperator(recs)},
		{"PRODUCTION BY SPECIES", ProductionBySpecies(recs)},
		{"PRODUCTION BY BAG TYPE", ProductionByBagType(recs)},
		{"PRODUCTION BY SIEVE", ProductionBySieve(recs)},
		{"PRODUCTION BY FORMULA", ProductionByFormula(recs)},
	}
	for _, bd := range breakdowns {
		b.WriteString("\n[" + bd.title + "]\n")
		for _, row := range bd.rows {
			fmt.Fprintf(&b, "- %s: %.2f t\n", row.Label, row.Ton)
		}
	}

	grid := WeekdayHourProduction(recs)
	b.WriteString("\n[PRODUCTION BY WEEKDAY AND HOUR]\n")
	b.WriteString("| Hour |")
	for _, d := range weekdayNames {
		b.WriteString(" " + d + " |")
	}
	b.WriteString("\n| --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for h := grid.MinHour; h <= grid.MaxHour; h++ {
		fmt.Fprintf(&b, "| %02d:00 |", h)
		for wd := 0; wd < 7; wd++ {
			fmt.Fprintf(&b, " %.2f |", grid.Cells[wd][h-grid.MinHour])
		}
		b.WriteString("\n")
	}

	b.WriteString("\n[LOTS IN PERIOD]\n")
	for _, g := range LotSummaries(recs) {
		fmt.Fprintf(&b, "- %s / %s: %.2f t in %d batches, variance %.3f%%\n",
			g.Lot, g.Formula, g.TreatedTon, g.Batches, g.VariancePct)
	}
	return b.String()
}
