package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/borisandre/mrb-cli/internal/report"
)

var (
	lotID         string
	lotFormula    string
	lotList       bool
	lotOutputPath string
)

var lotCmd = &cobra.Command{
	Use:   "lot <file>...",
	Short: "Drill into one lot's treatment and per-product dosing",
	Long: `Lot selects a single (lot, formula) pair and reports its classification,
treatment window, headline metrics and a per-product table of required vs
dosed quantities with dose rates per 100 kg of treated seed.

Use --list to discover the lots present in the logs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(args)
		if err != nil {
			return err
		}
		if lotList {
			for _, l := range report.Lots(s.Records) {
				fmt.Printf("%s: %s\n", l, strings.Join(report.FormulasForLot(s.Records, l), ", "))
			}
			return nil
		}
		if lotID == "" {
			return fmt.Errorf("--lot is required (or use --list)")
		}
		formula := lotFormula
		if formula == "" {
			formulas := report.FormulasForLot(s.Records, lotID)
			switch len(formulas) {
			case 0:
				return fmt.Errorf("lot %q not found (use --list)", lotID)
			case 1:
				formula = formulas[0]
			default:
				return fmt.Errorf("lot %q has several formulas (%s); pick one with --formula",
					lotID, strings.Join(formulas, ", "))
			}
		}
		return writeReport(report.RenderLot(s, lotID, formula), lotOutputPath)
	},
}

func init() {
	lotCmd.Flags().StringVar(&lotID, "lot", "", "lot identifier to report on")
	lotCmd.Flags().StringVar(&lotFormula, "formula", "", "formula, when the lot was treated with more than one")
	lotCmd.Flags().BoolVar(&lotList, "list", false, "list lots and their formulas, then exit")
	lotCmd.Flags().StringVarP(&lotOutputPath, "output", "o", "", "write the report to a file instead of stdout")
	rootCmd.AddCommand(lotCmd)
}
