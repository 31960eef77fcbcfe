package cmd

import (
	"github.com/spf13/cobra"

	"github.com/borisandre/mrb-cli/internal/report"
)

var (
	consFrom       string
	consTo         string
	consOutputPath string
)

var consumptionCmd = &cobra.Command{
	Use:   "consumption <file>...",
	Short: "Report product consumption by formula and by product",
	Long: `Consumption sums the corrected dosed quantities over the selected period,
grouped by formula and consolidated by product name across all dosing units.
Quantities are reported in liters; production in tonnes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := parseWindow(consFrom, consTo)
		if err != nil {
			return err
		}
		s, err := loadSession(args)
		if err != nil {
			return err
		}
		return writeReport(report.RenderConsumption(s, w), consOutputPath)
	},
}

func init() {
	consumptionCmd.Flags().StringVar(&consFrom, "from", "", "window start, inclusive (DD-MM-YYYY [HH:MM:SS])")
	consumptionCmd.Flags().StringVar(&consTo, "to", "", "window end, exclusive")
	consumptionCmd.Flags().StringVarP(&consOutputPath, "output", "o", "", "write the report to a file instead of stdout")
	rootCmd.AddCommand(consumptionCmd)
}
