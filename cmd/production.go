package cmd

import (
	"github.com/spf13/cobra"

	"github.com/borisandre/mrb-cli/internal/report"
)

var (
	prodFrom       string
	prodTo         string
	prodOutputPath string
)

var productionCmd = &cobra.Command{
	Use:   "production <file>...",
	Short: "Report production breakdowns and the weekday/hour grid",
	Long: `Production breaks the period's treated tonnage down by operator, species,
bag type, sieve and formula, and renders the weekday-by-hour production grid
used to spot shift patterns.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := parseWindow(prodFrom, prodTo)
		if err != nil {
			return err
		}
		s, err := loadSession(args)
		if err != nil {
			return err
		}
		return writeReport(report.RenderProduction(s, w), prodOutputPath)
	},
}

func init() {
	productionCmd.Flags().StringVar(&prodFrom, "from", "", "window start, inclusive (DD-MM-YYYY [HH:MM:SS])")
	productionCmd.Flags().StringVar(&prodTo, "to", "", "window end, exclusive")
	productionCmd.Flags().StringVarP(&prodOutputPath, "output", "o", "", "write the report to a file instead of stdout")
	rootCmd.AddCommand(productionCmd)
}
