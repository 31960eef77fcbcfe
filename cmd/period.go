package cmd

import (
	"github.com/spf13/cobra"

	"github.com/borisandre/mrb-cli/internal/report"
)

var (
	perFrom       string
	perTo         string
	perOutputPath string
)

var periodCmd = &cobra.Command{
	Use:   "period <file>...",
	Short: "Report production, productivity and lots for a period",
	Long: `Period summarizes the selected window: total production, effective machine
time, mean productivity, batch statistics, and one row per (lot, formula)
with its dosing variance.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := parseWindow(perFrom, perTo)
		if err != nil {
			return err
		}
		s, err := loadSession(args)
		if err != nil {
			return err
		}
		return writeReport(report.RenderPeriod(s, w), perOutputPath)
	},
}

func init() {
	periodCmd.Flags().StringVar(&perFrom, "from", "", "window start, inclusive (DD-MM-YYYY [HH:MM:SS])")
	periodCmd.Flags().StringVar(&perTo, "to", "", "window end, exclusive")
	periodCmd.Flags().StringVarP(&perOutputPath, "output", "o", "", "write the report to a file instead of stdout")
	rootCmd.AddCommand(periodCmd)
}
