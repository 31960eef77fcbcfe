package cmd

import (
	"github.com/spf13/cobra"

	"github.com/borisandre/mrb-cli/internal/report"
)

var loadOutputPath string

var loadCmd = &cobra.Command{
	Use:   "load <file>...",
	Short: "Ingest machine logs and show the dataset summary",
	Long: `Load reads one or more CSV/XLSX machine logs, normalizes them into the
canonical batch table and prints what was found: the active dosing units,
the dataset's time span and any files that were skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(args)
		if err != nil {
			return err
		}
		return writeReport(report.RenderLoad(s), loadOutputPath)
	},
}

func init() {
	loadCmd.Flags().StringVarP(&loadOutputPath, "output", "o", "", "write the summary to a file instead of stdout")
	rootCmd.AddCommand(loadCmd)
}
