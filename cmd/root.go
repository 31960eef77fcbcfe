package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cfgpkg "github.com/borisandre/mrb-cli/internal/config"
	"github.com/borisandre/mrb-cli/internal/ingest"
	"github.com/borisandre/mrb-cli/internal/pipeline"
	"github.com/borisandre/mrb-cli/internal/report"
	"github.com/borisandre/mrb-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired later to config/viper)
	cfgFile string
	debug   bool
	// Input flags (override config if set)
	flagDelimiter  string
	flagSheetName  string
	flagSheetIndex int
	flagMaxRows    int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "mrb",
	Short: "MRB CLI: turn seed-treatment machine logs into reports",
	Long: `MRB reads the CSV/XLSX batch logs exported by seed-treatment machines,
normalizes their headers and locale-formatted numbers, corrects dosing
figures, and renders consumption, period, lot and production reports.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.mrb/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ','|';'|'tab' (overrides config; default auto)")
	rootCmd.PersistentFlags().StringVar(&flagSheetName, "sheet-name", "", "xlsx worksheet name (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagSheetIndex, "sheet-index", 0, "xlsx worksheet index, 1-based (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagMaxRows, "max-rows", 0, "cap rows read per file (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("delimiter") && flagDelimiter != "" {
		cfg.Delimiter = flagDelimiter
	}
	if f.Changed("sheet-name") {
		cfg.SheetName = flagSheetName
	}
	if f.Changed("sheet-index") && flagSheetIndex > 0 {
		cfg.SheetIndex = flagSheetIndex
	}
	if f.Changed("max-rows") && flagMaxRows > 0 {
		cfg.MaxRows = flagMaxRows
	}
}

// readerOptions builds the file-reading options from the effective config.
func readerOptions() ingest.Options {
	opt := ingest.Options{}
	if cfg == nil {
		return opt
	}
	opt.Delimiter = cfg.ReaderDelimiter()
	opt.SheetName = cfg.SheetName
	opt.SheetIndex = cfg.SheetIndex
	opt.MaxRows = cfg.MaxRows
	return opt
}

// loadSession ingests the given log files into a session, printing any
// per-file warnings to stderr.
func loadSession(paths []string) (*pipeline.Session, error) {
	s, err := pipeline.Load(paths, readerOptions())
	if err != nil {
		return nil, err
	}
	for _, w := range s.Warnings {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", w)
	}
	if debug {
		fmt.Fprintf(os.Stderr, "session %s: %d files, %d batches, units %s\n",
			s.ID, len(s.Files), len(s.Records), strings.Join(s.Registry.Labels(), ","))
	}
	return s, nil
}

var windowLayouts = []string{
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseWindow builds the report window from --from/--to. Empty strings leave
// the bound open.
func parseWindow(from, to string) (report.Window, error) {
	var w report.Window
	var err error
	if from != "" {
		if w.From, err = parseWindowTime(from); err != nil {
			return w, fmt.Errorf("--from: %w", err)
		}
	}
	if to != "" {
		if w.To, err = parseWindowTime(to); err != nil {
			return w, fmt.Errorf("--to: %w", err)
		}
	}
	if !w.From.IsZero() && !w.To.IsZero() && !w.From.Before(w.To) {
		return w, fmt.Errorf("--from %s is not before --to %s", from, to)
	}
	return w, nil
}

func parseWindowTime(s string) (time.Time, error) {
	for _, layout := range windowLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q (use DD-MM-YYYY [HH:MM:SS])", s)
}

// writeReport prints the rendered report, or atomically writes it when
// --output is set. A bare filename lands in the configured output_dir.
func writeReport(md, output string) error {
	if output == "" {
		fmt.Print(md)
		return nil
	}
	path := output
	if cfg != nil && cfg.OutputDir != "" && !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		path = filepath.Join(cfg.OutputDir, path)
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, []byte(md)); err != nil {
		return err
	}
	fmt.Printf("✓ Report written to %s\n", path)
	return nil
}
