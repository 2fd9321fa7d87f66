package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitscan/internal/loader"
	"github.com/leapstack-labs/unitscan/internal/state"
	"github.com/leapstack-labs/unitscan/pkg/extract"
	_ "github.com/leapstack-labs/unitscan/pkg/extract/shapes" // register extraction shapes
)

// AnalyzeOptions holds options for the analyze command.
type AnalyzeOptions struct {
	Format   string // Output format override
	Save     bool   // Persist results to the state database
	Sentinel bool   // Replace dynamic SQL with a sentinel marker
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Scan source units for database operations",
		Long: `Scan a source tree (or a single unit file) for database operations.

Each .pas, .dpr, and .dpk file is treated as one unit. Method bodies are
isolated, SQL statements are recovered from literals and concatenation
expressions, parameters are typed from accessor calls, and operations
inside transaction control blocks are grouped.`,
		Example: `  # Analyze the configured source tree
  unitscan analyze

  # Analyze a specific directory
  unitscan analyze ./legacy/src

  # Emit JSON and persist the run
  unitscan analyze ./legacy/src --format json --save

  # Mark dynamic SQL with a sentinel instead of reconstructing it
  unitscan analyze --dynamic-sentinel`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json, csv")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "Persist results to the state database")
	cmd.Flags().BoolVar(&opts.Sentinel, "dynamic-sentinel", false, "Replace dynamic SQL text with a sentinel marker")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	root := cfg.Source
	if len(args) > 0 {
		root = args[0]
	}

	sentinel := cfg.DynamicSentinel || opts.Sentinel
	analyzer := extract.New(extract.WithDynamicSentinel(sentinel))
	l := loader.New(cmdCtx.Logger, cfg.Workers)

	reports, err := l.AnalyzePath(cmd.Context(), analyzer, root)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if opts.Save {
		if err := saveRun(cmdCtx, root, reports); err != nil {
			return err
		}
	}

	format := cfg.OutputFormat
	if opts.Format != "" {
		format = opts.Format
	}
	return renderReports(cmd.OutOrStdout(), reports, format)
}

// saveRun persists one completed analysis pass to the state database.
func saveRun(cmdCtx *CommandContext, root string, reports []*extract.UnitReport) error {
	store, err := openStore(cmdCtx.Cfg.StatePath)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.CreateRun(root)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	total := 0
	for _, report := range reports {
		if err := store.SaveReport(run.ID, report); err != nil {
			cerr := store.CompleteRun(run.ID, state.RunStatusFailed, len(reports), total)
			if cerr != nil {
				cmdCtx.Logger.Warn("failed to mark run failed", "run", run.ID, "error", cerr)
			}
			return fmt.Errorf("failed to save report for %s: %w", report.UnitName, err)
		}
		total += len(report.Operations)
	}

	if err := store.CompleteRun(run.ID, state.RunStatusCompleted, len(reports), total); err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}

	cmdCtx.Logger.Info("run saved", "run", run.ID, "units", len(reports), "operations", total)
	return nil
}

// openStore opens (and migrates) the state database at path, creating the
// parent directory if needed.
func openStore(path string) (*state.SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(path); err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to migrate state database: %w", err)
	}
	return store, nil
}
