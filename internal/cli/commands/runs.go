package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitscan/internal/state"
)

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List recorded analysis runs",
		Long: `List analysis runs recorded in the state database.

With a run id, shows the operations recovered during that run.`,
		Example: `  # List all recorded runs
  unitscan runs

  # Show the operations of one run
  unitscan runs 4f1c9a2e-...

  # Output as JSON
  unitscan runs --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			store, err := openStore(cmdCtx.Cfg.StatePath)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) > 0 {
				return showRunOperations(cmd, store, args[0], format)
			}
			return listRuns(cmd, store, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json")

	return cmd
}

func listRuns(cmd *cobra.Command, store *state.SQLiteStore, format string) error {
	w := cmd.OutOrStdout()

	runs, err := store.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		_, _ = fmt.Fprintln(w, "(no recorded runs)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Root", "Units", "Operations", "Started", "Status"})

	for _, run := range runs {
		t.AppendRow(table.Row{
			run.ID,
			run.Root,
			run.Units,
			run.Operations,
			run.StartedAt.Format(time.RFC3339),
			run.Status,
		})
	}

	t.Render()
	return nil
}

func showRunOperations(cmd *cobra.Command, store *state.SQLiteStore, runID, format string) error {
	w := cmd.OutOrStdout()

	ops, err := store.OperationsByRun(runID)
	if err != nil {
		return fmt.Errorf("failed to load operations: %w", err)
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ops)
	}

	if len(ops) == 0 {
		_, _ = fmt.Fprintln(w, "(no operations recorded for this run)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Unit", "Method", "Type", "Table", "Line", "Txn", "SQL"})

	for _, op := range ops {
		method := op.MethodName
		if op.ClassName != "" {
			method = op.ClassName + "." + op.MethodName
		}
		txn := ""
		if op.InTransaction {
			txn = shortID(op.TransactionID)
		}
		t.AppendRow(table.Row{
			op.UnitName,
			method,
			op.OperationType,
			op.TableName,
			op.SourceLine,
			txn,
			truncateSQL(op.SQLStatement),
		})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d operations)\n", len(ops))
	return nil
}
