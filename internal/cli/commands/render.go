package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/unitscan/pkg/core"
	"github.com/leapstack-labs/unitscan/pkg/extract"
)

// maxSQLColumnWidth caps the SQL column so wide statements do not wreck the
// table layout.
const maxSQLColumnWidth = 60

func renderReports(w io.Writer, reports []*extract.UnitReport, format string) error {
	switch format {
	case "json":
		return renderJSON(w, reports)
	case "csv":
		return renderCSV(w, reports)
	default:
		return renderTable(w, reports)
	}
}

func renderTable(w io.Writer, reports []*extract.UnitReport) error {
	ops := collectOperations(reports)
	if len(ops) == 0 {
		_, _ = fmt.Fprintln(w, "(no database operations found)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Unit", "Method", "Type", "Table", "Line", "Txn", "SQL"})

	for _, op := range ops {
		method := op.MethodName
		if op.ContainingClass != "" {
			method = op.ContainingClass + "." + op.MethodName
		}
		txn := ""
		if op.InTransaction {
			txn = shortID(op.TransactionID)
		}
		t.AppendRow(table.Row{
			op.UnitName,
			method,
			op.Type.String(),
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

func renderJSON(w io.Writer, reports []*extract.UnitReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func renderCSV(w io.Writer, reports []*extract.UnitReport) error {
	cols := []string{"unit", "class", "method", "type", "table", "line", "dynamic", "transaction_id", "sql"}
	_, _ = fmt.Fprintln(w, strings.Join(cols, ","))

	for _, op := range collectOperations(reports) {
		values := []string{
			escapeCSV(op.UnitName),
			escapeCSV(op.ContainingClass),
			escapeCSV(op.MethodName),
			op.Type.String(),
			escapeCSV(op.TableName),
			fmt.Sprintf("%d", op.SourceLine),
			fmt.Sprintf("%t", op.Dynamic),
			escapeCSV(op.TransactionID),
			escapeCSV(op.SQLStatement),
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func collectOperations(reports []*extract.UnitReport) []core.DatabaseOperation {
	var ops []core.DatabaseOperation
	for _, r := range reports {
		ops = append(ops, r.Operations...)
	}
	return ops
}

func truncateSQL(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxSQLColumnWidth {
		return s
	}
	return s[:maxSQLColumnWidth-3] + "..."
}

// shortID abbreviates a UUID to its first segment for table display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func escapeCSV(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
