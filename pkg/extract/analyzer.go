package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/leapstack-labs/unitscan/pkg/core"
	"github.com/leapstack-labs/unitscan/pkg/pascal"
	"github.com/leapstack-labs/unitscan/pkg/sqlnorm"
)

// DynamicSQLSentinel replaces the statement text of dynamic operations when
// the analyzer runs in sentinel mode.
const DynamicSQLSentinel = "/* DYNAMIC SQL */"

// Analyzer runs the full extraction pipeline over one unit at a time. An
// Analyzer is stateless between calls; concurrent AnalyzeUnit calls on
// independent units are safe.
type Analyzer struct {
	sentinel bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDynamicSentinel selects how dynamic SQL is reported: when on, the
// statement text of dynamic operations is the explicit sentinel; when off
// (the default), it is the best-effort reconstructed template.
func WithDynamicSentinel(on bool) Option {
	return func(a *Analyzer) { a.sentinel = on }
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// UnitReport is the result of analyzing one unit: the flat operation list in
// discovery order and the transaction groups derived from it.
type UnitReport struct {
	UnitName   string                   `json:"unit_name"`
	Operations []core.DatabaseOperation `json:"operations"`
	Groups     []core.TransactionGroup  `json:"transaction_groups,omitempty"`
}

// AnalyzeUnit extracts every database operation from one unit's source
// text. It never fails: malformed or unrecognized input degrades to fewer
// findings, not an error. Operations are ordered by method-header
// appearance, then by extractor-discovery position within a method.
func (a *Analyzer) AnalyzeUnit(unitName, src string) *UnitReport {
	report := &UnitReport{UnitName: unitName}

	scanned := pascal.StripComments(src)
	vars := pascal.ScanQueryVariables(scanned)
	shapes := Shapes()

	txnSeq := 0
	for _, method := range pascal.FindMethods(scanned) {
		if !pascal.HasDatabaseActivity(method.Body) {
			continue
		}

		ctx := Context{Body: method.Body, Vars: vars}
		var candidates []Candidate
		for _, shape := range shapes {
			for _, c := range shape.Extract(ctx) {
				if c.Shape == "" {
					c.Shape = shape.ID
				}
				candidates = append(candidates, c)
			}
		}
		candidates = dedupe(candidates)
		if len(candidates) == 0 {
			continue
		}

		transactional := pascal.HasTransactionControl(method.Body)
		txnID := ""
		if transactional {
			txnSeq++
			txnID = transactionID(unitName, method.ClassName, method.Name, txnSeq)
		}

		original := pascal.Lines(src, method.BodyLine, method.EndLine)

		for _, c := range candidates {
			op := a.buildOperation(unitName, method, c, txnID)
			op.OriginalSource = original
			report.Operations = append(report.Operations, op)
		}
	}

	report.Groups = GroupTransactions(report.Operations)
	return report
}

func (a *Analyzer) buildOperation(unitName string, method pascal.Method, c Candidate, txnID string) core.DatabaseOperation {
	normalized := sqlnorm.RequoteReserved(sqlnorm.Normalize(c.Text))

	op := core.DatabaseOperation{
		UnitName:        unitName,
		ContainingClass: method.ClassName,
		MethodName:      method.Name,
		SQLStatement:    normalized,
		Type:            sqlnorm.Classify(normalized),
		Dynamic:         c.Dynamic,
		Parameters:      BuildParameters(normalized, method.Body),
		InTransaction:   txnID != "",
		TransactionID:   txnID,
		SourceLine:      method.BodyLine + strings.Count(method.Body[:clamp(c.Offset, len(method.Body))], "\n"),
	}

	// Table classification is trusted only for statically known text.
	if !c.Dynamic {
		op.TableName = sqlnorm.TableName(normalized)
	} else if a.sentinel {
		op.SQLStatement = DynamicSQLSentinel
	}

	return op
}

// dedupe drops candidates whose exact statement text was already found for
// the same method, keeping the earliest by source position.
func dedupe(candidates []Candidate) []Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Offset < candidates[j].Offset
	})
	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if c.Text == "" {
			continue
		}
		if _, ok := seen[c.Text]; ok {
			continue
		}
		seen[c.Text] = struct{}{}
		out = append(out, c)
	}
	return out
}

// GroupTransactions clusters operations sharing a transaction id. A pure
// post-pass over the flat list: group order follows first appearance, and
// the first member supplies the group metadata.
func GroupTransactions(ops []core.DatabaseOperation) []core.TransactionGroup {
	byID := make(map[string]int)
	var groups []core.TransactionGroup
	for _, op := range ops {
		if op.TransactionID == "" {
			continue
		}
		idx, ok := byID[op.TransactionID]
		if !ok {
			idx = len(groups)
			byID[op.TransactionID] = idx
			groups = append(groups, core.TransactionGroup{
				ID:              op.TransactionID,
				MethodName:      op.MethodName,
				ContainingClass: op.ContainingClass,
				OriginalSource:  op.OriginalSource,
			})
		}
		groups[idx].Operations = append(groups[idx].Operations, op)
	}
	return groups
}

// transactionID derives a deterministic group id from unit, method and a
// per-unit sequence counter, unique per transactional method instance
// within a unit.
func transactionID(unitName, className, methodName string, seq int) string {
	key := fmt.Sprintf("%s.%s.%s#%d", unitName, className, methodName, seq)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

func clamp(n, max int) int {
	if n > max {
		return max
	}
	if n < 0 {
		return 0
	}
	return n
}
