package extract_test

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/unitscan/pkg/core"
	"github.com/leapstack-labs/unitscan/pkg/extract"
	_ "github.com/leapstack-labs/unitscan/pkg/extract/shapes" // register shape extractors
)

const patientUnit = `unit PatientData;

implementation

{ Loads one patient row. }
procedure TPatientDAO.LoadPatient(ID: Integer);
begin
  Query.SQL.Text := 'SELECT * FROM PATIENT WHERE ID = :PATIENT_ID';
  Query.ParamByName('PATIENT_ID').AsInteger := ID;
  Query.Open;
end;

procedure TPatientDAO.ArchiveAndPurge;
begin
  Database.StartTransaction;
  try
    Conn.ExecuteDirect('INSERT INTO PATIENT_ARCHIVE SELECT * FROM PATIENT WHERE ACTIVE = 0');
    Conn.ExecuteDirect('DELETE FROM PATIENT WHERE ACTIVE = 0');
    Database.Commit;
  except
    Database.Rollback;
  end;
end;

procedure TPatientDAO.NoDatabaseWork;
begin
  ShowMessage('hello');
end;
`

func TestAnalyzeUnit_StaticOperation(t *testing.T) {
	report := extract.New().AnalyzeUnit("PatientData", patientUnit)

	var op *core.DatabaseOperation
	for i := range report.Operations {
		if report.Operations[i].MethodName == "LoadPatient" {
			op = &report.Operations[i]
		}
	}
	if op == nil {
		t.Fatal("LoadPatient operation not found")
	}

	if op.Type != core.OpSelect {
		t.Errorf("type: got %v", op.Type)
	}
	if op.TableName != "PATIENT" {
		t.Errorf("table: got %q", op.TableName)
	}
	if op.SQLStatement != "SELECT * FROM PATIENT WHERE ID = :PatientId" {
		t.Errorf("sql: got %q", op.SQLStatement)
	}
	if op.ContainingClass != "TPatientDAO" || op.UnitName != "PatientData" {
		t.Errorf("provenance: %s / %s", op.ContainingClass, op.UnitName)
	}
	if len(op.Parameters) != 1 || op.Parameters[0].Type != core.ParamInteger {
		t.Errorf("parameters: %+v", op.Parameters)
	}
	if op.InTransaction || op.TransactionID != "" {
		t.Error("non-transactional method tagged with a transaction")
	}
	if op.SourceLine != 8 {
		t.Errorf("source line: got %d, want 8", op.SourceLine)
	}
	if !strings.Contains(op.OriginalSource, "Query.Open") {
		t.Errorf("original source missing body text: %q", op.OriginalSource)
	}
}

func TestAnalyzeUnit_TransactionGrouping(t *testing.T) {
	report := extract.New().AnalyzeUnit("PatientData", patientUnit)

	var txOps []core.DatabaseOperation
	for _, op := range report.Operations {
		if op.MethodName == "ArchiveAndPurge" {
			txOps = append(txOps, op)
		}
	}
	if len(txOps) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(txOps))
	}
	if !txOps[0].InTransaction || !txOps[1].InTransaction {
		t.Error("operations not marked transactional")
	}
	if txOps[0].TransactionID == "" || txOps[0].TransactionID != txOps[1].TransactionID {
		t.Errorf("transaction ids differ: %q vs %q", txOps[0].TransactionID, txOps[1].TransactionID)
	}

	if len(report.Groups) != 1 {
		t.Fatalf("expected 1 transaction group, got %d", len(report.Groups))
	}
	g := report.Groups[0]
	if g.ID != txOps[0].TransactionID || g.MethodName != "ArchiveAndPurge" {
		t.Errorf("group metadata: %+v", g)
	}
	if len(g.Operations) != 2 {
		t.Errorf("group size: got %d", len(g.Operations))
	}
}

func TestAnalyzeUnit_DeterministicTransactionIDs(t *testing.T) {
	a := extract.New()
	first := a.AnalyzeUnit("PatientData", patientUnit)
	second := a.AnalyzeUnit("PatientData", patientUnit)

	if len(first.Groups) != 1 || len(second.Groups) != 1 {
		t.Fatal("expected exactly one group per run")
	}
	if first.Groups[0].ID != second.Groups[0].ID {
		t.Error("transaction id not deterministic across runs")
	}

	other := a.AnalyzeUnit("OtherUnit", patientUnit)
	if other.Groups[0].ID == first.Groups[0].ID {
		t.Error("transaction id does not vary with unit name")
	}
}

func TestAnalyzeUnit_DeclaredKindGatesReceiver(t *testing.T) {
	src := `unit TxData;

implementation

procedure TDM.Refresh;
var
  Tx: TFDTransaction;
begin
  Tx.SQL.Text := 'SELECT 1 FROM A';
end;
`
	report := extract.New().AnalyzeUnit("TxData", src)
	if len(report.Operations) != 0 {
		t.Fatalf("transaction-declared receiver produced %d operations", len(report.Operations))
	}

	// With the declaration gone the receiver is unknown and extraction
	// stays over-inclusive.
	undeclared := strings.Replace(src, "var\n  Tx: TFDTransaction;\n", "", 1)
	report = extract.New().AnalyzeUnit("TxData", undeclared)
	if len(report.Operations) != 1 {
		t.Fatalf("undeclared receiver produced %d operations, want 1", len(report.Operations))
	}
}

func TestAnalyzeUnit_CrossShapeDeduplication(t *testing.T) {
	src := `
procedure TDAO.Dup;
begin
  Query.SQL.Text := 'DELETE FROM T';
  Conn.ExecuteDirect('DELETE FROM T');
end;
`
	report := extract.New().AnalyzeUnit("U", src)
	if len(report.Operations) != 1 {
		t.Fatalf("expected 1 deduplicated operation, got %d", len(report.Operations))
	}
}

func TestAnalyzeUnit_DynamicModes(t *testing.T) {
	src := `
procedure TDAO.Find(ID: Integer);
begin
  Query.SQL.Text := 'SELECT * FROM T WHERE ID = ' + IntToStr(ID);
  Query.Open;
end;
`
	rec := extract.New().AnalyzeUnit("U", src)
	if len(rec.Operations) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(rec.Operations))
	}
	op := rec.Operations[0]
	if !op.Dynamic {
		t.Error("operation not marked dynamic")
	}
	if op.SQLStatement != "SELECT * FROM T WHERE ID = :Id" {
		t.Errorf("reconstruction: got %q", op.SQLStatement)
	}
	if op.TableName != "" {
		t.Errorf("dynamic operation must not carry a table name, got %q", op.TableName)
	}

	sent := extract.New(extract.WithDynamicSentinel(true)).AnalyzeUnit("U", src)
	sop := sent.Operations[0]
	if sop.SQLStatement != extract.DynamicSQLSentinel {
		t.Errorf("sentinel mode: got %q", sop.SQLStatement)
	}
	if len(sop.Parameters) != 1 || sop.Parameters[0].Name != "Id" {
		t.Errorf("sentinel mode dropped parameters: %+v", sop.Parameters)
	}
}

func TestAnalyzeUnit_MalformedInputNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"procedure broken",
		"procedure T.X; begin",
		"begin end;",
		strings.Repeat("'", 101),
	}
	for _, in := range inputs {
		report := extract.New().AnalyzeUnit("U", in)
		if report == nil {
			t.Fatalf("nil report for %q", in)
		}
		if len(report.Operations) != 0 {
			t.Errorf("unexpected findings for %q", in)
		}
	}
}

func TestAnalyzeUnit_OperationOrdering(t *testing.T) {
	src := `
procedure TDAO.Second;
begin
  Q.SQL.Text := 'SELECT 1 FROM B';
  Q.Open;
end;

procedure TDAO.First;
begin
  Q.SQL.Text := 'SELECT 1 FROM A';
  Q.Open;
end;
`
	report := extract.New().AnalyzeUnit("U", src)
	if len(report.Operations) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(report.Operations))
	}
	// Order follows method-header appearance in the unit.
	if report.Operations[0].MethodName != "Second" || report.Operations[1].MethodName != "First" {
		t.Errorf("order: %s, %s", report.Operations[0].MethodName, report.Operations[1].MethodName)
	}
}
