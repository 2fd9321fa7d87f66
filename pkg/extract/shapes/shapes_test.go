package shapes

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/unitscan/pkg/core"
	"github.com/leapstack-labs/unitscan/pkg/extract"
)

func texts(cands []extract.Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Text
	}
	return out
}

func TestSQLTextAssign_Literal(t *testing.T) {
	body := `
  Query.SQL.Text := 'SELECT * FROM PATIENT WHERE ID = :ID';
  Query.Open;
`
	cands := SQLTextAssign.Extract(extract.Context{Body: body})
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if cands[0].Dynamic {
		t.Error("literal assignment marked dynamic")
	}
	if cands[0].Text != "SELECT * FROM PATIENT WHERE ID = :ID" {
		t.Errorf("got %q", cands[0].Text)
	}
}

func TestSQLTextAssign_Concatenated(t *testing.T) {
	body := `Q.SQL.Text := 'SELECT * FROM T WHERE ID = ' + IntToStr(ID);`
	cands := SQLTextAssign.Extract(extract.Context{Body: body})
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if !cands[0].Dynamic {
		t.Error("concatenated assignment not marked dynamic")
	}
	if cands[0].Text != "SELECT * FROM T WHERE ID = :ID" {
		t.Errorf("got %q", cands[0].Text)
	}
}

func TestSQLTextAssign_VariableRHSIgnored(t *testing.T) {
	body := `Q.SQL.Text := SomeVariable;`
	if cands := SQLTextAssign.Extract(extract.Context{Body: body}); len(cands) != 0 {
		t.Errorf("expected no candidates, got %v", texts(cands))
	}
}

func TestSQLTextAssign_ReceiverKindDisambiguation(t *testing.T) {
	body := `Tx.SQL.Text := 'SELECT 1 FROM A';`

	vars := map[string]core.ComponentKind{"tx": core.ComponentTransaction}
	if cands := SQLTextAssign.Extract(extract.Context{Body: body, Vars: vars}); len(cands) != 0 {
		t.Errorf("transaction receiver should yield nothing, got %v", texts(cands))
	}

	// Undeclared and query-declared receivers both extract.
	if cands := SQLTextAssign.Extract(extract.Context{Body: body}); len(cands) != 1 {
		t.Errorf("undeclared receiver should extract, got %v", texts(cands))
	}
	vars = map[string]core.ComponentKind{"tx": core.ComponentQuery}
	if cands := SQLTextAssign.Extract(extract.Context{Body: body, Vars: vars}); len(cands) != 1 {
		t.Errorf("query receiver should extract, got %v", texts(cands))
	}
}

func TestSQLTextAssign_DottedReceiverKind(t *testing.T) {
	body := `DM.MainTx.SQL.Text := 'SELECT 1 FROM A';`
	vars := map[string]core.ComponentKind{"maintx": core.ComponentTransaction}
	if cands := SQLTextAssign.Extract(extract.Context{Body: body, Vars: vars}); len(cands) != 0 {
		t.Errorf("dotted transaction receiver should yield nothing, got %v", texts(cands))
	}
}

func TestSQLAdd_ReceiverKindDisambiguation(t *testing.T) {
	body := `
  Conn.SQL.Add('SELECT 1 FROM A');
  Q.SQL.Add('SELECT 2 FROM B');
`
	vars := map[string]core.ComponentKind{
		"conn": core.ComponentConnection,
		"q":    core.ComponentQuery,
	}
	cands := SQLAddSequence.Extract(extract.Context{Body: body, Vars: vars})
	if len(cands) != 1 || cands[0].Text != "SELECT 2 FROM B" {
		t.Errorf("expected only the query receiver's statement, got %v", texts(cands))
	}
}

func TestSQLAdd_SingleWindow(t *testing.T) {
	body := `
  Q.SQL.Add('SELECT ID, NAME');
  Q.SQL.Add('FROM PATIENT');
  Q.SQL.Add('WHERE ACTIVE = 1');
  Q.Open;
`
	cands := SQLAddSequence.Extract(extract.Context{Body: body})
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d: %v", len(cands), texts(cands))
	}
	want := "SELECT ID, NAME\nFROM PATIENT\nWHERE ACTIVE = 1"
	if cands[0].Text != want {
		t.Errorf("got %q, want %q", cands[0].Text, want)
	}
}

func TestSQLAdd_ClearPartitions(t *testing.T) {
	body := `
  Q.SQL.Clear;
  Q.SQL.Add('SELECT ID');
  Q.SQL.Add('FROM PATIENT');
  Q.Open;
  Q.SQL.Clear;
  Q.SQL.Add('SELECT ID');
  Q.SQL.Add('FROM VISIT');
  Q.Open;
`
	cands := SQLAddSequence.Extract(extract.Context{Body: body})
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %v", len(cands), texts(cands))
	}
	if cands[0].Text != "SELECT ID\nFROM PATIENT" {
		t.Errorf("first window: got %q", cands[0].Text)
	}
	if cands[1].Text != "SELECT ID\nFROM VISIT" {
		t.Errorf("second window: got %q", cands[1].Text)
	}
	if cands[0].Offset >= cands[1].Offset {
		t.Error("windows out of source order")
	}
}

func TestSQLAdd_SeparateReceivers(t *testing.T) {
	body := `
  QA.SQL.Add('SELECT 1 FROM A');
  QB.SQL.Add('SELECT 2 FROM B');
`
	cands := SQLAddSequence.Extract(extract.Context{Body: body})
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %v", len(cands), texts(cands))
	}
}

func TestSQLAdd_ConcatArgument(t *testing.T) {
	body := `
  Q.SQL.Add('SELECT * FROM T');
  Q.SQL.Add('WHERE ID = ' + IntToStr(ID));
`
	cands := SQLAddSequence.Extract(extract.Context{Body: body})
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %v", len(cands), texts(cands))
	}
	var sawDynamic bool
	for _, c := range cands {
		if c.Dynamic {
			sawDynamic = true
			if c.Text != "WHERE ID = :ID" {
				t.Errorf("dynamic candidate: got %q", c.Text)
			}
		}
	}
	if !sawDynamic {
		t.Error("concatenated Add argument was not routed to the concat parser")
	}
}

func TestVarAssign(t *testing.T) {
	body := `
  SQLText := 'DELETE FROM AUDIT_LOG WHERE TS < :Cutoff';
  OtherVar := 'not sql at all';
`
	cands := VarAssign.Extract(extract.Context{Body: body})
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d: %v", len(cands), texts(cands))
	}
	if !strings.HasPrefix(cands[0].Text, "DELETE FROM AUDIT_LOG") {
		t.Errorf("got %q", cands[0].Text)
	}
}

func TestVarAssign_Concatenated(t *testing.T) {
	body := `S := 'SELECT * FROM T WHERE ID = ' + IntToStr(ID);`
	cands := VarAssign.Extract(extract.Context{Body: body})
	if len(cands) != 1 || !cands[0].Dynamic {
		t.Fatalf("expected 1 dynamic candidate, got %v", cands)
	}
}

func TestExecInline(t *testing.T) {
	body := `
  Conn.ExecuteDirect('DELETE FROM SESSION_LOG');
  ExecuteSQL(Database, 'UPDATE CONFIG SET ACTIVE = 0');
  Query.ExecSQL;
`
	cands := ExecInline.Extract(extract.Context{Body: body})
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %v", len(cands), texts(cands))
	}
	if cands[0].Text != "DELETE FROM SESSION_LOG" {
		t.Errorf("got %q", cands[0].Text)
	}
	if cands[1].Text != "UPDATE CONFIG SET ACTIVE = 0" {
		t.Errorf("got %q", cands[1].Text)
	}
}

func TestQueryValueHelper(t *testing.T) {
	body := `
  N := QueryValueAsInteger('SELECT COUNT(*) FROM PATIENT');
  S := GetQueryValue(Conn, 'SELECT NAME FROM PATIENT WHERE ID = ' + IntToStr(ID));
`
	cands := QueryValueHelper.Extract(extract.Context{Body: body})
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %v", len(cands), texts(cands))
	}
	if cands[0].Dynamic || cands[0].Text != "SELECT COUNT(*) FROM PATIENT" {
		t.Errorf("first: %+v", cands[0])
	}
	if !cands[1].Dynamic || cands[1].Text != "SELECT NAME FROM PATIENT WHERE ID = :ID" {
		t.Errorf("second: %+v", cands[1])
	}
}
