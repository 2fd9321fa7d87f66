package sqlnorm

import "testing"

func TestNormalize_KeywordCasing(t *testing.T) {
	got := Normalize("select ID, NAME from Patient where ID = :id order by NAME")
	want := "SELECT ID, NAME FROM Patient WHERE ID = :Id ORDER BY NAME"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"select * from T where A = :patient_id",
		`SELECT "USER", "Name" FROM ACCOUNT`,
		"update PATIENT set NAME = :NAME where ID = :PATIENT_ID",
		"insert into VISIT (ID) values (:Id)",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestNormalize_StringLiteralsUntouched(t *testing.T) {
	got := Normalize("select * from T where KIND = 'user' and NOTE = 'from home'")
	want := "SELECT * FROM T WHERE KIND = 'user' AND NOTE = 'from home'"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_EscapedQuoteInLiteral(t *testing.T) {
	got := Normalize("select * from T where NOTE = 'it''s from home' and ID = :id")
	want := "SELECT * FROM T WHERE NOTE = 'it''s from home' AND ID = :Id"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRequoteReserved_StringLiteralsUntouched(t *testing.T) {
	got := RequoteReserved(Normalize("SELECT * FROM T WHERE KIND = 'user' AND NOTE = 'from home'"))
	want := `SELECT * FROM T WHERE KIND = 'user' AND NOTE = 'from home'`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = RequoteReserved("SELECT USER, NAME FROM T WHERE KIND = 'user'")
	want = `SELECT "USER", NAME FROM T WHERE KIND = 'user'`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_UnquotesNonReserved(t *testing.T) {
	got := Normalize(`SELECT "NAME", "USER" FROM "ACCOUNT"`)
	want := `SELECT NAME, "USER" FROM ACCOUNT`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPascalCase_ParameterVariants(t *testing.T) {
	for _, in := range []string{"PATIENT_ID", "patient_id", "PatientID"} {
		if got := PascalCase(in); got != "PatientId" {
			t.Errorf("PascalCase(%q) = %q, want PatientId", in, got)
		}
	}
}

func TestPascalCase_More(t *testing.T) {
	tests := map[string]string{
		"id":              "Id",
		"ID":              "Id",
		"VisitDate":       "VisitDate",
		"visit_date_from": "VisitDateFrom",
		"A":               "A",
	}
	for in, want := range tests {
		if got := PascalCase(in); got != want {
			t.Errorf("PascalCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRequoteReserved(t *testing.T) {
	got := RequoteReserved("SELECT USER, NAME FROM ACCOUNT")
	want := `SELECT "USER", NAME FROM ACCOUNT`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// Already-quoted identifiers are left alone.
	if again := RequoteReserved(got); again != got {
		t.Errorf("not idempotent: %q -> %q", got, again)
	}
}
