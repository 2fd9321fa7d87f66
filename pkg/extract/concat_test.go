package extract

import "testing"

func TestParseConcat_RoundTrip(t *testing.T) {
	template, params := ParseConcat(`'SELECT * FROM T WHERE ID = ' + IntToStr(ID)`)
	if template != "SELECT * FROM T WHERE ID = :ID" {
		t.Errorf("template: got %q", template)
	}
	if len(params) != 1 || params[0] != "ID" {
		t.Errorf("params: got %v", params)
	}
}

func TestParseConcat_MiddleExpression(t *testing.T) {
	template, params := ParseConcat(
		`'SELECT * FROM VISIT WHERE PATIENT_ID = ' + IntToStr(PatientID) + ' AND ACTIVE = 1'`)
	if template != "SELECT * FROM VISIT WHERE PATIENT_ID = :PatientID AND ACTIVE = 1" {
		t.Errorf("template: got %q", template)
	}
	if len(params) != 1 || params[0] != "PatientID" {
		t.Errorf("params: got %v", params)
	}
}

func TestParseConcat_DottedMember(t *testing.T) {
	template, params := ParseConcat(`'WHERE ID = ' + Edit1.Text`)
	if template != "WHERE ID = :Text" {
		t.Errorf("template: got %q", template)
	}
	if len(params) != 1 || params[0] != "Text" {
		t.Errorf("params: got %v", params)
	}
}

func TestParseConcat_CallThenMember(t *testing.T) {
	// The call wrapper is peeled first, then the member access.
	_, params := ParseConcat(`'WHERE ID = ' + IntToStr(Patient.ID)`)
	if len(params) != 1 || params[0] != "ID" {
		t.Errorf("params: got %v", params)
	}
}

func TestParseConcat_EscapedQuotes(t *testing.T) {
	template, _ := ParseConcat(`'SELECT * FROM T WHERE NAME = ''x''' + ''`)
	if template != "SELECT * FROM T WHERE NAME = 'x'" {
		t.Errorf("template: got %q", template)
	}
}

func TestReduceExpr(t *testing.T) {
	tests := map[string]string{
		"IntToStr(ID)":         "ID",
		"QuotedStr(Name)":      "Name",
		"Edit1.Text":           "Text",
		"IntToStr(Patient.ID)": "ID",
		"SomeVar":              "SomeVar",
		"Format('%d', [x])":    "Format('%d', [x])",
	}
	for in, want := range tests {
		if got := ReduceExpr(in); got != want {
			t.Errorf("ReduceExpr(%q) = %q, want %q", in, got, want)
		}
	}
}
