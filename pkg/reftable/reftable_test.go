package reftable

import (
	"strings"
	"testing"

	"github.com/greenlens/sdk/pkg/errors"
)

const sbtiCSV = `Company Name,Status,Target Year
Acme Corporation,targets_set,2035
Global Energy Co,committed,2040
Zenith Ltd,removed,
`

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(sbtiCSV))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}

	want := []string{"company_name", "status", "target_year"}
	got := table.Columns()
	for i, col := range want {
		if got[i] != col {
			t.Errorf("column %d = %q, want %q", i, got[i], col)
		}
	}
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	if err == nil {
		t.Fatal("expected error for empty input")
	}
	if !errors.IsMalformed(err) {
		t.Errorf("kind = %v, want malformed", errors.GetKind(err))
	}
}

func TestResolveColumn(t *testing.T) {
	table := New([]string{"Organization", "CDP Score", "Reporting Year"}, nil)

	if col := table.CompanyColumn(); col != "organization" {
		t.Errorf("CompanyColumn() = %q, want organization", col)
	}
	if col := table.ResolveColumn("score", "grade"); col != "cdp_score" {
		t.Errorf("ResolveColumn(score) = %q, want cdp_score", col)
	}
	if col := table.ResolveColumn("sector"); col != "" {
		t.Errorf("ResolveColumn(sector) = %q, want empty", col)
	}
}

func TestResolveColumn_FragmentPriority(t *testing.T) {
	// "company" outranks "name" even when a name column comes first.
	table := New([]string{"Contact Name", "Company"}, nil)
	if col := table.CompanyColumn(); col != "company" {
		t.Errorf("CompanyColumn() = %q, want company", col)
	}
}

func TestValuesAndLookup(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(sbtiCSV))
	if err != nil {
		t.Fatal(err)
	}

	values := table.Values("company_name")
	if len(values) != 3 {
		t.Fatalf("Values() = %v", values)
	}

	rows := table.Lookup("company_name", "acme corporation")
	if len(rows) != 1 {
		t.Fatalf("Lookup() = %d rows, want 1", len(rows))
	}
	if rows[0]["status"] != "targets_set" {
		t.Errorf("status = %q, want targets_set", rows[0]["status"])
	}
	if rows[0]["target_year"] != "2035" {
		t.Errorf("target_year = %q", rows[0]["target_year"])
	}
}
