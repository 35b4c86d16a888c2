// Package reftable loads registry reference data (SBTi target dashboards,
// CDP score exports) from CSV into an in-memory table keyed by company name.
package reftable

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/greenlens/sdk/pkg/errors"
)

// Row is one registry record, keyed by normalized column name.
type Row map[string]string

// Table holds registry rows with header-order preserved.
type Table struct {
	columns []string
	rows    []Row
}

// New builds a table from explicit columns and rows. Column names are
// normalized to lowercase snake_case.
func New(columns []string, records [][]string) *Table {
	t := &Table{columns: make([]string, len(columns))}
	for i, c := range columns {
		t.columns[i] = normalizeColumn(c)
	}
	for _, rec := range records {
		row := make(Row, len(t.columns))
		for i, col := range t.columns {
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			}
		}
		t.rows = append(t.rows, row)
	}
	return t
}

// LoadCSV reads a table from a CSV file. The first line is the header.
func LoadCSV(path string) (*Table, error) {
	const op = "reftable.LoadCSV"

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.E(op, errors.KindInvalidInput, "open reference table", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV reads a table from CSV data. The first record is the header.
func ReadCSV(r io.Reader) (*Table, error) {
	const op = "reftable.ReadCSV"

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.E(op, errors.KindMalformed, "reference table is empty")
	}
	if err != nil {
		return nil, errors.E(op, errors.KindMalformed, "read header", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.E(op, errors.KindMalformed, "read rows", err)
	}

	return New(header, records), nil
}

// Columns returns the normalized column names in header order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns all rows.
func (t *Table) Rows() []Row { return t.rows }

// ResolveColumn finds the first column whose name contains any of the given
// fragments, in fragment priority order. Returns "" when nothing matches.
func (t *Table) ResolveColumn(fragments ...string) string {
	for _, frag := range fragments {
		frag = normalizeColumn(frag)
		for _, col := range t.columns {
			if strings.Contains(col, frag) {
				return col
			}
		}
	}
	return ""
}

// CompanyColumn resolves the column holding the company name.
func (t *Table) CompanyColumn() string {
	return t.ResolveColumn("company", "organization", "organisation", "name")
}

// Values returns the non-empty values of one column across all rows.
func (t *Table) Values(column string) []string {
	out := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		if v := row[column]; v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Lookup returns the rows whose value in column equals value, compared
// case-insensitively.
func (t *Table) Lookup(column, value string) []Row {
	var out []Row
	want := strings.ToLower(strings.TrimSpace(value))
	for _, row := range t.rows {
		if strings.ToLower(strings.TrimSpace(row[column])) == want {
			out = append(out, row)
		}
	}
	return out
}

func normalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}
