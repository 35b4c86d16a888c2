// Package adapters provides external registry adapters that cross-validate
// disclosed claims against reference data such as SBTi target dashboards
// and CDP score exports.
//
// Adapters degrade gracefully: when no reference table has been loaded,
// CrossValidate reports no-data instead of failing, and the pipeline records
// the adapter as skipped.
package adapters

import (
	"strings"

	"github.com/greenlens/sdk/pkg/errors"
	"github.com/greenlens/sdk/pkg/match"
	"github.com/greenlens/sdk/pkg/reftable"
)

// DefaultMatchCutoff is the minimum similarity for a company name to count
// as a registry hit.
const DefaultMatchCutoff = 0.7

// Status describes an adapter's data readiness.
type Status struct {
	Name       string `json:"name"`
	DataLoaded bool   `json:"data_loaded"`
	SourceURL  string `json:"source_url"`
}

// Base carries the reference table and fuzzy matching settings shared by
// all registry adapters.
type Base struct {
	table         *reftable.Table
	sourceURL     string
	matchCutoff   float64
	maxCandidates int
}

// Option configures a registry adapter.
type Option func(*Base)

// WithTable sets the reference table.
func WithTable(t *reftable.Table) Option {
	return func(b *Base) { b.table = t }
}

// WithMatchCutoff overrides the fuzzy match cutoff.
func WithMatchCutoff(cutoff float64) Option {
	return func(b *Base) { b.matchCutoff = cutoff }
}

// WithMaxCandidates overrides how many registry rows a lookup may return.
func WithMaxCandidates(n int) Option {
	return func(b *Base) { b.maxCandidates = n }
}

func newBase(sourceURL string, maxCandidates int, opts ...Option) Base {
	b := Base{
		sourceURL:     sourceURL,
		matchCutoff:   DefaultMatchCutoff,
		maxCandidates: maxCandidates,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// HasData reports whether a reference table is loaded.
func (b *Base) HasData() bool {
	return b.table != nil && b.table.Len() > 0
}

// LoadCSV loads the reference table from a CSV file.
func (b *Base) LoadCSV(path string) error {
	t, err := reftable.LoadCSV(path)
	if err != nil {
		return err
	}
	b.table = t
	return nil
}

// requireData returns a no-data error pointing at the download source when
// no table is loaded.
func (b *Base) requireData(op string) error {
	if b.HasData() {
		return nil
	}
	return errors.NoData(op, "reference data not provided, download from: "+b.sourceURL)
}

// resolve fuzzy-matches the company name against the table's company column
// and returns the matching rows, best match first.
func (b *Base) resolve(company string) []reftable.Row {
	if !b.HasData() {
		return nil
	}
	col := b.table.CompanyColumn()
	if col == "" {
		return nil
	}

	names := b.table.Values(col)
	matches := match.CloseMatches(company, names, b.maxCandidates, b.matchCutoff)

	var rows []reftable.Row
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m.Value] {
			continue
		}
		seen[m.Value] = true
		rows = append(rows, b.table.Lookup(col, m.Value)...)
	}
	return rows
}

// sectorRows returns rows whose sector column contains the given sector,
// case-insensitively.
func (b *Base) sectorRows(sector string) []reftable.Row {
	if !b.HasData() || sector == "" {
		return nil
	}
	col := b.table.ResolveColumn("sector", "industry")
	if col == "" {
		return nil
	}

	want := strings.ToLower(sector)
	var rows []reftable.Row
	for _, row := range b.table.Rows() {
		if strings.Contains(strings.ToLower(row[col]), want) {
			rows = append(rows, row)
		}
	}
	return rows
}

// adapterScore derives the adapter score from the critical finding count.
func adapterScore(criticals int) float64 {
	return max(1.0-float64(criticals)*0.3, 0.0)
}
