package core

// validate.go checks a dataset before anything is written.
//
// Validation happens at two levels:
//  1. File level (Validate): aggregate findings per category for the report
//  2. Row level (CheckRow): pass/fail for a single row, used by the loader
//
// Both levels share CheckReferences so the foreign-key rule lives in one place.

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Violation is one foreign-key value that is not present in its referenced collection.
type Violation struct {
	Column     string
	Value      string
	Collection string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s %q not found in %s", v.Column, v.Value, v.Collection)
}

// CheckReferences returns the foreign keys of row that point at ids absent from refs.
// Missing values and columns the row does not carry are not violations.
func CheckReferences(d Descriptor, row Row, refs References) []Violation {
	var out []Violation
	for _, fk := range d.ForeignKeys {
		v, ok := row[fk.Column]
		if !ok || v.IsMissing() {
			continue
		}
		id := strings.TrimSpace(v.Str())
		if id == "" {
			continue
		}
		if !refs[fk.Collection].Has(id) {
			out = append(out, Violation{Column: fk.Column, Value: id, Collection: fk.Collection})
		}
	}
	return out
}

// CheckRow applies the row-level rules the loader enforces: foreign keys and email shape.
func CheckRow(d Descriptor, row Row, refs References) error {
	var problems []string
	for _, v := range CheckReferences(d, row, refs) {
		problems = append(problems, v.Error())
	}
	if email, ok := row["email"]; ok && !email.IsMissing() {
		if s := strings.TrimSpace(email.Str()); !ValidEmail(s) {
			problems = append(problems, fmt.Sprintf("invalid email %q", s))
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Validate checks ds against d and returns the findings. ds is not modified.
// When required columns are missing, the remaining checks are skipped.
func Validate(ds *Dataset, d Descriptor, refs References) *Report {
	report := NewReport()

	for _, col := range d.Required {
		if !ds.HasColumn(col) {
			report.Add(CategoryMissingColumns, fmt.Sprintf("Missing required column: %s", col))
		}
	}
	if len(report.Messages(CategoryMissingColumns)) > 0 {
		return report
	}

	for _, col := range d.Required {
		if n := countMissing(ds, col); n > 0 {
			report.Add(CategoryMissingValues, fmt.Sprintf("%s: %d missing", col, n))
		}
	}

	if ds.HasColumn("email") {
		invalid := 0
		for _, row := range ds.Rows {
			v := row.Get("email")
			if !v.IsMissing() && !ValidEmail(strings.TrimSpace(v.Str())) {
				invalid++
			}
		}
		if invalid > 0 {
			report.Add(CategoryInvalidEmails, fmt.Sprintf("Found %d invalid email(s)", invalid))
		}
	}

	for _, col := range ds.Columns {
		if !IsDateColumn(col) {
			continue
		}
		for _, row := range ds.Rows {
			v := row.Get(col)
			if v.IsMissing() || v.Kind() == KindDate {
				continue
			}
			if _, ok := ParseDate(v.Str()); !ok {
				report.Add(CategoryInvalidDates, fmt.Sprintf("invalid date format in field %s", col))
				break
			}
		}
	}

	for _, msg := range referenceFindings(ds, d, refs) {
		report.Add(CategoryForeignKeyErrors, msg)
	}

	if ds.HasColumn("id") {
		if n := countDuplicates(ds, "id"); n > 0 {
			report.Add(CategoryDuplicateIDs, fmt.Sprintf("Found %d duplicate id(s)", n))
		}
	}

	return report
}

// referenceFindings aggregates CheckReferences over every row into one message per column.
func referenceFindings(ds *Dataset, d Descriptor, refs References) []string {
	if len(d.ForeignKeys) == 0 {
		return nil
	}

	bad := make(map[string]map[string]bool)
	for _, row := range ds.Rows {
		for _, v := range CheckReferences(d, row, refs) {
			if bad[v.Column] == nil {
				bad[v.Column] = make(map[string]bool)
			}
			bad[v.Column][v.Value] = true
		}
	}

	var msgs []string
	for _, fk := range d.ForeignKeys {
		vals := bad[fk.Column]
		if len(vals) == 0 {
			continue
		}
		list := make([]string, 0, len(vals))
		for v := range vals {
			list = append(list, v)
		}
		sort.Strings(list)
		msgs = append(msgs, fmt.Sprintf("Nonexistent %s: [%s]", fk.Column, strings.Join(list, " ")))
	}
	return msgs
}

func countMissing(ds *Dataset, col string) int {
	n := 0
	for _, row := range ds.Rows {
		if row.Get(col).IsMissing() {
			n++
		}
	}
	return n
}

// countDuplicates counts occurrences beyond the first of each non-missing value.
func countDuplicates(ds *Dataset, col string) int {
	seen := make(map[string]bool, ds.Len())
	dups := 0
	for _, row := range ds.Rows {
		v := row.Get(col)
		if v.IsMissing() {
			continue
		}
		key := strings.TrimSpace(v.Str())
		if seen[key] {
			dups++
			continue
		}
		seen[key] = true
	}
	return dups
}
