package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category names one bucket of validation findings.
type Category string

const (
	CategoryMissingColumns   Category = "missing_columns"
	CategoryMissingValues    Category = "missing_values"
	CategoryInvalidEmails    Category = "invalid_emails"
	CategoryInvalidDates     Category = "invalid_dates"
	CategoryForeignKeyErrors Category = "foreign_key_errors"
	CategoryDuplicateIDs     Category = "duplicate_ids"
)

// Categories lists every category in check order.
var Categories = []Category{
	CategoryMissingColumns,
	CategoryMissingValues,
	CategoryInvalidEmails,
	CategoryInvalidDates,
	CategoryForeignKeyErrors,
	CategoryDuplicateIDs,
}

// Critical reports whether findings in c block transform and load.
func (c Category) Critical() bool {
	return c == CategoryMissingColumns || c == CategoryDuplicateIDs
}

// Report collects validation messages by category.
// It is built fresh for each run.
type Report struct {
	findings map[Category][]string
}

// NewReport returns a report with every category present and empty.
func NewReport() *Report {
	r := &Report{findings: make(map[Category][]string, len(Categories))}
	for _, c := range Categories {
		r.findings[c] = []string{}
	}
	return r
}

// Add appends a message under c.
func (r *Report) Add(c Category, msg string) {
	r.findings[c] = append(r.findings[c], msg)
}

// Messages returns the messages recorded under c.
func (r *Report) Messages(c Category) []string {
	return r.findings[c]
}

// Critical reports whether any blocking category has findings.
func (r *Report) Critical() bool {
	for c, msgs := range r.findings {
		if c.Critical() && len(msgs) > 0 {
			return true
		}
	}
	return false
}

// Err summarizes the blocking findings as an error, or returns nil when the
// report is not critical.
func (r *Report) Err() error {
	switch {
	case len(r.findings[CategoryMissingColumns]) > 0:
		return fmt.Errorf("critical validation: missing required column: %s",
			strings.Join(r.findings[CategoryMissingColumns], "; "))
	case len(r.findings[CategoryDuplicateIDs]) > 0:
		return fmt.Errorf("critical validation: duplicate id: %s",
			strings.Join(r.findings[CategoryDuplicateIDs], "; "))
	}
	return nil
}

// Count returns the total number of messages.
func (r *Report) Count() int {
	n := 0
	for _, msgs := range r.findings {
		n += len(msgs)
	}
	return n
}

// MarshalJSON encodes the report as an object keyed by category.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.findings)
}

// UnmarshalJSON decodes a report written by MarshalJSON.
func (r *Report) UnmarshalJSON(data []byte) error {
	findings := make(map[Category][]string)
	if err := json.Unmarshal(data, &findings); err != nil {
		return err
	}
	*r = *NewReport()
	for c, msgs := range findings {
		r.findings[c] = msgs
	}
	return nil
}
