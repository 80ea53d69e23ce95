// Package core provides the business logic for tabular imports.
// This package has no transport dependencies and can be used by any frontend.
package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ModelType selects which entity a file is imported as.
type ModelType int

const (
	ModelEmployees ModelType = iota + 1
	ModelClients
	ModelProjects
	ModelDepartments
	ModelWorkplaces
	ModelPurchases
	ModelServiceRequests
	ModelBusinessProcesses

	modelTypeEnd
)

var modelTags = [...]string{
	ModelEmployees:         "employees",
	ModelClients:           "clients",
	ModelProjects:          "projects",
	ModelDepartments:       "departments",
	ModelWorkplaces:        "workplaces",
	ModelPurchases:         "purchases",
	ModelServiceRequests:   "service_requests",
	ModelBusinessProcesses: "business_processes",
}

// String returns the model tag used in URLs, CLI flags and results.
func (m ModelType) String() string {
	if m <= 0 || m >= modelTypeEnd {
		return fmt.Sprintf("ModelType(%d)", int(m))
	}
	return modelTags[m]
}

// MarshalText encodes the model as its tag.
func (m ModelType) MarshalText() ([]byte, error) {
	if m <= 0 || m >= modelTypeEnd {
		return nil, fmt.Errorf("%w: %d", ErrUnknownModel, int(m))
	}
	return []byte(modelTags[m]), nil
}

// UnmarshalText decodes a model tag.
func (m *ModelType) UnmarshalText(b []byte) error {
	parsed, err := ParseModelType(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseModelType maps a tag such as "employees" to its ModelType.
// Matching ignores case and surrounding whitespace.
func ParseModelType(tag string) (ModelType, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for m := ModelEmployees; m < modelTypeEnd; m++ {
		if modelTags[m] == tag {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModel, tag)
}

// AllModelTypes returns every importable model in declaration order.
func AllModelTypes() []ModelType {
	out := make([]ModelType, 0, int(modelTypeEnd)-1)
	for m := ModelEmployees; m < modelTypeEnd; m++ {
		out = append(out, m)
	}
	return out
}

// Kind is the type of a scalar cell value.
type Kind int

const (
	KindMissing Kind = iota
	KindText
	KindNumber
	KindDate
)

// Value is a single cell. The zero Value is missing.
type Value struct {
	kind Kind
	text string
	num  decimal.Decimal
	date time.Time
}

// Missing returns the true-missing marker.
func Missing() Value { return Value{} }

// Text wraps a string. An empty string is still text, not missing.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number wraps a decimal.
func Number(d decimal.Decimal) Value { return Value{kind: KindNumber, num: d} }

// Date wraps a calendar date, normalized to UTC midnight.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Str returns the text of a text value, or the canonical text form of other kinds.
// Missing values return "".
func (v Value) Str() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return v.num.String()
	case KindDate:
		return v.date.Format("2006-01-02")
	default:
		return ""
	}
}

// Decimal returns the number held by a number value.
func (v Value) Decimal() (decimal.Decimal, bool) {
	return v.num, v.kind == KindNumber
}

// Time returns the date held by a date value.
func (v Value) Time() (time.Time, bool) {
	return v.date, v.kind == KindDate
}

func (v Value) String() string {
	if v.kind == KindMissing {
		return "<missing>"
	}
	return v.Str()
}

// Row maps normalized column names to values. Absent columns read as missing.
type Row map[string]Value

// Get returns the value for col, or missing when the column is absent.
func (r Row) Get(col string) Value {
	return r[col]
}

// Dataset is the in-memory table produced by extraction.
// Columns keeps header order; Lines holds the 1-based source line of each row.
type Dataset struct {
	Columns []string
	Rows    []Row
	Lines   []int
}

// HasColumn reports whether the dataset header contains col.
func (d *Dataset) HasColumn(col string) bool {
	for _, c := range d.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Len returns the number of data rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// Line returns the source line for row i, falling back to i+2 (header is line 1).
func (d *Dataset) Line(i int) int {
	if i < len(d.Lines) {
		return d.Lines[i]
	}
	return i + 2
}

// Entity is a typed record built from a row by a model's explicit field mapping.
// Implementations live in the entities package.
type Entity interface {
	TableName() string
	PrimaryKey() string
	Columns() []string
	Values() []any
}

// BuildFunc maps a transformed row onto a typed entity.
type BuildFunc func(Row) (Entity, error)

// ForeignKey declares that Column must hold an id present in Collection.
type ForeignKey struct {
	Column     string `json:"column"`
	Collection string `json:"collection"`
}

// Descriptor is the static configuration for one importable model.
type Descriptor struct {
	Model          ModelType
	Label          string       // Display name: "Employees"
	Collection     string       // Target table
	Required       []string     // Columns that must exist and be filled
	ForeignKeys    []ForeignKey // Checked at file and row level
	NumericColumns []string     // Coerced to decimals by the transformer
	Build          BuildFunc
}

// ReferencedCollections returns the distinct collections named by the foreign keys.
func (d Descriptor) ReferencedCollections() []string {
	seen := make(map[string]bool, len(d.ForeignKeys))
	var out []string
	for _, fk := range d.ForeignKeys {
		if !seen[fk.Collection] {
			seen[fk.Collection] = true
			out = append(out, fk.Collection)
		}
	}
	return out
}

// Stage is a state of the pipeline state machine.
type Stage string

const (
	StageExtracted   Stage = "extracted"
	StageValidated   Stage = "validated"
	StageAborted     Stage = "aborted"
	StageTransformed Stage = "transformed"
	StageLoaded      Stage = "loaded"
)
