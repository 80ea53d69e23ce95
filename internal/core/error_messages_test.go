package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"missing column", errors.New("Missing required column: email"), "ETL001"},
		{"unknown model", fmt.Errorf("%w: %q", ErrUnknownModel, "coffee"), "ETL003"},
		{"unsupported extension", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ".pdf"), "FILE002"},
		{"body too large", errors.New("http: request body too large"), "FILE001"},
		{"bad csv wins over generic extraction",
			&ExtractionError{Path: "a.csv", Err: errors.New("invalid csv: bare quote")}, "FILE003"},
		{"workbook", &ExtractionError{Path: "a.xlsx", Err: errors.New("open workbook: zip: not a valid zip file")}, "FILE004"},
		{"no header", &ExtractionError{Path: "a.csv", Err: errors.New("empty file: no header row")}, "FILE005"},
		{"duplicate header", &ExtractionError{Path: "a.csv", Err: errors.New(`duplicate column "id" in header`)}, "FILE006"},
		{"generic extraction", &ExtractionError{Path: "a.csv", Err: errors.New("line 4 has 5 fields, header has 3")}, "FILE008"},
		{"duplicate key inside load error",
			&LoadError{Collection: "employees", Err: errors.New("ERROR: duplicate key value violates unique constraint")}, "DB001"},
		{"connection refused", errors.New("dial tcp: connection refused"), "DB004"},
		{"timeout", errors.New("i/o timeout"), "DB006"},
		{"reference read", errors.New("read reference ids from departments: no such table"), "DB008"},
		{"generic load", &LoadError{Collection: "clients", Err: errors.New("commit: tx closed")}, "DB009"},
		{"limiter saturated", ErrTooManyImports, "IMP001"},
		{"cancelled load", &LoadError{Collection: "clients", Err: context.Canceled}, "IMP002"},
		{"deadline", context.DeadlineExceeded, "IMP003"},
		{"rate limited", errors.New("rate limit exceeded"), "IMP004"},
		{"case insensitive", errors.New("DUPLICATE KEY value"), "DB001"},
		{"unknown error", errors.New("some random internal error"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, MapError(tt.err).Code)
		})
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrTooManyImports)
	assert.Equal(t, "System is busy processing other imports (Code: IMP001). Please wait a moment and try again", got)
	assert.Empty(t, FormatUserError(nil))
}

func TestNewUserError(t *testing.T) {
	assert.Nil(t, NewUserError(nil))

	techErr := errors.New("pq: duplicate key value")
	userErr := NewUserError(techErr)
	require.NotNil(t, userErr)
	assert.Equal(t, "A record with this ID already exists", userErr.Error())
	assert.ErrorIs(t, userErr, techErr)
}
