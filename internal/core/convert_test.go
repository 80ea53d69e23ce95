package core

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----------------------------------------------------------------------------
// ParseDate Tests
// ----------------------------------------------------------------------------

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   time.Time
	}{
		{"ISO", "2024-01-15", true, day(2024, time.January, 15)},
		{"ISO leap day", "2024-02-29", true, day(2024, time.February, 29)},
		{"ISO with surrounding space", "  2024-01-15 ", true, day(2024, time.January, 15)},
		{"slashed ISO", "2024/01/15", true, day(2024, time.January, 15)},
		{"US slashes", "01/15/2024", true, day(2024, time.January, 15)},
		{"US single digit", "1/5/2024", true, day(2024, time.January, 5)},
		{"US dashes", "01-15-2024", true, day(2024, time.January, 15)},
		{"dotted", "01.15.2024", true, day(2024, time.January, 15)},
		{"compact", "20240115", true, day(2024, time.January, 15)},
		{"short month", "Jan 15, 2024", true, day(2024, time.January, 15)},
		{"long month", "January 15, 2024", true, day(2024, time.January, 15)},
		{"day month year", "15 Jan 2024", true, day(2024, time.January, 15)},
		{"excel style", "15-Jan-2024", true, day(2024, time.January, 15)},
		{"timestamp", "2024-01-15 13:45:00", true, time.Date(2024, time.January, 15, 13, 45, 0, 0, time.UTC)},

		{"empty", "", false, time.Time{}},
		{"garbage", "not a date", false, time.Time{}},
		{"impossible day", "2024-02-30", false, time.Time{}},
		{"month 13", "13/01/2024", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDate_TwoDigitYear(t *testing.T) {
	originalPivot := TwoDigitYearPivot
	defer func() { TwoDigitYearPivot = originalPivot }()
	TwoDigitYearPivot = 20

	future := (time.Now().Year() + 30) % 100

	tests := []struct {
		name     string
		input    string
		wantYear int
	}{
		{"recent year", "01/15/25", 2025},
		{"nineties", "01/15/99", 1999},
		{"eighties", "01/15/85", 1985},
		{"dash format", "1-15-99", 1999},
		{"dot format", "01.15.99", 1999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.wantYear, got.Year())
		})
	}

	t.Run("beyond pivot goes to previous century", func(t *testing.T) {
		got, ok := ParseDate("01/15/" + twoDigits(future))
		require.True(t, ok)
		assert.LessOrEqual(t, got.Year(), time.Now().Year()+TwoDigitYearPivot)
	})
}

// ----------------------------------------------------------------------------
// ParseDecimal Tests
// ----------------------------------------------------------------------------

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   string
	}{
		{"integer", "42", true, "42"},
		{"decimal", "12.50", true, "12.5"},
		{"negative", "-3.25", true, "-3.25"},
		{"dollar sign", "$1,234.56", true, "1234.56"},
		{"euro sign", "€99", true, "99"},
		{"pound sign", "£10.00", true, "10"},
		{"ruble sign", "500 ₽", true, "500"},
		{"accounting negative", "(123.45)", true, "-123.45"},
		{"scientific", "1.5e3", true, "1500"},
		{"leading dot", ".5", true, "0.5"},
		{"padded", "  7  ", true, "7"},

		{"empty", "", false, ""},
		{"letters", "abc", false, ""},
		{"two dots", "1.2.3", false, ""},
		{"only symbol", "$", false, ""},
		{"huge negative exponent", "1e-999999999", false, ""},
		{"huge positive exponent", "1e999999999", false, ""},
		{"exponent past bound", "1e-65", false, ""},
		{"long fraction", "0." + strings.Repeat("0", 80) + "1", false, ""},
		{"exponent within bound", "2.5e-3", true, "0.0025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDecimal(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s, want %s", got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Cell and header helpers
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple string unchanged", "hello", "hello"},
		{"empty string", "", ""},
		{"surrounded by whitespace", "  hello  ", "hello"},
		{"Excel formula with quotes", `="12345"`, "12345"},
		{"bare equals sign", "=SUM(A1)", "SUM(A1)"},
		{"double quoted", `"hello"`, "hello"},
		{"single quoted", `'hello'`, "hello"},
		{"inner quotes kept", `say "hi" now`, `say "hi" now`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCell(tt.input))
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "full_name", NormalizeHeader("  Full_Name "))
	assert.Equal(t, "id", NormalizeHeader(`="ID"`))
	assert.Equal(t, "", NormalizeHeader("   "))
}

func TestIsNullToken(t *testing.T) {
	for _, s := range []string{"", "  ", "NA", "N/A", "n/a", "NaN", "nan", "NULL", "null", "None", "<NA>", "#N/A"} {
		assert.True(t, IsNullToken(s), "%q should be null", s)
	}
	for _, s := range []string{"0", "none at all", "Nancy", "-", "false"} {
		assert.False(t, IsNullToken(s), "%q should not be null", s)
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("ada@example.com"))
	assert.True(t, ValidEmail("first.last+tag@sub.example.co"))
	assert.False(t, ValidEmail("ada@example"))
	assert.False(t, ValidEmail("ada.example.com"))
	assert.False(t, ValidEmail("ada @example.com"))
	assert.False(t, ValidEmail(""))
}

func TestIsDateColumn(t *testing.T) {
	assert.True(t, IsDateColumn("hire_date"))
	assert.True(t, IsDateColumn("date"))
	assert.True(t, IsDateColumn("request_date"))
	assert.False(t, IsDateColumn("full_name"))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}
