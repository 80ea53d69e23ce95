package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ============================================================================
// Conversion Benchmarks
// ============================================================================

// BenchmarkParseDecimal covers the number shapes seen in purchase amounts.
func BenchmarkParseDecimal(b *testing.B) {
	testCases := []string{
		"123",
		"-456.78",
		"1234.5",
		"  999.99  ",
		"0.001",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			ParseDecimal(tc)
		}
	}
}

// BenchmarkParseDate runs through the layout list, so late matches cost the most.
func BenchmarkParseDate(b *testing.B) {
	testCases := []string{
		"2024-01-15",
		"01/15/2024",
		"15 Jan 2024",
		"20240115",
		"not a date",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			ParseDate(tc)
		}
	}
}

func BenchmarkNormalizeHeader(b *testing.B) {
	headers := []string{"ID", " Department ID ", "Full-Name", "hire date", "E-Mail"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, h := range headers {
			NormalizeHeader(h)
		}
	}
}

// ============================================================================
// Pipeline Stage Benchmarks
// ============================================================================

// employeeCSV builds a file of n valid employee rows.
func employeeCSV(b *testing.B, n int) string {
	b.Helper()

	var sb strings.Builder
	sb.WriteString("id,department_id,full_name,position,workplace_id,hire_date,email\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "%d,D1,Employee %d,Barista,W1,2024-01-15,e%d@example.com\n", i, i, i)
	}

	path := filepath.Join(b.TempDir(), "employees.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		b.Fatal(err)
	}
	return path
}

func benchmarkExtract(b *testing.B, rows int) {
	path := employeeCSV(b, rows)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Extract(path, ".csv"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExtract_1k(b *testing.B)  { benchmarkExtract(b, 1_000) }
func BenchmarkExtract_10k(b *testing.B) { benchmarkExtract(b, 10_000) }

func BenchmarkValidate_10k(b *testing.B) {
	ds, err := Extract(employeeCSV(b, 10_000), ".csv")
	if err != nil {
		b.Fatal(err)
	}
	refs := refsWith([]string{"D1"}, []string{"W1"})

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Validate(ds, employeeShape, refs)
	}
}

// BenchmarkExtractTransform_10k measures the read path up to the loader.
// Transform mutates the dataset, so extraction is repeated each iteration.
func BenchmarkExtractTransform_10k(b *testing.B) {
	path := employeeCSV(b, 10_000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ds, err := Extract(path, ".csv")
		if err != nil {
			b.Fatal(err)
		}
		Transform(ds, employeeShape)
	}
}
