package core

// extract.go turns an uploaded file into a Dataset.
//
// Three formats are accepted, chosen by extension:
//   - .csv  via encoding/csv over a cleaned UTF-8 stream
//   - .xlsx via excelize (first sheet)
//   - .xls  via extrame/xls for legacy BIFF workbooks (first sheet)
//
// Every format is reduced to a rawTable of string cells first, so header
// normalization and null handling are shared.

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// SupportedExtensions lists the accepted file extensions.
var SupportedExtensions = []string{".csv", ".xls", ".xlsx"}

// IsSupportedExtension reports whether ext (with dot, any case) can be extracted.
func IsSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// rawTable is a sheet of string cells with the source line of each record.
type rawTable struct {
	records [][]string
	lines   []int
}

func (t *rawTable) add(rec []string, line int) {
	t.records = append(t.records, rec)
	t.lines = append(t.lines, line)
}

// Extract parses the file at path into a dataset. ext selects the parser.
// Unsupported extensions return ErrUnsupportedFormat; parse failures return *ExtractionError.
func Extract(path, ext string) (*Dataset, error) {
	ext = strings.ToLower(ext)

	var (
		table rawTable
		err   error
	)
	switch ext {
	case ".csv":
		table, err = readCSV(path)
	case ".xlsx":
		table, err = readXLSX(path)
	case ".xls":
		table, err = readXLS(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, &ExtractionError{Path: filepath.Base(path), Err: err}
	}

	ds, err := buildDataset(table)
	if err != nil {
		return nil, &ExtractionError{Path: filepath.Base(path), Err: err}
	}
	return ds, nil
}

func readCSV(path string) (rawTable, error) {
	var table rawTable

	f, err := os.Open(path)
	if err != nil {
		return table, err
	}
	defer f.Close()

	br := bufio.NewReaderSize(NewCleanReader(f), sniffWindow)

	r := csv.NewReader(br)
	r.Comma = sniffDelimiter(br)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table, fmt.Errorf("invalid csv: %w", err)
		}
		line, _ := r.FieldPos(0)
		table.add(rec, line)
	}
	return table, nil
}

func readXLSX(path string) (rawTable, error) {
	var table rawTable

	f, err := excelize.OpenFile(path)
	if err != nil {
		return table, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return table, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	for i, row := range rows {
		table.add(row, i+1)
	}
	return table, nil
}

func readXLS(path string) (table rawTable, err error) {
	// The BIFF decoder panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("corrupt xls workbook: %v", r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return table, err
	}
	defer f.Close()

	wb, err := xls.OpenReader(f, "utf-8")
	if err != nil {
		return table, fmt.Errorf("open workbook: %w", err)
	}
	if wb == nil {
		return table, errors.New("open workbook: no workbook stream")
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return table, errors.New("workbook has no sheets")
	}

	width := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			continue
		}
		// Rows without a ROW record report no last column.
		width = max(width, row.LastCol())
		cells := make([]string, width)
		for j := range cells {
			cells[j] = row.Col(j)
		}
		table.add(cells, i+1)
	}
	return table, nil
}

// xlsRow returns row i of sheet, or nil when the sheet has no such row.
// WorkSheet.Row dereferences a nil row for indexes with no record.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

// buildDataset normalizes the header and converts cells to values.
// The first non-empty record is the header; empty records are dropped.
func buildDataset(t rawTable) (*Dataset, error) {
	start := 0
	for start < len(t.records) && isEmptyRecord(t.records[start]) {
		start++
	}
	if start == len(t.records) {
		return nil, errors.New("empty file: no header row")
	}

	header := t.records[start]
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		col := NormalizeHeader(h)
		if col == "" {
			col = fmt.Sprintf("unnamed_%d", i)
		}
		if seen[col] {
			return nil, fmt.Errorf("duplicate column %q in header", col)
		}
		seen[col] = true
		columns[i] = col
	}

	ds := &Dataset{Columns: columns}
	for i := start + 1; i < len(t.records); i++ {
		rec := t.records[i]
		if isEmptyRecord(rec) {
			continue
		}

		for j := len(columns); j < len(rec); j++ {
			if strings.TrimSpace(rec[j]) != "" {
				return nil, fmt.Errorf("line %d has %d fields, header has %d", t.lines[i], len(rec), len(columns))
			}
		}

		row := make(Row, len(columns))
		for j, col := range columns {
			if j >= len(rec) || IsNullToken(rec[j]) {
				row[col] = Missing()
				continue
			}
			row[col] = Text(rec[j])
		}
		ds.Rows = append(ds.Rows, row)
		ds.Lines = append(ds.Lines, t.lines[i])
	}
	return ds, nil
}

func isEmptyRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
