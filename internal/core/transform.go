package core

import "strings"

// Transform normalizes ds in place for d. It assumes ds passed the critical checks.
//
// Text cells are trimmed and placeholder tokens become missing. Columns whose
// name contains "date" become dates, the descriptor's numeric columns become
// decimals, and id becomes trimmed text. Values that fail to parse become
// missing; the validator has already reported them.
func Transform(ds *Dataset, d Descriptor) {
	numeric := make(map[string]bool, len(d.NumericColumns))
	for _, c := range d.NumericColumns {
		numeric[c] = true
	}

	for _, row := range ds.Rows {
		for _, col := range ds.Columns {
			v := normalizeText(row.Get(col))

			switch {
			case v.IsMissing():
			case col == "id":
				v = Text(v.Str())
			case IsDateColumn(col):
				v = toDate(v)
			case numeric[col]:
				v = toNumber(v)
			}

			row[col] = v
		}
	}
}

// normalizeText trims text cells and maps placeholder tokens to missing.
func normalizeText(v Value) Value {
	if v.Kind() != KindText {
		return v
	}
	s := strings.TrimSpace(v.Str())
	if placeholderTokens[s] {
		return Missing()
	}
	return Text(s)
}

func toDate(v Value) Value {
	if v.Kind() == KindDate {
		return v
	}
	t, ok := ParseDate(v.Str())
	if !ok {
		return Missing()
	}
	return Date(t)
}

func toNumber(v Value) Value {
	if v.Kind() == KindNumber {
		return v
	}
	d, ok := ParseDecimal(v.Str())
	if !ok {
		return Missing()
	}
	return Number(d)
}
