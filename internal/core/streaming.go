package core

// streaming.go prepares raw upload bytes for the delimited-text parser.
//
// Files exported from Windows tools commonly start with a UTF-8 BOM, and
// hand-edited files sometimes carry bytes that are not valid UTF-8. The csv
// reader copes with neither, so every text source is decoded first.

import (
	"bufio"
	"bytes"
	"io"

	"golang.org/x/text/encoding/unicode"
)

// sniffWindow is how much of the file is inspected to pick a delimiter.
const sniffWindow = 64 * 1024

// NewCleanReader wraps r so downstream parsers see valid UTF-8 without a leading BOM.
// Invalid byte sequences are replaced with U+FFFD.
func NewCleanReader(r io.Reader) io.Reader {
	return unicode.UTF8BOM.NewDecoder().Reader(r)
}

// sniffDelimiter picks the field separator from the first line of br without consuming it.
// Comma wins ties; semicolon and tab are accepted for spreadsheet exports in other locales.
func sniffDelimiter(br *bufio.Reader) rune {
	head, _ := br.Peek(sniffWindow)
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}

	best, bestCount := ',', bytes.Count(head, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(head, []byte{byte(d)}); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
