// Package csv wraps encoding/csv with the cleanup real-world exports need:
// UTF-8 sanitizing, BOM and zero-width character stripping, and Excel
// formula-prefix removal on headers and cells.
package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// Read loads a CSV file into records. Rows may have varying field counts;
// callers decide how to align them.
func Read(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", path, err)
	}
	return records, nil
}

// Parse decodes CSV data after sanitizing it to valid UTF-8.
func Parse(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(SanitizeUTF8(data)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}

// Write creates (or truncates) a CSV file from records.
func Write(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	return nil
}

// SanitizeUTF8 replaces invalid byte sequences so encoding/csv never chokes
// on mixed-encoding exports. Valid input is returned unchanged.
func SanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	return bytes.ToValidUTF8(data, []byte("�"))
}

// CleanHeader normalizes a header cell for matching: cell cleanup plus
// lowercasing.
func CleanHeader(s string) string {
	return strings.ToLower(CleanCell(s))
}

// CleanCell strips the artifacts spreadsheets leave behind: surrounding
// whitespace, byte order marks, zero-width characters, and the ="value"
// formula wrapper Excel uses to force text cells.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\uFEFF\u200B\u00A0")

	// ="value" formula wrapper
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}

	return strings.TrimSpace(s)
}
