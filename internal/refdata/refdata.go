// Package refdata loads the immutable reference tables the classification
// pipeline depends on: country names with their accepted aliases, legal
// entity suffixes, and international calling codes.
//
// Tables are loaded once at process start and never mutated afterwards, so a
// single Store can be shared across concurrent requests without locking.
package refdata

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed data/countries.txt data/legal.txt data/callingcodes.txt
var defaults embed.FS

// DataLoadError reports missing or malformed reference data. Loading never
// falls back to an empty table silently: a broken reference file aborts
// startup.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("reference data %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// ReferenceTable maps accepted string variants to a canonical name.
// Lookups are case-insensitive exact matches; there is no fuzzy matching.
type ReferenceTable struct {
	byVariant map[string]string
	names     []string
}

// Lookup returns the canonical name for a variant.
func (t *ReferenceTable) Lookup(value string) (string, bool) {
	name, ok := t.byVariant[strings.ToLower(strings.TrimSpace(value))]
	return name, ok
}

// Contains reports whether the value matches any variant.
func (t *ReferenceTable) Contains(value string) bool {
	_, ok := t.Lookup(value)
	return ok
}

// Names returns the canonical names in file order.
func (t *ReferenceTable) Names() []string { return t.names }

// Len returns the number of canonical entries.
func (t *ReferenceTable) Len() int { return len(t.names) }

// Store bundles the loaded reference tables.
type Store struct {
	Countries     *ReferenceTable
	LegalSuffixes *ReferenceTable
	CallingCodes  *ReferenceTable
}

// Load builds the store. Each path overrides the corresponding embedded
// default when non-empty; an override that is missing, unreadable, or empty
// yields a *DataLoadError.
func Load(countriesPath, legalPath, codesPath string) (*Store, error) {
	countries, err := loadTable("data/countries.txt", countriesPath)
	if err != nil {
		return nil, err
	}
	legal, err := loadTable("data/legal.txt", legalPath)
	if err != nil {
		return nil, err
	}
	codes, err := loadTable("data/callingcodes.txt", codesPath)
	if err != nil {
		return nil, err
	}
	return &Store{Countries: countries, LegalSuffixes: legal, CallingCodes: codes}, nil
}

// MustLoad loads the embedded defaults and panics on error. The embedded
// files are validated at build time, so this is safe in tests and tools.
func MustLoad() *Store {
	store, err := Load("", "", "")
	if err != nil {
		panic(fmt.Sprintf("failed to load embedded reference data: %v", err))
	}
	return store
}

func loadTable(embedded, override string) (*ReferenceTable, error) {
	source := embedded
	var r io.ReadCloser
	if override != "" {
		source = override
		f, err := os.Open(override)
		if err != nil {
			return nil, &DataLoadError{Source: source, Err: err}
		}
		r = f
	} else {
		f, err := defaults.Open(embedded)
		if err != nil {
			return nil, &DataLoadError{Source: source, Err: err}
		}
		r = f
	}
	defer r.Close()

	table, err := parseTable(r)
	if err != nil {
		return nil, &DataLoadError{Source: source, Err: err}
	}
	return table, nil
}

// parseTable reads "Canonical|alias|alias" lines. Blank lines and lines
// starting with '#' are skipped. Every field on a line, including the
// canonical name itself, becomes a lookup variant.
func parseTable(r io.Reader) (*ReferenceTable, error) {
	table := &ReferenceTable{byVariant: make(map[string]string)}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "|")
		canonical := strings.TrimSpace(fields[0])
		if canonical == "" {
			return nil, fmt.Errorf("line %d: empty canonical name", lineNum)
		}

		table.names = append(table.names, canonical)
		for _, field := range fields {
			variant := strings.ToLower(strings.TrimSpace(field))
			if variant == "" {
				return nil, fmt.Errorf("line %d: empty variant for %q", lineNum, canonical)
			}
			table.byVariant[variant] = canonical
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(table.names) == 0 {
		return nil, fmt.Errorf("no entries")
	}
	return table, nil
}
