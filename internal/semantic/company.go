package semantic

import (
	"strings"
	"unicode"

	"github.com/colsense/colsense/internal/refdata"
)

// Per-value weights: a known legal suffix is strong evidence, the
// capitalized multi-word shape alone is weak.
const (
	companySuffixWeight = 1.0
	companyShapeWeight  = 0.5
)

// CompanyDetector matches company names by legal entity suffix
// ("Acme Ltd", "Tresata pvt ltd.") or, more weakly, by shape: a capitalized
// multi-word string with no numeric tokens ("First National Bank").
type CompanyDetector struct {
	legal *refdata.ReferenceTable
}

func NewCompanyDetector(legal *refdata.ReferenceTable) *CompanyDetector {
	return &CompanyDetector{legal: legal}
}

func (*CompanyDetector) Label() Label { return LabelCompanyName }

func (d *CompanyDetector) Score(sample []string) float64 { return meanWeight(d, sample) }

func (d *CompanyDetector) weight(value string) float64 {
	v := strings.TrimSpace(value)
	if len(v) < 2 {
		return 0
	}
	if d.hasLegalSuffix(v) {
		return companySuffixWeight
	}
	if looksLikeCompany(v) {
		return companyShapeWeight
	}
	return 0
}

// hasLegalSuffix reports whether any token, trailing punctuation stripped,
// is a known legal entity suffix.
func (d *CompanyDetector) hasLegalSuffix(value string) bool {
	for _, tok := range strings.Fields(value) {
		tok = strings.TrimRight(tok, ".,;:")
		if d.legal.Contains(tok) {
			return true
		}
	}
	return false
}

// looksLikeCompany is the shape heuristic: at least two words, starts with
// an uppercase letter, and no purely numeric token (dates and phone numbers
// must not pick up company weight).
func looksLikeCompany(value string) bool {
	words := strings.Fields(value)
	if len(words) < 2 {
		return false
	}
	first, _ := firstRune(value)
	if !unicode.IsUpper(first) {
		return false
	}
	for _, w := range words {
		if isDigits(strings.Trim(w, ".,;:()-")) {
			return false
		}
	}
	return true
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}
