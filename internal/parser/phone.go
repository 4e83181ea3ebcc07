package parser

import (
	"strings"

	"github.com/colsense/colsense/internal/refdata"
)

// PhoneRecord is the structured form of one phone value. Resolved marks
// whether a calling code identified the country; when false, Country is
// empty rather than guessed.
type PhoneRecord struct {
	Raw      string `json:"raw"`
	Country  string `json:"country"`
	Number   string `json:"number"`
	Resolved bool   `json:"resolved"`
}

// phoneStrip removes the separators tolerated inside phone values.
var phoneStrip = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// PhoneParser splits phone values into country and national number using
// the calling-code reference table.
type PhoneParser struct {
	codes *refdata.ReferenceTable
}

func NewPhoneParser(codes *refdata.ReferenceTable) *PhoneParser {
	return &PhoneParser{codes: codes}
}

// Parse decomposes a single value. It never fails: values that are not
// phone numbers at all come back with the trimmed raw value as the number
// and no country.
func (p *PhoneParser) Parse(value string) PhoneRecord {
	raw := strings.TrimSpace(value)
	rec := PhoneRecord{Raw: raw}
	if raw == "" {
		return rec
	}

	cleaned := phoneStrip.Replace(raw)
	digits := strings.TrimPrefix(cleaned, "+")
	if !isDigits(digits) {
		// Soft fail: keep the original value so no information is lost.
		rec.Number = raw
		return rec
	}

	if strings.HasPrefix(cleaned, "+") {
		if country, rest, ok := p.splitCallingCode(digits); ok {
			rec.Country = country
			rec.Number = normalizeNumber(rest)
			rec.Resolved = true
			return rec
		}
	}

	rec.Number = normalizeNumber(digits)
	return rec
}

// splitCallingCode tries calling codes longest first (3 digits down to 1)
// so that e.g. "91..." resolves to India before "9" could shadow it.
func (p *PhoneParser) splitCallingCode(digits string) (country, rest string, ok bool) {
	for n := 3; n >= 1; n-- {
		if len(digits) <= n {
			continue
		}
		if name, found := p.codes.Lookup(digits[:n]); found {
			return name, digits[n:], true
		}
	}
	return "", "", false
}

// normalizeNumber drops leading zeros (trunk prefixes) from the national
// number.
func normalizeNumber(digits string) string {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return digits
	}
	return trimmed
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
