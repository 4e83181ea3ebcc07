package semantic

import (
	"regexp"
	"strings"
)

// phoneSeparators are the characters stripped before a value is tested as a
// phone number. Anything else left over besides digits (and a leading '+')
// disqualifies the value.
var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// dateShapePattern matches three numeric groups joined by date separators
// (2024-01-15, 12/25/2023). Such values are not plausible national numbers;
// without this check every dash-separated date would score as a phone.
var dateShapePattern = regexp.MustCompile(`^\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}$`)

// PhoneDetector matches international and plausible national phone numbers.
// A national number must have 7-15 digits; an international number is a
// leading '+', a 1-3 digit calling code, then 7-15 digits.
type PhoneDetector struct{}

func (PhoneDetector) Label() Label { return LabelPhoneNumber }

func (d PhoneDetector) Score(sample []string) float64 { return meanWeight(d, sample) }

func (PhoneDetector) weight(value string) float64 {
	v := strings.TrimSpace(value)
	cleaned := phoneSeparators.Replace(v)
	if cleaned == "" {
		return 0
	}
	if dateShapePattern.MatchString(v) {
		return 0
	}

	digits := cleaned
	international := false
	if strings.HasPrefix(cleaned, "+") {
		international = true
		digits = cleaned[1:]
	}
	if !isDigits(digits) {
		return 0
	}

	// 8-18 covers calling code (1-3 digits) plus a 7-15 digit number.
	if international {
		if len(digits) >= 8 && len(digits) <= 18 {
			return 1
		}
		return 0
	}
	if len(digits) >= 7 && len(digits) <= 15 {
		return 1
	}
	return 0
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
