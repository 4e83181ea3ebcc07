package semantic

import (
	"strings"
	"time"
)

// dateLayouts is the fixed, ordered list of accepted formats. A value counts
// once: the first layout that parses wins, later matches add nothing.
var dateLayouts = []string{
	// ISO
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"20060102",
	// US
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	// EU (day first; catches day>12 values the US layouts reject)
	"02-01-2006",
	"02.01.2006",
	"2.1.2006",
	// Textual month
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// DateDetector matches values parseable under one of the fixed layouts.
type DateDetector struct{}

func (DateDetector) Label() Label { return LabelDate }

func (d DateDetector) Score(sample []string) float64 { return meanWeight(d, sample) }

func (DateDetector) weight(value string) float64 {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return 1
		}
	}
	return 0
}
