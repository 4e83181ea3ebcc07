// Package semantic classifies columns of raw string values into semantic
// types: phone number, company name, country, date, or other.
//
// Each type has a Detector that scores how well a sample of column values
// matches the type. The Classifier runs every detector over the same sample
// and applies a threshold plus a fixed priority order to pick one label.
// Detectors are stateless; scores are computed fresh per column and never
// cached.
package semantic

import "strings"

// Label identifies a semantic column type.
type Label string

const (
	LabelPhoneNumber Label = "phonenumber"
	LabelCompanyName Label = "companyname"
	LabelCountry     Label = "country"
	LabelDate        Label = "date"
	LabelOther       Label = "other"
)

// Detector scores a sample of column values against one semantic type.
// Score is in [0,1]: the fraction of the sample that matches the type
// (company weights partial matches, see CompanyDetector).
type Detector interface {
	Label() Label
	Score(sample []string) float64

	// weight is the per-value contribution in [0,1]; 0 means no match.
	weight(value string) float64
}

// Sample returns up to n non-empty values in column order. The sample is
// deterministic so that classifying the same column twice yields identical
// results.
func Sample(values []string, n int) []string {
	if n <= 0 {
		n = DefaultSampleSize
	}
	sample := make([]string, 0, n)
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		sample = append(sample, v)
		if len(sample) == n {
			break
		}
	}
	return sample
}

// meanWeight averages per-value weights over the sample, capped at 1.0.
func meanWeight(d Detector, sample []string) float64 {
	if len(sample) == 0 {
		return 0
	}
	var total float64
	for _, v := range sample {
		total += d.weight(v)
	}
	score := total / float64(len(sample))
	if score > 1 {
		score = 1
	}
	return score
}
