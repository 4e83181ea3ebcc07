package semantic

import "github.com/colsense/colsense/internal/refdata"

// CountryDetector matches values against the country reference table.
// Exact or alias matches only; near-misses score nothing.
type CountryDetector struct {
	countries *refdata.ReferenceTable
}

func NewCountryDetector(countries *refdata.ReferenceTable) *CountryDetector {
	return &CountryDetector{countries: countries}
}

func (*CountryDetector) Label() Label { return LabelCountry }

func (d *CountryDetector) Score(sample []string) float64 { return meanWeight(d, sample) }

func (d *CountryDetector) weight(value string) float64 {
	if d.countries.Contains(value) {
		return 1
	}
	return 0
}
