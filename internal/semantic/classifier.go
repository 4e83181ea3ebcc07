package semantic

import "github.com/colsense/colsense/internal/refdata"

// Defaults for the tunable classification parameters. Both can be
// overridden through configuration.
const (
	DefaultThreshold  = 0.5
	DefaultSampleSize = 20
)

// tieEpsilon defines when two detector scores count as a tie. A later
// detector must beat the incumbent by more than this to take the column, so
// exact ties resolve to the higher-priority type.
const tieEpsilon = 1e-9

// Result is the outcome of classifying one column.
type Result struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
}

// TypeScore holds one detector's score for a column.
type TypeScore struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

// ClassifierConfig carries the tunable parameters.
type ClassifierConfig struct {
	// Threshold is the minimum acceptance score; a column is labeled
	// "other" unless some detector strictly exceeds it. Default 0.5.
	Threshold float64

	// SampleSize bounds how many non-empty values are inspected per
	// column. Default 20.
	SampleSize int
}

// Classifier runs all detectors over a column and picks the best label.
// It is stateless apart from the read-only reference data inside the
// detectors and is safe for concurrent use.
type Classifier struct {
	detectors  []Detector // fixed priority order: phone, company, country, date
	threshold  float64
	sampleSize int
}

// NewClassifier builds a classifier over the given reference data.
// Zero config fields fall back to the defaults.
func NewClassifier(detectors []Detector, cfg ClassifierConfig) *Classifier {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = DefaultSampleSize
	}
	return &Classifier{
		detectors:  detectors,
		threshold:  cfg.Threshold,
		sampleSize: cfg.SampleSize,
	}
}

// Classify scores the column with every detector over the same sample and
// returns the winning label.
//
// A column of entirely empty values is ("other", 0). When no score strictly
// exceeds the threshold the label is "other" and the confidence is the
// fraction of the sample no detector matched. Ties within tieEpsilon go to
// the earlier detector in priority order.
func (c *Classifier) Classify(values []string) Result {
	sample := Sample(values, c.sampleSize)
	if len(sample) == 0 {
		return Result{Label: LabelOther, Confidence: 0}
	}

	best := Result{Label: LabelOther}
	for _, d := range c.detectors {
		score := d.Score(sample)
		if score > best.Confidence+tieEpsilon {
			best = Result{Label: d.Label(), Confidence: score}
		}
	}

	if best.Label != LabelOther && best.Confidence > c.threshold {
		return best
	}
	return Result{Label: LabelOther, Confidence: c.unmatchedFraction(sample)}
}

// Scores returns every detector's score for the column, in priority order.
func (c *Classifier) Scores(values []string) []TypeScore {
	sample := Sample(values, c.sampleSize)
	scores := make([]TypeScore, len(c.detectors))
	for i, d := range c.detectors {
		scores[i] = TypeScore{Label: d.Label(), Score: d.Score(sample)}
	}
	return scores
}

// unmatchedFraction is the share of the sample claimed by no detector.
func (c *Classifier) unmatchedFraction(sample []string) float64 {
	if len(sample) == 0 {
		return 0
	}
	unmatched := 0
	for _, v := range sample {
		claimed := false
		for _, d := range c.detectors {
			if d.weight(v) > 0 {
				claimed = true
				break
			}
		}
		if !claimed {
			unmatched++
		}
	}
	return float64(unmatched) / float64(len(sample))
}

// DefaultDetectors returns the detector set in fixed priority order.
func DefaultDetectors(ref *refdata.Store) []Detector {
	return []Detector{
		PhoneDetector{},
		NewCompanyDetector(ref.LegalSuffixes),
		NewCountryDetector(ref.Countries),
		DateDetector{},
	}
}
