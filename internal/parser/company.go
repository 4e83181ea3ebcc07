package parser

import (
	"strings"

	"github.com/colsense/colsense/internal/refdata"
)

// CompanyRecord is the structured form of one company value. An empty Legal
// means no known suffix was found; Name then carries the whole value.
type CompanyRecord struct {
	Raw   string `json:"raw"`
	Name  string `json:"name"`
	Legal string `json:"legal"`
}

// CompanyParser splits company names into name and legal suffix using the
// legal entity suffix reference table.
type CompanyParser struct {
	legal *refdata.ReferenceTable
}

func NewCompanyParser(legal *refdata.ReferenceTable) *CompanyParser {
	return &CompanyParser{legal: legal}
}

// Parse decomposes a single value. The legal suffix is the longest run of
// known suffix tokens at the end of the value, bridging "&"/"and" so
// compound forms like "GmbH & Co. KG" stay intact. Both output fields are
// lowercased with trailing punctuation stripped from the suffix tokens.
func (p *CompanyParser) Parse(value string) CompanyRecord {
	raw := strings.TrimSpace(value)
	rec := CompanyRecord{Raw: raw}
	if raw == "" {
		return rec
	}

	words := strings.Fields(raw)

	// Walk backwards collecting the trailing suffix run.
	split := len(words)
	for i := len(words) - 1; i >= 0; i-- {
		tok := normalizeToken(words[i])
		if p.legal.Contains(tok) {
			split = i
			continue
		}
		if (tok == "&" || tok == "and") && split == i+1 && split < len(words) {
			split = i
			continue
		}
		break
	}

	if split == len(words) {
		rec.Name = strings.ToLower(raw)
		return rec
	}

	legalToks := make([]string, 0, len(words)-split)
	for _, w := range words[split:] {
		legalToks = append(legalToks, normalizeToken(w))
	}
	rec.Legal = strings.Join(legalToks, " ")
	rec.Name = strings.ToLower(strings.Join(words[:split], " "))
	return rec
}

func normalizeToken(word string) string {
	return strings.ToLower(strings.TrimRight(word, ".,;:"))
}
