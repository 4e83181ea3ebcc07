package parser

import (
	"github.com/colsense/colsense/internal/semantic"
)

// Selection names the column chosen for one semantic type. Found is false
// when no column reached the acceptance threshold; that is a reported
// outcome, not an error.
type Selection struct {
	Column     string  `json:"column"`
	Index      int     `json:"index"`
	Confidence float64 `json:"confidence"`
	Found      bool    `json:"found"`
}

// ColumnResult pairs a column with its classification.
type ColumnResult struct {
	Column string          `json:"column"`
	Result semantic.Result `json:"result"`
}

// Row carries the parsed fields for one input row. Nil pointers mean the
// corresponding column was not selected for the table.
type Row struct {
	Index   int            `json:"index"`
	Phone   *PhoneRecord   `json:"phone,omitempty"`
	Company *CompanyRecord `json:"company,omitempty"`
}

// Result is the outcome of running the selector over a table. Rows always
// has exactly one entry per input row.
type Result struct {
	Classifications []ColumnResult `json:"classifications"`
	Phone           Selection      `json:"phone"`
	Company         Selection      `json:"company"`
	Rows            []Row          `json:"rows"`
}

// Selector runs the classifier over every column of a table and feeds the
// best phone and company columns to the matching field parser.
type Selector struct {
	classifier *semantic.Classifier
	phone      *PhoneParser
	company    *CompanyParser
}

func NewSelector(classifier *semantic.Classifier, phone *PhoneParser, company *CompanyParser) *Selector {
	return &Selector{classifier: classifier, phone: phone, company: company}
}

// Run classifies all columns, picks the highest-confidence phone and
// company columns (ties go to the leftmost), and parses the chosen columns
// value by value. No row is ever dropped: rows where parsing fails carry
// records with unresolved fields.
func (s *Selector) Run(t *Table) *Result {
	res := &Result{
		Phone:           Selection{Index: -1},
		Company:         Selection{Index: -1},
		Classifications: make([]ColumnResult, 0, len(t.Columns)),
	}

	for i, col := range t.Columns {
		r := s.classifier.Classify(t.ColumnAt(i))
		res.Classifications = append(res.Classifications, ColumnResult{Column: col, Result: r})

		switch r.Label {
		case semantic.LabelPhoneNumber:
			// Strictly greater keeps the leftmost column on ties.
			if !res.Phone.Found || r.Confidence > res.Phone.Confidence {
				res.Phone = Selection{Column: col, Index: i, Confidence: r.Confidence, Found: true}
			}
		case semantic.LabelCompanyName:
			if !res.Company.Found || r.Confidence > res.Company.Confidence {
				res.Company = Selection{Column: col, Index: i, Confidence: r.Confidence, Found: true}
			}
		}
	}

	res.Rows = make([]Row, t.RowCount())
	for i, row := range t.Rows {
		res.Rows[i].Index = i
		if res.Phone.Found {
			rec := s.phone.Parse(row[res.Phone.Index])
			res.Rows[i].Phone = &rec
		}
		if res.Company.Found {
			rec := s.company.Parse(row[res.Company.Index])
			res.Rows[i].Company = &rec
		}
	}
	return res
}

// Output column names for the parsed fields.
const (
	outPhoneColumn   = "PhoneNumber"
	outPhoneCountry  = "Country"
	outPhoneNumber   = "Number"
	outCompanyColumn = "CompanyName"
	outCompanyName   = "Name"
	outCompanyLegal  = "Legal"
)

// BuildOutput assembles the augmented output table: parsed-field columns
// first (the selected source columns renamed to PhoneNumber / CompanyName),
// then every remaining input column in original order. Row count matches
// the input exactly.
func BuildOutput(t *Table, res *Result) *Table {
	var columns []string
	if res.Phone.Found {
		columns = append(columns, outPhoneColumn, outPhoneCountry, outPhoneNumber)
	}
	if res.Company.Found {
		columns = append(columns, outCompanyColumn, outCompanyName, outCompanyLegal)
	}
	var passthrough []int
	for i, col := range t.Columns {
		if (res.Phone.Found && i == res.Phone.Index) || (res.Company.Found && i == res.Company.Index) {
			continue
		}
		passthrough = append(passthrough, i)
		columns = append(columns, col)
	}

	rows := make([][]string, len(t.Rows))
	for i, srcRow := range t.Rows {
		row := make([]string, 0, len(columns))
		if res.Phone.Found {
			rec := res.Rows[i].Phone
			row = append(row, srcRow[res.Phone.Index], rec.Country, rec.Number)
		}
		if res.Company.Found {
			rec := res.Rows[i].Company
			row = append(row, srcRow[res.Company.Index], rec.Name, rec.Legal)
		}
		for _, idx := range passthrough {
			row = append(row, srcRow[idx])
		}
		rows[i] = row
	}

	return &Table{Columns: columns, Rows: rows}
}
