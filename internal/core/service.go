// Package core wires the classification pipeline into one service shared by
// the HTTP API, the MCP server, and the command line tools. It owns file
// access under the data directory and records runs in the optional history
// store.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/colsense/colsense/internal/csv"
	"github.com/colsense/colsense/internal/history"
	"github.com/colsense/colsense/internal/logging"
	"github.com/colsense/colsense/internal/parser"
	"github.com/colsense/colsense/internal/refdata"
	"github.com/colsense/colsense/internal/semantic"
)

// ErrUnknownColumn is returned when a named column is not in the table.
var ErrUnknownColumn = errors.New("unknown column")

// ErrOutsideDataDir is returned when a path escapes the data directory.
var ErrOutsideDataDir = errors.New("path outside data directory")

// OutputFileName is the file ParseFile writes next to its input.
const OutputFileName = "output.csv"

// Config carries the service tuning parameters.
type Config struct {
	// Threshold and SampleSize tune the classifier; zero means default.
	Threshold  float64
	SampleSize int

	// DataDir is the directory file-level operations resolve names in.
	DataDir string
}

// Service exposes every pipeline operation over loaded reference data.
// It is safe for concurrent use.
type Service struct {
	classifier *semantic.Classifier
	selector   *parser.Selector
	phone      *parser.PhoneParser
	company    *parser.CompanyParser
	history    *history.Store
	dataDir    string
}

// NewService builds the service. hist may be nil to disable run history.
func NewService(ref *refdata.Store, cfg Config, hist *history.Store) *Service {
	classifier := semantic.NewClassifier(semantic.DefaultDetectors(ref), semantic.ClassifierConfig{
		Threshold:  cfg.Threshold,
		SampleSize: cfg.SampleSize,
	})
	phone := parser.NewPhoneParser(ref.CallingCodes)
	company := parser.NewCompanyParser(ref.LegalSuffixes)

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}

	return &Service{
		classifier: classifier,
		selector:   parser.NewSelector(classifier, phone, company),
		phone:      phone,
		company:    company,
		history:    hist,
		dataDir:    dataDir,
	}
}

// ClassifyValues labels one column of raw values.
func (s *Service) ClassifyValues(values []string) semantic.Result {
	return s.classifier.Classify(values)
}

// Scores returns every detector's score for the values, in priority order.
func (s *Service) Scores(values []string) []semantic.TypeScore {
	return s.classifier.Scores(values)
}

// ClassifyColumn labels the named column of a table.
func (s *Service) ClassifyColumn(t *parser.Table, column string) (semantic.Result, error) {
	values, ok := t.Column(column)
	if !ok {
		return semantic.Result{}, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	return s.classifier.Classify(values), nil
}

// ClassifyTable labels every column of a table.
func (s *Service) ClassifyTable(t *parser.Table) []parser.ColumnResult {
	results := make([]parser.ColumnResult, len(t.Columns))
	for i, col := range t.Columns {
		results[i] = parser.ColumnResult{
			Column: col,
			Result: s.classifier.Classify(t.ColumnAt(i)),
		}
	}
	return results
}

// ParseTable runs column selection and field parsing over a table.
func (s *Service) ParseTable(t *parser.Table) *parser.Result {
	return s.selector.Run(t)
}

// ParsePhone decomposes one phone value.
func (s *Service) ParsePhone(value string) parser.PhoneRecord {
	return s.phone.Parse(value)
}

// ParseCompany decomposes one company value.
func (s *Service) ParseCompany(value string) parser.CompanyRecord {
	return s.company.Parse(value)
}

// ListFiles returns the CSV files available in the data directory, sorted by
// name. A missing directory is reported as an empty list.
func (s *Service) ListFiles(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list files in %s: %w", s.dataDir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	s.record(ctx, history.Run{Tool: "list_files", Detail: map[string]string{
		"count": strconv.Itoa(len(files)),
	}})
	return files, nil
}

// LoadTable reads a CSV file from the data directory into a table. The first
// record is the header; ragged data rows are padded or truncated to it.
func (s *Service) LoadTable(name string) (*parser.Table, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	records, err := csv.Read(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return parser.NewTable(nil, nil), nil
	}

	header := make([]string, len(records[0]))
	for i, cell := range records[0] {
		header[i] = csv.CleanCell(cell)
	}
	return parser.NewTable(header, records[1:]), nil
}

// ClassifyFile loads a file and labels one named column.
func (s *Service) ClassifyFile(ctx context.Context, name, column string) (semantic.Result, error) {
	t, err := s.LoadTable(name)
	if err != nil {
		return semantic.Result{}, err
	}

	res, err := s.ClassifyColumn(t, column)
	if err != nil {
		return semantic.Result{}, err
	}

	s.record(ctx, history.Run{Tool: "column_prediction", File: name, Column: column, Detail: map[string]string{
		"label":      string(res.Label),
		"confidence": strconv.FormatFloat(res.Confidence, 'f', -1, 64),
	}})
	return res, nil
}

// ParseSummary reports the outcome of a file-level parse run.
type ParseSummary struct {
	OutputFile string           `json:"output_file"`
	Phone      parser.Selection `json:"phone"`
	Company    parser.Selection `json:"company"`
	Rows       int              `json:"rows"`
}

// ParseFile loads a file, runs the full pipeline, and writes the augmented
// table to output.csv next to the input.
func (s *Service) ParseFile(ctx context.Context, name string) (*ParseSummary, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	t, err := s.LoadTable(name)
	if err != nil {
		return nil, err
	}

	res := s.selector.Run(t)
	out := parser.BuildOutput(t, res)

	outPath := filepath.Join(filepath.Dir(path), OutputFileName)
	records := make([][]string, 0, out.RowCount()+1)
	records = append(records, out.Columns)
	records = append(records, out.Rows...)
	if err := csv.Write(outPath, records); err != nil {
		return nil, err
	}

	summary := &ParseSummary{
		OutputFile: outPath,
		Phone:      res.Phone,
		Company:    res.Company,
		Rows:       t.RowCount(),
	}

	s.record(ctx, history.Run{Tool: "parser", File: name, Detail: map[string]string{
		"phone_column":   res.Phone.Column,
		"company_column": res.Company.Column,
		"rows":           strconv.Itoa(t.RowCount()),
	}})
	return summary, nil
}

// ProcessResult combines per-column classification with the parse summary.
type ProcessResult struct {
	Classifications []parser.ColumnResult `json:"classifications"`
	Summary         *ParseSummary         `json:"summary"`
}

// ProcessFile classifies every column of a file and then parses it.
func (s *Service) ProcessFile(ctx context.Context, name string) (*ProcessResult, error) {
	t, err := s.LoadTable(name)
	if err != nil {
		return nil, err
	}
	classifications := s.ClassifyTable(t)

	summary, err := s.ParseFile(ctx, name)
	if err != nil {
		return nil, err
	}

	s.record(ctx, history.Run{Tool: "process_file", File: name, Detail: map[string]string{
		"columns": strconv.Itoa(len(t.Columns)),
		"rows":    strconv.Itoa(t.RowCount()),
	}})
	return &ProcessResult{Classifications: classifications, Summary: summary}, nil
}

// History returns the most recent recorded runs, newest first. It returns an
// empty list when history is not configured.
func (s *Service) History(ctx context.Context, limit int) ([]history.Run, error) {
	return s.history.Recent(ctx, limit)
}

// HistoryEnabled reports whether run history is backed by a database.
func (s *Service) HistoryEnabled() bool {
	return s.history.Enabled()
}

// resolve joins a file name onto the data directory and rejects anything
// that would escape it.
func (s *Service) resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty file name", os.ErrNotExist)
	}

	path := filepath.Join(s.dataDir, filepath.Clean("/"+name))
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}
	absDir, err := filepath.Abs(s.dataDir)
	if err != nil {
		return "", fmt.Errorf("resolve data dir: %w", err)
	}
	if abs != absDir && !strings.HasPrefix(abs, absDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideDataDir, name)
	}
	return abs, nil
}

// record persists a run when history is configured. Failures are logged and
// never surface; history must not break the pipeline.
func (s *Service) record(ctx context.Context, run history.Run) {
	if !s.history.Enabled() {
		return
	}
	if err := s.history.Record(ctx, run); err != nil {
		logging.FromContext(ctx).Warn("failed to record run", "tool", run.Tool, "error", err)
	}
}
