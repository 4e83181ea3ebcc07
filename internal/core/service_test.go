package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/colsense/colsense/internal/csv"
	"github.com/colsense/colsense/internal/refdata"
	"github.com/colsense/colsense/internal/semantic"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewService(refdata.MustLoad(), Config{DataDir: dir}, nil)
	return svc, dir
}

func writeSample(t *testing.T, dir, name string) {
	t.Helper()
	records := [][]string{
		{"id", "ph_nb", "vendor", "signed"},
		{"1", "+91 6796233790", "Tresata pvt ltd.", "2024-01-15"},
		{"2", "+1 2312953582", "Apple Inc.", "2024-02-20"},
		{"3", "+44 2028323322", "Google LLC", "2024-03-01"},
		{"4", "+1 4752162114", "Initech Corp", "2024-04-10"},
	}
	if err := csv.Write(filepath.Join(dir, name), records); err != nil {
		t.Fatalf("write sample: %v", err)
	}
}

func TestService_ClassifyFile(t *testing.T) {
	svc, dir := newTestService(t)
	writeSample(t, dir, "input.csv")
	ctx := context.Background()

	tests := []struct {
		column string
		want   semantic.Label
	}{
		{"ph_nb", semantic.LabelPhoneNumber},
		{"vendor", semantic.LabelCompanyName},
		{"signed", semantic.LabelDate},
		{"id", semantic.LabelOther},
	}
	for _, tt := range tests {
		res, err := svc.ClassifyFile(ctx, "input.csv", tt.column)
		if err != nil {
			t.Fatalf("ClassifyFile(%q) error = %v", tt.column, err)
		}
		if res.Label != tt.want {
			t.Errorf("ClassifyFile(%q) = %s, want %s", tt.column, res.Label, tt.want)
		}
	}
}

func TestService_ClassifyFile_UnknownColumn(t *testing.T) {
	svc, dir := newTestService(t)
	writeSample(t, dir, "input.csv")

	_, err := svc.ClassifyFile(context.Background(), "input.csv", "nope")
	if !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("error = %v, want ErrUnknownColumn", err)
	}
}

func TestService_ParseFile(t *testing.T) {
	svc, dir := newTestService(t)
	writeSample(t, dir, "input.csv")

	summary, err := svc.ParseFile(context.Background(), "input.csv")
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	if !summary.Phone.Found || summary.Phone.Column != "ph_nb" {
		t.Errorf("phone selection = %+v, want ph_nb", summary.Phone)
	}
	if !summary.Company.Found || summary.Company.Column != "vendor" {
		t.Errorf("company selection = %+v, want vendor", summary.Company)
	}
	if summary.Rows != 4 {
		t.Errorf("rows = %d, want 4", summary.Rows)
	}

	records, err := csv.Read(summary.OutputFile)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("output records = %d, want header + 4 rows", len(records))
	}
	header := records[0]
	if header[0] != "PhoneNumber" || header[3] != "CompanyName" {
		t.Errorf("output header = %v, want parsed columns first", header)
	}
	if records[1][1] != "India" || records[1][2] != "6796233790" {
		t.Errorf("output row 1 = %v, want resolved India number", records[1])
	}
}

func TestService_ProcessFile(t *testing.T) {
	svc, dir := newTestService(t)
	writeSample(t, dir, "input.csv")

	res, err := svc.ProcessFile(context.Background(), "input.csv")
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if len(res.Classifications) != 4 {
		t.Errorf("classifications = %d, want 4", len(res.Classifications))
	}
	if res.Summary == nil || res.Summary.Rows != 4 {
		t.Errorf("summary = %+v, want 4 rows", res.Summary)
	}
}

func TestService_ListFiles(t *testing.T) {
	svc, dir := newTestService(t)
	writeSample(t, dir, "b.csv")
	writeSample(t, dir, "a.csv")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := svc.ListFiles(context.Background())
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}
	if len(files) != 2 || files[0] != "a.csv" || files[1] != "b.csv" {
		t.Errorf("ListFiles() = %v, want [a.csv b.csv]", files)
	}
}

func TestService_ListFiles_MissingDir(t *testing.T) {
	svc := NewService(refdata.MustLoad(), Config{DataDir: filepath.Join(t.TempDir(), "absent")}, nil)

	files, err := svc.ListFiles(context.Background())
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("ListFiles() = %v, want empty", files)
	}
}

func TestService_PathTraversalRejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.LoadTable("../../../etc/passwd")
	if err == nil {
		t.Fatal("LoadTable() with traversal path: expected error")
	}
}

func TestService_MissingFile(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.LoadTable("absent.csv")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestService_EmptyFile(t *testing.T) {
	svc, dir := newTestService(t)
	if err := os.WriteFile(filepath.Join(dir, "empty.csv"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := svc.LoadTable("empty.csv")
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if len(table.Columns) != 0 || table.RowCount() != 0 {
		t.Errorf("table = %+v, want empty", table)
	}
}
