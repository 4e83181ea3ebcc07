package csv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParse_RaggedRows(t *testing.T) {
	data := []byte("a,b,c\n1,2\n3,4,5,6\n")

	records, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	if len(records[1]) != 2 || len(records[2]) != 4 {
		t.Errorf("row lengths = %d, %d; ragged rows must survive", len(records[1]), len(records[2]))
	}
}

func TestParse_InvalidUTF8(t *testing.T) {
	data := []byte("name\nAcme\xff\xfeCorp\n")

	records, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v, invalid UTF-8 must be sanitized not fatal", err)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2", len(records))
	}
}

func TestReadWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	records := [][]string{
		{"PhoneNumber", "Country", "Number"},
		{"+91 6796233790", "India", "6796233790"},
	}

	if err := Write(path, records); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 2 || got[1][1] != "India" {
		t.Errorf("round trip = %v, want %v", got, records)
	}
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatal("Read() of missing file: expected error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  plain  ", "plain"},
		{"\uFEFFbom", "bom"},
		{`="00123"`, "00123"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanCell(tt.in); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanHeader(t *testing.T) {
	if got := CleanHeader("  Phone Number "); got != "phone number" {
		t.Errorf("CleanHeader = %q, want %q", got, "phone number")
	}
}
