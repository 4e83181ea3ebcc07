// Command gensample writes sample CSV files for exercising the pipeline: a
// mixed table plus one single-column fixture per semantic type. With -refs
// it also exports the embedded reference lists as editable override files.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/colsense/colsense/internal/csv"
	"github.com/colsense/colsense/internal/refdata"
)

var companies = []string{
	"Tresata pvt ltd.",
	"Enno Roggemann GmbH & Co. KG",
	"First National Bank",
	"Debrunner Acifer AG",
	"Microsoft Corporation",
	"Apple Inc.",
	"Google LLC",
	"Initech Corp",
	"Wayne Enterprises Inc",
	"Acme Co.",
}

var phones = []string{
	"+91 6796233790",
	"+1 2312953582",
	"+44 2028323322",
	"4853859590",
	"+1 475-216-2114",
	"(080) 1234 5678",
	"+91 9876543210",
}

var dates = []string{
	"2024-01-15",
	"12/25/2023",
	"15-03-2024",
	"January 1, 2024",
	"2024/06/30",
	"03-15-2024",
}

var countries = []string{
	"India", "United States", "United Kingdom", "Germany", "France",
	"Japan", "Brazil", "Canada", "Australia", "Bangladesh",
}

var callingCodes = []string{"91", "1", "44", "49", "33"}

func main() {
	out := flag.String("out", "data", "directory to write sample files into")
	rows := flag.Int("rows", 25, "number of data rows in the mixed sample")
	seed := flag.Int64("seed", 0, "random seed; 0 uses the current time")
	refs := flag.Bool("refs", false, "also export the embedded reference lists as override files")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(*out, 0o755); err != nil {
		slog.Error("failed to create output directory", "dir", *out, "error", err)
		os.Exit(1)
	}

	writeCSV(*out, "sample.csv", mixedSample(rng, *rows))
	writeCSV(*out, "phoneNumber.csv", columnFixture("ph_nb", phones))
	writeCSV(*out, "Company.csv", columnFixture("CompanyName", companies))
	writeCSV(*out, "Dates.csv", columnFixture("Date", dates))

	if *refs {
		ref := refdata.MustLoad()
		writeList(*out, "countries.txt", ref.Countries.Names())
		writeList(*out, "legal.txt", ref.LegalSuffixes.Names())
	}

	fmt.Printf("wrote sample files to %s (seed %d)\n", *out, *seed)
}

// mixedSample builds a table with one column per semantic type plus id and
// free-text noise columns.
func mixedSample(rng *rand.Rand, rows int) [][]string {
	records := make([][]string, 0, rows+1)
	records = append(records, []string{"id", "ph_nb", "vendor", "country", "signed", "notes"})
	for i := 0; i < rows; i++ {
		records = append(records, []string{
			strconv.Itoa(i + 1),
			randomPhone(rng),
			companies[rng.Intn(len(companies))],
			countries[rng.Intn(len(countries))],
			randomDate(rng),
			fmt.Sprintf("row %d notes", i+1),
		})
	}
	return records
}

// columnFixture builds a single-column table from fixed values.
func columnFixture(header string, values []string) [][]string {
	records := make([][]string, 0, len(values)+1)
	records = append(records, []string{header})
	for _, v := range values {
		records = append(records, []string{v})
	}
	return records
}

func writeCSV(dir, name string, records [][]string) {
	path := filepath.Join(dir, name)
	if err := csv.Write(path, records); err != nil {
		slog.Error("failed to write sample file", "path", path, "error", err)
		os.Exit(1)
	}
}

func writeList(dir, name string, lines []string) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		slog.Error("failed to write reference file", "path", path, "error", err)
		os.Exit(1)
	}
}

// randomPhone produces an international number with a known calling code.
func randomPhone(rng *rand.Rand) string {
	code := callingCodes[rng.Intn(len(callingCodes))]
	digits := make([]byte, 10)
	for i := range digits {
		digits[i] = byte('0' + rng.Intn(10))
	}
	// First subscriber digit stays non-zero so normalization keeps length.
	digits[0] = byte('1' + rng.Intn(9))
	return "+" + code + " " + string(digits)
}

// randomDate produces an ISO date within the last few years.
func randomDate(rng *rand.Rand) string {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	d := start.AddDate(0, 0, rng.Intn(365*4))
	return d.Format("2006-01-02")
}
