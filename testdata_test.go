package geonames

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fixtureRows holds the GeoNames-shaped rows used by the end-to-end
// scenarios of SPEC_FULL.md §9, one field slice per row, built
// programmatically so the column count (§6: 0 id, 1 name, 2 asciiname,
// 3 alternatenames, 4 lat, 5 lon, 6 feature class, 7 feature code,
// 8 country code, 9 cc2, 10 admin1 code, 11-13, 14 population) is exact
// and auditable rather than hand-aligned tabs.
var fixtureRows = [][]string{
	{"6252001", "United States", "United States", "USA,United States of America", "39.76", "-98.5", "A", "PCLI", "US", "", "", "", "", "", "331002651"},
	{"3017382", "France", "France", "French Republic", "46.0", "2.0", "A", "PCLI", "FR", "", "", "", "", "", "67000000"},
	{"6251999", "Canada", "Canada", "", "60.0", "-95.0", "A", "PCLI", "CA", "", "", "", "", "", "38000000"},
	{"5332921", "California", "California", "", "36.17", "-119.75", "A", "ADM1", "US", "", "CA", "", "", "", "39500000"},
	{"4736286", "Texas", "Texas", "", "31.0", "-100.0", "A", "ADM1", "US", "", "TX", "", "", "", "29000000"},
	{"5392171", "San Jose", "San Jose", "San Jose, California", "37.3382", "-121.8863", "P", "PPL", "US", "", "CA", "", "", "", "1000000"},
	{"2988507", "Paris", "Paris", "City of Light", "48.8566", "2.3522", "P", "PPLC", "FR", "", "11", "", "", "", "2138551"},
	{"4715679", "Paris", "Paris", "", "33.6609", "-95.5555", "P", "PPL", "US", "", "TX", "", "", "", "25171"},
	{"5391959", "San Francisco", "San Francisco", "SF", "37.7749", "-122.4194", "P", "PPLA", "US", "", "CA", "", "", "", "873965"},
	{"4408077", "Springfield", "Springfield", "", "37.2153", "-93.2982", "P", "PPLA2", "US", "", "MO", "", "", "", "167882"},
	{"4409896", "Springfield", "Springfield", "", "37.1800", "-93.3000", "P", "PPLA2", "US", "", "MO", "", "", "", "100"},
	{"9999999", "Bad", "Bad", "", "0", "0", "X", "PCLH", "ZZ", "", "", "", "", "", "0"}, // odd-valued type, must be dropped
}

func buildFixtureDump() string {
	var b strings.Builder
	for _, row := range fixtureRows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	b.WriteString("# a trailing comment row\n")
	return b.String()
}

// buildFixtureStore writes the fixture dump, builds a map file from it,
// and opens it, registering cleanup with t.
func buildFixtureStore(t *testing.T) *Store {
	t.Helper()

	dir := t.TempDir()
	rawPath := filepath.Join(dir, "dump.txt")
	mapPath := filepath.Join(dir, "geonames.idx")

	if err := os.WriteFile(rawPath, []byte(buildFixtureDump()), 0o644); err != nil {
		t.Fatalf("writing fixture dump: %v", err)
	}

	if err := Build(mapPath, rawPath); err != nil {
		t.Fatalf("Build: %v", err)
	}

	store, err := Open(mapPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}
