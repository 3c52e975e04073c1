package geonames

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildFailsOnMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := Build(filepath.Join(dir, "out.idx"), filepath.Join(dir, "does-not-exist.txt"))
	if err == nil {
		t.Fatal("expected an error for a missing raw dump")
	}
}

func TestBuildFailsOnEmptyInput(t *testing.T) {
	dir := t.TempDir()
	rawPath := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(rawPath, []byte("# nothing but comments\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := Build(filepath.Join(dir, "out.idx"), rawPath)
	if err != ErrEmptyInput {
		t.Errorf("Build on all-skipped input = %v, want ErrEmptyInput", err)
	}
}

func TestBuildThenOpenRoundTrip(t *testing.T) {
	store := buildFixtureStore(t)

	t.Run("build determinism: type and name round-trip", func(t *testing.T) {
		obj, ok := store.GetObject(2988507) // Paris, FR
		if !ok {
			t.Fatal("expected Paris (FR) to be present")
		}
		if obj.Type != PopulCap {
			t.Errorf("Type = %d, want PopulCap", obj.Type)
		}
		if string(obj.Name) != "Paris" {
			t.Errorf("Name = %q, want Paris", string(obj.Name))
		}
	})

	t.Run("hash completeness", func(t *testing.T) {
		hash := NameHash([]rune("Paris"))
		found := false
		for _, got := range store.IDsByNameHash(hash) {
			if got == 2988507 {
				found = true
			}
		}
		if !found {
			t.Error("Paris (FR) id missing from IDsByNameHash(hash(\"Paris\"))")
		}

		// Sweep every alt-name declared for San Jose.
		sanJose, ok := store.GetObject(5392171)
		if !ok {
			t.Fatal("expected San Jose to be present")
		}
		for _, h := range sanJose.AltHashes {
			found := false
			for _, got := range store.IDsByAltHash(h) {
				if got == sanJose.ID {
					found = true
				}
			}
			if !found {
				t.Errorf("San Jose id missing from IDsByAltHash(%d)", h)
			}
		}
	})

	t.Run("code uniqueness", func(t *testing.T) {
		id, ok := store.CountryByCode("US")
		if !ok || id != 6252001 {
			t.Errorf("CountryByCode(US) = (%d, %v), want (6252001, true)", id, ok)
		}
		id, ok = store.ProvinceByCode("USCA")
		if !ok || id != 5332921 {
			t.Errorf("ProvinceByCode(USCA) = (%d, %v), want (5332921, true)", id, ok)
		}
	})

	t.Run("odd-type filter", func(t *testing.T) {
		if _, ok := store.GetObject(9999999); ok {
			t.Error("the PCLH fixture row must not survive ingest")
		}
	})
}

func TestBuildMergesOnID(t *testing.T) {
	dir := t.TempDir()
	rawPath := filepath.Join(dir, "dup.txt")
	mapPath := filepath.Join(dir, "dup.idx")

	rows := [][]string{
		{"1", "Dupe", "Dupe", "", "1.0", "1.0", "P", "PPL", "US", "", "CA", "", "", "", "0"},
		{"1", "Dupe", "Dupe", "", "1.0", "1.0", "P", "PPL", "US", "", "CA", "", "", "", "42"},
	}
	var dump string
	for _, r := range rows {
		for i, f := range r {
			if i > 0 {
				dump += "\t"
			}
			dump += f
		}
		dump += "\n"
	}
	if err := os.WriteFile(rawPath, []byte(dump), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Build(mapPath, rawPath); err != nil {
		t.Fatal(err)
	}
	store, err := Open(mapPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	obj, ok := store.GetObject(1)
	require.True(t, ok, "expected merged object to be present")
	require.Equal(t, uint64(42), obj.Population, "population should be adopted since the first row's was zero")
}
