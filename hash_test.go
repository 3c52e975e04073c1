package geonames

import "testing"

func TestLowerRunesOnlyFoldsASCII(t *testing.T) {
	in := []rune("San José TOWN")
	got := lowerRunes(in)
	want := []rune("san josé town")
	if string(got) != string(want) {
		t.Errorf("lowerRunes(%q) = %q, want %q (only ASCII letters fold)", string(in), string(got), string(want))
	}
}

func TestNameHashStableAndCaseInsensitive(t *testing.T) {
	a := NameHash([]rune("Paris"))
	b := NameHash([]rune("paris"))
	c := NameHash([]rune("PARIS"))
	if a != b || b != c {
		t.Errorf("NameHash must be case-insensitive: %d, %d, %d", a, b, c)
	}

	d := NameHash([]rune("Paris, France"))
	if a == d {
		t.Error("different inputs should (overwhelmingly likely) hash differently")
	}
}
