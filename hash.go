package geonames

import (
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// lowerRunes returns a copy of rs with each code point ASCII-lowered, per
// SPEC_FULL.md §5.I's "per-code-point ASCII-lower semantics": only the
// ASCII letters are folded, matching the original implementation's use of
// the C locale's tolower rather than full Unicode case folding. This must
// stay identical on the build and read paths — see §9 "Hash stability".
func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + ('a' - 'A')
		} else {
			out[i] = r
		}
	}
	return out
}

// NameHash is the one fixed, documented hash function used to index both
// primary names and alternate names, on both the build and read paths.
// Changing it invalidates existing index files (SPEC_FULL.md §5.I).
func NameHash(name []rune) uint64 {
	lower := lowerRunes(name)
	buf := make([]byte, 0, utf8.UTFMax*len(lower))
	for _, r := range lower {
		var tmp [utf8.UTFMax]byte
		n := utf8.EncodeRune(tmp[:], r)
		buf = append(buf, tmp[:n]...)
	}
	return xxhash.Sum64(buf)
}
