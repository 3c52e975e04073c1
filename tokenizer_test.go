package geonames

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	t.Run("splits on default delimiters", func(t *testing.T) {
		tokens, delims, area := tokenize("San Jose, CA", DefaultDelimiters)
		wantTokens := []string{"San", "Jose", "CA"}
		if !reflect.DeepEqual(tokens, wantTokens) {
			t.Errorf("tokens = %v, want %v", tokens, wantTokens)
		}
		if len(delims) != len(tokens) {
			t.Errorf("len(delims) = %d, want %d (trailing entry included)", len(delims), len(tokens))
		}
		if area {
			t.Error("AreaToken should be false")
		}
	})

	t.Run("detects area token case-insensitively", func(t *testing.T) {
		_, _, area := tokenize("San Francisco Bay Area", DefaultDelimiters)
		if !area {
			t.Error("AreaToken should be true for 'Area'")
		}
	})

	t.Run("em-dash is a delimiter", func(t *testing.T) {
		tokens, _, _ := tokenize("New York–Newark", DefaultDelimiters)
		want := []string{"New", "York", "Newark"}
		if !reflect.DeepEqual(tokens, want) {
			t.Errorf("tokens = %v, want %v", tokens, want)
		}
	})
}

func TestMakeHypothesesFullQueryIsFirst(t *testing.T) {
	tokens, delims, _ := tokenize("Paris", DefaultDelimiters)
	hyps := makeHypotheses("Paris", tokens, delims)
	if hyps[0].names[0] != "Paris" {
		t.Errorf("hypothesis 0 = %v, want [Paris]", hyps[0].names)
	}
}

func TestMakeHypothesesSpaceNormalizedVariant(t *testing.T) {
	// "San Jose, CA" token window at idx=1 ("Jose") is joined to "CA" by
	// ", " which is non-space, so a space-normalized "Jose CA" variant
	// must also appear.
	tokens, delims, _ := tokenize("San Jose, CA", DefaultDelimiters)
	hyps := makeHypotheses("San Jose, CA", tokens, delims)

	found := false
	for _, h := range hyps {
		for _, n := range h.names {
			if n == "Jose CA" {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected a space-normalized \"Jose CA\" hypothesis")
	}
}

func TestMakeHypothesesGluedPairOnSpaceDelimiter(t *testing.T) {
	tokens, delims, _ := tokenize("New York", DefaultDelimiters)
	hyps := makeHypotheses("New York", tokens, delims)

	found := false
	for _, h := range hyps {
		for _, n := range h.names {
			if n == "NewYork" {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected a glued \"NewYork\" hypothesis since the delimiter between them is a plain space")
	}
}
