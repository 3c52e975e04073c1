package geonames

import "strings"

// DefaultDelimiters matches ParserSettings::Delimiters_ in the original
// implementation byte-for-byte, including the em-dash.
const DefaultDelimiters = "\t .;,/&()–"

// tokenize splits query into maximal runs of non-delimiter runes (Tokens)
// and the delimiter run between consecutive tokens, plus a trailing entry
// after the last token (Delims), per SPEC_FULL.md §5.E. areaToken reports
// whether any token, lowercased, is exactly "area".
func tokenize(query, delimiters string) (tokens, delims []string, areaToken bool) {
	runes := []rune(query)
	delimSet := make(map[rune]bool, len(delimiters))
	for _, d := range delimiters {
		delimSet[d] = true
	}

	var curDelim []rune
	pos := 0
	for pos < len(runes) {
		for pos < len(runes) && delimSet[runes[pos]] {
			curDelim = append(curDelim, runes[pos])
			pos++
		}
		if pos == len(runes) {
			break
		}
		if len(tokens) > 0 {
			delims = append(delims, string(curDelim))
		}
		curDelim = nil

		start := pos
		for pos < len(runes) && !delimSet[runes[pos]] {
			pos++
		}
		token := string(runes[start:pos])
		tokens = append(tokens, token)

		if strings.ToLower(token) == "area" {
			areaToken = true
		}
	}
	if len(tokens) > 0 {
		delims = append(delims, string(curDelim))
	}

	return tokens, delims, areaToken
}

// hypothesis is an ordered set of candidate surface strings to probe
// against the indices, derived from one window of consecutive tokens (or,
// for hypothesis 0, the full query).
type hypothesis struct {
	names []string
}

// hasNonSpace reports whether s contains any rune other than a plain space.
func hasNonSpace(s string) bool {
	for _, r := range s {
		if r != ' ' {
			return true
		}
	}
	return false
}

// hasNonTabSpace reports whether s contains any rune other than tab/space.
func hasNonTabSpace(s string) bool {
	for _, r := range s {
		if r != '\t' && r != ' ' {
			return true
		}
	}
	return false
}

// makeHypotheses builds the hypothesis set exactly per SPEC_FULL.md §5.E
// and parse_impl.cpp's Parser::MakeHypotheses: hypothesis 0 is the full
// query; for each token index, up-to-3-token as-typed windows, a
// space-normalized variant when any delimiter within the window is
// non-space, and a glued pair when the window's first inter-token
// delimiter is tab/space only.
func makeHypotheses(query string, tokens, delims []string) []hypothesis {
	hypotheses := make([]hypothesis, 0, len(tokens)+1)
	hypotheses = append(hypotheses, hypothesis{names: []string{query}})

	for idx := 0; idx < len(tokens); idx++ {
		var names []string
		var combined strings.Builder
		untrivialDelim := false

		end := idx + 3
		if end > len(tokens) {
			end = len(tokens)
		}
		for extra := idx; extra < end; extra++ {
			combined.WriteString(tokens[extra])
			names = append(names, combined.String())
			combined.WriteString(delims[extra])
			if hasNonSpace(delims[extra]) {
				untrivialDelim = true
			}
		}

		if untrivialDelim {
			combined.Reset()
			for extra := idx; extra < end; extra++ {
				combined.WriteString(tokens[extra])
				names = append(names, combined.String())
				combined.WriteString(" ")
			}
		}

		if idx+1 < len(tokens) && !hasNonTabSpace(delims[idx]) {
			names = append(names, tokens[idx]+tokens[idx+1])
		}

		hypotheses = append(hypotheses, hypothesis{names: names})
	}

	return hypotheses
}
