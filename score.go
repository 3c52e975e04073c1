package geonames

// ParsedObject is the per-role view of a match returned to callers: the
// matched entity, the surface tokens that led to the match, whether it was
// matched via primary name rather than alt-hash, and whether the
// underlying bucket collected conflicting ids.
type ParsedObject struct {
	Object    *GeoObject
	Tokens    []string
	ByName    bool
	Ambiguous bool
}

// ParseResult is a country/province/city triple plus the composite score
// that ranked it, per SPEC_FULL.md §5.G. At least one of Country, Province,
// City is non-nil.
type ParseResult struct {
	Country  *ParsedObject
	Province *ParsedObject
	City     *ParsedObject
	Score    float64
}

// Settings configures one Parse call, mirroring the original's
// ParserSettings.
type Settings struct {
	// Delimiters overrides DefaultDelimiters when non-empty.
	Delimiters string
	// DefaultCountry, if set, is recursively parsed (UniqueOnly=true) to
	// resolve a country code; a matching result gets a one-time +3 bonus.
	DefaultCountry string
	// MergeNear is the Haversine distance (km) below which two tied city
	// candidates sharing (CountryCode, ProvinceCode, AsciiName) collapse
	// into one result. Zero means never merge.
	MergeNear float64
	// UniqueOnly rejects the whole parse (returning ErrAmbiguous) when more
	// than one result ties at the maximum score.
	UniqueOnly bool
}

// matchResult pairs one candidate triple with its computed score, prior to
// selection. Grounded on parse_impl.cpp's MatchResult.
type matchResult struct {
	country  *matchedObject
	province *matchedObject
	city     *matchedObject
	score    float64
}

// calcScore implements the exact formula of SPEC_FULL.md §5.G /
// parse_impl.cpp::MatchResult::CalcScore.
func (r *matchResult) calcScore(query []rune, defaultCountryCode string, areaToken bool) {
	score := 0.0
	tokenScore := 1.0
	weights := [3]float64{3, 2, 1}
	roles := [3]*matchedObject{r.country, r.province, r.city}
	defaultCountryMet := false
	q := float64(len(query))

	for idx, role := range roles {
		if role == nil || role.object == nil {
			continue
		}
		score += weights[idx]
		if role.byName {
			score++
		}
		if !defaultCountryMet && defaultCountryCode != "" && defaultCountryCode == role.object.CountryCode {
			score += 3
			defaultCountryMet = true
		}
		for _, tok := range role.wideTokens {
			tokenScore *= float64(len(tok)) / q
		}
	}

	if areaToken && r.city != nil && r.city.object != nil &&
		r.city.object.CountryCode == "US" && r.city.object.Type == PopulAdm1 {
		score += 3
	}

	r.score = score * (1 + tokenScore)
}

// assembleResults builds matchResults from the three buckets per the three
// loops of SPEC_FULL.md §5.G: cities first (deduped by id, which the map
// keying already guarantees), then provinces whose code was not "used" by
// a city, then countries whose code was not "used" by a city or province.
func (c *collector) assembleResults() []matchResult {
	var results []matchResult
	used := make(map[string]bool)

	for _, city := range c.cities {
		if city.ambiguous || city.object == nil {
			continue
		}
		res := matchResult{city: city}
		c.setCountryOrProvince(&res, used, city.object.CountryCode, true)
		c.setCountryOrProvince(&res, used, city.object.CountryCode+city.object.ProvinceCode, false)
		results = append(results, res)
	}

	for code, province := range c.provinces {
		if province.ambiguous || province.object == nil || used[code] {
			continue
		}
		res := matchResult{province: province}
		c.setCountryOrProvince(&res, used, province.object.CountryCode, true)
		results = append(results, res)
	}

	for code, country := range c.countries {
		if country.ambiguous || country.object == nil || used[code] {
			continue
		}
		results = append(results, matchResult{country: country})
	}

	return results
}

func (c *collector) setCountryOrProvince(res *matchResult, used map[string]bool, code string, country bool) {
	if code == "" {
		return
	}
	m := c.provinces
	if country {
		m = c.countries
	}
	b, ok := m[code]
	if !ok {
		return
	}
	if country {
		res.country = b
	} else {
		res.province = b
	}
	used[code] = true
}

// Parse is the public entry point, per SPEC_FULL.md §5.G. It returns
// (nil, ErrNotInitialized) when store is nil, (nil, nil) when no hits were
// found, and (nil, ErrAmbiguous) when settings.UniqueOnly rejected a
// multi-way tie at the maximum score.
func Parse(store *Store, query string, settings Settings) ([]ParseResult, error) {
	if store == nil {
		return nil, ErrNotInitialized
	}

	delimiters := settings.Delimiters
	if delimiters == "" {
		delimiters = DefaultDelimiters
	}

	tokens, delims, areaToken := tokenize(query, delimiters)
	hypotheses := makeHypotheses(query, tokens, delims)

	c := newCollector(store)
	c.runMatching(query, hypotheses)

	matched := c.assembleResults()
	if len(matched) == 0 {
		return nil, nil
	}

	defaultCountryCode := resolveDefaultCountry(store, settings.DefaultCountry)

	queryRunes := []rune(query)
	maxScore := 0.0
	maxScoreCities := make(map[string]*GeoObject)
	merged := make(map[uint32]bool)

	for i := range matched {
		matched[i].calcScore(queryRunes, defaultCountryCode, areaToken)
		switch {
		case matched[i].score > maxScore:
			maxScore = matched[i].score
			maxScoreCities = make(map[string]*GeoObject)
			addCity(maxScoreCities, merged, &matched[i], settings.MergeNear)
		case matched[i].score == maxScore:
			addCity(maxScoreCities, merged, &matched[i], settings.MergeNear)
		}
	}

	var results []ParseResult
	for i := range matched {
		res := &matched[i]
		if res.score != maxScore {
			continue
		}
		if res.city != nil && res.city.object != nil && merged[res.city.object.ID] {
			continue
		}

		result := ParseResult{Score: res.score}
		if res.country != nil {
			result.Country = toParsedObject(res.country)
		}
		if res.province != nil {
			result.Province = toParsedObject(res.province)
		}
		if res.city != nil {
			result.City = toParsedObject(res.city)
		}

		if result.Country == nil {
			var countryCode string
			switch {
			case result.City != nil:
				countryCode = result.City.Object.CountryCode
			case result.Province != nil:
				countryCode = result.Province.Object.CountryCode
			}
			if countryCode != "" {
				if id, ok := store.CountryByCode(countryCode); ok {
					if obj, ok := store.GetObject(id); ok {
						result.Country = &ParsedObject{Object: &obj}
					}
				}
			}
		}
		if result.City != nil && result.Province == nil {
			code := result.City.Object.CountryCode + result.City.Object.ProvinceCode
			if id, ok := store.ProvinceByCode(code); ok {
				if obj, ok := store.GetObject(id); ok {
					result.Province = &ParsedObject{Object: &obj}
				}
			}
		}

		results = append(results, result)
	}

	if settings.UniqueOnly && len(results) > 1 {
		return nil, ErrAmbiguous
	}

	return results, nil
}

// addCity implements AddCity from parse_impl.cpp: tracks, per composite key
// CountryCode+ProvinceCode+AsciiName, the first city seen at the current
// max score; a later arrival within MergeNear km is recorded as merged and
// suppressed from the final output.
func addCity(seen map[string]*GeoObject, merged map[uint32]bool, res *matchResult, mergeNear float64) {
	if res.city == nil || res.city.object == nil {
		return
	}
	obj := res.city.object
	key := obj.CountryCode + obj.ProvinceCode + obj.AsciiName
	if existing, ok := seen[key]; ok {
		if DistanceKM(existing.Latitude, existing.Longitude, obj.Latitude, obj.Longitude) < mergeNear {
			merged[obj.ID] = true
		}
		return
	}
	seen[key] = obj
}

func toParsedObject(m *matchedObject) *ParsedObject {
	return &ParsedObject{
		Object:    m.object,
		Tokens:    m.tokens,
		ByName:    m.byName,
		Ambiguous: m.ambiguous,
	}
}

// resolveDefaultCountry recursively parses defaultCountry (UniqueOnly=true)
// to obtain its resolved country code, exactly as RunScoring does in
// parse_impl.cpp. It returns "" on any failure to resolve, silently — a
// misconfigured or unparseable default country simply contributes no bonus.
func resolveDefaultCountry(store *Store, defaultCountry string) string {
	if defaultCountry == "" {
		return ""
	}
	results, err := Parse(store, defaultCountry, Settings{UniqueOnly: true})
	if err != nil || len(results) == 0 || results[0].Country == nil {
		return ""
	}
	return results[0].Country.Object.CountryCode
}
