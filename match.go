package geonames

import "strings"

// matchedObject is the per-bucket accumulator of SPEC_FULL.md §5.F,
// grounded on parse_impl.cpp's MatchedObject. Tokens carries the surface
// (byte) form of each distinct matching candidate; wideTokens carries the
// parallel code-point form used by calcScore's coverage product.
type matchedObject struct {
	object     *GeoObject
	tokens     []string
	wideTokens [][]rune
	byName     bool
	ambiguous  bool
}

// update applies the bucket algorithm of SPEC_FULL.md §5.F verbatim: an
// ambiguous bucket ignores further updates; an empty bucket adopts obj; a
// conflicting id flips the bucket to ambiguous and clears it; a matching id
// performs substring deduplication against the stored tokens.
func (m *matchedObject) update(obj *GeoObject, token string, wideToken []rune, byName bool) {
	switch {
	case m.ambiguous:
		return
	case m.object == nil:
		m.object = obj
		m.tokens = append(m.tokens, token)
		m.wideTokens = append(m.wideTokens, wideToken)
		m.byName = byName
	case m.object.ID != obj.ID:
		m.object = nil
		m.tokens = nil
		m.wideTokens = nil
		m.byName = false
		m.ambiguous = true
	default:
		found := false
		for i, t := range m.tokens {
			if strings.Contains(t, token) {
				found = true
				break
			}
			if strings.Contains(token, t) {
				m.tokens[i] = token
				m.wideTokens[i] = wideToken
				found = true
				break
			}
		}
		if !found {
			m.tokens = append(m.tokens, token)
			m.wideTokens = append(m.wideTokens, wideToken)
		}
		m.byName = m.byName || byName
	}
}

// collector holds the three role buckets and the matching state for one
// parse call, grounded on parse_impl.cpp's Parser fields Countries_,
// Provinces_, Cities_.
type collector struct {
	store *Store

	countries map[string]*matchedObject // keyed by CountryCode
	provinces map[string]*matchedObject // keyed by CountryCode+ProvinceCode
	cities    map[uint32]*matchedObject // keyed by object id
}

func newCollector(store *Store) *collector {
	return &collector{
		store:     store,
		countries: make(map[string]*matchedObject),
		provinces: make(map[string]*matchedObject),
		cities:    make(map[uint32]*matchedObject),
	}
}

// addObject resolves id to its GeoObject and routes the update into the
// bucket matching its role, per AddObject in parse_impl.cpp.
func (c *collector) addObject(id uint32, name string, wideName []rune, byName bool) {
	obj, ok := c.store.GetObject(id)
	if !ok {
		return
	}
	stored := obj

	switch {
	case stored.IsCountry():
		b, ok := c.countries[stored.CountryCode]
		if !ok {
			b = &matchedObject{}
			c.countries[stored.CountryCode] = b
		}
		b.update(&stored, name, wideName, byName)
	case stored.IsProvince():
		key := stored.CountryCode + stored.ProvinceCode
		b, ok := c.provinces[key]
		if !ok {
			b = &matchedObject{}
			c.provinces[key] = b
		}
		b.update(&stored, name, wideName, byName)
	case stored.IsCity():
		b, ok := c.cities[stored.ID]
		if !ok {
			b = &matchedObject{}
			c.cities[stored.ID] = b
		}
		b.update(&stored, name, wideName, byName)
	}
}

// runMatching probes the hypothesis set against the store's indices,
// populating the three buckets, per SPEC_FULL.md §5.F.
func (c *collector) runMatching(query string, hypotheses []hypothesis) {
	for _, hypo := range hypotheses {
		for _, name := range hypo.names {
			wide := []rune(name)
			hash := NameHash(wide)
			for _, id := range c.store.IDsByNameHash(hash) {
				c.addObject(id, name, wide, true)
			}
		}
		for _, name := range hypo.names {
			wide := []rune(name)
			hash := NameHash(wide)
			for _, id := range c.store.IDsByAltHash(hash) {
				c.addObject(id, name, wide, false)
			}
		}

		first := hypo.names[0]
		if firstRunes := []rune(first); len(firstRunes) == 2 {
			code := strings.ToUpper(first)
			wide := firstRunes
			if id, ok := c.store.CountryByCode(code); ok {
				c.addObject(id, first, wide, true)
			}
			if id, ok := c.store.ProvinceByCode("US" + code); ok {
				c.addObject(id, first, wide, true)
			}
		}

		if first == query && (len(c.countries) > 0 || len(c.provinces) > 0 || len(c.cities) > 0) {
			break
		}
	}
}
