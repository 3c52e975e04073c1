package geonames

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// ParseRawLine decodes one line of the GeoNames dump (§6 column layout) into
// a GeoObject. The second return value is false when the line should be
// skipped entirely: comments, blank lines, rows that cannot be read or have
// fewer than 15 columns, or rows whose feature type is Undef or odd-valued
// (the "extra feature set" markers), per §4.B.
func ParseRawLine(line string) (GeoObject, bool) {
	if line == "" || line[0] == '#' {
		return GeoObject{}, false
	}

	r := csv.NewReader(strings.NewReader(line))
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	fields, err := r.Read()
	if err != nil || len(fields) <= 14 {
		return GeoObject{}, false
	}

	var obj GeoObject

	if id, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 32); err == nil {
		obj.ID = uint32(id)
	}

	obj.Name = []rune(fields[1])
	obj.AsciiName = fields[2]

	for _, raw := range strings.Split(fields[3], ",") {
		alt := strings.TrimSpace(raw)
		if alt == "" {
			continue
		}
		obj.AltHashes = append(obj.AltHashes, NameHash([]rune(alt)))
	}

	if lat, err := strconv.ParseFloat(strings.TrimSpace(fields[4]), 64); err == nil {
		obj.Latitude = lat
	}
	if lon, err := strconv.ParseFloat(strings.TrimSpace(fields[5]), 64); err == nil {
		obj.Longitude = lon
	}

	obj.Type = TypeFromCode(strings.TrimSpace(fields[7]))
	obj.CountryCode = strings.TrimSpace(fields[8])
	obj.ProvinceCode = strings.TrimSpace(fields[10])

	// Unparseable population silently becomes 0 — no diagnostic is emitted,
	// per SPEC_FULL.md §10.
	if pop, err := strconv.ParseUint(strings.TrimSpace(fields[14]), 10, 64); err == nil {
		obj.Population = pop
	}

	if obj.Type.IsOddOrUndef() {
		return GeoObject{}, false
	}

	return obj, true
}
