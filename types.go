package geonames

// GeoType is the GeoNames feature-code taxonomy, coded as an integer so that
// odd values can be reserved as "extra feature set" markers (filtered on
// ingest) and ranges can be compared with simple relational operators.
//
// Values mirror the GeoNames feature-code ranges: political boundaries,
// administrative divisions, populated places, and areas.
type GeoType uint32

const (
	Undef GeoType = 0

	PolitIndep GeoType = 2
	PolitSect  GeoType = 4
	PolitFree  GeoType = 6
	PolitSemi  GeoType = 8
	PolitDep   GeoType = 10
	PolitHist  GeoType = 11 // odd: extra-feature-set marker
	politEnd   GeoType = 12

	Adm1       GeoType = 12
	Adm2       GeoType = 14
	Adm3       GeoType = 16
	Adm4       GeoType = 18
	Adm5       GeoType = 20
	AdmDiv     GeoType = 22
	AdmHist1   GeoType = 23
	AdmHist2   GeoType = 25
	AdmHist3   GeoType = 27
	AdmHist4   GeoType = 29
	AdmHistDiv GeoType = 31
	AdmEnd     GeoType = 32

	PopulCap       GeoType = 32
	PopulGov       GeoType = 34
	PopulAdm1      GeoType = 36
	PopulAdm2      GeoType = 38
	PopulAdm3      GeoType = 40
	PopulAdm4      GeoType = 42
	PopulPlace     GeoType = 44
	Popul          GeoType = 46
	PopulSect      GeoType = 47
	PopulFarm      GeoType = 49
	PopulLoc       GeoType = 51
	PopulRelig     GeoType = 53
	PopulAbandoned GeoType = 55
	PopulDestroyed GeoType = 57
	PopulHist      GeoType = 59
	PopulCapHist   GeoType = 61
	populEnd       GeoType = 62

	AreaRegion     GeoType = 62
	AreaRegionEcon GeoType = 64
	AreaRegionHist GeoType = 65
	areaEnd        GeoType = 66

	typesBegin = PolitIndep
	typesEnd   = areaEnd
)

// typeCode pairs a GeoType with its textual feature code, in the same
// declaration order as the original enum so that a linear scan resolves
// ties identically to the reference implementation.
type typeCode struct {
	Type GeoType
	Code string
}

var typeCodes = []typeCode{
	{Adm1, "ADM1"},
	{Adm2, "ADM2"},
	{Adm3, "ADM3"},
	{Adm4, "ADM4"},
	{Adm5, "ADM5"},
	{AdmDiv, "ADMD"},
	{AdmHist1, "ADM1H"},
	{AdmHist2, "ADM2H"},
	{AdmHist3, "ADM3H"},
	{AdmHist4, "ADM4H"},
	{AdmHistDiv, "ADMDH"},

	{PolitIndep, "PCLI"},
	{PolitSect, "PCLIX"},
	{PolitFree, "PCLF"},
	{PolitSemi, "PCLS"},
	{PolitDep, "PCLD"},
	{PolitHist, "PCLH"},

	{Popul, "PPL"},
	{PopulAdm1, "PPLA"},
	{PopulAdm2, "PPLA2"},
	{PopulAdm3, "PPLA3"},
	{PopulAdm4, "PPLA4"},
	{PopulCap, "PPLC"},
	{PopulGov, "PPLG"},
	{PopulPlace, "PPLS"},
	{PopulSect, "PPLX"},
	{PopulFarm, "PPLF"},
	{PopulLoc, "PPLL"},
	{PopulRelig, "PPLR"},
	{PopulAbandoned, "PPLQ"},
	{PopulDestroyed, "PPLW"},
	{PopulHist, "PPLH"},
	{PopulCapHist, "PPLCH"},

	{AreaRegion, "RGN"},
	{AreaRegionEcon, "RGNE"},
	{AreaRegionHist, "RGNH"},
}

// TypeToCode returns the textual feature code for t, or "" if t is not a
// recognized feature code (including Undef and the range/end sentinels).
func TypeToCode(t GeoType) string {
	for _, tc := range typeCodes {
		if tc.Type == t {
			return tc.Code
		}
	}
	return ""
}

// TypeFromCode returns the GeoType for a textual feature code such as
// "PPLA", or Undef if the code is not recognized.
func TypeFromCode(code string) GeoType {
	for _, tc := range typeCodes {
		if tc.Code == code {
			return tc.Type
		}
	}
	return Undef
}

// IsOddOrUndef reports whether t must be discarded on ingest: the extra
// feature-set markers are odd-valued, and Undef carries no usable type.
func (t GeoType) IsOddOrUndef() bool {
	return t == Undef || t&1 == 1
}

// GeoObject is the atomic geographic entity: a country, province, or city,
// depending on Type. Fields are plain values (not pointers) so that an
// object read from a memory-mapped store and one built in memory have the
// same shape and can be compared/copied freely.
type GeoObject struct {
	ID            uint32
	Type          GeoType
	Latitude      float64
	Longitude     float64
	Population    uint64
	Name          []rune
	AsciiName     string
	AltHashes     []uint64
	CountryCode   string
	ProvinceCode  string
}

// IsCountry reports whether obj represents an independent political entity.
func (obj *GeoObject) IsCountry() bool {
	return obj.Type == PolitIndep
}

// IsProvince reports whether obj represents a first-level administrative
// division. Only Adm1 qualifies — see SPEC_FULL.md §4/§10 on why the broader
// administrative range is not treated as "province".
func (obj *GeoObject) IsProvince() bool {
	return obj.Type == Adm1
}

// IsCity reports whether obj represents a populated place or area.
func (obj *GeoObject) IsCity() bool {
	return obj.Type >= AdmEnd
}

// HasCountryCode reports whether obj carries a non-empty country code.
func (obj *GeoObject) HasCountryCode() bool {
	return obj.CountryCode != ""
}

// HasProvinceCode reports whether obj carries a non-empty province code.
func (obj *GeoObject) HasProvinceCode() bool {
	return obj.ProvinceCode != ""
}
