package geonames

import "testing"

func TestTypeCodeRoundTrip(t *testing.T) {
	t.Run("known codes round-trip", func(t *testing.T) {
		for _, tc := range typeCodes {
			if got := TypeToCode(tc.Type); got != tc.Code {
				t.Errorf("TypeToCode(%d) = %q, want %q", tc.Type, got, tc.Code)
			}
			if got := TypeFromCode(tc.Code); got != tc.Type {
				t.Errorf("TypeFromCode(%q) = %d, want %d", tc.Code, got, tc.Type)
			}
		}
	})

	t.Run("unknown code yields Undef", func(t *testing.T) {
		if got := TypeFromCode("NOPE"); got != Undef {
			t.Errorf("TypeFromCode(unknown) = %d, want Undef", got)
		}
	})
}

func TestIsOddOrUndef(t *testing.T) {
	cases := []struct {
		t    GeoType
		want bool
	}{
		{Undef, true},
		{PolitHist, true}, // 11, odd
		{PolitIndep, false},
		{Adm1, false},
		{PopulCap, false},
		{PopulSect, true}, // 47, odd
	}
	for _, c := range cases {
		if got := c.t.IsOddOrUndef(); got != c.want {
			t.Errorf("GeoType(%d).IsOddOrUndef() = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestGeoObjectPredicates(t *testing.T) {
	t.Run("country", func(t *testing.T) {
		obj := GeoObject{Type: PolitIndep, CountryCode: "FR"}
		if !obj.IsCountry() || obj.IsProvince() || obj.IsCity() {
			t.Errorf("PolitIndep predicates wrong: country=%v province=%v city=%v", obj.IsCountry(), obj.IsProvince(), obj.IsCity())
		}
	})

	t.Run("province is Adm1 only", func(t *testing.T) {
		adm1 := GeoObject{Type: Adm1}
		adm2 := GeoObject{Type: Adm2}
		if !adm1.IsProvince() {
			t.Error("Adm1 must be a province")
		}
		if adm2.IsProvince() {
			t.Error("Adm2 must not be a province — only Adm1 qualifies, per the carried-over open question")
		}
	})

	t.Run("city is the populated-place and area range", func(t *testing.T) {
		if (&GeoObject{Type: Adm5}).IsCity() {
			t.Error("Adm5 must not be a city")
		}
		if !(&GeoObject{Type: PopulCap}).IsCity() {
			t.Error("PopulCap must be a city")
		}
		if !(&GeoObject{Type: AreaRegionHist}).IsCity() {
			t.Error("AreaRegionHist must be a city")
		}
	})

	t.Run("code presence predicates", func(t *testing.T) {
		withCode := GeoObject{CountryCode: "US", ProvinceCode: "CA"}
		without := GeoObject{}
		if !withCode.HasCountryCode() || !withCode.HasProvinceCode() {
			t.Error("expected both code predicates true")
		}
		if without.HasCountryCode() || without.HasProvinceCode() {
			t.Error("expected both code predicates false on empty object")
		}
	})
}
