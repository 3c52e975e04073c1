package geonames

import "testing"

func TestDistanceKMZeroForSamePoint(t *testing.T) {
	if d := DistanceKM(48.8566, 2.3522, 48.8566, 2.3522); d != 0 {
		t.Errorf("DistanceKM(p, p) = %v, want 0", d)
	}
}

func TestDistanceKMParisToLondonApprox(t *testing.T) {
	// Paris (48.8566, 2.3522) to London (51.5074, -0.1278): ~344km.
	d := DistanceKM(48.8566, 2.3522, 51.5074, -0.1278)
	if d < 330 || d > 360 {
		t.Errorf("DistanceKM(Paris, London) = %v, want ~344km", d)
	}
}
