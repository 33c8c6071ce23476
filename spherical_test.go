package thor

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

var sphericalGolden = []float64{1.2600209300494278, 174.833209714067, 8.235370488130885,
	0.0020067712773075477, 0.7490048981099124, -0.07388906826287654}

func TestCartesianToSphericalGolden(t *testing.T) {
	got := CartesianToSphericalState(goldenState)
	for j, exp := range sphericalGolden {
		if !scalar.EqualWithinAbs(got[j], exp, 1e-10) {
			t.Fatalf("dim %d: %.15f, expected %.15f", j, got[j], exp)
		}
	}
}

func TestSphericalToCartesianInverse(t *testing.T) {
	back := SphericalToCartesianState(CartesianToSphericalState(goldenState))
	for j, exp := range goldenState {
		if !scalar.EqualWithinAbs(back[j], exp, 1e-13) {
			t.Fatalf("dim %d round-tripped %.16f -> %.16f", j, exp, back[j])
		}
	}
	for _, ρ := range []float64{0.5, 2} {
		for _, λ := range []float64{10, 110, 250, 350} {
			for _, φ := range []float64{-80, -30, 0, 45} {
				elements := []float64{ρ, λ, φ, 0.003, -0.8, 0.25}
				got := CartesianToSphericalState(SphericalToCartesianState(elements))
				for j, exp := range elements {
					if !scalar.EqualWithinAbs(got[j], exp, 1e-10) {
						t.Fatalf("ρ=%f λ=%f φ=%f: dim %d round-tripped %.12f -> %.12f",
							ρ, λ, φ, j, exp, got[j])
					}
				}
			}
		}
	}
}

func TestSphericalDegenerateRows(t *testing.T) {
	origin := CartesianToSphericalState([]float64{0, 0, 0, 0.001, 0.002, 0.003})
	if origin[0] != 0 || origin[1] != 0 {
		t.Fatalf("origin row: rho=%f lon=%f", origin[0], origin[1])
	}
	for _, j := range []int{2, 3, 4, 5} {
		if !math.IsNaN(origin[j]) {
			t.Fatalf("origin row dim %d is %f, expected NaN", j, origin[j])
		}
	}
	pole := CartesianToSphericalState([]float64{0, 0, 1.5, 0, 0, 0.004})
	if pole[0] != 1.5 {
		t.Fatalf("pole row rho=%f", pole[0])
	}
	if !scalar.EqualWithinAbs(pole[2], 90, 1e-12) {
		t.Fatalf("pole row lat=%.15f", pole[2])
	}
	if !scalar.EqualWithinAbs(pole[3], 0.004, 1e-15) {
		t.Fatalf("pole row vrho=%.15f", pole[3])
	}
	// Longitude and its rates are undefined on the polar axis.
	if !math.IsNaN(pole[4]) || !math.IsNaN(pole[5]) {
		t.Fatalf("pole row rates %f %f, expected NaN", pole[4], pole[5])
	}
}

func TestSphericalContainers(t *testing.T) {
	epochs := SingleEpoch(goldenEpoch, 1, TDB)
	cart, err := NewCartesianCoordinates([][]float64{goldenState}, epochs, nil, Ecliptic, Heliocenter)
	if err != nil {
		t.Fatal(err)
	}
	sph, err := CartesianToSpherical(cart)
	if err != nil {
		t.Fatal(err)
	}
	if sph.Representation() != Spherical {
		t.Fatal("wrong representation tag")
	}
	if sph.Frame() != Ecliptic || sph.Origin() != Heliocenter {
		t.Fatal("frame/origin tags not propagated")
	}
	if !scalar.EqualWithinAbs(sph.Rho(0), sphericalGolden[0], 1e-12) {
		t.Fatalf("rho=%.15f", sph.Rho(0))
	}
	if !scalar.EqualWithinAbs(sph.Lon(0), sphericalGolden[1], 1e-10) {
		t.Fatalf("lon=%.15f", sph.Lon(0))
	}
	if !scalar.EqualWithinAbs(sph.Lat(0), sphericalGolden[2], 1e-10) {
		t.Fatalf("lat=%.15f", sph.Lat(0))
	}
	if !scalar.EqualWithinAbs(sph.VRho(0), sphericalGolden[3], 1e-13) {
		t.Fatalf("vrho=%.15f", sph.VRho(0))
	}
	if !scalar.EqualWithinAbs(sph.VLon(0), sphericalGolden[4], 1e-10) {
		t.Fatalf("vlon=%.15f", sph.VLon(0))
	}
	if !scalar.EqualWithinAbs(sph.VLat(0), sphericalGolden[5], 1e-10) {
		t.Fatalf("vlat=%.15f", sph.VLat(0))
	}
	back, err := SphericalToCartesian(sph)
	if err != nil {
		t.Fatal(err)
	}
	for j := 0; j < coordinateDims; j++ {
		if !scalar.EqualWithinAbs(back.At(0, j), goldenState[j], 1e-13) {
			t.Fatalf("dim %d round-tripped to %.16f", j, back.At(0, j))
		}
	}
}
