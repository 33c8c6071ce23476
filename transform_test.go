package thor

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestTransformCoordinatesIdentity(t *testing.T) {
	epochs := SingleEpoch(goldenEpoch, 1, TDB)
	k, err := NewKeplerianCoordinates([][]float64{goldenElements}, epochs, nil, Ecliptic, Heliocenter, MU)
	if err != nil {
		t.Fatal(err)
	}
	same, err := TransformCoordinates(k, Keplerian)
	if err != nil {
		t.Fatal(err)
	}
	if same != k {
		t.Fatal("the identity transform must return the input container")
	}
}

func TestTransformCoordinatesHub(t *testing.T) {
	epochs := SingleEpoch(goldenEpoch, 1, TDB)
	k, err := NewKeplerianCoordinates([][]float64{goldenElements}, epochs, nil, Ecliptic, Heliocenter, MU)
	if err != nil {
		t.Fatal(err)
	}
	for _, to := range []Representation{Cartesian, Cometary, Spherical} {
		out, err := TransformCoordinates(k, to)
		if err != nil {
			t.Fatal(err)
		}
		if out.Representation() != to {
			t.Fatalf("asked for %s, got %s", to, out.Representation())
		}
		if out.Len() != 1 || out.Frame() != Ecliptic || out.Origin() != Heliocenter {
			t.Fatalf("container metadata lost converting to %s", to)
		}
	}
	// Two legs through the hub: keplerian -> spherical -> cometary.
	sph, err := TransformCoordinates(k, Spherical)
	if err != nil {
		t.Fatal(err)
	}
	com, err := TransformCoordinates(sph, Cometary)
	if err != nil {
		t.Fatal(err)
	}
	q := com.(*CometaryCoordinates).PeriapsisDistance(0)
	if !scalar.EqualWithinAbs(q, 1.2, 1e-10) {
		t.Fatalf("q=%.12f after two hub legs", q)
	}
}

func TestTransformCoordinatesGravitationalParameter(t *testing.T) {
	epochs := SingleEpoch(goldenEpoch, 1, TDB)
	k, err := NewKeplerianCoordinates([][]float64{goldenElements}, epochs, nil, Ecliptic, Heliocenter, MUBarycentric)
	if err != nil {
		t.Fatal(err)
	}
	out, err := TransformCoordinates(k, Cometary)
	if err != nil {
		t.Fatal(err)
	}
	if out.(*CometaryCoordinates).GM() != MUBarycentric {
		t.Fatal("source µ must override the origin body's")
	}
	// A spherical source carries no µ of its own.
	sph, err := TransformCoordinates(k, Spherical)
	if err != nil {
		t.Fatal(err)
	}
	back, err := TransformCoordinates(sph, Keplerian)
	if err != nil {
		t.Fatal(err)
	}
	if back.(*KeplerianCoordinates).GM() != MU {
		t.Fatal("a µ-less source must fall back to the origin body's")
	}
}

func TestToCartesianPassThrough(t *testing.T) {
	epochs := SingleEpoch(goldenEpoch, 1, TDB)
	c, err := NewCartesianCoordinates([][]float64{goldenState}, epochs, nil, Ecliptic, Heliocenter)
	if err != nil {
		t.Fatal(err)
	}
	same, err := ToCartesian(c)
	if err != nil {
		t.Fatal(err)
	}
	if same != c {
		t.Fatal("cartesian input must pass through untouched")
	}
	if _, err := TransformCoordinates(c, Representation(42)); !errors.Is(err, ErrUnknownRepresentation) {
		t.Fatalf("expected ErrUnknownRepresentation, got %v", err)
	}
}
