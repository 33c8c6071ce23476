package thor

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestParallelRows(t *testing.T) {
	// Below the threshold the batch stays serial; either way every index
	// runs exactly once and lands in its own slot.
	small := make([]int, 64)
	parallelRows(len(small), func(i int) { small[i]++ })
	for i, v := range small {
		if v != 1 {
			t.Fatalf("row %d ran %d times", i, v)
		}
	}

	cfgLoaded = true
	config = _thorconfig{MaxKeplerIterations: 100, KeplerTolerance: 1e-15, Workers: 4, ParallelThreshold: 8}
	defer func() { cfgLoaded = false }()
	large := make([]int, 1000)
	parallelRows(len(large), func(i int) { large[i] += i })
	for i, v := range large {
		if v != i {
			t.Fatalf("row %d holds %d", i, v)
		}
	}
}

func TestParallelConversionMatchesSerial(t *testing.T) {
	n := 300
	rows := make([][]float64, n)
	for i := range rows {
		m := float64(i) * 360.0 / float64(n)
		rows[i] = []float64{1.5, 0.2, 10, 50, 80, m}
	}
	epochs := SingleEpoch(goldenEpoch, n, TDB)
	k, err := NewKeplerianCoordinates(rows, epochs, nil, Ecliptic, Heliocenter, MU)
	if err != nil {
		t.Fatal(err)
	}

	cfgLoaded = true
	config = _thorconfig{MaxKeplerIterations: 100, KeplerTolerance: 1e-15, Workers: 4, ParallelThreshold: 8}
	defer func() { cfgLoaded = false }()
	cart, err := KeplerianToCartesian(k)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		want := KeplerianToCartesianState(rows[i], MU, 100, 1e-15)
		for j := range want {
			if !scalar.EqualWithinAbs(cart.At(i, j), want[j], 1e-15) {
				t.Fatalf("row %d dim %d: %.16f vs %.16f", i, j, cart.At(i, j), want[j])
			}
		}
	}
}
