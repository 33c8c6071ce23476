package thor

import (
	"math"

	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/mat"
)

// obliquityJ2000 is the mean obliquity of the ecliptic at J2000 (IAU 1976).
var obliquityJ2000 = unit.AngleFromSec(84381.448)

// Rot313Vec rotates a given vector through a 3-1-3 Euler angle sequence.
func Rot313Vec(θ1, θ2, θ3 float64, vI []float64) []float64 {
	return MxV33(R3R1R3(θ1, θ2, θ3), vI)
}

// R3R1R3 performs a 3-1-3 Euler parameter rotation, θ1 applied first.
// From Schaub and Junkins.
func R3R1R3(θ1, θ2, θ3 float64) *mat.Dense {
	sθ1, cθ1 := math.Sincos(θ1)
	sθ2, cθ2 := math.Sincos(θ2)
	sθ3, cθ3 := math.Sincos(θ3)
	return mat.NewDense(3, 3, []float64{cθ3*cθ1 - sθ3*cθ2*sθ1, cθ3*sθ1 + sθ3*cθ2*cθ1, sθ3 * sθ2,
		-sθ3*cθ1 - cθ3*cθ2*sθ1, -sθ3*sθ1 + cθ3*cθ2*cθ1, cθ3 * sθ2,
		sθ2 * sθ1, -sθ2 * cθ1, cθ2})
}

// PQW2ECI converts a vector from the perifocal frame to the inertial frame,
// i.e. applies R3(-Ω)·R1(-i)·R3(-ω).
func PQW2ECI(i, ω, Ω float64, vI []float64) []float64 {
	return Rot313Vec(-ω, -i, -Ω, vI)
}

// R1 rotation about the 1st axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m *mat.Dense, v []float64) (o []float64) {
	vVec := mat.NewVecDense(len(v), v)
	var rVec mat.VecDense
	rVec.MulVec(m, vVec)
	return []float64{rVec.AtVec(0), rVec.AtVec(1), rVec.AtVec(2)}
}

// blockDiag66 builds a 6x6 matrix applying the same 3x3 rotation to the
// position and velocity blocks.
func blockDiag66(r *mat.Dense) *mat.Dense {
	m := mat.NewDense(6, 6, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, r.At(i, j))
			m.Set(i+3, j+3, r.At(i, j))
		}
	}
	return m
}

// TransformEC2EQ returns the 6x6 rotation taking an ecliptic state vector to
// the equatorial frame.
func TransformEC2EQ() *mat.Dense {
	return blockDiag66(R1(-obliquityJ2000.Rad()))
}

// TransformEQ2EC returns the 6x6 rotation taking an equatorial state vector to
// the ecliptic frame.
func TransformEQ2EC() *mat.Dense {
	return blockDiag66(R1(obliquityJ2000.Rad()))
}
