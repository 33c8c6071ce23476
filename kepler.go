package thor

import (
	"fmt"
	"math"
)

// Regime classifies an orbit by its eccentricity.
type Regime uint8

const (
	// Elliptical orbits (e < 1) are bound, with finite period.
	Elliptical Regime = iota
	// Parabolic orbits (e = 1) are marginally unbound; the semi-major axis
	// is undefined and the semi-latus rectum form is used in its place.
	Parabolic
	// Hyperbolic orbits (e > 1) are unbound, with infinite period.
	Hyperbolic
)

// RegimeOf returns the dynamical regime selected by the eccentricity.
func RegimeOf(e float64) Regime {
	switch {
	case e < 1:
		return Elliptical
	case e > 1:
		return Hyperbolic
	default:
		return Parabolic
	}
}

// String implements the Stringer interface.
func (r Regime) String() string {
	switch r {
	case Elliptical:
		return "elliptical"
	case Parabolic:
		return "parabolic"
	case Hyperbolic:
		return "hyperbolic"
	}
	return "unknown"
}

// KeplerStatus reports how a Kepler solve terminated. Non-convergence is not
// fatal: the last iterate is always returned alongside.
type KeplerStatus struct {
	Iterations int
	Residual   float64
	Converged  bool
}

// SolveKepler returns the true anomaly ν in radians for the given
// eccentricity and mean anomaly M (radians), solving Kepler's equation by
// Newton-Raphson. For e = 1 the equation does not define ν and NaN is
// returned (position on a parabola is expressed via the semi-latus rectum
// instead, cf. Barker's equation).
func SolveKepler(e, M float64, maxIter int, tol float64) float64 {
	ν, _ := SolveKeplerStatus(e, M, maxIter, tol)
	return ν
}

// SolveKeplerStatus is SolveKepler with the termination status, for callers
// which need to inspect the residual or iteration count.
func SolveKeplerStatus(e, M float64, maxIter int, tol float64) (float64, KeplerStatus) {
	switch {
	case e < 1:
		E, status := eccentricAnomaly(e, M, maxIter, tol)
		sE, cE := math.Sincos(E / 2)
		return 2 * math.Atan2(math.Sqrt(1+e)*sE, math.Sqrt(1-e)*cE), status
	case e > 1:
		H, status := hyperbolicAnomaly(e, M, maxIter, tol)
		return 2 * math.Atan2(math.Sqrt(e+1)*math.Sinh(H/2), math.Sqrt(e-1)*math.Cosh(H/2)), status
	default:
		return math.NaN(), KeplerStatus{Iterations: 0, Residual: math.NaN(), Converged: false}
	}
}

// SolveKeplerStrict is SolveKepler for callers demanding convergence: the
// last iterate is still returned, wrapped in ErrNonConvergence when the
// tolerance was not met within maxIter.
func SolveKeplerStrict(e, M float64, maxIter int, tol float64) (float64, error) {
	ν, status := SolveKeplerStatus(e, M, maxIter, tol)
	if e == 1 {
		return ν, fmt.Errorf("true anomaly of a parabolic orbit: %w", ErrUnsupportedRegime)
	}
	if !status.Converged {
		return ν, fmt.Errorf("e=%g M=%g after %d iterations (residual %g): %w", e, M, status.Iterations, status.Residual, ErrNonConvergence)
	}
	return ν, nil
}

// eccentricAnomaly solves M = E - e·sin(E) for 0 ≤ e < 1. The initial guess
// is M itself for low eccentricities and π above 0.8, where the flat slope
// near M makes Newton steps overshoot.
func eccentricAnomaly(e, M float64, maxIter int, tol float64) (float64, KeplerStatus) {
	E := M
	if e >= 0.8 {
		E = math.Pi
	}
	f := E - e*math.Sin(E) - M
	iter := 0
	for math.Abs(f) > tol && iter < maxIter {
		E -= f / (1 - e*math.Cos(E))
		f = E - e*math.Sin(E) - M
		iter++
	}
	return E, KeplerStatus{Iterations: iter, Residual: f, Converged: math.Abs(f) <= tol}
}

// hyperbolicAnomaly solves M = e·sinh(H) - H for e > 1.
func hyperbolicAnomaly(e, M float64, maxIter int, tol float64) (float64, KeplerStatus) {
	H := M
	f := e*math.Sinh(H) - H - M
	iter := 0
	for math.Abs(f) > tol && iter < maxIter {
		H -= f / (e*math.Cosh(H) - 1)
		f = e*math.Sinh(H) - H - M
		iter++
	}
	return H, KeplerStatus{Iterations: iter, Residual: f, Converged: math.Abs(f) <= tol}
}

// MeanAnomalyFromTrue inverts the anomaly relation of SolveKepler, branching
// on the regime. NaN for parabolic orbits, and NaN ν passes through.
func MeanAnomalyFromTrue(ν, e float64) float64 {
	switch {
	case e < 1:
		E := 2 * math.Atan2(math.Sqrt(1-e)*math.Sin(ν/2), math.Sqrt(1+e)*math.Cos(ν/2))
		return wrapTwoPi(E - e*math.Sin(E))
	case e > 1:
		H := 2 * math.Atanh(math.Sqrt((e-1)/(e+1))*math.Tan(ν/2))
		return e*math.Sinh(H) - H
	default:
		return math.NaN()
	}
}

// MeanMotion returns n = √(μ/|a|³) in radians per day.
func MeanMotion(μ, a float64) float64 {
	return math.Sqrt(μ / math.Abs(a*a*a))
}

// ParabolicMeanMotion returns the parabolic mean motion √(μ/(2q³)), which
// uses the periapsis distance q since a is undefined at e = 1.
func ParabolicMeanMotion(μ, q float64) float64 {
	return math.Sqrt(μ / (2 * q * q * q))
}

// Period returns the orbital period 2π/n in days, +Inf for unbound orbits.
func Period(n, e float64) float64 {
	if e < 1 {
		return 2 * math.Pi / n
	}
	return math.Inf(1)
}

// PeriodStrict is Period for callers which prefer an error over the +Inf
// sentinel on unbound orbits.
func PeriodStrict(n, e float64) (float64, error) {
	if e >= 1 {
		return 0, fmt.Errorf("period of an orbit with e=%g: %w", e, ErrUnsupportedRegime)
	}
	return 2 * math.Pi / n, nil
}

// ApoapsisStrict returns Q = a·(1+e), or ErrUnsupportedRegime for unbound
// orbits whose apoapsis distance is the +Inf sentinel.
func ApoapsisStrict(a, e float64) (float64, error) {
	if e >= 1 {
		return 0, fmt.Errorf("apoapsis of an orbit with e=%g: %w", e, ErrUnsupportedRegime)
	}
	return a * (1 + e), nil
}

// TimeOfPeriapsis returns the epoch of periapsis passage in days. Elliptical
// orbits past apoapsis (M > π) reach periapsis ahead of the epoch; all other
// cases place the passage M/n days behind it. The M = π boundary takes the
// latter branch.
func TimeOfPeriapsis(t0, M, n, P, e float64) float64 {
	var Δt float64
	if M > math.Pi && e < 1 {
		Δt = P - M/n
	} else {
		Δt = -M / n
	}
	return t0 + Δt
}

// MeanAnomalyFromPeriapsis inverts TimeOfPeriapsis, recovering the mean
// anomaly at epoch t0 from the periapsis passage time tp.
func MeanAnomalyFromPeriapsis(t0, tp, n, P, e float64) float64 {
	Δtp := tp - t0
	if e < 1 {
		if Δtp < 0 {
			return 2 * math.Pi * -Δtp / P
		}
		return 2 * math.Pi * (P - Δtp) / P
	}
	return -n * Δtp
}
