package thor

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// KeplerianState is the full expansion of one orbit's Keplerian elements,
// the fundamental six plus the quantities derived from them. Distances are
// in au, angles in degrees, rates in degrees per day and epochs in MJD.
// Regime-undefined quantities carry their sentinel: NaN for the semi-major
// axis of a parabola and the anomalies of a circle, +Inf for the apoapsis
// distance and period of an unbound orbit.
type KeplerianState struct {
	SemiMajorAxis     float64 // a
	SemiLatusRectum   float64 // p
	PeriapsisDistance float64 // q
	ApoapsisDistance  float64 // Q
	Eccentricity      float64 // e
	Inclination       float64 // i
	RAAN              float64 // Ω
	ArgPeriapsis      float64 // ω
	MeanAnomaly       float64 // M
	TrueAnomaly       float64 // ν
	MeanMotion        float64 // n
	Period            float64 // P
	TimeOfPeriapsis   float64 // tp
}

// fundamental returns the six stored element dimensions.
func (s KeplerianState) fundamental() []float64 {
	return []float64{s.SemiMajorAxis, s.Eccentricity, s.Inclination, s.RAAN, s.ArgPeriapsis, s.MeanAnomaly}
}

// CartesianToKeplerianState converts a single Cartesian state vector (x, y,
// z in au, vx, vy, vz in au/day) at epoch t0 (MJD) into the full Keplerian
// expansion about a body of gravitational parameter μ. Cf. Vallado 4th
// edition, algorithm 9.
func CartesianToKeplerianState(state []float64, t0, μ float64) KeplerianState {
	R := state[:3]
	V := state[3:6]
	rNorm := norm(R)
	vNorm := norm(V)
	ξ := vNorm*vNorm/2 - μ/rNorm
	h := cross(R, V)
	hNorm := norm(h)
	nVec := cross([]float64{0, 0, 1}, h)
	nNorm := norm(nVec)
	rv := dot(R, V)
	eVec := make([]float64, 3)
	for j := 0; j < 3; j++ {
		eVec[j] = ((vNorm*vNorm-μ/rNorm)*R[j] - rv*V[j]) / μ
	}
	e := norm(eVec)
	p := hNorm * hNorm / μ

	inc := math.Acos(h[2] / hNorm)
	Ω := math.Acos(nVec[0] / nNorm)
	if nVec[1] < 0 {
		Ω = 2*math.Pi - Ω
	}
	ω := math.Acos(dot(nVec, eVec) / (nNorm * e))
	if eVec[2] < 0 {
		ω = 2*math.Pi - ω
	}
	// The true anomaly of a circular orbit is undefined: there is no
	// periapsis to measure it from.
	ν := math.NaN()
	if e != 0 {
		cosν := dot(eVec, R) / (e * rNorm)
		// Rounding can push cosν just past ±1 for exactly periapsal states.
		if abscosν := math.Abs(cosν); abscosν > 1 && scalar.EqualWithinAbs(abscosν, 1, 1e-12) {
			cosν = sign(cosν)
		}
		ν = math.Acos(cosν)
		if rv < 0 {
			ν = 2*math.Pi - ν
		}
	}

	a := math.NaN()
	q := p / 2
	if e != 1 {
		a = μ / (-2 * ξ)
		q = a * (1 - e)
	}
	Q := math.Inf(1)
	if e < 1 {
		Q = a * (1 + e)
	}
	M := MeanAnomalyFromTrue(ν, e)
	n := ParabolicMeanMotion(μ, q)
	if e != 1 {
		n = MeanMotion(μ, a)
	}
	P := Period(n, e)
	tp := TimeOfPeriapsis(t0, M, n, P, e)

	return KeplerianState{
		SemiMajorAxis:     a,
		SemiLatusRectum:   p,
		PeriapsisDistance: q,
		ApoapsisDistance:  Q,
		Eccentricity:      e,
		Inclination:       Rad2deg(inc),
		RAAN:              Rad2deg(Ω),
		ArgPeriapsis:      Rad2deg(ω),
		MeanAnomaly:       M / deg2rad,
		TrueAnomaly:       Rad2deg(ν),
		MeanMotion:        n / deg2rad,
		Period:            P,
		TimeOfPeriapsis:   tp,
	}
}

// KeplerianToCartesianState converts the fundamental six elements (a, e, i,
// raan, ap, M, with angles in degrees) into a Cartesian state vector. The
// position and velocity are built in the perifocal frame from the conic
// equation and rotated into the inertial frame through the 3-1-3 sequence.
func KeplerianToCartesianState(elements []float64, μ float64, maxIter int, tol float64) []float64 {
	a := elements[0]
	e := elements[1]
	inc := Deg2rad(elements[2])
	Ω := Deg2rad(elements[3])
	ω := Deg2rad(elements[4])
	M := elements[5] * deg2rad
	p := a * (1 - e*e)

	ν, status := SolveKeplerStatus(e, M, maxIter, tol)
	if e != 1 && !status.Converged {
		keplerNonConvergences.Inc()
	}
	sν, cν := math.Sincos(ν)
	rPQW := []float64{p * cν / (1 + e*cν), p * sν / (1 + e*cν), 0}
	vPQW := []float64{-math.Sqrt(μ/p) * sν, math.Sqrt(μ/p) * (e + cν), 0}
	R := PQW2ECI(inc, ω, Ω, rPQW)
	V := PQW2ECI(inc, ω, Ω, vPQW)
	return []float64{R[0], R[1], R[2], V[0], V[1], V[2]}
}

// KeplerianCoordinates holds classical orbital elements: semi-major axis in
// au; eccentricity; inclination, node, argument of periapsis and mean
// anomaly in degrees. The gravitational parameter is carried on the
// container, never fixed globally.
type KeplerianCoordinates struct {
	coordinateBase
	μ float64
}

var _ Coordinates = (*KeplerianCoordinates)(nil)

// NewKeplerianCoordinates builds a container from rows of (a, e, i, raan,
// ap, M). μ is the gravitational parameter of the origin body in au³/day².
// A NaN element marks that dimension as missing and masks it together with
// its covariance row and column.
func NewKeplerianCoordinates(rows [][]float64, epochs *Epochs, covs Covariances, frame Frame, origin Origin, μ float64) (*KeplerianCoordinates, error) {
	base, err := newCoordinateBase(rows, epochs, covs, frame, origin)
	if err != nil {
		return nil, err
	}
	return &KeplerianCoordinates{base, μ}, nil
}

// Representation returns the Keplerian tag.
func (c *KeplerianCoordinates) Representation() Representation {
	return Keplerian
}

// GM returns the gravitational parameter μ in au³/day².
func (c *KeplerianCoordinates) GM() float64 {
	return c.μ
}

// SemiMajorAxis returns a of row i in au.
func (c *KeplerianCoordinates) SemiMajorAxis(i int) float64 { return c.At(i, 0) }

// Eccentricity returns e of row i.
func (c *KeplerianCoordinates) Eccentricity(i int) float64 { return c.At(i, 1) }

// Inclination returns i of row i in degrees.
func (c *KeplerianCoordinates) Inclination(i int) float64 { return c.At(i, 2) }

// RAAN returns the right ascension of the ascending node of row i in degrees.
func (c *KeplerianCoordinates) RAAN(i int) float64 { return c.At(i, 3) }

// ArgPeriapsis returns the argument of periapsis of row i in degrees.
func (c *KeplerianCoordinates) ArgPeriapsis(i int) float64 { return c.At(i, 4) }

// MeanAnomaly returns M of row i in degrees.
func (c *KeplerianCoordinates) MeanAnomaly(i int) float64 { return c.At(i, 5) }

// SemiLatusRectum returns p = a(1-e²) of row i in au.
func (c *KeplerianCoordinates) SemiLatusRectum(i int) float64 {
	a, e := c.At(i, 0), c.At(i, 1)
	return a * (1 - e*e)
}

// PeriapsisDistance returns q = a(1-e) of row i in au.
func (c *KeplerianCoordinates) PeriapsisDistance(i int) float64 {
	a, e := c.At(i, 0), c.At(i, 1)
	return a * (1 - e)
}

// ApoapsisDistance returns Q = a(1+e) of row i in au, +Inf for unbound
// orbits.
func (c *KeplerianCoordinates) ApoapsisDistance(i int) float64 {
	a, e := c.At(i, 0), c.At(i, 1)
	if e < 1 {
		return a * (1 + e)
	}
	return math.Inf(1)
}

// ApoapsisDistanceStrict is ApoapsisDistance returning ErrUnsupportedRegime
// instead of the +Inf sentinel.
func (c *KeplerianCoordinates) ApoapsisDistanceStrict(i int) (float64, error) {
	return ApoapsisStrict(c.At(i, 0), c.At(i, 1))
}

// MeanMotion returns n of row i in degrees per day.
func (c *KeplerianCoordinates) MeanMotion(i int) float64 {
	return MeanMotion(c.μ, c.At(i, 0)) / deg2rad
}

// Period returns the orbital period of row i in days, +Inf for unbound
// orbits.
func (c *KeplerianCoordinates) Period(i int) float64 {
	return Period(MeanMotion(c.μ, c.At(i, 0)), c.At(i, 1))
}

// PeriodStrict is Period returning ErrUnsupportedRegime instead of the +Inf
// sentinel.
func (c *KeplerianCoordinates) PeriodStrict(i int) (float64, error) {
	return PeriodStrict(MeanMotion(c.μ, c.At(i, 0)), c.At(i, 1))
}

// TrueAnomaly returns ν of row i in degrees, solving Kepler's equation at
// the configured iteration cap and tolerance.
func (c *KeplerianCoordinates) TrueAnomaly(i int) float64 {
	cfg := engineConfig()
	ν := SolveKepler(c.At(i, 1), c.At(i, 5)*deg2rad, cfg.MaxKeplerIterations, cfg.KeplerTolerance)
	return Rad2deg(ν)
}

// TimeOfPeriapsis returns the epoch of periapsis passage of row i in MJD.
func (c *KeplerianCoordinates) TimeOfPeriapsis(i int) float64 {
	e := c.At(i, 1)
	n := MeanMotion(c.μ, c.At(i, 0))
	return TimeOfPeriapsis(c.epochs.MJD(i), c.At(i, 5)*deg2rad, n, Period(n, e), e)
}

// State returns the full Keplerian expansion of row i.
func (c *KeplerianCoordinates) State(i int) KeplerianState {
	a, e := c.At(i, 0), c.At(i, 1)
	n := MeanMotion(c.μ, a)
	P := Period(n, e)
	return KeplerianState{
		SemiMajorAxis:     a,
		SemiLatusRectum:   c.SemiLatusRectum(i),
		PeriapsisDistance: c.PeriapsisDistance(i),
		ApoapsisDistance:  c.ApoapsisDistance(i),
		Eccentricity:      e,
		Inclination:       c.At(i, 2),
		RAAN:              c.At(i, 3),
		ArgPeriapsis:      c.At(i, 4),
		MeanAnomaly:       c.At(i, 5),
		TrueAnomaly:       c.TrueAnomaly(i),
		MeanMotion:        n / deg2rad,
		Period:            P,
		TimeOfPeriapsis:   TimeOfPeriapsis(c.epochs.MJD(i), c.At(i, 5)*deg2rad, n, P, e),
	}
}

// CartesianToKeplerian converts a Cartesian container into Keplerian
// elements about a body of gravitational parameter μ, propagating any
// covariance through the conversion Jacobian. Rows convert independently
// and in order; failed rows carry sentinels, they are never dropped.
func CartesianToKeplerian(c *CartesianCoordinates, μ float64) (*KeplerianCoordinates, error) {
	epochs := c.epochs
	fn := func(i int, row []float64) []float64 {
		return CartesianToKeplerianState(row, epochs.MJD(i), μ).fundamental()
	}
	rows := make([][]float64, c.Len())
	parallelRows(c.Len(), func(i int) {
		rows[i] = fn(i, c.Row(i))
	})
	covs, err := TransformCovariances(c.Rows(), c.covs, fn)
	if err != nil {
		return nil, err
	}
	conversions.WithLabelValues(Cartesian.String(), Keplerian.String()).Inc()
	return NewKeplerianCoordinates(rows, c.epochs, covs, c.frame, c.origin, μ)
}

// KeplerianToCartesian converts a Keplerian container into Cartesian state
// vectors, propagating any covariance through the conversion Jacobian.
func KeplerianToCartesian(c *KeplerianCoordinates) (*CartesianCoordinates, error) {
	cfg := engineConfig()
	fn := func(i int, row []float64) []float64 {
		return KeplerianToCartesianState(row, c.μ, cfg.MaxKeplerIterations, cfg.KeplerTolerance)
	}
	rows := make([][]float64, c.Len())
	parallelRows(c.Len(), func(i int) {
		rows[i] = fn(i, c.Row(i))
	})
	covs, err := TransformCovariances(c.Rows(), c.covs, fn)
	if err != nil {
		return nil, err
	}
	conversions.WithLabelValues(Keplerian.String(), Cartesian.String()).Inc()
	return NewCartesianCoordinates(rows, c.epochs, covs, c.frame, c.origin)
}
