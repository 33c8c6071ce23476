package thor

import (
	"math"
)

// CometaryToKeplerianElements completes one cometary element set (q, e, i,
// raan, ap, tp) into the fundamental Keplerian six (a, e, i, raan, ap, M) at
// epoch t0, recovering the mean anomaly from the periapsis passage time.
func CometaryToKeplerianElements(elements []float64, t0, μ float64) []float64 {
	q := elements[0]
	e := elements[1]
	tp := elements[5]
	a := q / (1 - e)
	n := ParabolicMeanMotion(μ, q)
	if e != 1 {
		n = MeanMotion(μ, a)
	}
	P := Period(n, e)
	M := MeanAnomalyFromPeriapsis(t0, tp, n, P, e)
	return []float64{a, e, elements[2], elements[3], elements[4], M / deg2rad}
}

// CometaryToCartesianState converts one cometary element set (q in au, e,
// angles in degrees, tp in MJD) at epoch t0 into a Cartesian state vector.
func CometaryToCartesianState(elements []float64, t0, μ float64, maxIter int, tol float64) []float64 {
	return KeplerianToCartesianState(CometaryToKeplerianElements(elements, t0, μ), μ, maxIter, tol)
}

// CartesianToCometaryState converts a single Cartesian state vector at epoch
// t0 into cometary elements (q, e, i, raan, ap, tp).
func CartesianToCometaryState(state []float64, t0, μ float64) []float64 {
	k := CartesianToKeplerianState(state, t0, μ)
	return []float64{k.PeriapsisDistance, k.Eccentricity, k.Inclination, k.RAAN, k.ArgPeriapsis, k.TimeOfPeriapsis}
}

// CometaryCoordinates holds cometary elements: periapsis distance in au;
// eccentricity; inclination, node and argument of periapsis in degrees; and
// the epoch of periapsis passage in MJD. The parameterization stays finite
// through e = 1, which makes it the natural frame for long-period comets and
// interstellar objects.
type CometaryCoordinates struct {
	coordinateBase
	μ float64
}

var _ Coordinates = (*CometaryCoordinates)(nil)

// NewCometaryCoordinates builds a container from rows of (q, e, i, raan, ap,
// tp). μ is the gravitational parameter of the origin body in au³/day².
func NewCometaryCoordinates(rows [][]float64, epochs *Epochs, covs Covariances, frame Frame, origin Origin, μ float64) (*CometaryCoordinates, error) {
	base, err := newCoordinateBase(rows, epochs, covs, frame, origin)
	if err != nil {
		return nil, err
	}
	return &CometaryCoordinates{base, μ}, nil
}

// Representation returns the Cometary tag.
func (c *CometaryCoordinates) Representation() Representation {
	return Cometary
}

// GM returns the gravitational parameter μ in au³/day².
func (c *CometaryCoordinates) GM() float64 {
	return c.μ
}

// PeriapsisDistance returns q of row i in au.
func (c *CometaryCoordinates) PeriapsisDistance(i int) float64 { return c.At(i, 0) }

// Eccentricity returns e of row i.
func (c *CometaryCoordinates) Eccentricity(i int) float64 { return c.At(i, 1) }

// Inclination returns i of row i in degrees.
func (c *CometaryCoordinates) Inclination(i int) float64 { return c.At(i, 2) }

// RAAN returns the right ascension of the ascending node of row i in degrees.
func (c *CometaryCoordinates) RAAN(i int) float64 { return c.At(i, 3) }

// ArgPeriapsis returns the argument of periapsis of row i in degrees.
func (c *CometaryCoordinates) ArgPeriapsis(i int) float64 { return c.At(i, 4) }

// TimeOfPeriapsis returns the epoch of periapsis passage of row i in MJD.
func (c *CometaryCoordinates) TimeOfPeriapsis(i int) float64 { return c.At(i, 5) }

// SemiMajorAxis returns a = q/(1-e) of row i in au.
func (c *CometaryCoordinates) SemiMajorAxis(i int) float64 {
	q, e := c.At(i, 0), c.At(i, 1)
	return q / (1 - e)
}

// SemiLatusRectum returns p = q(1+e) of row i in au.
func (c *CometaryCoordinates) SemiLatusRectum(i int) float64 {
	q, e := c.At(i, 0), c.At(i, 1)
	return q * (1 + e)
}

// ApoapsisDistance returns Q of row i in au, +Inf for unbound orbits.
func (c *CometaryCoordinates) ApoapsisDistance(i int) float64 {
	e := c.At(i, 1)
	if e < 1 {
		return c.SemiMajorAxis(i) * (1 + e)
	}
	return math.Inf(1)
}

// MeanMotion returns n of row i in degrees per day.
func (c *CometaryCoordinates) MeanMotion(i int) float64 {
	q, e := c.At(i, 0), c.At(i, 1)
	if e != 1 {
		return MeanMotion(c.μ, q/(1-e)) / deg2rad
	}
	return ParabolicMeanMotion(c.μ, q) / deg2rad
}

// Period returns the orbital period of row i in days, +Inf for unbound
// orbits.
func (c *CometaryCoordinates) Period(i int) float64 {
	return Period(c.MeanMotion(i)*deg2rad, c.At(i, 1))
}

// MeanAnomaly returns M of row i in degrees, recovered from the periapsis
// passage time relative to the row epoch.
func (c *CometaryCoordinates) MeanAnomaly(i int) float64 {
	e := c.At(i, 1)
	n := c.MeanMotion(i) * deg2rad
	M := MeanAnomalyFromPeriapsis(c.epochs.MJD(i), c.At(i, 5), n, Period(n, e), e)
	return M / deg2rad
}

// State returns the full Keplerian expansion of row i.
func (c *CometaryCoordinates) State(i int) KeplerianState {
	cfg := engineConfig()
	q, e := c.At(i, 0), c.At(i, 1)
	a := q / (1 - e)
	n := c.MeanMotion(i) * deg2rad
	P := Period(n, e)
	M := MeanAnomalyFromPeriapsis(c.epochs.MJD(i), c.At(i, 5), n, P, e)
	if e == 1 {
		a = math.NaN()
	}
	return KeplerianState{
		SemiMajorAxis:     a,
		SemiLatusRectum:   q * (1 + e),
		PeriapsisDistance: q,
		ApoapsisDistance:  c.ApoapsisDistance(i),
		Eccentricity:      e,
		Inclination:       c.At(i, 2),
		RAAN:              c.At(i, 3),
		ArgPeriapsis:      c.At(i, 4),
		MeanAnomaly:       M / deg2rad,
		TrueAnomaly:       Rad2deg(SolveKepler(e, M, cfg.MaxKeplerIterations, cfg.KeplerTolerance)),
		MeanMotion:        n / deg2rad,
		Period:            P,
		TimeOfPeriapsis:   c.At(i, 5),
	}
}

// CometaryToCartesian converts a cometary container into Cartesian state
// vectors, propagating any covariance through the conversion Jacobian.
func CometaryToCartesian(c *CometaryCoordinates) (*CartesianCoordinates, error) {
	cfg := engineConfig()
	epochs := c.epochs
	fn := func(i int, row []float64) []float64 {
		return CometaryToCartesianState(row, epochs.MJD(i), c.μ, cfg.MaxKeplerIterations, cfg.KeplerTolerance)
	}
	rows := make([][]float64, c.Len())
	parallelRows(c.Len(), func(i int) {
		rows[i] = fn(i, c.Row(i))
	})
	covs, err := TransformCovariances(c.Rows(), c.covs, fn)
	if err != nil {
		return nil, err
	}
	conversions.WithLabelValues(Cometary.String(), Cartesian.String()).Inc()
	return NewCartesianCoordinates(rows, c.epochs, covs, c.frame, c.origin)
}

// CartesianToCometary converts a Cartesian container into cometary elements
// about a body of gravitational parameter μ, propagating any covariance
// through the conversion Jacobian.
func CartesianToCometary(c *CartesianCoordinates, μ float64) (*CometaryCoordinates, error) {
	epochs := c.epochs
	fn := func(i int, row []float64) []float64 {
		return CartesianToCometaryState(row, epochs.MJD(i), μ)
	}
	rows := make([][]float64, c.Len())
	parallelRows(c.Len(), func(i int) {
		rows[i] = fn(i, c.Row(i))
	})
	covs, err := TransformCovariances(c.Rows(), c.covs, fn)
	if err != nil {
		return nil, err
	}
	conversions.WithLabelValues(Cartesian.String(), Cometary.String()).Inc()
	return NewCometaryCoordinates(rows, c.epochs, covs, c.frame, c.origin, μ)
}
