package thor

import (
	"math"
)

// CartesianToSphericalState converts a single Cartesian state vector into
// spherical coordinates (rho, lon, lat, vrho, vlon, vlat). Longitude wraps
// to [0, 360), latitude spans [-90, 90], and the angular rates are the raw
// time derivatives in degrees per day. Rows at the origin or on the polar
// axis produce NaN in the dimensions the geometry leaves undefined.
func CartesianToSphericalState(state []float64) []float64 {
	x, y, z := state[0], state[1], state[2]
	vx, vy, vz := state[3], state[4], state[5]
	ρ := norm(state[:3])
	λ := wrapTwoPi(math.Atan2(y, x))
	φ := math.Asin(z / ρ)
	hxy := x*x + y*y
	vρ := dot(state[:3], state[3:6]) / ρ
	vλ := (x*vy - y*vx) / hxy
	vφ := (vz - vρ*math.Sin(φ)) / math.Sqrt(hxy)
	return []float64{ρ, λ / deg2rad, φ / deg2rad, vρ, vλ / deg2rad, vφ / deg2rad}
}

// SphericalToCartesianState converts spherical coordinates (rho in au, lon
// and lat in degrees, vrho in au/day, vlon and vlat in degrees per day) into
// a Cartesian state vector.
func SphericalToCartesianState(elements []float64) []float64 {
	ρ := elements[0]
	λ := elements[1] * deg2rad
	φ := elements[2] * deg2rad
	vρ := elements[3]
	vλ := elements[4] * deg2rad
	vφ := elements[5] * deg2rad
	sλ, cλ := math.Sincos(λ)
	sφ, cφ := math.Sincos(φ)
	x := ρ * cφ * cλ
	y := ρ * cφ * sλ
	z := ρ * sφ
	vx := vρ*cφ*cλ - ρ*sφ*cλ*vφ - ρ*cφ*sλ*vλ
	vy := vρ*cφ*sλ - ρ*sφ*sλ*vφ + ρ*cφ*cλ*vλ
	vz := vρ*sφ + ρ*cφ*vφ
	return []float64{x, y, z, vx, vy, vz}
}

// SphericalCoordinates holds spherical states: radial distance in au,
// longitude and latitude in degrees, and their time derivatives. The
// representation is purely geometric and carries no gravitational
// parameter.
type SphericalCoordinates struct {
	coordinateBase
}

var _ Coordinates = (*SphericalCoordinates)(nil)

// NewSphericalCoordinates builds a container from rows of (rho, lon, lat,
// vrho, vlon, vlat).
func NewSphericalCoordinates(rows [][]float64, epochs *Epochs, covs Covariances, frame Frame, origin Origin) (*SphericalCoordinates, error) {
	base, err := newCoordinateBase(rows, epochs, covs, frame, origin)
	if err != nil {
		return nil, err
	}
	return &SphericalCoordinates{base}, nil
}

// Representation returns the Spherical tag.
func (c *SphericalCoordinates) Representation() Representation {
	return Spherical
}

// Rho returns the radial distance of row i in au.
func (c *SphericalCoordinates) Rho(i int) float64 { return c.At(i, 0) }

// Lon returns the longitude of row i in degrees.
func (c *SphericalCoordinates) Lon(i int) float64 { return c.At(i, 1) }

// Lat returns the latitude of row i in degrees.
func (c *SphericalCoordinates) Lat(i int) float64 { return c.At(i, 2) }

// VRho returns the radial velocity of row i in au per day.
func (c *SphericalCoordinates) VRho(i int) float64 { return c.At(i, 3) }

// VLon returns the longitudinal rate of row i in degrees per day.
func (c *SphericalCoordinates) VLon(i int) float64 { return c.At(i, 4) }

// VLat returns the latitudinal rate of row i in degrees per day.
func (c *SphericalCoordinates) VLat(i int) float64 { return c.At(i, 5) }

// CartesianToSpherical converts a Cartesian container into spherical
// coordinates, propagating any covariance through the conversion Jacobian.
func CartesianToSpherical(c *CartesianCoordinates) (*SphericalCoordinates, error) {
	fn := func(i int, row []float64) []float64 {
		return CartesianToSphericalState(row)
	}
	rows := make([][]float64, c.Len())
	parallelRows(c.Len(), func(i int) {
		rows[i] = fn(i, c.Row(i))
	})
	covs, err := TransformCovariances(c.Rows(), c.covs, fn)
	if err != nil {
		return nil, err
	}
	conversions.WithLabelValues(Cartesian.String(), Spherical.String()).Inc()
	return NewSphericalCoordinates(rows, c.epochs, covs, c.frame, c.origin)
}

// SphericalToCartesian converts a spherical container into Cartesian state
// vectors, propagating any covariance through the conversion Jacobian.
func SphericalToCartesian(c *SphericalCoordinates) (*CartesianCoordinates, error) {
	fn := func(i int, row []float64) []float64 {
		return SphericalToCartesianState(row)
	}
	rows := make([][]float64, c.Len())
	parallelRows(c.Len(), func(i int) {
		rows[i] = fn(i, c.Row(i))
	})
	covs, err := TransformCovariances(c.Rows(), c.covs, fn)
	if err != nil {
		return nil, err
	}
	conversions.WithLabelValues(Spherical.String(), Cartesian.String()).Inc()
	return NewCartesianCoordinates(rows, c.epochs, covs, c.frame, c.origin)
}
