package thor

import (
	"gonum.org/v1/gonum/mat"
)

// CartesianCoordinates holds position and velocity state vectors in au and
// au/day.
type CartesianCoordinates struct {
	coordinateBase
}

var _ Coordinates = (*CartesianCoordinates)(nil)

// NewCartesianCoordinates builds a container from rows of (x, y, z, vx, vy,
// vz). A NaN component marks that dimension as missing and masks it together
// with its covariance row and column.
func NewCartesianCoordinates(rows [][]float64, epochs *Epochs, covs Covariances, frame Frame, origin Origin) (*CartesianCoordinates, error) {
	base, err := newCoordinateBase(rows, epochs, covs, frame, origin)
	if err != nil {
		return nil, err
	}
	return &CartesianCoordinates{base}, nil
}

// Representation returns the Cartesian tag.
func (c *CartesianCoordinates) Representation() Representation {
	return Cartesian
}

// X returns the x-position of row i in au.
func (c *CartesianCoordinates) X(i int) float64 { return c.At(i, 0) }

// Y returns the y-position of row i in au.
func (c *CartesianCoordinates) Y(i int) float64 { return c.At(i, 1) }

// Z returns the z-position of row i in au.
func (c *CartesianCoordinates) Z(i int) float64 { return c.At(i, 2) }

// VX returns the x-velocity of row i in au/day.
func (c *CartesianCoordinates) VX(i int) float64 { return c.At(i, 3) }

// VY returns the y-velocity of row i in au/day.
func (c *CartesianCoordinates) VY(i int) float64 { return c.At(i, 4) }

// VZ returns the z-velocity of row i in au/day.
func (c *CartesianCoordinates) VZ(i int) float64 { return c.At(i, 5) }

// R returns the position vector of row i.
func (c *CartesianCoordinates) R(i int) []float64 {
	return c.Row(i)[:3]
}

// V returns the velocity vector of row i.
func (c *CartesianCoordinates) V(i int) []float64 {
	return c.Row(i)[3:]
}

// RNorm returns the position magnitude of row i in au.
func (c *CartesianCoordinates) RNorm(i int) float64 {
	return norm(c.R(i))
}

// VNorm returns the velocity magnitude of row i in au/day.
func (c *CartesianCoordinates) VNorm(i int) float64 {
	return norm(c.V(i))
}

// rotateRow applies a 6×6 rotation to one row. Structurally zero
// coefficients are skipped so that a masked dimension only poisons the
// outputs it actually feeds.
func rotateRow(m *mat.Dense, row []float64) []float64 {
	out := make([]float64, coordinateDims)
	for j := 0; j < coordinateDims; j++ {
		var sum float64
		for k := 0; k < coordinateDims; k++ {
			if c := m.At(j, k); c != 0 {
				sum += c * row[k]
			}
		}
		out[j] = sum
	}
	return out
}

// Rotate applies a 6×6 rotation to every state vector and its covariance and
// returns a new container tagged with the given frame. The receiver is left
// untouched.
func (c *CartesianCoordinates) Rotate(m *mat.Dense, frame Frame) *CartesianCoordinates {
	rows := make([][]float64, c.Len())
	for i := range rows {
		rows[i] = rotateRow(m, c.Row(i))
	}
	out, err := NewCartesianCoordinates(rows, c.epochs, rotateCovariances(c.covs, m), frame, c.origin)
	if err != nil {
		panic(err)
	}
	frameRotations.WithLabelValues(c.frame.String(), frame.String()).Inc()
	return out
}

// ToEquatorial returns these coordinates in the equatorial frame, or the
// receiver itself when already there.
func (c *CartesianCoordinates) ToEquatorial() *CartesianCoordinates {
	if c.frame == Equatorial {
		return c
	}
	return c.Rotate(TransformEC2EQ(), Equatorial)
}

// ToEcliptic returns these coordinates in the ecliptic frame, or the
// receiver itself when already there.
func (c *CartesianCoordinates) ToEcliptic() *CartesianCoordinates {
	if c.frame == Ecliptic {
		return c
	}
	return c.Rotate(TransformEQ2EC(), Ecliptic)
}
