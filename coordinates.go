package thor

import (
	"fmt"
	"math"
)

// coordinateDims is fixed at 6 for every representation: three coordinates
// and their three time derivatives.
const coordinateDims = 6

// Representation tags the closed set of coordinate representations handled
// by this package. Conversions exist for every ordered pair, routed through
// Cartesian (see TransformCoordinates).
type Representation uint8

const (
	// Cartesian is a position and velocity state vector (x, y, z, vx, vy, vz).
	Cartesian Representation = iota
	// Keplerian is the classical element set (a, e, i, raan, ap, M).
	Keplerian
	// Cometary is the periapsis-anchored element set (q, e, i, raan, ap, tp).
	Cometary
	// Spherical is (rho, lon, lat, vrho, vlon, vlat).
	Spherical
)

// ParseRepresentation returns the representation from its lowercase name.
func ParseRepresentation(name string) (Representation, error) {
	switch name {
	case "cartesian":
		return Cartesian, nil
	case "keplerian":
		return Keplerian, nil
	case "cometary":
		return Cometary, nil
	case "spherical":
		return Spherical, nil
	default:
		return Cartesian, ErrUnknownRepresentation
	}
}

// String implements the Stringer interface.
func (r Representation) String() string {
	switch r {
	case Cartesian:
		return "cartesian"
	case Keplerian:
		return "keplerian"
	case Cometary:
		return "cometary"
	case Spherical:
		return "spherical"
	}
	return "unknown"
}

// Frame identifies the reference plane of a state vector.
type Frame uint8

const (
	// Ecliptic is the J2000 heliocentric ecliptic frame.
	Ecliptic Frame = iota
	// Equatorial is the J2000 Earth equatorial frame.
	Equatorial
)

// ParseFrame returns the frame from its lowercase name.
func ParseFrame(name string) (Frame, error) {
	switch name {
	case "ecliptic":
		return Ecliptic, nil
	case "equatorial":
		return Equatorial, nil
	default:
		return Ecliptic, ErrUnknownFrame
	}
}

// String implements the Stringer interface.
func (f Frame) String() string {
	switch f {
	case Ecliptic:
		return "ecliptic"
	case Equatorial:
		return "equatorial"
	}
	return "unknown"
}

// Origin identifies the point state vectors are referred to.
type Origin uint8

const (
	// Heliocenter is the center of the Sun.
	Heliocenter Origin = iota
	// Barycenter is the solar system barycenter.
	Barycenter
)

// ParseOrigin returns the origin from its lowercase name.
func ParseOrigin(name string) (Origin, error) {
	switch name {
	case "heliocenter":
		return Heliocenter, nil
	case "barycenter":
		return Barycenter, nil
	default:
		return Heliocenter, ErrUnknownOrigin
	}
}

// String implements the Stringer interface.
func (o Origin) String() string {
	switch o {
	case Heliocenter:
		return "heliocenter"
	case Barycenter:
		return "barycenter"
	}
	return "unknown"
}

// Body returns the celestial object sitting at this origin.
func (o Origin) Body() CelestialObject {
	if o == Barycenter {
		return SSBarycenter
	}
	return Sun
}

// Coordinates is the closed set of coordinate containers. It is sealed: the
// four representation types of this package are its only implementations.
type Coordinates interface {
	Representation() Representation
	Len() int
	Epochs() *Epochs
	Covariances() Covariances
	Frame() Frame
	Origin() Origin
	sealed()
}

// coordinateBase is the storage shared by every representation: row-major
// N×6 values with a parallel mask, one epoch per row, optional covariances
// and frame/origin tags. A NaN ingested value marks a missing dimension and
// sets its mask bit; missing dimensions read back as NaN, never as a silent
// zero. Containers are immutable after construction.
type coordinateBase struct {
	values []float64
	mask   []bool
	epochs *Epochs
	covs   Covariances
	frame  Frame
	origin Origin
}

// newCoordinateBase ingests caller rows, deriving the mask from NaNs and
// validating epoch and covariance shapes before any further work.
func newCoordinateBase(rows [][]float64, epochs *Epochs, covs Covariances, frame Frame, origin Origin) (coordinateBase, error) {
	n := len(rows)
	if epochs == nil {
		return coordinateBase{}, fmt.Errorf("nil epochs for %d coordinate rows: %w", n, ErrInvalidShape)
	}
	if epochs.Len() != n {
		return coordinateBase{}, fmt.Errorf("%d epochs for %d coordinate rows: %w", epochs.Len(), n, ErrInvalidShape)
	}
	values := make([]float64, n*coordinateDims)
	mask := make([]bool, n*coordinateDims)
	for i, row := range rows {
		if len(row) != coordinateDims {
			return coordinateBase{}, fmt.Errorf("row %d has %d dimensions, want %d: %w", i, len(row), coordinateDims, ErrInvalidShape)
		}
		for j, v := range row {
			values[i*coordinateDims+j] = v
			if math.IsNaN(v) {
				mask[i*coordinateDims+j] = true
			}
		}
	}
	ingested, err := ingestCovariances(covs, mask)
	if err != nil {
		return coordinateBase{}, err
	}
	// Epochs are immutable, so containers and their conversions share one
	// value rather than copying per representation.
	return coordinateBase{values: values, mask: mask, epochs: epochs, covs: ingested, frame: frame, origin: origin}, nil
}

// Len returns the number of coordinate rows.
func (c coordinateBase) Len() int {
	return len(c.values) / coordinateDims
}

// At returns the value at row i, dimension j; NaN when masked.
func (c coordinateBase) At(i, j int) float64 {
	if c.mask[i*coordinateDims+j] {
		return math.NaN()
	}
	return c.values[i*coordinateDims+j]
}

// Row returns a copy of row i with NaN in its masked dimensions.
func (c coordinateBase) Row(i int) []float64 {
	row := make([]float64, coordinateDims)
	for j := range row {
		row[j] = c.At(i, j)
	}
	return row
}

// Rows returns a copy of all rows.
func (c coordinateBase) Rows() [][]float64 {
	rows := make([][]float64, c.Len())
	for i := range rows {
		rows[i] = c.Row(i)
	}
	return rows
}

// Masked returns whether dimension j of row i is missing.
func (c coordinateBase) Masked(i, j int) bool {
	return c.mask[i*coordinateDims+j]
}

// unmaskedDims lists the populated dimensions of row i in ascending order.
func (c coordinateBase) unmaskedDims(i int) []int {
	dims := make([]int, 0, coordinateDims)
	for j := 0; j < coordinateDims; j++ {
		if !c.mask[i*coordinateDims+j] {
			dims = append(dims, j)
		}
	}
	return dims
}

// Epochs returns the per-row epochs. Epochs expose no mutating methods, so
// the internal value is shared.
func (c coordinateBase) Epochs() *Epochs {
	return c.epochs
}

// Covariances returns a deep copy of the per-row covariances, nil when none
// were provided.
func (c coordinateBase) Covariances() Covariances {
	return c.covs.Copy()
}

// Frame returns the reference frame tag.
func (c coordinateBase) Frame() Frame {
	return c.frame
}

// Origin returns the coordinate origin tag.
func (c coordinateBase) Origin() Origin {
	return c.origin
}

func (c coordinateBase) sealed() {}
