package thor

import (
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
)

// TimeScale identifies the time scale a set of epochs is expressed in.
type TimeScale uint8

const (
	// TDB is barycentric dynamical time, the native scale of solar system
	// ephemerides and the default for every conversion in this package.
	TDB TimeScale = iota
	// TT is terrestrial time.
	TT
	// UTC is coordinated universal time.
	UTC
)

// ParseTimeScale returns the time scale from its lowercase name.
func ParseTimeScale(name string) (TimeScale, error) {
	switch name {
	case "tdb":
		return TDB, nil
	case "tt":
		return TT, nil
	case "utc":
		return UTC, nil
	default:
		return TDB, ErrUnknownTimeScale
	}
}

// String implements the Stringer interface.
func (s TimeScale) String() string {
	switch s {
	case TDB:
		return "tdb"
	case TT:
		return "tt"
	case UTC:
		return "utc"
	}
	return "unknown"
}

// Epochs holds one epoch per coordinate row as modified Julian dates in a
// single time scale.
type Epochs struct {
	mjd   []float64
	scale TimeScale
}

// NewEpochs returns epochs from the provided MJDs, copying the slice.
func NewEpochs(mjd []float64, scale TimeScale) *Epochs {
	c := make([]float64, len(mjd))
	copy(c, mjd)
	return &Epochs{mjd: c, scale: scale}
}

// SingleEpoch returns n identical epochs, for containers whose rows share one
// observation time.
func SingleEpoch(mjd float64, n int, scale TimeScale) *Epochs {
	c := make([]float64, n)
	for i := range c {
		c[i] = mjd
	}
	return &Epochs{mjd: c, scale: scale}
}

// EpochFromTime returns the MJD of a given civil time.
func EpochFromTime(dt time.Time) float64 {
	return julian.TimeToJD(dt) - base.JMod
}

// Len returns the number of epochs.
func (e *Epochs) Len() int {
	return len(e.mjd)
}

// Scale returns the time scale of these epochs.
func (e *Epochs) Scale() TimeScale {
	return e.scale
}

// MJD returns the i-th epoch as a modified Julian date.
func (e *Epochs) MJD(i int) float64 {
	return e.mjd[i]
}

// JD returns the i-th epoch as a Julian date.
func (e *Epochs) JD(i int) float64 {
	return e.mjd[i] + base.JMod
}

// Time returns the i-th epoch as a civil time. Scale offsets (TDB-UTC is
// about a minute) are ignored in this calendar representation.
func (e *Epochs) Time(i int) time.Time {
	return julian.JDToTime(e.JD(i))
}

// Copy returns a deep copy.
func (e *Epochs) Copy() *Epochs {
	return NewEpochs(e.mjd, e.scale)
}
