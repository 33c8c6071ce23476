package thor

import "errors"

// Sentinel errors returned by container constructors and strict accessors.
// Wrap sites use fmt.Errorf with %w so callers can match with errors.Is.
var (
	// ErrInvalidShape signals mismatched lengths among coordinates, epochs,
	// covariances or identifiers. Raised before any partial batch work.
	ErrInvalidShape = errors.New("thor: mismatched input shapes")

	// ErrUnsupportedRegime signals a derived quantity that is undefined for
	// the orbit's eccentricity regime (e.g. the period of a hyperbola).
	ErrUnsupportedRegime = errors.New("thor: quantity undefined for eccentricity regime")

	// ErrNonConvergence signals that the Kepler solver exhausted its
	// iterations before meeting tolerance. The last iterate is still valid
	// and returned alongside; only strict callers treat this as an error.
	ErrNonConvergence = errors.New("thor: kepler solver did not converge")

	// ErrDimensionMismatch signals a covariance whose rank does not match
	// the number of unmasked coordinate dimensions of its row.
	ErrDimensionMismatch = errors.New("thor: covariance rank does not match unmasked dimensions")
)

// Unknown-identifier errors, fatal at entry.
var (
	ErrUnknownFrame          = errors.New("thor: unknown reference frame")
	ErrUnknownOrigin         = errors.New("thor: unknown coordinate origin")
	ErrUnknownTimeScale      = errors.New("thor: unknown time scale")
	ErrUnknownRepresentation = errors.New("thor: unknown coordinate representation")
)
