package thor

import (
	"strings"
)

const (
	// AU is one astronomical unit in kilometers.
	AU = 1.49597870700e8
	// GaussK is the Gaussian gravitational constant in au^(3/2) per day.
	GaussK = 0.01720209895
	// MU is the heliocentric gravitational parameter k² in au³/day².
	MU = GaussK * GaussK
	// MUBarycentric adds the IAU 1976 planetary system masses to the Sun's,
	// for states referred to the solar system barycenter.
	MUBarycentric = MU * (1 + 0.0013418386459889656)
)

// CelestialObject defines a celestial object.
// Distances are in au and gravitational parameters in au³/day², the working
// units of every conversion in this package.
type CelestialObject struct {
	Name   string
	Radius float64
	μ      float64
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c *CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "earth":
		return Earth, nil
	case "ssb", "barycenter":
		return SSBarycenter, nil
	default:
		return CelestialObject{}, ErrUnknownOrigin
	}
}

/* Definitions */

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 0.004650467260962157, MU}

// Earth is home.
var Earth = CelestialObject{"Earth", 4.2635212310292725e-5, 8.887692390807402e-10}

// SSBarycenter is the solar system barycenter, a massless bookkeeping origin
// carrying the summed gravitational parameter of the Sun and planets.
var SSBarycenter = CelestialObject{"SSB", 0, MUBarycentric}
