package thor

import (
	"fmt"
)

// ToCartesian converts any representation into Cartesian state vectors,
// returning the input untouched when it already is one.
func ToCartesian(c Coordinates) (*CartesianCoordinates, error) {
	switch v := c.(type) {
	case *CartesianCoordinates:
		return v, nil
	case *KeplerianCoordinates:
		return KeplerianToCartesian(v)
	case *CometaryCoordinates:
		return CometaryToCartesian(v)
	case *SphericalCoordinates:
		return SphericalToCartesian(v)
	}
	return nil, fmt.Errorf("%s: %w", c.Representation(), ErrUnknownRepresentation)
}

// TransformCoordinates converts a container into the requested
// representation, routing through Cartesian as the hub so that every
// ordered pair of representations is reachable through exactly one
// conversion function per leg. The input container is returned as-is when
// it already has the target representation. The gravitational parameter is
// taken from the source container when it carries one, and from its origin
// body otherwise.
func TransformCoordinates(c Coordinates, to Representation) (Coordinates, error) {
	if c.Representation() == to {
		return c, nil
	}
	μ := c.Origin().Body().GM()
	switch v := c.(type) {
	case *KeplerianCoordinates:
		μ = v.GM()
	case *CometaryCoordinates:
		μ = v.GM()
	}
	cart, err := ToCartesian(c)
	if err != nil {
		return nil, err
	}
	switch to {
	case Cartesian:
		return cart, nil
	case Keplerian:
		return CartesianToKeplerian(cart, μ)
	case Cometary:
		return CartesianToCometary(cart, μ)
	case Spherical:
		return CartesianToSpherical(cart)
	}
	return nil, fmt.Errorf("%s: %w", to, ErrUnknownRepresentation)
}
