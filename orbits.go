package thor

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Orbits bundles a set of orbits under stable identifiers with one seed
// coordinate representation. Alternate representations derive lazily on
// first access and stay memoized for the container's life; everything else
// is immutable after construction.
type Orbits struct {
	ids       []string
	objectIDs []string
	seed      Coordinates

	mu    sync.Mutex
	cache map[Representation]Coordinates
}

// NewOrbits builds a container over the given coordinates. A nil ids slice
// generates a fresh 32-character hex identifier per orbit; a nil objectIDs
// slice marks every orbit as an unknown object ("None"). Non-nil slices
// must match the coordinate row count.
func NewOrbits(coords Coordinates, ids, objectIDs []string) (*Orbits, error) {
	n := coords.Len()
	switch {
	case ids == nil:
		ids = make([]string, n)
		for i := range ids {
			ids[i] = strings.ReplaceAll(uuid.New().String(), "-", "")
		}
	case len(ids) != n:
		return nil, fmt.Errorf("%d ids for %d orbits: %w", len(ids), n, ErrInvalidShape)
	default:
		ids = append([]string(nil), ids...)
	}
	switch {
	case objectIDs == nil:
		objectIDs = make([]string, n)
		for i := range objectIDs {
			objectIDs[i] = "None"
		}
	case len(objectIDs) != n:
		return nil, fmt.Errorf("%d object ids for %d orbits: %w", len(objectIDs), n, ErrInvalidShape)
	default:
		objectIDs = append([]string(nil), objectIDs...)
	}
	return &Orbits{
		ids:       ids,
		objectIDs: objectIDs,
		seed:      coords,
		cache:     map[Representation]Coordinates{coords.Representation(): coords},
	}, nil
}

// Len returns the number of orbits.
func (o *Orbits) Len() int {
	return o.seed.Len()
}

// ID returns the identifier of orbit i.
func (o *Orbits) ID(i int) string {
	return o.ids[i]
}

// ObjectID returns the object identifier of orbit i, "None" when the orbit
// is not attributed to a known object.
func (o *Orbits) ObjectID(i int) string {
	return o.objectIDs[i]
}

// Epochs returns the epochs shared by every representation.
func (o *Orbits) Epochs() *Epochs {
	return o.seed.Epochs()
}

// gm returns the gravitational parameter the seed representation was built
// with, falling back to the origin body's.
func (o *Orbits) gm() float64 {
	switch v := o.seed.(type) {
	case *KeplerianCoordinates:
		return v.GM()
	case *CometaryCoordinates:
		return v.GM()
	}
	return o.seed.Origin().Body().GM()
}

// representation returns the memoized coordinates under the given tag,
// converting on first request. Conversions are idempotent, but the cache
// map write needs the lock.
func (o *Orbits) representation(rep Representation) (Coordinates, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.representationLocked(rep)
}

func (o *Orbits) representationLocked(rep Representation) (Coordinates, error) {
	if c, ok := o.cache[rep]; ok {
		return c, nil
	}
	if rep == Cartesian {
		cart, err := ToCartesian(o.seed)
		if err != nil {
			return nil, err
		}
		o.cache[Cartesian] = cart
		return cart, nil
	}
	hub, err := o.representationLocked(Cartesian)
	if err != nil {
		return nil, err
	}
	cart := hub.(*CartesianCoordinates)
	var c Coordinates
	switch rep {
	case Keplerian:
		c, err = CartesianToKeplerian(cart, o.gm())
	case Cometary:
		c, err = CartesianToCometary(cart, o.gm())
	case Spherical:
		c, err = CartesianToSpherical(cart)
	default:
		return nil, fmt.Errorf("%s: %w", rep, ErrUnknownRepresentation)
	}
	if err != nil {
		return nil, err
	}
	o.cache[rep] = c
	return c, nil
}

// Cartesian returns the orbits as Cartesian state vectors.
func (o *Orbits) Cartesian() (*CartesianCoordinates, error) {
	c, err := o.representation(Cartesian)
	if err != nil {
		return nil, err
	}
	return c.(*CartesianCoordinates), nil
}

// Keplerian returns the orbits as Keplerian elements.
func (o *Orbits) Keplerian() (*KeplerianCoordinates, error) {
	c, err := o.representation(Keplerian)
	if err != nil {
		return nil, err
	}
	return c.(*KeplerianCoordinates), nil
}

// Cometary returns the orbits as cometary elements.
func (o *Orbits) Cometary() (*CometaryCoordinates, error) {
	c, err := o.representation(Cometary)
	if err != nil {
		return nil, err
	}
	return c.(*CometaryCoordinates), nil
}

// Spherical returns the orbits as spherical coordinates.
func (o *Orbits) Spherical() (*SphericalCoordinates, error) {
	c, err := o.representation(Spherical)
	if err != nil {
		return nil, err
	}
	return c.(*SphericalCoordinates), nil
}
