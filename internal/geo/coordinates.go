package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinates is returned when a point is not a finite position on the globe.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Coordinates is an immutable geographic point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SearchPreference is the area a worker is willing to travel within.
// MaxJobDistance is expressed in Unit.
type SearchPreference struct {
	Coordinates
	Unit           string  `json:"unit"`
	MaxJobDistance float64 `json:"maxJobDistance"`
}

// Validate reports whether c is finite and within the latitude/longitude ranges.
func (c Coordinates) Validate() error {
	switch {
	case math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0):
		return fmt.Errorf("%w: latitude is not a finite number", ErrInvalidCoordinates)
	case math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0):
		return fmt.Errorf("%w: longitude is not a finite number", ErrInvalidCoordinates)
	case c.Latitude < -90 || c.Latitude > 90:
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidCoordinates, c.Latitude)
	case c.Longitude < -180 || c.Longitude > 180:
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidCoordinates, c.Longitude)
	}
	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%v, %v)", c.Latitude, c.Longitude)
}
