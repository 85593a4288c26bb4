package geo

import (
	"math"
	"strings"
)

const (
	// UnitKilometers selects kilometers.
	UnitKilometers = "KM"
	// UnitNautical selects nautical miles.
	UnitNautical = "N"
	// UnitMiles is the statute miles default. Any unknown unit falls back to it.
	UnitMiles = "M"

	milesPerDegree  = 60 * 1.1515
	kilometersRatio = 1.609344
	nauticalRatio   = 0.8684
)

// Distance returns the great-circle distance between a and b in the given unit,
// using the spherical law of cosines. The unit is matched case-insensitively.
func Distance(a, b Coordinates, unit string) (float64, error) {
	if a.Latitude == b.Latitude && a.Longitude == b.Longitude {
		return 0, nil
	}

	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	theta := radians(a.Longitude - b.Longitude)

	cosine := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(theta)
	// Rounding can push nearly identical or antipodal points just outside acos's domain.
	cosine = math.Max(-1, math.Min(1, cosine))

	dist := degrees(math.Acos(cosine)) * milesPerDegree

	switch NormalizeUnit(unit) {
	case UnitKilometers:
		dist *= kilometersRatio
	case UnitNautical:
		dist *= nauticalRatio
	}

	return dist, nil
}

// NormalizeUnit maps a free-form unit to one of UnitKilometers, UnitNautical or UnitMiles.
func NormalizeUnit(unit string) string {
	switch u := strings.ToUpper(strings.TrimSpace(unit)); u {
	case UnitKilometers, UnitNautical:
		return u
	default:
		return UnitMiles
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
