// Package geo computes great-circle distances between restaurant
// coordinates and a caller-supplied reference point.
package geo

import (
	"math"
	"strconv"
)

// EarthRadiusKm is the mean radius of Earth used for Haversine distance.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// points specified by latitude and longitude in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// DistanceKm parses the four coordinates and returns the Haversine
// distance in kilometers. Dataset coordinates arrive as free-text
// strings; if any of them fails to parse the result is nil, meaning
// "distance unknown" — callers exclude such records from distance
// filtering and sorting rather than treating this as an error.
func DistanceKm(lat1, lon1, lat2, lon2 string) *float64 {
	a1, err1 := strconv.ParseFloat(lat1, 64)
	o1, err2 := strconv.ParseFloat(lon1, 64)
	a2, err3 := strconv.ParseFloat(lat2, 64)
	o2, err4 := strconv.ParseFloat(lon2, 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return nil
	}
	d := Haversine(a1, o1, a2, o2)
	return &d
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
