package matching

import (
	"math"
	"strings"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
)

const earthRadiusMiles = 3958.8

// DistanceMiles is the great-circle distance between two coordinate pairs.
// ok is false when either side lacks coordinates.
func DistanceMiles(a, b *model.Location) (miles float64, ok bool) {
	if !a.HasCoordinates() || !b.HasCoordinates() {
		return 0, false
	}
	lat1, lon1 := *a.Latitude, *a.Longitude
	lat2, lon2 := *b.Latitude, *b.Longitude

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMiles * c, true
}

// withinRadius reports whether candidate lies within radius miles of origin.
// Coordinates are compared when both sides have them; otherwise equal
// regions count as in range. Anything else is out of range.
func withinRadius(origin, candidate *model.Location, radius int) bool {
	if d, ok := DistanceMiles(origin, candidate); ok {
		return d <= float64(radius)
	}
	if origin == nil || candidate == nil || origin.Region == "" || candidate.Region == "" {
		return false
	}
	return normalize(origin.Region) == normalize(candidate.Region)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
