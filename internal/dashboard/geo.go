package dashboard

import (
	"math"
	"time"
)

const earthRadiusKm = 6371

// Rating colours for the mood cards
const (
	ColorHigh   = "#69F0AE"
	ColorMedium = "#FFD740"
	ColorLow    = "#FF5252"
)

// Distance is the great-circle distance in whole kilometres (haversine, truncated)
func Distance(lat1, lon1, lat2, lon2 float64) int {
	phi1, phi2 := radians(lat1), radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	a := math.Pow(math.Sin(dPhi/2), 2) + math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dLambda/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return int(earthRadiusKm * c)
}

// DaysUntil counts whole days from now to target, rounding down.
// It goes negative once target has passed.
func DaysUntil(now, target time.Time) int {
	return int(math.Floor(target.Sub(now).Hours() / 24))
}

// RatingColor maps a 1-10 rating to a card colour
func RatingColor(rating int) string {
	switch {
	case rating >= 8:
		return ColorHigh
	case rating >= 4:
		return ColorMedium
	default:
		return ColorLow
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
