package utils

import "math"

// FloatPtr returns nil for a negative value, which CLI flags use as "unset".
func FloatPtr(v float64) *float64 {
	if v < 0 {
		return nil
	}
	return &v
}

func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
