package utils

import (
	"math"
)

// Clamp limits a value between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// MaskSecret keeps the first n characters of a secret and replaces the rest,
// used when echoing configured credentials on status endpoints
func MaskSecret(s string, n int) string {
	if s == "" {
		return "Not Set"
	}
	if len(s) <= n {
		return s + "***"
	}
	return s[:n] + "***"
}
