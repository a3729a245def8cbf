package needs

import (
	"math"
	"strconv"
	"strings"
)

// Rating bounds of the survey scale (1 = no need .. 5 = urgent need).
const (
	MinRating = 1.0
	MaxRating = 5.0
	MidRating = 3.0
)

// ClampRating forces a numeric rating into the survey scale. NaN and
// infinities map to the midpoint, the lenient default for unusable values.
func ClampRating(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MidRating
	}
	if v < MinRating {
		return MinRating
	}
	if v > MaxRating {
		return MaxRating
	}
	return v
}

// ParseRating coerces an arbitrary form value into a valid rating. Numbers
// are clamped, numeric strings parsed then clamped, and anything unparseable
// (or absent, passed as nil) defaults to the midpoint. Self-assessment input
// is never rejected over a bad value.
func ParseRating(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return ClampRating(v)
	case float32:
		return ClampRating(float64(v))
	case int:
		return ClampRating(float64(v))
	case int64:
		return ClampRating(float64(v))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return MidRating
		}
		return ClampRating(f)
	default:
		return MidRating
	}
}
