package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ClampRating maps any numeric input onto [MinRating, MaxRating].
// NaN and values below the range become MinRating; in-range values,
// fractional ones included, are kept as is.
func ClampRating(v float64) float64 {
	if math.IsNaN(v) || v <= MinRating {
		return MinRating
	}
	if v >= MaxRating {
		return MaxRating
	}
	return v
}

// ParseRating converts a loosely-typed rating value (number, numeric string,
// bool, null) into a float. Non-numeric input yields NaN, which ClampRating
// turns into MinRating.
func ParseRating(raw json.RawMessage) float64 {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return math.NaN()
	}
	switch x := v.(type) {
	case float64:
		return x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}
