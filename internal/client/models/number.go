package models

import (
	"math"
	"strconv"
)

// NonNegative clamps v to be >= 0. NaN becomes 0.
func NonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// FormatNumber prints v without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
