// Package convert provides overflow-safe integer conversions.
package convert

import "math"

// ClampInt32 converts v to int32, saturating at the int32 bounds.
func ClampInt32(v int) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

// ClampUint converts v to uint, mapping negatives to 0.
func ClampUint(v int) uint {
	if v < 0 {
		return 0
	}
	return uint(v)
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
