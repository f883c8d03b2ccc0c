package shopping

import "math"

// addAmount returns a+b and false when the sum leaves the int64 range.
func addAmount(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, false
	}
	return a + b, true
}
