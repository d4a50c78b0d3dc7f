package floats

import "math"

// CrossOver reports whether a closed above b on the last bar after being
// at or below it on the bar before. Any NaN among the four points involved
// reports false, so warmup output can be fed in directly.
func CrossOver(a, b Slice) bool {
	if len(a) < 2 || len(b) < 2 {
		return false
	}

	n, m := len(a), len(b)
	prev := a.Last(1) - b.Last(1)
	curr := a[n-1] - b[m-1]
	if math.IsNaN(prev) || math.IsNaN(curr) {
		return false
	}

	return prev <= 0 && curr > 0
}

// CrossUnder reports whether a closed below b on the last bar after being
// at or above it on the bar before.
func CrossUnder(a, b Slice) bool {
	if len(a) < 2 || len(b) < 2 {
		return false
	}

	n, m := len(a), len(b)
	prev := a.Last(1) - b.Last(1)
	curr := a[n-1] - b[m-1]
	if math.IsNaN(prev) || math.IsNaN(curr) {
		return false
	}

	return prev >= 0 && curr < 0
}
