package floats

import "math"

// Slice is a float64 series. Indicator outputs mark their warmup prefix
// with NaN, so the whole-series aggregations here skip NaN entries rather
// than propagating them.
type Slice []float64

func New(a ...float64) Slice {
	return Slice(a)
}

func (s *Slice) Push(v float64) {
	*s = append(*s, v)
}

// Max returns the largest non-NaN value, or NaN when there is none.
func (s Slice) Max() float64 {
	m := math.NaN()
	for _, v := range s {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(m) || v > m {
			m = v
		}
	}
	return m
}

// Min returns the smallest non-NaN value, or NaN when there is none.
func (s Slice) Min() float64 {
	m := math.NaN()
	for _, v := range s {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(m) || v < m {
			m = v
		}
	}
	return m
}

func (s Slice) Sum() (sum float64) {
	for _, v := range s {
		if math.IsNaN(v) {
			continue
		}
		sum += v
	}
	return sum
}

// Mean averages the non-NaN values, 0 for an all-NaN or empty series.
func (s Slice) Mean() float64 {
	var sum float64
	var n int
	for _, v := range s {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0.0
	}
	return sum / float64(n)
}

func (s Slice) Add(b Slice) (c Slice) {
	c = make(Slice, len(s))
	for i, v := range s {
		c[i] = v + b[i]
	}
	return c
}

func (s Slice) Sub(b Slice) (c Slice) {
	c = make(Slice, len(s))
	for i, v := range s {
		c[i] = v - b[i]
	}
	return c
}

// Tail copies out the last size elements, or the whole series when it is
// shorter than size.
func (s Slice) Tail(size int) Slice {
	length := len(s)
	if length <= size {
		win := make(Slice, length)
		copy(win, s)
		return win
	}

	win := make(Slice, size)
	copy(win, s[length-size:])
	return win
}

// Truncate returns a shrunk view keeping the last size elements. The
// underlying array is shared.
func (s Slice) Truncate(size int) Slice {
	if size < 0 || len(s) <= size {
		return s
	}

	return s[len(s)-size:]
}

// Last returns the value at the i-th position from the tail, 0 being the
// most recent. Out-of-range access returns 0.
func (s Slice) Last(i int) float64 {
	length := len(s)
	if i < 0 || length-1-i < 0 {
		return 0.0
	}
	return s[length-1-i]
}

// Diff returns the successive differences s[i+1] - s[i], one element
// shorter than the receiver.
func (s Slice) Diff() (d Slice) {
	if len(s) < 2 {
		return d
	}

	d = make(Slice, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		d = append(d, s[i]-s[i-1])
	}
	return d
}

// Finite copies out the non-NaN values, dropping the warmup prefix and
// any interior gaps.
func (s Slice) Finite() Slice {
	out := make(Slice, 0, len(s))
	for _, v := range s {
		if math.IsNaN(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (s Slice) Length() int {
	return len(s)
}
