// Package indicator implements technical-analysis indicators in two modes:
// a batch Calculate over a complete input series, and a stateful stream fed
// one update at a time. Both modes of the same indicator agree element-wise;
// output positions inside the warmup window are NaN scalars or records whose
// not-yet-formed fields are NaN.
package indicator

import "math"

// Stream is the stateful side of an indicator. In is the per-step input,
// float64 for single-series indicators and types.OHLCV for bar indicators.
type Stream[In, Out any] interface {
	// Init resets the stream and replays prefix, returning one output per
	// input. The returned series is identical to a batch Calculate over the
	// same data.
	Init(prefix []In) ([]Out, error)

	// Next consumes one update and returns the current value. The second
	// return is false while the indicator is warming up and no value exists.
	Next(in In) (Out, bool)

	// Reset drops all accumulated state, keeping the parameters.
	Reset()

	// Ready reports whether the stream has consumed enough input to produce
	// fully formed values.
	Ready() bool
}

// replay drives prefix through next, substituting nan() wherever the stream
// has no value yet. Init implementations share it after their Reset.
func replay[In, Out any](prefix []In, next func(In) (Out, bool), nan func() Out) []Out {
	out := make([]Out, len(prefix))
	for i, v := range prefix {
		res, ok := next(v)
		if !ok {
			res = nan()
		}
		out[i] = res
	}
	return out
}

func nanFloat() float64 { return math.NaN() }
