package indicator

import "math"

/*
wma implements the linearly weighted moving average: weights 1..period with
the most recent value heaviest, denominator period*(period+1)/2.

Weighted Moving Average (WMA)
- https://www.investopedia.com/articles/technical/060401.asp

The O(1) sliding update uses the identity

	weighted' = weighted - simple + x_new * period

where simple is the plain sum over the current window.
*/
type WMA struct {
	period int
	denom  float64

	buf         *RingBuffer
	weightedSum float64
	simpleSum   float64
}

func NewWMA(period int) (*WMA, error) {
	if period < 1 {
		return nil, errInvalidParameterf("wma: period must be >= 1, got %d", period)
	}

	return &WMA{
		period: period,
		denom:  float64(period) * float64(period+1) / 2.0,
		buf:    NewRingBuffer(period),
	}, nil
}

func (inc *WMA) Window() int { return inc.period }

func (inc *WMA) Calculate(values []float64) ([]float64, error) {
	out := make([]float64, len(values))
	var weighted, simple float64
	for i, v := range values {
		if i < inc.period {
			weighted += float64(i+1) * v
			simple += v
			if i < inc.period-1 {
				out[i] = math.NaN()
				continue
			}
		} else {
			weighted += float64(inc.period)*v - simple
			simple += v - values[i-inc.period]
		}
		out[i] = weighted / inc.denom
	}

	return out, nil
}

func (inc *WMA) Init(prefix []float64) ([]float64, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanFloat), nil
}

func (inc *WMA) Next(v float64) (float64, bool) {
	if !inc.buf.Full() {
		inc.buf.Push(v)
		inc.simpleSum += v
		inc.weightedSum += float64(inc.buf.Len()) * v
		if !inc.buf.Full() {
			return math.NaN(), false
		}
		return inc.weightedSum / inc.denom, true
	}

	inc.weightedSum += float64(inc.period)*v - inc.simpleSum
	oldest, _ := inc.buf.Push(v)
	inc.simpleSum += v - oldest
	return inc.weightedSum / inc.denom, true
}

func (inc *WMA) Reset() {
	inc.buf.Reset()
	inc.weightedSum = 0
	inc.simpleSum = 0
}

func (inc *WMA) Ready() bool { return inc.buf.Full() }

var _ Stream[float64, float64] = (*WMA)(nil)
