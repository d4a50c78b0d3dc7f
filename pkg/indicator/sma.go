package indicator

import "math"

/*
sma implements the simple moving average, the arithmetic mean over a sliding
window.

Simple Moving Average (SMA)
- https://www.investopedia.com/terms/s/sma.asp

The batch form matches pandas: Series.rolling(window).mean()
*/
type SMA struct {
	window int
	sum    *RollingSum
}

func NewSMA(window int) (*SMA, error) {
	if window < 1 {
		return nil, errInvalidParameterf("sma: window must be >= 1, got %d", window)
	}

	return &SMA{window: window, sum: NewRollingSum(window)}, nil
}

func (inc *SMA) Window() int { return inc.window }

// Calculate computes the moving average over the whole series. Positions
// before the window fills are NaN.
func (inc *SMA) Calculate(values []float64) ([]float64, error) {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= inc.window {
			sum -= values[i-inc.window]
		}
		if i < inc.window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(inc.window)
	}

	return out, nil
}

func (inc *SMA) Init(prefix []float64) ([]float64, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanFloat), nil
}

func (inc *SMA) Next(v float64) (float64, bool) {
	inc.sum.Push(v)
	if !inc.sum.Full() {
		return math.NaN(), false
	}

	return inc.sum.Mean(), true
}

func (inc *SMA) Reset() { inc.sum.Reset() }

func (inc *SMA) Ready() bool { return inc.sum.Full() }

var _ Stream[float64, float64] = (*SMA)(nil)
