package indicator

import "math"

/*
ema implements the exponential moving average.

Exponential Moving Average (EMA)
- https://www.investopedia.com/terms/e/ema.asp

The first value is seeded with the SMA of the first period inputs, the
pandas adjust=False convention:

	result = data.ewm(span=period, adjust=False).mean()

with the seed replaced by the plain mean of the first window.
*/
type EMA struct {
	period int
	alpha  float64

	count int
	sum   float64
	value float64
}

func NewEMA(period int) (*EMA, error) {
	if period < 1 {
		return nil, errInvalidParameterf("ema: period must be >= 1, got %d", period)
	}

	return &EMA{period: period, alpha: 2.0 / float64(period+1)}, nil
}

// NewEMAWithAlpha overrides the default smoothing multiplier 2/(period+1).
// alpha must be in (0, 1].
func NewEMAWithAlpha(period int, alpha float64) (*EMA, error) {
	if period < 1 {
		return nil, errInvalidParameterf("ema: period must be >= 1, got %d", period)
	}
	if !(alpha > 0 && alpha <= 1) {
		return nil, errInvalidParameterf("ema: alpha must be in (0, 1], got %v", alpha)
	}

	return &EMA{period: period, alpha: alpha}, nil
}

func (inc *EMA) Window() int { return inc.period }

func (inc *EMA) Alpha() float64 { return inc.alpha }

func (inc *EMA) Calculate(values []float64) ([]float64, error) {
	out := make([]float64, len(values))
	var sum, prev float64
	for i, v := range values {
		if i < inc.period {
			sum += v
			if i < inc.period-1 {
				out[i] = math.NaN()
				continue
			}
			prev = sum / float64(inc.period)
			out[i] = prev
			continue
		}

		prev = v*inc.alpha + prev*(1-inc.alpha)
		out[i] = prev
	}

	return out, nil
}

func (inc *EMA) Init(prefix []float64) ([]float64, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanFloat), nil
}

func (inc *EMA) Next(v float64) (float64, bool) {
	if inc.count < inc.period {
		inc.count++
		inc.sum += v
		if inc.count < inc.period {
			return math.NaN(), false
		}
		inc.value = inc.sum / float64(inc.period)
		return inc.value, true
	}

	inc.value = v*inc.alpha + inc.value*(1-inc.alpha)
	return inc.value, true
}

func (inc *EMA) Reset() {
	inc.count = 0
	inc.sum = 0
	inc.value = 0
}

func (inc *EMA) Ready() bool { return inc.count >= inc.period }

var _ Stream[float64, float64] = (*EMA)(nil)
