package indicator

import "math"

/*
boll implements the bollinger bands indicator.

The Basics of Bollinger Bands
- https://www.investopedia.com/articles/technical/102201.asp

Bollinger Bands
- https://www.investopedia.com/terms/b/bollingerbands.asp

The middle band is the SMA of the window, the bands sit k population
standard deviations away. The variance comes from running sums as
E[x^2] - E[x]^2, floored at zero so flat windows cannot produce a negative
value under cancellation.
*/
type BollingerValue struct {
	Upper     float64
	Middle    float64
	Lower     float64
	PercentB  float64
	Bandwidth float64
}

func nanBollingerValue() BollingerValue {
	n := math.NaN()
	return BollingerValue{Upper: n, Middle: n, Lower: n, PercentB: n, Bandwidth: n}
}

type Bollinger struct {
	period int
	// times of the standard deviation, generally 2
	k float64

	buf   *RingBuffer
	sum   float64
	sumSq float64
}

func NewBollinger(period int, k float64) (*Bollinger, error) {
	if period < 1 {
		return nil, errInvalidParameterf("bollinger: period must be >= 1, got %d", period)
	}
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return nil, errInvalidParameterf("bollinger: k must be finite, got %v", k)
	}
	if k <= 0 {
		return nil, errInvalidParameterf("bollinger: k must be > 0, got %v", k)
	}

	return &Bollinger{period: period, k: k, buf: NewRingBuffer(period)}, nil
}

func (inc *Bollinger) Window() int { return inc.period }

func (inc *Bollinger) value(price, sum, sumSq float64) BollingerValue {
	n := float64(inc.period)
	mean := sum / n
	variance := sumSq/n - mean*mean

	sigma := 0.0
	if variance > 0 {
		sigma = math.Sqrt(variance)
	}

	upper := mean + inc.k*sigma
	lower := mean - inc.k*sigma
	width := upper - lower

	percentB := 0.5
	if width > 0 {
		percentB = (price - lower) / width
	}
	bandwidth := 0.0
	if mean > 0 {
		bandwidth = width / mean
	}

	return BollingerValue{
		Upper:     upper,
		Middle:    mean,
		Lower:     lower,
		PercentB:  percentB,
		Bandwidth: bandwidth,
	}
}

func (inc *Bollinger) Calculate(values []float64) ([]BollingerValue, error) {
	out := make([]BollingerValue, len(values))
	var sum, sumSq float64
	for i, v := range values {
		sum += v
		sumSq += v * v
		if i >= inc.period {
			old := values[i-inc.period]
			sum -= old
			sumSq -= old * old
		}
		if i < inc.period-1 {
			out[i] = nanBollingerValue()
			continue
		}
		out[i] = inc.value(v, sum, sumSq)
	}

	return out, nil
}

func (inc *Bollinger) Init(prefix []float64) ([]BollingerValue, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanBollingerValue), nil
}

func (inc *Bollinger) Next(v float64) (BollingerValue, bool) {
	evicted, ok := inc.buf.Push(v)
	inc.sum += v
	inc.sumSq += v * v
	if ok {
		inc.sum -= evicted
		inc.sumSq -= evicted * evicted
	}
	if !inc.buf.Full() {
		return nanBollingerValue(), false
	}

	return inc.value(v, inc.sum, inc.sumSq), true
}

func (inc *Bollinger) Reset() {
	inc.buf.Reset()
	inc.sum = 0
	inc.sumSq = 0
}

func (inc *Bollinger) Ready() bool { return inc.buf.Full() }

var _ Stream[float64, BollingerValue] = (*Bollinger)(nil)
