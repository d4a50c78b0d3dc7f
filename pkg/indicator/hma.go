package indicator

import (
	"math"

	"github.com/pkg/errors"
)

/*
hma implements the Hull moving average, a fast low-lag average built from
three chained WMAs.

Hull Moving Average (HMA)
- https://alanhull.com/hull-moving-average

	HMA = WMA(2 * WMA(x, period/2) - WMA(x, period), floor(sqrt(period)))
*/
type HMA struct {
	period     int
	sqrtPeriod int

	short *WMA
	long  *WMA
	post  *WMA
}

func NewHMA(period int) (*HMA, error) {
	if period < 2 {
		return nil, errInvalidParameterf("hma: period must be >= 2, got %d", period)
	}

	sqrtPeriod := int(math.Sqrt(float64(period)))
	if sqrtPeriod < 1 {
		sqrtPeriod = 1
	}

	short, err := NewWMA(period / 2)
	if err != nil {
		return nil, errors.Wrap(err, "hma: half-period wma")
	}
	long, err := NewWMA(period)
	if err != nil {
		return nil, errors.Wrap(err, "hma: full-period wma")
	}
	post, err := NewWMA(sqrtPeriod)
	if err != nil {
		return nil, errors.Wrap(err, "hma: sqrt-period wma")
	}

	return &HMA{period: period, sqrtPeriod: sqrtPeriod, short: short, long: long, post: post}, nil
}

func (inc *HMA) Window() int { return inc.period }

func (inc *HMA) Calculate(values []float64) ([]float64, error) {
	shortVals, err := inc.short.Calculate(values)
	if err != nil {
		return nil, err
	}
	longVals, err := inc.long.Calculate(values)
	if err != nil {
		return nil, err
	}

	// The 2*short-long series only exists once the full-period WMA does.
	raw := make([]float64, 0, len(values))
	for i := range values {
		if math.IsNaN(longVals[i]) {
			continue
		}
		raw = append(raw, 2*shortVals[i]-longVals[i])
	}

	rawOut, err := inc.post.Calculate(raw)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	for j, v := range rawOut {
		out[inc.period-1+j] = v
	}

	return out, nil
}

func (inc *HMA) Init(prefix []float64) ([]float64, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanFloat), nil
}

func (inc *HMA) Next(v float64) (float64, bool) {
	sv, sok := inc.short.Next(v)
	lv, lok := inc.long.Next(v)
	if !sok || !lok {
		return math.NaN(), false
	}

	return inc.post.Next(2*sv - lv)
}

func (inc *HMA) Reset() {
	inc.short.Reset()
	inc.long.Reset()
	inc.post.Reset()
}

func (inc *HMA) Ready() bool { return inc.post.Ready() }

var _ Stream[float64, float64] = (*HMA)(nil)
