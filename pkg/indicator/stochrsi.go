package indicator

import (
	"math"

	"github.com/pkg/errors"
)

/*
stochrsi runs the stochastic formula over RSI values instead of prices.

Stochastic RSI
- https://www.investopedia.com/terms/s/stochrsi.asp

Stages: RSI stream over the prices, windowed min/max over the RSI values,
raw stochastic (50 on a flat window), SMA smoothing into %K, SMA of %K
into %D. The extrema windows advance only when the RSI emits a value, and
records where %K exists but %D does not carry a NaN %D.
*/
type StochRSI struct {
	rsiPeriod   int
	stochPeriod int
	kSmooth     int
	dPeriod     int

	rsi      *RSI
	highest  *MaxDeque
	lowest   *MinDeque
	rsiCount int
	kSum     *RollingSum
	dSum     *RollingSum
}

func NewStochRSI(rsiPeriod, stochPeriod, kSmooth, dPeriod int) (*StochRSI, error) {
	if rsiPeriod < 1 || stochPeriod < 1 || kSmooth < 1 || dPeriod < 1 {
		return nil, errInvalidParameterf("stochrsi: periods must be >= 1, got rsi=%d stoch=%d k=%d d=%d",
			rsiPeriod, stochPeriod, kSmooth, dPeriod)
	}

	rsi, err := NewRSI(rsiPeriod)
	if err != nil {
		return nil, errors.Wrap(err, "stochrsi: rsi stage")
	}

	return &StochRSI{
		rsiPeriod:   rsiPeriod,
		stochPeriod: stochPeriod,
		kSmooth:     kSmooth,
		dPeriod:     dPeriod,
		rsi:         rsi,
		highest:     NewMaxDeque(stochPeriod),
		lowest:      NewMinDeque(stochPeriod),
		kSum:        NewRollingSum(kSmooth),
		dSum:        NewRollingSum(dPeriod),
	}, nil
}

func (inc *StochRSI) Calculate(values []float64) ([]StochValue, error) {
	rsiVals, err := inc.rsi.Calculate(values)
	if err != nil {
		return nil, err
	}

	out := make([]StochValue, len(values))
	highest := NewMaxDeque(inc.stochPeriod)
	lowest := NewMinDeque(inc.stochPeriod)
	kSum := NewRollingSum(inc.kSmooth)
	dSum := NewRollingSum(inc.dPeriod)
	j := 0
	for i := range values {
		out[i] = nanStochValue()
		r := rsiVals[i]
		if math.IsNaN(r) {
			continue
		}

		highest.Push(j, r)
		lowest.Push(j, r)
		j++
		if j < inc.stochPeriod {
			continue
		}

		maxR, _ := highest.Top()
		minR, _ := lowest.Top()
		raw := rawStochValue(maxR, minR, r)

		kSum.Push(raw)
		if !kSum.Full() {
			continue
		}
		k := kSum.Mean()

		dSum.Push(k)
		if !dSum.Full() {
			out[i] = StochValue{K: k, D: math.NaN()}
			continue
		}
		out[i] = StochValue{K: k, D: dSum.Mean()}
	}

	return out, nil
}

func (inc *StochRSI) Init(prefix []float64) ([]StochValue, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanStochValue), nil
}

func (inc *StochRSI) Next(v float64) (StochValue, bool) {
	r, ok := inc.rsi.Next(v)
	if !ok {
		return nanStochValue(), false
	}

	i := inc.rsiCount
	inc.rsiCount++
	inc.highest.Push(i, r)
	inc.lowest.Push(i, r)
	if inc.rsiCount < inc.stochPeriod {
		return nanStochValue(), false
	}

	maxR, _ := inc.highest.Top()
	minR, _ := inc.lowest.Top()
	raw := rawStochValue(maxR, minR, r)

	inc.kSum.Push(raw)
	if !inc.kSum.Full() {
		return nanStochValue(), false
	}
	k := inc.kSum.Mean()

	inc.dSum.Push(k)
	if !inc.dSum.Full() {
		return StochValue{K: k, D: math.NaN()}, true
	}

	return StochValue{K: k, D: inc.dSum.Mean()}, true
}

func (inc *StochRSI) Reset() {
	inc.rsi.Reset()
	inc.highest.Reset()
	inc.lowest.Reset()
	inc.rsiCount = 0
	inc.kSum.Reset()
	inc.dSum.Reset()
}

func (inc *StochRSI) Ready() bool { return inc.kSum.Full() }

var _ Stream[float64, StochValue] = (*StochRSI)(nil)
