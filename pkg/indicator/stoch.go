package indicator

import (
	"math"

	"github.com/c9s/ta/pkg/types"
)

// DefaultStochSlowing is the %K smoothing window applied in slow mode.
const DefaultStochSlowing = 3

/*
stoch implements the stochastic oscillator in both fast and slow variants.

Stochastic Oscillator
- https://www.investopedia.com/terms/s/stochasticoscillator.asp

Raw %K = 100 * (close - lowest low) / (highest high - lowest low) over the
lookback, 50 when the range is zero. Fast mode reports the raw %K; slow
mode smooths it with an SMA first. %D is an SMA of the reported %K.
*/
type StochMode int

const (
	StochFast StochMode = iota
	StochSlow
)

type StochValue struct {
	K float64
	D float64
}

func nanStochValue() StochValue {
	n := math.NaN()
	return StochValue{K: n, D: n}
}

type Stoch struct {
	kPeriod int
	dPeriod int
	slowing int
	mode    StochMode

	highest *MaxDeque
	lowest  *MinDeque
	count   int
	kSum    *RollingSum
	dSum    *RollingSum
}

func NewStoch(kPeriod, dPeriod int, mode StochMode) (*Stoch, error) {
	return NewStochWithSlowing(kPeriod, dPeriod, DefaultStochSlowing, mode)
}

func NewStochWithSlowing(kPeriod, dPeriod, slowing int, mode StochMode) (*Stoch, error) {
	if kPeriod < 1 || dPeriod < 1 || slowing < 1 {
		return nil, errInvalidParameterf("stoch: periods must be >= 1, got k=%d d=%d slowing=%d", kPeriod, dPeriod, slowing)
	}

	return &Stoch{
		kPeriod: kPeriod,
		dPeriod: dPeriod,
		slowing: slowing,
		mode:    mode,
		highest: NewMaxDeque(kPeriod),
		lowest:  NewMinDeque(kPeriod),
		kSum:    NewRollingSum(slowing),
		dSum:    NewRollingSum(dPeriod),
	}, nil
}

func rawStochValue(highest, lowest, cloze float64) float64 {
	if r := highest - lowest; r > 0 {
		return 100. * (cloze - lowest) / r
	}

	return 50.
}

func (inc *Stoch) Calculate(high, low, closes []float64) ([]StochValue, error) {
	if len(high) != len(low) || len(high) != len(closes) {
		return nil, errMismatchedLengths(len(high), len(low), len(closes))
	}

	out := make([]StochValue, len(high))
	highest := NewMaxDeque(inc.kPeriod)
	lowest := NewMinDeque(inc.kPeriod)
	kSum := NewRollingSum(inc.slowing)
	dSum := NewRollingSum(inc.dPeriod)
	for i := range high {
		highest.Push(i, high[i])
		lowest.Push(i, low[i])
		if i < inc.kPeriod-1 {
			out[i] = nanStochValue()
			continue
		}

		maxH, _ := highest.Top()
		minL, _ := lowest.Top()
		k := rawStochValue(maxH, minL, closes[i])
		if inc.mode == StochSlow {
			kSum.Push(k)
			if !kSum.Full() {
				out[i] = nanStochValue()
				continue
			}
			k = kSum.Mean()
		}

		dSum.Push(k)
		if !dSum.Full() {
			out[i] = StochValue{K: k, D: math.NaN()}
			continue
		}
		out[i] = StochValue{K: k, D: dSum.Mean()}
	}

	return out, nil
}

func (inc *Stoch) Init(prefix []types.OHLCV) ([]StochValue, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanStochValue), nil
}

// Next returns a partial record with NaN %D while the %D window is still
// filling.
func (inc *Stoch) Next(bar types.OHLCV) (StochValue, bool) {
	i := inc.count
	inc.count++
	inc.highest.Push(i, bar.High)
	inc.lowest.Push(i, bar.Low)
	if inc.count < inc.kPeriod {
		return nanStochValue(), false
	}

	maxH, _ := inc.highest.Top()
	minL, _ := inc.lowest.Top()
	k := rawStochValue(maxH, minL, bar.Close)
	if inc.mode == StochSlow {
		inc.kSum.Push(k)
		if !inc.kSum.Full() {
			return nanStochValue(), false
		}
		k = inc.kSum.Mean()
	}

	inc.dSum.Push(k)
	if !inc.dSum.Full() {
		return StochValue{K: k, D: math.NaN()}, true
	}

	return StochValue{K: k, D: inc.dSum.Mean()}, true
}

func (inc *Stoch) Reset() {
	inc.highest.Reset()
	inc.lowest.Reset()
	inc.count = 0
	inc.kSum.Reset()
	inc.dSum.Reset()
}

func (inc *Stoch) Ready() bool {
	if inc.mode == StochSlow {
		return inc.kSum.Full()
	}

	return inc.count >= inc.kPeriod
}

var _ Stream[types.OHLCV, StochValue] = (*Stoch)(nil)
