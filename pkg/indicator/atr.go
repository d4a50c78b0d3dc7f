package indicator

import (
	"math"

	"github.com/c9s/ta/pkg/types"
)

/*
atr implements the average true range with Wilder smoothing.

Average True Range (ATR)
- https://www.investopedia.com/terms/a/atr.asp

The first bar's true range is high - low; later bars take the maximum of
the bar range and the gaps against the previous close. The seed at index
period-1 is the mean of the first period true ranges.
*/
type ATR struct {
	period int

	smoother  *Wilder
	prevClose float64
	hasPrev   bool
}

func NewATR(period int) (*ATR, error) {
	if period < 1 {
		return nil, errInvalidParameterf("atr: period must be >= 1, got %d", period)
	}

	return &ATR{period: period, smoother: NewWilder(period)}, nil
}

func (inc *ATR) Window() int { return inc.period }

func trueRange(high, low, prevClose float64) float64 {
	tr := high - low
	if d := math.Abs(high - prevClose); d > tr {
		tr = d
	}
	if d := math.Abs(low - prevClose); d > tr {
		tr = d
	}

	return tr
}

func (inc *ATR) Calculate(high, low, closes []float64) ([]float64, error) {
	if len(high) != len(low) || len(high) != len(closes) {
		return nil, errMismatchedLengths(len(high), len(low), len(closes))
	}

	out := make([]float64, len(high))
	smoother := NewWilder(inc.period)
	for i := range high {
		tr := high[i] - low[i]
		if i > 0 {
			tr = trueRange(high[i], low[i], closes[i-1])
		}

		v, ok := smoother.Update(tr)
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = v
	}

	return out, nil
}

func (inc *ATR) Init(prefix []types.OHLCV) ([]float64, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanFloat), nil
}

func (inc *ATR) Next(k types.OHLCV) (float64, bool) {
	tr := k.High - k.Low
	if inc.hasPrev {
		tr = trueRange(k.High, k.Low, inc.prevClose)
	}
	inc.prevClose = k.Close
	inc.hasPrev = true

	v, ok := inc.smoother.Update(tr)
	if !ok {
		return math.NaN(), false
	}

	return v, true
}

func (inc *ATR) Reset() {
	inc.smoother.Reset()
	inc.prevClose = 0
	inc.hasPrev = false
}

func (inc *ATR) Ready() bool { return inc.smoother.Ready() }

var _ Stream[types.OHLCV, float64] = (*ATR)(nil)
