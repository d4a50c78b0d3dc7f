package indicator

import (
	"math"

	"github.com/c9s/ta/pkg/types"
)

/*
mfi implements the money flow index, a volume-weighted RSI.

Money Flow Index (MFI)
- https://www.investopedia.com/terms/m/mfi.asp
- https://school.stockcharts.com/doku.php?id=technical_indicators:money_flow_index_mfi

Raw money flow is typical price times volume; it counts as positive when
the typical price rose against the previous bar, negative when it fell,
and is discarded on an unchanged typical price.
*/
type MFI struct {
	period int

	positive *RollingSum
	negative *RollingSum
	prevTP   float64
	hasPrev  bool
}

func NewMFI(period int) (*MFI, error) {
	if period < 1 {
		return nil, errInvalidParameterf("mfi: period must be >= 1, got %d", period)
	}

	return &MFI{period: period, positive: NewRollingSum(period), negative: NewRollingSum(period)}, nil
}

func (inc *MFI) Window() int { return inc.period }

func mfiValue(positiveSum, negativeSum float64) float64 {
	if negativeSum == 0 {
		return 100.
	}
	if positiveSum == 0 {
		return 0.
	}

	return 100. - 100./(1.+positiveSum/negativeSum)
}

func (inc *MFI) Calculate(high, low, closes, volumes []float64) ([]float64, error) {
	if len(high) != len(low) || len(high) != len(closes) || len(high) != len(volumes) {
		return nil, errMismatchedLengths(len(high), len(low), len(closes), len(volumes))
	}

	out := make([]float64, len(high))
	positive := NewRollingSum(inc.period)
	negative := NewRollingSum(inc.period)
	prevTP := 0.0
	for i := range high {
		tp := (high[i] + low[i] + closes[i]) / 3.
		if i == 0 {
			prevTP = tp
			out[i] = math.NaN()
			continue
		}

		flow := tp * volumes[i]
		pf, nf := 0.0, 0.0
		if tp > prevTP {
			pf = flow
		} else if tp < prevTP {
			nf = flow
		}
		prevTP = tp

		positive.Push(pf)
		negative.Push(nf)
		if !positive.Full() {
			out[i] = math.NaN()
			continue
		}
		out[i] = mfiValue(positive.Sum(), negative.Sum())
	}

	return out, nil
}

func (inc *MFI) Init(prefix []types.OHLCV) ([]float64, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanFloat), nil
}

func (inc *MFI) Next(bar types.OHLCV) (float64, bool) {
	tp := bar.TypicalPrice()
	if !inc.hasPrev {
		inc.prevTP = tp
		inc.hasPrev = true
		return math.NaN(), false
	}

	flow := tp * bar.Volume
	pf, nf := 0.0, 0.0
	if tp > inc.prevTP {
		pf = flow
	} else if tp < inc.prevTP {
		nf = flow
	}
	inc.prevTP = tp

	inc.positive.Push(pf)
	inc.negative.Push(nf)
	if !inc.positive.Full() {
		return math.NaN(), false
	}

	return mfiValue(inc.positive.Sum(), inc.negative.Sum()), true
}

func (inc *MFI) Reset() {
	inc.positive.Reset()
	inc.negative.Reset()
	inc.prevTP = 0
	inc.hasPrev = false
}

func (inc *MFI) Ready() bool { return inc.positive.Full() }

var _ Stream[types.OHLCV, float64] = (*MFI)(nil)
