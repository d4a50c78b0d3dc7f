package indicator

import (
	"math"

	"github.com/c9s/ta/pkg/types"
)

/*
cvd implements Cumulative Volume Delta.

- https://www.tradingview.com/support/solutions/43000713828-cumulative-volume-delta/

CVD keeps a running sum of per-bar buy-versus-sell pressure. The direct
variant consumes already-signed deltas. The OHLCV variant estimates the
delta from where the close sits inside the bar's range:

	delta = volume * (2*close - high - low) / (high - low)

A close at the high counts the full volume as buying, a close at the low
as selling. A NaN delta is reported as NaN without touching the total.
*/
type CVD struct {
	total   float64
	started bool
}

func NewCVD() *CVD {
	return &CVD{}
}

func (inc *CVD) Calculate(deltas []float64) ([]float64, error) {
	out := make([]float64, len(deltas))
	var total float64
	for i, delta := range deltas {
		if math.IsNaN(delta) {
			out[i] = math.NaN()
			continue
		}
		total += delta
		out[i] = total
	}

	return out, nil
}

func (inc *CVD) Init(prefix []float64) ([]float64, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanFloat), nil
}

func (inc *CVD) Next(delta float64) (float64, bool) {
	if math.IsNaN(delta) {
		return math.NaN(), false
	}

	inc.total += delta
	inc.started = true
	return inc.total, true
}

func (inc *CVD) Reset() {
	inc.total = 0
	inc.started = false
}

func (inc *CVD) Ready() bool { return inc.started }

// Current returns the running total without consuming a delta.
func (inc *CVD) Current() (float64, error) {
	if !inc.started {
		return 0, ErrNotInitialized
	}

	return inc.total, nil
}

var _ Stream[float64, float64] = (*CVD)(nil)

// VolumeDelta estimates a single bar's signed volume delta from the close
// position within the bar range. Bars with no range or no volume carry a
// zero delta.
func VolumeDelta(high, low, cloze, volume float64) float64 {
	priceRange := high - low
	if priceRange <= 0 || volume <= 0 {
		return 0.
	}

	return volume * (2.*cloze - high - low) / priceRange
}

// CVDFromOHLCV accumulates volume deltas estimated per bar.
type CVDFromOHLCV struct {
	cvd *CVD
}

func NewCVDFromOHLCV() *CVDFromOHLCV {
	return &CVDFromOHLCV{cvd: NewCVD()}
}

func (inc *CVDFromOHLCV) Calculate(high, low, cloze, volume []float64) ([]float64, error) {
	if len(high) != len(low) || len(high) != len(cloze) || len(high) != len(volume) {
		return nil, errMismatchedLengths(len(high), len(low), len(cloze), len(volume))
	}

	out := make([]float64, len(cloze))
	var total float64
	for i := range cloze {
		total += VolumeDelta(high[i], low[i], cloze[i], volume[i])
		out[i] = total
	}

	return out, nil
}

func (inc *CVDFromOHLCV) Init(prefix []types.OHLCV) ([]float64, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanFloat), nil
}

func (inc *CVDFromOHLCV) Next(bar types.OHLCV) (float64, bool) {
	return inc.cvd.Next(VolumeDelta(bar.High, bar.Low, bar.Close, bar.Volume))
}

func (inc *CVDFromOHLCV) Reset() { inc.cvd.Reset() }

func (inc *CVDFromOHLCV) Ready() bool { return inc.cvd.Ready() }

// Current returns the running total without consuming a bar.
func (inc *CVDFromOHLCV) Current() (float64, error) {
	return inc.cvd.Current()
}

var _ Stream[types.OHLCV, float64] = (*CVDFromOHLCV)(nil)
