package indicator

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/c9s/ta/pkg/types"
)

var logSessionVWAP = logrus.WithField("indicator", "SessionVWAP")

// msPerDay converts Unix millisecond timestamps to UTC day numbers.
const msPerDay int64 = 86_400_000

func utcDay(timestampMs int64) int64 {
	return timestampMs / msPerDay
}

/*
vwap implements the volume weighted average price family.

Volume Weighted Average Price (VWAP)
- https://www.investopedia.com/terms/v/vwap.asp

VWAP = sum(typical price * volume) / sum(volume). The session variant
resets its accumulators on every UTC day-number change, the rolling
variant slides a fixed bar window, and the anchored variant accumulates
from a configured timestamp or ordinal index. Whenever the relevant
volume sum is not positive the value is absent.
*/
type SessionVWAP struct {
	cumPV       float64
	cumVol      float64
	currentDay  int64
	initialized bool
}

func NewSessionVWAP() *SessionVWAP {
	return &SessionVWAP{}
}

func (inc *SessionVWAP) Calculate(bars []types.OHLCV) ([]float64, error) {
	out := make([]float64, len(bars))
	var cumPV, cumVol float64
	var day int64
	for i, bar := range bars {
		d := utcDay(bar.Timestamp)
		if i == 0 {
			day = d
		}
		if d != day {
			cumPV = 0
			cumVol = 0
			day = d
		}

		cumPV += bar.TypicalPrice() * bar.Volume
		cumVol += bar.Volume
		if cumVol > 0 {
			out[i] = cumPV / cumVol
		} else {
			out[i] = math.NaN()
		}
	}

	return out, nil
}

func (inc *SessionVWAP) Init(prefix []types.OHLCV) ([]float64, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanFloat), nil
}

func (inc *SessionVWAP) Next(bar types.OHLCV) (float64, bool) {
	day := utcDay(bar.Timestamp)
	if !inc.initialized || day != inc.currentDay {
		if inc.initialized && day < inc.currentDay {
			logSessionVWAP.Warnf("day number moved backwards from %d to %d, starting a new session", inc.currentDay, day)
		}
		inc.cumPV = 0
		inc.cumVol = 0
		inc.currentDay = day
		inc.initialized = true
	}

	inc.cumPV += bar.TypicalPrice() * bar.Volume
	inc.cumVol += bar.Volume
	if inc.cumVol > 0 {
		return inc.cumPV / inc.cumVol, true
	}

	return math.NaN(), false
}

func (inc *SessionVWAP) Reset() {
	inc.cumPV = 0
	inc.cumVol = 0
	inc.currentDay = 0
	inc.initialized = false
}

func (inc *SessionVWAP) Ready() bool { return inc.initialized }

// Current returns the session VWAP without consuming a bar. The value is
// NaN while the session's volume is zero.
func (inc *SessionVWAP) Current() (float64, error) {
	if !inc.initialized {
		return 0, ErrNotInitialized
	}
	if inc.cumVol <= 0 {
		return math.NaN(), nil
	}

	return inc.cumPV / inc.cumVol, nil
}

func (inc *SessionVWAP) CumulativePV() float64 { return inc.cumPV }

func (inc *SessionVWAP) CumulativeVolume() float64 { return inc.cumVol }

var _ Stream[types.OHLCV, float64] = (*SessionVWAP)(nil)

// RollingVWAP keeps two sliding sums, typical price times volume and plain
// volume, over a fixed window of bars.
type RollingVWAP struct {
	window int

	pv  *RollingSum
	vol *RollingSum
}

func NewRollingVWAP(window int) (*RollingVWAP, error) {
	if window < 1 {
		return nil, errInvalidParameterf("vwap: window must be >= 1, got %d", window)
	}

	return &RollingVWAP{window: window, pv: NewRollingSum(window), vol: NewRollingSum(window)}, nil
}

func (inc *RollingVWAP) Window() int { return inc.window }

func (inc *RollingVWAP) Calculate(bars []types.OHLCV) ([]float64, error) {
	out := make([]float64, len(bars))
	var sumPV, sumVol float64
	for i, bar := range bars {
		sumPV += bar.TypicalPrice() * bar.Volume
		sumVol += bar.Volume
		if i >= inc.window {
			old := bars[i-inc.window]
			sumPV -= old.TypicalPrice() * old.Volume
			sumVol -= old.Volume
		}
		if i < inc.window-1 || sumVol <= 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sumPV / sumVol
	}

	return out, nil
}

func (inc *RollingVWAP) Init(prefix []types.OHLCV) ([]float64, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanFloat), nil
}

func (inc *RollingVWAP) Next(bar types.OHLCV) (float64, bool) {
	inc.pv.Push(bar.TypicalPrice() * bar.Volume)
	inc.vol.Push(bar.Volume)
	if !inc.vol.Full() || inc.vol.Sum() <= 0 {
		return math.NaN(), false
	}

	return inc.pv.Sum() / inc.vol.Sum(), true
}

func (inc *RollingVWAP) Reset() {
	inc.pv.Reset()
	inc.vol.Reset()
}

func (inc *RollingVWAP) Ready() bool { return inc.vol.Full() }

// Current returns the window VWAP without consuming a bar.
func (inc *RollingVWAP) Current() (float64, error) {
	if !inc.vol.Full() {
		return 0, ErrNotInitialized
	}
	if inc.vol.Sum() <= 0 {
		return math.NaN(), nil
	}

	return inc.pv.Sum() / inc.vol.Sum(), nil
}

var _ Stream[types.OHLCV, float64] = (*RollingVWAP)(nil)

// AnchoredVWAP accumulates from an anchor point onward. The anchor is a
// timestamp, an ordinal bar index, or "the next bar consumed" after
// AnchorNext.
type AnchoredVWAP struct {
	anchorTime     int64
	hasAnchorTime  bool
	anchorIndex    int
	hasAnchorIndex bool

	cumPV    float64
	cumVol   float64
	barIndex int
	anchored bool
}

// NewAnchoredVWAP anchors at the first bar whose timestamp is not before
// anchorTime.
func NewAnchoredVWAP(anchorTime int64) *AnchoredVWAP {
	return &AnchoredVWAP{anchorTime: anchorTime, hasAnchorTime: true}
}

// NewAnchoredVWAPIndex anchors at the bar with the given ordinal position.
func NewAnchoredVWAPIndex(index int) *AnchoredVWAP {
	if index < 0 {
		index = 0
	}
	return &AnchoredVWAP{anchorIndex: index, hasAnchorIndex: true}
}

// AnchorIndexForTime returns the position of the first bar whose timestamp
// is at or after ts, and false when no bar qualifies.
func AnchorIndexForTime(bars []types.OHLCV, ts int64) (int, bool) {
	for i, bar := range bars {
		if bar.Timestamp >= ts {
			return i, true
		}
	}

	return 0, false
}

// SetAnchor rebinds the anchor to ts and drops everything accumulated so
// far. Bars already consumed are not replayed.
func (inc *AnchoredVWAP) SetAnchor(ts int64) {
	inc.anchorTime = ts
	inc.hasAnchorTime = true
	inc.hasAnchorIndex = false
	inc.anchored = false
	inc.cumPV = 0
	inc.cumVol = 0
}

// AnchorNext drops the current anchor and binds to the next bar consumed,
// recording that bar's timestamp as the anchor.
func (inc *AnchoredVWAP) AnchorNext() {
	inc.hasAnchorTime = false
	inc.hasAnchorIndex = false
	inc.anchored = false
	inc.cumPV = 0
	inc.cumVol = 0
}

// AnchorTime returns the bound anchor timestamp. It reports false for an
// index anchor and for an AnchorNext that has not seen a bar yet.
func (inc *AnchoredVWAP) AnchorTime() (int64, bool) {
	return inc.anchorTime, inc.hasAnchorTime
}

func (inc *AnchoredVWAP) anchorStart(bars []types.OHLCV) (int, bool) {
	switch {
	case inc.hasAnchorIndex:
		if inc.anchorIndex >= len(bars) {
			return 0, false
		}
		return inc.anchorIndex, true
	case inc.hasAnchorTime:
		return AnchorIndexForTime(bars, inc.anchorTime)
	default:
		// an unbound anchor accumulates from the series start
		if len(bars) == 0 {
			return 0, false
		}
		return 0, true
	}
}

func (inc *AnchoredVWAP) Calculate(bars []types.OHLCV) ([]float64, error) {
	out := make([]float64, len(bars))
	for i := range out {
		out[i] = math.NaN()
	}

	start, ok := inc.anchorStart(bars)
	if !ok {
		return out, nil
	}

	var cumPV, cumVol float64
	for i := start; i < len(bars); i++ {
		cumPV += bars[i].TypicalPrice() * bars[i].Volume
		cumVol += bars[i].Volume
		if cumVol > 0 {
			out[i] = cumPV / cumVol
		}
	}

	return out, nil
}

// Init clears the accumulators but keeps the configured anchor, so the
// replay anchors exactly where a batch Calculate would.
func (inc *AnchoredVWAP) Init(prefix []types.OHLCV) ([]float64, error) {
	inc.cumPV = 0
	inc.cumVol = 0
	inc.barIndex = 0
	inc.anchored = false
	return replay(prefix, inc.Next, nanFloat), nil
}

func (inc *AnchoredVWAP) Next(bar types.OHLCV) (float64, bool) {
	idx := inc.barIndex
	inc.barIndex++

	if !inc.anchored {
		switch {
		case inc.hasAnchorIndex:
			if idx < inc.anchorIndex {
				return math.NaN(), false
			}
		case inc.hasAnchorTime:
			if bar.Timestamp < inc.anchorTime {
				return math.NaN(), false
			}
		default:
			inc.anchorTime = bar.Timestamp
			inc.hasAnchorTime = true
		}
		inc.anchored = true
	}

	inc.cumPV += bar.TypicalPrice() * bar.Volume
	inc.cumVol += bar.Volume
	if inc.cumVol > 0 {
		return inc.cumPV / inc.cumVol, true
	}

	return math.NaN(), false
}

// Reset drops the accumulated state but keeps the anchor configuration, so
// a reset stream replays into the same series.
func (inc *AnchoredVWAP) Reset() {
	inc.cumPV = 0
	inc.cumVol = 0
	inc.barIndex = 0
	inc.anchored = false
}

func (inc *AnchoredVWAP) Ready() bool { return inc.anchored }

// Current returns the anchored VWAP without consuming a bar.
func (inc *AnchoredVWAP) Current() (float64, error) {
	if !inc.anchored {
		return 0, ErrNotInitialized
	}
	if inc.cumVol <= 0 {
		return math.NaN(), nil
	}

	return inc.cumPV / inc.cumVol, nil
}

func (inc *AnchoredVWAP) CumulativePV() float64 { return inc.cumPV }

func (inc *AnchoredVWAP) CumulativeVolume() float64 { return inc.cumVol }

var _ Stream[types.OHLCV, float64] = (*AnchoredVWAP)(nil)
