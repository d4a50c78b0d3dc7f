package indicator

import (
	"math"

	"github.com/c9s/ta/pkg/types"
)

// Default Ichimoku periods, the classic 9/26/52 setup.
const (
	DefaultIchimokuTenkan  = 9
	DefaultIchimokuKijun   = 26
	DefaultIchimokuSenkouB = 52
)

/*
ichimoku implements the Ichimoku Kinko Hyo cloud system.

Ichimoku Cloud
- https://www.investopedia.com/terms/i/ichimoku-cloud.asp

Each line is the midpoint (highest high + lowest low)/2 over its window;
Senkou A is the midpoint of Tenkan and Kijun once both exist, and Chikou
is the current close. The records are unshifted: the forward offset of the
spans and the backward offset of Chikou are plotting concerns left to the
caller.
*/
type IchimokuValue struct {
	Tenkan  float64
	Kijun   float64
	SenkouA float64
	SenkouB float64
	Chikou  float64
}

type Ichimoku struct {
	tenkanPeriod  int
	kijunPeriod   int
	senkouBPeriod int

	tenkanHigh *MaxDeque
	tenkanLow  *MinDeque
	kijunHigh  *MaxDeque
	kijunLow   *MinDeque
	spanBHigh  *MaxDeque
	spanBLow   *MinDeque
	count      int
}

func NewIchimoku(tenkan, kijun, senkouB int) (*Ichimoku, error) {
	if tenkan < 1 || kijun < 1 || senkouB < 1 {
		return nil, errInvalidParameterf("ichimoku: periods must be >= 1, got tenkan=%d kijun=%d senkouB=%d",
			tenkan, kijun, senkouB)
	}

	return &Ichimoku{
		tenkanPeriod:  tenkan,
		kijunPeriod:   kijun,
		senkouBPeriod: senkouB,
		tenkanHigh:    NewMaxDeque(tenkan),
		tenkanLow:     NewMinDeque(tenkan),
		kijunHigh:     NewMaxDeque(kijun),
		kijunLow:      NewMinDeque(kijun),
		spanBHigh:     NewMaxDeque(senkouB),
		spanBLow:      NewMinDeque(senkouB),
	}, nil
}

func midpoint(high *MaxDeque, low *MinDeque) float64 {
	h, _ := high.Top()
	l, _ := low.Top()
	return (h + l) / 2.
}

func (inc *Ichimoku) Calculate(high, low, closes []float64) ([]IchimokuValue, error) {
	if len(high) != len(low) || len(high) != len(closes) {
		return nil, errMismatchedLengths(len(high), len(low), len(closes))
	}

	out := make([]IchimokuValue, len(high))
	tenkanHigh, tenkanLow := NewMaxDeque(inc.tenkanPeriod), NewMinDeque(inc.tenkanPeriod)
	kijunHigh, kijunLow := NewMaxDeque(inc.kijunPeriod), NewMinDeque(inc.kijunPeriod)
	spanBHigh, spanBLow := NewMaxDeque(inc.senkouBPeriod), NewMinDeque(inc.senkouBPeriod)
	for i := range high {
		tenkanHigh.Push(i, high[i])
		tenkanLow.Push(i, low[i])
		kijunHigh.Push(i, high[i])
		kijunLow.Push(i, low[i])
		spanBHigh.Push(i, high[i])
		spanBLow.Push(i, low[i])

		nan := math.NaN()
		v := IchimokuValue{Tenkan: nan, Kijun: nan, SenkouA: nan, SenkouB: nan, Chikou: closes[i]}
		if i >= inc.tenkanPeriod-1 {
			v.Tenkan = midpoint(tenkanHigh, tenkanLow)
		}
		if i >= inc.kijunPeriod-1 {
			v.Kijun = midpoint(kijunHigh, kijunLow)
		}
		if !math.IsNaN(v.Tenkan) && !math.IsNaN(v.Kijun) {
			v.SenkouA = (v.Tenkan + v.Kijun) / 2.
		}
		if i >= inc.senkouBPeriod-1 {
			v.SenkouB = midpoint(spanBHigh, spanBLow)
		}
		out[i] = v
	}

	return out, nil
}

func (inc *Ichimoku) Init(prefix []types.OHLCV) ([]IchimokuValue, error) {
	inc.Reset()
	out := make([]IchimokuValue, len(prefix))
	for i, bar := range prefix {
		v, _ := inc.Next(bar)
		out[i] = v
	}

	return out, nil
}

// Next always has a record to report: Chikou is the current close from the
// first bar on, the other lines stay NaN until their windows fill.
func (inc *Ichimoku) Next(bar types.OHLCV) (IchimokuValue, bool) {
	i := inc.count
	inc.count++
	inc.tenkanHigh.Push(i, bar.High)
	inc.tenkanLow.Push(i, bar.Low)
	inc.kijunHigh.Push(i, bar.High)
	inc.kijunLow.Push(i, bar.Low)
	inc.spanBHigh.Push(i, bar.High)
	inc.spanBLow.Push(i, bar.Low)

	nan := math.NaN()
	v := IchimokuValue{Tenkan: nan, Kijun: nan, SenkouA: nan, SenkouB: nan, Chikou: bar.Close}
	if inc.count >= inc.tenkanPeriod {
		v.Tenkan = midpoint(inc.tenkanHigh, inc.tenkanLow)
	}
	if inc.count >= inc.kijunPeriod {
		v.Kijun = midpoint(inc.kijunHigh, inc.kijunLow)
	}
	if !math.IsNaN(v.Tenkan) && !math.IsNaN(v.Kijun) {
		v.SenkouA = (v.Tenkan + v.Kijun) / 2.
	}
	if inc.count >= inc.senkouBPeriod {
		v.SenkouB = midpoint(inc.spanBHigh, inc.spanBLow)
	}

	return v, true
}

func (inc *Ichimoku) Reset() {
	inc.tenkanHigh.Reset()
	inc.tenkanLow.Reset()
	inc.kijunHigh.Reset()
	inc.kijunLow.Reset()
	inc.spanBHigh.Reset()
	inc.spanBLow.Reset()
	inc.count = 0
}

// Ready reports whether the longest window has filled and all five lines
// are formed.
func (inc *Ichimoku) Ready() bool { return inc.count >= inc.senkouBPeriod }

var _ Stream[types.OHLCV, IchimokuValue] = (*Ichimoku)(nil)
