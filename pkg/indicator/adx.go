package indicator

import (
	"math"

	"github.com/c9s/ta/pkg/types"
)

/*
adx implements the average directional index with its two directional
indicator lines.

Average Directional Index (ADX)
- https://www.investopedia.com/terms/a/adx.asp
- https://school.stockcharts.com/doku.php?id=technical_indicators:average_directional_index_adx

Directional movement per bar: up = high - prev high, dn = prev low - low;
+DM = up when up > dn and up > 0, -DM = dn when dn > up and dn > 0. TR, +DM
and -DM are Wilder-smoothed over the period; DX is Wilder-smoothed again
into ADX. The DI lines appear at index period, ADX at 2*period-1.
*/
type ADXValue struct {
	ADX     float64
	PlusDI  float64
	MinusDI float64
}

func nanADXValue() ADXValue {
	n := math.NaN()
	return ADXValue{ADX: n, PlusDI: n, MinusDI: n}
}

type ADX struct {
	period int

	smoothedTR  *Wilder
	smoothedPDM *Wilder
	smoothedMDM *Wilder
	smoothedDX  *Wilder

	prevHigh  float64
	prevLow   float64
	prevClose float64
	hasPrev   bool
}

func NewADX(period int) (*ADX, error) {
	if period < 1 {
		return nil, errInvalidParameterf("adx: period must be >= 1, got %d", period)
	}

	return &ADX{
		period:      period,
		smoothedTR:  NewWilder(period),
		smoothedPDM: NewWilder(period),
		smoothedMDM: NewWilder(period),
		smoothedDX:  NewWilder(period),
	}, nil
}

func (inc *ADX) Window() int { return inc.period }

func directionalMovement(high, low, prevHigh, prevLow float64) (pdm, mdm float64) {
	up := high - prevHigh
	dn := prevLow - low
	if up > dn && up > 0. {
		pdm = up
	}
	if dn > up && dn > 0. {
		mdm = dn
	}

	return pdm, mdm
}

func adxStep(str, spdm, smdm float64) (plusDI, minusDI, dx float64) {
	if str > 0 {
		plusDI = 100. * spdm / str
		minusDI = 100. * smdm / str
	}
	if s := plusDI + minusDI; s > 0 {
		dx = 100. * math.Abs(plusDI-minusDI) / s
	}

	return plusDI, minusDI, dx
}

func (inc *ADX) Calculate(high, low, closes []float64) ([]ADXValue, error) {
	if len(high) != len(low) || len(high) != len(closes) {
		return nil, errMismatchedLengths(len(high), len(low), len(closes))
	}

	out := make([]ADXValue, len(high))
	smTR := NewWilder(inc.period)
	smPDM := NewWilder(inc.period)
	smMDM := NewWilder(inc.period)
	smDX := NewWilder(inc.period)
	for i := range high {
		if i == 0 {
			out[i] = nanADXValue()
			continue
		}

		pdm, mdm := directionalMovement(high[i], low[i], high[i-1], low[i-1])
		tr := trueRange(high[i], low[i], closes[i-1])

		str, ok := smTR.Update(tr)
		spdm, _ := smPDM.Update(pdm)
		smdm, _ := smMDM.Update(mdm)
		if !ok {
			out[i] = nanADXValue()
			continue
		}

		plusDI, minusDI, dx := adxStep(str, spdm, smdm)
		adx, ok := smDX.Update(dx)
		if !ok {
			out[i] = ADXValue{ADX: math.NaN(), PlusDI: plusDI, MinusDI: minusDI}
			continue
		}
		out[i] = ADXValue{ADX: adx, PlusDI: plusDI, MinusDI: minusDI}
	}

	return out, nil
}

func (inc *ADX) Init(prefix []types.OHLCV) ([]ADXValue, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanADXValue), nil
}

func (inc *ADX) Next(k types.OHLCV) (ADXValue, bool) {
	if !inc.hasPrev {
		inc.prevHigh, inc.prevLow, inc.prevClose = k.High, k.Low, k.Close
		inc.hasPrev = true
		return nanADXValue(), false
	}

	pdm, mdm := directionalMovement(k.High, k.Low, inc.prevHigh, inc.prevLow)
	tr := trueRange(k.High, k.Low, inc.prevClose)
	inc.prevHigh, inc.prevLow, inc.prevClose = k.High, k.Low, k.Close

	str, ok := inc.smoothedTR.Update(tr)
	spdm, _ := inc.smoothedPDM.Update(pdm)
	smdm, _ := inc.smoothedMDM.Update(mdm)
	if !ok {
		return nanADXValue(), false
	}

	plusDI, minusDI, dx := adxStep(str, spdm, smdm)
	adx, ok := inc.smoothedDX.Update(dx)
	if !ok {
		return ADXValue{ADX: math.NaN(), PlusDI: plusDI, MinusDI: minusDI}, true
	}

	return ADXValue{ADX: adx, PlusDI: plusDI, MinusDI: minusDI}, true
}

func (inc *ADX) Reset() {
	inc.smoothedTR.Reset()
	inc.smoothedPDM.Reset()
	inc.smoothedMDM.Reset()
	inc.smoothedDX.Reset()
	inc.prevHigh = 0
	inc.prevLow = 0
	inc.prevClose = 0
	inc.hasPrev = false
}

func (inc *ADX) Ready() bool { return inc.smoothedTR.Ready() }

var _ Stream[types.OHLCV, ADXValue] = (*ADX)(nil)
