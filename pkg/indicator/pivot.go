package indicator

import (
	"math"

	"github.com/c9s/ta/pkg/types"
)

/*
pivot implements floor-trader pivot points, a stateless per-bar transform
of the previous period's high, low and close.

Pivot Points
- https://www.investopedia.com/terms/p/pivotpoint.asp

Standard and Woodie share the support/resistance ladder and differ in the
pivot itself; Fibonacci scales the bar range by the 0.382/0.618 ratios.
*/
type PivotVariant int

const (
	PivotStandard PivotVariant = iota
	PivotFibonacci
	PivotWoodie
)

type PivotLevels struct {
	Pivot float64
	R1    float64
	R2    float64
	R3    float64
	S1    float64
	S2    float64
	S3    float64
}

func nanPivotLevels() PivotLevels {
	n := math.NaN()
	return PivotLevels{Pivot: n, R1: n, R2: n, R3: n, S1: n, S2: n, S3: n}
}

// Valid reports whether the levels were computed from NaN-free inputs.
func (p PivotLevels) Valid() bool { return !math.IsNaN(p.Pivot) }

type PivotPoints struct {
	variant PivotVariant
	count   int
}

func NewPivotPoints(variant PivotVariant) *PivotPoints {
	return &PivotPoints{variant: variant}
}

// Compute maps one bar's high, low and close to its seven levels. A NaN in
// any input yields an all-NaN record.
func (inc *PivotPoints) Compute(high, low, cloze float64) PivotLevels {
	if math.IsNaN(high) || math.IsNaN(low) || math.IsNaN(cloze) {
		return nanPivotLevels()
	}

	pivot := (high + low + cloze) / 3.
	if inc.variant == PivotWoodie {
		pivot = (high + low + 2.*cloze) / 4.
	}

	rng := high - low
	if inc.variant == PivotFibonacci {
		return PivotLevels{
			Pivot: pivot,
			R1:    pivot + 0.382*rng,
			R2:    pivot + 0.618*rng,
			R3:    pivot + rng,
			S1:    pivot - 0.382*rng,
			S2:    pivot - 0.618*rng,
			S3:    pivot - rng,
		}
	}

	return PivotLevels{
		Pivot: pivot,
		R1:    2.*pivot - low,
		R2:    pivot + rng,
		R3:    high + 2.*(pivot-low),
		S1:    2.*pivot - high,
		S2:    pivot - rng,
		S3:    low - 2.*(high-pivot),
	}
}

func (inc *PivotPoints) Calculate(high, low, closes []float64) ([]PivotLevels, error) {
	if len(high) != len(low) || len(high) != len(closes) {
		return nil, errMismatchedLengths(len(high), len(low), len(closes))
	}

	out := make([]PivotLevels, len(high))
	for i := range high {
		out[i] = inc.Compute(high[i], low[i], closes[i])
	}

	return out, nil
}

func (inc *PivotPoints) Init(prefix []types.OHLCV) ([]PivotLevels, error) {
	inc.Reset()
	out := make([]PivotLevels, len(prefix))
	for i, bar := range prefix {
		v, _ := inc.Next(bar)
		out[i] = v
	}

	return out, nil
}

// Next never warms up; every bar maps straight through Compute.
func (inc *PivotPoints) Next(bar types.OHLCV) (PivotLevels, bool) {
	inc.count++
	return inc.Compute(bar.High, bar.Low, bar.Close), true
}

func (inc *PivotPoints) Reset() { inc.count = 0 }

func (inc *PivotPoints) Ready() bool { return inc.count > 0 }

var _ Stream[types.OHLCV, PivotLevels] = (*PivotPoints)(nil)
