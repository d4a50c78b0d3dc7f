package indicator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

/*
linreg implements least-squares linear regression channels over a sliding
window of closes.

Linear Regression
- https://www.investopedia.com/terms/r/regression.asp

The window's x-coordinates are 0..period-1. Value is the regression line
evaluated at the window end; the channel sits numStdDev population
residual deviations around it. Pearson r is forced to 0 on a flat window,
where the correlation is undefined.
*/
type LinRegValue struct {
	Value    float64
	Upper    float64
	Lower    float64
	Slope    float64
	R        float64
	RSquared float64
}

func nanLinRegValue() LinRegValue {
	n := math.NaN()
	return LinRegValue{Value: n, Upper: n, Lower: n, Slope: n, R: n, RSquared: n}
}

type LinReg struct {
	period    int
	numStdDev float64

	xs      []float64
	buf     *RingBuffer
	scratch []float64
}

func NewLinReg(period int, numStdDev float64) (*LinReg, error) {
	if period < 2 {
		return nil, errInvalidParameterf("linreg: period must be >= 2, got %d", period)
	}
	if math.IsNaN(numStdDev) || math.IsInf(numStdDev, 0) {
		return nil, errInvalidParameterf("linreg: numStdDev must be finite, got %v", numStdDev)
	}
	if numStdDev < 0 {
		return nil, errInvalidParameterf("linreg: numStdDev must be >= 0, got %v", numStdDev)
	}

	xs := make([]float64, period)
	for i := range xs {
		xs[i] = float64(i)
	}

	return &LinReg{
		period:    period,
		numStdDev: numStdDev,
		xs:        xs,
		buf:       NewRingBuffer(period),
		scratch:   make([]float64, 0, period),
	}, nil
}

func (inc *LinReg) Window() int { return inc.period }

// value fits the window, oldest first. len(window) == period.
func (inc *LinReg) value(window []float64) LinRegValue {
	alpha, beta := stat.LinearRegression(inc.xs, window, nil, false)
	v := beta*float64(inc.period-1) + alpha

	r := stat.Correlation(inc.xs, window, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		r = 0
	}

	var residuals float64
	for i, y := range window {
		d := y - (beta*float64(i) + alpha)
		residuals += d * d
	}
	sigma := math.Sqrt(residuals / float64(inc.period))

	return LinRegValue{
		Value:    v,
		Upper:    v + inc.numStdDev*sigma,
		Lower:    v - inc.numStdDev*sigma,
		Slope:    beta,
		R:        r,
		RSquared: r * r,
	}
}

func (inc *LinReg) Calculate(values []float64) ([]LinRegValue, error) {
	out := make([]LinRegValue, len(values))
	for i := range values {
		if i < inc.period-1 {
			out[i] = nanLinRegValue()
			continue
		}
		out[i] = inc.value(values[i-inc.period+1 : i+1])
	}

	return out, nil
}

func (inc *LinReg) Init(prefix []float64) ([]LinRegValue, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanLinRegValue), nil
}

// Next refits the whole window, an O(period) step.
func (inc *LinReg) Next(v float64) (LinRegValue, bool) {
	inc.buf.Push(v)
	if !inc.buf.Full() {
		return nanLinRegValue(), false
	}

	inc.scratch = inc.scratch[:0]
	for i := 0; i < inc.period; i++ {
		inc.scratch = append(inc.scratch, inc.buf.At(i))
	}

	return inc.value(inc.scratch), true
}

func (inc *LinReg) Reset() {
	inc.buf.Reset()
	inc.scratch = inc.scratch[:0]
}

func (inc *LinReg) Ready() bool { return inc.buf.Full() }

var _ Stream[float64, LinRegValue] = (*LinReg)(nil)
