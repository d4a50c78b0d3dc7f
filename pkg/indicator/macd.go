package indicator

import (
	"math"

	"github.com/pkg/errors"
)

/*
macd implements moving average convergence divergence.

Moving Average Convergence Divergence (MACD)
- https://www.investopedia.com/terms/m/macd.asp
- https://school.stockcharts.com/doku.php?id=technical_indicators:macd-histogram

The MACD line is EMA(fast) - EMA(slow), defined once the slow EMA is
seeded. The signal line smooths the valid MACD subsequence with an EMA by
default, or an SMA when constructed with SignalSMA.
*/
type SignalType int

const (
	SignalEMA SignalType = iota
	SignalSMA
)

type MACDValue struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

func nanMACDValue() MACDValue {
	n := math.NaN()
	return MACDValue{MACD: n, Signal: n, Histogram: n}
}

// signalSmoother is the surface shared by EMA and SMA that the signal line
// runs on.
type signalSmoother interface {
	Stream[float64, float64]
	Calculate([]float64) ([]float64, error)
}

type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
	signalType   SignalType

	fast   *EMA
	slow   *EMA
	signal signalSmoother
}

func NewMACD(fast, slow, signal int) (*MACD, error) {
	return NewMACDWithSignalType(fast, slow, signal, SignalEMA)
}

func NewMACDWithSignalType(fast, slow, signal int, signalType SignalType) (*MACD, error) {
	if fast < 1 || slow < 1 || signal < 1 {
		return nil, errInvalidParameterf("macd: periods must be >= 1, got fast=%d slow=%d signal=%d", fast, slow, signal)
	}
	if fast >= slow {
		return nil, errInvalidParameterf("macd: fast period %d must be shorter than slow period %d", fast, slow)
	}

	fastEMA, err := NewEMA(fast)
	if err != nil {
		return nil, errors.Wrap(err, "macd: fast ema")
	}
	slowEMA, err := NewEMA(slow)
	if err != nil {
		return nil, errors.Wrap(err, "macd: slow ema")
	}

	var line signalSmoother
	switch signalType {
	case SignalEMA:
		line, err = NewEMA(signal)
	case SignalSMA:
		line, err = NewSMA(signal)
	default:
		return nil, errInvalidParameterf("macd: unknown signal type %d", signalType)
	}
	if err != nil {
		return nil, errors.Wrap(err, "macd: signal line")
	}

	return &MACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
		signalType:   signalType,
		fast:         fastEMA,
		slow:         slowEMA,
		signal:       line,
	}, nil
}

func (inc *MACD) Calculate(values []float64) ([]MACDValue, error) {
	fastVals, err := inc.fast.Calculate(values)
	if err != nil {
		return nil, err
	}
	slowVals, err := inc.slow.Calculate(values)
	if err != nil {
		return nil, err
	}

	macdLine := make([]float64, 0, len(values))
	for i := range values {
		if math.IsNaN(slowVals[i]) {
			continue
		}
		macdLine = append(macdLine, fastVals[i]-slowVals[i])
	}

	signalVals, err := inc.signal.Calculate(macdLine)
	if err != nil {
		return nil, err
	}

	out := make([]MACDValue, len(values))
	j := 0
	for i := range values {
		if math.IsNaN(slowVals[i]) {
			out[i] = nanMACDValue()
			continue
		}

		macd, signal := macdLine[j], signalVals[j]
		j++
		if math.IsNaN(signal) {
			out[i] = MACDValue{MACD: macd, Signal: math.NaN(), Histogram: math.NaN()}
			continue
		}
		out[i] = MACDValue{MACD: macd, Signal: signal, Histogram: macd - signal}
	}

	return out, nil
}

func (inc *MACD) Init(prefix []float64) ([]MACDValue, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanMACDValue), nil
}

// Next returns a partial record with NaN signal and histogram while the
// signal line is still warming up over the MACD subsequence.
func (inc *MACD) Next(v float64) (MACDValue, bool) {
	fast, fok := inc.fast.Next(v)
	slow, sok := inc.slow.Next(v)
	if !fok || !sok {
		return nanMACDValue(), false
	}

	macd := fast - slow
	signal, ok := inc.signal.Next(macd)
	if !ok {
		return MACDValue{MACD: macd, Signal: math.NaN(), Histogram: math.NaN()}, true
	}

	return MACDValue{MACD: macd, Signal: signal, Histogram: macd - signal}, true
}

func (inc *MACD) Reset() {
	inc.fast.Reset()
	inc.slow.Reset()
	inc.signal.Reset()
}

func (inc *MACD) Ready() bool { return inc.slow.Ready() }

var _ Stream[float64, MACDValue] = (*MACD)(nil)
