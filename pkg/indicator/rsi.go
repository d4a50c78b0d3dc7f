package indicator

import "math"

/*
rsi implements the Relative Strength Index with Wilder smoothing.

Relative Strength Index (RSI)
- https://www.investopedia.com/terms/r/rsi.asp
- https://school.stockcharts.com/doku.php?id=technical_indicators:relative_strength_index_rsi

The average gain and loss are seeded with the plain mean over the first
period differences, then Wilder-smoothed. The first RSI appears at input
index period, counting the initial price.
*/
type RSI struct {
	period int

	avgGain *Wilder
	avgLoss *Wilder
	prev    float64
	hasPrev bool
}

func NewRSI(period int) (*RSI, error) {
	if period < 1 {
		return nil, errInvalidParameterf("rsi: period must be >= 1, got %d", period)
	}

	return &RSI{period: period, avgGain: NewWilder(period), avgLoss: NewWilder(period)}, nil
}

func (inc *RSI) Window() int { return inc.period }

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.
		}
		return 100.
	}
	if avgGain == 0 {
		return 0.
	}

	return 100. - 100./(1.+avgGain/avgLoss)
}

func (inc *RSI) Calculate(values []float64) ([]float64, error) {
	out := make([]float64, len(values))
	avgGain := NewWilder(inc.period)
	avgLoss := NewWilder(inc.period)
	for i, v := range values {
		if i == 0 {
			out[i] = math.NaN()
			continue
		}

		diff := v - values[i-1]
		gain, loss := 0.0, 0.0
		if diff > 0 {
			gain = diff
		} else {
			loss = -diff
		}

		g, _ := avgGain.Update(gain)
		l, ok := avgLoss.Update(loss)
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = rsiValue(g, l)
	}

	return out, nil
}

func (inc *RSI) Init(prefix []float64) ([]float64, error) {
	inc.Reset()
	return replay(prefix, inc.Next, nanFloat), nil
}

func (inc *RSI) Next(v float64) (float64, bool) {
	if !inc.hasPrev {
		inc.prev = v
		inc.hasPrev = true
		return math.NaN(), false
	}

	diff := v - inc.prev
	inc.prev = v
	gain, loss := 0.0, 0.0
	if diff > 0 {
		gain = diff
	} else {
		loss = -diff
	}

	g, _ := inc.avgGain.Update(gain)
	l, ok := inc.avgLoss.Update(loss)
	if !ok {
		return math.NaN(), false
	}

	return rsiValue(g, l), true
}

func (inc *RSI) Reset() {
	inc.avgGain.Reset()
	inc.avgLoss.Reset()
	inc.prev = 0
	inc.hasPrev = false
}

func (inc *RSI) Ready() bool { return inc.avgLoss.Ready() }

var _ Stream[float64, float64] = (*RSI)(nil)
