package indicator

// Wilder is J. Welles Wilder's smoothing average: alpha = 1/period, seeded
// with the arithmetic mean of the first period samples. RSI, ATR and ADX all
// smooth with it.
type Wilder struct {
	period int
	sum    float64
	count  int
	value  float64
}

func NewWilder(period int) *Wilder {
	return &Wilder{period: period}
}

// Update consumes one sample. The boolean stays false until the seed window
// has filled.
func (w *Wilder) Update(x float64) (float64, bool) {
	if w.count < w.period {
		w.count++
		w.sum += x
		if w.count < w.period {
			return 0, false
		}
		w.value = w.sum / float64(w.period)
		return w.value, true
	}

	w.value = (w.value*float64(w.period-1) + x) / float64(w.period)
	return w.value, true
}

func (w *Wilder) Value() float64 { return w.value }

func (w *Wilder) Ready() bool { return w.count >= w.period }

func (w *Wilder) Reset() {
	w.sum = 0
	w.count = 0
	w.value = 0
}
