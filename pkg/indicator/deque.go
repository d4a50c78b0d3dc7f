package indicator

type deqPair struct {
	index int
	value float64
}

// MaxDeque tracks the maximum of the last window values with amortized O(1)
// pushes. Push indices must come from a monotonically increasing element
// counter, never a wrapped buffer position.
type MaxDeque struct {
	window int
	items  []deqPair
}

func NewMaxDeque(window int) *MaxDeque {
	return &MaxDeque{window: window}
}

// Push records the element at counter position i and expires entries that
// have left the window.
func (d *MaxDeque) Push(i int, v float64) {
	for len(d.items) > 0 && d.items[0].index <= i-d.window {
		d.items = d.items[1:]
	}
	for len(d.items) > 0 && d.items[len(d.items)-1].value <= v {
		d.items = d.items[:len(d.items)-1]
	}
	d.items = append(d.items, deqPair{index: i, value: v})
}

// Top returns the current window maximum.
func (d *MaxDeque) Top() (float64, bool) {
	if len(d.items) == 0 {
		return 0, false
	}
	return d.items[0].value, true
}

func (d *MaxDeque) Reset() {
	d.items = d.items[:0]
}

// MinDeque is the mirror of MaxDeque for window minimums.
type MinDeque struct {
	window int
	items  []deqPair
}

func NewMinDeque(window int) *MinDeque {
	return &MinDeque{window: window}
}

func (d *MinDeque) Push(i int, v float64) {
	for len(d.items) > 0 && d.items[0].index <= i-d.window {
		d.items = d.items[1:]
	}
	for len(d.items) > 0 && d.items[len(d.items)-1].value >= v {
		d.items = d.items[:len(d.items)-1]
	}
	d.items = append(d.items, deqPair{index: i, value: v})
}

// Top returns the current window minimum.
func (d *MinDeque) Top() (float64, bool) {
	if len(d.items) == 0 {
		return 0, false
	}
	return d.items[0].value, true
}

func (d *MinDeque) Reset() {
	d.items = d.items[:0]
}
