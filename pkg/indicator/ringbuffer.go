package indicator

// RingBuffer is a fixed-capacity circular buffer over float64. Pushing into
// a full buffer evicts the oldest element.
type RingBuffer struct {
	values []float64
	head   int
	count  int
}

func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{values: make([]float64, capacity)}
}

// Push appends v. When the buffer was already full it returns the evicted
// oldest value and true.
func (b *RingBuffer) Push(v float64) (evicted float64, ok bool) {
	if b.count == len(b.values) {
		evicted, ok = b.values[b.head], true
	} else {
		b.count++
	}
	b.values[b.head] = v
	b.head = (b.head + 1) % len(b.values)
	return evicted, ok
}

// At returns the i-th element counting from the oldest. i must be in
// [0, Len).
func (b *RingBuffer) At(i int) float64 {
	n := len(b.values)
	return b.values[((b.head-b.count+i)%n+n)%n]
}

func (b *RingBuffer) Len() int { return b.count }

func (b *RingBuffer) Cap() int { return len(b.values) }

func (b *RingBuffer) Full() bool { return b.count == len(b.values) }

func (b *RingBuffer) Reset() {
	b.head = 0
	b.count = 0
}

// RollingSum maintains the running sum of the last window values.
type RollingSum struct {
	buf *RingBuffer
	sum float64
}

func NewRollingSum(window int) *RollingSum {
	return &RollingSum{buf: NewRingBuffer(window)}
}

// Push adds v to the window, returning the evicted value if the window was
// already full.
func (s *RollingSum) Push(v float64) (evicted float64, ok bool) {
	evicted, ok = s.buf.Push(v)
	s.sum += v
	if ok {
		s.sum -= evicted
	}
	return evicted, ok
}

func (s *RollingSum) Sum() float64 { return s.sum }

// Mean returns the window mean. Only meaningful once the window is full.
func (s *RollingSum) Mean() float64 {
	return s.sum / float64(s.buf.Cap())
}

func (s *RollingSum) Len() int { return s.buf.Len() }

func (s *RollingSum) Full() bool { return s.buf.Full() }

func (s *RollingSum) Reset() {
	s.buf.Reset()
	s.sum = 0
}
