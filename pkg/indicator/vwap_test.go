package indicator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/ta/pkg/types"
)

// typical prices 9, 10, 11, 12 with volumes 100, 300, 100, 200; the last
// bar sits on the next UTC day.
func vwapFixture() []types.OHLCV {
	return []types.OHLCV{
		{Timestamp: 0, Open: 9, High: 10, Low: 8, Close: 9, Volume: 100},
		{Timestamp: 60_000, Open: 9, High: 11, Low: 9, Close: 10, Volume: 300},
		{Timestamp: 120_000, Open: 10, High: 12, Low: 10, Close: 11, Volume: 100},
		{Timestamp: 86_400_000, Open: 11, High: 13, Low: 11, Close: 12, Volume: 200},
	}
}

func Test_SessionVWAP(t *testing.T) {
	bars := vwapFixture()

	vwap := NewSessionVWAP()

	_, err := vwap.Current()
	assert.True(t, errors.Is(err, ErrNotInitialized))

	got, err := vwap.Calculate(bars)
	require.NoError(t, err)

	// the day change before the last bar starts a fresh session
	want := []float64{9., 9.75, 10., 12.}
	assertSeriesInDelta(t, want, got, 1e-9)

	streamed, err := vwap.Init(bars)
	require.NoError(t, err)
	assertSeriesInDelta(t, want, streamed, 1e-9)

	current, err := vwap.Current()
	require.NoError(t, err)
	assert.InDelta(t, 12., current, 1e-9)
	assert.InDelta(t, 2400., vwap.CumulativePV(), 1e-9)
	assert.InDelta(t, 200., vwap.CumulativeVolume(), 1e-9)

	// a backwards day number also starts a new session
	v, ok := vwap.Next(types.OHLCV{Timestamp: 0, High: 20, Low: 18, Close: 19, Volume: 50})
	assert.True(t, ok)
	assert.InDelta(t, 19., v, 1e-9)

	vwap.Reset()
	assert.False(t, vwap.Ready())
}

func Test_SessionVWAP_ZeroVolume(t *testing.T) {
	vwap := NewSessionVWAP()
	v, ok := vwap.Next(types.OHLCV{Timestamp: 0, High: 10, Low: 8, Close: 9, Volume: 0})
	assert.False(t, ok)
	assert.True(t, math.IsNaN(v))

	// initialized, but the session has no volume yet
	assert.True(t, vwap.Ready())
	current, err := vwap.Current()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(current))
}

func Test_RollingVWAP(t *testing.T) {
	bars := vwapFixture()

	vwap, err := NewRollingVWAP(2)
	require.NoError(t, err)
	assert.Equal(t, 2, vwap.Window())

	got, err := vwap.Calculate(bars)
	require.NoError(t, err)

	nan := math.NaN()
	want := []float64{nan, 9.75, 10.25, 11.666666667}
	assertSeriesInDelta(t, want, got, 1e-6)

	streamed, err := vwap.Init(bars)
	require.NoError(t, err)
	assertSeriesInDelta(t, got, streamed, 1e-9)

	current, err := vwap.Current()
	require.NoError(t, err)
	assert.InDelta(t, 11.666666667, current, 1e-6)

	var invalid *InvalidParameterError
	_, err = NewRollingVWAP(0)
	require.Error(t, err)
	assert.True(t, errors.As(err, &invalid))
}

func Test_AnchoredVWAP_Time(t *testing.T) {
	bars := vwapFixture()

	vwap := NewAnchoredVWAP(60_000)

	got, err := vwap.Calculate(bars)
	require.NoError(t, err)

	nan := math.NaN()
	want := []float64{nan, 10., 10.25, 10.833333333}
	assertSeriesInDelta(t, want, got, 1e-6)

	streamed, err := vwap.Init(bars)
	require.NoError(t, err)
	assertSeriesInDelta(t, got, streamed, 1e-9)

	// Reset keeps the anchor, replaying lands on the same series
	vwap.Reset()
	assert.False(t, vwap.Ready())
	again, err := vwap.Init(bars)
	require.NoError(t, err)
	assertSeriesInDelta(t, streamed, again, 1e-9)
}

func Test_AnchoredVWAP_Index(t *testing.T) {
	bars := vwapFixture()

	vwap := NewAnchoredVWAPIndex(2)
	got, err := vwap.Calculate(bars)
	require.NoError(t, err)

	nan := math.NaN()
	assertSeriesInDelta(t, []float64{nan, nan, 11., 11.666666667}, got, 1e-6)

	ts, ok := vwap.AnchorTime()
	assert.False(t, ok)
	assert.Zero(t, ts)

	// negative indexes clamp to the series start
	clamped := NewAnchoredVWAPIndex(-5)
	got, err = clamped.Calculate(bars)
	require.NoError(t, err)
	assertSeriesInDelta(t, []float64{9., 9.75, 10., 10.571428571}, got, 1e-6)

	// an index beyond the series anchors nothing
	far := NewAnchoredVWAPIndex(10)
	got, err = far.Calculate(bars)
	require.NoError(t, err)
	for i, v := range got {
		assert.True(t, math.IsNaN(v), "index %d", i)
	}
}

func Test_AnchoredVWAP_AnchorNext(t *testing.T) {
	bars := vwapFixture()

	vwap := NewAnchoredVWAP(0)
	vwap.AnchorNext()

	_, ok := vwap.AnchorTime()
	assert.False(t, ok)

	v, ok := vwap.Next(bars[2])
	assert.True(t, ok)
	assert.InDelta(t, 11., v, 1e-9)

	// binding records the first consumed bar's timestamp
	ts, ok := vwap.AnchorTime()
	assert.True(t, ok)
	assert.Equal(t, int64(120_000), ts)

	v, ok = vwap.Next(bars[3])
	assert.True(t, ok)
	assert.InDelta(t, 11.666666667, v, 1e-6)

	// SetAnchor rebinds and drops the accumulators
	vwap.SetAnchor(86_400_000)
	assert.False(t, vwap.Ready())
	_, err := vwap.Current()
	assert.True(t, errors.Is(err, ErrNotInitialized))
}

func Test_AnchorIndexForTime(t *testing.T) {
	bars := vwapFixture()

	idx, ok := AnchorIndexForTime(bars, 130_000)
	assert.True(t, ok)
	assert.Equal(t, 3, idx)

	idx, ok = AnchorIndexForTime(bars, 0)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = AnchorIndexForTime(bars, 86_400_001)
	assert.False(t, ok)
}

func Test_VWAP_StreamMatchesBatch(t *testing.T) {
	bars := testBars(100)

	session := NewSessionVWAP()
	batch, err := session.Calculate(bars)
	require.NoError(t, err)
	streamed, err := session.Init(bars)
	require.NoError(t, err)
	assertSeriesInDelta(t, batch, streamed, 1e-6)

	rolling, err := NewRollingVWAP(14)
	require.NoError(t, err)
	batch, err = rolling.Calculate(bars)
	require.NoError(t, err)
	streamed, err = rolling.Init(bars)
	require.NoError(t, err)
	assertSeriesInDelta(t, batch, streamed, 1e-6)

	anchored := NewAnchoredVWAP(bars[30].Timestamp)
	batch, err = anchored.Calculate(bars)
	require.NoError(t, err)
	streamed, err = anchored.Init(bars)
	require.NoError(t, err)
	assertSeriesInDelta(t, batch, streamed, 1e-6)
}
