package indicator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// On a linear ramp the Hull construction cancels the weighted-average lag
// completely, so the output equals the current input once warmed up.
func Test_HMA_LinearRampIsLagFree(t *testing.T) {
	var Delta = 1e-9

	values := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	hma, err := NewHMA(4)
	require.NoError(t, err)

	got, err := hma.Calculate(values)
	require.NoError(t, err)
	nan := math.NaN()
	assertSeriesInDelta(t, []float64{nan, nan, nan, nan, 5, 6, 7, 8}, got, Delta)

	// period 9 uses a sqrt window of 3, warmup 9+3-2
	long := make([]float64, 20)
	for i := range long {
		long[i] = float64(i) * 2.
	}
	hma9, err := NewHMA(9)
	require.NoError(t, err)
	out, err := hma9.Calculate(long)
	require.NoError(t, err)
	assert.Equal(t, 10, firstFinite(out))
	for i := 10; i < len(long); i++ {
		assert.InDelta(t, long[i], out[i], 1e-9, "index %d", i)
	}
}

func Test_HMA_InvalidPeriod(t *testing.T) {
	var invalid *InvalidParameterError
	for _, period := range []int{0, 1} {
		_, err := NewHMA(period)
		require.Error(t, err, "period %d", period)
		assert.True(t, errors.As(err, &invalid))
	}

	_, err := NewHMA(2)
	require.NoError(t, err)
}

func Test_HMA_StreamMatchesBatch(t *testing.T) {
	closes := testSeries(80)

	hma, err := NewHMA(16)
	require.NoError(t, err)

	batch, err := hma.Calculate(closes)
	require.NoError(t, err)
	streamed, err := hma.Init(closes)
	require.NoError(t, err)
	assertSeriesInDelta(t, batch, streamed, 1e-6)

	hma.Reset()
	assert.False(t, hma.Ready())
	again, err := hma.Init(closes)
	require.NoError(t, err)
	assertSeriesInDelta(t, streamed, again, 1e-9)
	assert.True(t, hma.Ready())
}
