package indicator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/ta/pkg/types"
)

/*
Hand-worked fixture for period 2.

bar   high low close   +DM  -DM  TR
0     10   8   9       -    -    -
1     12   10  11      2    0    3
2     14   12  13      2    0    3
3     13   11  12      0    1    2
4     12   10  11      0    1    2
5     11   9   10      0    1    2

Wilder-2 smoothing seeds with the two-sample mean, so the DI lines appear
at index 2 and the ADX at index 3.
*/
func Test_ADX(t *testing.T) {
	var Delta = 1e-4

	high := []float64{10, 12, 14, 13, 12, 11}
	low := []float64{8, 10, 12, 11, 10, 9}
	closes := []float64{9, 11, 13, 12, 11, 10}

	adx, err := NewADX(2)
	require.NoError(t, err)

	got, err := adx.Calculate(high, low, closes)
	require.NoError(t, err)
	require.Len(t, got, 6)

	for i := 0; i < 2; i++ {
		assert.True(t, math.IsNaN(got[i].PlusDI), "index %d", i)
		assert.True(t, math.IsNaN(got[i].ADX), "index %d", i)
	}

	assert.True(t, math.IsNaN(got[2].ADX))
	assert.InDelta(t, 66.66667, got[2].PlusDI, Delta)
	assert.InDelta(t, 0., got[2].MinusDI, Delta)

	assert.InDelta(t, 66.66667, got[3].ADX, Delta)
	assert.InDelta(t, 40., got[3].PlusDI, Delta)
	assert.InDelta(t, 20., got[3].MinusDI, Delta)

	assert.InDelta(t, 43.33333, got[4].ADX, Delta)
	assert.InDelta(t, 22.22222, got[4].PlusDI, Delta)
	assert.InDelta(t, 33.33333, got[4].MinusDI, Delta)

	assert.InDelta(t, 49.44444, got[5].ADX, Delta)
	assert.InDelta(t, 11.76471, got[5].PlusDI, Delta)
	assert.InDelta(t, 41.17647, got[5].MinusDI, Delta)
}

func Test_ADX_FlatRange(t *testing.T) {
	// identical bars produce zero directional movement and zero true
	// range, every ratio collapses to zero instead of dividing by zero
	high := []float64{10, 10, 10, 10}
	low := []float64{10, 10, 10, 10}
	closes := []float64{10, 10, 10, 10}

	adx, err := NewADX(2)
	require.NoError(t, err)
	got, err := adx.Calculate(high, low, closes)
	require.NoError(t, err)

	assert.InDelta(t, 0., got[2].PlusDI, 1e-9)
	assert.InDelta(t, 0., got[2].MinusDI, 1e-9)
	assert.InDelta(t, 0., got[3].ADX, 1e-9)
}

func Test_ADX_InvalidPeriod(t *testing.T) {
	_, err := NewADX(0)
	require.Error(t, err)

	var invalid *InvalidParameterError
	assert.True(t, errors.As(err, &invalid))
}

func Test_ADX_StreamMatchesBatch(t *testing.T) {
	bars := testBars(120)
	highs := types.OHLCVSeries(bars).Highs()
	lows := types.OHLCVSeries(bars).Lows()
	closes := types.OHLCVSeries(bars).Closes()

	adx, err := NewADX(14)
	require.NoError(t, err)

	batch, err := adx.Calculate(highs, lows, closes)
	require.NoError(t, err)
	streamed, err := adx.Init(bars)
	require.NoError(t, err)
	require.Equal(t, len(batch), len(streamed))

	// repeated Wilder smoothing compounds rounding, hence the looser bound
	for i := range batch {
		assertSeriesInDelta(t,
			[]float64{batch[i].ADX, batch[i].PlusDI, batch[i].MinusDI},
			[]float64{streamed[i].ADX, streamed[i].PlusDI, streamed[i].MinusDI},
			1e-2)
	}

	adx.Reset()
	again, err := adx.Init(bars)
	require.NoError(t, err)
	for i := range streamed {
		assertSeriesInDelta(t,
			[]float64{streamed[i].ADX, streamed[i].PlusDI, streamed[i].MinusDI},
			[]float64{again[i].ADX, again[i].PlusDI, again[i].MinusDI},
			1e-9)
	}
}
