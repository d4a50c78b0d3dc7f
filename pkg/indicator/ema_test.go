package indicator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EMA(t *testing.T) {
	var Delta = 1e-9

	// alpha 0.5, seeded with the SMA of the first three values
	ema, err := NewEMAWithAlpha(3, 0.5)
	require.NoError(t, err)

	got, err := ema.Calculate([]float64{2, 4, 6, 8, 10})
	require.NoError(t, err)
	assertSeriesInDelta(t, []float64{math.NaN(), math.NaN(), 4, 6, 8}, got, Delta)

	// the default smoothing for period 3 is 2/(3+1) = 0.5
	byPeriod, err := NewEMA(3)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, byPeriod.Alpha(), Delta)

	fromPeriod, err := byPeriod.Calculate([]float64{2, 4, 6, 8, 10})
	require.NoError(t, err)
	assertSeriesInDelta(t, got, fromPeriod, Delta)
}

func Test_EMA_LinearRampSettles(t *testing.T) {
	// on input 0, 1, 2, ... the seeded EMA sits exactly (period-1)/2
	// behind the price from the seed index onward
	period := 5
	ema, err := NewEMA(period)
	require.NoError(t, err)

	ramp := make([]float64, 30)
	for i := range ramp {
		ramp[i] = float64(i)
	}

	out, err := ema.Calculate(ramp)
	require.NoError(t, err)
	lag := float64(period-1) / 2.
	for i := period - 1; i < len(ramp); i++ {
		assert.InDelta(t, ramp[i]-lag, out[i], 1e-9, "index %d", i)
	}
}

func Test_EMA_InvalidParameters(t *testing.T) {
	var invalid *InvalidParameterError

	_, err := NewEMA(0)
	require.Error(t, err)
	assert.True(t, errors.As(err, &invalid))

	for _, alpha := range []float64{0, -0.5, 1.5, math.NaN()} {
		_, err := NewEMAWithAlpha(3, alpha)
		require.Error(t, err, "alpha %v", alpha)
		assert.True(t, errors.As(err, &invalid))
	}

	// alpha 1 is allowed, the seed is still the two-value mean and every
	// later value tracks the input exactly
	ema, err := NewEMAWithAlpha(2, 1)
	require.NoError(t, err)
	out, err := ema.Calculate([]float64{3, 7, 11})
	require.NoError(t, err)
	assertSeriesInDelta(t, []float64{math.NaN(), 5, 11}, out, 1e-9)
}

func Test_EMA_StreamMatchesBatch(t *testing.T) {
	closes := testSeries(60)

	ema, err := NewEMA(9)
	require.NoError(t, err)

	batch, err := ema.Calculate(closes)
	require.NoError(t, err)
	streamed, err := ema.Init(closes)
	require.NoError(t, err)
	assertSeriesInDelta(t, batch, streamed, 1e-6)

	ema.Reset()
	again, err := ema.Init(closes)
	require.NoError(t, err)
	assertSeriesInDelta(t, streamed, again, 1e-9)
}
