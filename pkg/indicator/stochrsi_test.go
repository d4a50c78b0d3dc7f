package indicator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_StochRSI(t *testing.T) {
	var Delta = 1e-9

	// closes [1 2 3 2 1 2 3] under a 2-period RSI give the stream
	// 100, 50, 25, 62.5, 81.25 starting at index 2. A 2-bar stochastic
	// over that stream pins to 0 on the way down and 100 on the way up.
	closes := []float64{1, 2, 3, 2, 1, 2, 3}

	stochrsi, err := NewStochRSI(2, 2, 1, 2)
	require.NoError(t, err)

	got, err := stochrsi.Calculate(closes)
	require.NoError(t, err)
	require.Len(t, got, len(closes))

	for i := 0; i < 3; i++ {
		assert.True(t, math.IsNaN(got[i].K), "index %d", i)
	}

	assert.InDelta(t, 0., got[3].K, Delta)
	assert.True(t, math.IsNaN(got[3].D))

	assert.InDelta(t, 0., got[4].K, Delta)
	assert.InDelta(t, 0., got[4].D, Delta)

	assert.InDelta(t, 100., got[5].K, Delta)
	assert.InDelta(t, 50., got[5].D, Delta)

	assert.InDelta(t, 100., got[6].K, Delta)
	assert.InDelta(t, 100., got[6].D, Delta)
}

func Test_StochRSI_FlatInput(t *testing.T) {
	// constant closes keep the RSI at 50, so the stochastic window is flat
	// and the raw value pins to 50 as well
	closes := []float64{5, 5, 5, 5, 5, 5}

	stochrsi, err := NewStochRSI(2, 2, 1, 1)
	require.NoError(t, err)
	got, err := stochrsi.Calculate(closes)
	require.NoError(t, err)

	for i := 3; i < len(got); i++ {
		assert.InDelta(t, 50., got[i].K, 1e-9, "index %d", i)
		assert.InDelta(t, 50., got[i].D, 1e-9, "index %d", i)
	}
}

func Test_StochRSI_InvalidParameters(t *testing.T) {
	var invalid *InvalidParameterError
	for _, tt := range []struct{ rsi, stoch, k, d int }{
		{0, 14, 3, 3},
		{14, 0, 3, 3},
		{14, 14, 0, 3},
		{14, 14, 3, 0},
	} {
		_, err := NewStochRSI(tt.rsi, tt.stoch, tt.k, tt.d)
		require.Error(t, err)
		assert.True(t, errors.As(err, &invalid))
	}
}

func Test_StochRSI_StreamMatchesBatch(t *testing.T) {
	series := testSeries(120)

	stochrsi, err := NewStochRSI(14, 14, 3, 3)
	require.NoError(t, err)

	batch, err := stochrsi.Calculate(series)
	require.NoError(t, err)
	streamed, err := stochrsi.Init(series)
	require.NoError(t, err)
	require.Equal(t, len(batch), len(streamed))

	for i := range batch {
		assertSeriesInDelta(t,
			[]float64{batch[i].K, batch[i].D},
			[]float64{streamed[i].K, streamed[i].D},
			1e-6)
	}

	stochrsi.Reset()
	assert.False(t, stochrsi.Ready())
	again, err := stochrsi.Init(series)
	require.NoError(t, err)
	for i := range streamed {
		assertSeriesInDelta(t,
			[]float64{streamed[i].K, streamed[i].D},
			[]float64{again[i].K, again[i].D},
			1e-9)
	}
	assert.True(t, stochrsi.Ready())
}
