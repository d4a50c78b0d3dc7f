package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/ta/pkg/types"
)

func Test_PivotPoints_Standard(t *testing.T) {
	var Delta = 1e-9

	p := NewPivotPoints(PivotStandard).Compute(110, 100, 105)
	require.True(t, p.Valid())

	assert.InDelta(t, 105., p.Pivot, Delta)
	assert.InDelta(t, 110., p.R1, Delta)
	assert.InDelta(t, 115., p.R2, Delta)
	assert.InDelta(t, 120., p.R3, Delta)
	assert.InDelta(t, 100., p.S1, Delta)
	assert.InDelta(t, 95., p.S2, Delta)
	assert.InDelta(t, 90., p.S3, Delta)
}

func Test_PivotPoints_Fibonacci(t *testing.T) {
	var Delta = 1e-9

	p := NewPivotPoints(PivotFibonacci).Compute(110, 100, 105)

	assert.InDelta(t, 105., p.Pivot, Delta)
	assert.InDelta(t, 108.82, p.R1, Delta)
	assert.InDelta(t, 111.18, p.R2, Delta)
	assert.InDelta(t, 115., p.R3, Delta)
	assert.InDelta(t, 101.18, p.S1, Delta)
	assert.InDelta(t, 98.82, p.S2, Delta)
	assert.InDelta(t, 95., p.S3, Delta)
}

func Test_PivotPoints_Woodie(t *testing.T) {
	var Delta = 1e-9

	// Woodie weights the close twice in the pivot, the ladder is standard
	p := NewPivotPoints(PivotWoodie).Compute(110, 100, 108)

	assert.InDelta(t, 106.5, p.Pivot, Delta)
	assert.InDelta(t, 113., p.R1, Delta)
	assert.InDelta(t, 116.5, p.R2, Delta)
	assert.InDelta(t, 123., p.R3, Delta)
	assert.InDelta(t, 103., p.S1, Delta)
	assert.InDelta(t, 96.5, p.S2, Delta)
	assert.InDelta(t, 93., p.S3, Delta)
}

func Test_PivotPoints_NaNInput(t *testing.T) {
	p := NewPivotPoints(PivotStandard).Compute(math.NaN(), 100, 105)
	assert.False(t, p.Valid())
	assert.True(t, math.IsNaN(p.R3))
	assert.True(t, math.IsNaN(p.S3))
}

func Test_PivotPoints_Series(t *testing.T) {
	pp := NewPivotPoints(PivotStandard)

	high := []float64{110, 120}
	low := []float64{100, 110}
	closes := []float64{105, 115}

	got, err := pp.Calculate(high, low, closes)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 105., got[0].Pivot, 1e-9)
	assert.InDelta(t, 115., got[1].Pivot, 1e-9)

	_, err = pp.Calculate(high, low[:1], closes)
	require.Error(t, err)

	// Next has no warmup: the first bar already produces a full record
	assert.False(t, pp.Ready())
	v, ok := pp.Next(types.OHLCV{High: 110, Low: 100, Close: 105})
	assert.True(t, ok)
	assert.True(t, pp.Ready())
	assert.InDelta(t, 105., v.Pivot, 1e-9)

	pp.Reset()
	assert.False(t, pp.Ready())
}

func Test_PivotPoints_StreamMatchesBatch(t *testing.T) {
	bars := testBars(40)
	series := types.OHLCVSeries(bars)

	pp := NewPivotPoints(PivotFibonacci)
	batch, err := pp.Calculate(series.Highs(), series.Lows(), series.Closes())
	require.NoError(t, err)
	streamed, err := pp.Init(bars)
	require.NoError(t, err)
	require.Equal(t, len(batch), len(streamed))

	for i := range batch {
		assertSeriesInDelta(t,
			[]float64{batch[i].Pivot, batch[i].R1, batch[i].R2, batch[i].R3, batch[i].S1, batch[i].S2, batch[i].S3},
			[]float64{streamed[i].Pivot, streamed[i].R1, streamed[i].R2, streamed[i].R3, streamed[i].S1, streamed[i].S2, streamed[i].S3},
			1e-9)
	}
}
