package types

import (
	"github.com/c9s/ta/pkg/datatype/floats"
)

// OHLCV is a single bar of market data. Timestamp is the bar time in Unix
// milliseconds. The bar invariants (low <= open,close <= high, volume >= 0)
// are the producer's responsibility and are not re-checked here.
type OHLCV struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func NewOHLCV(timestamp int64, open, high, low, close, volume float64) OHLCV {
	return OHLCV{
		Timestamp: timestamp,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    volume,
	}
}

// TypicalPrice returns (high + low + close) / 3.
func (k OHLCV) TypicalPrice() float64 {
	return (k.High + k.Low + k.Close) / 3.0
}

// MedianPrice returns (high + low) / 2.
func (k OHLCV) MedianPrice() float64 {
	return (k.High + k.Low) / 2.0
}

// OHLCVSeries is an ordered bar series with column extractors, for callers
// that hold bars but need to feed the single-column indicator inputs.
type OHLCVSeries []OHLCV

func (s OHLCVSeries) Opens() floats.Slice {
	out := make(floats.Slice, 0, len(s))
	for _, k := range s {
		out.Push(k.Open)
	}
	return out
}

func (s OHLCVSeries) Highs() floats.Slice {
	out := make(floats.Slice, 0, len(s))
	for _, k := range s {
		out.Push(k.High)
	}
	return out
}

func (s OHLCVSeries) Lows() floats.Slice {
	out := make(floats.Slice, 0, len(s))
	for _, k := range s {
		out.Push(k.Low)
	}
	return out
}

func (s OHLCVSeries) Closes() floats.Slice {
	out := make(floats.Slice, 0, len(s))
	for _, k := range s {
		out.Push(k.Close)
	}
	return out
}

func (s OHLCVSeries) Volumes() floats.Slice {
	out := make(floats.Slice, 0, len(s))
	for _, k := range s {
		out.Push(k.Volume)
	}
	return out
}
