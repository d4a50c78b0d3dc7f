package indicator

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/c9s/ta/pkg/types"
)

var logVolumeProfile = logrus.WithField("indicator", "VolumeProfile")

const (
	DefaultVolumeProfileBins = 100
	DefaultValueAreaFraction = 0.70

	// 2^-52, below this the price range is treated as flat
	flatRangeEpsilon = 2.220446049250313e-16

	// streaming buffer size at which a warning is logged
	volumeProfileGrowthWarning = 10_000
)

// ProfileBin is one row of the volume histogram.
type ProfileBin struct {
	// Price is the center of the bin
	Price  float64
	Volume float64
	Low    float64
	High   float64
}

// Profile is a fixed-range volume profile: the histogram plus the derived
// point of control and value area levels.
type Profile struct {
	POC             float64
	VAH             float64
	VAL             float64
	TotalVolume     float64
	POCVolume       float64
	ValueAreaVolume float64
	RangeHigh       float64
	RangeLow        float64
	Histogram       []ProfileBin
}

/*
volumeprofile implements the Fixed Range Volume Profile (FRVP).

- https://www.tradingview.com/support/solutions/43000502040-volume-profile/

The price range [min low, max high] over the input bars is split into a
fixed number of bins and each bar's volume is distributed over the bins
it overlaps, proportionally to the overlap. The Point of Control (POC) is
the heaviest bin. The value area grows outward from the POC, one bin at a
time toward the heavier neighbor, until it holds the configured fraction
of the total volume.
*/
type VolumeProfile struct {
	bins              int
	valueAreaFraction float64

	bars        []types.OHLCV
	initialized bool
}

func NewVolumeProfile(bins int) (*VolumeProfile, error) {
	return NewVolumeProfileWithValueArea(bins, DefaultValueAreaFraction)
}

func NewVolumeProfileWithValueArea(bins int, fraction float64) (*VolumeProfile, error) {
	if bins < 1 {
		return nil, errInvalidParameterf("volume profile: bins must be >= 1, got %d", bins)
	}
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return nil, errInvalidParameterf("volume profile: value area fraction must be in [0, 1], got %v", fraction)
	}

	return &VolumeProfile{bins: bins, valueAreaFraction: fraction}, nil
}

func (inc *VolumeProfile) Bins() int { return inc.bins }

func (inc *VolumeProfile) ValueAreaFraction() float64 { return inc.valueAreaFraction }

func (inc *VolumeProfile) Calculate(bars []types.OHLCV) (*Profile, error) {
	if len(bars) == 0 {
		return nil, errInsufficientData(1, 0)
	}

	rangeHigh := math.Inf(-1)
	rangeLow := math.Inf(1)
	for _, bar := range bars {
		rangeHigh = math.Max(rangeHigh, bar.High)
		rangeLow = math.Min(rangeLow, bar.Low)
	}

	if math.Abs(rangeHigh-rangeLow) < flatRangeEpsilon {
		var totalVolume float64
		for _, bar := range bars {
			totalVolume += bar.Volume
		}
		return &Profile{
			POC:             rangeHigh,
			VAH:             rangeHigh,
			VAL:             rangeLow,
			TotalVolume:     totalVolume,
			POCVolume:       totalVolume,
			ValueAreaVolume: totalVolume,
			RangeHigh:       rangeHigh,
			RangeLow:        rangeLow,
			Histogram: []ProfileBin{
				{Price: rangeHigh, Volume: totalVolume, Low: rangeLow, High: rangeHigh},
			},
		}, nil
	}

	binSize := (rangeHigh - rangeLow) / float64(inc.bins)
	bins := make([]float64, inc.bins)

	for _, bar := range bars {
		if bar.Volume <= 0 {
			continue
		}

		startBin := clampBin(int(math.Floor((bar.Low-rangeLow)/binSize)), inc.bins)
		endBin := clampBin(int(math.Floor((bar.High-rangeLow)/binSize)), inc.bins)

		barRange := bar.High - bar.Low
		if barRange < flatRangeEpsilon {
			bins[startBin] += bar.Volume
			continue
		}

		for b := startBin; b <= endBin; b++ {
			binLow := rangeLow + float64(b)*binSize
			binHigh := binLow + binSize

			overlap := math.Max(0, math.Min(bar.High, binHigh)-math.Max(bar.Low, binLow))
			bins[b] += bar.Volume * overlap / barRange
		}
	}

	var totalVolume float64
	for _, v := range bins {
		totalVolume += v
	}

	pocIdx := 0
	pocVolume := 0.
	for i, v := range bins {
		if v > pocVolume {
			pocVolume = v
			pocIdx = i
		}
	}

	valIdx, vahIdx := valueArea(bins, pocIdx, totalVolume*inc.valueAreaFraction)

	histogram := make([]ProfileBin, inc.bins)
	for i, v := range bins {
		low := rangeLow + float64(i)*binSize
		high := low + binSize
		histogram[i] = ProfileBin{Price: (low + high) / 2., Volume: v, Low: low, High: high}
	}

	var valueAreaVolume float64
	for i := valIdx; i <= vahIdx; i++ {
		valueAreaVolume += bins[i]
	}

	return &Profile{
		POC:             rangeLow + (float64(pocIdx)+0.5)*binSize,
		VAH:             rangeLow + float64(vahIdx+1)*binSize,
		VAL:             rangeLow + float64(valIdx)*binSize,
		TotalVolume:     totalVolume,
		POCVolume:       pocVolume,
		ValueAreaVolume: valueAreaVolume,
		RangeHigh:       rangeHigh,
		RangeLow:        rangeLow,
		Histogram:       histogram,
	}, nil
}

func clampBin(idx, bins int) int {
	if idx < 0 {
		return 0
	}
	if idx > bins-1 {
		return bins - 1
	}
	return idx
}

// valueArea expands the [val, vah] bin range outward from the POC toward
// the heavier neighboring bin, ties toward the lower bins, until the
// enclosed volume reaches target or no expansion is left.
func valueArea(bins []float64, pocIdx int, target float64) (valIdx, vahIdx int) {
	valIdx = pocIdx
	vahIdx = pocIdx
	current := bins[pocIdx]

	for current < target {
		canDown := valIdx > 0
		canUp := vahIdx < len(bins)-1
		if !canDown && !canUp {
			break
		}

		downVolume := 0.
		if canDown {
			downVolume = bins[valIdx-1]
		}
		upVolume := 0.
		if canUp {
			upVolume = bins[vahIdx+1]
		}

		switch {
		case downVolume >= upVolume && canDown:
			valIdx--
			current += downVolume
		case canUp:
			vahIdx++
			current += upVolume
		default:
			valIdx--
			current += downVolume
		}
	}

	return valIdx, vahIdx
}

// Init loads the prefix into the streaming buffer and returns one profile
// covering the whole prefix, or nil for an empty prefix.
func (inc *VolumeProfile) Init(prefix []types.OHLCV) (*Profile, error) {
	inc.bars = append(inc.bars[:0], prefix...)
	inc.initialized = len(prefix) > 0
	if !inc.initialized {
		return nil, nil
	}

	return inc.Calculate(inc.bars)
}

// Next appends one bar and recomputes the profile over every bar seen
// since the last Reset. The cost grows with the buffer, so long-lived
// streams should Reset periodically.
func (inc *VolumeProfile) Next(bar types.OHLCV) (*Profile, bool) {
	inc.bars = append(inc.bars, bar)
	inc.initialized = true
	if len(inc.bars) == volumeProfileGrowthWarning {
		logVolumeProfile.Warnf("streaming buffer reached %d bars, recomputation cost grows linearly, consider Reset", len(inc.bars))
	}

	profile, err := inc.Calculate(inc.bars)
	if err != nil {
		return nil, false
	}

	return profile, true
}

func (inc *VolumeProfile) Reset() {
	inc.bars = inc.bars[:0]
	inc.initialized = false
}

func (inc *VolumeProfile) Ready() bool {
	return inc.initialized && len(inc.bars) > 0
}

// Profile recomputes the profile for the buffered bars without consuming
// a new one.
func (inc *VolumeProfile) Profile() (*Profile, error) {
	if !inc.Ready() {
		return nil, ErrNotInitialized
	}

	return inc.Calculate(inc.bars)
}

func (inc *VolumeProfile) BarCount() int { return len(inc.bars) }
