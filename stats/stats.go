// Package stats computes single-pass descriptive statistics over a window
// of float64 samples, used by the RLE codec to pick a narrow integer
// representation.
package stats

import "math"

// Bitdepth identifies the narrowest integer width that can hold every
// sample in a window once rounded to the nearest integer.
type Bitdepth uint8

const (
	BitdepthU8 Bitdepth = iota
	BitdepthI16
	BitdepthI32
	BitdepthF64
)

func (b Bitdepth) String() string {
	switch b {
	case BitdepthU8:
		return "u8"
	case BitdepthI16:
		return "i16"
	case BitdepthI32:
		return "i32"
	default:
		return "f64"
	}
}

// DataStats summarizes a sample window in a single pass.
type DataStats struct {
	Max        float64
	MaxPos     int
	Min        float64
	MinPos     int
	Mean       float64
	Fractional bool
	Bitdepth   Bitdepth
}

// New computes DataStats over data. data must not be empty.
func New(data []float64) DataStats {
	s := DataStats{Max: data[0], Min: data[0]}
	var sum float64
	maxInt, minInt := int64(math.Round(data[0])), int64(math.Round(data[0]))

	for i, v := range data {
		if v > s.Max {
			s.Max = v
			s.MaxPos = i
		}
		if v < s.Min {
			s.Min = v
			s.MinPos = i
		}
		if math.Trunc(v) != v {
			s.Fractional = true
		}

		rounded := int64(math.Round(v))
		if rounded > maxInt {
			maxInt = rounded
		}
		if rounded < minInt {
			minInt = rounded
		}

		sum += v
	}

	s.Mean = sum / float64(len(data))
	s.Bitdepth = selectBitdepth(maxInt, minInt, s.Fractional)

	return s
}

// selectBitdepth picks the narrowest integer width covering [minInt, maxInt].
// Any fractional sample forces f64, since no integer width is lossless.
func selectBitdepth(maxInt, minInt int64, fractional bool) Bitdepth {
	if fractional {
		return BitdepthF64
	}
	switch {
	case minInt >= 0 && maxInt <= math.MaxUint8:
		return BitdepthU8
	case minInt >= math.MinInt16 && maxInt <= math.MaxInt16:
		return BitdepthI16
	case minInt >= math.MinInt32 && maxInt <= math.MaxInt32:
		return BitdepthI32
	default:
		return BitdepthF64
	}
}
