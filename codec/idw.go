package codec

import (
	"math"

	"github.com/arloliu/brro/binario"
)

// IDW reconstructs a window from a sparse set of knots using Shepard's
// inverse-distance weighting. It favors smoothly varying signals where a
// handful of representative points capture the overall shape.
type IDW struct{}

func (IDW) ID() ID { return IDIDW }

func (IDW) Encode(data []float64) ([]byte, error) {
	return encodeIDW(data, baselinePointCount(len(data)))
}

func encodeIDW(data []float64, pointCount int) ([]byte, error) {
	positions := selectKnots(data, pointCount)

	w := binario.NewWriter()
	defer w.Release()

	w.WriteVarint(uint64(len(positions)))
	for _, p := range positions {
		w.WriteVarint(uint64(p))
		w.WriteFloat64(data[p])
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out, nil
}

// EncodeBounded grows the knot count until the reconstruction's SMAPE
// falls within maxError, following the same jump schedule for the first
// 22 iterations before giving up and returning the densest attempt.
func (i IDW) EncodeBounded(data []float64, maxError float64) ([]byte, error) {
	baseline := baselinePointCount(len(data))
	points := baseline
	jump := 0

	var best []byte
	for iter := 1; ; iter++ {
		payload, err := encodeIDW(data, points+jump)
		if err != nil {
			return nil, err
		}
		best = payload

		out, err := i.Decode(payload, len(data))
		if err != nil {
			return nil, err
		}
		if SMAPE(data, out) <= maxError {
			return payload, nil
		}
		if points+jump >= len(data) {
			return payload, nil
		}

		switch {
		case iter <= 17:
			jump += (points + jump) / 2
		case iter <= 22:
			jump += (points + jump) / 10
		default:
			return best, nil
		}
		if baseline/2 == 0 && baseline/10 == 0 {
			return best, nil
		}
	}
}

func (IDW) Decode(payload []byte, count int) ([]float64, error) {
	r := binario.NewReader(payload)

	n, err := r.Varint()
	if err != nil {
		return nil, err
	}

	positions := make([]int, n)
	values := make([]float64, n)
	for i := uint64(0); i < n; i++ {
		p, err := r.Varint()
		if err != nil {
			return nil, err
		}
		v, err := r.Float64()
		if err != nil {
			return nil, err
		}
		positions[i] = int(p)
		values[i] = v
	}

	out := make([]float64, count)
	for x := 0; x < count; x++ {
		out[x] = idwEvaluate(positions, values, x)
	}

	return out, nil
}

// idwEvaluate computes Shepard's inverse-square-distance-weighted value at
// position x. An exact match to a knot returns that knot's value without
// dividing by zero.
func idwEvaluate(positions []int, values []float64, x int) float64 {
	var weightedSum, weightTotal float64
	for i, p := range positions {
		if p == x {
			return values[i]
		}
		d := float64(x - p)
		w := 1 / (d * d)
		weightedSum += w * values[i]
		weightTotal += w
	}
	if weightTotal == 0 {
		return math.NaN()
	}
	return weightedSum / weightTotal
}
