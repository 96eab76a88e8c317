package codec

import (
	"math"

	"github.com/arloliu/brro/binario"
)

// Constant represents a window as a single repeated integer value plus an
// explicit list of (position, value) residuals for the samples that don't
// match. It wins whenever a window is mostly one value, e.g. a flat gauge.
type Constant struct{}

func (Constant) ID() ID { return IDConstant }

// pickConstant chooses the most frequent rounded value in data. Ties are
// broken by first occurrence in the data (not by value), so the result is
// deterministic regardless of map iteration order.
func pickConstant(data []float64) int64 {
	counts := make(map[int64]int, len(data))
	firstIndex := make(map[int64]int, len(data))

	for i, v := range data {
		iv := int64(math.Round(v))
		counts[iv]++
		if _, seen := firstIndex[iv]; !seen {
			firstIndex[iv] = i
		}
	}

	best := int64(math.Round(data[0]))
	bestCount := -1
	bestFirst := len(data)
	for iv, c := range counts {
		fi := firstIndex[iv]
		if c > bestCount || (c == bestCount && fi < bestFirst) {
			best = iv
			bestCount = c
			bestFirst = fi
		}
	}

	return best
}

func (Constant) Encode(data []float64) ([]byte, error) {
	constant := pickConstant(data)

	w := binario.NewWriter()
	defer w.Release()

	w.WriteZigzag(constant)

	type residual struct {
		pos int
		val int64
	}
	residuals := make([]residual, 0)
	for i, v := range data {
		if iv := int64(math.Round(v)); iv != constant {
			residuals = append(residuals, residual{i, iv})
		}
	}

	w.WriteVarint(uint64(len(residuals)))
	for _, r := range residuals {
		w.WriteVarint(uint64(r.pos))
		w.WriteZigzag(r.val)
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out, nil
}

func (Constant) Decode(payload []byte, count int) ([]float64, error) {
	r := binario.NewReader(payload)

	constant, err := r.Zigzag()
	if err != nil {
		return nil, err
	}

	out := make([]float64, count)
	cf := float64(constant)
	for i := range out {
		out[i] = cf
	}

	n, err := r.Varint()
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < n; i++ {
		pos, err := r.Varint()
		if err != nil {
			return nil, err
		}
		val, err := r.Zigzag()
		if err != nil {
			return nil, err
		}
		if int(pos) < len(out) {
			out[pos] = float64(val)
		}
	}

	return out, nil
}

// EncodeBounded ignores maxError: Constant is lossless for its residual
// set by construction, so there's nothing to search for.
func (c Constant) EncodeBounded(data []float64, maxError float64) ([]byte, error) {
	return c.Encode(data)
}
