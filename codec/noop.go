package codec

import (
	"math"

	"github.com/arloliu/brro/binario"
)

// Noop stores every sample verbatim, rounded to the nearest integer. It is
// the fallback codec: it never fails and never loses more than rounding
// precision, at the cost of no real compression.
type Noop struct{}

func (Noop) ID() ID { return IDNoop }

func (Noop) Encode(data []float64) ([]byte, error) {
	w := binario.NewWriter()
	defer w.Release()

	for _, v := range data {
		w.WriteZigzag(int64(math.Round(v)))
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out, nil
}

func (Noop) Decode(payload []byte, count int) ([]float64, error) {
	r := binario.NewReader(payload)
	out := make([]float64, count)
	for i := 0; i < count; i++ {
		v, err := r.Zigzag()
		if err != nil {
			return nil, err
		}
		out[i] = float64(v)
	}
	return out, nil
}
