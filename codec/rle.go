package codec

import (
	"math"
	"sort"

	"github.com/arloliu/brro/binario"
	"github.com/arloliu/brro/stats"
)

// RLE run-length encodes a window by grouping every maximal run of equal
// (rounded) values under that value, recording every position where the
// run starts. Values are tagged with the narrowest integer bitdepth that
// covers the window, or stored as raw f64 if any sample is fractional. It
// favors windows with long plateaus and occasional jumps, e.g. step-function
// metrics.
type RLE struct{}

func (RLE) ID() ID { return IDRLE }

type rleRun struct {
	start int
	value float64
}

// quantize maps a sample to the value RLE groups runs by: the raw value for
// an f64-bitdepth window, the rounded integer otherwise.
func quantize(v float64, bd stats.Bitdepth) float64 {
	if bd == stats.BitdepthF64 {
		return v
	}
	return math.Round(v)
}

// rleRuns finds every maximal run of equal quantized values in data.
func rleRuns(data []float64, bd stats.Bitdepth) []rleRun {
	if len(data) == 0 {
		return nil
	}

	runs := make([]rleRun, 0)
	cur := quantize(data[0], bd)
	runs = append(runs, rleRun{0, cur})
	for i := 1; i < len(data); i++ {
		v := quantize(data[i], bd)
		if v != cur {
			cur = v
			runs = append(runs, rleRun{i, cur})
		}
	}
	return runs
}

type rleGroup struct {
	value  float64
	starts []int
}

// groupRuns merges runs into one group per distinct value, ordered by the
// bit pattern of each value's float64 representation, so the payload is a
// sequence of (value, run starts) rather than one entry per run.
func groupRuns(runs []rleRun) []rleGroup {
	index := make(map[float64]int, len(runs))
	groups := make([]rleGroup, 0, len(runs))

	for _, r := range runs {
		i, ok := index[r.value]
		if !ok {
			i = len(groups)
			index[r.value] = i
			groups = append(groups, rleGroup{value: r.value})
		}
		groups[i].starts = append(groups[i].starts, r.start)
	}

	sort.Slice(groups, func(i, j int) bool {
		return math.Float64bits(groups[i].value) < math.Float64bits(groups[j].value)
	})

	return groups
}

func (RLE) Encode(data []float64) ([]byte, error) {
	s := stats.New(data)
	groups := groupRuns(rleRuns(data, s.Bitdepth))

	w := binario.NewWriter()
	defer w.Release()

	w.WriteByte(byte(s.Bitdepth))
	w.WriteVarint(uint64(len(groups)))
	for _, g := range groups {
		writeBitdepthValue(w, s.Bitdepth, g.value)
		w.WriteVarint(uint64(len(g.starts)))
		for _, start := range g.starts {
			w.WriteVarint(uint64(start))
		}
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out, nil
}

func (RLE) Decode(payload []byte, count int) ([]float64, error) {
	r := binario.NewReader(payload)

	bdByte, err := r.Byte()
	if err != nil {
		return nil, err
	}
	bd := stats.Bitdepth(bdByte)

	numGroups, err := r.Varint()
	if err != nil {
		return nil, err
	}

	type run struct {
		start int
		value float64
	}
	runs := make([]run, 0)

	for i := uint64(0); i < numGroups; i++ {
		val, err := readBitdepthValue(r, bd)
		if err != nil {
			return nil, err
		}

		numStarts, err := r.Varint()
		if err != nil {
			return nil, err
		}
		for j := uint64(0); j < numStarts; j++ {
			pos, err := r.Varint()
			if err != nil {
				return nil, err
			}
			runs = append(runs, run{int(pos), val})
		}
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].start < runs[j].start })

	out := make([]float64, count)
	for i, rn := range runs {
		end := count
		if i+1 < len(runs) {
			end = runs[i+1].start
		}
		for j := rn.start; j < end && j < count; j++ {
			out[j] = rn.value
		}
	}

	return out, nil
}

func writeBitdepthValue(w *binario.Writer, bd stats.Bitdepth, v float64) {
	switch bd {
	case stats.BitdepthU8:
		w.WriteByte(byte(int64(math.Round(v))))
	case stats.BitdepthF64:
		w.WriteFloat64(v)
	default:
		w.WriteZigzag(int64(math.Round(v)))
	}
}

func readBitdepthValue(r *binario.Reader, bd stats.Bitdepth) (float64, error) {
	switch bd {
	case stats.BitdepthU8:
		b, err := r.Byte()
		return float64(b), err
	case stats.BitdepthF64:
		return r.Float64()
	default:
		v, err := r.Zigzag()
		return float64(v), err
	}
}
