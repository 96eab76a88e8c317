// Package optimizer partitions a raw sample stream into frame-sized chunks
// and assigns each chunk a codec before the frame package encodes it.
package optimizer

import (
	"math"
	"math/bits"

	"github.com/arloliu/brro/codec"
	"github.com/arloliu/brro/frame"
)

// MaxFrameSize caps how many samples a single frame may hold, which caps
// the amount of data decoded just to read a small slice of it. MinFrameSize
// is the remainder at or below which ChunkSizes stops splitting and emits
// the rest as one final chunk, so no extra tiny trailing frame is cut off;
// that final chunk can itself be smaller than MinFrameSize.
const (
	MaxFrameSize = 131072 // 2^17
	MinFrameSize = 512    // 2^9
)

// CleanData drops NaN and infinite samples, which no codec can represent.
func CleanData(data []float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// prevPow2 returns the largest power of two <= n (n >= 1).
func prevPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << (bits.Len(uint(n)) - 1)
}

// ChunkSizes partitions len into frame sizes: MaxFrameSize while enough data
// remains, a power-of-two chunk while more than MinFrameSize remains, and a
// final remainder chunk once len drops to MinFrameSize or below.
func ChunkSizes(length int) []int {
	sizes := make([]int, 0)
	for length > 0 {
		switch {
		case length >= MaxFrameSize:
			sizes = append(sizes, MaxFrameSize)
			length -= MaxFrameSize
		case length <= MinFrameSize:
			sizes = append(sizes, length)
			length = 0
		default:
			size := prevPow2(length)
			sizes = append(sizes, size)
			length -= size
		}
	}
	return sizes
}

// Plan is a partitioned, codec-assigned view of a sample stream, ready to
// be compressed chunk by chunk.
type Plan struct {
	Data       []float64
	ChunkSizes []int
	// Pinned, when set, forces every chunk to use this codec instead of
	// the automatic best-fit search.
	Pinned codec.ID
}

// CreatePlan cleans data and partitions it into frame-sized chunks with no
// pinned codec, deferring codec choice to frame.CompressBest.
func CreatePlan(data []float64) Plan {
	clean := CleanData(data)
	return Plan{Data: clean, ChunkSizes: ChunkSizes(len(clean))}
}

// CreatePlanWithCodec cleans data and partitions it, pinning every chunk to
// the given codec.
func CreatePlanWithCodec(data []float64, id codec.ID) Plan {
	clean := CleanData(data)
	return Plan{Data: clean, ChunkSizes: ChunkSizes(len(clean)), Pinned: id}
}

// Chunks yields each chunk's sample slice in order.
func (p Plan) Chunks() [][]float64 {
	chunks := make([][]float64, 0, len(p.ChunkSizes))
	offset := 0
	for _, size := range p.ChunkSizes {
		chunks = append(chunks, p.Data[offset:offset+size])
		offset += size
	}
	return chunks
}

// CompressAll runs each chunk through frame.Compress, frame.CompressBounded
// or frame.CompressBest depending on whether a codec is pinned and whether
// maxError is positive.
func (p Plan) CompressAll(maxError float64, sampleLevel int, reg *codec.Registry) ([]*frame.Frame, error) {
	chunks := p.Chunks()
	frames := make([]*frame.Frame, 0, len(chunks))

	for _, chunk := range chunks {
		var (
			f   *frame.Frame
			err error
		)
		switch {
		case p.Pinned != codec.IDAuto && maxError > 0:
			f, err = frame.CompressBounded(chunk, p.Pinned, maxError, reg)
		case p.Pinned != codec.IDAuto:
			f, err = frame.Compress(chunk, p.Pinned, reg)
		case maxError > 0:
			f, err = frame.CompressBest(chunk, maxError, sampleLevel, reg)
		default:
			f, err = frame.Compress(chunk, codec.IDNoop, reg)
		}
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}

	return frames, nil
}
