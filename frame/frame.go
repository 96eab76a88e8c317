// Package frame implements the self-describing compressed chunk: a codec
// id, a sample count, and that codec's payload bytes.
package frame

import (
	"fmt"

	"github.com/arloliu/brro/codec"
	"github.com/arloliu/brro/errs"
)

// Frame is one compressed window of samples.
type Frame struct {
	CodecID     codec.ID
	SampleCount int
	Payload     []byte

	warnings []string
}

// Warnings returns any non-fatal notices recorded while building the frame,
// e.g. an FFT window that wasn't a power of two.
func (f *Frame) Warnings() []string { return f.warnings }

func (f *Frame) warn(msg string) { f.warnings = append(f.warnings, msg) }

// Compress encodes data with the codec identified by id, with no error
// bound.
func Compress(data []float64, id codec.ID, reg *codec.Registry) (*Frame, error) {
	if len(data) == 0 {
		return nil, errs.ErrEmptySamples
	}

	c, err := reg.Get(id)
	if err != nil {
		return nil, err
	}

	payload, err := c.Encode(data)
	if err != nil {
		return nil, fmt.Errorf("frame: encode with %s: %w", id, err)
	}

	f := &Frame{CodecID: id, SampleCount: len(data), Payload: payload}
	if id == codec.IDFFT && len(data)&(len(data)-1) != 0 {
		f.warn(fmt.Sprintf("fft: window of %d samples is not a power of two, padded internally", len(data)))
	}

	return f, nil
}

// CompressBounded encodes data with the codec identified by id, searching
// for a representation whose SMAPE against data stays within maxError.
// Codecs that don't implement bounded search (Noop, RLE) fall back to
// their unconditional Encode.
func CompressBounded(data []float64, id codec.ID, maxError float64, reg *codec.Registry) (*Frame, error) {
	if len(data) == 0 {
		return nil, errs.ErrEmptySamples
	}

	c, err := reg.Get(id)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if bc, ok := c.(codec.BoundedCodec); ok {
		payload, err = bc.EncodeBounded(data, maxError)
	} else {
		payload, err = c.Encode(data)
	}
	if err != nil {
		return nil, fmt.Errorf("frame: bounded encode with %s: %w", id, err)
	}

	return &Frame{CodecID: id, SampleCount: len(data), Payload: payload}, nil
}

// subsample returns every step-th sample of data, where step is 2^level.
// It is used to cut the cost of trying every candidate codec: the trial
// runs against a smaller subset, and only the winner is re-run on the
// full chunk. level <= 0, or a step that would leave fewer than two
// samples, returns data unchanged.
func subsample(data []float64, level int) []float64 {
	if level <= 0 {
		return data
	}

	step := 1 << uint(level)
	if step >= len(data) {
		return data
	}

	out := make([]float64, 0, (len(data)+step-1)/step)
	for i := 0; i < len(data); i += step {
		out = append(out, data[i])
	}
	return out
}

// CompressBest tries every automatic codec candidate (Constant, FFT,
// Polynomial) against a trial subset of data and keeps whichever produces
// the smallest payload within maxError, breaking ties by the registry's
// declared priority order. The winning codec is then re-run on the full
// chunk.
//
// sampleLevel controls how aggressively the trial is subsampled: 0 runs
// the trial on the full chunk, and each increment above that halves the
// trial's sampled subset.
func CompressBest(data []float64, maxError float64, sampleLevel int, reg *codec.Registry) (*Frame, error) {
	if len(data) == 0 {
		return nil, errs.ErrEmptySamples
	}

	trial := subsample(data, sampleLevel)

	var winner codec.BoundedCodec
	var winnerLen int
	for _, c := range reg.Bounded() {
		payload, err := c.EncodeBounded(trial, maxError)
		if err != nil {
			continue
		}
		out, err := c.Decode(payload, len(trial))
		if err != nil || codec.SMAPE(trial, out) > maxError {
			continue
		}
		if winner == nil || len(payload) < winnerLen {
			winner = c
			winnerLen = len(payload)
		}
	}

	if winner == nil {
		return Compress(data, codec.IDNoop, reg)
	}

	payload, err := winner.EncodeBounded(data, maxError)
	if err != nil {
		return Compress(data, codec.IDNoop, reg)
	}

	return &Frame{CodecID: winner.ID(), SampleCount: len(data), Payload: payload}, nil
}

// Decompress reconstructs the frame's samples.
func (f *Frame) Decompress(reg *codec.Registry) ([]float64, error) {
	c, err := reg.Get(f.CodecID)
	if err != nil {
		return nil, err
	}

	out, err := c.Decode(f.Payload, f.SampleCount)
	if err != nil {
		return nil, fmt.Errorf("frame: decode with %s: %w", f.CodecID, err)
	}

	return out, nil
}
