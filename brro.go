// Package brro provides a space-efficient binary format for storing
// compressed time-series samples.
//
// A stream is built from one or more frames, each a window of samples
// compressed with one codec (Constant, RLE, FFT, Polynomial, IDW or Noop).
// The bounded search picks among Constant, FFT and Polynomial; RLE and IDW
// are used only when pinned, and Noop stores samples rounded to the
// nearest integer when no error bound or codec is given. The optimizer
// package partitions a raw sample slice into frame-sized chunks; the
// container package serializes the resulting frames into a single
// self-describing byte stream.
//
// # Basic usage
//
//	data := []float64{ /* ... */ }
//	encoded := brro.Compress(data)
//	decoded, err := brro.Decompress(encoded)
//
// Bounded compression trades exactness for size, searching for the
// cheapest codec whose reconstruction stays within a SMAPE error bound:
//
//	encoded, err := brro.CompressBounded(data, 0.02)
package brro

import (
	"github.com/arloliu/brro/codec"
	"github.com/arloliu/brro/container"
	"github.com/arloliu/brro/internal/options"
	"github.com/arloliu/brro/optimizer"
)

var defaultRegistry = codec.NewRegistry()

// Config holds the tunables for CompressWithOptions. The zero value matches
// Compress: no error bound and no pinned codec, so every chunk is stored
// with Noop.
type Config struct {
	maxError    float64
	pinned      codec.ID
	sampleLevel int
}

// Option configures a Config.
type Option = options.Option[*Config]

// WithMaxError sets the per-chunk SMAPE bound for the bounded codec search.
func WithMaxError(maxError float64) Option {
	return options.NoError[*Config](func(c *Config) { c.maxError = maxError })
}

// WithCodec pins every chunk to a specific codec instead of searching.
func WithCodec(id codec.ID) Option {
	return options.NoError[*Config](func(c *Config) { c.pinned = id })
}

// WithSampleLevel controls how much of each chunk CompressBest's trial
// search runs against before re-running the winning codec on the full
// chunk: 0 uses the full chunk, and each increment above that halves the
// sampled subset.
func WithSampleLevel(level int) Option {
	return options.NoError[*Config](func(c *Config) { c.sampleLevel = level })
}

// CompressWithOptions partitions and compresses data according to the
// supplied options, combining WithMaxError, WithCodec and WithSampleLevel
// as needed.
func CompressWithOptions(data []float64, opts ...Option) ([]byte, error) {
	cfg := &Config{}
	if err := options.Apply[*Config](cfg, opts...); err != nil {
		return nil, err
	}

	var plan optimizer.Plan
	if cfg.pinned != codec.IDAuto {
		plan = optimizer.CreatePlanWithCodec(data, cfg.pinned)
	} else {
		plan = optimizer.CreatePlan(data)
	}

	frames, err := plan.CompressAll(cfg.maxError, cfg.sampleLevel, defaultRegistry)
	if err != nil {
		return nil, err
	}
	return container.Encode(frames), nil
}

// Compress partitions data and encodes every chunk with the Noop codec,
// which stores each sample rounded to the nearest integer; no codec search
// is run. Integer-valued data round-trips exactly.
func Compress(data []float64) []byte {
	plan := optimizer.CreatePlan(data)
	frames, err := plan.CompressAll(0, 0, defaultRegistry)
	if err != nil {
		// CompressAll with maxError<=0 and no pinned codec only ever uses
		// Noop, which never fails.
		panic(err)
	}
	return container.Encode(frames)
}

// CompressBounded partitions data and searches, per chunk, for the
// cheapest codec whose reconstruction SMAPE stays within maxError.
func CompressBounded(data []float64, maxError float64) ([]byte, error) {
	plan := optimizer.CreatePlan(data)
	frames, err := plan.CompressAll(maxError, 0, defaultRegistry)
	if err != nil {
		return nil, err
	}
	return container.Encode(frames), nil
}

// CompressWithCodec partitions data and encodes every chunk with the given
// codec, ignoring the automatic best-fit search.
func CompressWithCodec(data []float64, id codec.ID) ([]byte, error) {
	plan := optimizer.CreatePlanWithCodec(data, id)
	frames, err := plan.CompressAll(0, 0, defaultRegistry)
	if err != nil {
		return nil, err
	}
	return container.Encode(frames), nil
}

// Decompress reads a stream produced by Compress, CompressBounded or
// CompressWithCodec and reconstructs the full sample slice.
func Decompress(stream []byte) ([]float64, error) {
	frames, err := container.Decode(stream)
	if err != nil {
		return nil, err
	}

	var out []float64
	for _, f := range frames {
		samples, err := f.Decompress(defaultRegistry)
		if err != nil {
			return nil, err
		}
		out = append(out, samples...)
	}
	return out, nil
}
