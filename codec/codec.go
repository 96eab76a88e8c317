// Package codec implements the per-frame compression strategies: a fixed
// set of tagged binary encoders/decoders over a []float64 window, selected
// either explicitly or by an error-bounded search.
package codec

import (
	"fmt"

	"github.com/arloliu/brro/errs"
)

// ID identifies a codec. Values stay at or below binario.MaxLiteral so a
// codec id can never collide with a varint length prefix.
type ID uint8

const (
	IDPolynomial ID = 2
	IDIDW        ID = 3
	IDFFT        ID = 15
	IDConstant   ID = 30
	IDRLE        ID = 60
	IDNoop       ID = 250
	// IDAuto is never written to a stream; it tells Frame to search for
	// the best codec at encode time.
	IDAuto ID = 0
)

func (id ID) String() string {
	switch id {
	case IDPolynomial:
		return "polynomial"
	case IDIDW:
		return "idw"
	case IDFFT:
		return "fft"
	case IDConstant:
		return "constant"
	case IDRLE:
		return "rle"
	case IDNoop:
		return "noop"
	case IDAuto:
		return "auto"
	default:
		return fmt.Sprintf("codec(%d)", uint8(id))
	}
}

// Codec compresses and decompresses a window of samples into a
// self-contained byte payload (the codec id itself is not part of the
// payload; it is kept in Frame.CodecID and written by the container).
type Codec interface {
	ID() ID
	// Encode compresses data with no error bound, picking whatever
	// internal parameters the codec considers reasonable.
	Encode(data []float64) ([]byte, error)
	// Decode reconstructs count samples from a payload produced by Encode
	// or EncodeBounded.
	Decode(payload []byte, count int) ([]float64, error)
}

// BoundedCodec is implemented by codecs that can search for a
// representation whose reconstruction error stays within a caller-supplied
// SMAPE bound.
type BoundedCodec interface {
	Codec
	EncodeBounded(data []float64, maxError float64) ([]byte, error)
}

// Registry maps codec ids to their implementation.
type Registry struct {
	codecs map[ID]Codec
}

// NewRegistry returns a Registry containing every built-in codec.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[ID]Codec, 6)}
	for _, c := range []Codec{
		&Noop{},
		&Constant{},
		&RLE{},
		&FFT{},
		&Polynomial{},
		&IDW{},
	} {
		r.codecs[c.ID()] = c
	}
	return r
}

// Get returns the codec registered for id.
func (r *Registry) Get(id ID) (Codec, error) {
	c, ok := r.codecs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownCodec, uint8(id))
	}
	return c, nil
}

// Bounded returns the codecs eligible for automatic, error-bounded search
// (Frame.CompressBest), in a stable, deterministic order that is also the
// tie-break priority: Constant before FFT before Polynomial. IDW is never
// an automatic candidate; it must be requested explicitly by codec id.
func (r *Registry) Bounded() []BoundedCodec {
	order := []ID{IDConstant, IDFFT, IDPolynomial}
	out := make([]BoundedCodec, 0, len(order))
	for _, id := range order {
		if bc, ok := r.codecs[id].(BoundedCodec); ok {
			out = append(out, bc)
		}
	}
	return out
}
