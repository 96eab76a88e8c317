package binario

import (
	"math"

	"github.com/arloliu/brro/endian"
	"github.com/arloliu/brro/errs"
)

// Reader is a forward-only cursor over an encoded payload.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader returns a Reader over data. data is not copied.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, engine: endian.GetLittleEndianEngine()}
}

// Pos returns the current read offset.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// Byte reads a single literal byte.
func (r *Reader) Byte() (byte, error) {
	if r.Remaining() < 1 {
		return 0, errs.ErrTruncatedPayload
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// Varint reads a varint-encoded unsigned integer.
func (r *Reader) Varint() (uint64, error) {
	v, n, err := Varint(r.data[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}

// Zigzag reads a zigzag-encoded signed integer.
func (r *Reader) Zigzag() (int64, error) {
	v, n, err := Zigzag(r.data[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}

// Float32 reads a fixed 4-byte IEEE754 value.
func (r *Reader) Float32() (float32, error) {
	if r.Remaining() < 4 {
		return 0, errs.ErrTruncatedPayload
	}
	v := math.Float32frombits(r.engine.Uint32(r.data[r.pos : r.pos+4]))
	r.pos += 4
	return v, nil
}

// Float64 reads a fixed 8-byte IEEE754 value.
func (r *Reader) Float64() (float64, error) {
	if r.Remaining() < 8 {
		return 0, errs.ErrTruncatedPayload
	}
	v := math.Float64frombits(r.engine.Uint64(r.data[r.pos : r.pos+8]))
	r.pos += 8
	return v, nil
}

// Bytes reads a varint length prefix followed by that many bytes. The
// returned slice aliases the reader's underlying data.
func (r *Reader) Bytes() ([]byte, error) {
	n, err := r.Varint()
	if err != nil {
		return nil, err
	}
	if uint64(r.Remaining()) < n {
		return nil, errs.ErrTruncatedPayload
	}
	b := r.data[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, nil
}
