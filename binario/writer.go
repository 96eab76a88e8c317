package binario

import (
	"math"

	"github.com/arloliu/brro/endian"
	"github.com/arloliu/brro/internal/pool"
)

// Writer accumulates a tagged-record payload into a pooled buffer. The zero
// value is not usable; create one with NewWriter.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewWriter returns a Writer backed by a freshly pooled buffer.
func NewWriter() *Writer {
	return &Writer{
		buf:    pool.GetBlobBuffer(),
		engine: endian.GetLittleEndianEngine(),
	}
}

// WriteByte appends a single literal byte, e.g. a codec id.
func (w *Writer) WriteByte(b byte) {
	w.buf.Grow(1)
	w.buf.MustWrite([]byte{b})
}

// WriteVarint appends v as a varint.
func (w *Writer) WriteVarint(v uint64) {
	w.buf.Grow(9)
	w.buf.B = PutVarint(w.buf.B, v)
}

// WriteZigzag appends v as a zigzag-encoded varint.
func (w *Writer) WriteZigzag(v int64) {
	w.buf.Grow(9)
	w.buf.B = PutZigzag(w.buf.B, v)
}

// WriteFloat32 appends v as a fixed 4-byte IEEE754 value.
func (w *Writer) WriteFloat32(v float32) {
	w.buf.Grow(4)
	w.buf.B = w.engine.AppendUint32(w.buf.B, math.Float32bits(v))
}

// WriteFloat64 appends v as a fixed 8-byte IEEE754 value.
func (w *Writer) WriteFloat64(v float64) {
	w.buf.Grow(8)
	w.buf.B = w.engine.AppendUint64(w.buf.B, math.Float64bits(v))
}

// WriteBytes appends a varint length prefix followed by data.
func (w *Writer) WriteBytes(data []byte) {
	w.WriteVarint(uint64(len(data)))
	w.buf.Grow(len(data))
	w.buf.MustWrite(data)
}

// Bytes returns the accumulated payload. The slice is owned by the writer
// and is invalidated by the next Write call or by Release.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Release returns the writer's buffer to the pool. The writer must not be
// used afterward.
func (w *Writer) Release() {
	pool.PutBlobBuffer(w.buf)
	w.buf = nil
}
