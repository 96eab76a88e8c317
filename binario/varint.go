// Package binario implements the variable-length tagged-record binary
// encoding used for brro frame and container payloads.
//
// Integers are written using a byte-oriented varint scheme: values 0-250
// are stored as a single literal byte; 251, 252 and 253 are prefix bytes
// announcing that a little-endian uint16, uint32 or uint64 follows. Bytes
// 254 and 255 are reserved and never produced by this package. Keeping the
// single-byte range below 251 lets a codec id and a varint-encoded length
// share the same leading byte without ambiguity.
package binario

import (
	"encoding/binary"

	"github.com/arloliu/brro/errs"
)

const (
	prefixU16 = 251
	prefixU32 = 252
	prefixU64 = 253
)

// MaxLiteral is the largest value storable as a single literal byte.
const MaxLiteral = 250

// PutVarint appends v to buf using the smallest representation and returns
// the extended slice.
func PutVarint(buf []byte, v uint64) []byte {
	switch {
	case v <= MaxLiteral:
		return append(buf, byte(v))
	case v <= 0xFFFF:
		buf = append(buf, prefixU16)
		return binary.LittleEndian.AppendUint16(buf, uint16(v))
	case v <= 0xFFFFFFFF:
		buf = append(buf, prefixU32)
		return binary.LittleEndian.AppendUint32(buf, uint32(v))
	default:
		buf = append(buf, prefixU64)
		return binary.LittleEndian.AppendUint64(buf, v)
	}
}

// Varint decodes a varint at the start of data, returning the value and the
// number of bytes consumed.
func Varint(data []byte) (uint64, int, error) {
	if len(data) < 1 {
		return 0, 0, errs.ErrTruncatedPayload
	}

	tag := data[0]
	switch {
	case tag <= MaxLiteral:
		return uint64(tag), 1, nil
	case tag == prefixU16:
		if len(data) < 3 {
			return 0, 0, errs.ErrTruncatedPayload
		}
		return uint64(binary.LittleEndian.Uint16(data[1:3])), 3, nil
	case tag == prefixU32:
		if len(data) < 5 {
			return 0, 0, errs.ErrTruncatedPayload
		}
		return uint64(binary.LittleEndian.Uint32(data[1:5])), 5, nil
	case tag == prefixU64:
		if len(data) < 9 {
			return 0, 0, errs.ErrTruncatedPayload
		}
		return binary.LittleEndian.Uint64(data[1:9]), 9, nil
	default:
		return 0, 0, errs.ErrInvalidVarintByte
	}
}

// PutZigzag appends a zigzag+varint encoding of a signed integer, which
// keeps small-magnitude negative values compact.
func PutZigzag(buf []byte, v int64) []byte {
	u := uint64((v << 1) ^ (v >> 63))
	return PutVarint(buf, u)
}

// Zigzag decodes a zigzag+varint signed integer.
func Zigzag(data []byte) (int64, int, error) {
	u, n, err := Varint(data)
	if err != nil {
		return 0, 0, err
	}
	v := int64(u>>1) ^ -int64(u&1)
	return v, n, nil
}
