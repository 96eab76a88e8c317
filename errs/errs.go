// Package errs collects the sentinel errors returned across the brro
// packages. Callers should use errors.Is against these values rather than
// matching on error strings.
package errs

import "errors"

// Stream/container format errors.
var (
	ErrFormatMismatch     = errors.New("brro: bad magic, not a brro stream")
	ErrVersionMismatch    = errors.New("brro: stream version is newer than this reader supports")
	ErrTruncatedPayload   = errors.New("brro: payload ends before expected length")
	ErrInvalidFrameHeader = errors.New("brro: invalid frame header")
)

// Codec errors.
var (
	ErrUnknownCodec      = errors.New("brro: unknown codec id")
	ErrCodecNotBounded   = errors.New("brro: codec does not support bounded encoding")
	ErrEmptySamples      = errors.New("brro: sample slice is empty")
	ErrResidualOverflow  = errors.New("brro: too many residuals for payload")
	ErrBitdepthOverflow  = errors.New("brro: value does not fit selected bitdepth")
	ErrInvalidVarintByte = errors.New("brro: reserved varint prefix byte")
)

// VSRI index errors.
var (
	ErrIndexEmpty              = errors.New("brro: index has no segments")
	ErrIndexMonotonicity       = errors.New("brro: timestamp is lower than the last indexed point")
	ErrIndexChecksumMismatch   = errors.New("brro: index checksum does not match body")
	ErrIndexCorrupt            = errors.New("brro: index file is malformed")
	ErrIndexOutOfRange         = errors.New("brro: sample position is out of range")
)
