// Package container implements the self-describing ".bro" stream format: a
// small header (magic, format version, frame count) followed by a
// varint-framed sequence of compressed chunks.
package container

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/brro/binario"
	"github.com/arloliu/brro/codec"
	"github.com/arloliu/brro/errs"
	"github.com/arloliu/brro/frame"
)

// Magic is the fixed 4-byte signature at the head of every stream. Encode
// writes it with a varint length prefix like any other byte field, so a
// stream's first byte is 4 and 'B','R','R','O' follow it.
var Magic = [4]byte{'B', 'R', 'R', 'O'}

// FormatVersion is the version this build writes and the newest version it
// can read. A stream whose recorded version is newer is rejected rather
// than guessed at.
const FormatVersion = "1.0.0"

// Encode serializes header + frames into a single ".bro" byte stream.
func Encode(frames []*frame.Frame) []byte {
	w := binario.NewWriter()
	defer w.Release()

	w.WriteBytes(Magic[:])
	w.WriteBytes([]byte(FormatVersion))
	w.WriteVarint(uint64(len(frames)))

	for _, f := range frames {
		w.WriteByte(byte(f.CodecID))
		w.WriteVarint(uint64(f.SampleCount))
		w.WriteBytes(f.Payload)
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out
}

// Decode parses a ".bro" byte stream into its frames, verifying the magic
// and format version first.
func Decode(data []byte) ([]*frame.Frame, error) {
	r := binario.NewReader(data)

	magic, err := r.Bytes()
	if err != nil {
		return nil, fmt.Errorf("container: reading magic: %w", err)
	}
	if string(magic) != string(Magic[:]) {
		return nil, errs.ErrFormatMismatch
	}

	versionBytes, err := r.Bytes()
	if err != nil {
		return nil, fmt.Errorf("container: reading version: %w", err)
	}
	if err := checkVersion(string(versionBytes)); err != nil {
		return nil, err
	}

	frameCount, err := r.Varint()
	if err != nil {
		return nil, fmt.Errorf("container: reading frame count: %w", err)
	}

	frames := make([]*frame.Frame, 0, frameCount)
	for i := uint64(0); i < frameCount; i++ {
		idByte, err := r.Byte()
		if err != nil {
			return nil, fmt.Errorf("%w: frame %d codec id: %v", errs.ErrInvalidFrameHeader, i, err)
		}
		sampleCount, err := r.Varint()
		if err != nil {
			return nil, fmt.Errorf("%w: frame %d sample count: %v", errs.ErrInvalidFrameHeader, i, err)
		}
		payload, err := r.Bytes()
		if err != nil {
			return nil, fmt.Errorf("%w: frame %d payload: %v", errs.ErrInvalidFrameHeader, i, err)
		}

		frames = append(frames, &frame.Frame{
			CodecID:     codec.ID(idByte),
			SampleCount: int(sampleCount),
			Payload:     payload,
		})
	}

	return frames, nil
}

// checkVersion rejects a stream whose recorded version is newer than
// FormatVersion. Older or equal versions are accepted: this reader is
// expected to stay backward compatible. A panic here (as the format this
// module is descended from does) would take down the whole process for a
// forward-compatibility problem the caller can otherwise handle.
func checkVersion(fileVersion string) error {
	cmp, err := compareVersions(fileVersion, FormatVersion)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrFormatMismatch, err)
	}
	if cmp > 0 {
		return fmt.Errorf("%w: file version %s is newer than reader version %s", errs.ErrVersionMismatch, fileVersion, FormatVersion)
	}
	return nil
}

// compareVersions compares two "major.minor.patch" strings, returning -1,
// 0 or 1.
func compareVersions(a, b string) (int, error) {
	pa, err := parseVersion(a)
	if err != nil {
		return 0, err
	}
	pb, err := parseVersion(b)
	if err != nil {
		return 0, err
	}

	for i := 0; i < 3; i++ {
		if pa[i] != pb[i] {
			if pa[i] < pb[i] {
				return -1, nil
			}
			return 1, nil
		}
	}
	return 0, nil
}

func parseVersion(v string) ([3]int, error) {
	var out [3]int
	parts := strings.SplitN(v, ".", 3)
	for i := 0; i < len(parts) && i < 3; i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return out, fmt.Errorf("invalid version component %q: %w", parts[i], err)
		}
		out[i] = n
	}
	return out, nil
}
