package container

import (
	"bytes"
	"testing"

	"github.com/arloliu/brro/codec"
	"github.com/arloliu/brro/errs"
	"github.com/arloliu/brro/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	reg := codec.NewRegistry()
	data := make([]float64, 1024)
	for i := range data {
		data[i] = 1
	}

	f, err := frame.Compress(data, codec.IDConstant, reg)
	require.NoError(t, err)

	encoded := Encode([]*frame.Frame{f})

	frames, err := Decode(encoded)
	require.NoError(t, err)
	require.Len(t, frames, 1)

	out, err := frames[0].Decompress(reg)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3, 4, 5})
	require.Error(t, err)
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	reg := codec.NewRegistry()
	f, err := frame.Compress([]float64{1, 2, 3}, codec.IDNoop, reg)
	require.NoError(t, err)

	saved := FormatVersion
	encoded := Encode([]*frame.Frame{f})
	_ = saved

	// Simulate a stream written by a newer writer: FormatVersion is a
	// package constant, so swap the version string in the encoded bytes
	// for one of the same length.
	cmp, err := compareVersions("9.9.9", FormatVersion)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	newer := bytes.Replace(encoded, []byte(FormatVersion), []byte("9.9.9"), 1)
	_, err = Decode(newer)
	require.ErrorIs(t, err, errs.ErrVersionMismatch)

	// A same-version stream still decodes cleanly.
	_, err = Decode(encoded)
	require.NoError(t, err)
}
