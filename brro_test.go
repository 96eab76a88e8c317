package brro

import (
	"testing"

	"github.com/arloliu/brro/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressDecompressLossless(t *testing.T) {
	data := make([]float64, 2000)
	for i := range data {
		data[i] = float64(i % 7)
	}

	encoded := Compress(data)
	decoded, err := Decompress(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestCompressBoundedRoundTrip(t *testing.T) {
	data := make([]float64, 2000)
	for i := range data {
		data[i] = 10
	}

	encoded, err := CompressBounded(data, 0.01)
	require.NoError(t, err)

	decoded, err := Decompress(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestCompressWithOptionsPinnedCodec(t *testing.T) {
	data := make([]float64, 700)
	for i := range data {
		data[i] = 3
	}

	encoded, err := CompressWithOptions(data, WithCodec(codec.IDConstant))
	require.NoError(t, err)

	decoded, err := Decompress(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestCompressWithOptionsBoundedAndSampleLevel(t *testing.T) {
	data := make([]float64, 700)
	for i := range data {
		data[i] = 1
	}

	encoded, err := CompressWithOptions(data, WithMaxError(0.02), WithSampleLevel(6))
	require.NoError(t, err)

	decoded, err := Decompress(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}
