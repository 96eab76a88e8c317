package frame

import (
	"testing"

	"github.com/arloliu/brro/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressDecompressNoop(t *testing.T) {
	reg := codec.NewRegistry()
	data := []float64{1, 2, 3, 4, 5}

	f, err := Compress(data, codec.IDNoop, reg)
	require.NoError(t, err)

	out, err := f.Decompress(reg)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestCompressBestPicksConstantForFlatWindow(t *testing.T) {
	reg := codec.NewRegistry()
	data := make([]float64, 64)
	for i := range data {
		data[i] = 7
	}

	f, err := CompressBest(data, 0.01, 0, reg)
	require.NoError(t, err)
	assert.Equal(t, codec.IDConstant, f.CodecID)

	out, err := f.Decompress(reg)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestCompressBoundedFallsBackForUnboundedCodec(t *testing.T) {
	reg := codec.NewRegistry()
	data := []float64{1, 1, 1, 2, 2, 3}

	f, err := CompressBounded(data, codec.IDNoop, 0.01, reg)
	require.NoError(t, err)

	out, err := f.Decompress(reg)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestCompressBestNeverPicksIDW(t *testing.T) {
	reg := codec.NewRegistry()
	data := make([]float64, 256)
	for i := range data {
		data[i] = float64(i%10) + 0.5
	}

	f, err := CompressBest(data, 0.5, 3, reg)
	require.NoError(t, err)
	assert.NotEqual(t, codec.IDIDW, f.CodecID)
}

func TestSubsampleHalvesPerLevel(t *testing.T) {
	data := make([]float64, 16)
	for i := range data {
		data[i] = float64(i)
	}

	assert.Len(t, subsample(data, 0), 16)
	assert.Len(t, subsample(data, 1), 8)
	assert.Len(t, subsample(data, 2), 4)
}

func TestCompressFFTWarnsOnNonPow2(t *testing.T) {
	reg := codec.NewRegistry()
	data := []float64{1, 2, 3, 4, 5}

	f, err := Compress(data, codec.IDFFT, reg)
	require.NoError(t, err)
	assert.NotEmpty(t, f.Warnings())
}
