package codec

import (
	"testing"

	"github.com/arloliu/brro/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopRoundTrip(t *testing.T) {
	data := []float64{1, 1, 1, 1, 1}
	payload, err := (Noop{}).Encode(data)
	require.NoError(t, err)

	out, err := (Noop{}).Decode(payload, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestConstantAllSame(t *testing.T) {
	data := []float64{1, 1, 1, 1, 1}
	payload, err := (Constant{}).Encode(data)
	require.NoError(t, err)

	out, err := (Constant{}).Decode(payload, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestConstantWithResiduals(t *testing.T) {
	data := []float64{1, 2, 1, 1, 3}
	payload, err := (Constant{}).Encode(data)
	require.NoError(t, err)

	out, err := (Constant{}).Decode(payload, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestConstantTieBreakIsDeterministic(t *testing.T) {
	data := []float64{5, 7, 5, 7}
	c1 := pickConstant(data)
	c2 := pickConstant(data)
	assert.Equal(t, c1, c2)
	assert.Equal(t, int64(5), c1, "first-seen value should win a count tie")
}

func TestNoopRoundsFractionalSamples(t *testing.T) {
	data := []float64{1.7, -1.7, 2.5, -2.5}
	payload, err := (Noop{}).Encode(data)
	require.NoError(t, err)

	out, err := (Noop{}).Decode(payload, len(data))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, -2, 3, -3}, out)
}

func TestConstantRoundsFractionalSamples(t *testing.T) {
	data := []float64{1.7, 1.7, 1.6, 1.7}
	payload, err := (Constant{}).Encode(data)
	require.NoError(t, err)

	out, err := (Constant{}).Decode(payload, len(data))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 2, 2}, out)
}

func TestRLERoundTrip(t *testing.T) {
	data := []float64{3, 3, 3, 0, 6, 18, 2, 2, 4, 10, 3, 3, 3}
	payload, err := (RLE{}).Encode(data)
	require.NoError(t, err)

	out, err := (RLE{}).Decode(payload, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestRLENegativeValues(t *testing.T) {
	data := []float64{-5, -5, -5, 10, 10, -20}
	payload, err := (RLE{}).Encode(data)
	require.NoError(t, err)

	out, err := (RLE{}).Decode(payload, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestRLEFractionalValuesRoundTrip(t *testing.T) {
	data := []float64{1.23456, 1.23456, 1.23456, 1.23456, 1.23456}
	payload, err := (RLE{}).Encode(data)
	require.NoError(t, err)

	out, err := (RLE{}).Decode(payload, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestRLEGroupsRepeatedValueAcrossRuns(t *testing.T) {
	// value 1 recurs in two separate runs (starts 0, 12); they must
	// collapse into a single group sharing one encoded value.
	data := []float64{
		1, 1, 1, 1, 1, 1,
		2, 2, 2, 2, 2, 2,
		1, 1, 1, 1, 1, 1,
		3, 3, 3,
	}
	groups := groupRuns(rleRuns(data, stats.New(data).Bitdepth))
	require.Len(t, groups, 3)
	assert.Equal(t, []int{0, 12}, groups[0].starts)

	payload, err := (RLE{}).Encode(data)
	require.NoError(t, err)
	out, err := (RLE{}).Decode(payload, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestFFTRoundTripPow2(t *testing.T) {
	data := make([]float64, 8)
	for i := range data {
		data[i] = float64(i % 4)
	}
	payload, err := (FFT{}).Encode(data)
	require.NoError(t, err)

	out, err := (FFT{}).Decode(payload, len(data))
	require.NoError(t, err)
	require.Len(t, out, len(data))
}

func TestFFTEncodeAlwaysKeepsDCBin(t *testing.T) {
	// A small mean (1) under a large alternating swing (+-50): the Nyquist
	// bin's magnitude (400) dwarfs the DC bin's (8), so keeping only the
	// top-K by raw magnitude would drop DC. Confirm the reconstruction
	// still reflects the mean (i.e. DC was retained) even when K is forced
	// down to 1.
	data := make([]float64, 8)
	for i := range data {
		data[i] = 1 + 50*float64(1-2*(i%2))
	}
	payload, err := encodeFFTWithK(data, 1)
	require.NoError(t, err)

	out, err := (FFT{}).Decode(payload, len(data))
	require.NoError(t, err)

	mean := 0.0
	for _, v := range out {
		mean += v
	}
	mean /= float64(len(out))
	assert.InDelta(t, 1, mean, 0.5)
}

func TestFFTBoundedMeetsErrorOrExhausts(t *testing.T) {
	data := []float64{1.0, 1.3, 1.5, 1.0, 1.8, 0.5, 1.0, 1.3, 3.5, 1.0, 0.8, 4.5}
	payload, err := (FFT{}).EncodeBounded(data, 0.3)
	require.NoError(t, err)

	out, err := (FFT{}).Decode(payload, len(data))
	require.NoError(t, err)
	require.Len(t, out, len(data))
	assert.LessOrEqual(t, SMAPE(data, out), 0.3)
}

func TestIDWRoundTripSmallError(t *testing.T) {
	data := make([]float64, 200)
	for i := range data {
		data[i] = float64(i%10) + 0.5
	}
	payload, err := (IDW{}).EncodeBounded(data, 0.02)
	require.NoError(t, err)

	out, err := (IDW{}).Decode(payload, len(data))
	require.NoError(t, err)
	assert.LessOrEqual(t, SMAPE(data, out), 0.05)
}

func TestPolynomialRoundTripExactKnots(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	payload, err := (Polynomial{}).Encode(data)
	require.NoError(t, err)

	out, err := (Polynomial{}).Decode(payload, len(data))
	require.NoError(t, err)
	for i := range data {
		assert.InDelta(t, data[i], out[i], 1e-6)
	}
}

func TestRegistryBoundedOrderIsConstantFirst(t *testing.T) {
	reg := NewRegistry()
	bounded := reg.Bounded()
	require.NotEmpty(t, bounded)
	assert.Equal(t, IDConstant, bounded[0].ID())
}

func TestRegistryBoundedExcludesIDW(t *testing.T) {
	reg := NewRegistry()
	for _, c := range reg.Bounded() {
		assert.NotEqual(t, IDIDW, c.ID(), "IDW must never be an automatic candidate")
	}

	// IDW stays reachable when requested explicitly.
	c, err := reg.Get(IDIDW)
	require.NoError(t, err)
	assert.Equal(t, IDIDW, c.ID())
}

func TestRegistryUnknownCodec(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Get(ID(99))
	require.Error(t, err)
}

func TestSMAPEPerfectMatch(t *testing.T) {
	data := []float64{1, 2, 3}
	assert.Equal(t, 0.0, SMAPE(data, data))
}
