package vsri

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateForPointSingleSegment(t *testing.T) {
	timestamps := []int64{
		1729606100, 1729606120, 1729606140, 1729606160, 1729606180,
		1729606200, 1729606220, 1729606240, 1729606260,
	}

	idx := New()
	for _, ts := range timestamps {
		require.NoError(t, idx.UpdateForPoint(ts))
	}

	assert.Equal(t, timestamps, idx.GetAllTimestamps())
	assert.Len(t, idx.Segments(), 1)
}

func TestUpdateForPointMultipleSegments(t *testing.T) {
	timestamps := []int64{
		1729606100, 1729606120, 1729606140, 1729606160, 1729606180, 1729606200, 1729606220,
		1729606260, 1729606360, 1729606460, 1729606560, 1729606660, 1729606760, 1729606860,
		1729606881, 1729606882, 1729606883, 1729606884, 1729606885, 1729606886, 1729606887,
	}

	idx := New()
	for _, ts := range timestamps {
		require.NoError(t, idx.UpdateForPoint(ts))
	}

	assert.Equal(t, timestamps, idx.GetAllTimestamps())
	assert.Greater(t, len(idx.Segments()), 1)
}

func TestUpdateForPointRejectsPastTimestamp(t *testing.T) {
	timestamps := []int64{
		1729606100, 1729606120, 1729606140, 1729606160, 1729606180,
		1729606200, 1729606220, 1729606240, 1729606260,
	}

	idx := New()
	for _, ts := range timestamps {
		require.NoError(t, idx.UpdateForPoint(ts))
	}

	err := idx.UpdateForPoint(1729605260)
	require.Error(t, err)
}

func TestFlushLoadRoundTrip(t *testing.T) {
	idx := New()
	for _, ts := range []int64{10, 20, 30, 40, 50} {
		require.NoError(t, idx.UpdateForPoint(ts))
	}

	var buf bytes.Buffer
	require.NoError(t, idx.Flush(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, idx.GetAllTimestamps(), loaded.GetAllTimestamps())
	assert.Equal(t, idx.Min(), loaded.Min())
	assert.Equal(t, idx.Max(), loaded.Max())
}

func TestLoadDetectsChecksumMismatch(t *testing.T) {
	idx := New()
	for _, ts := range []int64{10, 20, 30} {
		require.NoError(t, idx.UpdateForPoint(ts))
	}

	var buf bytes.Buffer
	require.NoError(t, idx.Flush(&buf))
	corrupted := bytes.Replace(buf.Bytes(), []byte("10\n30\n"), []byte("99\n30\n"), 1)

	_, err := Load(bytes.NewReader(corrupted))
	require.Error(t, err)
}

func TestGetSampleAndGetTime(t *testing.T) {
	idx := New()
	for _, ts := range []int64{100, 120, 140, 160, 180} {
		require.NoError(t, idx.UpdateForPoint(ts))
	}

	pos, ok := idx.GetSample(140)
	require.True(t, ok)
	assert.Equal(t, int64(2), pos)

	ts, ok := idx.GetTime(2)
	require.True(t, ok)
	assert.Equal(t, int64(140), ts)
}

func TestGetNextAndPreviousSampleAsymmetry(t *testing.T) {
	idx := New()
	for _, ts := range []int64{100, 120, 140} {
		require.NoError(t, idx.UpdateForPoint(ts))
	}

	x, ok := idx.GetNextSample(50)
	require.True(t, ok)
	assert.Equal(t, int64(0), x)

	_, ok = idx.GetNextSample(140)
	assert.False(t, ok)

	_, ok = idx.GetPreviousSample(50)
	assert.False(t, ok)

	x, ok = idx.GetPreviousSample(140)
	require.True(t, ok)
	assert.Equal(t, idx.SampleCount(), x)
}
