package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLinear(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})
	require.Equal(t, 5.0, s.Max)
	require.Equal(t, 4, s.MaxPos)
	require.Equal(t, 1.0, s.Min)
	require.Equal(t, 0, s.MinPos)
	assert.Equal(t, 3.0, s.Mean)
	assert.False(t, s.Fractional)
	assert.Equal(t, BitdepthU8, s.Bitdepth)
}

func TestNewFractional(t *testing.T) {
	s := New([]float64{1.5, 2.25, -3.1})
	assert.True(t, s.Fractional)
	assert.Equal(t, BitdepthF64, s.Bitdepth)
	assert.Equal(t, 2.25, s.Max)
	assert.Equal(t, -3.1, s.Min)
}

func TestNewNegativeRangeSelectsI16(t *testing.T) {
	s := New([]float64{-1000, 0, 1000})
	assert.False(t, s.Fractional)
	assert.Equal(t, BitdepthI16, s.Bitdepth)
}
