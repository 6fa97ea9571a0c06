package pointbuild

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRasterRoundTrip(t *testing.T) {
	r := NewRaster(2, 3)
	r.Set(0, 0, [3]float64{1, 2, 3})
	r.Set(1, 2, [3]float64{-4.5, 6.25, 0})

	var buf bytes.Buffer
	require.NoError(t, EncodeRaster(&buf, r))

	got, err := DecodeRaster(&buf)
	require.NoError(t, err)
	assert.Equal(t, r.Rows, got.Rows)
	assert.Equal(t, r.Cols, got.Cols)
	assert.Equal(t, [3]float64{1, 2, 3}, got.At(0, 0))
	assert.Equal(t, [3]float64{-4.5, 6.25, 0}, got.At(1, 2))
	assert.True(t, math.IsNaN(got.At(0, 1)[0]))
}

func TestDecodeRasterRejectsBadMagic(t *testing.T) {
	// A full 12-byte header whose magic tag is zero.
	_, err := DecodeRaster(bytes.NewReader(make([]byte, 12)))
	assert.Error(t, err)
}
