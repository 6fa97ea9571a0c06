package sceneconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBuildOptionsValid(t *testing.T) {
	require.NoError(t, DefaultBuildOptions().Validate())
}

func TestBuildOptionsNormalFilterRange(t *testing.T) {
	o := DefaultBuildOptions().WithNormalFilter(9)
	assert.Error(t, o.Validate())

	o = DefaultBuildOptions().WithNormalFilter(8)
	assert.NoError(t, o.Validate())

	o = DefaultBuildOptions().WithNormalFilter(-1)
	assert.Error(t, o.Validate())
}

func TestBuildOptionsRejectsUnknownStereoEye(t *testing.T) {
	o := DefaultBuildOptions()
	o.StereoEye = "upside-down"
	assert.Error(t, o.Validate())
}

func TestBuildOptionsNormalScaleFluentSetter(t *testing.T) {
	o := DefaultBuildOptions().WithNormalScale(NormalScaleConfidence, 0.2).WithConfidenceLimits(1, 10)
	require.NoError(t, o.Validate())
	assert.Equal(t, NormalScaleConfidence, o.NormalScale)
	assert.Equal(t, 0.2, o.LinearConfidenceMin)
	assert.Equal(t, 1.0, o.NearLimit)
	assert.Equal(t, 10.0, o.FarLimit)
}
