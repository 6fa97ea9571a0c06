package sceneconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultReconstructionParametersValid(t *testing.T) {
	p := DefaultReconstructionParameters()
	require.NoError(t, p.Validate())
}

func TestReconstructionParametersRejectsBadMethod(t *testing.T) {
	p := DefaultReconstructionParameters()
	p.Method = "bogus"
	assert.Error(t, p.Validate())
}

func TestReconstructionParametersMutuallyExclusiveResolution(t *testing.T) {
	p := DefaultReconstructionParameters().WithMinCellWidthMeters(0.1).WithOctreeDepth(8)
	// WithOctreeDepth clears MinCellWidthMeters, so this should validate.
	require.NoError(t, p.Validate())
	assert.Zero(t, p.MinCellWidthMeters)
}

func TestReconstructionParametersRequiresOneResolutionField(t *testing.T) {
	p := DefaultReconstructionParameters()
	p.MinCellWidthMeters = 0
	p.OctreeDepth = 0
	assert.Error(t, p.Validate())
}

func TestReconstructionParametersNegativeConfidenceExponent(t *testing.T) {
	p := DefaultReconstructionParameters().WithConfidenceExponent(-1)
	assert.Error(t, p.Validate())
}

func TestUsesLenientRetrim(t *testing.T) {
	p := DefaultReconstructionParameters().WithTrimmerLevels(7, 2)
	assert.True(t, p.UsesLenientRetrim(false))
	assert.False(t, p.UsesLenientRetrim(true))

	equalLevels := DefaultReconstructionParameters().WithTrimmerLevels(7, 7)
	assert.False(t, equalLevels.UsesLenientRetrim(false))
}
