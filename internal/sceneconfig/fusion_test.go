package sceneconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCleverCombineParamsValid(t *testing.T) {
	require.NoError(t, DefaultCleverCombineParams().Validate())
}

func TestCleverCombineParamsDisabledSkipsValidation(t *testing.T) {
	p := DefaultCleverCombineParams().WithDisabled(true)
	p.CellSize = -5
	assert.NoError(t, p.Validate())
}

func TestCleverCombineCellHeight(t *testing.T) {
	p := DefaultCleverCombineParams().WithCellSize(0.1).WithAspect(2)
	assert.InDelta(t, 0.2, p.CellHeight(), 1e-9)
}

func TestCleverCombineParamsRejectsBadMaxPerCell(t *testing.T) {
	p := DefaultCleverCombineParams().WithMaxPerCell(0)
	assert.Error(t, p.Validate())
}
