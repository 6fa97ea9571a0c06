package scenegeo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubrectDimensions(t *testing.T) {
	s := Subrect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5}
	assert.Equal(t, 10, s.Width())
	assert.Equal(t, 5, s.Height())
	assert.False(t, s.Empty())
}

func TestSubrectEmpty(t *testing.T) {
	assert.True(t, Subrect{MinX: 5, MaxX: 5, MinY: 0, MaxY: 1}.Empty())
}
