package scenedebug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReportRendersHTML(t *testing.T) {
	var buf bytes.Buffer
	stats := []StageStat{
		{Stage: "00-wedge-clouds", Vertices: 100, Faces: 0},
		{Stage: "02-reconstructed", Vertices: 95, Faces: 180, SurvivalRatio: 1.0},
		{Stage: "04-hull-trim", Vertices: 80, Faces: 120, SurvivalRatio: 0.66},
	}
	require.NoError(t, WriteReport(&buf, stats))
	html := buf.String()
	assert.Contains(t, html, "00-wedge-clouds")
	assert.Contains(t, html, "<html")
}
