package pointbuild

import (
	"context"
	"log"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roverscene/scenemesh/internal/sceneconfig"
)

func TestBuildAllDeterministicOrdering(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	wedges := []*Wedge{
		flatWedge("b-wedge", 6, 6),
		flatWedge("a-wedge", 6, 6),
	}
	wedges[0].SiteDrive = "sd1"
	wedges[1].SiteDrive = "sd0"

	results, err := BuildAll(context.Background(), logger, wedges, sceneconfig.DefaultBuildOptions())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "sd0", results[0].Wedge.SiteDrive)
	assert.Equal(t, "sd1", results[1].Wedge.SiteDrive)
}

func TestBuildAllSkipsFailingWedges(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	bad := flatWedge("bad", 4, 4)
	bad.HasPose = false
	good := flatWedge("good", 4, 4)

	results, err := BuildAll(context.Background(), logger, []*Wedge{bad, good}, sceneconfig.DefaultBuildOptions())
	require.NoError(t, err)

	kept := KeptClouds(results)
	assert.Len(t, kept, 1)
}
