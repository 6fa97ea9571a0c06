// Package testutil provides test assertions and mesh fixtures shaped
// after the §8 scenarios. No other package's tests import it; only its
// own tests exercise it.
package testutil

import (
	"math"
	"testing"

	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// FlatGrid builds a dense point cloud over a square patch centered at
// (centerX, centerY), side m meters, spacing m, at height z, with unit
// up-normals scaled to confidence. Its shape matches §8 scenario 1's
// "10x10 m dense grid" and scenario 2's "4x4 m patch".
func FlatGrid(centerX, centerY, side, spacing, z, confidence float64) *scenegeo.Mesh {
	cloud := scenegeo.NewPointCloud()
	half := side / 2
	for x := -half; x <= half; x += spacing {
		for y := -half; y <= half; y += spacing {
			idx := cloud.AddVertex([3]float64{centerX + x, centerY + y, z})
			cloud.SetNormal(idx, [3]float64{0, 0, confidence})
		}
	}
	return cloud
}

// BowlGrid is FlatGrid with a circular depression of the given
// diameter and depth carved into the center, matching §8 scenario 2's
// "0.5 m diameter Z=-0.3 m bowl".
func BowlGrid(centerX, centerY, side, spacing, diameter, depth, confidence float64) *scenegeo.Mesh {
	cloud := FlatGrid(centerX, centerY, side, spacing, 0, confidence)
	radius := diameter / 2
	for i, p := range cloud.Positions {
		dx, dy := p[0]-centerX, p[1]-centerY
		d := dx*dx + dy*dy
		if d <= radius*radius {
			frac := 1 - d/(radius*radius)
			cloud.Positions[i][2] = -depth * frac
		}
	}
	return cloud
}

// CShapeGrid builds a point cloud tracing a C-shaped annulus in XY
// (an outer ring with a wedge cut out), matching §8 scenario 5.
func CShapeGrid(outerRadius, innerRadius, spacing, gapStartDeg, gapEndDeg float64) *scenegeo.Mesh {
	cloud := scenegeo.NewPointCloud()
	for r := innerRadius; r <= outerRadius; r += spacing {
		circumference := 2 * math.Pi * r
		steps := int(circumference/spacing) + 1
		for i := 0; i < steps; i++ {
			deg := 360 * float64(i) / float64(steps)
			if deg >= gapStartDeg && deg <= gapEndDeg {
				continue
			}
			rad := deg * math.Pi / 180
			x := r * math.Cos(rad)
			y := r * math.Sin(rad)
			idx := cloud.AddVertex([3]float64{x, y, 0})
			cloud.SetNormal(idx, [3]float64{0, 0, 1})
		}
	}
	return cloud
}
