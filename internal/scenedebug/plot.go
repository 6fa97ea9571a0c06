package scenedebug

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// WritePlotPNG renders a top-down XY scatter of mesh's vertices,
// colored by a coarse vertex-density grid, in the manner of the
// teacher's per-ring scatter plots: one plot.Plot, one Save call, no
// further decoration beyond title and axis labels.
func WritePlotPNG(path string, title string, mesh *scenegeo.Mesh) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	if mesh.NumVertices() == 0 {
		return p.Save(8*vg.Inch, 8*vg.Inch, path)
	}

	for _, b := range densityBuckets(mesh, 24) {
		pts := make(plotter.XYs, len(b.points))
		copy(pts, b.points)
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("scenedebug: scatter: %w", err)
		}
		scatter.GlyphStyle.Radius = vg.Points(1.2)
		scatter.GlyphStyle.Color = b.color
		p.Add(scatter)
	}

	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}

type densityBucket struct {
	points []plotter.XY
	color  color.Color
}

// densityBuckets groups vertices into a coarse XY grid and assigns
// each bucket a color keyed by occupancy, reusing the teacher's
// hue-sweep palette idea (gridplotter.go's generateColors) but over
// point density rather than azimuth index.
func densityBuckets(mesh *scenegeo.Mesh, resolution int) []densityBucket {
	box := mesh.BoundingBox()
	width := box.Max[0] - box.Min[0]
	height := box.Max[1] - box.Min[1]
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	type cellKey struct{ cx, cy int }
	cells := make(map[cellKey][]plotter.XY)
	for _, p := range mesh.Positions {
		cx := int((p[0] - box.Min[0]) / width * float64(resolution))
		cy := int((p[1] - box.Min[1]) / height * float64(resolution))
		key := cellKey{cx, cy}
		cells[key] = append(cells[key], plotter.XY{X: p[0], Y: p[1]})
	}

	maxCount := 0
	for _, pts := range cells {
		if len(pts) > maxCount {
			maxCount = len(pts)
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	out := make([]densityBucket, 0, len(cells))
	for _, pts := range cells {
		t := float64(len(pts)) / float64(maxCount)
		out = append(out, densityBucket{points: pts, color: heatColor(t)})
	}
	return out
}

// heatColor maps a 0..1 occupancy fraction to a blue-to-red hue sweep,
// the same HSL construction the teacher's generateColors uses for its
// azimuth palette.
func heatColor(t float64) color.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	hue := (1 - t) * 0.66 // 0.66 (blue) down to 0 (red) as density rises
	r, g, b := hslToRGB(hue, 0.75, 0.5)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64
	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}
	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
