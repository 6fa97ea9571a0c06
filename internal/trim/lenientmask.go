package trim

import (
	"math"

	"github.com/roverscene/scenemesh/internal/hull"
	"github.com/roverscene/scenemesh/internal/scenegeo"
	"github.com/roverscene/scenemesh/internal/spatialindex"
)

// ExtractLargestBoundary implements §4.9 step 2: build the edge graph
// of the shrink-wrapped mesh, extract the largest closed boundary
// polygon (by XY perimeter length), discard zero-projected-length
// edges, and order the result CCW with respect to nadir. The source
// comment the spec preserves (§9) is why this runs on the
// shrink-wrapped mesh and not the main reconstructed mesh.
func ExtractLargestBoundary(m *scenegeo.Mesh, nadir [3]float64) [][2]float64 {
	type edge struct{ from, to int32 }
	count := make(map[[2]int32]int)
	directed := make(map[[2]int32]edge)
	for _, f := range m.Faces {
		es := [3]edge{{f[0], f[1]}, {f[1], f[2]}, {f[2], f[0]}}
		for _, e := range es {
			k := normEdgeI(e.from, e.to)
			count[k]++
			directed[k] = e
		}
	}

	adj := make(map[int32]int32)
	for k, c := range count {
		if c != 1 {
			continue
		}
		e := directed[k]
		p0 := m.Positions[e.from]
		p1 := m.Positions[e.to]
		if distXY2(p0, p1) < 1e-18 {
			continue // §4.9 step 2: discard zero-projected-length edges
		}
		adj[e.from] = e.to
	}

	visited := make(map[int32]bool, len(adj))
	var bestLoop []int32
	bestLen := -1.0
	for start := range adj {
		if visited[start] {
			continue
		}
		var loop []int32
		cur := start
		for {
			if visited[cur] {
				break
			}
			visited[cur] = true
			loop = append(loop, cur)
			next, ok := adj[cur]
			if !ok {
				break
			}
			if next == start {
				break
			}
			cur = next
		}
		length := loopPerimeterXY(m, loop)
		if length > bestLen {
			bestLen = length
			bestLoop = loop
		}
	}

	poly := make([][2]float64, len(bestLoop))
	for i, vi := range bestLoop {
		p := m.Positions[vi]
		poly[i] = [2]float64{p[0], p[1]}
	}
	return ensureCCW(poly, nadir)
}

func normEdgeI(a, b int32) [2]int32 {
	if a > b {
		return [2]int32{b, a}
	}
	return [2]int32{a, b}
}

func distXY2(a, b [3]float64) float64 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return dx*dx + dy*dy
}

func loopPerimeterXY(m *scenegeo.Mesh, loop []int32) float64 {
	total := 0.0
	for i := range loop {
		a := m.Positions[loop[i]]
		b := m.Positions[loop[(i+1)%len(loop)]]
		dx, dy := a[0]-b[0], a[1]-b[1]
		total += math.Hypot(dx, dy)
	}
	return total
}

// ensureCCW reverses poly if needed so it winds counterclockwise when
// viewed from the "up" side (opposite nadir).
func ensureCCW(poly [][2]float64, nadir [3]float64) [][2]float64 {
	area := signedAreaXY(poly)
	up := -nadir[2]
	wantPositive := up >= 0
	if (area >= 0) == wantPositive {
		return poly
	}
	out := make([][2]float64, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}
	return out
}

func signedAreaXY(poly [][2]float64) float64 {
	sum := 0.0
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		sum += a[0]*b[1] - b[0]*a[1]
	}
	return sum / 2
}

// OffsetPolygon implements §4.9 step 3: flatten the boundary loop to
// Z=0 and push each endpoint outward, perpendicular to its incoming
// edge direction, by maskOffset. No self-intersection check is
// performed, matching the spec's explicit allowance.
func OffsetPolygon(poly [][2]float64, maskOffset float64) [][2]float64 {
	n := len(poly)
	if n < 3 {
		return poly
	}
	out := make([][2]float64, n)
	for i := 0; i < n; i++ {
		src := poly[(i-1+n)%n]
		dst := poly[i]
		dx, dy := dst[0]-src[0], dst[1]-src[1]
		length := math.Hypot(dx, dy)
		if length < 1e-12 {
			out[i] = dst
			continue
		}
		// Outward perpendicular (right-hand normal of the edge
		// direction), consistent with a CCW-wound polygon.
		nx, ny := dy/length, -dx/length
		out[i] = [2]float64{dst[0] + nx*maskOffset, dst[1] + ny*maskOffset}
	}
	return out
}

// BuildLenientMask implements §4.9 step 4: triangulate the offset
// polygon into a MaskMesh usable by LenientHullTrim.
func BuildLenientMask(offsetPoly [][2]float64) *hull.MaskMesh {
	pts := make([]hull.Point2D, len(offsetPoly))
	for i, p := range offsetPoly {
		pts[i] = hull.Point2D{X: p[0], Y: p[1]}
	}
	tris := hull.TriangulatePolygon(pts)
	out := make([]spatialindex.Triangle2D, len(tris))
	for i, t := range tris {
		out[i] = spatialindex.Triangle2D{
			A: [2]float64{pts[t.A].X, pts[t.A].Y},
			B: [2]float64{pts[t.B].X, pts[t.B].Y},
			C: [2]float64{pts[t.C].X, pts[t.C].Y},
		}
	}
	return hull.NewMaskMesh(out)
}
