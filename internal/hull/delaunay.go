// Package hull builds the surface-hull MaskMesh (§4.2): points are
// rasterized into an occupancy grid, morphologically closed, reduced
// to boundary cells, and Delaunay-triangulated into a 2D mesh used as
// a strict XY clip for the reconstructed mesh.
package hull

import "math"

// Point2D is a bare XY coordinate for the triangulator.
type Point2D struct{ X, Y float64 }

// Tri is a triangle referencing three indices into the triangulator's
// input point slice.
type Tri struct{ A, B, C int }

// Delaunay performs unconstrained incremental Bowyer-Watson
// triangulation of pts, returning triangles indexing into pts. No
// edge-legalization for constrained edges is needed: the hull input is
// an unconstrained point set (occupancy-grid edge cells), not a PSLG.
func Delaunay(pts []Point2D) []Tri {
	n := len(pts)
	if n < 3 {
		return nil
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	dx, dy := maxX-minX, maxY-minY
	deltaMax := math.Max(dx, dy)
	if deltaMax <= 0 {
		deltaMax = 1
	}
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	// Super-triangle large enough to contain every input point.
	superA := Point2D{midX - 20*deltaMax, midY - deltaMax}
	superB := Point2D{midX, midY + 20*deltaMax}
	superC := Point2D{midX + 20*deltaMax, midY - deltaMax}

	work := make([]Point2D, n, n+3)
	copy(work, pts)
	work = append(work, superA, superB, superC)
	superIdx := [3]int{n, n + 1, n + 2}

	type triWork struct{ a, b, c int }
	triangles := []triWork{{superIdx[0], superIdx[1], superIdx[2]}}

	for i := 0; i < n; i++ {
		p := work[i]
		var badTris []triWork
		edgeCount := make(map[[2]int]int)

		for _, t := range triangles {
			if inCircumcircle(work[t.a], work[t.b], work[t.c], p) {
				badTris = append(badTris, t)
				for _, e := range triEdges(t) {
					edgeCount[normEdge(e)]++
				}
			}
		}

		var keep []triWork
		for _, t := range triangles {
			isBad := false
			for _, bt := range badTris {
				if t == bt {
					isBad = true
					break
				}
			}
			if !isBad {
				keep = append(keep, t)
			}
		}
		triangles = keep

		// Boundary edges of the bad-triangle cavity occur exactly once.
		for e, count := range edgeCount {
			if count == 1 {
				triangles = append(triangles, triWork{e[0], e[1], i})
			}
		}
	}

	out := make([]Tri, 0, len(triangles))
	for _, t := range triangles {
		if t.a >= n || t.b >= n || t.c >= n {
			continue // drop any triangle still touching a super-vertex
		}
		out = append(out, Tri{A: t.a, B: t.b, C: t.c})
	}
	return out
}

func triEdges(t struct{ a, b, c int }) [3][2]int {
	return [3][2]int{{t.a, t.b}, {t.b, t.c}, {t.c, t.a}}
}

func normEdge(e [2]int) [2]int {
	if e[0] > e[1] {
		return [2]int{e[1], e[0]}
	}
	return e
}

// inCircumcircle reports whether d lies strictly inside the
// circumcircle of triangle (a,b,c).
func inCircumcircle(a, b, c, d Point2D) bool {
	ax, ay := a.X-d.X, a.Y-d.Y
	bx, by := b.X-d.X, b.Y-d.Y
	cx, cy := c.X-d.X, c.Y-d.Y

	det := (ax*ax+ay*ay)*(bx*cy-cx*by) -
		(bx*bx+by*by)*(ax*cy-cx*ay) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)

	// Orientation of (a,b,c) determines the sign convention.
	orient := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
	if orient > 0 {
		return det > 0
	}
	return det < 0
}
