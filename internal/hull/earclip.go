package hull

// TriangulatePolygon ear-clips a simple (possibly non-convex),
// CCW-ordered polygon into triangles indexing into poly. Used by the
// §4.9 lenient re-trim path to triangulate the offset boundary
// polygon, where an unconstrained Delaunay triangulation (as used for
// the surface hull, §4.2) would not respect the polygon's edges.
func TriangulatePolygon(poly []Point2D) []Tri {
	n := len(poly)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	var out []Tri
	guard := 0
	for len(idx) > 3 && guard < n*n+16 {
		guard++
		earFound := false
		for i := 0; i < len(idx); i++ {
			prev := idx[(i-1+len(idx))%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]
			if !isConvex(poly[prev], poly[cur], poly[next]) {
				continue
			}
			if anyPointInside(poly, idx, prev, cur, next) {
				continue
			}
			out = append(out, Tri{A: prev, B: cur, C: next})
			idx = append(idx[:i], idx[i+1:]...)
			earFound = true
			break
		}
		if !earFound {
			// Degenerate/self-intersecting input (§4.9 explicitly allows
			// "no self-intersection check" on the offset polygon): fall
			// back to a fan triangulation from the first remaining vertex
			// rather than looping forever.
			break
		}
	}
	if len(idx) >= 3 {
		for i := 1; i < len(idx)-1; i++ {
			out = append(out, Tri{A: idx[0], B: idx[i], C: idx[i+1]})
		}
	}
	return out
}

func isConvex(a, b, c Point2D) bool {
	return cross2(a, b, c) > 0
}

func cross2(a, b, c Point2D) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func anyPointInside(poly []Point2D, idx []int, prev, cur, next int) bool {
	a, b, c := poly[prev], poly[cur], poly[next]
	for _, i := range idx {
		if i == prev || i == cur || i == next {
			continue
		}
		if pointInTriangle(poly[i], a, b, c) {
			return true
		}
	}
	return false
}

func pointInTriangle(p, a, b, c Point2D) bool {
	d1 := cross2(a, b, p)
	d2 := cross2(b, c, p)
	d3 := cross2(c, a, p)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
