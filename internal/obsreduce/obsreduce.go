// Package obsreduce implements §4.14's optional observation reduction:
// given the viewing frustums alignment produced for each wedge, keep
// only the faces of the final mesh whose triangle intersects at least
// one frustum's convex hull.
package obsreduce

import "github.com/roverscene/scenemesh/internal/scenegeo"

// Plane is a half-space boundary ax+by+cz+d >= 0 defines "inside".
type Plane struct {
	Normal [3]float64
	D      float64
}

func (p Plane) signedDistance(v [3]float64) float64 {
	return p.Normal[0]*v[0] + p.Normal[1]*v[1] + p.Normal[2]*v[2] + p.D
}

// Frustum is a convex polytope described by its bounding half-spaces
// (typically six: near, far, left, right, top, bottom), generalized
// from the teacher pack's AABB boundsIntersect/boundsContains idiom to
// an arbitrary-plane convex hull since a viewing frustum isn't
// axis-aligned.
type Frustum struct {
	Planes []Plane
}

// Contains reports whether v lies inside (or on) every bounding plane.
func (f Frustum) Contains(v [3]float64) bool {
	for _, p := range f.Planes {
		if p.signedDistance(v) < 0 {
			return false
		}
	}
	return true
}

// IntersectsTriangle reports whether the triangle (a,b,c) is not fully
// outside the frustum: for every one of the frustum's half-space
// planes, at least one of the triangle's three vertices must lie on
// the inside of that plane. A triangle wholly behind any single plane
// is provably disjoint from the frustum and is rejected; this is the
// standard AABB/frustum separating-axis approximation applied to an
// arbitrary-plane convex hull rather than an axis-aligned box.
func (f Frustum) IntersectsTriangle(a, b, c [3]float64) bool {
	for _, p := range f.Planes {
		if p.signedDistance(a) < 0 && p.signedDistance(b) < 0 && p.signedDistance(c) < 0 {
			return false
		}
	}
	return true
}

// Reduce implements §4.14: keep only faces whose triangle intersects
// at least one of frustums. An empty frustum list is a no-op (the
// reduction pass is skipped entirely).
func Reduce(m *scenegeo.Mesh, frustums []Frustum) *scenegeo.Mesh {
	if len(frustums) == 0 {
		return m
	}
	keep := make([]bool, m.NumFaces())
	for f, face := range m.Faces {
		a := m.Positions[face[0]]
		b := m.Positions[face[1]]
		c := m.Positions[face[2]]
		for _, fr := range frustums {
			if fr.IntersectsTriangle(a, b, c) {
				keep[f] = true
				break
			}
		}
	}
	return m.KeepFaces(keep)
}
