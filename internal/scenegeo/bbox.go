package scenegeo

import "math"

// BoundingBox is an axis-aligned box; Z is always vertical (§3).
type BoundingBox struct {
	Min [3]float64
	Max [3]float64
}

// EmptyBoundingBox returns a box in the "nothing seen yet" state, ready
// to be grown with ExpandToInclude.
func EmptyBoundingBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{
		Min: [3]float64{inf, inf, inf},
		Max: [3]float64{-inf, -inf, -inf},
	}
}

// Valid reports whether the box has seen at least one point.
func (b BoundingBox) Valid() bool {
	return b.Min[0] <= b.Max[0] && b.Min[1] <= b.Max[1] && b.Min[2] <= b.Max[2]
}

// ExpandToInclude grows the box so it contains p.
func (b *BoundingBox) ExpandToInclude(p [3]float64) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union returns the smallest box containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if !b.Valid() {
		return o
	}
	if !o.Valid() {
		return b
	}
	out := b
	out.ExpandToInclude(o.Min)
	out.ExpandToInclude(o.Max)
	return out
}

// Diagonal returns the box's 3D diagonal length, 0 for an empty box.
func (b BoundingBox) Diagonal() float64 {
	if !b.Valid() {
		return 0
	}
	return dist3(b.Min, b.Max)
}

// DiagonalXY returns the box's XY-plane diagonal length.
func (b BoundingBox) DiagonalXY() float64 {
	if !b.Valid() {
		return 0
	}
	dx := b.Max[0] - b.Min[0]
	dy := b.Max[1] - b.Min[1]
	return math.Sqrt(dx*dx + dy*dy)
}

// ContainsXY reports whether (x,y) lies within the box's XY footprint.
func (b BoundingBox) ContainsXY(x, y float64) bool {
	return x >= b.Min[0] && x <= b.Max[0] && y >= b.Min[1] && y <= b.Max[1]
}

// CenterXY returns the XY midpoint of the box.
func (b BoundingBox) CenterXY() (float64, float64) {
	return (b.Min[0] + b.Max[0]) / 2, (b.Min[1] + b.Max[1]) / 2
}

// SquareXY returns a box centered on the same XY center as b, expanded
// (or shrunk) to a square footprint of the given full side length,
// retaining b's Z range.
func (b BoundingBox) SquareXY(side float64) BoundingBox {
	cx, cy := b.CenterXY()
	half := side / 2
	return BoundingBox{
		Min: [3]float64{cx - half, cy - half, b.Min[2]},
		Max: [3]float64{cx + half, cy + half, b.Max[2]},
	}
}

// IntersectsXY reports whether two boxes' XY footprints overlap.
func (b BoundingBox) IntersectsXY(o BoundingBox) bool {
	return b.Min[0] <= o.Max[0] && b.Max[0] >= o.Min[0] &&
		b.Min[1] <= o.Max[1] && b.Max[1] >= o.Min[1]
}
