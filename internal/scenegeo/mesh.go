package scenegeo

import "fmt"

// Mesh is an indexed triangle set stored as contiguous parallel slices,
// per §9's "never parent pointers" design note. A Mesh with zero faces
// is a PointCloud (§3).
type Mesh struct {
	Positions [][3]float64
	Normals   [][3]float64 // len 0 or len(Positions)
	Colors    [][3]float32 // len 0 or len(Positions)
	UVs       [][2]float32 // len 0 or len(Positions)
	Flags     []VertexFlags
	Faces     [][3]int32
}

// NewMesh returns an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{}
}

// NewPointCloud returns an empty mesh intended to carry zero faces.
func NewPointCloud() *Mesh {
	return NewMesh()
}

func (m *Mesh) NumVertices() int { return len(m.Positions) }
func (m *Mesh) NumFaces() int    { return len(m.Faces) }
func (m *Mesh) IsPointCloud() bool { return len(m.Faces) == 0 }

func (m *Mesh) HasNormal(i int) bool { return i < len(m.Flags) && m.Flags[i]&HasNormal != 0 }
func (m *Mesh) HasColor(i int) bool  { return i < len(m.Flags) && m.Flags[i]&HasColor != 0 }
func (m *Mesh) HasUV(i int) bool     { return i < len(m.Flags) && m.Flags[i]&HasUV != 0 }

// AddVertex appends a bare position and returns its index. Callers set
// optional attributes afterward with SetNormal/SetColor/SetUV.
func (m *Mesh) AddVertex(pos [3]float64) int {
	m.Positions = append(m.Positions, pos)
	m.growAttributeSlices()
	return len(m.Positions) - 1
}

// growAttributeSlices keeps Normals/Colors/UVs/Flags in lockstep with
// Positions whenever any of them is in active use.
func (m *Mesh) growAttributeSlices() {
	n := len(m.Positions)
	if len(m.Normals) > 0 {
		for len(m.Normals) < n {
			m.Normals = append(m.Normals, [3]float64{})
		}
	}
	if len(m.Colors) > 0 {
		for len(m.Colors) < n {
			m.Colors = append(m.Colors, [3]float32{})
		}
	}
	if len(m.UVs) > 0 {
		for len(m.UVs) < n {
			m.UVs = append(m.UVs, [2]float32{})
		}
	}
	for len(m.Flags) < n {
		m.Flags = append(m.Flags, 0)
	}
}

func (m *Mesh) ensureNormals() {
	if len(m.Normals) == 0 {
		m.Normals = make([][3]float64, len(m.Positions))
	}
}

func (m *Mesh) ensureColors() {
	if len(m.Colors) == 0 {
		m.Colors = make([][3]float32, len(m.Positions))
	}
}

func (m *Mesh) ensureUVs() {
	if len(m.UVs) == 0 {
		m.UVs = make([][2]float32, len(m.Positions))
	}
}

// SetNormal sets the normal of vertex i, marking HasNormal.
func (m *Mesh) SetNormal(i int, n [3]float64) {
	m.ensureNormals()
	m.Normals[i] = n
	m.Flags[i] |= HasNormal
}

// SetColor sets the color of vertex i, marking HasColor.
func (m *Mesh) SetColor(i int, c [3]float32) {
	m.ensureColors()
	m.Colors[i] = c
	m.Flags[i] |= HasColor
}

// SetUV sets the UV of vertex i, marking HasUV.
func (m *Mesh) SetUV(i int, uv [2]float32) {
	m.ensureUVs()
	m.UVs[i] = uv
	m.Flags[i] |= HasUV
}

// AddFace appends a CCW triangle referencing three existing vertices.
func (m *Mesh) AddFace(a, b, c int32) {
	m.Faces = append(m.Faces, [3]int32{a, b, c})
}

// Validate checks the §3 Mesh invariant: every face index is in range,
// and if any vertex has a normal, all vertices must.
func (m *Mesh) Validate() error {
	n := int32(len(m.Positions))
	for fi, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d: index %d out of range [0,%d)", fi, idx, n)
			}
		}
	}
	if len(m.Normals) > 0 && len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("normals slice length %d != vertex count %d", len(m.Normals), len(m.Positions))
	}
	for i := range m.Positions {
		if !IsFinite3(m.Positions[i]) {
			return fmt.Errorf("vertex %d has non-finite position", i)
		}
		if m.HasNormal(i) && !IsFinite3(m.Normals[i]) {
			return fmt.Errorf("vertex %d has non-finite normal", i)
		}
	}
	return nil
}

// BoundingBox computes the axis-aligned bounds of the vertex positions.
func (m *Mesh) BoundingBox() BoundingBox {
	b := EmptyBoundingBox()
	for _, p := range m.Positions {
		b.ExpandToInclude(p)
	}
	return b
}

// FaceVertices returns the three vertex positions of face f.
func (m *Mesh) FaceVertices(f int) ([3]float64, [3]float64, [3]float64) {
	idx := m.Faces[f]
	return m.Positions[idx[0]], m.Positions[idx[1]], m.Positions[idx[2]]
}

// FaceNormal computes the (unnormalized-input, normalized-output) CCW
// face normal for face f from its vertex positions.
func (m *Mesh) FaceNormal(f int) [3]float64 {
	a, b, c := m.FaceVertices(f)
	n := cross3(sub3(b, a), sub3(c, a))
	return normalize3(n)
}

// FaceArea returns the triangle area of face f.
func (m *Mesh) FaceArea(f int) float64 {
	a, b, c := m.FaceVertices(f)
	n := cross3(sub3(b, a), sub3(c, a))
	return 0.5 * norm3(n)
}

// FaceCentroid returns the centroid of face f.
func (m *Mesh) FaceCentroid(f int) [3]float64 {
	a, b, c := m.FaceVertices(f)
	return [3]float64{
		(a[0] + b[0] + c[0]) / 3,
		(a[1] + b[1] + c[1]) / 3,
		(a[2] + b[2] + c[2]) / 3,
	}
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{}
	out.Positions = append([][3]float64(nil), m.Positions...)
	out.Normals = append([][3]float64(nil), m.Normals...)
	out.Colors = append([][3]float32(nil), m.Colors...)
	out.UVs = append([][2]float32(nil), m.UVs...)
	out.Flags = append([]VertexFlags(nil), m.Flags...)
	out.Faces = append([][3]int32(nil), m.Faces...)
	return out
}

// KeepVertices returns a new mesh containing only the vertices whose
// index is true in keep, with faces dropped if any of their vertices
// was dropped, and indices remapped. Used by clip/clean/island-cull.
func (m *Mesh) KeepVertices(keep []bool) *Mesh {
	out := NewMesh()
	remap := make([]int32, len(m.Positions))
	for i := range remap {
		remap[i] = -1
	}
	for i, k := range keep {
		if !k {
			continue
		}
		ni := int32(out.AddVertex(m.Positions[i]))
		remap[i] = ni
		if m.HasNormal(i) {
			out.SetNormal(int(ni), m.Normals[i])
		}
		if m.HasColor(i) {
			out.SetColor(int(ni), m.Colors[i])
		}
		if m.HasUV(i) {
			out.SetUV(int(ni), m.UVs[i])
		}
	}
	for _, f := range m.Faces {
		a, b, c := remap[f[0]], remap[f[1]], remap[f[2]]
		if a < 0 || b < 0 || c < 0 {
			continue
		}
		out.AddFace(a, b, c)
	}
	return out
}

// KeepFaces returns a new mesh with only the faces selected by keep,
// pruning vertices that end up unreferenced.
func (m *Mesh) KeepFaces(keep []bool) *Mesh {
	referenced := make([]bool, len(m.Positions))
	for fi, f := range m.Faces {
		if !keep[fi] {
			continue
		}
		referenced[f[0]] = true
		referenced[f[1]] = true
		referenced[f[2]] = true
	}
	out := NewMesh()
	remap := make([]int32, len(m.Positions))
	for i := range remap {
		remap[i] = -1
	}
	for i, ref := range referenced {
		if !ref {
			continue
		}
		ni := int32(out.AddVertex(m.Positions[i]))
		remap[i] = ni
		if m.HasNormal(i) {
			out.SetNormal(int(ni), m.Normals[i])
		}
		if m.HasColor(i) {
			out.SetColor(int(ni), m.Colors[i])
		}
		if m.HasUV(i) {
			out.SetUV(int(ni), m.UVs[i])
		}
	}
	for fi, f := range m.Faces {
		if !keep[fi] {
			continue
		}
		out.AddFace(remap[f[0]], remap[f[1]], remap[f[2]])
	}
	return out
}

// AppendOffset concatenates o's vertices and faces onto m, offsetting
// o's face indices by m's current vertex count. Used to merge the
// orbital periphery mesh into the surface mesh (§4.12 Finish).
func (m *Mesh) AppendOffset(o *Mesh) {
	base := int32(len(m.Positions))
	if len(o.Normals) > 0 {
		m.ensureNormals()
	}
	if len(o.Colors) > 0 {
		m.ensureColors()
	}
	if len(o.UVs) > 0 {
		m.ensureUVs()
	}
	for i, p := range o.Positions {
		ni := m.AddVertex(p)
		if o.HasNormal(i) {
			m.SetNormal(ni, o.Normals[i])
		}
		if o.HasColor(i) {
			m.SetColor(ni, o.Colors[i])
		}
		if o.HasUV(i) {
			m.SetUV(ni, o.UVs[i])
		}
	}
	for _, f := range o.Faces {
		m.AddFace(f[0]+base, f[1]+base, f[2]+base)
	}
}
