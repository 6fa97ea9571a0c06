package scenegeo

import (
	"bufio"
	"fmt"
	"io"
)

// EncodeOBJ writes mesh to w as a Wavefront .obj stream: vertex
// positions, per-vertex normals when present, per-vertex UVs when
// present, and faces (1-indexed, as the format requires). Point
// clouds (no faces) are written as vertices only. The caller is
// responsible for flushing/closing w.
func EncodeOBJ(w io.Writer, mesh *Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d vertices, %d faces\n", mesh.NumVertices(), mesh.NumFaces())

	hasUV := len(mesh.UVs) == mesh.NumVertices() && mesh.NumVertices() > 0
	hasNormal := len(mesh.Normals) == mesh.NumVertices() && mesh.NumVertices() > 0

	for i, p := range mesh.Positions {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", p[0], p[1], p[2])
		if hasUV {
			uv := mesh.UVs[i]
			fmt.Fprintf(bw, "vt %.6f %.6f\n", uv[0], uv[1])
		}
		if hasNormal {
			n := mesh.Normals[i]
			fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", n[0], n[1], n[2])
		}
	}

	for _, face := range mesh.Faces {
		switch {
		case hasUV && hasNormal:
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n",
				face[0]+1, face[0]+1, face[0]+1,
				face[1]+1, face[1]+1, face[1]+1,
				face[2]+1, face[2]+1, face[2]+1)
		case hasNormal:
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n",
				face[0]+1, face[0]+1, face[1]+1, face[1]+1, face[2]+1, face[2]+1)
		case hasUV:
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n",
				face[0]+1, face[0]+1, face[1]+1, face[1]+1, face[2]+1, face[2]+1)
		default:
			fmt.Fprintf(bw, "f %d %d %d\n", face[0]+1, face[1]+1, face[2]+1)
		}
	}

	return bw.Flush()
}
