// Package scenedebug implements the §9 debug-mesh dump pipeline: a
// numeric-prefixed .obj file per stage, a companion scatter/density
// PNG (gonum/plot), and one cumulative HTML report (go-echarts)
// written at the end of a run.
package scenedebug

import (
	"fmt"

	"github.com/roverscene/scenemesh/internal/fsutil"
	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// WriteOBJ writes mesh to name on fs as a Wavefront .obj file.
func WriteOBJ(fs fsutil.FileSystem, name string, mesh *scenegeo.Mesh) error {
	w, err := fs.Create(name)
	if err != nil {
		return fmt.Errorf("scenedebug: create %s: %w", name, err)
	}
	defer w.Close()

	return scenegeo.EncodeOBJ(w, mesh)
}
