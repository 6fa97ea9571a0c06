package scenedebug

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/roverscene/scenemesh/internal/fsutil"
	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// Dumper accumulates the numeric-prefixed debug artifacts (§9 design
// notes) for a single run: one .obj and one .png per stage, plus one
// cumulative HTML report written by Finish. A nil *Dumper (the zero
// value returned by New when dir is empty) makes every method a no-op,
// so callers never need a separate enabled check.
type Dumper struct {
	fs        fsutil.FileSystem
	dir       string
	logger    *log.Logger
	index     int
	stats     []StageStat
	lastFaces int
}

// New returns a Dumper writing into dir, or nil if dir is empty. fs
// defaults to fsutil.OSFileSystem{} when nil.
func New(dir string, fs fsutil.FileSystem, logger *log.Logger) *Dumper {
	if dir == "" {
		return nil
	}
	if fs == nil {
		fs = fsutil.OSFileSystem{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Dumper{fs: fs, dir: dir, logger: logger}
}

// Stage writes the numbered .obj/.png pair for mesh under name and
// records its vertex/face counts for the final report. Errors are
// logged, not returned: a failed debug dump must never fail the run.
func (d *Dumper) Stage(name string, mesh *scenegeo.Mesh) {
	if d == nil {
		return
	}
	if err := d.fs.MkdirAll(d.dir, 0o755); err != nil {
		d.logger.Printf("scenedebug: mkdir %s: %v", d.dir, err)
		return
	}

	prefix := fmt.Sprintf("%02d-%s", d.index, name)
	d.index++

	objPath := filepath.Join(d.dir, prefix+".obj")
	if err := WriteOBJ(d.fs, objPath, mesh); err != nil {
		d.logger.Printf("scenedebug: %v", err)
	}

	pngPath := filepath.Join(d.dir, prefix+".png")
	if err := WritePlotPNG(pngPath, prefix, mesh); err != nil {
		d.logger.Printf("scenedebug: plot %s: %v", prefix, err)
	}

	ratio := 0.0
	if d.lastFaces > 0 {
		ratio = float64(mesh.NumFaces()) / float64(d.lastFaces)
	}
	d.stats = append(d.stats, StageStat{
		Stage:         prefix,
		Vertices:      mesh.NumVertices(),
		Faces:         mesh.NumFaces(),
		SurvivalRatio: ratio,
	})
	d.lastFaces = mesh.NumFaces()
}

// Finish writes the cumulative HTML report. Call once at the end of a
// run, after all Stage calls.
func (d *Dumper) Finish() {
	if d == nil || len(d.stats) == 0 {
		return
	}
	reportPath := filepath.Join(d.dir, "report.html")
	w, err := d.fs.Create(reportPath)
	if err != nil {
		d.logger.Printf("scenedebug: create report %s: %v", reportPath, err)
		return
	}
	defer w.Close()
	if err := WriteReport(w, d.stats); err != nil {
		d.logger.Printf("scenedebug: %v", err)
	}
}
