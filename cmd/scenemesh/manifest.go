package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roverscene/scenemesh/internal/pointbuild"
	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// wedgeManifest is the on-disk description of a batch of wedges: a
// JSON index naming the raster files (written with
// pointbuild.EncodeRaster) that hold each wedge's geometry/normals.
// Raster paths are resolved relative to the manifest file's directory.
type wedgeManifest struct {
	Wedges []wedgeSpec `json:"wedges"`
}

type wedgeSpec struct {
	Name            string     `json:"name"`
	SiteDrive       string     `json:"siteDrive"`
	GeometryFile    string     `json:"geometryFile"`
	NormalsFile     string     `json:"normalsFile,omitempty"`
	Pose            [16]float64 `json:"pose,omitempty"`
	HasPose         bool        `json:"hasPose,omitempty"`
	Reconstructable bool        `json:"reconstructable"`
	LeftEyeCols     [2]int      `json:"leftEyeCols,omitempty"`
	RightEyeCols    [2]int      `json:"rightEyeCols,omitempty"`
	HasStereoEyes   bool        `json:"hasStereoEyes,omitempty"`
}

// loadWedges reads manifestPath and the raster files it references,
// returning the assembled wedge set ready for pointbuild.BuildAll.
func loadWedges(manifestPath string) ([]*pointbuild.Wedge, error) {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var manifest wedgeManifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(manifest.Wedges) == 0 {
		return nil, fmt.Errorf("manifest %s lists no wedges", manifestPath)
	}

	dir := filepath.Dir(manifestPath)
	wedges := make([]*pointbuild.Wedge, 0, len(manifest.Wedges))
	for _, spec := range manifest.Wedges {
		geometry, err := loadRasterFile(filepath.Join(dir, spec.GeometryFile))
		if err != nil {
			return nil, fmt.Errorf("wedge %s: geometry: %w", spec.Name, err)
		}
		var normals *pointbuild.Raster
		if spec.NormalsFile != "" {
			normals, err = loadRasterFile(filepath.Join(dir, spec.NormalsFile))
			if err != nil {
				return nil, fmt.Errorf("wedge %s: normals: %w", spec.Name, err)
			}
		}
		wedges = append(wedges, &pointbuild.Wedge{
			Name:            spec.Name,
			SiteDrive:       spec.SiteDrive,
			Geometry:        geometry,
			Normals:         normals,
			Pose:            scenegeo.Pose{Frame: scenegeo.FrameSite, Matrix: spec.Pose},
			HasPose:         spec.HasPose,
			Reconstructable: spec.Reconstructable,
			LeftEyeCols:     spec.LeftEyeCols,
			RightEyeCols:    spec.RightEyeCols,
			HasStereoEyes:   spec.HasStereoEyes,
		})
	}
	return wedges, nil
}

func loadRasterFile(path string) (*pointbuild.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return pointbuild.DecodeRaster(f)
}
