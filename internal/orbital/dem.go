// Package orbital samples the orbital DEM into fill points and a
// periphery mesh (§4.5, §4.11), and blends/sews that periphery onto
// the reconstructed surface mesh (§4.12).
package orbital

import "github.com/roverscene/scenemesh/internal/scenegeo"

// DEMProvider is the §6 "Orbital DEM provider" external collaborator:
// a coarse planetary-surface elevation raster co-registered to the
// scene frame, offering pixel-window and organized-mesh queries.
type DEMProvider interface {
	// GetSubrectPixels returns raw DEM height samples within radius of
	// center, in mesh-frame XY with DEM-native Z.
	GetSubrectPixels(center [2]float64, radius float64) ([][3]float64, error)

	// OrganizedMesh returns a dense organized quad mesh covering outer,
	// optionally with inner cut out, subsampled by subsample pixels per
	// sample, with up-normals when withNormals is set.
	OrganizedMesh(outer scenegeo.Subrect, inner *scenegeo.Subrect, subsample int, withNormals, quadsOnly bool) (*scenegeo.OrganizedMesh, error)

	// MetersPerPixel is the DEM's native resolution.
	MetersPerPixel() float64
}
