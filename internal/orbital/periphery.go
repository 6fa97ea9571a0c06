package orbital

import (
	"github.com/roverscene/scenemesh/internal/scenegeo"
	"github.com/roverscene/scenemesh/internal/sceneconfig"
)

// BuildPeriphery implements §4.11: a fine organized mesh of the
// orbital DEM covering the outer window, with the surface footprint
// cut out so the orbital mesh only fills what the surface mesh
// doesn't cover. If the cut window already reaches the outer radius
// there's nothing left to fill and periphery generation is skipped.
func BuildPeriphery(dem DEMProvider, surfaceBounds scenegeo.Subrect, outerRadius float64, params sceneconfig.OrbitalParams) (*scenegeo.OrganizedMesh, error) {
	mpp := dem.MetersPerPixel()
	if mpp <= 0 {
		mpp = params.MetersPerPixel
	}

	padPixels := int(params.FillPadding / mpp)
	cut := scenegeo.Subrect{
		MinX: surfaceBounds.MinX - padPixels,
		MinY: surfaceBounds.MinY - padPixels,
		MaxX: surfaceBounds.MaxX + padPixels,
		MaxY: surfaceBounds.MaxY + padPixels,
	}

	outerPixels := int(outerRadius / mpp)
	outer := scenegeo.Subrect{MinX: -outerPixels, MinY: -outerPixels, MaxX: outerPixels, MaxY: outerPixels}

	if cut.Width() >= outer.Width() && cut.Height() >= outer.Height() {
		return nil, nil
	}

	subsample := 1
	if params.SamplesPerPixel > 0 && params.SamplesPerPixel < 1 {
		subsample = int(1.0 / params.SamplesPerPixel)
		if subsample < 1 {
			subsample = 1
		}
	}

	return dem.OrganizedMesh(outer, &cut, subsample, true, true)
}
