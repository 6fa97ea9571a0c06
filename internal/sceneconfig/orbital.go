package sceneconfig

import "fmt"

// OrbitalParams configures the orbital DEM fill sampler (§4.5) and
// periphery builder (§4.11).
type OrbitalParams struct {
	Enabled bool

	FillPointsPerMeter     float64
	FillPoissonConfidence  float64
	HeightAdjustWidth      float64
	HeightAdjustBlend      float64

	SamplesPerPixel  float64
	FillPadding      float64

	// MetersPerPixel is the DEM's own resolution, supplied by the
	// OrbitalDEMProvider collaborator (§6).
	MetersPerPixel float64
}

// DefaultOrbitalParams returns the spec's literal defaults.
func DefaultOrbitalParams() OrbitalParams {
	return OrbitalParams{
		Enabled:               true,
		FillPointsPerMeter:    2,
		FillPoissonConfidence: 0.1,
		HeightAdjustWidth:     8,
		HeightAdjustBlend:     0.5,
		SamplesPerPixel:       1,
		FillPadding:           0,
	}
}

func (p OrbitalParams) Validate() error {
	if !p.Enabled {
		return nil
	}
	if p.FillPointsPerMeter < 0 {
		return fmt.Errorf("orbitalFillPointsPerMeter must be >= 0")
	}
	if p.FillPoissonConfidence < 0 {
		return fmt.Errorf("orbitalFillPoissonConfidence must be >= 0")
	}
	if p.SamplesPerPixel <= 0 {
		return fmt.Errorf("orbitalSamplesPerPixel must be > 0")
	}
	if p.FillPadding < 0 {
		return fmt.Errorf("orbitalFillPadding must be >= 0")
	}
	return nil
}

func (p OrbitalParams) WithEnabled(enabled bool) OrbitalParams {
	p.Enabled = enabled
	return p
}

func (p OrbitalParams) WithFillPointsPerMeter(ppm float64) OrbitalParams {
	p.FillPointsPerMeter = ppm
	return p
}

func (p OrbitalParams) WithFillPoissonConfidence(c float64) OrbitalParams {
	p.FillPoissonConfidence = c
	return p
}

func (p OrbitalParams) WithHeightAdjust(width, blend float64) OrbitalParams {
	p.HeightAdjustWidth = width
	p.HeightAdjustBlend = blend
	return p
}

func (p OrbitalParams) WithSamplesPerPixel(spp float64) OrbitalParams {
	p.SamplesPerPixel = spp
	return p
}

func (p OrbitalParams) WithFillPadding(padding float64) OrbitalParams {
	p.FillPadding = padding
	return p
}

func (p OrbitalParams) WithMetersPerPixel(mpp float64) OrbitalParams {
	p.MetersPerPixel = mpp
	return p
}

// UsesFill reports whether any orbital-fill points will be added. Per
// §8's boundary behavior, the only case producing zero fill points is
// `orbitalFillPointsPerMeter == 0` with no DEM loaded.
func (p OrbitalParams) UsesFill(demLoaded bool) bool {
	if !p.Enabled {
		return false
	}
	return p.FillPointsPerMeter > 0 || demLoaded
}
