package sceneconfig

import (
	"encoding/json"
	"fmt"
	"os"
)

// overlay mirrors Options but with every field a pointer, so a JSON
// file only needs to name the fields it wants to override — the same
// "pointer-optional-fields over a JSON file" idiom the teacher's tuning
// config uses for its background-subtraction knobs.
type overlay struct {
	Extent        *float64 `json:"extent,omitempty"`
	SurfaceExtent *float64 `json:"surfaceExtent,omitempty"`
	NoSurface     *bool    `json:"noSurface,omitempty"`
	NoOrbital     *bool    `json:"noOrbital,omitempty"`

	MinIslandRatio *float64 `json:"minIslandRatio,omitempty"`

	TargetSceneMeshFaces   *int `json:"targetSceneMeshFaces,omitempty"`
	TargetSurfaceMeshFaces *int `json:"targetSurfaceMeshFaces,omitempty"`

	GenerateUVs *bool      `json:"generateUvs,omitempty"`
	AtlasMode   *AtlasMode `json:"atlasMode,omitempty"`

	NormalFilter          *int     `json:"normalFilter,omitempty"`
	OrbitalFillPointsPerMeter *float64 `json:"orbitalFillPointsPerMeter,omitempty"`
	OrbitalBlendRadius    *float64 `json:"orbitalBlendRadius,omitempty"`
	OrbitalSewRadius      *float64 `json:"orbitalSewRadius,omitempty"`

	CleverCombineCellSize        *float64 `json:"cleverCombineCellSize,omitempty"`
	CleverCombineAspect          *float64 `json:"cleverCombineAspect,omitempty"`
	CleverCombineMaxPointsPerCell *int    `json:"cleverCombineMaxPointsPerCell,omitempty"`

	DebugDir *string `json:"debugDir,omitempty"`
}

// LoadFile reads a JSON overlay file at path and applies it on top of
// base, returning the merged Options. A missing field in the file
// leaves base's value untouched.
func LoadFile(path string, base Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var ov overlay
	if err := json.Unmarshal(data, &ov); err != nil {
		return Options{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return applyOverlay(base, ov), nil
}

func applyOverlay(o Options, ov overlay) Options {
	if ov.Extent != nil {
		o.Extent = *ov.Extent
	}
	if ov.SurfaceExtent != nil {
		o.SurfaceExtent = *ov.SurfaceExtent
	}
	if ov.NoSurface != nil {
		o.NoSurface = *ov.NoSurface
	}
	if ov.NoOrbital != nil {
		o.NoOrbital = *ov.NoOrbital
	}
	if ov.MinIslandRatio != nil {
		o.MinIslandRatio = *ov.MinIslandRatio
	}
	if ov.TargetSceneMeshFaces != nil {
		o.TargetSceneMeshFaces = *ov.TargetSceneMeshFaces
	}
	if ov.TargetSurfaceMeshFaces != nil {
		o.TargetSurfaceMeshFaces = *ov.TargetSurfaceMeshFaces
	}
	if ov.GenerateUVs != nil {
		o.GenerateUVs = *ov.GenerateUVs
	}
	if ov.AtlasMode != nil {
		o.AtlasMode = *ov.AtlasMode
	}
	if ov.NormalFilter != nil {
		o.Build.NormalFilter = *ov.NormalFilter
	}
	if ov.OrbitalFillPointsPerMeter != nil {
		o.Orbital.FillPointsPerMeter = *ov.OrbitalFillPointsPerMeter
	}
	if ov.OrbitalBlendRadius != nil {
		o.Blend.BlendRadius = *ov.OrbitalBlendRadius
	}
	if ov.OrbitalSewRadius != nil {
		o.Blend.SewRadius = *ov.OrbitalSewRadius
	}
	if ov.CleverCombineCellSize != nil {
		o.Combine.CellSize = *ov.CleverCombineCellSize
	}
	if ov.CleverCombineAspect != nil {
		o.Combine.Aspect = *ov.CleverCombineAspect
	}
	if ov.CleverCombineMaxPointsPerCell != nil {
		o.Combine.MaxPerCell = *ov.CleverCombineMaxPointsPerCell
	}
	if ov.DebugDir != nil {
		o.DebugDir = *ov.DebugDir
	}
	return o
}
