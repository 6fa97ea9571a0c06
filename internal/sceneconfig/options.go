package sceneconfig

import (
	"fmt"
	"time"

	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// AtlasMode selects the texture-atlas strategy (§4.13).
type AtlasMode string

const (
	AtlasModeUV       AtlasMode = "uv-atlas"
	AtlasModeHeightmap AtlasMode = "heightmap"
	AtlasModeNaive    AtlasMode = "naive"
	AtlasModeManifold AtlasMode = "manifold"
)

// Options is the top-level driver configuration, assembled from the
// §6 CLI surface. It bundles the per-stage parameter structs rather
// than flattening every field, so each stage's Validate() stays
// independently testable.
type Options struct {
	Extent        float64
	SurfaceExtent float64

	NoSurface bool
	NoOrbital bool

	AutoExpandSurfaceExtent         bool
	MaxAutoSurfaceExtent            float64
	UseExpandedSurfaceExtentForTiling bool

	MinIslandRatio float64

	ShrinkwrapPointsPerMeter float64
	MaskOffset               float64
	Nadir                    [3]float64

	TargetSceneMeshFaces   int
	TargetSurfaceMeshFaces int

	FilterTriangles bool
	GenerateUVs     bool
	AtlasMode       AtlasMode

	// TextureResolution is the target square texture size (pixels) the
	// atlas stage lays UVs out against (§4.13).
	TextureResolution int
	// DstSurfaceFrac is the fraction of texture space the central
	// (surface + blend band) submesh occupies when a peripheral
	// submesh is also atlased (§4.13).
	DstSurfaceFrac float64
	// AtlasWarpExponent shapes the optional UV easing curve applied
	// after the central/peripheral atlases are merged (§4.13).
	AtlasWarpExponent float64
	// AtlasMaxTime bounds how long the UV-atlas strategy is given
	// before falling back to heightmap atlasing (§4.13).
	AtlasMaxTime time.Duration

	Build     BuildOptions
	Recon     ReconstructionParameters
	Combine   CleverCombineParams
	Orbital   OrbitalParams
	Blend     BlendParams

	// DebugDir, when non-empty, enables numeric-prefixed debug dumps
	// (§7, §9) written under this directory.
	DebugDir string

	// PreservePartialOnError keeps the reconstructor's/decimator's
	// temporary input files on failure (§6); TempDir is where they land.
	PreservePartialOnError bool
	TempDir                string

	// ProjectID and MeshVariant key the §6 persisted SceneMesh record;
	// OutputURL, when non-empty, is also passed to the project store
	// so it can write a standalone mesh file (extension derived from
	// the URL).
	ProjectID   string
	MeshVariant string
	OutputURL   string
}

// DefaultOptions returns the spec's literal top-level defaults.
func DefaultOptions() Options {
	return Options{
		Extent:                64,
		SurfaceExtent:         64,
		AutoExpandSurfaceExtent: true,
		MaxAutoSurfaceExtent:  256,
		MinIslandRatio:        0.1,

		ShrinkwrapPointsPerMeter: 2,
		MaskOffset:               0.1,
		Nadir:                    [3]float64{0, 0, -1},

		TargetSceneMeshFaces:   2_000_000,
		TargetSurfaceMeshFaces: 1_000_000,

		FilterTriangles: false,
		GenerateUVs:     true,
		AtlasMode:       AtlasModeNaive,

		TextureResolution: 4096,
		DstSurfaceFrac:    0.75,
		AtlasWarpExponent: 1.0,
		AtlasMaxTime:      30 * time.Second,

		Build:   DefaultBuildOptions(),
		Recon:   DefaultReconstructionParameters(),
		Combine: DefaultCleverCombineParams(),
		Orbital: DefaultOrbitalParams(),
		Blend:   DefaultBlendParams(),

		TempDir: "",
	}
}

// Validate enforces the §7 invalid-arg triggers that are only
// detectable once the whole option set is assembled, then delegates to
// each stage's own Validate().
func (o Options) Validate() error {
	if o.SurfaceExtent > o.Extent && !o.NoSurface && !o.NoOrbital {
		return fmt.Errorf("surfaceExtent (%v) must not exceed extent (%v) when both surface and orbital are active", o.SurfaceExtent, o.Extent)
	}
	if o.Extent <= 0 {
		return fmt.Errorf("extent must be > 0")
	}
	if o.SurfaceExtent <= 0 {
		return fmt.Errorf("surfaceExtent must be > 0")
	}
	if o.MinIslandRatio < 0 || o.MinIslandRatio > 1 {
		return fmt.Errorf("minIslandRatio must be in [0,1]")
	}
	if o.TargetSceneMeshFaces < 0 || o.TargetSurfaceMeshFaces < 0 {
		return fmt.Errorf("target face counts must be >= 0")
	}
	if o.GenerateUVs && o.TextureResolution <= 0 {
		return fmt.Errorf("textureResolution must be > 0 when generateUvs is set")
	}
	if o.DstSurfaceFrac <= 0 || o.DstSurfaceFrac > 1 {
		return fmt.Errorf("dstSurfaceFrac must be in (0,1]")
	}
	if err := o.Build.Validate(); err != nil {
		return fmt.Errorf("build options: %w", err)
	}
	if !o.NoSurface {
		if err := o.Recon.Validate(); err != nil {
			return fmt.Errorf("reconstruction parameters: %w", err)
		}
		if err := o.Combine.Validate(); err != nil {
			return fmt.Errorf("clever-combine params: %w", err)
		}
	}
	if !o.NoOrbital {
		if err := o.Orbital.Validate(); err != nil {
			return fmt.Errorf("orbital params: %w", err)
		}
		if err := o.Blend.Validate(); err != nil {
			return fmt.Errorf("blend params: %w", err)
		}
	}
	return nil
}

func (o Options) WithExtents(extent, surfaceExtent float64) Options {
	o.Extent = extent
	o.SurfaceExtent = surfaceExtent
	return o
}

func (o Options) WithNoSurface(v bool) Options {
	o.NoSurface = v
	return o
}

func (o Options) WithNoOrbital(v bool) Options {
	o.NoOrbital = v
	return o
}

func (o Options) WithDebugDir(dir string) Options {
	o.DebugDir = dir
	return o
}

func (o Options) WithAtlasMode(mode AtlasMode) Options {
	o.AtlasMode = mode
	return o
}

func (o Options) WithTargetFaces(scene, surface int) Options {
	o.TargetSceneMeshFaces = scene
	o.TargetSurfaceMeshFaces = surface
	return o
}

func (o Options) WithProject(projectID, meshVariant, outputURL string) Options {
	o.ProjectID = projectID
	o.MeshVariant = meshVariant
	o.OutputURL = outputURL
	return o
}

// EffectiveExtentBox returns the configured square clip region (§4.10)
// centered at the origin.
func (o Options) EffectiveExtentBox() scenegeo.BoundingBox {
	b := scenegeo.EmptyBoundingBox()
	half := o.Extent / 2
	b.ExpandToInclude([3]float64{-half, -half, 0})
	b.ExpandToInclude([3]float64{half, half, 0})
	return b
}

// BuildsOrbitalPeriphery reports whether §4.11 applies: a periphery
// mesh is only built when the outer extent exceeds the surface extent
// and orbital is enabled.
func (o Options) BuildsOrbitalPeriphery() bool {
	return !o.NoOrbital && o.Extent > o.SurfaceExtent
}
