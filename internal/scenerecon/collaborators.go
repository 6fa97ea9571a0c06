package scenerecon

import (
	"context"

	"github.com/roverscene/scenemesh/internal/atlas"
	"github.com/roverscene/scenemesh/internal/orbital"
	"github.com/roverscene/scenemesh/internal/sceneconfig"
	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// Reconstructor is the §6 "Implicit-field reconstructor" black box: it
// turns a confidence-weighted point cloud into a mesh, optionally
// returning an untrimmed mesh whose per-vertex normal length encodes
// estimated local density (consumed by the lenient re-trim path).
type Reconstructor interface {
	Reconstruct(ctx context.Context, points *scenegeo.Mesh, params sceneconfig.ReconstructionParameters) (mesh, untrimmed *scenegeo.Mesh, err error)
}

// SampleScaleReconstructor is the §6 "Sample-scale reconstructor"
// black box: an alternative solver keyed on a point cloud and an
// optional global scale, with a progress callback delivering the
// uncleaned intermediate mesh.
type SampleScaleReconstructor interface {
	Reconstruct(ctx context.Context, points *scenegeo.Mesh, scale float64, onIntermediate func(*scenegeo.Mesh)) (*scenegeo.Mesh, error)
}

// Decimator is the §4.8 black-box contract: reduce a mesh to at most
// targetFaces faces, preserving normals. Implementations must pass
// meshes already at or below targetFaces through unchanged.
type Decimator interface {
	Decimate(ctx context.Context, mesh *scenegeo.Mesh, targetFaces int) (*scenegeo.Mesh, error)
}

// Atlaser re-exports atlas.Atlaser under the §6 collaborator name; the
// interface lives in internal/atlas so the naive implementation and
// the submesh-split/warp orchestration can depend on it without a
// cycle back through scenerecon.
type Atlaser = atlas.Atlaser

// OrbitalDEMProvider re-exports orbital.DEMProvider under the §6
// collaborator name; scenerecon depends downward on internal/orbital,
// so the interface itself stays defined there to avoid a cycle.
type OrbitalDEMProvider = orbital.DEMProvider

// FrameService is the §6 "Mission / frame service" collaborator:
// rigid transforms among frames, the local-level basis, and camera
// models.
type FrameService interface {
	Resolve(frame scenegeo.FrameID) (scenegeo.Pose, error)
	LocalLevelBasis() (north, east, nadir [3]float64, err error)
	CameraCenter(frame scenegeo.FrameID) (point [3]float64, ok bool, err error)
}

// SceneMeshRecord is the §6 "Persisted state layout" record: exactly
// one per project/variant.
type SceneMeshRecord struct {
	MeshVariant   string
	BoundingBox   scenegeo.BoundingBox
	MeshBlob      []byte
	SurfaceExtent float64
}

// ProjectStore is the §6 "Project storage" collaborator: a sink for
// the final mesh record, and optionally an on-disk mesh file.
type ProjectStore interface {
	SaveSceneMesh(ctx context.Context, projectID string, record SceneMeshRecord) error
	SaveMeshFile(ctx context.Context, url string, data []byte) error
}
