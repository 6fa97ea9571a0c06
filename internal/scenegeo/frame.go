package scenegeo

// FrameID names the coordinate frame a cloud or mesh was produced in
// (e.g. a wedge's native frame, or the shared site frame after a pose
// has been applied).
type FrameID string

const (
	// FrameSite is the shared reconstruction frame every input is
	// transformed into before fusion.
	FrameSite FrameID = "site"
)

// Pose is a rigid transform from a source frame into FrameSite,
// represented as a 4x4 row-major matrix. Row 3 is always [0 0 0 1]
// for a valid rigid transform (see IsValidRigidTransform).
type Pose struct {
	Frame  FrameID
	Matrix [16]float64
}

// IdentityPose returns a Pose with the identity transform.
func IdentityPose(frame FrameID) Pose {
	p := Pose{Frame: frame}
	p.Matrix[0], p.Matrix[5], p.Matrix[10], p.Matrix[15] = 1, 1, 1, 1
	return p
}

// PoseCache resolves and memoizes per-frame poses for a reconstruction
// run, avoiding repeated lookups against the frame service collaborator
// (§6) when many wedges share a frame.
type PoseCache struct {
	resolve func(FrameID) (Pose, error)
	cache   map[FrameID]Pose
}

// NewPoseCache wraps a resolver function (typically the FrameService
// collaborator's Lookup) with memoization.
func NewPoseCache(resolve func(FrameID) (Pose, error)) *PoseCache {
	return &PoseCache{resolve: resolve, cache: make(map[FrameID]Pose)}
}

func (c *PoseCache) Get(frame FrameID) (Pose, error) {
	if p, ok := c.cache[frame]; ok {
		return p, nil
	}
	p, err := c.resolve(frame)
	if err != nil {
		return Pose{}, err
	}
	c.cache[frame] = p
	return p, nil
}
