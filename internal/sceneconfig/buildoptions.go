package sceneconfig

import "fmt"

// StereoEyePolicy selects which eye of a stereo wedge to prefer.
type StereoEyePolicy string

const (
	StereoEyeAuto  StereoEyePolicy = "auto"
	StereoEyeLeft  StereoEyePolicy = "left"
	StereoEyeRight StereoEyePolicy = "right"
	StereoEyeAny   StereoEyePolicy = "any"
)

// NormalScalePolicy selects how per-vertex normal magnitude is set
// after cloud construction (§4.1 step 7).
type NormalScalePolicy string

const (
	NormalScaleNone       NormalScalePolicy = "none"
	NormalScaleConfidence NormalScalePolicy = "confidence"
	NormalScalePointScale NormalScalePolicy = "pointScale"
)

// BuildOptions configures the per-wedge point-cloud builder (§4.1).
type BuildOptions struct {
	NormalFilter        int
	StereoEye           StereoEyePolicy
	PreClipExtent       float64
	NormalScale         NormalScalePolicy
	LinearConfidenceMin float64
	AutoDecimate        bool

	// NearLimit/FarLimit are the camera-distance thresholds used by the
	// confidence normal-scale ramp (§4.1 step 7); supplied externally by
	// the frame/camera collaborator.
	NearLimit float64
	FarLimit  float64

	// MergeEpsilon is the in-cloud dedup radius (§4.1 step 6), fixed at
	// 0.005m per spec but exposed for test fixtures.
	MergeEpsilon float64
}

// DefaultBuildOptions returns the spec's literal defaults.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		NormalFilter:        0,
		StereoEye:           StereoEyeAuto,
		PreClipExtent:       0,
		NormalScale:         NormalScaleNone,
		LinearConfidenceMin: 0,
		AutoDecimate:        true,
		MergeEpsilon:        0.005,
	}
}

// Validate enforces the §7 invalid-arg trigger `normalFilter ∉ [0,8]`.
func (o BuildOptions) Validate() error {
	if o.NormalFilter < 0 || o.NormalFilter > 8 {
		return fmt.Errorf("normalFilter %d out of range [0,8]", o.NormalFilter)
	}
	switch o.StereoEye {
	case StereoEyeAuto, StereoEyeLeft, StereoEyeRight, StereoEyeAny:
	default:
		return fmt.Errorf("unsupported stereoEye policy %q", o.StereoEye)
	}
	if o.PreClipExtent < 0 {
		return fmt.Errorf("preClipExtent must be >= 0")
	}
	if o.LinearConfidenceMin < 0 || o.LinearConfidenceMin > 1 {
		return fmt.Errorf("linearConfidenceMin must be in [0,1]")
	}
	if o.MergeEpsilon <= 0 {
		return fmt.Errorf("mergeEpsilon must be > 0")
	}
	return nil
}

func (o BuildOptions) WithNormalFilter(n int) BuildOptions {
	o.NormalFilter = n
	return o
}

func (o BuildOptions) WithStereoEye(p StereoEyePolicy) BuildOptions {
	o.StereoEye = p
	return o
}

func (o BuildOptions) WithPreClipExtent(e float64) BuildOptions {
	o.PreClipExtent = e
	return o
}

func (o BuildOptions) WithNormalScale(policy NormalScalePolicy, linearConfidenceMin float64) BuildOptions {
	o.NormalScale = policy
	o.LinearConfidenceMin = linearConfidenceMin
	return o
}

func (o BuildOptions) WithConfidenceLimits(near, far float64) BuildOptions {
	o.NearLimit = near
	o.FarLimit = far
	return o
}

func (o BuildOptions) WithAutoDecimate(enabled bool) BuildOptions {
	o.AutoDecimate = enabled
	return o
}
