// Package sceneconfig holds every tunable parameter struct for the
// reconstruction pipeline, following the teacher's "defaults struct +
// Validate() + fluent With* setters" idiom throughout.
package sceneconfig

import (
	"fmt"

	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// ReconstructionMethod selects the implicit-field vs. sample-scale
// solver family (§3 ReconstructionParameters).
type ReconstructionMethod string

const (
	MethodImplicit    ReconstructionMethod = "implicit"
	MethodSampleScale ReconstructionMethod = "sample-scale"
)

// ReconstructionParameters configures the black-box reconstruction
// solver invocation (§3, §6).
type ReconstructionParameters struct {
	Method ReconstructionMethod

	// Resolution: mutually exclusive.
	MinCellWidthMeters float64
	OctreeDepth        int

	MinSamplesPerCell int
	BSplineDegree     int

	// ConfidenceExponent scales sample influence; 0 disables.
	ConfidenceExponent float64

	TrimmerLevel        float64
	LenientTrimmerLevel float64

	Envelope            scenegeo.BoundingBox
	HasEnvelope         bool
	PassEnvelopeToSolver bool

	MinIslandRatio float64

	// GlobalScale is the sample-scale solver's optional global scale
	// (§6 "Sample-scale reconstructor"); ignored when Method is not
	// MethodSampleScale or when HasGlobalScale is false.
	GlobalScale    float64
	HasGlobalScale bool
}

// DefaultReconstructionParameters returns parameters matching the
// solver's own conservative defaults.
func DefaultReconstructionParameters() ReconstructionParameters {
	return ReconstructionParameters{
		Method:              MethodImplicit,
		MinCellWidthMeters:  0.05,
		MinSamplesPerCell:   1,
		BSplineDegree:       2,
		ConfidenceExponent:  4,
		TrimmerLevel:        7,
		LenientTrimmerLevel: 0,
		MinIslandRatio:      0,
	}
}

// Validate enforces the §7 invalid-arg triggers that apply to
// reconstruction parameters.
func (p ReconstructionParameters) Validate() error {
	if p.Method != MethodImplicit && p.Method != MethodSampleScale {
		return fmt.Errorf("unsupported reconstruction method %q", p.Method)
	}
	if p.MinCellWidthMeters > 0 && p.OctreeDepth > 0 {
		return fmt.Errorf("minCellWidthMeters and octreeDepth are mutually exclusive")
	}
	if p.MinCellWidthMeters <= 0 && p.OctreeDepth <= 0 {
		return fmt.Errorf("one of minCellWidthMeters or octreeDepth must be set")
	}
	if p.ConfidenceExponent < 0 {
		return fmt.Errorf("confidenceExponent must be >= 0")
	}
	if p.MinIslandRatio < 0 || p.MinIslandRatio > 1 {
		return fmt.Errorf("minIslandRatio must be in [0,1]")
	}
	return nil
}

func (p ReconstructionParameters) WithMethod(m ReconstructionMethod) ReconstructionParameters {
	p.Method = m
	return p
}

func (p ReconstructionParameters) WithMinCellWidthMeters(w float64) ReconstructionParameters {
	p.MinCellWidthMeters = w
	p.OctreeDepth = 0
	return p
}

func (p ReconstructionParameters) WithOctreeDepth(d int) ReconstructionParameters {
	p.OctreeDepth = d
	p.MinCellWidthMeters = 0
	return p
}

func (p ReconstructionParameters) WithConfidenceExponent(e float64) ReconstructionParameters {
	p.ConfidenceExponent = e
	return p
}

func (p ReconstructionParameters) WithTrimmerLevels(strict, lenient float64) ReconstructionParameters {
	p.TrimmerLevel = strict
	p.LenientTrimmerLevel = lenient
	return p
}

func (p ReconstructionParameters) WithEnvelope(b scenegeo.BoundingBox) ReconstructionParameters {
	p.Envelope = b
	p.HasEnvelope = true
	return p
}

func (p ReconstructionParameters) WithMinIslandRatio(r float64) ReconstructionParameters {
	p.MinIslandRatio = r
	return p
}

func (p ReconstructionParameters) WithGlobalScale(s float64) ReconstructionParameters {
	p.GlobalScale = s
	p.HasGlobalScale = true
	return p
}

// UsesLenientRetrim reports whether lenient re-trim (§4.9) should run:
// active only when orbital fill is not used and the lenient level cuts
// less aggressively than the strict level.
func (p ReconstructionParameters) UsesLenientRetrim(orbitalFillUsed bool) bool {
	return !orbitalFillUsed && p.LenientTrimmerLevel < p.TrimmerLevel
}
