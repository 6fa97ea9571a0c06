package sceneconfig

import "fmt"

// CleverCombineParams configures the grid-bucketed multi-cloud merger
// (§4.4).
type CleverCombineParams struct {
	CellSize    float64
	Aspect      float64
	MaxPerCell  int
	Disabled    bool
}

// DefaultCleverCombineParams returns the spec's literal defaults.
func DefaultCleverCombineParams() CleverCombineParams {
	return CleverCombineParams{
		CellSize:   0.02,
		Aspect:     1.0,
		MaxPerCell: 8,
	}
}

func (p CleverCombineParams) Validate() error {
	if p.Disabled {
		return nil
	}
	if p.CellSize <= 0 {
		return fmt.Errorf("cleverCombineCellSize must be > 0")
	}
	if p.Aspect <= 0 {
		return fmt.Errorf("cleverCombineAspect must be > 0")
	}
	if p.MaxPerCell < 1 {
		return fmt.Errorf("cleverCombineMaxPointsPerCell must be >= 1")
	}
	return nil
}

func (p CleverCombineParams) WithCellSize(size float64) CleverCombineParams {
	p.CellSize = size
	return p
}

func (p CleverCombineParams) WithAspect(aspect float64) CleverCombineParams {
	p.Aspect = aspect
	return p
}

func (p CleverCombineParams) WithMaxPerCell(n int) CleverCombineParams {
	p.MaxPerCell = n
	return p
}

func (p CleverCombineParams) WithDisabled(disabled bool) CleverCombineParams {
	p.Disabled = disabled
	return p
}

// CellHeight returns the vertical cell size implied by CellSize*Aspect.
func (p CleverCombineParams) CellHeight() float64 {
	return p.CellSize * p.Aspect
}
