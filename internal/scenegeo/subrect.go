package scenegeo

// Subrect is an integer pixel window into a raster such as the orbital
// DEM (§3).
type Subrect struct {
	MinX, MinY, MaxX, MaxY int
}

func (s Subrect) Width() int  { return s.MaxX - s.MinX }
func (s Subrect) Height() int { return s.MaxY - s.MinY }

func (s Subrect) Empty() bool { return s.Width() <= 0 || s.Height() <= 0 }
