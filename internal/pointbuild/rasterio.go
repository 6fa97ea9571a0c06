package pointbuild

import (
	"encoding/binary"
	"fmt"
	"io"
)

// rasterMagic tags the on-disk raster format so a misrouted file is
// rejected immediately rather than being decoded as silent garbage.
const rasterMagic = uint32(0x52415354) // "RAST"

// EncodeRaster writes r to w as a little-endian uint32 header (magic
// tag, rows, cols), then row-major float64 triples (NaN marks a gap,
// per Raster's doc comment).
func EncodeRaster(w io.Writer, r *Raster) error {
	header := [3]uint32{rasterMagic, uint32(r.Rows), uint32(r.Cols)}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("pointbuild: write raster header: %w", err)
	}
	buf := make([]float64, 0, 3*len(r.Values))
	for _, v := range r.Values {
		buf = append(buf, v[0], v[1], v[2])
	}
	if err := binary.Write(w, binary.LittleEndian, buf); err != nil {
		return fmt.Errorf("pointbuild: write raster values: %w", err)
	}
	return nil
}

// DecodeRaster reads a raster written by EncodeRaster.
func DecodeRaster(r io.Reader) (*Raster, error) {
	var header [3]uint32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("pointbuild: read raster header: %w", err)
	}
	if header[0] != rasterMagic {
		return nil, fmt.Errorf("pointbuild: not a raster file (bad magic)")
	}
	rows, cols := int(header[1]), int(header[2])
	flat := make([]float64, 3*rows*cols)
	if err := binary.Read(r, binary.LittleEndian, flat); err != nil {
		return nil, fmt.Errorf("pointbuild: read raster values: %w", err)
	}
	out := &Raster{Rows: rows, Cols: cols, Values: make([][3]float64, rows*cols)}
	for i := range out.Values {
		out.Values[i] = [3]float64{flat[3*i], flat[3*i+1], flat[3*i+2]}
	}
	return out, nil
}
