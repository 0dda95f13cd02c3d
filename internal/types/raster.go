package types

// Raster is one decoded picture in (rows, columns, components) order.
//
// Pix is row-major: the sample for row y, column x and component c is at
// Pix[(y*Cols+x)*Comps+c].
type Raster struct {
	Pix   []float64
	Rows  int
	Cols  int
	Comps int

	// Normalized is true when the samples were scaled by the precision
	// divisor or shifted by the 128 level offset.
	Normalized bool
}

// NewRaster allocates a zeroed raster of the given shape.
func NewRaster(rows, cols, comps int) *Raster {
	return &Raster{
		Pix:   make([]float64, rows*cols*comps),
		Rows:  rows,
		Cols:  cols,
		Comps: comps,
	}
}

// Shape returns (rows, columns, components).
func (r *Raster) Shape() (rows, cols, comps int) {
	return r.Rows, r.Cols, r.Comps
}

// At returns the sample at row y, column x, component c.
func (r *Raster) At(y, x, c int) float64 {
	return r.Pix[r.index(y, x, c)]
}

// Set stores v at row y, column x, component c.
func (r *Raster) Set(y, x, c int, v float64) {
	r.Pix[r.index(y, x, c)] = v
}

func (r *Raster) index(y, x, c int) int {
	return (y*r.Cols+x)*r.Comps + c
}
