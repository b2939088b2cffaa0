package main

// scanGrid is the coarse internal scan-space scratch field the physics is
// evaluated into once per frame. Columns span the field of view, rows span
// depth. It belongs exclusively to one renderer instance.
type scanGrid struct {
	cols, rows int
	cells      []float32
}

// newScanGrid allocates a grid of the requested resolution.
func newScanGrid(cols, rows int) *scanGrid {
	return &scanGrid{cols: cols, rows: rows, cells: make([]float32, cols*rows)}
}

// set writes one cell.
func (g *scanGrid) set(col, row int, v float32) {
	g.cells[row*g.cols+col] = v
}

// at reads one cell.
func (g *scanGrid) at(col, row int) float32 {
	return g.cells[row*g.cols+col]
}

// bilinear samples the grid at normalized (u, v) in [0,1] using the four
// nearest cells, hiding the resolution mismatch with the output raster.
func (g *scanGrid) bilinear(u, v float64) float64 {
	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	fx := u * float64(g.cols-1)
	fy := v * float64(g.rows-1)
	x0 := int(fx)
	y0 := int(fy)
	if x0 >= g.cols-1 {
		x0 = g.cols - 2
	}
	if y0 >= g.rows-1 {
		y0 = g.rows - 2
	}
	tx := fx - float64(x0)
	ty := fy - float64(y0)
	a := float64(g.cells[y0*g.cols+x0])
	b := float64(g.cells[y0*g.cols+x0+1])
	c := float64(g.cells[(y0+1)*g.cols+x0])
	d := float64(g.cells[(y0+1)*g.cols+x0+1])
	top := a + (b-a)*tx
	bot := c + (d-c)*tx
	return top + (bot-top)*ty
}

// clamp01 limits v to the displayable intensity range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampCoord constrains v to lie within the inclusive [min, max] range.
func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
