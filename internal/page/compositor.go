package page

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// DefaultCellSize is the square cell edge in pixels on a composite.
const DefaultCellSize = 600

// DefaultMargin is the white gutter around and between cells.
const DefaultMargin = 40

// Compositor produces one printable image per page: each symbol scaled
// into an equal square cell on a white background. Nearest-neighbour
// scaling keeps QR module edges hard.
type Compositor struct {
	Cols, Rows int
	CellSize   int
	Margin     int
}

func (c Compositor) cell() int {
	if c.CellSize > 0 {
		return c.CellSize
	}
	return DefaultCellSize
}

func (c Compositor) margin() int {
	if c.Margin > 0 {
		return c.Margin
	}
	return DefaultMargin
}

// Compose lays cells out left-to-right, top-down. A partial page is
// sized to only the rows and columns it actually uses.
func (c Compositor) Compose(cells []image.Image) *image.RGBA {
	cell, margin := c.cell(), c.margin()

	usedCols := c.Cols
	if len(cells) < usedCols {
		usedCols = len(cells)
	}
	usedRows := (len(cells) + c.Cols - 1) / c.Cols

	w := usedCols*cell + (usedCols+1)*margin
	h := usedRows*cell + (usedRows+1)*margin
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, src := range cells {
		col := i % c.Cols
		row := i / c.Cols
		x := margin + col*(cell+margin)
		y := margin + row*(cell+margin)
		r := image.Rect(x, y, x+cell, y+cell)
		xdraw.NearestNeighbor.Scale(dst, r, src, src.Bounds(), xdraw.Src, nil)
	}
	return dst
}
