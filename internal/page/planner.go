// Package page arranges rendered symbol images into fixed-size grids
// for print.
package page

import (
	"fmt"
	"image"
)

// Sink consumes one finished page of cells. The cells slice is only
// valid for the duration of the call.
type Sink interface {
	WritePage(page, total int, cells []image.Image) error
}

// Planner places images left-to-right, top-down, flushing a page to
// its sink whenever the grid fills. Close flushes a partial final
// page. Page count and membership follow input order; everything else
// is presentation.
type Planner struct {
	cols, rows int
	total      int
	sink       Sink
	cells      []image.Image
	page       int
}

// NewPlanner builds a planner for a cols x rows grid expecting total
// pages (see Pages).
func NewPlanner(cols, rows, total int, sink Sink) (*Planner, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("page grid %dx%d: both dimensions must be at least 1", cols, rows)
	}
	return &Planner{cols: cols, rows: rows, total: total, sink: sink}, nil
}

// Add appends one image, flushing when the grid is full.
func (p *Planner) Add(img image.Image) error {
	p.cells = append(p.cells, img)
	if len(p.cells) == p.cols*p.rows {
		return p.flush()
	}
	return nil
}

// Close flushes the partial final page, if any.
func (p *Planner) Close() error {
	if len(p.cells) > 0 {
		return p.flush()
	}
	return nil
}

func (p *Planner) flush() error {
	p.page++
	err := p.sink.WritePage(p.page, p.total, p.cells)
	// Drop references so symbol images become collectable once the
	// sink has written them out.
	p.cells = nil
	return err
}

// Pages returns the number of pages n images occupy on a cols x rows
// grid.
func Pages(n, cols, rows int) int {
	per := cols * rows
	return (n + per - 1) / per
}
