package core

import "slices"

// SpatialHash is a uniform grid used for broad-phase collision queries.
// Entries are small integer handles (usually slice indices) so the hash never
// holds references into entity storage.
type SpatialHash struct {
	cellSize float64
	cols     int
	rows     int
	originX  float64
	originY  float64
	cells    [][]int
}

// NewSpatialHash creates a hash covering the area [originX, originX+w) x [originY, originY+h).
// Entries outside the covered area are clamped into the border cells.
func NewSpatialHash(originX, originY, w, h, cellSize float64) *SpatialHash {
	if cellSize <= 0 {
		cellSize = 64
	}
	cols := int(w/cellSize) + 1
	rows := int(h/cellSize) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &SpatialHash{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		originX:  originX,
		originY:  originY,
		cells:    make([][]int, cols*rows),
	}
}

// cellRange returns the inclusive cell range overlapped by a box.
func (h *SpatialHash) cellRange(b Box) (minCX, minCY, maxCX, maxCY int) {
	minCX = Clamp(int((b.X-h.originX)/h.cellSize), 0, h.cols-1)
	maxCX = Clamp(int((b.Right()-h.originX)/h.cellSize), 0, h.cols-1)
	minCY = Clamp(int((b.Y-h.originY)/h.cellSize), 0, h.rows-1)
	maxCY = Clamp(int((b.Bottom()-h.originY)/h.cellSize), 0, h.rows-1)
	return minCX, minCY, maxCX, maxCY
}

// Insert registers a handle in every cell the box overlaps.
func (h *SpatialHash) Insert(b Box, handle int) {
	minCX, minCY, maxCX, maxCY := h.cellRange(b)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			idx := cy*h.cols + cx
			h.cells[idx] = append(h.cells[idx], handle)
		}
	}
}

// Query appends to buf every distinct handle stored in cells the box overlaps.
// Handles are returned in ascending order so callers resolve hits deterministically.
func (h *SpatialHash) Query(b Box, buf []int) []int {
	start := len(buf)
	minCX, minCY, maxCX, maxCY := h.cellRange(b)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			for _, handle := range h.cells[cy*h.cols+cx] {
				if !slices.Contains(buf[start:], handle) {
					buf = append(buf, handle)
				}
			}
		}
	}
	slices.Sort(buf[start:])
	return buf
}
