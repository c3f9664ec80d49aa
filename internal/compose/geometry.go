package compose

import "github.com/scoutdeck/scoutdeck/internal/presentation"

// Rect is an axis-aligned rectangle. Slot rectangles are first expressed in
// a visual model — origin at the top-left of the content area, Y growing
// downward — and converted to absolute page coordinates in one place, so
// renderer code never mixes the two conventions inline.
type Rect struct {
	X, Y, W, H float64
}

// contentArea anchors the visual model on the page.
type contentArea struct {
	left, top float64
	w, h      float64
}

// abs converts a content-relative visual rectangle to absolute page
// coordinates.
func (c contentArea) abs(r Rect) Rect {
	return Rect{X: c.left + r.X, Y: c.top + r.Y, W: r.W, H: r.H}
}

// slotRects returns the fixed cell rectangles for a layout, content-relative
// and in slot order. grid4 is row-major: 0 = top-left, 1 = top-right,
// 2 = bottom-left, 3 = bottom-right. Unknown layouts return nil; callers
// treat that as a programmer error.
func slotRects(layout presentation.LayoutType, w, h, gutter float64) []Rect {
	halfW := (w - gutter) / 2
	halfH := (h - gutter) / 2

	switch layout {
	case presentation.LayoutSingle:
		return []Rect{{0, 0, w, h}}
	case presentation.LayoutTwo:
		return []Rect{
			{0, 0, w, halfH},
			{0, halfH + gutter, w, halfH},
		}
	case presentation.LayoutGrid4:
		return []Rect{
			{0, 0, halfW, halfH},
			{halfW + gutter, 0, halfW, halfH},
			{0, halfH + gutter, halfW, halfH},
			{halfW + gutter, halfH + gutter, halfW, halfH},
		}
	default:
		return nil
	}
}

// fitInto returns the draw rectangle for an image of imgW×imgH pixels
// aspect-fit into cell: uniform scale min(cellW/imgW, cellH/imgH), centered,
// never cropped.
func fitInto(cell Rect, imgW, imgH int) Rect {
	if imgW <= 0 || imgH <= 0 {
		return Rect{X: cell.X, Y: cell.Y}
	}
	scale := cell.W / float64(imgW)
	if s := cell.H / float64(imgH); s < scale {
		scale = s
	}
	drawW := float64(imgW) * scale
	drawH := float64(imgH) * scale
	return Rect{
		X: cell.X + (cell.W-drawW)/2,
		Y: cell.Y + (cell.H-drawH)/2,
		W: drawW,
		H: drawH,
	}
}
