package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// SheetBackground is the contact sheet fill behind transparent frame pixels.
var SheetBackground = color.NRGBA{32, 32, 36, 255}

// ContactSheet lays frames out left to right, top to bottom, cols per row, each
// scaled to cell×cell pixels. Frames are composited over SheetBackground.
// It returns nil when there are no frames.
func ContactSheet(frames []*image.NRGBA, cols, cell int) *image.NRGBA {
	if len(frames) == 0 || cell <= 0 {
		return nil
	}
	if cols <= 0 || cols > len(frames) {
		cols = len(frames)
	}
	rows := (len(frames) + cols - 1) / cols

	sheet := image.NewNRGBA(image.Rect(0, 0, cols*cell, rows*cell))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(SheetBackground), image.Point{}, draw.Src)

	for i, f := range frames {
		if f == nil {
			continue
		}
		x, y := (i%cols)*cell, (i/cols)*cell
		r := image.Rect(x, y, x+cell, y+cell)

		src := f
		if b := f.Bounds(); b.Dx() != cell || b.Dy() != cell {
			src = scale(f, image.Rect(0, 0, cell, cell))
		}
		draw.Draw(sheet, r, src, src.Bounds().Min, draw.Over)
	}
	return sheet
}
