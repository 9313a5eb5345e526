// Package postprocess resizes rendered frames and lays them out on contact sheets.
package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces a square render to targetSize×targetSize with premultiplied
// alpha CatmullRom filtering, which keeps transparent edges free of dark halos.
// Images already no larger than the target are returned as is.
func Downsample(img *image.NRGBA, targetSize int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= targetSize && b.Dy() <= targetSize {
		return img
	}
	return scale(img, image.Rect(0, 0, targetSize, targetSize))
}

// scale resamples img into a new image of bounds r.
func scale(img *image.NRGBA, r image.Rectangle) *image.NRGBA {
	premul := premultiply(img)
	dst := image.NewRGBA(r)
	draw.CatmullRom.Scale(dst, r, premul, premul.Bounds(), draw.Src, nil)
	return unpremultiply(dst)
}

func premultiply(img *image.NRGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := out.PixOffset(x, y)
			a := uint32(img.Pix[si+3])
			out.Pix[di] = uint8((uint32(img.Pix[si])*a + 127) / 255)
			out.Pix[di+1] = uint8((uint32(img.Pix[si+1])*a + 127) / 255)
			out.Pix[di+2] = uint8((uint32(img.Pix[si+2])*a + 127) / 255)
			out.Pix[di+3] = uint8(a)
		}
	}
	return out
}

func unpremultiply(img *image.RGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := out.PixOffset(x, y)
			a := float32(img.Pix[si+3])
			if a > 1 {
				inv := 255 / a
				out.Pix[di] = clamp8(float32(img.Pix[si]) * inv)
				out.Pix[di+1] = clamp8(float32(img.Pix[si+1]) * inv)
				out.Pix[di+2] = clamp8(float32(img.Pix[si+2]) * inv)
			}
			out.Pix[di+3] = img.Pix[si+3]
		}
	}
	return out
}

func clamp8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
