package raster

import (
	"image"

	"github.com/chewxy/math32"

	"quatkit/internal/mathutil"
)

// Surface is what a triangle is painted with: a texture with per-vertex UVs, or a
// flat fallback color when the texture or UVs are missing.
type Surface struct {
	Tex      *image.NRGBA
	UVs      [][2]float32
	Fallback [4]uint8
}

// triSetup is the per-triangle state shared by both rasterizers.
type triSetup struct {
	x0, y0, z0, x1, y1, z1, x2, y2, z2 float32
	u0, v0, u1, v1, u2, v2             float32
	hasUV                              bool
	shade                              float32
	minX, maxX, minY, maxY             int
	invDet                             float32
}

// setup projects, shades and bounds triangle idx. ok is false for triangles that
// are degenerate, off screen or reference missing vertices.
func setup(fb *FrameBuffer, px, py, pz []float32, idx [3]uint32, s *Surface, lc *LightConfig) (t triSetup, ok bool) {
	nv := uint32(len(px))
	for _, i := range idx {
		if i >= nv {
			return t, false
		}
	}

	t.x0, t.y0, t.z0 = px[idx[0]], py[idx[0]], pz[idx[0]]
	t.x1, t.y1, t.z1 = px[idx[1]], py[idx[1]], pz[idx[1]]
	t.x2, t.y2, t.z2 = px[idx[2]], py[idx[2]], pz[idx[2]]

	t.hasUV = s.Tex != nil
	nuv := uint32(len(s.UVs))
	for _, i := range idx {
		if i >= nuv {
			t.hasUV = false
			break
		}
	}
	if t.hasUV {
		t.u0, t.v0 = s.UVs[idx[0]][0], s.UVs[idx[0]][1]
		t.u1, t.v1 = s.UVs[idx[1]][0], s.UVs[idx[1]][1]
		t.u2, t.v2 = s.UVs[idx[2]][0], s.UVs[idx[2]][1]
	}

	// Face normal for flat shading. Screen Y points down, so flip it back.
	e1 := mathutil.Vec3{t.x1 - t.x0, t.y0 - t.y1, t.z1 - t.z0}
	e2 := mathutil.Vec3{t.x2 - t.x0, t.y0 - t.y2, t.z2 - t.z0}
	n := e1.Cross(e2)
	if n.LenSq() < 1e-12 {
		return t, false
	}
	t.shade = lc.ComputeShade(n.Normalize())

	// Bounding box
	t.minX = int(math32.Min(math32.Min(t.x0, t.x1), t.x2))
	t.maxX = int(math32.Max(math32.Max(t.x0, t.x1), t.x2)) + 1
	t.minY = int(math32.Min(math32.Min(t.y0, t.y1), t.y2))
	t.maxY = int(math32.Max(math32.Max(t.y0, t.y1), t.y2)) + 1
	if t.minX < 0 {
		t.minX = 0
	}
	if t.maxX >= fb.Width {
		t.maxX = fb.Width - 1
	}
	if t.minY < 0 {
		t.minY = 0
	}
	if t.maxY >= fb.Height {
		t.maxY = fb.Height - 1
	}
	if t.minX > t.maxX || t.minY > t.maxY {
		return t, false
	}

	det := (t.y1-t.y2)*(t.x0-t.x2) + (t.x2-t.x1)*(t.y0-t.y2)
	if det > -1e-8 && det < 1e-8 {
		return t, false
	}
	t.invDet = 1 / det
	return t, true
}

// weights returns the barycentric coordinates of pixel (sx, sy).
func (t *triSetup) weights(sx, sy int) (w0, w1, w2 float32) {
	dsx := float32(sx) - t.x2
	dsy := float32(sy) - t.y2
	w0 = ((t.y1-t.y2)*dsx + (t.x2-t.x1)*dsy) * t.invDet
	w1 = ((t.y2-t.y0)*dsx + (t.x0-t.x2)*dsy) * t.invDet
	w2 = 1 - w0 - w1
	return w0, w1, w2
}

func (t *triSetup) texel(s *Surface, w0, w1, w2 float32) (r, g, b, a uint8) {
	if !t.hasUV {
		return s.Fallback[0], s.Fallback[1], s.Fallback[2], s.Fallback[3]
	}
	u := w0*t.u0 + w1*t.u1 + w2*t.u2
	v := w0*t.v0 + w1*t.v1 + w2*t.v2
	return SampleTexture(s.Tex, u, v)
}

// RasterizeTriangle draws one flat-shaded triangle with depth test, sRGB-correct
// lighting and ACES tone mapping. Texels with alpha below 8 are skipped.
//
// This is the hot path and must not allocate.
func RasterizeTriangle(fb *FrameBuffer, px, py, pz []float32, idx [3]uint32, s *Surface, lc *LightConfig) {
	t, ok := setup(fb, px, py, pz, idx, s, lc)
	if !ok {
		return
	}

	for sy := t.minY; sy <= t.maxY; sy++ {
		rowOff := sy * fb.Width
		for sx := t.minX; sx <= t.maxX; sx++ {
			w0, w1, w2 := t.weights(sx, sy)
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*t.z0 + w1*t.z1 + w2*t.z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			cr, cg, cb, ca := t.texel(s, w0, w1, w2)
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(lc.encode(srgbToLinear[cr], t.shade))
			fb.Color[pxIdx+1] = clamp255(lc.encode(srgbToLinear[cg], t.shade))
			fb.Color[pxIdx+2] = clamp255(lc.encode(srgbToLinear[cb], t.shade))
			fb.Color[pxIdx+3] = ca
		}
	}
}

// RasterizeTriangleAdditive adds a lit triangle onto the framebuffer without
// reading or writing depth. Alpha grows to the luminance of the added color, so
// dark regions stay transparent.
func RasterizeTriangleAdditive(fb *FrameBuffer, px, py, pz []float32, idx [3]uint32, s *Surface, lc *LightConfig) {
	t, ok := setup(fb, px, py, pz, idx, s, lc)
	if !ok {
		return
	}

	for sy := t.minY; sy <= t.maxY; sy++ {
		rowOff := sy * fb.Width
		for sx := t.minX; sx <= t.maxX; sx++ {
			w0, w1, w2 := t.weights(sx, sy)
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			cr, cg, cb, ca := t.texel(s, w0, w1, w2)
			if ca < 8 {
				continue
			}

			fr := lc.encode(srgbToLinear[cr], t.shade)
			fg := lc.encode(srgbToLinear[cg], t.shade)
			fbl := lc.encode(srgbToLinear[cb], t.shade)

			pxIdx := (rowOff + sx) * 4
			fb.Color[pxIdx] = clamp255(float32(fb.Color[pxIdx]) + fr)
			fb.Color[pxIdx+1] = clamp255(float32(fb.Color[pxIdx+1]) + fg)
			fb.Color[pxIdx+2] = clamp255(float32(fb.Color[pxIdx+2]) + fbl)
			if a := clamp255(fr*0.299 + fg*0.587 + fbl*0.114); a > fb.Color[pxIdx+3] {
				fb.Color[pxIdx+3] = a
			}
		}
	}
}

func clamp255(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
