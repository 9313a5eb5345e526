package raster

import (
	"image"

	"quatkit/internal/mathutil"
	"quatkit/internal/mesh"
	"quatkit/internal/texture"
	"quatkit/internal/viewmatrix"
)

// Options controls a single frame render.
type Options struct {
	Size        int // output edge in pixels
	Supersample int // render at Size*Supersample; 0 or 1 disables
	Perspective bool
	FOV         float32 // degrees; 0 means viewmatrix.DefaultFOV
	Light       *LightConfig
}

// RenderFrame draws meshes seen through view into a square NRGBA image of
// Size*Supersample pixels with a transparent background. Opaque meshes are drawn
// first, additive ones on top.
func RenderFrame(meshes []mesh.Mesh, view mathutil.Mat3, texResolver texture.Resolver, opts Options) *image.NRGBA {
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	renderSize := opts.Size * ss
	fb := NewFrameBuffer(renderSize, renderSize)
	if len(meshes) == 0 || renderSize <= 0 {
		return fb.Image()
	}

	lc := DefaultLightConfig()
	if opts.Light != nil {
		lc = *opts.Light
	}

	framing := viewmatrix.Frame(meshes, view, renderSize, 16*ss)
	framing.Perspective = opts.Perspective
	framing.FOV = opts.FOV

	for _, additive := range []bool{false, true} {
		for i := range meshes {
			m := &meshes[i]
			if m.Additive != additive || len(m.Verts) == 0 {
				continue
			}

			px, py, pz := viewmatrix.ProjectVertices(m.Verts, view, framing)

			s := Surface{UVs: m.UVs, Fallback: [4]uint8{160, 160, 170, 255}}
			if texResolver != nil && m.TexPath != "" {
				s.Tex = texResolver.Resolve(m.TexPath)
			}
			if s.Tex != nil {
				s.Fallback = averageColor(s.Tex)
			}

			draw := RasterizeTriangle
			if additive {
				draw = RasterizeTriangleAdditive
			}
			for _, tri := range m.Tris {
				draw(fb, px, py, pz, tri, &s, &lc)
			}
		}
	}

	return fb.Image()
}

func averageColor(tex *image.NRGBA) [4]uint8 {
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return [4]uint8{160, 160, 170, 255}
	}

	var sumR, sumG, sumB float64
	for y := 0; y < h; y++ {
		off := y * tex.Stride
		for x := 0; x < w; x++ {
			i := off + x*4
			sumR += float64(tex.Pix[i])
			sumG += float64(tex.Pix[i+1])
			sumB += float64(tex.Pix[i+2])
		}
	}
	n := float64(w * h)
	return [4]uint8{uint8(sumR/n + 0.5), uint8(sumG/n + 0.5), uint8(sumB/n + 0.5), 255}
}
