// Package mesh holds the triangle geometry drawn by the preview renderer.
package mesh

import (
	"github.com/chewxy/math32"

	"quatkit/internal/mathutil"
)

// Mesh is one textured triangle list. UVs, when present, are indexed like Verts.
type Mesh struct {
	Name     string
	Verts    [][3]float32
	UVs      [][2]float32
	Tris     [][3]uint32
	TexPath  string // texture reference, resolved by stem (e.g. "crate.png")
	Additive bool   // blended on top without depth test
}

// Cube returns an axis-aligned cube of the given edge length centred on the
// origin. Each face has its own four vertices so it can carry a full 0..1 UV square.
func Cube(size float32) Mesh {
	h := size / 2
	faces := []struct{ n, u, v mathutil.Vec3 }{
		{mathutil.Vec3{1, 0, 0}, mathutil.Vec3{0, 0, -1}, mathutil.Vec3{0, 1, 0}},
		{mathutil.Vec3{-1, 0, 0}, mathutil.Vec3{0, 0, 1}, mathutil.Vec3{0, 1, 0}},
		{mathutil.Vec3{0, 1, 0}, mathutil.Vec3{1, 0, 0}, mathutil.Vec3{0, 0, -1}},
		{mathutil.Vec3{0, -1, 0}, mathutil.Vec3{1, 0, 0}, mathutil.Vec3{0, 0, 1}},
		{mathutil.Vec3{0, 0, 1}, mathutil.Vec3{1, 0, 0}, mathutil.Vec3{0, 1, 0}},
		{mathutil.Vec3{0, 0, -1}, mathutil.Vec3{-1, 0, 0}, mathutil.Vec3{0, 1, 0}},
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	m := Mesh{Name: "cube"}
	for _, f := range faces {
		base := uint32(len(m.Verts))
		for i, c := range corners {
			p := f.n.Add(f.u.Scale(c[0])).Add(f.v.Scale(c[1])).Scale(h)
			m.Verts = append(m.Verts, p)
			m.UVs = append(m.UVs, uvs[i])
		}
		m.Tris = append(m.Tris,
			[3]uint32{base, base + 1, base + 2},
			[3]uint32{base, base + 2, base + 3},
		)
	}
	return m
}

// Bounds returns the axis-aligned box around every vertex of meshes.
// ok is false when there are no vertices.
func Bounds(meshes []Mesh) (lo, hi mathutil.Vec3, ok bool) {
	for _, m := range meshes {
		for _, v := range m.Verts {
			p := mathutil.Vec3(v)
			if !ok {
				lo, hi, ok = p, p, true
				continue
			}
			lo = lo.Min(p)
			hi = hi.Max(p)
		}
	}
	return lo, hi, ok
}

// BoundingSphere returns the centre of the bounding box and the largest distance
// from it to any vertex. The radius does not change when the meshes rotate about
// the centre, which keeps animation frames at a constant scale.
func BoundingSphere(meshes []Mesh) (center mathutil.Vec3, radius float32) {
	lo, hi, ok := Bounds(meshes)
	if !ok {
		return mathutil.Vec3{}, 0
	}
	center = lo.Add(hi).Scale(0.5)
	var r2 float32
	for _, m := range meshes {
		for _, v := range m.Verts {
			if d := mathutil.Vec3(v).DistanceSq(center); d > r2 {
				r2 = d
			}
		}
	}
	return center, math32.Sqrt(r2)
}
