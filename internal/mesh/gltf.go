package mesh

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads the primitives of the first mesh in a .gltf or .glb file.
// Each primitive becomes one Mesh. Primitives without indices are read as a
// plain triangle list. Materials with alpha mode BLEND, or whose base color
// texture passes IsGlowTexture, are drawn additively.
func LoadGLTF(path string) ([]Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	if len(doc.Meshes) == 0 {
		return nil, fmt.Errorf("mesh: %s: no meshes", path)
	}

	gm := doc.Meshes[0]
	var meshes []Mesh
	for pi, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posAccessor, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		m := Mesh{Name: fmt.Sprintf("%s.%d", gm.Name, pi)}

		verts, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], nil)
		if err != nil {
			return nil, fmt.Errorf("mesh: %s: primitive %d: positions: %w", path, pi, err)
		}
		m.Verts = verts

		if uvAccessor, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[uvAccessor], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh: %s: primitive %d: uvs: %w", path, pi, err)
			}
			m.UVs = uvs
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh: %s: primitive %d: indices: %w", path, pi, err)
			}
		} else {
			indices = make([]uint32, len(verts))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}
		for i := 0; i+2 < len(indices); i += 3 {
			m.Tris = append(m.Tris, [3]uint32{indices[i], indices[i+1], indices[i+2]})
		}

		if prim.Material != nil {
			mat := doc.Materials[*prim.Material]
			m.TexPath = baseColorImage(doc, mat)
			m.Additive = mat.AlphaMode == gltf.AlphaBlend || IsGlowTexture(m.TexPath)
		}
		meshes = append(meshes, m)
	}

	if len(meshes) == 0 {
		return nil, fmt.Errorf("mesh: %s: no triangle primitives", path)
	}
	return meshes, nil
}

// baseColorImage returns the URI of the material's base color image, or "".
func baseColorImage(doc *gltf.Document, mat *gltf.Material) string {
	pbr := mat.PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorTexture == nil {
		return ""
	}
	ti := pbr.BaseColorTexture.Index
	if ti < 0 || ti >= len(doc.Textures) || doc.Textures[ti].Source == nil {
		return ""
	}
	src := *doc.Textures[ti].Source
	if src < 0 || src >= len(doc.Images) {
		return ""
	}
	return doc.Images[src].URI
}
