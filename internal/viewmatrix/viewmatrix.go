package viewmatrix

import (
	"github.com/chewxy/math32"

	"quatkit/internal/mathutil"
	"quatkit/internal/mesh"
)

// DefaultFOV is the vertical field of view, in degrees, for perspective projection.
const DefaultFOV float32 = 35

// DefaultCamera looks at the model slightly from above and to the side so that
// three faces of an axis-aligned box are visible.
var DefaultCamera = mathutil.Mat3Mul(
	mathutil.RotX(mathutil.Deg2Rad(-15)),
	mathutil.RotY(mathutil.Deg2Rad(12)),
)

// View combines a model orientation with a fixed camera rotation. The model is
// rotated first, then the camera is applied.
func View(orientation mathutil.Quat, camera mathutil.Mat3) mathutil.Mat3 {
	return mathutil.Mat3Mul(camera, orientation.Mat3())
}

// Framing maps view space onto a square render target.
type Framing struct {
	Center      mathutil.Vec3 // view-space point drawn at the image centre
	Scale       float32       // pixels per model unit
	Size        int           // render target edge in pixels
	Perspective bool
	FOV         float32 // degrees; 0 means DefaultFOV
	Radius      float32 // bounding radius, sets the perspective camera distance
}

// Frame builds a Framing that fits every rotation of meshes inside size pixels
// with margin pixels left free on each side. The scale comes from the bounding
// sphere so it does not change from one orientation to the next.
func Frame(meshes []mesh.Mesh, view mathutil.Mat3, size, margin int) Framing {
	center, radius := mesh.BoundingSphere(meshes)
	if radius < 0.001 {
		radius = 0.001
	}
	usable := size - 2*margin
	if usable < 1 {
		usable = 1
	}
	return Framing{
		Center: view.MulVec3(center),
		Scale:  float32(usable) / (2 * radius),
		Size:   size,
		Radius: radius,
	}
}

// ProjectVertices transforms 3D vertices to 2D screen coordinates.
// Returns px, py, pz slices (screen X, screen Y, depth). Larger pz is nearer.
func ProjectVertices(verts [][3]float32, R mathutil.Mat3, f Framing) ([]float32, []float32, []float32) {
	n := len(verts)
	px := make([]float32, n)
	py := make([]float32, n)
	pz := make([]float32, n)

	half := float32(f.Size) / 2

	// Perspective setup: camera on +Z, far enough that the bounding sphere fills the FOV.
	var camDist float32
	if f.Perspective {
		fov := f.FOV
		if fov == 0 {
			fov = DefaultFOV
		}
		camDist = f.Radius / math32.Tan(mathutil.Deg2Rad(fov/2))
		if camDist < f.Radius*1.05 {
			camDist = f.Radius * 1.05
		}
	}

	for i, v := range verts {
		t := R.MulVec3(mathutil.Vec3(v)).Sub(f.Center)

		if f.Perspective {
			depth := camDist - t[2]
			if depth < 0.1 {
				depth = 0.1
			}
			factor := camDist / depth
			t[0] *= factor
			t[1] *= factor
		}

		px[i] = t[0]*f.Scale + half
		py[i] = -t[1]*f.Scale + half
		pz[i] = t[2]
	}

	return px, py, pz
}
