package track

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"quatkit/internal/mathutil"
)

// LoadGLTF reads rotation tracks from a .gltf or .glb file.
//
// Every rotation channel of every animation becomes one track named
// "<animation>/<node>"; unnamed nodes are called "node<index>" and repeated
// names get a "#2", "#3", ... suffix. STEP samplers map to Step; CUBICSPLINE
// samplers keep only their value keyframes and are slerped like LINEAR ones.
// A file without animations yields a single track holding each node's rotation,
// one keyframe per node in document order.
func LoadGLTF(path string) ([]Track, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("track: open %s: %w", path, err)
	}

	tracks, err := gltfTracks(doc)
	if err != nil {
		return nil, fmt.Errorf("track: %s: %w", path, err)
	}
	return tracks, nil
}

func gltfTracks(doc *gltf.Document) ([]Track, error) {
	if len(doc.Animations) == 0 {
		return nodeTrack(doc)
	}

	var tracks []Track
	seen := make(map[string]int)
	for ai, anim := range doc.Animations {
		animName := anim.Name
		if animName == "" {
			animName = fmt.Sprintf("animation%d", ai)
		}

		for ci, channel := range anim.Channels {
			if channel.Target.Path != gltf.TRSRotation {
				continue
			}
			if channel.Sampler < 0 || channel.Sampler >= len(anim.Samplers) {
				return nil, fmt.Errorf("%s: channel %d: %w: sampler %d out of range", animName, ci, ErrBadKeyframe, channel.Sampler)
			}
			sampler := anim.Samplers[channel.Sampler]

			nodeName := "root"
			if n := channel.Target.Node; n != nil {
				if *n < 0 || *n >= len(doc.Nodes) {
					return nil, fmt.Errorf("%s: channel %d: %w: node %d out of range", animName, ci, ErrBadKeyframe, *n)
				}
				nodeName = nodeLabel(doc.Nodes[*n], *n)
			}
			name := animName + "/" + nodeName
			seen[name]++
			if c := seen[name]; c > 1 {
				name = fmt.Sprintf("%s#%d", name, c)
			}

			inputData, err := readAccessor[[]float32](doc, sampler.Input)
			if err != nil {
				return nil, fmt.Errorf("%s: input: %w", name, err)
			}
			outputData, err := readAccessor[[][4]float32](doc, sampler.Output)
			if err != nil {
				return nil, fmt.Errorf("%s: output: %w", name, err)
			}

			tr := Track{Name: name}
			stride, offset := 1, 0
			switch sampler.Interpolation {
			case gltf.InterpolationStep:
				tr.Interpolation = Step
			case gltf.InterpolationCubicSpline:
				// in-tangent, value, out-tangent per keyframe
				stride, offset = 3, 1
			}
			if len(outputData) < len(inputData)*stride {
				return nil, fmt.Errorf("%s: %w: %d outputs for %d inputs", name, ErrBadKeyframe, len(outputData), len(inputData))
			}

			for i, t := range inputData {
				p := outputData[i*stride+offset]
				q := mathutil.NewQuat(p[0], p[1], p[2], p[3])
				tr.Keyframes = append(tr.Keyframes, Keyframe{Time: t, Rotation: q.Normalize()})
			}
			if err := tr.Validate(); err != nil {
				return nil, err
			}
			tracks = append(tracks, tr)
		}
	}
	if len(tracks) == 0 {
		return nil, ErrNoKeyframes
	}
	return tracks, nil
}

// readAccessor decodes accessor idx and checks that it holds a T.
func readAccessor[T any](doc *gltf.Document, idx int) (T, error) {
	var zero T
	if idx < 0 || idx >= len(doc.Accessors) {
		return zero, fmt.Errorf("%w: accessor %d out of range", ErrBadKeyframe, idx)
	}
	data, err := modeler.ReadAccessor(doc, doc.Accessors[idx], nil)
	if err != nil {
		return zero, err
	}
	v, ok := data.(T)
	if !ok {
		return zero, fmt.Errorf("%w: accessor %d is %T", ErrBadKeyframe, idx, data)
	}
	return v, nil
}

func nodeLabel(node *gltf.Node, index int) string {
	if node.Name != "" {
		return node.Name
	}
	return fmt.Sprintf("node%d", index)
}

func nodeTrack(doc *gltf.Document) ([]Track, error) {
	tr := Track{Name: "nodes"}
	n := len(doc.Nodes)
	for i, node := range doc.Nodes {
		var at float32
		if n > 1 {
			at = float32(i) / float32(n-1)
		}
		r := node.RotationOrDefault()
		q := mathutil.NewQuat(float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3]))
		if q.LenSq() == 0 {
			q = mathutil.QuatIdentity()
		}
		tr.Keyframes = append(tr.Keyframes, Keyframe{Time: at, Rotation: q.Normalize()})
	}
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	return []Track{tr}, nil
}
