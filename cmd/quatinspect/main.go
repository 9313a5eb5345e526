package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"quatkit/internal/logging"
	"quatkit/internal/mathutil"
	"quatkit/internal/track"
)

func main() {
	trackFile := flag.String("tracks", "", "Keyframe file (YAML or JSON) to inspect")
	gltfFile := flag.String("gltf", "", "glTF file whose rotation tracks to inspect")
	samples := flag.Int("samples", 5, "Evenly spaced samples to print per track")
	axisFlag := flag.String("axis", "", "Convert an axis-angle rotation: axis as x,y,z")
	angle := flag.Float64("angle", 0, "Angle in degrees for -axis")
	showMat := flag.Bool("mat", false, "Also print the rotation matrix of every keyframe and sample")
	flag.Parse()

	log, err := logging.New("info", "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	switch {
	case *axisFlag != "":
		axis, err := parseVec3(*axisFlag)
		if err != nil {
			log.Fatal("bad -axis", zap.Error(err))
		}
		if axis.LenSq() == 0 {
			log.Fatal("bad -axis", zap.String("axis", *axisFlag), zap.String("reason", "zero length"))
		}
		q := mathutil.QuatFromAxisAngle(axis.Normalize(), mathutil.Deg2Rad(float32(*angle)))
		printRotation("", q, true)

	case *trackFile != "" || *gltfFile != "":
		var tracks []track.Track
		if *gltfFile != "" {
			tracks, err = track.LoadGLTF(*gltfFile)
		} else {
			tracks, err = track.LoadFile(*trackFile)
		}
		if err != nil {
			log.Fatal("load tracks", zap.Error(err))
		}
		for i := range tracks {
			inspect(&tracks[i], *samples, *showMat)
		}

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func inspect(tr *track.Track, samples int, showMat bool) {
	easing := tr.Easing
	if easing == "" {
		easing = "linear"
	}
	start, end := tr.Span()
	fmt.Printf("Track %q: %d keyframes, span [%g, %g], %s, easing %s\n",
		tr.Name, len(tr.Keyframes), start, end, tr.Interpolation, easing)

	fmt.Println("  Keyframes:")
	for i, k := range tr.Keyframes {
		printRotation(fmt.Sprintf("    [%d] t=%-8.4g", i, k.Time), k.Rotation, showMat)
	}

	if samples > 0 {
		fmt.Println("  Samples:")
		for _, f := range tr.Frames(samples) {
			printRotation(fmt.Sprintf("    #%-3d t=%-8.4g", f.Index, f.Time), f.Rotation, showMat)
		}
	}
}

func printRotation(prefix string, q mathutil.Quat, showMat bool) {
	axis, rad := q.AxisAngle()
	fmt.Printf("%s%v  axis=(%.4f, %.4f, %.4f) angle=%.3f°\n",
		prefix, q, axis[0], axis[1], axis[2], mathutil.Rad2Deg(rad))
	if !showMat {
		return
	}
	m := q.Mat3()
	pad := strings.Repeat(" ", len(prefix)+2)
	for r := 0; r < 3; r++ {
		fmt.Printf("%s| %8.4f %8.4f %8.4f |\n", pad, m.At(r, 0), m.At(r, 1), m.At(r, 2))
	}
}

func parseVec3(s string) (mathutil.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mathutil.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v mathutil.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return mathutil.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}
