package batch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quatkit/internal/mathutil"
	"quatkit/internal/mesh"
	"quatkit/internal/postprocess"
	"quatkit/internal/raster"
	"quatkit/internal/texture"
	"quatkit/internal/track"
	"quatkit/internal/viewmatrix"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Meshes      []mesh.Mesh
	TexResolver texture.Resolver
	Camera      mathutil.Mat3
	RenderSize  int
	Supersample int
	Perspective bool
	Workers     int
	KeepImages  bool // keep each encoded frame in Result.Image
	Logger      *zap.Logger
}

// FrameJob is one orientation of one track to render.
type FrameJob struct {
	Track string
	Dir   string // output directory of the track; derived from Track when empty
	Frame track.Frame
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Track    string
	Index    int
	Time     float32
	Rotation mathutil.Quat
	Path     string // relative to the output directory, slash separated
	Checksum uint64 // xxhash64 of the WebP file
	Image    *image.NRGBA
	Success  bool
	Error    string
}

// Jobs samples n frames from every track. Each track gets its own output
// directory, even when two names sanitize to the same one.
func Jobs(tracks []track.Track, n int) []FrameJob {
	names := make([]string, len(tracks))
	for i := range tracks {
		names[i] = tracks[i].Name
	}
	dirs := TrackDirs(names)

	var jobs []FrameJob
	for i := range tracks {
		for _, f := range tracks[i].Frames(n) {
			jobs = append(jobs, FrameJob{Track: tracks[i].Name, Dir: dirs[i], Frame: f})
		}
	}
	return jobs
}

// TrackDirs returns one sanitized directory name per track name. Names that
// collide, ignoring case, get a "-2", "-3", ... suffix in order.
func TrackDirs(names []string) []string {
	dirs := make([]string, len(names))
	used := make(map[string]bool, len(names))
	for i, name := range names {
		base := sanitizeDir(name)
		dir := base
		for n := 2; used[strings.ToLower(dir)]; n++ {
			dir = fmt.Sprintf("%s-%d", base, n)
		}
		used[strings.ToLower(dir)] = true
		dirs[i] = dir
	}
	return dirs
}

// Run renders all jobs on a bounded pool of cfg.Workers goroutines. Failures of
// single frames are reported in their Result; the returned error is set only
// when ctx ends before every job has run.
func Run(ctx context.Context, cfg Config, jobs []FrameJob) ([]Result, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	stop := reportProgress(log, total, &processed)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = processFrame(cfg, jobs[i])
			if !results[i].Success {
				log.Warn("frame failed",
					zap.String("track", jobs[i].Track),
					zap.Int("index", jobs[i].Frame.Index),
					zap.String("error", results[i].Error))
			}
			processed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// reportProgress logs the frame rate every two seconds until the returned stop
// function is called. stop waits for the reporter to exit.
func reportProgress(log *zap.Logger, total int, processed *atomic.Int64) (stop func()) {
	start := time.Now()
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					log.Info("progress",
						zap.Int64("done", p),
						zap.Int("total", total),
						zap.Float64("frames_per_sec", float64(p)/time.Since(start).Seconds()))
				}
			}
		}
	}()
	return func() {
		close(done)
		<-exited
	}
}

func processFrame(cfg Config, job FrameJob) Result {
	res := Result{
		Track:    job.Track,
		Index:    job.Frame.Index,
		Time:     job.Frame.Time,
		Rotation: job.Frame.Rotation,
		Path:     FramePath(job.Track, job.Frame.Index),
	}
	if job.Dir != "" {
		res.Path = FramePath(job.Dir, job.Frame.Index)
	}

	view := viewmatrix.View(job.Frame.Rotation, cfg.Camera)
	img := raster.RenderFrame(cfg.Meshes, view, cfg.TexResolver, raster.Options{
		Size:        cfg.RenderSize,
		Supersample: cfg.Supersample,
		Perspective: cfg.Perspective,
	})

	// Post-processing: supersample downsample
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}

	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		res.Error = fmt.Sprintf("webp encode: %v", err)
		return res
	}

	outPath := filepath.Join(cfg.OutputDir, filepath.FromSlash(res.Path))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Checksum = xxhash.Sum64(buf.Bytes())
	if cfg.KeepImages {
		res.Image = img
	}
	res.Success = true
	return res
}

// FramePath returns "<track>/<index>.webp" with path separators and spaces in
// the track name replaced so every track gets a single directory.
func FramePath(trackName string, index int) string {
	return fmt.Sprintf("%s/%04d.webp", sanitizeDir(trackName), index)
}

func sanitizeDir(name string) string {
	dir := strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(name)
	if dir == "" || dir == "." || dir == ".." {
		dir = "_"
	}
	return dir
}
