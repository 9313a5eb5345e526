package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"go.uber.org/zap"

	"quatkit/internal/batch"
	"quatkit/internal/config"
	"quatkit/internal/logging"
	"quatkit/internal/mesh"
	"quatkit/internal/postprocess"
	"quatkit/internal/texture"
	"quatkit/internal/track"
	"quatkit/internal/viewmatrix"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a JSON or YAML config file")
	trackFile := flag.String("tracks", "", "Keyframe file (YAML or JSON)")
	gltfFile := flag.String("gltf", "", "Read rotation tracks from a glTF animation instead")
	meshFile := flag.String("mesh", "", "glTF model to render (default: unit cube)")
	outputDir := flag.String("output", "", "Output directory (default: <base>/renders)")
	frames := flag.Int("frames", 0, "Frames per track (default: 24)")
	easing := flag.String("easing", "", "Easing for tracks that do not name one (default: linear)")
	size := flag.Int("size", 0, "Frame size in pixels (default: 256)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	persp := flag.Bool("persp", false, "Use perspective projection")
	sheet := flag.String("sheet", "", "Also write a contact sheet of all frames (.png or .webp)")
	only := flag.String("track", "", "Render only the track with this name")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (default: info)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		TrackFile:    *trackFile,
		GLTFFile:     *gltfFile,
		MeshFile:     *meshFile,
		OutputDir:    *outputDir,
		ContactSheet: *sheet,
		Easing:       *easing,
		LogLevel:     *logLevel,
		Frames:       *frames,
		Size:         *size,
		Workers:      *workers,
		Perspective:  *persp,
	})

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log, cfg, *only); err != nil {
		log.Error("quatview failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.Logger, cfg config.Config, only string) error {
	tracks, err := loadTracks(cfg)
	if err != nil {
		return err
	}
	if only != "" {
		var filtered []track.Track
		for _, tr := range tracks {
			if tr.Name == only {
				filtered = append(filtered, tr)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("no track named %q", only)
		}
		tracks = filtered
	}
	for i := range tracks {
		if tracks[i].Easing == "" {
			tracks[i].Easing = cfg.Easing
		}
		if err := tracks[i].Validate(); err != nil {
			return err
		}
	}

	meshes := []mesh.Mesh{mesh.Cube(1)}
	if cfg.MeshFile != "" {
		meshes, err = mesh.LoadGLTF(cfg.MeshFile)
		if err != nil {
			return err
		}
	}

	// Build texture index
	texIndex := texture.BuildIndex(cfg.TextureDir)
	texCache := texture.NewCache(texIndex, func(path string, err error) {
		log.Warn("texture load failed", zap.String("path", path), zap.Error(err))
	})

	jobs := batch.Jobs(tracks, cfg.Frames)
	log.Info("rendering",
		zap.Int("tracks", len(tracks)),
		zap.Int("frames", len(jobs)),
		zap.Int("meshes", len(meshes)),
		zap.Int("textures", texIndex.Len()),
		zap.Int("workers", cfg.Workers),
		zap.String("output", cfg.OutputDir))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	start := time.Now()
	results, err := batch.Run(ctx, batch.Config{
		OutputDir:   cfg.OutputDir,
		Meshes:      meshes,
		TexResolver: texCache,
		Camera:      viewmatrix.DefaultCamera,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Perspective: cfg.Perspective,
		Workers:     cfg.Workers,
		KeepImages:  cfg.ContactSheet != "",
		Logger:      log,
	}, jobs)
	if err != nil {
		return fmt.Errorf("render interrupted: %w", err)
	}

	// Count results
	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	log.Info("done",
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
		zap.Int("rendered", len(results)-failed),
		zap.Int("failed", failed))

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	manifest := batch.NewManifest(results)
	if err := batch.WriteManifest(manifestPath, manifest); err != nil {
		log.Warn("manifest write failed", zap.Error(err))
	} else {
		log.Info("manifest", zap.String("path", manifestPath), zap.String("run_id", manifest.RunID))
	}

	if cfg.ContactSheet != "" {
		if err := writeSheet(cfg, results); err != nil {
			log.Warn("contact sheet failed", zap.Error(err))
		} else {
			log.Info("contact sheet", zap.String("path", cfg.ContactSheet))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d frames failed", failed, len(results))
	}
	return nil
}

func loadTracks(cfg config.Config) ([]track.Track, error) {
	if cfg.GLTFFile != "" {
		return track.LoadGLTF(cfg.GLTFFile)
	}
	path := cfg.TrackFile
	if path == "" {
		path = cfg.DefaultTrackFile()
	}
	if path == "" {
		return nil, errors.New("no keyframes: use -tracks, -gltf or put tracks.yaml in the base directory")
	}
	return track.LoadFile(path)
}

func writeSheet(cfg config.Config, results []batch.Result) error {
	var frames []*image.NRGBA
	for _, r := range results {
		if r.Success && r.Image != nil {
			frames = append(frames, r.Image)
		}
	}
	img := postprocess.ContactSheet(frames, cfg.SheetCols, cfg.RenderSize)
	if img == nil {
		return errors.New("no frames")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.ContactSheet), 0755); err != nil {
		return err
	}
	f, err := os.Create(cfg.ContactSheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(cfg.ContactSheet), ".png") {
		return png.Encode(f, img)
	}
	return nativewebp.Encode(f, img, nil)
}
