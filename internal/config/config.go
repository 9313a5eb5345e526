package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable paths and render settings for a preview run.
type Config struct {
	// Paths
	BaseDir      string `json:"base_dir" yaml:"base_dir"`
	TrackFile    string `json:"track_file" yaml:"track_file"`
	GLTFFile     string `json:"gltf_file" yaml:"gltf_file"`
	MeshFile     string `json:"mesh_file" yaml:"mesh_file"`
	TextureDir   string `json:"texture_dir" yaml:"texture_dir"`
	OutputDir    string `json:"output_dir" yaml:"output_dir"`
	ContactSheet string `json:"contact_sheet" yaml:"contact_sheet"`

	// Sampling
	Frames int    `json:"frames" yaml:"frames"`
	Easing string `json:"easing" yaml:"easing"`

	// Render settings
	RenderSize  int  `json:"render_size" yaml:"render_size"`
	Supersample int  `json:"supersample" yaml:"supersample"`
	Perspective bool `json:"perspective" yaml:"perspective"`
	SheetCols   int  `json:"sheet_cols" yaml:"sheet_cols"`
	Workers     int  `json:"workers" yaml:"workers"`

	// Logging
	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"`
}

// Load reads a config file and returns Config. Files ending in .yaml or .yml
// are parsed as YAML, everything else as JSON.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}
	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.TrackFile != "" {
		c.TrackFile = flags.TrackFile
	}
	if flags.GLTFFile != "" {
		c.GLTFFile = flags.GLTFFile
	}
	if flags.MeshFile != "" {
		c.MeshFile = flags.MeshFile
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Easing != "" {
		c.Easing = flags.Easing
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Perspective {
		c.Perspective = true
	}
	if flags.ContactSheet != "" {
		c.ContactSheet = flags.ContactSheet
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.BaseDir == "" {
		c.BaseDir = detectBaseDir()
	}

	// Resolve relative paths against base dir
	c.TrackFile = c.abs(c.TrackFile)
	c.GLTFFile = c.abs(c.GLTFFile)
	c.MeshFile = c.abs(c.MeshFile)
	c.ContactSheet = c.abs(c.ContactSheet)
	if c.TextureDir == "" {
		switch {
		case c.MeshFile != "":
			c.TextureDir = filepath.Dir(c.MeshFile)
		default:
			c.TextureDir = c.BaseDir
		}
	} else {
		c.TextureDir = c.abs(c.TextureDir)
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "renders")
	} else {
		c.OutputDir = c.abs(c.OutputDir)
	}

	// Defaults for render settings
	if c.Frames <= 0 {
		c.Frames = 24
	}
	if c.Easing == "" {
		c.Easing = "linear"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.SheetCols <= 0 {
		c.SheetCols = 6
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
}

func (c *Config) abs(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	TrackFile    string
	GLTFFile     string
	MeshFile     string
	OutputDir    string
	ContactSheet string
	Easing       string
	LogLevel     string
	Frames       int
	Size         int
	Workers      int
	Perspective  bool
}

// trackNames are the file names detectBaseDir looks for.
var trackNames = []string{"tracks.yaml", "tracks.yml", "tracks.json"}

func detectBaseDir() string {
	// Try current working directory and its parent
	cwd, _ := os.Getwd()
	if cwd == "" {
		return ""
	}
	for _, base := range []string{cwd, filepath.Dir(cwd)} {
		for _, name := range trackNames {
			if _, err := os.Stat(filepath.Join(base, name)); err == nil {
				return base
			}
		}
	}
	return cwd
}

// DefaultTrackFile returns the first tracks.* file present in BaseDir, or "".
func (c *Config) DefaultTrackFile() string {
	for _, name := range trackNames {
		p := filepath.Join(c.BaseDir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
