// Package config loads detector tuning parameters from a YAML file.
package config

import (
	"errors"
	"fmt"
	"image"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kmmndr/video_analyzer/internal/detect"
	"github.com/kmmndr/video_analyzer/internal/motion"
)

// Config holds the tuning knobs of both scanners.
type Config struct {
	Flow    FlowConfig    `yaml:"flow"`
	Cascade CascadeConfig `yaml:"cascade"`
}

// FlowConfig mirrors the Farneback optical flow parameters.
type FlowConfig struct {
	PyrScale   float64 `yaml:"pyr_scale"`
	Levels     int     `yaml:"levels"`
	WinSize    int     `yaml:"winsize"`
	Iterations int     `yaml:"iterations"`
	PolyN      int     `yaml:"poly_n"`
	PolySigma  float64 `yaml:"poly_sigma"`
	Flags      int     `yaml:"flags"`
}

type CascadeConfig struct {
	Dirs         []string `yaml:"dirs"`
	Face         string   `yaml:"face"`
	Object       string   `yaml:"object"`
	ScaleFactor  float64  `yaml:"scale_factor"`
	MinNeighbors int      `yaml:"min_neighbors"`
	MinSize      int      `yaml:"min_size"`
	MaxSize      int      `yaml:"max_size"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	flow := motion.DefaultFlowParams()
	cascade := detect.DefaultCascadeParams()

	return Config{
		Flow: FlowConfig{
			PyrScale:   flow.PyrScale,
			Levels:     flow.Levels,
			WinSize:    flow.WinSize,
			Iterations: flow.Iterations,
			PolyN:      flow.PolyN,
			PolySigma:  flow.PolySigma,
			Flags:      flow.Flags,
		},
		Cascade: CascadeConfig{
			Dirs:         append([]string(nil), detect.DefaultCascadeDirs...),
			Face:         detect.FaceCascade,
			Object:       detect.ObjectCascade,
			ScaleFactor:  cascade.ScaleFactor,
			MinNeighbors: cascade.MinNeighbors,
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.Flow.PyrScale <= 0 || c.Flow.PyrScale >= 1 {
		errs = append(errs, fmt.Errorf("flow.pyr_scale must be in (0, 1), got %v", c.Flow.PyrScale))
	}
	if c.Flow.Levels < 1 {
		errs = append(errs, fmt.Errorf("flow.levels must be at least 1, got %d", c.Flow.Levels))
	}
	if c.Flow.WinSize < 1 {
		errs = append(errs, fmt.Errorf("flow.winsize must be at least 1, got %d", c.Flow.WinSize))
	}
	if c.Flow.Iterations < 1 {
		errs = append(errs, fmt.Errorf("flow.iterations must be at least 1, got %d", c.Flow.Iterations))
	}
	if c.Flow.PolyN != 5 && c.Flow.PolyN != 7 {
		errs = append(errs, fmt.Errorf("flow.poly_n must be 5 or 7, got %d", c.Flow.PolyN))
	}
	if c.Flow.PolySigma <= 0 {
		errs = append(errs, fmt.Errorf("flow.poly_sigma must be positive, got %v", c.Flow.PolySigma))
	}
	if c.Cascade.ScaleFactor <= 1 {
		errs = append(errs, fmt.Errorf("cascade.scale_factor must be greater than 1, got %v", c.Cascade.ScaleFactor))
	}
	if c.Cascade.MinNeighbors < 0 {
		errs = append(errs, fmt.Errorf("cascade.min_neighbors must not be negative, got %d", c.Cascade.MinNeighbors))
	}
	if c.Cascade.MinSize < 0 || c.Cascade.MaxSize < 0 {
		errs = append(errs, fmt.Errorf("cascade.min_size and cascade.max_size must not be negative, got %d and %d", c.Cascade.MinSize, c.Cascade.MaxSize))
	} else if c.Cascade.MaxSize != 0 && c.Cascade.MinSize > c.Cascade.MaxSize {
		errs = append(errs, fmt.Errorf("cascade.min_size %d exceeds cascade.max_size %d", c.Cascade.MinSize, c.Cascade.MaxSize))
	}
	if c.Cascade.Face == "" || c.Cascade.Object == "" {
		errs = append(errs, errors.New("cascade.face and cascade.object must name cascade files"))
	}

	return errors.Join(errs...)
}

func (c Config) FlowParams() motion.FlowParams {
	return motion.FlowParams{
		PyrScale:   c.Flow.PyrScale,
		Levels:     c.Flow.Levels,
		WinSize:    c.Flow.WinSize,
		Iterations: c.Flow.Iterations,
		PolyN:      c.Flow.PolyN,
		PolySigma:  c.Flow.PolySigma,
		Flags:      c.Flow.Flags,
	}
}

func (c Config) CascadeParams() detect.CascadeParams {
	return detect.CascadeParams{
		ScaleFactor:  c.Cascade.ScaleFactor,
		MinNeighbors: c.Cascade.MinNeighbors,
		MinSize:      image.Pt(c.Cascade.MinSize, c.Cascade.MinSize),
		MaxSize:      image.Pt(c.Cascade.MaxSize, c.Cascade.MaxSize),
	}
}
