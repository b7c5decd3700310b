// Package config centralizes environment loading and validation. Load from
// here instead of reading environment variables in multiple packages.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Environment variables consumed by every entry point. BLENDER_PATH and
// DATA_PATH are required; WEIGHTS_PATH optionally points at a YAML file of
// importance weights for virtual-light sampling.
const (
	EnvBlenderPath = "BLENDER_PATH"
	EnvDataPath    = "DATA_PATH"
	EnvWeightsPath = "WEIGHTS_PATH"
)

// Config holds the validated paths shared across the pipeline.
type Config struct {
	// BlenderPath is the host executable used by the render backend.
	BlenderPath string

	// DataPath is the dataset root. Scene and HDRI stores live beneath
	// it, and render outputs are keyed under DataPath/renders.
	DataPath string

	// Derived asset store directories.
	ScenesDir string
	HDRIDir   string

	// Weights carries importance weights per enum attribute, keyed by
	// attribute name then member name. Empty means uniform sampling.
	Weights map[string]map[string]float64
}

// Load reads .env (if present; real environment variables win), validates
// the required paths and returns the shared configuration. Any missing
// variable or nonexistent path is a hard error naming the offender.
func Load() (*Config, error) {
	// A missing .env is fine; the environment may be fully populated by
	// the scheduler or the shell.
	_ = godotenv.Load()

	blender, err := requiredPath(EnvBlenderPath)
	if err != nil {
		return nil, err
	}
	data, err := requiredPath(EnvDataPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BlenderPath: blender,
		DataPath:    data,
		ScenesDir:   filepath.Join(data, "scenes"),
		HDRIDir:     filepath.Join(data, "hdri"),
	}

	if weightsPath := os.Getenv(EnvWeightsPath); weightsPath != "" {
		expanded, err := homedir.Expand(weightsPath)
		if err != nil {
			return nil, fmt.Errorf("config: expanding %s: %w", EnvWeightsPath, err)
		}
		weights, err := LoadWeights(expanded)
		if err != nil {
			return nil, err
		}
		cfg.Weights = weights
	}

	return cfg, nil
}

// RendersDir is the root under which all render outputs are keyed.
func (c *Config) RendersDir() string {
	return filepath.Join(c.DataPath, "renders")
}

// LoadWeights parses a YAML importance-weight file of the form:
//
//	light_size:
//	  SMALL: 2.0
//	  LARGE: 0.5
//	light_color:
//	  WARM: 3.0
func LoadWeights(path string) (map[string]map[string]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading weights file %s: %w", path, err)
	}
	weights := make(map[string]map[string]float64)
	if err := yaml.Unmarshal(raw, &weights); err != nil {
		return nil, fmt.Errorf("config: parsing weights file %s: %w", path, err)
	}
	return weights, nil
}

func requiredPath(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("config: required environment variable %s is not set (did you create your .env?)", name)
	}
	expanded, err := homedir.Expand(value)
	if err != nil {
		return "", fmt.Errorf("config: expanding %s: %w", name, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("config: resolving %s: %w", name, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("config: %s does not exist: %s", name, abs)
	}
	return abs, nil
}
