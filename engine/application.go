package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/kiki/engine/core"
	"github.com/spaghettifunk/kiki/engine/math"
)

type ApplicationConfig struct {
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"height"`
	// Wait for the vertical blank before swapping buffers.
	VSync bool `toml:"vsync"`
	// One of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Directory every asset path is relative to.
	AssetDir string `toml:"asset_dir"`
	// Sprite shader stages, relative to AssetDir.
	VertexShader   string `toml:"vertex_shader"`
	FragmentShader string `toml:"fragment_shader"`
	// Recompile shaders when their files change.
	WatchAssets bool `toml:"watch_assets"`

	// Seconds between two frame statistics log lines. 0 disables them.
	MetricsLogInterval float64 `toml:"metrics_log_interval"`
	// Workers decoding assets in the background.
	JobWorkers int `toml:"job_workers"`
}

const (
	maxWindowWidth     = 7680
	maxWindowHeight    = 4320
	maxMetricsInterval = 3600
)

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:               "kiki!",
		StartPosX:          100,
		StartPosY:          100,
		StartWidth:         640,
		StartHeight:        480,
		VSync:              true,
		LogLevel:           "info",
		AssetDir:           "assets",
		VertexShader:       "shaders/vertex_textured.glsl",
		FragmentShader:     "shaders/fragment_textured.glsl",
		WatchAssets:        false,
		MetricsLogInterval: 0,
		JobWorkers:         2,
	}
}

// LoadApplicationConfig reads the toml file at path over the defaults. A
// missing file is not an error.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			core.LogInfo("no configuration at %s, using defaults", path)
			return config, config.Validate()
		}
		return nil, err
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, config.Validate()
}

// Validate clamps numeric settings into range and rejects the ones that
// cannot be repaired.
func (c *ApplicationConfig) Validate() error {
	if c.Name == "" {
		c.Name = DefaultApplicationConfig().Name
	}
	c.StartWidth = math.Clamp(c.StartWidth, 1, maxWindowWidth)
	c.StartHeight = math.Clamp(c.StartHeight, 1, maxWindowHeight)
	c.MetricsLogInterval = math.Clamp(c.MetricsLogInterval, 0, maxMetricsInterval)
	c.JobWorkers = math.Clamp(c.JobWorkers, 1, runtime.NumCPU())

	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.AssetDir == "" {
		return fmt.Errorf("asset_dir must not be empty")
	}
	if c.VertexShader == "" || c.FragmentShader == "" {
		return fmt.Errorf("vertex_shader and fragment_shader must not be empty")
	}
	return nil
}
