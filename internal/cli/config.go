package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// config is the contents of a litho.toml file. Command flags override it.
type config struct {
	// ImageDirs are searched for "<object>.png" and "<object>.jpg".
	ImageDirs []string `toml:"image_dirs"`
	// MaxImageEdge downscales larger images on load. 0 keeps full size.
	MaxImageEdge int `toml:"max_image_edge"`
	// RenderLevels evaluates modifiers with their render settings.
	RenderLevels bool   `toml:"render_levels"`
	Material     string `toml:"material"`
	// WeldTolerance merges STL vertices closer than this. 0 picks one from the model.
	WeldTolerance float64       `toml:"weld_tolerance"`
	Preview       previewConfig `toml:"preview"`
}

type previewConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

func defaultConfig() config {
	return config{
		MaxImageEdge: 1024,
		Preview: previewConfig{
			Width:  1024,
			Height: 768,
		},
	}
}

// loadConfig reads the TOML file at path over the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.MaxImageEdge < 0 {
		return cfg, fmt.Errorf("config %s: max_image_edge must not be negative", path)
	}
	if cfg.Preview.Width <= 0 || cfg.Preview.Height <= 0 {
		return cfg, fmt.Errorf("config %s: preview size must be positive", path)
	}
	return cfg, nil
}
