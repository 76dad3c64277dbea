package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds everything a labeling session needs at construction time
type Config struct {
	DataDir    string   `yaml:"data_dir" toml:"data_dir"`
	ResultPath string   `yaml:"result_path" toml:"result_path"`
	Labels     []string `yaml:"labels" toml:"labels"`
	Colors     []string `yaml:"colors" toml:"colors"`
	Rows       int      `yaml:"rows" toml:"rows"`
	Columns    int      `yaml:"columns" toml:"columns"`
	FontSize   int      `yaml:"font_size" toml:"font_size"`
	Addr       string   `yaml:"addr" toml:"addr"`
	MaxTilePx  int      `yaml:"max_tile_px" toml:"max_tile_px"`
}

// PageSize is the number of tiles shown per grid
func (c *Config) PageSize() int {
	return c.Rows * c.Columns
}

// Load returns the defaults overlaid with the file at path, if any.
// An empty path falls back to CLICKLABEL_CONFIG. The result is not validated;
// callers apply flag overrides first and then call Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("unsupported config format: %s (supported: .yaml, .yml, .toml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return &cfg, nil
}
