package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ytdigest/model"
)

// Config is the per-run configuration. Secrets are not part of the file,
// they come from the environment via GetParam.
type Config struct {
	Regions   []string `yaml:"regions"`
	Platforms []string `yaml:"platforms"`
	Search    struct {
		MaxResults int `yaml:"max_results"`
		WindowDays int `yaml:"window_days"`
	} `yaml:"search"`
	Download struct {
		OutputDir string `yaml:"output_dir"`
	} `yaml:"download"`
	Article struct {
		Language string `yaml:"language"`
		Category string `yaml:"category"`
	} `yaml:"article"`
	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`
	Weaviate struct {
		Host string `yaml:"host"`
	} `yaml:"weaviate"`
	API struct {
		Port int `yaml:"port"`
	} `yaml:"api"`
}

func Default() *Config {
	cfg := &Config{
		Regions:   []string{"TW"},
		Platforms: []string{string(model.PlatformGoogleTrends)},
	}
	cfg.Search.MaxResults = 3
	cfg.Search.WindowDays = 7
	cfg.Download.OutputDir = "downloads"
	cfg.Article.Language = "en"
	cfg.Article.Category = "education"
	cfg.Mongo.URI = "mongodb://localhost:27017"
	cfg.Mongo.Database = "ytdigest"
	cfg.API.Port = 8080

	return cfg
}

// Load reads a yaml config file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// ParsedRegions resolves the configured region codes, failing on the
// first unknown one.
func (c *Config) ParsedRegions() ([]model.Region, error) {
	regions := make([]model.Region, 0, len(c.Regions))
	for _, code := range c.Regions {
		region, err := model.ParseRegion(code)
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}

	return regions, nil
}

// GetParam returns the value of an environment variable, or a default
// when it is not set.
func GetParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}

	return def
}
