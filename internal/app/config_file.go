package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hyperifyio/webtext/internal/output"
)

// FileConfig mirrors the optional YAML config file. Pointer fields
// distinguish "absent" from a zero value so file settings never
// clobber explicit CLI flags.
type FileConfig struct {
	OutputFormat     *string `yaml:"output_format"`
	IncludeComments  *bool   `yaml:"include_comments"`
	IncludeTables    *bool   `yaml:"include_tables"`
	IncludeLinks     *bool   `yaml:"include_links"`
	IncludeImages    *bool   `yaml:"include_images"`
	ExtractMetadata  *bool   `yaml:"extract_metadata"`
	MinExtractedSize *int    `yaml:"min_extracted_size"`
	TimeoutSeconds   *int    `yaml:"timeout_seconds"`
	UserAgent        *string `yaml:"user_agent"`
	CacheDir         *string `yaml:"cache_dir"`
	CacheMaxAgeHours *int    `yaml:"cache_max_age_hours"`
}

// LoadFileConfig reads and parses a YAML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// Apply copies file settings into cfg for any field the file sets.
// The caller layers this between defaults and CLI flags.
func (fc FileConfig) Apply(cfg *Config) error {
	if fc.OutputFormat != nil {
		f, err := output.ParseFormat(*fc.OutputFormat)
		if err != nil {
			return err
		}
		cfg.Format = f
	}
	if fc.IncludeComments != nil {
		cfg.IncludeComments = *fc.IncludeComments
	}
	if fc.IncludeTables != nil {
		cfg.IncludeTables = *fc.IncludeTables
	}
	if fc.IncludeLinks != nil {
		cfg.IncludeLinks = *fc.IncludeLinks
	}
	if fc.IncludeImages != nil {
		cfg.IncludeImages = *fc.IncludeImages
	}
	if fc.ExtractMetadata != nil {
		cfg.ExtractMetadata = *fc.ExtractMetadata
	}
	if fc.MinExtractedSize != nil {
		cfg.MinExtractedSize = *fc.MinExtractedSize
	}
	if fc.TimeoutSeconds != nil {
		cfg.Timeout = time.Duration(*fc.TimeoutSeconds) * time.Second
	}
	if fc.UserAgent != nil {
		cfg.UserAgent = *fc.UserAgent
	}
	if fc.CacheDir != nil {
		cfg.CacheDir = *fc.CacheDir
	}
	if fc.CacheMaxAgeHours != nil {
		cfg.CacheMaxAge = time.Duration(*fc.CacheMaxAgeHours) * time.Hour
	}
	return nil
}
