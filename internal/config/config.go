// Package config loads weekpub configuration from YAML files and resolves
// the site root the pipeline operates in.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidQuality  = errors.New("quality must be between 1 and 100")
	ErrInvalidEffort   = errors.New("effort must be between 0 and 6")
	ErrRootNotFound    = errors.New("cannot locate site root (no articles.json in any parent directory)")
)

// Config holds all configuration for the publishing pipeline.
type Config struct {
	Site  SiteConfig  `yaml:"site"`
	Image ImageConfig `yaml:"image"`
}

// SiteConfig locates the site tree the pipeline reads and writes.
type SiteConfig struct {
	Root         string `yaml:"root"`         // Empty = search upward for articlesJSON
	ArticlesJSON string `yaml:"articlesJSON"` // Relative to root
	IndexHTML    string `yaml:"indexHTML"`    // Relative to root
	AssetsDir    string `yaml:"assetsDir"`    // Relative to root
}

// ImageConfig controls WebP conversion.
type ImageConfig struct {
	Tool    string `yaml:"tool"`    // Encoder binary (default "cwebp")
	Quality int    `yaml:"quality"` // 1-100
	Effort  int    `yaml:"effort"`  // cwebp -m, 0-6
}

// DefaultConfig reproduces the site's original conversion settings.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			ArticlesJSON: "articles.json",
			IndexHTML:    "index.html",
			AssetsDir:    "assets",
		},
		Image: ImageConfig{
			Tool:    "cwebp",
			Quality: 82,
			Effort:  6,
		},
	}
}

// Validate checks numeric bounds on the image settings.
func (c *Config) Validate() error {
	if c.Image.Quality < 1 || c.Image.Quality > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuality, c.Image.Quality)
	}
	if c.Image.Effort < 0 || c.Image.Effort > 6 {
		return fmt.Errorf("%w: got %d", ErrInvalidEffort, c.Image.Effort)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A name containing a path separator is treated as a file path; otherwise it
// is searched in the current directory and the user config directory.
// Missing fields keep their defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveRoot determines the site root: an explicit root wins, otherwise the
// nearest ancestor of start containing the articles store.
func (c *Config) ResolveRoot(explicit, start string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if c.Site.Root != "" {
		return c.Site.Root, nil
	}
	return findRoot(start, c.Site.ArticlesJSON)
}

// findRoot walks upward from start looking for a directory containing marker.
func findRoot(start, marker string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving start directory: %w", err)
	}

	for {
		if fileExists(filepath.Join(dir, marker)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: searched from %s", ErrRootNotFound, start)
		}
		dir = parent
	}
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, then the user config dir.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		tried = append(tried, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "weekpub", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
