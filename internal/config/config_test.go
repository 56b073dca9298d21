package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/junyi/go-weekpub/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weekpub.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig - Original conversion settings
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	if cfg.Image.Tool != "cwebp" || cfg.Image.Quality != 82 || cfg.Image.Effort != 6 {
		t.Errorf("image defaults = %+v", cfg.Image)
	}
	if cfg.Site.ArticlesJSON != "articles.json" || cfg.Site.IndexHTML != "index.html" || cfg.Site.AssetsDir != "assets" {
		t.Errorf("site defaults = %+v", cfg.Site)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - YAML loading and validation
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
site:
  root: /srv/weekly
  assetsDir: images
image:
  quality: 90
`)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Site.Root != "/srv/weekly" {
		t.Errorf("Root = %q", cfg.Site.Root)
	}
	if cfg.Site.AssetsDir != "images" {
		t.Errorf("AssetsDir = %q", cfg.Site.AssetsDir)
	}
	if cfg.Image.Quality != 90 {
		t.Errorf("Quality = %d, want 90", cfg.Image.Quality)
	}
	// Unset fields keep defaults.
	if cfg.Site.ArticlesJSON != "articles.json" || cfg.Image.Effort != 6 {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "unknown field rejected",
			content: "site:\n  rooot: /tmp\n",
			wantErr: config.ErrConfigParse,
		},
		{
			name:    "malformed yaml",
			content: "site: [unclosed\n",
			wantErr: config.ErrConfigParse,
		},
		{
			name:    "quality out of range",
			content: "image:\n  quality: 101\n",
			wantErr: config.ErrInvalidQuality,
		},
		{
			name:    "effort out of range",
			content: "image:\n  effort: 9\n",
			wantErr: config.ErrInvalidEffort,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, tt.content)
			_, err := config.LoadConfig(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfig_EmptyName(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig("")
	if !errors.Is(err, config.ErrEmptyConfigName) {
		t.Errorf("LoadConfig() error = %v, want ErrEmptyConfigName", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolveRoot - Site root resolution
// ---------------------------------------------------------------------------

func TestResolveRoot(t *testing.T) {
	t.Parallel()

	t.Run("explicit flag wins", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.Site.Root = "/from/config"

		root, err := cfg.ResolveRoot("/from/flag", t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if root != "/from/flag" {
			t.Errorf("root = %q, want /from/flag", root)
		}
	})

	t.Run("config root next", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.Site.Root = "/from/config"

		root, err := cfg.ResolveRoot("", t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if root != "/from/config" {
			t.Errorf("root = %q, want /from/config", root)
		}
	})

	t.Run("searches upward for articles store", func(t *testing.T) {
		t.Parallel()
		siteRoot := t.TempDir()
		if err := os.WriteFile(filepath.Join(siteRoot, "articles.json"), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
		sourceDir := filepath.Join(siteRoot, "source")
		if err := os.MkdirAll(sourceDir, 0o755); err != nil {
			t.Fatal(err)
		}

		root, err := config.DefaultConfig().ResolveRoot("", sourceDir)
		if err != nil {
			t.Fatal(err)
		}
		if root != siteRoot {
			t.Errorf("root = %q, want %q", root, siteRoot)
		}
	})

	t.Run("no store anywhere", func(t *testing.T) {
		t.Parallel()
		_, err := config.DefaultConfig().ResolveRoot("", t.TempDir())
		if !errors.Is(err, config.ErrRootNotFound) {
			t.Errorf("error = %v, want ErrRootNotFound", err)
		}
	})
}
