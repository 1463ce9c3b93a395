// Package config holds the registry's file-backed configuration: the
// content root, the per-category directory and extension table, change
// detection mode, and log level.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	assetregistry "github.com/riftlab/asset-registry"
	"github.com/riftlab/asset-registry/errors"
)

// Category describes where one asset category lives and which file
// extensions belong to it.
type Category struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions"`
}

// Config is the registry configuration. Every category keeps its
// default directory and extensions unless overridden; a category can
// be pointed at a directory that does not exist, which simply loads
// nothing.
type Config struct {
	Root       string              `yaml:"root"`
	Watch      bool                `yaml:"watch"`
	LogLevel   string              `yaml:"log_level"`
	Categories map[string]Category `yaml:"categories"`
}

// Default returns the stock configuration: an "assets" root with one
// subdirectory per category, modtime polling, info logging.
func Default() *Config {
	return &Config{
		Root:     "assets",
		Watch:    false,
		LogLevel: "info",
		Categories: map[string]Category{
			string(assetregistry.CategoryMesh):      {Dir: "meshes", Extensions: []string{".obj"}},
			string(assetregistry.CategoryTexture):   {Dir: "textures", Extensions: []string{".png", ".jpg", ".jpeg"}},
			string(assetregistry.CategoryMaterial):  {Dir: "materials", Extensions: []string{".hcl"}},
			string(assetregistry.CategoryAnimation): {Dir: "animations", Extensions: []string{".clip.json"}},
			string(assetregistry.CategorySound):     {Dir: "sounds", Extensions: []string{".wav"}},
		},
	}
}

// Load reads configuration from path, overlaying it onto the defaults.
// A missing file is not an error: the defaults apply as they are.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.IO(errors.OpConfig, path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.OpConfig, errors.KindInvalidDocument, err, "parsing config file")
	}

	cfg.fillDefaults()
	return cfg, nil
}

// Save persists the configuration to path, creating the directory if
// needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.IO(errors.OpConfig, path, err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.OpConfig, errors.KindInvalidDocument, err, "encoding config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IO(errors.OpConfig, path, err)
	}
	return nil
}

// fillDefaults completes a partially specified configuration. A
// category override missing its dir or extensions inherits the stock
// values; extensions are normalized to lower case with a leading dot.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Root == "" {
		c.Root = def.Root
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Categories == nil {
		c.Categories = def.Categories
		return
	}

	for name, d := range def.Categories {
		cat, ok := c.Categories[name]
		if !ok {
			c.Categories[name] = d
			continue
		}
		if cat.Dir == "" {
			cat.Dir = d.Dir
		}
		if len(cat.Extensions) == 0 {
			cat.Extensions = d.Extensions
		} else {
			for i, ext := range cat.Extensions {
				ext = strings.ToLower(ext)
				if !strings.HasPrefix(ext, ".") {
					ext = "." + ext
				}
				cat.Extensions[i] = ext
			}
		}
		c.Categories[name] = cat
	}
}

// CategoryDir returns the directory holding cat's resources. Relative
// directories are joined under the root; absolute ones are used as is.
func (c *Config) CategoryDir(cat assetregistry.Category) string {
	d := c.Categories[string(cat)].Dir
	if filepath.IsAbs(d) {
		return d
	}
	return filepath.Join(c.Root, d)
}

// Extensions returns the file extensions registered for cat.
func (c *Config) Extensions(cat assetregistry.Category) []string {
	return c.Categories[string(cat)].Extensions
}

// Level parses LogLevel into a zap level, falling back to info.
func (c *Config) Level() zapcore.Level {
	if l, err := zapcore.ParseLevel(c.LogLevel); err == nil {
		return l
	}
	return zapcore.InfoLevel
}
