// Package config holds the layout conventions the linking engine
// relies on: discovery folder names, recognized extensions, repository
// markers, and link alias names.
//
// The conventions are fixed in practice, but they load through koanf
// so an unusual installation can extend them from a sectorlink.toml
// without code changes.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/atcpilot/sectorlink/pkg/errors"
)

//go:embed defaults.toml
var defaultConfig []byte

// Discovery configures the sectorfile folder heuristic.
type Discovery struct {
	// FolderNames is the priority-ordered list of conventional folder
	// names checked under the install root.
	FolderNames []string `koanf:"folder_names"`
	// Extensions are the recognized reference-data extensions,
	// lowercase with leading dot.
	Extensions []string `koanf:"extensions"`
	// MarkerDir is the subdirectory name that marks a sectorfile or
	// main folder.
	MarkerDir string `koanf:"marker_dir"`
}

// Repo configures how the repository main folder is resolved.
type Repo struct {
	// MainDir is the marker subdirectory checked under the repo root.
	MainDir string `koanf:"main_dir"`
	// SharedRel is the slash-separated path of the shared data tree,
	// relative to the main folder.
	SharedRel string `koanf:"shared_rel"`
}

// Link configures the directory-link aliases.
type Link struct {
	// Aliases are the link names created under the target marker
	// directory, all pointing at the shared data tree.
	Aliases []string `koanf:"aliases"`
}

// Config is the root configuration.
type Config struct {
	Discovery Discovery `koanf:"discovery"`
	Repo      Repo      `koanf:"repo"`
	Link      Link      `koanf:"link"`
}

// SharedRelPath returns SharedRel in the host path separator.
func (c *Config) SharedRelPath() string {
	return filepath.FromSlash(c.Repo.SharedRel)
}

// RecognizesExtension reports whether name has one of the recognized
// reference-data extensions. Matching is case-insensitive.
func (c *Config) RecognizesExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range c.Discovery.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load builds the configuration from embedded defaults plus the first
// user override file found: $XDG_CONFIG_HOME/sectorlink/sectorlink.toml,
// then ./sectorlink.toml.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default configuration")
	}

	candidates := []string{
		filepath.Join(xdg.ConfigHome, "sectorlink", "sectorlink.toml"),
		"sectorlink.toml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load configuration from %s", path)
		}
		break
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// Default returns the built-in conventions without consulting any
// user override file.
func Default() *Config {
	k := koanf.New(".")
	// The embedded defaults are validated by tests, so a parse error
	// here is a programming error.
	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		panic(err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(err)
	}
	return &cfg
}
