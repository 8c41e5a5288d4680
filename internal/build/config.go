package build

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigFile is the packaging config looked up next to the sources.
const DefaultConfigFile = "build.toml"

// Config describes how the application is bundled and archived.
type Config struct {
	AppName    string   `toml:"app_name"`
	AppID      string   `toml:"app_id"`
	Version    string   `toml:"version"`
	Icon       string   `toml:"icon"`
	SourceDir  string   `toml:"source_dir"`
	BuildDir   string   `toml:"build_dir"`
	DistDir    string   `toml:"dist_dir"`
	ExtraFiles []string `toml:"extra_files"`
}

// Default returns the packaging defaults for this repository layout.
func Default() Config {
	return Config{
		AppName:   "yt-dlp-gui",
		AppID:     "com.devsolux.yt-dlp-gui",
		Version:   "1.0.0",
		Icon:      "Icon.png",
		SourceDir: ".",
		BuildDir:  "build",
		DistDir:   "dist",
		// Staged alongside the bundle when present; missing files are skipped
		ExtraFiles: []string{"README.md", "LICENSE"},
	}
}

// Load parses a packaging config file. A missing file is not an error: the
// defaults are returned so a bare checkout can still be packaged.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks the fields a packaging run cannot proceed without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.AppName) == "" {
		return errors.New("app_name must not be empty")
	}
	if strings.TrimSpace(c.Version) == "" {
		return errors.New("version must not be empty")
	}
	if strings.ContainsAny(c.AppName, "/\\") {
		return fmt.Errorf("app_name %q must not contain path separators", c.AppName)
	}
	return nil
}

// BuildPath returns a path inside the build directory.
func (c Config) BuildPath(elem ...string) string {
	return filepath.Join(append([]string{c.BuildDir}, elem...)...)
}

// DistPath returns a path inside the dist directory.
func (c Config) DistPath(elem ...string) string {
	return filepath.Join(append([]string{c.DistDir}, elem...)...)
}
