package build

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"path/filepath"
)

// commandContext is swapped out in tests to observe the spawned commands.
var commandContext = exec.CommandContext

// Bundler drives the external fyne CLI to produce the platform bundle.
type Bundler struct {
	cfg Config
}

// NewBundler creates a bundler for the given config.
func NewBundler(cfg Config) *Bundler {
	return &Bundler{cfg: cfg}
}

// Bundle runs `fyne package` for the target OS inside the source directory.
func (b *Bundler) Bundle(ctx context.Context, goos string) error {
	args := []string{
		"package",
		"-os", goos,
		"-name", b.cfg.AppName,
		"-appID", b.cfg.AppID,
		"-appVersion", b.cfg.Version,
		"-release",
	}
	// The icon flag requires the file to exist; omit it otherwise so a
	// checkout without an icon still packages
	if icon := b.iconPath(); icon != "" {
		args = append(args, "-icon", b.cfg.Icon)
	}

	cmd := commandContext(ctx, "fyne", args...)
	cmd.Dir = b.cfg.SourceDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Printf("Bundling %s v%s for %s", b.cfg.AppName, b.cfg.Version, goos)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("fyne package: %w", err)
	}
	return nil
}

// iconPath resolves the configured icon relative to the source directory
// and returns "" when no icon file is present.
func (b *Bundler) iconPath() string {
	if b.cfg.Icon == "" {
		return ""
	}
	path := b.cfg.Icon
	if !filepath.IsAbs(path) {
		path = filepath.Join(b.cfg.SourceDir, path)
	}
	if _, err := os.Stat(path); err != nil {
		log.Printf("Icon %s not found, packaging without it", path)
		return ""
	}
	return path
}

// AdjustDarwinBundle fixes up a freshly built .app: the embedded executables
// get their execute bits restored and quarantine attributes are stripped.
// The xattr step is best-effort, the bundle is usable without it.
func AdjustDarwinBundle(ctx context.Context, appPath string) error {
	for _, sub := range []string{"MacOS", "Frameworks"} {
		dir := filepath.Join(appPath, "Contents", sub)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.Chmod(path, info.Mode()|0o111)
		})
		if err != nil {
			return fmt.Errorf("restore execute bits: %w", err)
		}
	}

	cmd := commandContext(ctx, "xattr", "-cr", appPath)
	if err := cmd.Run(); err != nil {
		log.Printf("xattr -cr %s failed: %v", appPath, err)
	}
	return nil
}
