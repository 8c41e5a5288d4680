package build

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/devsolux/yt-dlp-gui/internal/platform"
)

// Pipeline runs the full packaging sequence for one target platform.
type Pipeline struct {
	cfg    Config
	goos   string
	goarch string
	out    io.Writer
}

// NewPipeline creates a packaging pipeline for the given target.
func NewPipeline(cfg Config, goos, goarch string, out io.Writer) *Pipeline {
	if out == nil {
		out = os.Stdout
	}
	return &Pipeline{cfg: cfg, goos: goos, goarch: goarch, out: out}
}

// Run executes the pipeline: dependency check, clean, bundle, platform
// fixups, then archiving into the dist directory. It returns the path of
// the produced artifact.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	statuses := CheckBinaries(Requirements(p.goos))
	fmt.Fprintln(p.out, RenderStatusTable(statuses))
	if err := MissingRequired(statuses); err != nil {
		return "", err
	}

	if err := p.Clean(); err != nil {
		return "", err
	}

	bundler := NewBundler(p.cfg)
	if err := bundler.Bundle(ctx, p.goos); err != nil {
		return "", err
	}

	artifact, err := p.findBuiltArtifact()
	if err != nil {
		return "", err
	}

	if p.goos == platform.OSDarwin {
		if err := AdjustDarwinBundle(ctx, artifact); err != nil {
			return "", err
		}
	}

	return p.archive(ctx, artifact)
}

// Clean removes previous build output and recreates the work directories.
func (p *Pipeline) Clean() error {
	for _, dir := range []string{p.cfg.BuildDir, p.cfg.DistDir} {
		if dir == "" || dir == "." {
			return fmt.Errorf("refusing to clean directory %q", dir)
		}
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("clean %s: %w", dir, err)
		}
		if err := os.MkdirAll(dir, platform.DefaultDirPermissions); err != nil {
			return fmt.Errorf("recreate %s: %w", dir, err)
		}
	}
	log.Printf("Cleaned %s and %s", p.cfg.BuildDir, p.cfg.DistDir)
	return nil
}

// findBuiltArtifact locates the bundle `fyne package` left in the source
// directory and moves it into the build directory.
func (p *Pipeline) findBuiltArtifact() (string, error) {
	var candidates []string
	switch p.goos {
	case platform.OSDarwin:
		candidates = []string{p.cfg.AppName + ".app"}
	case platform.OSWindows:
		candidates = []string{p.cfg.AppName + ".exe"}
	default:
		candidates = []string{p.cfg.AppName + ".tar.xz", p.cfg.AppName}
	}

	for _, name := range candidates {
		src := filepath.Join(p.cfg.SourceDir, name)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dest := p.cfg.BuildPath(name)
		if err := os.Rename(src, dest); err != nil {
			return "", fmt.Errorf("move bundle to build dir: %w", err)
		}
		return dest, nil
	}

	return "", fmt.Errorf("no bundle found in %s for %s", p.cfg.SourceDir, p.goos)
}

// archive wraps the bundle and any extra files into the distributable.
func (p *Pipeline) archive(ctx context.Context, artifact string) (string, error) {
	dest := p.cfg.DistPath(ArtifactName(p.cfg, p.goos, p.goarch))

	sources := []string{artifact}
	for _, extra := range p.cfg.ExtraFiles {
		if _, err := os.Stat(extra); err != nil {
			log.Printf("Skipping extra file %s: %v", extra, err)
			continue
		}
		sources = append(sources, extra)
	}

	switch p.goos {
	case platform.OSDarwin:
		staging, err := p.stageDarwin(ctx, sources)
		if err != nil {
			return "", err
		}
		defer os.RemoveAll(staging)
		if err := CreateDMG(ctx, staging, dest, p.cfg.AppName); err != nil {
			return "", err
		}
	case platform.OSWindows:
		if err := CreateZip(sources, dest); err != nil {
			return "", err
		}
	default:
		if err := CreateTarGz(sources, dest); err != nil {
			return "", err
		}
	}

	log.Printf("Created %s", dest)
	return dest, nil
}

// stageDarwin copies the app bundle and extras into a staging directory so
// the DMG contains only the distributable content. ditto preserves bundle
// metadata that a plain copy would lose.
func (p *Pipeline) stageDarwin(ctx context.Context, sources []string) (string, error) {
	staging, err := os.MkdirTemp("", "dmg-staging-")
	if err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	for _, src := range sources {
		dest := filepath.Join(staging, filepath.Base(src))
		cmd := commandContext(ctx, "ditto", src, dest)
		if err := cmd.Run(); err != nil {
			os.RemoveAll(staging)
			return "", fmt.Errorf("stage %s: %w", src, err)
		}
	}

	return staging, nil
}
