package build

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/devsolux/yt-dlp-gui/internal/platform"
)

// ArtifactExtension returns the archive extension used for the target OS.
func ArtifactExtension(goos string) string {
	switch goos {
	case platform.OSDarwin:
		return "dmg"
	case platform.OSWindows:
		return "zip"
	default:
		return "tar.gz"
	}
}

// ArtifactName builds the distributable file name for a target platform,
// for example "yt-dlp-gui-v0.1.0-darwin-arm64.dmg".
func ArtifactName(cfg Config, goos, goarch string) string {
	return fmt.Sprintf("%s-v%s-%s-%s.%s", cfg.AppName, cfg.Version, goos, goarch, ArtifactExtension(goos))
}

// CreateZip archives the given paths into destPath. Directories are walked
// recursively; entry names are relative to each source's parent directory.
func CreateZip(sources []string, destPath string) error {
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	defer zw.Close()

	for _, src := range sources {
		if err := addToZip(zw, src); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize zip: %w", err)
	}
	return nil
}

func addToZip(zw *zip.Writer, src string) error {
	base := filepath.Dir(src)
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		header.Method = zip.Deflate

		writer, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(writer, file)
		return err
	})
}

// CreateTarGz archives the given paths into a gzip-compressed tarball.
func CreateTarGz(sources []string, destPath string) error {
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create tarball: %w", err)
	}
	defer out.Close()

	gzw := gzip.NewWriter(out)
	tw := tar.NewWriter(gzw)

	for _, src := range sources {
		if err := addToTar(tw, src); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finalize tar: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize gzip: %w", err)
	}
	return nil
}

func addToTar(tw *tar.Writer, src string) error {
	base := filepath.Dir(src)
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)

		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(tw, file)
		return err
	})
}

// CreateDMG builds a compressed disk image from the staging directory.
// Darwin only, requires hdiutil.
func CreateDMG(ctx context.Context, stagingDir, destPath, volumeName string) error {
	cmd := commandContext(ctx, "hdiutil", "create",
		"-volname", volumeName,
		"-srcfolder", stagingDir,
		"-ov",
		"-format", "UDZO",
		destPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("hdiutil create: %w", err)
	}
	return nil
}
