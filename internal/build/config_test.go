package build

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-file.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defaults := Default()
	if cfg.AppName != defaults.AppName {
		t.Errorf("expected default app name %q, got %q", defaults.AppName, cfg.AppName)
	}
	if cfg.Version != defaults.Version {
		t.Errorf("expected default version %q, got %q", defaults.Version, cfg.Version)
	}
}

func TestDefaultStagesReadmeAndLicense(t *testing.T) {
	extras := Default().ExtraFiles

	for _, want := range []string{"README.md", "LICENSE"} {
		found := false
		for _, extra := range extras {
			if extra == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected default extra files to include %q, got %v", want, extras)
		}
	}
}

func TestLoadParsesToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.toml")
	contents := []byte(`
app_name = "example-app"
app_id = "org.example.app"
version = "2.5.0"
extra_files = ["README.md", "LICENSE"]
`)
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppName != "example-app" {
		t.Errorf("unexpected app name: %q", cfg.AppName)
	}
	if cfg.Version != "2.5.0" {
		t.Errorf("unexpected version: %q", cfg.Version)
	}
	if len(cfg.ExtraFiles) != 2 {
		t.Errorf("expected 2 extra files, got %d", len(cfg.ExtraFiles))
	}
	// Fields absent from the file keep their defaults
	if cfg.BuildDir != Default().BuildDir {
		t.Errorf("expected default build dir, got %q", cfg.BuildDir)
	}
}

func TestLoadInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.toml")
	if err := os.WriteFile(path, []byte("app_name = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty app name", mutate: func(c *Config) { c.AppName = "" }, wantErr: true},
		{name: "empty version", mutate: func(c *Config) { c.Version = " " }, wantErr: true},
		{name: "app name with separator", mutate: func(c *Config) { c.AppName = "a/b" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestArtifactName(t *testing.T) {
	cfg := Default()
	cfg.AppName = "yt-dlp-gui"
	cfg.Version = "1.2.3"

	tests := []struct {
		goos   string
		goarch string
		want   string
	}{
		{"darwin", "arm64", "yt-dlp-gui-v1.2.3-darwin-arm64.dmg"},
		{"windows", "amd64", "yt-dlp-gui-v1.2.3-windows-amd64.zip"},
		{"linux", "amd64", "yt-dlp-gui-v1.2.3-linux-amd64.tar.gz"},
	}

	for _, tt := range tests {
		if got := ArtifactName(cfg, tt.goos, tt.goarch); got != tt.want {
			t.Errorf("ArtifactName(%s/%s) = %q, want %q", tt.goos, tt.goarch, got, tt.want)
		}
	}
}
