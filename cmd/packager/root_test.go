package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCleanCommand(t *testing.T) {
	tmp := t.TempDir()
	buildDir := filepath.Join(tmp, "build")
	distDir := filepath.Join(tmp, "dist")

	configPath := filepath.Join(tmp, "build.toml")
	contents := "app_name = \"example\"\nversion = \"1.0.0\"\n" +
		"build_dir = '" + buildDir + "'\n" +
		"dist_dir = '" + distDir + "'\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := newRootCommand()
	cmd.SetArgs([]string{"clean", "--config", configPath})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.Execute(); err != nil {
		t.Fatalf("clean: %v", err)
	}

	for _, dir := range []string{buildDir, distDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("expected %s to exist after clean", dir)
		}
	}
}

func TestDepsCommandRendersTable(t *testing.T) {
	out := new(bytes.Buffer)

	cmd := newRootCommand()
	cmd.SetArgs([]string{"deps", "--os", "linux"})
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))

	// The check may fail on machines without the fyne CLI; the table must
	// be rendered either way.
	_ = cmd.Execute()

	if !strings.Contains(out.String(), "Go") {
		t.Errorf("expected table output, got:\n%s", out.String())
	}
}
