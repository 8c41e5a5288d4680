package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}

	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestResolveExistingFile(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "video.mp4")
	if err := os.WriteFile(file, []byte("data"), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	abs, err := resolveExistingFile(file)
	if err != nil {
		t.Fatalf("resolveExistingFile failed for existing file: %v", err)
	}
	if !filepath.IsAbs(abs) {
		t.Errorf("Expected absolute path, got %s", abs)
	}

	if _, err := resolveExistingFile(""); err == nil {
		t.Error("Expected error for empty path")
	}

	if _, err := resolveExistingFile(filepath.Join(tempDir, "missing.mp4")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	tempDir := t.TempDir()
	nonExistentFile := filepath.Join(tempDir, "nonexistent.txt")

	if err := OpenFileInManager(nonExistentFile); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestOpenFileWithDefaultApp_NonExistentFile(t *testing.T) {
	tempDir := t.TempDir()
	nonExistentFile := filepath.Join(tempDir, "nonexistent.mp4")

	if err := OpenFileWithDefaultApp(nonExistentFile); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, DefaultDuration},
		{-5, DefaultDuration},
		{45, "00:45"},
		{90, "01:30"},
		{3600, "01:00:00"},
		{3725, "01:02:05"},
	}

	for _, test := range tests {
		result := formatDuration(test.seconds)
		if result != test.expected {
			t.Errorf("formatDuration(%d) = %s, expected %s", test.seconds, result, test.expected)
		}
	}
}
