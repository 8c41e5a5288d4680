package config

import (
	"fyne.io/fyne/v2"

	"github.com/devsolux/yt-dlp-gui/internal/format"
	"github.com/devsolux/yt-dlp-gui/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyMaxParallel        = "max_parallel_downloads"
	KeyDownloadType       = "download_type"
	KeyQualityLabel       = "quality_label"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultMaxParallel        = 2
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = true
)

// Parallel download bounds
const (
	MinParallelDownloads = 1
	MaxParallelDownloads = 10
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMaxParallelDownloads returns the maximum number of parallel downloads
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	if count < MinParallelDownloads {
		count = MinParallelDownloads
	}
	if count > MaxParallelDownloads {
		count = MaxParallelDownloads
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetDownloadType returns the default download type (video or audio)
func (s *Settings) GetDownloadType() format.DownloadType {
	typ := s.app.Preferences().String(KeyDownloadType)
	if typ != string(format.TypeVideo) && typ != string(format.TypeAudio) {
		s.SetDownloadType(format.TypeVideo)
		return format.TypeVideo
	}
	return format.DownloadType(typ)
}

// SetDownloadType sets the default download type
func (s *Settings) SetDownloadType(typ format.DownloadType) {
	if typ != format.TypeAudio {
		typ = format.TypeVideo
	}
	s.app.Preferences().SetString(KeyDownloadType, string(typ))
}

// GetQualityLabel returns the default quality label for video downloads
func (s *Settings) GetQualityLabel() string {
	quality := s.app.Preferences().String(KeyQualityLabel)
	for _, label := range format.QualityLabels {
		if quality == label {
			return quality
		}
	}
	s.SetQualityLabel(format.DefaultQuality)
	return format.DefaultQuality
}

// SetQualityLabel sets the default quality label
func (s *Settings) SetQualityLabel(quality string) {
	if quality == "" {
		quality = format.DefaultQuality
	}
	s.app.Preferences().SetString(KeyQualityLabel, quality)
}

// GetFormatSpec builds a format spec from the persisted type and quality
func (s *Settings) GetFormatSpec() format.Spec {
	return format.BuildSpec(s.GetDownloadType(), s.GetQualityLabel())
}

// GetQualityOptions returns the selectable quality labels
func (s *Settings) GetQualityOptions() []string {
	return format.QualityLabels
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to auto-reveal completed downloads
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to auto-reveal completed downloads
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
