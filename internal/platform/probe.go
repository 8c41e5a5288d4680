package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/devsolux/yt-dlp-gui/internal/model"
)

// Timeout constants
const (
	DefaultProbeTimeout = 30 * time.Second
)

// Default values
const (
	DefaultDuration = "Unknown"
)

// Time formatting constants
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

// ProbeService resolves video metadata for a URL ahead of the download, so
// task rows can show a title before any progress arrives.
type ProbeService struct {
	timeout time.Duration
}

// NewProbeService creates a new probe service
func NewProbeService() *ProbeService {
	return &ProbeService{
		timeout: DefaultProbeTimeout,
	}
}

// SetTimeout sets the timeout for probe operations
func (p *ProbeService) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// Probe fetches metadata for a video URL
func (p *ProbeService) Probe(ctx context.Context, url string) (*model.VideoMeta, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	d := ytdlp.New()
	_, info, err := d.ResolveURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve video metadata: %w", err)
	}

	meta := &model.VideoMeta{
		ID:       info.ID,
		Title:    info.Title,
		Duration: formatDuration(info.Duration),
	}
	return meta, nil
}

// formatDuration formats seconds into HH:MM:SS format
func formatDuration(seconds int) string {
	if seconds <= 0 {
		return DefaultDuration
	}

	hours := seconds / SecondsPerHour
	minutes := (seconds % SecondsPerHour) / SecondsPerMinute
	secs := seconds % SecondsPerMinute
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
