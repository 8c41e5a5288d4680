package download

import (
	"github.com/devsolux/yt-dlp-gui/internal/format"
	"github.com/devsolux/yt-dlp-gui/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))

	// AddTask queues a URL with the format selection captured at click time
	AddTask(url string, spec format.Spec) (*model.DownloadTask, error)

	GetTask(id string) (*model.DownloadTask, bool)
	GetAllTasks() []*model.DownloadTask
	StopTask(id string) error
	RestartTask(id string) error
	RemoveTask(id string) error

	// SetMaxParallelDownloads sets the maximum number of parallel downloads
	SetMaxParallelDownloads(max int)

	// SetDownloadDirectory sets the download directory
	SetDownloadDirectory(dir string)
}

var _ Downloader = (*Service)(nil)
