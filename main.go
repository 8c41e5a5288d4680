package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/devsolux/yt-dlp-gui/internal/config"
	"github.com/devsolux/yt-dlp-gui/internal/download"
	"github.com/devsolux/yt-dlp-gui/internal/platform"
	"github.com/devsolux/yt-dlp-gui/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.devsolux.yt-dlp-gui"
	AppName = "YT-DLP GUI"

	WindowWidth  = 800
	WindowHeight = 600
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		fmt.Printf("failed to ensure downloads dir: %v\n", err)
	}

	downloadSvc := download.NewService(downloadsDir, settings.GetMaxParallelDownloads())

	ui.NewRootUI(myWindow, myApp, downloadSvc)

	myWindow.ShowAndRun()
}
