package ui

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/devsolux/yt-dlp-gui/internal/config"
	"github.com/devsolux/yt-dlp-gui/internal/download"
	"github.com/devsolux/yt-dlp-gui/internal/model"
	"github.com/devsolux/yt-dlp-gui/internal/platform"
)

// RootUI is the main application window
type RootUI struct {
	window       fyne.Window
	downloadSvc  download.Downloader
	settings     *config.Settings
	localization *Localization

	// UI components
	urlEntry       *widget.Entry
	downloadBtn    *widget.Button
	formatSelector *FormatSelector
	taskList       *widget.List

	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	// Task list state, ordered by insertion
	tasks      []*model.DownloadTask
	tasksMutex sync.RWMutex

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, downloadSvc download.Downloader) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		log.Printf("Failed to create downloads directory %s: %v", downloadsDir, err)
	}

	ui := &RootUI{
		window:       window,
		downloadSvc:  downloadSvc,
		settings:     settings,
		localization: localization,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.downloadSvc.SetUpdateCallback(ui.onTaskUpdate)
	ui.downloadSvc.SetDownloadDirectory(downloadsDir)
	ui.downloadSvc.SetMaxParallelDownloads(settings.GetMaxParallelDownloads())

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.Validator = ui.validateURL
	// Trigger download when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.downloadBtn = widget.NewButton(ui.localization.GetText(KeyDownload), ui.onDownloadClick)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil, container.NewHBox(settingsBtn), ui.downloadBtn, ui.urlEntry)

	// Format selector seeded from the persisted defaults
	ui.formatSelector = NewFormatSelector(ui.localization)
	ui.formatSelector.SetSpec(ui.settings.GetFormatSpec())

	// Notification panel under the URL input (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	topCombined := container.NewVBox(
		topPanel,
		ui.formatSelector.Container(),
		ui.notificationContainer,
	)

	ui.taskList = widget.NewList(
		func() int {
			ui.tasksMutex.RLock()
			defer ui.tasksMutex.RUnlock()
			return len(ui.tasks)
		},
		func() fyne.CanvasObject { return ui.createTaskItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateTaskItem(id, obj) },
	)

	content := container.NewBorder(
		topCombined, // top
		nil,         // bottom
		nil,         // left
		nil,         // right
		ui.taskList, // center
	)

	ui.window.SetContent(content)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)
	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
	ui.formatSelector.refreshTexts()
	ui.taskList.Refresh()
}

// validateURL validates the entered URL
func (ui *RootUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	return nil
}

// onDownloadClick handles the download button click
func (ui *RootUI) onDownloadClick() {
	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterURL), false)
		return
	}

	if err := ui.validateURL(urlText); err != nil {
		ui.showNotification(ui.localization.GetText(KeyInvalidURL)+": "+err.Error(), false)
		return
	}

	cleanURL := sanitizeText(urlText)
	cleanURL = strings.ReplaceAll(cleanURL, " ", "")

	// Read the selection at click time so each task carries its own format
	spec := ui.formatSelector.Selected()
	log.Printf("Adding download task: url=%s format=%s", cleanURL, spec.FormatID)

	task, err := ui.downloadSvc.AddTask(cleanURL, spec)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			ui.showNotification(ui.localization.GetText(KeyAlreadyInQueue), false)
		} else {
			ui.showNotification("Error: "+err.Error(), false)
		}
		return
	}

	ui.tasksMutex.Lock()
	ui.tasks = append(ui.tasks, task)
	ui.tasksMutex.Unlock()

	ui.taskList.Refresh()
	ui.urlEntry.SetText("")
	ui.showNotification(ui.localization.GetText(KeyDownloadStarted), false)
}

// showNotification displays a message in the notification panel under the URL input.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		// Re-apply service configuration and the selector defaults
		ui.downloadSvc.SetDownloadDirectory(ui.settings.GetDownloadDirectory())
		ui.downloadSvc.SetMaxParallelDownloads(ui.settings.GetMaxParallelDownloads())
		ui.formatSelector.SetSpec(ui.settings.GetFormatSpec())
		ui.showNotification(ui.localization.GetText(KeySettingsSaved), false)
	})
}

// createTaskItem creates a new task item widget
func (ui *RootUI) createTaskItem() fyne.CanvasObject {
	placeholder := &model.DownloadTask{
		ID:     "placeholder",
		Status: model.TaskStatusPending,
	}

	taskRow := NewTaskRow(placeholder, ui.localization)
	taskRow.SetCallbacks(
		ui.onStartStopTask,
		ui.onRevealFile,
		ui.onOpenFile,
		ui.onCopyPath,
		ui.onRemoveTask,
	)
	return taskRow
}

// updateTaskItem updates a task item with current data
func (ui *RootUI) updateTaskItem(id widget.ListItemID, item fyne.CanvasObject) {
	ui.tasksMutex.RLock()
	if id >= len(ui.tasks) {
		ui.tasksMutex.RUnlock()
		return
	}
	task := ui.tasks[id]
	ui.tasksMutex.RUnlock()

	if taskRow, ok := item.(*TaskRow); ok {
		taskRow.UpdateTask(task)
	}
}

// onStartStopTask handles the start/stop button click
func (ui *RootUI) onStartStopTask(taskID string) {
	task, exists := ui.downloadSvc.GetTask(taskID)
	if !exists {
		log.Printf("Task %s not found", taskID)
		return
	}

	switch {
	case task.Status.CanRestart():
		log.Printf("Starting task %s", taskID)
		if err := ui.downloadSvc.RestartTask(taskID); err != nil {
			log.Printf("Error starting task %s: %v", taskID, err)
			ui.showNotification("Error starting task: "+err.Error(), false)
		}
	case task.Status.IsActive():
		log.Printf("Stopping task %s", taskID)
		if err := ui.downloadSvc.StopTask(taskID); err != nil {
			log.Printf("Error stopping task %s: %v", taskID, err)
			ui.showNotification("Error stopping task: "+err.Error(), false)
		}
	default:
		log.Printf("Cannot start/stop task %s in status %s", taskID, task.Status)
	}
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if filePath == "" || strings.HasPrefix(filePath, "http") {
		log.Printf("Cannot reveal path: %s", filePath)
		return
	}

	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// onOpenFile handles opening a downloaded file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if filePath == "" || strings.HasPrefix(filePath, "http") {
		log.Printf("Cannot open path: %s", filePath)
		return
	}

	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// onCopyPath handles copying a file path to the clipboard
func (ui *RootUI) onCopyPath(filePath string) {
	if filePath == "" || strings.HasPrefix(filePath, "http") {
		log.Printf("Cannot copy path: %s", filePath)
		return
	}

	fyne.CurrentApp().Clipboard().SetContent(filePath)
}

// onRemoveTask handles removing a task from the list
func (ui *RootUI) onRemoveTask(taskID string) {
	if err := ui.downloadSvc.RemoveTask(taskID); err != nil {
		log.Printf("Error removing task %s: %v", taskID, err)
		ui.showNotification("Error removing task: "+err.Error(), false)
		return
	}

	ui.tasksMutex.Lock()
	for i, task := range ui.tasks {
		if task.ID == taskID {
			ui.tasks = append(ui.tasks[:i], ui.tasks[i+1:]...)
			break
		}
	}
	ui.tasksMutex.Unlock()

	fyne.Do(func() {
		ui.taskList.Refresh()
	})
}

// debouncedUIUpdate reports whether a full refresh should run now
func (ui *RootUI) debouncedUIUpdate() bool {
	ui.uiUpdateMutex.Lock()
	defer ui.uiUpdateMutex.Unlock()

	now := time.Now()
	if now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		return false
	}
	ui.lastUIUpdate = now
	return true
}

// onTaskUpdate handles task updates from the download service.
// Called from download goroutines, so all UI work goes through fyne.Do.
func (ui *RootUI) onTaskUpdate(task *model.DownloadTask) {
	wasCompleted := false

	ui.tasksMutex.Lock()
	for i, existing := range ui.tasks {
		if existing.ID == task.ID {
			if existing.Status != model.TaskStatusCompleted && task.Status == model.TaskStatusCompleted {
				wasCompleted = true
			}
			ui.tasks[i] = task
			break
		}
	}
	ui.tasksMutex.Unlock()

	if wasCompleted {
		ui.hideNotification()
		ui.sendCompletionNotification(task)

		if ui.settings.GetAutoRevealOnComplete() && task.OutputPath != "" {
			log.Printf("Auto-revealing completed task %s: %s", task.ID, task.OutputPath)
			ui.onRevealFile(task.OutputPath)
		}
	}

	// Progress updates arrive twice a second per task; drop the ones that
	// would only repaint identical pixels. State transitions always render.
	if !wasCompleted && !task.Status.IsFinished() && !ui.debouncedUIUpdate() {
		return
	}

	fyne.Do(func() {
		ui.taskList.Refresh()
	})
}

// sendCompletionNotification sends a system notification for a completed download
func (ui *RootUI) sendCompletionNotification(task *model.DownloadTask) {
	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyDownloadCompleted),
		Content: task.GetDisplayTitle(),
	})

	ui.showToastNotification(task)
}

// showToastNotification shows an in-app toast with reveal/open actions
func (ui *RootUI) showToastNotification(task *model.DownloadTask) {
	titleLabel := widget.NewLabel(ui.localization.GetText(KeyDownloadCompleted))
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(task.GetDisplayTitle())
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	revealBtn := widget.NewButton(IconFolder, func() {
		ui.onRevealFile(task.OutputPath)
	})
	revealBtn.Importance = widget.HighImportance

	openBtn := widget.NewButton(ui.localization.GetText(KeyOpen), func() {
		ui.onOpenFile(task.OutputPath)
	})
	openBtn.Importance = widget.MediumImportance

	var toastPopup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if toastPopup != nil {
			toastPopup.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	content := container.NewVBox(
		container.NewBorder(nil, nil, titleLabel, closeBtn),
		messageLabel,
		container.NewHBox(revealBtn, openBtn),
	)

	fyne.Do(func() {
		toastPopup = widget.NewPopUp(content, ui.window.Canvas())

		canvasSize := ui.window.Canvas().Size()
		toastSize := fyne.NewSize(ToastWidth, ToastHeight)
		toastPopup.Resize(toastSize)
		toastPopup.Move(fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin))
		toastPopup.Show()
	})

	// Auto-hide after configured time
	go func() {
		time.Sleep(ToastAutoHide)
		fyne.Do(func() {
			if toastPopup != nil {
				toastPopup.Hide()
			}
		})
	}()
}
