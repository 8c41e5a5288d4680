package ui

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/devsolux/yt-dlp-gui/internal/model"
)

// File size formatting constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// Progress calculation constants
const (
	MaxProgressPercent  = 100
	MinProgressPercent  = 1
	RoundingCoefficient = 0.5
)

// formatFileSize formats file size in bytes to human readable format
func formatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}

// sanitizeText removes control characters that break single-line labels
func sanitizeText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.TrimSpace(s)
}

// TaskRow represents a compact task row widget
type TaskRow struct {
	widget.BaseWidget

	task         *model.DownloadTask
	localization *Localization

	// UI components
	titleLabel    *widget.Label
	detailLabel   *widget.Label // format summary and file size
	statusLabel   *widget.Label
	progressLabel *widget.Label
	speedEtaLabel *widget.Label

	// Action buttons
	startStopBtn *widget.Button
	revealBtn    *widget.Button // reveal in file manager
	playBtn      *widget.Button // open file with default app
	copyBtn      *widget.Button
	removeBtn    *widget.Button

	// Callbacks
	onStartStop func(taskID string)
	onReveal    func(filePath string)
	onOpen      func(filePath string)
	onCopyPath  func(filePath string)
	onRemove    func(taskID string)
}

// NewTaskRow creates a new task row widget
func NewTaskRow(task *model.DownloadTask, localization *Localization) *TaskRow {
	if task == nil {
		log.Printf("Warning: NewTaskRow called with nil task")
		task = &model.DownloadTask{
			ID:     "unknown",
			Status: model.TaskStatusPending,
		}
	}

	tr := &TaskRow{
		task:         task,
		localization: localization,
	}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	tr.updateFromTask()
	return tr
}

// SetCallbacks sets the action callbacks
func (tr *TaskRow) SetCallbacks(
	onStartStop func(taskID string),
	onReveal func(filePath string),
	onOpen func(filePath string),
	onCopyPath func(filePath string),
	onRemove func(taskID string),
) {
	tr.onStartStop = onStartStop
	tr.onReveal = onReveal
	tr.onOpen = onOpen
	tr.onCopyPath = onCopyPath
	tr.onRemove = onRemove
}

// UpdateTask updates the row with new task data
func (tr *TaskRow) UpdateTask(task *model.DownloadTask) {
	if task == nil {
		log.Printf("Warning: UpdateTask called with nil task for existing task %s", tr.task.ID)
		return
	}

	tr.task = task
	tr.updateFromTask()
	tr.Refresh()
}

// hasFilePath reports whether the task's output path points at a local file,
// not a URL or a bare filename still missing its directory.
func (tr *TaskRow) hasFilePath() bool {
	p := tr.task.OutputPath
	if p == "" || strings.HasPrefix(p, "http") {
		return false
	}
	return strings.Contains(p, "/") || strings.Contains(p, "\\")
}

// createUI creates the UI components
func (tr *TaskRow) createUI() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis
	tr.titleLabel.Alignment = fyne.TextAlignLeading

	tr.detailLabel = widget.NewLabel("")
	tr.detailLabel.Alignment = fyne.TextAlignLeading

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing
	tr.progressLabel = widget.NewLabel("")
	tr.progressLabel.Alignment = fyne.TextAlignTrailing
	tr.speedEtaLabel = widget.NewLabel("")
	tr.speedEtaLabel.Alignment = fyne.TextAlignTrailing
	tr.speedEtaLabel.TextStyle = fyne.TextStyle{Monospace: true}

	tr.startStopBtn = widget.NewButton(tr.localization.GetText(KeyStop), func() {
		if tr.onStartStop != nil {
			tr.onStartStop(tr.task.ID)
		}
	})
	tr.startStopBtn.Importance = widget.MediumImportance

	tr.revealBtn = widget.NewButton(IconFolder, func() {
		if tr.onReveal == nil {
			return
		}
		if !tr.hasFilePath() {
			widget.ShowPopUp(widget.NewLabel("File path not available yet"),
				fyne.CurrentApp().Driver().CanvasForObject(tr.revealBtn))
			return
		}
		tr.onReveal(tr.task.OutputPath)
	})
	tr.revealBtn.Importance = widget.MediumImportance

	tr.playBtn = widget.NewButton(IconFile, func() {
		if tr.onOpen != nil && tr.hasFilePath() {
			tr.onOpen(tr.task.OutputPath)
		}
	})
	tr.playBtn.Importance = widget.MediumImportance

	tr.copyBtn = widget.NewButton(IconCopy, func() {
		if tr.onCopyPath != nil && tr.hasFilePath() {
			tr.onCopyPath(tr.task.OutputPath)
		}
	})
	tr.copyBtn.Importance = widget.MediumImportance

	tr.removeBtn = widget.NewButton(IconClose, func() {
		if tr.onRemove != nil {
			tr.onRemove(tr.task.ID)
		}
	})
	tr.removeBtn.Importance = widget.LowImportance
}

// updateFromTask updates UI components based on task state
func (tr *TaskRow) updateFromTask() {
	if tr.task == nil {
		log.Printf("Warning: updateFromTask called with nil task")
		return
	}

	tr.titleLabel.SetText(sanitizeText(tr.task.GetDisplayTitle()))

	detail := tr.task.GetFormatSummary()
	if tr.task.FileSize > 0 {
		detail += MiddleDotSeparator + formatFileSize(tr.task.FileSize)
	}
	tr.detailLabel.SetText(detail)

	// Status label importance tracks the state
	switch tr.task.Status {
	case model.TaskStatusError:
		tr.statusLabel.Importance = widget.DangerImportance
	case model.TaskStatusCompleted:
		tr.statusLabel.Importance = widget.SuccessImportance
	case model.TaskStatusDownloading:
		tr.statusLabel.Importance = widget.HighImportance
	default:
		tr.statusLabel.Importance = widget.MediumImportance
	}
	tr.statusLabel.SetText(tr.task.Status.String())

	if tr.task.Status == model.TaskStatusCompleted {
		tr.progressLabel.SetText("")
	} else {
		tr.progressLabel.SetText(fmt.Sprintf(ProgressLabelFormat, tr.effectivePercent()))
	}

	speedEtaText := ""
	if tr.task.Status == model.TaskStatusDownloading {
		if tr.task.Speed != "" {
			speedEtaText = tr.task.Speed
		}
		if tr.task.ETASec > 0 {
			if speedEtaText != "" {
				speedEtaText += MiddleDotSeparator
			}
			speedEtaText += tr.task.GetETAString()
		}
		if speedEtaText == "" {
			speedEtaText = DashPlaceholder
		}
	} else if tr.task.Status == model.TaskStatusError && tr.task.LastError != "" {
		speedEtaText = sanitizeText(tr.task.LastError)
	}
	tr.speedEtaLabel.SetText(speedEtaText)

	tr.updateButtons()
}

// effectivePercent derives a display percent from Percent or fractional
// Progress, never showing 0 once any bytes have arrived.
func (tr *TaskRow) effectivePercent() int {
	percent := tr.task.Percent
	if tr.task.Status == model.TaskStatusCompleted {
		return MaxProgressPercent
	}
	if percent <= 0 && tr.task.Progress > 0 {
		percent = int(tr.task.Progress*MaxProgressPercent + RoundingCoefficient)
		if percent == 0 {
			percent = MinProgressPercent
		}
	}
	if percent < 0 {
		percent = 0
	}
	if percent > MaxProgressPercent {
		percent = MaxProgressPercent
	}
	return percent
}

// updateButtons updates button states based on task status
func (tr *TaskRow) updateButtons() {
	switch {
	case tr.task.Status.CanRestart():
		tr.startStopBtn.Enable()
		tr.startStopBtn.SetText(tr.localization.GetText(KeyStart))
	case tr.task.Status.IsActive():
		tr.startStopBtn.Enable()
		tr.startStopBtn.SetText(tr.localization.GetText(KeyStop))
	default:
		tr.startStopBtn.Disable()
		tr.startStopBtn.SetText(tr.localization.GetText(KeyStart))
	}

	if tr.hasFilePath() {
		tr.revealBtn.Enable()
		tr.playBtn.Enable()
		tr.copyBtn.Enable()
	} else {
		tr.revealBtn.Disable()
		tr.playBtn.Disable()
		tr.copyBtn.Disable()
	}

	// Removing a running download is refused by the service; mirror that here
	if tr.task.Status.IsActive() {
		tr.removeBtn.Disable()
	} else {
		tr.removeBtn.Enable()
	}
}

// CreateRenderer creates the widget renderer
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	return &taskRowRenderer{taskRow: tr}
}

// taskRowRenderer renders the task row widget
type taskRowRenderer struct {
	taskRow *TaskRow
	layout  *fyne.Container
}

// Layout arranges the components
func (r *taskRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	if size.Height < RowMinHeight {
		size.Height = RowMinHeight
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size
func (r *taskRowRenderer) MinSize() fyne.Size {
	if r.layout != nil {
		return r.layout.MinSize()
	}
	return fyne.NewSize(RowMinWidth, RowMinHeight)
}

// Refresh refreshes the renderer
func (r *taskRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

// Objects returns the container objects
func (r *taskRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *taskRowRenderer) Destroy() {}

// createLayout creates the main layout
func (r *taskRowRenderer) createLayout() {
	tr := r.taskRow

	leftSide := container.NewVBox(tr.titleLabel, tr.detailLabel)

	// Fix label widths with a transparent rectangle underneath so the
	// right cluster does not jitter as text changes
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	rightSide := container.NewVBox(
		fixedWidth(StatusLabelWidth, tr.statusLabel),
		container.NewHBox(
			fixedWidth(SpeedLabelWidth, tr.speedEtaLabel),
			fixedWidth(PercentLabelWidth, tr.progressLabel),
		),
	)

	actionRow := container.NewHBox(
		tr.startStopBtn,
		tr.revealBtn,
		tr.playBtn,
		tr.copyBtn,
		tr.removeBtn,
	)

	rightCluster := container.NewBorder(nil, nil, nil, actionRow, rightSide)
	mainContent := container.NewBorder(nil, nil, nil, rightCluster, leftSide)

	r.layout = container.NewVBox(
		mainContent,
		widget.NewSeparator(),
	)
}
