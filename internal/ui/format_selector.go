package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/devsolux/yt-dlp-gui/internal/format"
)

// FormatSelector lets the user pick the download type and, for video, a
// quality label. The quality row is hidden while audio is selected; the
// previous quality survives the toggle and is restored when switching back.
type FormatSelector struct {
	localization *Localization

	// UI components
	titleLabel    *widget.Label
	typeLabel     *widget.Label
	typeRadio     *widget.RadioGroup
	qualityLabel  *widget.Label
	qualitySelect *widget.Select
	qualityRow    *fyne.Container
	container     *fyne.Container

	// Callback invoked on every type/quality change
	onChanged func(format.Spec)
}

// NewFormatSelector creates a format selector with the default selection
// (video, highest quality label).
func NewFormatSelector(localization *Localization) *FormatSelector {
	fs := &FormatSelector{
		localization: localization,
	}

	fs.createUI()
	return fs
}

// createUI creates the UI components
func (fs *FormatSelector) createUI() {
	fs.titleLabel = widget.NewLabel(fs.localization.GetText(KeyFormatSelection))
	fs.titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	fs.typeLabel = widget.NewLabel(fs.localization.GetText(KeyFormatType))

	fs.typeRadio = widget.NewRadioGroup(
		[]string{string(format.TypeVideo), string(format.TypeAudio)},
		fs.onTypeChange,
	)
	fs.typeRadio.Horizontal = true
	fs.typeRadio.Required = true

	fs.qualityLabel = widget.NewLabel(fs.localization.GetText(KeyFormatQuality))
	fs.qualitySelect = widget.NewSelect(format.QualityLabels, fs.onQualityChange)

	typeRow := container.NewBorder(nil, nil, fs.typeLabel, nil, fs.typeRadio)
	fs.qualityRow = container.NewBorder(nil, nil, fs.qualityLabel, nil, fs.qualitySelect)

	fs.container = container.NewVBox(fs.titleLabel, typeRow, fs.qualityRow)

	// Apply defaults; onChanged is not wired yet so this is silent
	fs.qualitySelect.SetSelected(format.DefaultQuality)
	fs.typeRadio.SetSelected(string(format.TypeVideo))
}

// Container returns the root canvas object for embedding in a layout
func (fs *FormatSelector) Container() fyne.CanvasObject {
	return fs.container
}

// SetOnChanged registers the callback invoked when the selection changes
func (fs *FormatSelector) SetOnChanged(callback func(format.Spec)) {
	fs.onChanged = callback
}

// Selected returns the Spec for the current widget state
func (fs *FormatSelector) Selected() format.Spec {
	typ := format.DownloadType(fs.typeRadio.Selected)
	if typ != format.TypeAudio {
		typ = format.TypeVideo
	}

	quality := fs.qualitySelect.Selected
	if quality == "" {
		quality = format.DefaultQuality
	}

	return format.BuildSpec(typ, quality)
}

// SetSpec applies an external selection to the widget
func (fs *FormatSelector) SetSpec(spec format.Spec) {
	if spec.Quality != "" {
		fs.qualitySelect.SetSelected(spec.Quality)
	}

	if spec.AudioOnly {
		fs.typeRadio.SetSelected(string(format.TypeAudio))
	} else {
		fs.typeRadio.SetSelected(string(format.TypeVideo))
	}
}

// Reset restores the default selection
func (fs *FormatSelector) Reset() {
	fs.qualitySelect.SetSelected(format.DefaultQuality)
	fs.typeRadio.SetSelected(string(format.TypeVideo))
}

// onTypeChange handles download type change
func (fs *FormatSelector) onTypeChange(value string) {
	// Quality only applies to video; the select keeps its value while
	// hidden so switching back restores the prior quality.
	if value == string(format.TypeAudio) {
		fs.qualityRow.Hide()
	} else {
		fs.qualityRow.Show()
	}

	fs.notifyChanged()
}

// onQualityChange handles quality selection change
func (fs *FormatSelector) onQualityChange(string) {
	fs.notifyChanged()
}

// notifyChanged invokes the change callback if set
func (fs *FormatSelector) notifyChanged() {
	if fs.onChanged != nil {
		fs.onChanged(fs.Selected())
	}
}

// refreshTexts updates labels after a language change
func (fs *FormatSelector) refreshTexts() {
	fs.titleLabel.SetText(fs.localization.GetText(KeyFormatSelection))
	fs.typeLabel.SetText(fs.localization.GetText(KeyFormatType))
	fs.qualityLabel.SetText(fs.localization.GetText(KeyFormatQuality))
}
