// Package ui contains the Fyne widgets and windows of the application:
// the root window, the format selector, task rows, the settings dialog
// and the supporting localization and theme pieces.
package ui
