// Package build implements the packaging pipeline: it checks the external
// tooling, drives the fyne CLI to produce a platform bundle, and wraps the
// result into a distributable DMG, zip or tarball.
package build
