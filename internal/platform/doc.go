package platform

// Package platform contains OS/platform integration and external tooling glue:
// filesystem helpers, video metadata probing via the download library, and OS
// open/reveal.
