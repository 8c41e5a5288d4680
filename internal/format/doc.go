package format

// Package format maps the user's download type and quality selection to the
// format selector strings consumed by the download library. All functions are
// pure; quality parsing failures fall back to the unrestricted selector.
