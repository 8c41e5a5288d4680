package download

// Package download implements the core download pipeline built on top of
// yt-dlp (via github.com/lrstanley/go-ytdlp). It manages task lifecycle,
// concurrency limits, format selector pass-through, and progress propagation
// to the UI.
