package format

import (
	"fmt"
	"regexp"
)

// DownloadType selects between full video and audio-only downloads.
type DownloadType string

const (
	TypeVideo DownloadType = "video"
	TypeAudio DownloadType = "audio"
)

// Quality labels offered by the UI. Labels carry a pixel height followed by
// "p"; "Best" means no height constraint.
const (
	QualityBest = "Best"

	DefaultQuality = "2160p (4K)"
)

// QualityLabels lists the selectable quality options in display order.
var QualityLabels = []string{
	QualityBest,
	"2160p (4K)",
	"1440p (2K)",
	"1080p",
	"720p",
	"480p",
	"360p",
	"240p",
	"144p",
}

// Format identifier templates understood by the download library.
const (
	// AudioFormatID is used for every audio-only download.
	AudioFormatID = "bestaudio/best"

	// UnrestrictedFormatID is used when no height constraint applies.
	UnrestrictedFormatID = "best[ext=mp4]/bestvideo+bestaudio/best"

	// Heights at or below this threshold prefer H.264 streams; some players
	// render a gray filter over non-AVC low-resolution streams.
	h264PriorityMaxHeight = 480

	h264PriorityTemplate = "best[height<=%d][ext=mp4][vcodec!=none][acodec!=none]/bestvideo[height<=%d][vcodec^=avc1]+bestaudio[acodec^=mp4a]/bestvideo[height<=%d]+bestaudio/best[height<=%d]"
	heightCappedTemplate = "best[height<=%d][ext=mp4]/bestvideo[height<=%d]+bestaudio/best"
)

var heightPattern = regexp.MustCompile(`(\d+)p`)

// Spec describes a user format selection. It is built on demand from the
// current UI state and handed to the download service; nothing stores it.
type Spec struct {
	Type      DownloadType
	Quality   string
	AudioOnly bool
	FormatID  string
}

// QualityHeight extracts the pixel height from a quality label, e.g.
// "1080p" -> 1080. "Best" and labels without a height return ok=false.
func QualityHeight(quality string) (int, bool) {
	if quality == QualityBest {
		return 0, false
	}

	match := heightPattern.FindStringSubmatch(quality)
	if match == nil {
		return 0, false
	}

	height := 0
	for _, r := range match[1] {
		height = height*10 + int(r-'0')
	}
	return height, true
}

// FormatID maps a type and quality label to the selector string consumed by
// the download library. Audio always maps to AudioFormatID; video labels that
// fail height parsing fall back to the unrestricted template.
func FormatID(typ DownloadType, quality string) string {
	if typ == TypeAudio {
		return AudioFormatID
	}

	height, ok := QualityHeight(quality)
	if !ok {
		return UnrestrictedFormatID
	}

	if height <= h264PriorityMaxHeight {
		return fmt.Sprintf(h264PriorityTemplate, height, height, height, height)
	}
	return fmt.Sprintf(heightCappedTemplate, height, height)
}

// BuildSpec assembles the full Spec record for a type/quality selection.
func BuildSpec(typ DownloadType, quality string) Spec {
	return Spec{
		Type:      typ,
		Quality:   quality,
		AudioOnly: typ == TypeAudio,
		FormatID:  FormatID(typ, quality),
	}
}

// DefaultSpec returns the selection used before the user touches anything.
func DefaultSpec() Spec {
	return BuildSpec(TypeVideo, DefaultQuality)
}
