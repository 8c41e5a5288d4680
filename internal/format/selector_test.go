package format

import (
	"strings"
	"testing"
)

func TestQualityHeight(t *testing.T) {
	tests := []struct {
		quality string
		height  int
		ok      bool
	}{
		{"2160p (4K)", 2160, true},
		{"1440p (2K)", 1440, true},
		{"1080p", 1080, true},
		{"720p", 720, true},
		{"480p", 480, true},
		{"144p", 144, true},
		{"Best", 0, false},
		{"", 0, false},
		{"HD", 0, false},
	}

	for _, test := range tests {
		height, ok := QualityHeight(test.quality)
		if ok != test.ok {
			t.Errorf("QualityHeight(%q) ok = %v, expected %v", test.quality, ok, test.ok)
			continue
		}
		if height != test.height {
			t.Errorf("QualityHeight(%q) = %d, expected %d", test.quality, height, test.height)
		}
	}
}

func TestFormatID_Audio(t *testing.T) {
	// Audio ignores whatever quality the UI happens to hold.
	qualities := append([]string{"garbage", ""}, QualityLabels...)
	for _, quality := range qualities {
		id := FormatID(TypeAudio, quality)
		if id != AudioFormatID {
			t.Errorf("FormatID(audio, %q) = %q, expected %q", quality, id, AudioFormatID)
		}
	}
}

func TestFormatID_Best(t *testing.T) {
	id := FormatID(TypeVideo, QualityBest)
	if id != UnrestrictedFormatID {
		t.Errorf("FormatID(video, Best) = %q, expected %q", id, UnrestrictedFormatID)
	}

	if strings.Contains(id, "height<=") {
		t.Errorf("Best selection must carry no height constraint, got %q", id)
	}
}

func TestFormatID_HeightCapped(t *testing.T) {
	id := FormatID(TypeVideo, "1080p")
	expected := "best[height<=1080][ext=mp4]/bestvideo[height<=1080]+bestaudio/best"
	if id != expected {
		t.Errorf("FormatID(video, 1080p) = %q, expected %q", id, expected)
	}
}

func TestFormatID_H264Priority(t *testing.T) {
	// 480p and below prefer H.264 video plus mp4a audio.
	for _, quality := range []string{"480p", "360p", "240p", "144p"} {
		id := FormatID(TypeVideo, quality)
		if !strings.Contains(id, "vcodec^=avc1") {
			t.Errorf("FormatID(video, %s) = %q, expected H.264 priority selector", quality, id)
		}
		if !strings.Contains(id, "acodec^=mp4a") {
			t.Errorf("FormatID(video, %s) = %q, expected mp4a audio preference", quality, id)
		}
	}

	// Above the threshold the plain height-capped template applies.
	id := FormatID(TypeVideo, "720p")
	if strings.Contains(id, "avc1") {
		t.Errorf("FormatID(video, 720p) = %q, should not force H.264", id)
	}
}

func TestFormatID_UnparseableFallsBack(t *testing.T) {
	id := FormatID(TypeVideo, "not a quality")
	if id != UnrestrictedFormatID {
		t.Errorf("FormatID(video, unparseable) = %q, expected fallback %q", id, UnrestrictedFormatID)
	}
}

func TestBuildSpec(t *testing.T) {
	spec := BuildSpec(TypeAudio, "1080p")
	if !spec.AudioOnly {
		t.Error("BuildSpec(audio) should set AudioOnly")
	}
	if spec.FormatID != AudioFormatID {
		t.Errorf("BuildSpec(audio).FormatID = %q, expected %q", spec.FormatID, AudioFormatID)
	}
	if spec.Quality != "1080p" {
		t.Errorf("BuildSpec should preserve quality label, got %q", spec.Quality)
	}

	spec = BuildSpec(TypeVideo, "2160p (4K)")
	if spec.AudioOnly {
		t.Error("BuildSpec(video) should not set AudioOnly")
	}
	if !strings.Contains(spec.FormatID, "height<=2160") {
		t.Errorf("BuildSpec(video, 2160p).FormatID = %q, expected height cap 2160", spec.FormatID)
	}
}

func TestDefaultSpec(t *testing.T) {
	spec := DefaultSpec()
	if spec.Type != TypeVideo {
		t.Errorf("DefaultSpec type = %s, expected video", spec.Type)
	}
	if spec.Quality != DefaultQuality {
		t.Errorf("DefaultSpec quality = %q, expected %q", spec.Quality, DefaultQuality)
	}
}
