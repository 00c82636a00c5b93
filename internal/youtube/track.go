package youtube

import "strings"

// CaptionTrack is one available caption stream for a video, as reported
// by a discovery strategy. Never mutated after creation.
type CaptionTrack struct {
	LanguageCode string
	Kind         string // "asr" for machine-generated, "" for manual
	BaseURL      string
	FormatHint   string // fmt parameter observed on BaseURL, if any
}

// AutoGenerated reports whether the track is machine-generated.
func (t CaptionTrack) AutoGenerated() bool { return t.Kind == "asr" }

// isEnglish matches "en" plus regional and dialect variants ("en-US",
// "en-GB", "en.US").
func isEnglish(code string) bool {
	return code == "en" ||
		strings.HasPrefix(code, "en-") ||
		strings.HasPrefix(code, "en.")
}

// SelectTrack picks the best candidate from a discovered track list.
// Priority: English machine-generated, then English manual, then any
// machine-generated, then the first track. Machine-generated English is
// preferred because manual tracks are frequently stale uploads or
// partial translations while asr tracks follow the actual audio.
func SelectTrack(tracks []CaptionTrack) (CaptionTrack, bool) {
	if len(tracks) == 0 {
		return CaptionTrack{}, false
	}
	for _, t := range tracks {
		if isEnglish(t.LanguageCode) && t.AutoGenerated() {
			return t, true
		}
	}
	for _, t := range tracks {
		if isEnglish(t.LanguageCode) {
			return t, true
		}
	}
	for _, t := range tracks {
		if t.AutoGenerated() {
			return t, true
		}
	}
	return tracks[0], true
}
