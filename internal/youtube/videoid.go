// Package youtube implements caption discovery for YouTube videos:
// reference resolution, a prioritized chain of discovery strategies
// against the platform's undocumented endpoints, track selection, and
// the pipeline that ties them to the caption parsers.
package youtube

import (
	"fmt"
	"regexp"
)

// VideoID is YouTube's canonical 11-character video key. A VideoID is
// only ever constructed through ParseVideoID and is valid thereafter.
type VideoID string

func (id VideoID) String() string { return string(id) }

// idAlphabet is the platform's fixed identifier shape.
var idAlphabet = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// referencePatterns are the recognized URL shapes, tried in order. Each
// captures the candidate ID in group 1.
var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?(?:[^#\s]*&)?v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/live/([A-Za-z0-9_-]{11})`),
}

// ParseVideoID resolves a free-form reference (any known URL shape, or
// a bare ID) into a VideoID. Pure function, no network access.
func ParseVideoID(ref string) (VideoID, error) {
	for _, re := range referencePatterns {
		if m := re.FindStringSubmatch(ref); m != nil {
			return VideoID(m[1]), nil
		}
	}
	if idAlphabet.MatchString(ref) {
		return VideoID(ref), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidReference, ref)
}
