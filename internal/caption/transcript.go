// Package caption parses YouTube caption payloads into a canonical
// transcript. Three wire formats are supported (legacy/srv3 timed XML,
// json3 events, WebVTT cues); all three produce the same Segment shape,
// so callers never need to know which format the server actually sent.
package caption

import (
	"fmt"
	"strings"
	"time"
)

// Segment is one timestamped slice of a transcript.
type Segment struct {
	Start time.Duration
	Text  string
}

// TimeLabel renders the segment start as "h:mm:ss" when the offset
// reaches an hour, "m:ss" otherwise. Sub-second precision is dropped.
func (s Segment) TimeLabel() string {
	total := int(s.Start / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

// Transcript is the parsed result of one caption payload. FullText and
// Timeline are produced together from a single parse pass: FullText is
// always the timeline texts joined with single spaces.
type Transcript struct {
	FullText string
	Timeline []Segment
}

// Empty reports whether the transcript carries no content. Parsers
// return an empty Transcript (not an error) when the payload does not
// match their format, so format dispatch can cheaply try the next one.
func (t Transcript) Empty() bool {
	return len(t.Timeline) == 0
}

// fromSegments builds a Transcript from parsed segments, dropping
// empty texts and deriving FullText in the same pass.
func fromSegments(segs []Segment) Transcript {
	kept := make([]Segment, 0, len(segs))
	texts := make([]string, 0, len(segs))
	for _, s := range segs {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text == "" {
			continue
		}
		kept = append(kept, s)
		texts = append(texts, s.Text)
	}
	if len(kept) == 0 {
		return Transcript{}
	}
	return Transcript{
		FullText: strings.Join(texts, " "),
		Timeline: kept,
	}
}
