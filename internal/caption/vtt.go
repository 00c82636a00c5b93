package caption

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// cueTimingRe matches a WebVTT cue timing line. Both hh:mm:ss.mmm and
// the short mm:ss.mmm form appear in the wild, with optional cue
// settings after the end timestamp.
var cueTimingRe = regexp.MustCompile(`^(?:(\d{1,2}):)?(\d{1,2}):(\d{2})\.(\d{3})\s*-->\s*(?:\d{1,2}:)?\d{1,2}:\d{2}\.\d{3}`)

// ParseVTT parses a WebVTT cue payload. A cue starts at a timing line
// and collects text lines until the next blank line. Inline markup
// (<c>, <i>, timestamps-in-text) is stripped. Auto-generated tracks
// repeat text across overlapping cues, so a cue whose text matches the
// previous one is dropped.
func ParseVTT(payload []byte) Transcript {
	if !bytes.HasPrefix(bytes.TrimLeft(payload, " \t\r\n\uFEFF"), []byte("WEBVTT")) {
		return Transcript{}
	}

	var (
		segs     []Segment
		cueStart time.Duration
		cueLines []string
		inCue    bool
		prevText string
	)

	flush := func() {
		if !inCue {
			return
		}
		text := strings.TrimSpace(strings.Join(cueLines, " "))
		if text != "" && text != prevText {
			segs = append(segs, Segment{Start: cueStart, Text: text})
			prevText = text
		}
		cueLines = nil
		inCue = false
	}

	sc := bufio.NewScanner(bytes.NewReader(payload))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if m := cueTimingRe.FindStringSubmatch(line); m != nil {
			flush()
			cueStart = vttTimestamp(m)
			inCue = true
			continue
		}
		if !inCue {
			// Header, NOTE blocks, metadata, cue identifiers.
			continue
		}
		cueLines = append(cueLines, markupTagRe.ReplaceAllString(line, ""))
	}
	flush()

	return fromSegments(segs)
}

// vttTimestamp converts the captured timing groups to a duration. The
// hours group is empty in the short mm:ss.mmm form.
func vttTimestamp(m []string) time.Duration {
	h := 0
	if m[1] != "" {
		h, _ = strconv.Atoi(m[1])
	}
	min, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	ms, _ := strconv.Atoi(m[4])
	return time.Duration(h)*time.Hour +
		time.Duration(min)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(ms)*time.Millisecond
}
