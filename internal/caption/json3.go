package caption

import (
	"bytes"
	"encoding/json"
	"time"
)

// json3Doc mirrors YouTube's json3 caption document. Only the fields
// the transcript needs are mapped; everything else (window positions,
// append flags, confidence) is ignored by the decoder.
type json3Doc struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	StartMs int64      `json:"tStartMs"`
	Segs    []json3Seg `json:"segs"`
}

type json3Seg struct {
	UTF8 string `json:"utf8"`
}

// ParseJSON3 parses a json3 events payload. Each event's segs are
// concatenated without a separator into one segment's text; events with
// no segs (window-styling records) produce nothing.
func ParseJSON3(payload []byte) Transcript {
	var doc json3Doc
	if err := json.NewDecoder(bytes.NewReader(payload)).Decode(&doc); err != nil {
		return Transcript{}
	}
	segs := make([]Segment, 0, len(doc.Events))
	for _, ev := range doc.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var text string
		for _, s := range ev.Segs {
			text += s.UTF8
		}
		segs = append(segs, Segment{
			Start: time.Duration(ev.StartMs) * time.Millisecond,
			Text:  text,
		})
	}
	return fromSegments(segs)
}
