package caption

import (
	"bytes"
	"encoding/xml"
	"html"
	"regexp"
	"time"
)

// legacyTranscript is the older timedtext shape:
// <transcript><text start="1.36" dur="1.68">escaped text</text>…
type legacyTranscript struct {
	XMLName xml.Name      `xml:"transcript"`
	Texts   []legacyEntry `xml:"text"`
}

type legacyEntry struct {
	Start float64 `xml:"start,attr"`
	Body  string  `xml:",innerxml"`
}

// srv3Transcript is the newer shape:
// <timedtext><body><p t="1360" d="1680"><s>seg</s>…</p>…
// Times are milliseconds; text may be chardata or nested <s> segments.
type srv3Transcript struct {
	XMLName xml.Name        `xml:"timedtext"`
	Paras   []srv3Paragraph `xml:"body>p"`
}

type srv3Paragraph struct {
	StartMs int64  `xml:"t,attr"`
	Body    string `xml:",innerxml"`
}

var markupTagRe = regexp.MustCompile(`<[^>]+>`)

// ParseTimedXML parses both timed-XML variants. A payload that matches
// neither root element yields an empty Transcript.
func ParseTimedXML(payload []byte) Transcript {
	if t := parseLegacyXML(payload); !t.Empty() {
		return t
	}
	return parseSrv3XML(payload)
}

func parseLegacyXML(payload []byte) Transcript {
	var doc legacyTranscript
	if err := decodeXML(payload, &doc); err != nil {
		return Transcript{}
	}
	segs := make([]Segment, 0, len(doc.Texts))
	for _, e := range doc.Texts {
		segs = append(segs, Segment{
			Start: time.Duration(e.Start * float64(time.Second)),
			Text:  cleanXMLText(e.Body),
		})
	}
	return fromSegments(segs)
}

func parseSrv3XML(payload []byte) Transcript {
	var doc srv3Transcript
	if err := decodeXML(payload, &doc); err != nil {
		return Transcript{}
	}
	segs := make([]Segment, 0, len(doc.Paras))
	for _, p := range doc.Paras {
		segs = append(segs, Segment{
			Start: time.Duration(p.StartMs) * time.Millisecond,
			Text:  cleanXMLText(p.Body),
		})
	}
	return fromSegments(segs)
}

// decodeXML unmarshals with the HTML entity table so payloads using
// named entities beyond the XML five still decode.
func decodeXML(payload []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(payload))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	return dec.Decode(v)
}

// cleanXMLText strips nested markup (e.g. <font>, <s>, <i> wrappers)
// and decodes HTML entities from raw inner XML. Two decode passes:
// the endpoint double-escapes legacy payloads, so an apostrophe
// arrives as &amp;#39;.
func cleanXMLText(s string) string {
	s = markupTagRe.ReplaceAllString(s, "")
	return html.UnescapeString(html.UnescapeString(s))
}
