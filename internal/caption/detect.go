package caption

import "bytes"

// Format identifies the wire format of a caption payload.
type Format string

const (
	FormatTimedXML Format = "timedtext"
	FormatJSON3    Format = "json3"
	FormatVTT      Format = "vtt"
	FormatUnknown  Format = "unknown"
)

// DetectFormat sniffs the payload's content signature. Detection is
// first-match-wins and intentionally ignores whatever fmt parameter was
// sent on the request: the timedtext endpoint does not reliably honor
// it, so the body itself is authoritative.
func DetectFormat(payload []byte) Format {
	p := bytes.TrimLeft(payload, " \t\r\n\uFEFF")
	switch {
	case hasXMLRoot(p, "transcript"), hasXMLRoot(p, "timedtext"):
		return FormatTimedXML
	case len(p) > 0 && p[0] == '{' && bytes.Contains(p, []byte(`"events"`)):
		return FormatJSON3
	case bytes.HasPrefix(p, []byte("WEBVTT")):
		return FormatVTT
	default:
		return FormatUnknown
	}
}

// hasXMLRoot reports whether the payload's root element is tag,
// tolerating an XML declaration before it.
func hasXMLRoot(p []byte, tag string) bool {
	if bytes.HasPrefix(p, []byte("<?xml")) {
		if i := bytes.IndexByte(p, '>'); i >= 0 {
			p = bytes.TrimLeft(p[i+1:], " \t\r\n")
		}
	}
	return bytes.HasPrefix(p, []byte("<"+tag))
}

// Parse dispatches on the detected format and returns the canonical
// transcript. Unknown payloads yield an empty Transcript, never an
// error: the discovery pipeline treats that as a failed attempt and
// moves on.
func Parse(payload []byte) Transcript {
	switch DetectFormat(payload) {
	case FormatTimedXML:
		return ParseTimedXML(payload)
	case FormatJSON3:
		return ParseJSON3(payload)
	case FormatVTT:
		return ParseVTT(payload)
	default:
		return Transcript{}
	}
}
