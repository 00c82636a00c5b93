package youtube

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// playerResponse is the subset of YouTube's player payload the
// pipeline needs. Missing fields simply decode to zero values; nothing
// outside this closed shape is ever consulted.
type playerResponse struct {
	VideoDetails struct {
		VideoID string `json:"videoId"`
		Title   string `json:"title"`
	} `json:"videoDetails"`
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []wireCaptionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

// wireCaptionTrack is the captionTracks element shape shared by the
// embedded player payload and the player API response.
type wireCaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

func (w wireCaptionTrack) toTrack() CaptionTrack {
	return CaptionTrack{
		LanguageCode: w.LanguageCode,
		Kind:         w.Kind,
		BaseURL:      w.BaseURL,
		FormatHint:   queryParam(w.BaseURL, "fmt"),
	}
}

// pageData is everything worth harvesting from one watch-page fetch:
// the embedded caption tracks plus the tokens and title later
// strategies and the API response reuse.
type pageData struct {
	Tracks        []CaptionTrack
	Title         string
	APIKey        string
	ClientVersion string
}

var (
	apiKeyRe        = regexp.MustCompile(`"INNERTUBE_API_KEY"\s*:\s*"([^"]+)"`)
	clientVersionRe = regexp.MustCompile(`"INNERTUBE_CONTEXT_CLIENT_VERSION"\s*:\s*"([^"]+)"`)
)

// parseWatchPage extracts embedded player data from watch-page HTML.
// Two embedding patterns exist: a direct `ytInitialPlayerResponse = {…}`
// assignment inside a script, and, on some page variants, only a raw
// `"captionTracks":[…]` fragment. Both are tried, in that order.
func parseWatchPage(html []byte) (*pageData, error) {
	pd := &pageData{}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page html: %w", err)
	}

	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		pd.Title = t
	}
	if m := apiKeyRe.FindSubmatch(html); m != nil {
		pd.APIKey = string(m[1])
	}
	if m := clientVersionRe.FindSubmatch(html); m != nil {
		pd.ClientVersion = string(m[1])
	}

	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		i := strings.Index(text, "ytInitialPlayerResponse")
		if i < 0 {
			return true
		}
		blob, ok := balancedJSON(text[i:])
		if !ok {
			return true
		}
		var pr playerResponse
		if err := json.Unmarshal([]byte(blob), &pr); err != nil {
			return true
		}
		for _, w := range pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks {
			pd.Tracks = append(pd.Tracks, w.toTrack())
		}
		if pd.Title == "" {
			pd.Title = pr.VideoDetails.Title
		}
		return false
	})

	if len(pd.Tracks) == 0 {
		pd.Tracks = parseCaptionTracksFragment(html)
	}
	return pd, nil
}

// balancedJSON returns the first brace-balanced JSON object in s,
// skipping anything before the opening brace. String contents and
// escapes are honored so braces inside caption titles don't miscount.
func balancedJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// parseCaptionTracksFragment decodes a bare "captionTracks":[…] array
// embedded in the page. A json.Decoder reads just the array and ignores
// the trailing page content.
func parseCaptionTracksFragment(html []byte) []CaptionTrack {
	const needle = `"captionTracks":`
	i := bytes.Index(html, []byte(needle))
	if i < 0 {
		return nil
	}
	var wires []wireCaptionTrack
	dec := json.NewDecoder(bytes.NewReader(html[i+len(needle):]))
	if err := dec.Decode(&wires); err != nil {
		return nil
	}
	tracks := make([]CaptionTrack, 0, len(wires))
	for _, w := range wires {
		tracks = append(tracks, w.toTrack())
	}
	return tracks
}
