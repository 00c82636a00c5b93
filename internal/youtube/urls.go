package youtube

import (
	"fmt"
	"net/url"
)

// Endpoints holds the upstream base URLs. Tests point these at local
// httptest servers; production uses the defaults.
type Endpoints struct {
	WatchBase     string // watch page, takes ?v=<id>
	PlayerAPI     string // innertube player endpoint, takes ?key=<key>
	TimedtextBase string // caption delivery endpoint
}

// DefaultEndpoints returns the production YouTube endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		WatchBase:     "https://www.youtube.com/watch",
		PlayerAPI:     "https://www.youtube.com/youtubei/v1/player",
		TimedtextBase: "https://video.google.com/timedtext",
	}
}

func (e Endpoints) watchURL(id VideoID) string {
	return fmt.Sprintf("%s?v=%s", e.WatchBase, id)
}

func (e Endpoints) playerURL(apiKey string) string {
	return fmt.Sprintf("%s?key=%s&prettyPrint=false", e.PlayerAPI, url.QueryEscape(apiKey))
}

func (e Endpoints) timedtextURL(id VideoID, params url.Values) string {
	params.Set("v", string(id))
	return e.TimedtextBase + "?" + params.Encode()
}

// queryParam returns the named query parameter of rawURL, or "".
func queryParam(rawURL, name string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get(name)
}

// captionFetchURL prepares the delivery URL for a selected track: the
// preferred wire format is requested explicitly (though the server may
// not honor it — parse-time detection stays authoritative), and
// non-English tracks get translate-on-delivery to the target language.
func captionFetchURL(track CaptionTrack, targetLang string) string {
	u, err := url.Parse(track.BaseURL)
	if err != nil {
		return track.BaseURL
	}
	q := u.Query()
	if q.Get("fmt") == "" {
		fmtParam := track.FormatHint
		if fmtParam == "" {
			fmtParam = "json3"
		}
		q.Set("fmt", fmtParam)
	}
	if targetLang != "" && !isEnglish(track.LanguageCode) && q.Get("tlang") == "" {
		q.Set("tlang", targetLang)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
