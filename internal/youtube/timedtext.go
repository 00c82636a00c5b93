package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
)

// timedtextStrategy enumerates the caption delivery endpoint directly.
// Slowest and most exhaustive path, so it runs last: a fixed set of
// likely parameter combinations first, then the endpoint's own track
// listing with every advertised language (translated to English on
// delivery when needed).
type timedtextStrategy struct {
	client     *Client
	endpoints  Endpoints
	targetLang string
}

func (s *timedtextStrategy) name() string { return "timedtext" }

func (s *timedtextStrategy) discover(ctx context.Context, id VideoID) (*candidates, error) {
	combos := []url.Values{
		{"lang": {s.targetLang}, "kind": {"asr"}},
		{"lang": {s.targetLang}},
		{"lang": {s.targetLang}, "kind": {"asr"}, "tlang": {s.targetLang}},
	}
	urls := make([]string, 0, len(combos))
	for _, q := range combos {
		q.Set("fmt", "json3")
		urls = append(urls, s.endpoints.timedtextURL(id, q))
	}
	return &candidates{
		urls: urls,
		fallback: func(ctx context.Context) ([]string, error) {
			return s.enumerateListing(ctx, id)
		},
	}, nil
}

// trackListing is the XML document the listing endpoint returns.
type trackListing struct {
	XMLName xml.Name      `xml:"transcript_list"`
	Tracks  []listedTrack `xml:"track"`
}

type listedTrack struct {
	LangCode string `xml:"lang_code,attr"`
	Kind     string `xml:"kind,attr"`
}

// enumerateListing fetches the endpoint's own track listing and builds
// a delivery URL for every advertised language. Non-target languages
// get translate-on-delivery appended.
func (s *timedtextStrategy) enumerateListing(ctx context.Context, id VideoID) ([]string, error) {
	body, err := s.client.Get(ctx, s.endpoints.timedtextURL(id, url.Values{"type": {"list"}}))
	if err != nil {
		return nil, fmt.Errorf("fetch track listing: %w", err)
	}
	var listing trackListing
	if err := xml.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("decode track listing: %w", err)
	}
	if len(listing.Tracks) == 0 {
		return nil, fmt.Errorf("track listing is empty")
	}

	urls := make([]string, 0, len(listing.Tracks))
	for _, t := range listing.Tracks {
		q := url.Values{"lang": {t.LangCode}, "fmt": {"json3"}}
		if t.Kind != "" {
			q.Set("kind", t.Kind)
		}
		if !isEnglish(t.LangCode) {
			q.Set("tlang", s.targetLang)
		}
		urls = append(urls, s.endpoints.timedtextURL(id, q))
	}
	return urls, nil
}
