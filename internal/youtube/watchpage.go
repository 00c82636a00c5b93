package youtube

import (
	"context"
	"fmt"
)

// watchPageStrategy scrapes the watch page for the embedded player
// payload. Richest per-track metadata, so it runs first.
type watchPageStrategy struct {
	client    *Client
	endpoints Endpoints
}

func (s *watchPageStrategy) name() string { return "watch_page" }

func (s *watchPageStrategy) discover(ctx context.Context, id VideoID) (*candidates, error) {
	html, err := s.client.Get(ctx, s.endpoints.watchURL(id))
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}
	pd, err := parseWatchPage(html)
	if err != nil {
		return nil, err
	}
	if len(pd.Tracks) == 0 {
		return nil, fmt.Errorf("no caption tracks embedded in watch page")
	}
	return &candidates{tracks: pd.Tracks, title: pd.Title}, nil
}
