package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

const testVideoRef = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

// transcriptJSON3 parses to 48 chars of text, above the default
// acceptance threshold.
const transcriptJSON3 = `{"events":[{"tStartMs":0,"segs":[{"utf8":"Hello there. General Kenobi! You are a bold one."}]}]}`

// upstream is a fake YouTube: one httptest server with per-path
// handlers and a hit counter for asserting which routes were touched.
type upstream struct {
	srv *httptest.Server

	mu       sync.Mutex
	hits     map[string]int
	handlers map[string]http.HandlerFunc
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{
		hits:     make(map[string]int),
		handlers: make(map[string]http.HandlerFunc),
	}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.hits[r.URL.Path]++
		h := u.handlers[r.URL.Path]
		u.mu.Unlock()
		if h == nil {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) handle(path string, h http.HandlerFunc) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.handlers[path] = h
}

func (u *upstream) hitCount(path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hits[path]
}

func (u *upstream) endpoints() Endpoints {
	return Endpoints{
		WatchBase:     u.srv.URL + "/watch",
		PlayerAPI:     u.srv.URL + "/player",
		TimedtextBase: u.srv.URL + "/timedtext",
	}
}

func watchPageHTML(baseURL string) string {
	return fmt.Sprintf(`<html><head><meta property="og:title" content="Test Video"></head>`+
		`<body><script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":`+
		`{"captionTracks":[{"baseUrl":"%s","languageCode":"en","kind":"asr"}]}}};</script></body></html>`, baseURL)
}

func newTestPipeline(u *upstream) *Pipeline {
	return New(Options{
		Endpoints:    u.endpoints(),
		FetchTimeout: 5 * time.Second,
	})
}

func TestFetchWatchPageStopsChain(t *testing.T) {
	u := newUpstream(t)
	u.handle("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, watchPageHTML(u.srv.URL+"/captions?lang=en&fmt=json3"))
	})
	u.handle("/captions", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, transcriptJSON3)
	})

	res, err := newTestPipeline(u).Fetch(context.Background(), testVideoRef)
	if err != nil {
		t.Fatal(err)
	}

	if res.Strategy != "watch_page" {
		t.Errorf("Strategy = %q, want watch_page", res.Strategy)
	}
	if res.Title != "Test Video" {
		t.Errorf("Title = %q", res.Title)
	}
	if res.Language != "en" {
		t.Errorf("Language = %q, want en", res.Language)
	}
	if got := res.Transcript.FullText; got != "Hello there. General Kenobi! You are a bold one." {
		t.Errorf("FullText = %q", got)
	}

	// The first strategy succeeded, so the later routes must be untouched.
	if n := u.hitCount("/player"); n != 0 {
		t.Errorf("player endpoint hit %d times", n)
	}
	if n := u.hitCount("/timedtext"); n != 0 {
		t.Errorf("timedtext endpoint hit %d times", n)
	}
}

func TestFetchPlayerAPITranslatesForeignTrack(t *testing.T) {
	u := newUpstream(t)
	// Watch page loads but embeds neither tracks nor innertube tokens.
	u.handle("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>nothing embedded</p></body></html>`)
	})
	u.handle("/player", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != androidAPIKey {
			t.Errorf("player key = %q, want android fallback", got)
		}
		fmt.Fprintf(w, `{"videoDetails":{"title":"API Title"},"captions":{"playerCaptionsTracklistRenderer":`+
			`{"captionTracks":[{"baseUrl":"%s/captions?lang=fr","languageCode":"fr"}]}}}`, u.srv.URL)
	})
	u.handle("/captions", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("tlang"); got != "en" {
			t.Errorf("tlang = %q, want en", got)
		}
		fmt.Fprint(w, transcriptJSON3)
	})

	res, err := newTestPipeline(u).Fetch(context.Background(), testVideoRef)
	if err != nil {
		t.Fatal(err)
	}
	if res.Strategy != "player_api" {
		t.Errorf("Strategy = %q, want player_api", res.Strategy)
	}
	if res.Language != "en" {
		t.Errorf("Language = %q, want en (translated on delivery)", res.Language)
	}
	if res.Title != "API Title" {
		t.Errorf("Title = %q", res.Title)
	}
}

func TestFetchAllBelowThresholdIsNoCaptions(t *testing.T) {
	u := newUpstream(t)
	u.handle("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, watchPageHTML(u.srv.URL+"/captions"))
	})
	u.handle("/player", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	u.handle("/captions", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"events":[{"tStartMs":0,"segs":[{"utf8":"hi"}]}]}`)
	})
	u.handle("/timedtext", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "hi")
	})

	_, err := newTestPipeline(u).Fetch(context.Background(), testVideoRef)
	if !errors.Is(err, ErrNoCaptions) {
		t.Fatalf("err = %v, want ErrNoCaptions", err)
	}
}

func TestFetchIdempotent(t *testing.T) {
	u := newUpstream(t)
	u.handle("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, watchPageHTML(u.srv.URL+"/captions?lang=en&fmt=json3"))
	})
	u.handle("/captions", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, transcriptJSON3)
	})

	p := newTestPipeline(u)
	var runs [][]byte
	for i := 0; i < 2; i++ {
		res, err := p.Fetch(context.Background(), testVideoRef)
		if err != nil {
			t.Fatal(err)
		}
		b, err := json.Marshal(res)
		if err != nil {
			t.Fatal(err)
		}
		runs = append(runs, b)
	}
	if !bytes.Equal(runs[0], runs[1]) {
		t.Errorf("results differ between runs:\n%s\n%s", runs[0], runs[1])
	}
}

func TestFetchCancelledContext(t *testing.T) {
	u := newUpstream(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline(u).Fetch(ctx, testVideoRef)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if n := u.hitCount("/watch"); n != 0 {
		t.Errorf("watch endpoint hit %d times after cancellation", n)
	}
}

func TestFetchTimedtextListingFallback(t *testing.T) {
	u := newUpstream(t)
	// Strategies one and two find nothing; /watch and /player 404.
	var sawTranslate bool
	u.handle("/timedtext", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") == "list" {
			fmt.Fprint(w, `<?xml version="1.0" encoding="utf-8"?><transcript_list><track lang_code="de" kind="asr"/></transcript_list>`)
			return
		}
		// The fixed combos probe lang=en, which this video lacks.
		if q.Get("lang") != "de" {
			http.NotFound(w, r)
			return
		}
		if q.Get("tlang") == "en" {
			sawTranslate = true
		}
		fmt.Fprint(w, transcriptJSON3)
	})

	res, err := newTestPipeline(u).Fetch(context.Background(), testVideoRef)
	if err != nil {
		t.Fatal(err)
	}
	if res.Strategy != "timedtext" {
		t.Errorf("Strategy = %q, want timedtext", res.Strategy)
	}
	if res.Language != "en" {
		t.Errorf("Language = %q, want en", res.Language)
	}
	if !sawTranslate {
		t.Error("delivery request for the de track did not ask for translation")
	}
}

func TestFetchInvalidReference(t *testing.T) {
	u := newUpstream(t)
	_, err := newTestPipeline(u).Fetch(context.Background(), "not a video")
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("err = %v, want ErrInvalidReference", err)
	}
	if n := u.hitCount("/watch"); n != 0 {
		t.Errorf("watch endpoint hit %d times for invalid reference", n)
	}
}
