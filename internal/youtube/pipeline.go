package youtube

import (
	"context"
	"fmt"
	"time"

	"github.com/snarg/captiond/internal/caption"
)

// DefaultMinChars is the minimum FullText length for a parsed payload
// to count as a transcript. The delivery endpoint happily returns 200
// with an empty or one-word document for missing tracks.
const DefaultMinChars = 32

// strategy is one route to caption candidates. Strategies are tried
// strictly in order; any failure advances the chain.
type strategy interface {
	name() string
	discover(ctx context.Context, id VideoID) (*candidates, error)
}

// candidates is what a strategy produced: either metadata-rich tracks
// (run through SelectTrack) or ready delivery URLs tried in order. The
// optional fallback is invoked only after every url has failed, so the
// expensive listing enumeration never runs when a cheaper combo hits.
type candidates struct {
	tracks   []CaptionTrack
	urls     []string
	title    string
	fallback func(ctx context.Context) ([]string, error)
}

// Result is the pipeline's output: the canonical transcript plus the
// provenance callers surface alongside it.
type Result struct {
	VideoID    VideoID
	Title      string
	Language   string
	Strategy   string
	Format     caption.Format
	Transcript caption.Transcript
}

// Options configures a Pipeline. Zero values get sensible defaults.
type Options struct {
	Endpoints    Endpoints
	FetchTimeout time.Duration
	MinChars     int
	TargetLang   string
	Sink         Sink
}

// Pipeline runs reference resolution, the discovery strategy chain,
// and payload parsing, stopping at the first accepted transcript. A
// Pipeline is stateless between runs and safe for concurrent use.
type Pipeline struct {
	client     *Client
	strategies []strategy
	minChars   int
	targetLang string
	sink       Sink
}

// New builds a pipeline with the standard strategy order: watch page,
// player API, timedtext enumeration.
func New(opts Options) *Pipeline {
	if opts.Endpoints == (Endpoints{}) {
		opts.Endpoints = DefaultEndpoints()
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 15 * time.Second
	}
	if opts.MinChars <= 0 {
		opts.MinChars = DefaultMinChars
	}
	if opts.TargetLang == "" {
		opts.TargetLang = "en"
	}
	if opts.Sink == nil {
		opts.Sink = NopSink{}
	}

	client := NewClient(opts.FetchTimeout)
	return &Pipeline{
		client: client,
		strategies: []strategy{
			&watchPageStrategy{client: client, endpoints: opts.Endpoints},
			&playerAPIStrategy{client: client, endpoints: opts.Endpoints},
			&timedtextStrategy{client: client, endpoints: opts.Endpoints, targetLang: opts.TargetLang},
		},
		minChars:   opts.MinChars,
		targetLang: opts.TargetLang,
		sink:       opts.Sink,
	}
}

// Fetch resolves ref and runs the strategy chain until one candidate
// yields an acceptable transcript. Only ErrInvalidReference and
// ErrNoCaptions are returned; every other failure is absorbed as a
// failed attempt and reported through the sink. Cancelling ctx stops
// further fetches immediately.
func (p *Pipeline) Fetch(ctx context.Context, ref string) (*Result, error) {
	id, err := ParseVideoID(ref)
	if err != nil {
		return nil, err
	}

	for _, st := range p.strategies {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.sink.StrategyStarted(st.name())

		c, err := st.discover(ctx, id)
		if err != nil {
			p.sink.AttemptFailed(st.name(), "discover", err)
			continue
		}

		if res := p.tryCandidates(ctx, st, id, c); res != nil {
			return res, nil
		}
	}
	return nil, fmt.Errorf("%w (video %s)", ErrNoCaptions, id)
}

// tryCandidates runs one strategy's candidates through fetch, parse,
// and the acceptance check. Returns nil when everything failed.
func (p *Pipeline) tryCandidates(ctx context.Context, st strategy, id VideoID, c *candidates) *Result {
	if len(c.tracks) > 0 {
		track, _ := SelectTrack(c.tracks)
		fetchURL := captionFetchURL(track, p.targetLang)
		if res := p.fetchAndParse(ctx, st, fetchURL); res != nil {
			res.VideoID = id
			res.Title = c.title
			res.Language = resultLanguage(track, p.targetLang)
			return res
		}
		return nil
	}

	urls := c.urls
	for {
		for _, u := range urls {
			if ctx.Err() != nil {
				return nil
			}
			if res := p.fetchAndParse(ctx, st, u); res != nil {
				res.VideoID = id
				res.Title = c.title
				res.Language = p.targetLang
				return res
			}
		}
		if c.fallback == nil {
			return nil
		}
		more, err := c.fallback(ctx)
		if err != nil {
			p.sink.AttemptFailed(st.name(), "listing", err)
			return nil
		}
		urls, c.fallback = more, nil
	}
}

// fetchAndParse fetches one delivery URL, dispatches on the detected
// format, and applies the minimum-content acceptance check.
func (p *Pipeline) fetchAndParse(ctx context.Context, st strategy, fetchURL string) *Result {
	payload, err := p.client.Get(ctx, fetchURL)
	if err != nil {
		p.sink.AttemptFailed(st.name(), fetchURL, err)
		return nil
	}

	format := caption.DetectFormat(payload)
	tr := caption.Parse(payload)
	if len(tr.FullText) < p.minChars {
		p.sink.AttemptFailed(st.name(), fetchURL,
			fmt.Errorf("content below minimum (%d < %d chars)", len(tr.FullText), p.minChars))
		return nil
	}

	p.sink.TranscriptAccepted(st.name(), string(format), len(tr.FullText))
	return &Result{
		Strategy:   st.name(),
		Format:     format,
		Transcript: tr,
	}
}

// resultLanguage reports the language of the delivered payload: the
// track's own code, or the target language when translate-on-delivery
// was requested.
func resultLanguage(track CaptionTrack, targetLang string) string {
	if !isEnglish(track.LanguageCode) {
		return targetLang
	}
	return track.LanguageCode
}
