package youtube

import "github.com/rs/zerolog"

// Sink receives diagnostics events from a pipeline run. The pipeline
// itself performs no logging or metric side effects; inject a sink to
// observe it. Implementations must be safe for concurrent use since
// independent requests run their own pipelines in parallel.
type Sink interface {
	StrategyStarted(strategy string)
	AttemptFailed(strategy, candidate string, err error)
	TranscriptAccepted(strategy, format string, chars int)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) StrategyStarted(string)                 {}
func (NopSink) AttemptFailed(string, string, error)    {}
func (NopSink) TranscriptAccepted(string, string, int) {}

// LogSink writes pipeline events to a zerolog logger.
type LogSink struct {
	Log zerolog.Logger
}

func (s LogSink) StrategyStarted(strategy string) {
	s.Log.Debug().Str("strategy", strategy).Msg("discovery strategy starting")
}

func (s LogSink) AttemptFailed(strategy, candidate string, err error) {
	s.Log.Debug().
		Str("strategy", strategy).
		Str("candidate", candidate).
		Err(err).
		Msg("discovery attempt failed")
}

func (s LogSink) TranscriptAccepted(strategy, format string, chars int) {
	s.Log.Info().
		Str("strategy", strategy).
		Str("format", format).
		Int("chars", chars).
		Msg("transcript accepted")
}

// MultiSink fans events out to several sinks.
type MultiSink []Sink

func (m MultiSink) StrategyStarted(strategy string) {
	for _, s := range m {
		s.StrategyStarted(strategy)
	}
}

func (m MultiSink) AttemptFailed(strategy, candidate string, err error) {
	for _, s := range m {
		s.AttemptFailed(strategy, candidate, err)
	}
}

func (m MultiSink) TranscriptAccepted(strategy, format string, chars int) {
	for _, s := range m {
		s.TranscriptAccepted(strategy, format, chars)
	}
}
