package metrics

// PipelineSink satisfies the discovery pipeline's diagnostics sink and
// feeds the prometheus counters. Attach alongside the log sink so the
// pipeline itself stays free of metric calls.
type PipelineSink struct{}

func (PipelineSink) StrategyStarted(strategy string) {
	DiscoveryAttemptsTotal.WithLabelValues(strategy, "started").Inc()
}

func (PipelineSink) AttemptFailed(strategy, _ string, _ error) {
	DiscoveryAttemptsTotal.WithLabelValues(strategy, "failed").Inc()
}

func (PipelineSink) TranscriptAccepted(strategy, format string, chars int) {
	DiscoveryAttemptsTotal.WithLabelValues(strategy, "accepted").Inc()
	TranscriptsFetchedTotal.WithLabelValues(strategy, format).Inc()
	TranscriptChars.Observe(float64(chars))
}
