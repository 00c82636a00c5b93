package youtube

import "errors"

// Terminal errors surfaced to callers. Upstream fetch and parse
// failures inside a pipeline run are never returned directly; they are
// absorbed as failed attempts and reported through the Sink.
var (
	// ErrInvalidReference means the input matched no recognized URL or
	// ID shape. Not retryable.
	ErrInvalidReference = errors.New("not a recognized video URL or ID")

	// ErrNoCaptions means every discovery strategy and candidate was
	// exhausted without an acceptable transcript.
	ErrNoCaptions = errors.New("no captions available for this video")
)
