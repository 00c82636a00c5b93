package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"github.com/snarg/captiond/internal/store"
	"github.com/snarg/captiond/internal/youtube"
)

// TranscriptFetcher runs the discovery pipeline for one reference.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, ref string) (*youtube.Result, error)
}

// Archive persists completed transcripts. nil disables archiving.
type Archive interface {
	Save(ctx context.Context, row *store.TranscriptRow) error
	Get(ctx context.Context, videoID string) (*store.TranscriptRow, error)
	List(ctx context.Context, limit, offset int) ([]store.TranscriptSummary, error)
}

type TranscriptsHandler struct {
	pipeline TranscriptFetcher
	archive  Archive
}

func NewTranscriptsHandler(pipeline TranscriptFetcher, archive Archive) *TranscriptsHandler {
	return &TranscriptsHandler{pipeline: pipeline, archive: archive}
}

func (h *TranscriptsHandler) Routes(r chi.Router) {
	r.Post("/transcripts", h.FetchTranscript)
	r.Get("/transcripts", h.ListTranscripts)
	r.Get("/transcripts/{videoID}", h.GetTranscript)
}

// timelineEntry is one timeline element in API responses.
type timelineEntry struct {
	Time string `json:"time"`
	Text string `json:"text"`
}

// transcriptResponse is the success body for a fetched transcript.
type transcriptResponse struct {
	VideoID    string          `json:"video_id"`
	Title      string          `json:"title,omitempty"`
	Language   string          `json:"language,omitempty"`
	Strategy   string          `json:"strategy"`
	Format     string          `json:"format"`
	Transcript string          `json:"transcript"`
	Timeline   []timelineEntry `json:"timeline"`
}

// FetchTranscript runs the discovery pipeline for the submitted URL or
// video ID and returns the parsed transcript.
func (h *TranscriptsHandler) FetchTranscript(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.URL == "" {
		WriteError(w, http.StatusBadRequest, "body must be JSON with a non-empty \"url\"")
		return
	}

	res, err := h.pipeline.Fetch(r.Context(), body.URL)
	switch {
	case err == nil:
	case errors.Is(err, youtube.ErrInvalidReference):
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, youtube.ErrNoCaptions):
		WriteError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to write.
		return
	default:
		WriteError(w, http.StatusBadGateway, "upstream failure while fetching captions")
		return
	}

	resp := toResponse(res)
	h.archiveResult(r, resp)
	WriteJSON(w, http.StatusOK, resp)
}

func toResponse(res *youtube.Result) *transcriptResponse {
	timeline := make([]timelineEntry, 0, len(res.Transcript.Timeline))
	for _, seg := range res.Transcript.Timeline {
		timeline = append(timeline, timelineEntry{Time: seg.TimeLabel(), Text: seg.Text})
	}
	return &transcriptResponse{
		VideoID:    res.VideoID.String(),
		Title:      res.Title,
		Language:   res.Language,
		Strategy:   res.Strategy,
		Format:     string(res.Format),
		Transcript: res.Transcript.FullText,
		Timeline:   timeline,
	}
}

// archiveResult stores the fetched transcript best-effort: a failed
// save is logged but never affects the response.
func (h *TranscriptsHandler) archiveResult(r *http.Request, resp *transcriptResponse) {
	if h.archive == nil {
		return
	}
	timeline, err := json.Marshal(resp.Timeline)
	if err != nil {
		return
	}
	row := &store.TranscriptRow{
		VideoID:   resp.VideoID,
		Title:     resp.Title,
		Language:  resp.Language,
		Strategy:  resp.Strategy,
		Format:    resp.Format,
		FullText:  resp.Transcript,
		Timeline:  timeline,
		CharCount: len(resp.Transcript),
	}
	if err := h.archive.Save(r.Context(), row); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("video_id", resp.VideoID).Msg("archive save failed")
	}
}

// GetTranscript returns one archived transcript.
func (h *TranscriptsHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		WriteError(w, http.StatusNotFound, "archive is disabled")
		return
	}
	row, err := h.archive.Get(r.Context(), chi.URLParam(r, "videoID"))
	if err != nil {
		WriteError(w, http.StatusNotFound, "no archived transcript for this video")
		return
	}
	WriteJSON(w, http.StatusOK, row)
}

// ListTranscripts returns archive summaries, newest first.
func (h *TranscriptsHandler) ListTranscripts(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		WriteJSON(w, http.StatusOK, map[string]any{"transcripts": []store.TranscriptSummary{}, "total": 0})
		return
	}
	p := ParsePagination(r)
	list, err := h.archive.List(r.Context(), p.Limit, p.Offset)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to list transcripts")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"transcripts": list,
		"total":       len(list),
	})
}
