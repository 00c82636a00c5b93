package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// TranscriptRow is one archived transcript.
type TranscriptRow struct {
	VideoID   string          `json:"video_id"`
	Title     string          `json:"title,omitempty"`
	Language  string          `json:"language,omitempty"`
	Strategy  string          `json:"strategy"`
	Format    string          `json:"format"`
	FullText  string          `json:"transcript"`
	Timeline  json.RawMessage `json:"timeline"`
	CharCount int             `json:"char_count"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// TranscriptSummary is the listing view: no body, no timeline.
type TranscriptSummary struct {
	VideoID   string    `json:"video_id"`
	Title     string    `json:"title,omitempty"`
	Language  string    `json:"language,omitempty"`
	Strategy  string    `json:"strategy"`
	Format    string    `json:"format"`
	CharCount int       `json:"char_count"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Save upserts an archived transcript. A refetch of the same video
// replaces the stored copy.
func (s *Store) Save(ctx context.Context, row *TranscriptRow) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO transcripts (
			video_id, title, language, strategy, format,
			full_text, timeline, char_count, fetched_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (video_id) DO UPDATE SET
			title = EXCLUDED.title,
			language = EXCLUDED.language,
			strategy = EXCLUDED.strategy,
			format = EXCLUDED.format,
			full_text = EXCLUDED.full_text,
			timeline = EXCLUDED.timeline,
			char_count = EXCLUDED.char_count,
			fetched_at = now()
	`,
		row.VideoID, row.Title, row.Language, row.Strategy, row.Format,
		row.FullText, row.Timeline, row.CharCount,
	)
	if err != nil {
		return fmt.Errorf("insert transcript: %w", err)
	}
	return nil
}

// Get returns one archived transcript by video ID.
func (s *Store) Get(ctx context.Context, videoID string) (*TranscriptRow, error) {
	var row TranscriptRow
	err := s.Pool.QueryRow(ctx, `
		SELECT video_id, title, language, strategy, format,
			full_text, timeline, char_count, fetched_at
		FROM transcripts
		WHERE video_id = $1
	`, videoID).Scan(
		&row.VideoID, &row.Title, &row.Language, &row.Strategy, &row.Format,
		&row.FullText, &row.Timeline, &row.CharCount, &row.FetchedAt,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns archive summaries, newest first.
func (s *Store) List(ctx context.Context, limit, offset int) ([]TranscriptSummary, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT video_id, title, language, strategy, format, char_count, fetched_at
		FROM transcripts
		ORDER BY fetched_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	defer rows.Close()

	out := []TranscriptSummary{}
	for rows.Next() {
		var t TranscriptSummary
		if err := rows.Scan(&t.VideoID, &t.Title, &t.Language, &t.Strategy,
			&t.Format, &t.CharCount, &t.FetchedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
