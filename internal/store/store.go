// Package store is the optional Postgres transcript archive. Completed
// pipeline results are saved here for later listing; the discovery
// pipeline never reads from it.
package store

import (
	"context"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type Store struct {
	Pool *pgxpool.Pool
	log  zerolog.Logger
}

func Connect(ctx context.Context, databaseURL string, log zerolog.Logger) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	cfg.MaxConns = 10
	cfg.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info().
		Str("url", maskDSN(databaseURL)).
		Int32("max_conns", cfg.MaxConns).
		Msg("archive database connected")

	return &Store{Pool: pool, log: log}, nil
}

func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Pool.Ping(ctx)
}

func (s *Store) Close() {
	s.log.Info().Msg("closing archive pool")
	s.Pool.Close()
}

func maskDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "***"
	}
	if u.User != nil {
		if _, hasPass := u.User.Password(); hasPass {
			u.User = url.UserPassword(u.User.Username(), "***")
		}
	}
	return u.String()
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transcripts (
	video_id    TEXT PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	language    TEXT NOT NULL DEFAULT '',
	strategy    TEXT NOT NULL,
	format      TEXT NOT NULL,
	full_text   TEXT NOT NULL,
	timeline    JSONB NOT NULL,
	char_count  INT NOT NULL,
	fetched_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS transcripts_fetched_at_idx ON transcripts (fetched_at DESC);
`

// InitSchema applies the schema on a fresh database. Idempotent.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.Pool.Exec(ctx, schemaSQL); err != nil {
		return err
	}
	s.log.Debug().Msg("archive schema ready")
	return nil
}
