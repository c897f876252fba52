package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"voice-session-bot/internal/adapters/storage/postgres/db"
	"voice-session-bot/internal/core/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

const defaultRecentLimit = 10

// HistoryStore records which tracks each guild played.
type HistoryStore struct {
	pool *pgxpool.Pool
	conn db.DBTX
	q    *db.Queries
}

func NewHistoryStore(ctx context.Context, connString string) (*HistoryStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := newHistoryStore(pool)
	store.pool = pool

	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return store, nil
}

func newHistoryStore(conn db.DBTX) *HistoryStore {
	return &HistoryStore{
		conn: conn,
		q:    db.New(conn),
	}
}

func (s *HistoryStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *HistoryStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.conn.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *HistoryStore) RecordPlay(ctx context.Context, record domain.PlayRecord) error {
	playedAt := record.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}

	err := s.q.InsertPlay(ctx, db.InsertPlayParams{
		GuildID:     int64(record.GuildID),
		Source:      record.Source,
		Title:       record.Title,
		Url:         record.URL,
		RequestedBy: record.RequestedBy,
		PlayedAt:    pgtype.Timestamptz{Time: playedAt, Valid: true},
	})
	if err != nil {
		return fmt.Errorf("record play: %w", err)
	}
	return nil
}

// RecentPlays returns the newest plays of a guild first.
func (s *HistoryStore) RecentPlays(ctx context.Context, guildID domain.GuildID, limit int) ([]domain.PlayRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	rows, err := s.q.RecentPlays(ctx, db.RecentPlaysParams{
		GuildID: int64(guildID),
		Limit:   int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("get recent plays: %w", err)
	}

	result := make([]domain.PlayRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.PlayRecord{
			GuildID:     domain.GuildID(row.GuildID),
			Source:      row.Source,
			Title:       row.Title,
			URL:         row.Url,
			RequestedBy: row.RequestedBy,
			PlayedAt:    row.PlayedAt.Time,
		})
	}
	return result, nil
}

// PruneBefore deletes plays older than retention and reports how many went.
func (s *HistoryStore) PruneBefore(ctx context.Context, retention time.Duration) (int64, error) {
	tag, err := s.q.DeletePlaysBefore(ctx, pgtype.Interval{
		Microseconds: retention.Microseconds(),
		Valid:        true,
	})
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return tag.RowsAffected(), nil
}
