package services

import (
	"context"
	"errors"
	"fmt"

	"voice-session-bot/internal/core/domain"
	"voice-session-bot/internal/core/ports"
)

const DefaultHistoryLimit = 10

var ErrHistoryDisabled = errors.New("play history is disabled")

// HistoryService serves the per-guild play log to the front-end.
type HistoryService struct {
	repo  ports.PlayHistory
	limit int
}

func NewHistoryService(repo ports.PlayHistory, limit int) *HistoryService {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryService{repo: repo, limit: limit}
}

// Enabled is safe to call on a nil service.
func (s *HistoryService) Enabled() bool {
	return s != nil && s.repo != nil
}

func (s *HistoryService) Recent(ctx context.Context, guildID domain.GuildID) ([]domain.PlayRecord, error) {
	if !s.Enabled() {
		return nil, ErrHistoryDisabled
	}

	records, err := s.repo.RecentPlays(ctx, guildID, s.limit)
	if err != nil {
		return nil, fmt.Errorf("recent plays for guild %s: %w", guildID, err)
	}
	return records, nil
}
