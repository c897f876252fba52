package ports

import (
	"context"

	"voice-session-bot/internal/core/domain"
)

// Transport joins and leaves voice channels.
type Transport interface {
	Connect(ctx context.Context, guildID domain.GuildID, channelID string) (Connection, error)
	Disconnect(ctx context.Context, guildID domain.GuildID) error
}

// Connection is the live voice handle of one guild.
type Connection interface {
	Play(track domain.TrackDescriptor) error
	Pause() error
	Resume() error
	Stop() error
}

type MediaResolver interface {
	Resolve(ctx context.Context, source string) (domain.TrackDescriptor, error)
}

type MetadataCache interface {
	Get(ctx context.Context, source string) (*domain.TrackDescriptor, error)
	Set(ctx context.Context, source string, track domain.TrackDescriptor) error
}

type PlayHistory interface {
	RecordPlay(ctx context.Context, record domain.PlayRecord) error
	RecentPlays(ctx context.Context, guildID domain.GuildID, limit int) ([]domain.PlayRecord, error)
	Close()
}
