package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"voice-session-bot/internal/core/domain"
	"voice-session-bot/internal/core/ports"

	"github.com/bwmarrin/discordgo"
)

// VoiceJoiner is satisfied by *discordgo.Session.
type VoiceJoiner interface {
	ChannelVoiceJoin(gID, cID string, mute, deaf bool) (*discordgo.VoiceConnection, error)
}

// voiceLink is the part of *discordgo.VoiceConnection the transport drives.
type voiceLink interface {
	Speaking(b bool) error
	Disconnect() error
}

type joinFunc func(guildID, channelID string) (voiceLink, error)

// VoiceTransport joins and leaves voice channels through the gateway and keeps
// one link per guild.
type VoiceTransport struct {
	join joinFunc

	mu    sync.Mutex
	links map[domain.GuildID]voiceLink
}

func NewVoiceTransport(joiner VoiceJoiner) *VoiceTransport {
	return newVoiceTransport(func(guildID, channelID string) (voiceLink, error) {
		vc, err := joiner.ChannelVoiceJoin(guildID, channelID, false, true)
		if err != nil {
			return nil, err
		}
		return vc, nil
	})
}

func newVoiceTransport(join joinFunc) *VoiceTransport {
	return &VoiceTransport{
		join:  join,
		links: make(map[domain.GuildID]voiceLink),
	}
}

func (t *VoiceTransport) Connect(ctx context.Context, guildID domain.GuildID, channelID string) (ports.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	link, err := t.join(guildID.String(), channelID)
	if err != nil {
		return nil, fmt.Errorf("join channel %s: %w", channelID, err)
	}

	t.mu.Lock()
	t.links[guildID] = link
	t.mu.Unlock()

	slog.Debug("Voice link established", "guild_id", guildID, "channel_id", channelID)
	return &stream{guildID: guildID, link: link}, nil
}

func (t *VoiceTransport) Disconnect(ctx context.Context, guildID domain.GuildID) error {
	t.mu.Lock()
	link, ok := t.links[guildID]
	delete(t.links, guildID)
	t.mu.Unlock()

	if !ok {
		return nil
	}

	if err := link.Disconnect(); err != nil {
		return fmt.Errorf("leave voice: %w", err)
	}
	return nil
}

func (t *VoiceTransport) Connected(guildID domain.GuildID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.links[guildID]
	return ok
}

// stream is the per-guild playback handle. Audio encoding happens outside
// this process, so stream control maps to the speaking indicator.
type stream struct {
	guildID domain.GuildID
	link    voiceLink
}

func (s *stream) Play(track domain.TrackDescriptor) error {
	slog.Debug("Streaming track", "guild_id", s.guildID, "source", track.Source)
	return s.link.Speaking(true)
}

func (s *stream) Pause() error {
	return s.link.Speaking(false)
}

func (s *stream) Resume() error {
	return s.link.Speaking(true)
}

func (s *stream) Stop() error {
	return s.link.Speaking(false)
}
