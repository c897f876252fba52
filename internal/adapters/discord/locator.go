package discord

import (
	"log/slog"

	"voice-session-bot/internal/core/services/voice"

	"github.com/bwmarrin/discordgo"
)

// VoiceStateSource is satisfied by *discordgo.State.
type VoiceStateSource interface {
	VoiceState(guildID, userID string) (*discordgo.VoiceState, error)
}

// ChannelLocator answers which voice channel a member is in. Gateway voice
// state updates keep a local cache warm; misses fall back to the session state.
type ChannelLocator struct {
	state VoiceStateSource
	cache *channelCache
}

func NewChannelLocator(state VoiceStateSource) *ChannelLocator {
	return &ChannelLocator{
		state: state,
		cache: newChannelCache(),
	}
}

// OnVoiceStateUpdate is registered as a discordgo event handler.
func (l *ChannelLocator) OnVoiceStateUpdate(_ *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v == nil || v.VoiceState == nil {
		return
	}

	if v.ChannelID == "" {
		l.cache.Invalidate(v.GuildID, v.UserID)
		return
	}
	l.cache.Set(v.GuildID, v.UserID, v.ChannelID)
}

// Lookup binds a guild member so the registry can ask for the channel only
// when it actually needs to join.
func (l *ChannelLocator) Lookup(guildID, userID string) voice.ChannelLookup {
	return func() (string, bool) {
		return l.find(guildID, userID)
	}
}

func (l *ChannelLocator) find(guildID, userID string) (string, bool) {
	if id, ok := l.cache.Get(guildID, userID); ok {
		return id, true
	}

	if l.state == nil {
		return "", false
	}

	vs, err := l.state.VoiceState(guildID, userID)
	if err != nil || vs == nil || vs.ChannelID == "" {
		slog.Debug("Member not in a voice channel", "guild_id", guildID, "user_id", userID)
		return "", false
	}

	l.cache.Set(guildID, userID, vs.ChannelID)
	return vs.ChannelID, true
}
