package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"voice-session-bot/internal/adapters/discord/formatting"
	"voice-session-bot/internal/config"
	"voice-session-bot/internal/core/domain"
	"voice-session-bot/internal/core/services"
	"voice-session-bot/internal/core/services/voice"

	"github.com/bwmarrin/discordgo"
)

const commandTimeout = 30 * time.Second

type BotHandler struct {
	Config   *config.Config
	Registry SessionRegistry
	Locator  ChannelLocator
	History  *services.HistoryService
}

func ReadyHandler(session *discordgo.Session, ready *discordgo.Ready) {
	slog.Info("Voice session bot is online!", "user", ready.User.Username, "guilds", len(ready.Guilds))
}

// Register wires every command handler into the router.
func (h *BotHandler) Register(r *Router) {
	routes := map[string]CommandHandler{
		"join":    h.Join,
		"leave":   h.Leave,
		"play":    h.Play,
		"pause":   h.Pause,
		"resume":  h.Resume,
		"stop":    h.Stop,
		"skip":    h.Skip,
		"info":    h.Info,
		"history": h.ShowHistory,
	}
	for name, handler := range routes {
		r.Register(name, Chain(handler, WithGuildOnly))
	}
}

func (h *BotHandler) Join(s DiscordSession, i *discordgo.InteractionCreate) {
	if err := deferResponse(s, i); err != nil {
		slog.Error("Failed to defer join", "guild_id", i.GuildID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	session, err := h.Registry.GetOrCreate(ctx, guildID(i), h.Locator.Lookup(i.GuildID, interactionUserID(i)))
	if err != nil {
		editResponse(s, i, joinErrorMessage(err))
		return
	}

	editResponse(s, i, formatting.MsgJoined(session.ChannelID()))
}

func (h *BotHandler) Leave(s DiscordSession, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	session, err := h.Registry.Remove(ctx, guildID(i))
	switch {
	case session == nil && err == nil:
		respond(s, i, formatting.MsgNotInVoice, true)
	case err != nil:
		slog.Error("Failed to leave voice channel", "guild_id", i.GuildID, "error", err)
		respond(s, i, formatting.MsgLeaveFailed(err), false)
	default:
		respond(s, i, formatting.MsgLeft, false)
	}
}

// Play joins the caller's channel when needed, enqueues the query and waits
// briefly for its metadata before answering with the now-playing embed.
func (h *BotHandler) Play(s DiscordSession, i *discordgo.InteractionCreate) {
	query := strings.TrimSpace(getStringOption(i.ApplicationCommandData().Options, "query"))
	if query == "" {
		respond(s, i, formatting.MsgQueryRequired, true)
		return
	}

	if err := deferResponse(s, i); err != nil {
		slog.Error("Failed to defer play", "guild_id", i.GuildID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	userID := interactionUserID(i)
	lookup := h.Locator.Lookup(i.GuildID, userID)

	var (
		res voice.EnqueueResult
		err error
	)
	// A second pass covers a session that left voice between lookup and enqueue.
	for attempt := 0; attempt < 2; attempt++ {
		var session *voice.Session
		session, err = h.Registry.GetOrCreate(ctx, guildID(i), lookup)
		if err != nil {
			editResponse(s, i, joinErrorMessage(err))
			return
		}
		res, err = session.Enqueue(query, userID)
		if !errors.Is(err, domain.ErrSessionClosed) {
			break
		}
		slog.Debug("Session closed before enqueue, rejoining", "guild_id", i.GuildID)
	}
	if err != nil {
		slog.Error("Failed to enqueue track", "guild_id", i.GuildID, "source", query, "error", err)
		editResponse(s, i, formatting.MsgCommandFailed)
		return
	}

	entry := h.awaitResolved(res, query)

	editEmbed(s, i, formatting.NowPlayingEmbed(entry, res.Position))
}

func (h *BotHandler) Pause(s DiscordSession, i *discordgo.InteractionCreate) {
	h.withSession(s, i, func(session *voice.Session) {
		if err := session.Pause(); err != nil {
			respondPlaybackError(s, i, err)
			return
		}
		respond(s, i, formatting.MsgPaused, false)
	})
}

func (h *BotHandler) Resume(s DiscordSession, i *discordgo.InteractionCreate) {
	h.withSession(s, i, func(session *voice.Session) {
		if err := session.Resume(); err != nil {
			respondPlaybackError(s, i, err)
			return
		}
		respond(s, i, formatting.MsgResumed, false)
	})
}

func (h *BotHandler) Stop(s DiscordSession, i *discordgo.InteractionCreate) {
	h.withSession(s, i, func(session *voice.Session) {
		if err := session.Stop(); err != nil {
			respondPlaybackError(s, i, err)
			return
		}
		respond(s, i, formatting.MsgStopped, false)
	})
}

func (h *BotHandler) Skip(s DiscordSession, i *discordgo.InteractionCreate) {
	h.withSession(s, i, func(session *voice.Session) {
		if err := session.Skip(); err != nil {
			respondPlaybackError(s, i, err)
			return
		}

		if next := session.Snapshot(); len(next) > 0 {
			respond(s, i, formatting.MsgSkippedTo(next[0].DisplayTitle()), false)
			return
		}
		respond(s, i, formatting.MsgSkipped, false)
	})
}

func (h *BotHandler) Info(s DiscordSession, i *discordgo.InteractionCreate) {
	h.withSession(s, i, func(session *voice.Session) {
		respondEmbed(s, i, formatting.QueueEmbed(session.State(), session.Snapshot(), session.Len()))
	})
}

func (h *BotHandler) ShowHistory(s DiscordSession, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	records, err := h.History.Recent(ctx, guildID(i))
	if errors.Is(err, services.ErrHistoryDisabled) {
		respond(s, i, formatting.MsgHistoryDisabled, true)
		return
	}
	if err != nil {
		slog.Error("Failed to load play history", "guild_id", i.GuildID, "error", err)
		respond(s, i, formatting.MsgHistoryError, true)
		return
	}

	respondEmbed(s, i, formatting.HistoryEmbed(records))
}

func (h *BotHandler) withSession(s DiscordSession, i *discordgo.InteractionCreate, fn func(*voice.Session)) {
	session, ok := h.Registry.Get(guildID(i))
	if !ok {
		respond(s, i, formatting.MsgNoSession, true)
		return
	}
	fn(session)
}

// awaitResolved gives the resolver a short head start so the reply can carry
// real metadata. On timeout the raw query is shown instead.
func (h *BotHandler) awaitResolved(res voice.EnqueueResult, query string) domain.QueueEntry {
	pending := domain.QueueEntry{ID: res.EntryID, Track: domain.TrackDescriptor{Source: query}}

	wait := time.Duration(0)
	if h.Config != nil {
		wait = h.Config.ResolveWait
	}
	if wait <= 0 {
		return pending
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case entry, ok := <-res.Resolved:
		if ok {
			return entry
		}
	case <-timer.C:
		slog.Debug("Metadata not ready, replying with source", "entry_id", res.EntryID)
	}
	return pending
}

func respondPlaybackError(s DiscordSession, i *discordgo.InteractionCreate, err error) {
	switch {
	case errors.Is(err, domain.ErrNothingPlaying):
		respond(s, i, formatting.MsgNothingPlaying, true)
	case errors.Is(err, domain.ErrSessionClosed):
		respond(s, i, formatting.MsgNoSession, true)
	default:
		slog.Error("Playback command failed", "guild_id", i.GuildID, "error", err)
		respond(s, i, formatting.MsgCommandFailed, true)
	}
}

func joinErrorMessage(err error) string {
	if errors.Is(err, domain.ErrNoVoiceChannel) {
		return formatting.MsgNotInVoice
	}
	slog.Error("Failed to join voice channel", "error", err)
	return formatting.MsgJoinFailed
}

// guildID parses the interaction's guild. WithGuildOnly has already rejected
// anything unparsable.
func guildID(i *discordgo.InteractionCreate) domain.GuildID {
	id, _ := domain.ParseGuildID(i.GuildID)
	return id
}
