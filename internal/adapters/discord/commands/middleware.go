package commands

import (
	"voice-session-bot/internal/adapters/discord/formatting"
	"voice-session-bot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

type Middleware func(CommandHandler) CommandHandler

// WithGuildOnly rejects commands sent outside a guild.
func WithGuildOnly(next CommandHandler) CommandHandler {
	return func(s DiscordSession, i *discordgo.InteractionCreate) {
		if i.GuildID == "" || i.Member == nil {
			respond(s, i, formatting.MsgGuildOnly, true)
			return
		}
		if _, err := domain.ParseGuildID(i.GuildID); err != nil {
			respond(s, i, formatting.MsgGuildOnly, true)
			return
		}
		next(s, i)
	}
}

// Chain applies middlewares so the first one listed runs first.
func Chain(h CommandHandler, mws ...Middleware) CommandHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
