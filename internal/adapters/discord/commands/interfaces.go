package commands

import (
	"context"

	"voice-session-bot/internal/core/domain"
	"voice-session-bot/internal/core/services/voice"

	"github.com/bwmarrin/discordgo"
)

type DiscordSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type CommandSession interface {
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

type SessionRegistry interface {
	GetOrCreate(ctx context.Context, guildID domain.GuildID, lookup voice.ChannelLookup) (*voice.Session, error)
	Get(guildID domain.GuildID) (*voice.Session, bool)
	Remove(ctx context.Context, guildID domain.GuildID) (*voice.Session, error)
}

type ChannelLocator interface {
	Lookup(guildID, userID string) voice.ChannelLookup
}
