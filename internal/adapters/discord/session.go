package discord

import (
	"log/slog"

	"voice-session-bot/internal/config"

	"github.com/bwmarrin/discordgo"
)

// Intents needed to see guilds and who sits in which voice channel.
const Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates

func NewSession(cfg *config.Config) (*discordgo.Session, error) {
	discord, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		slog.Error("Failed to create discord session", "error", err)
		return nil, err
	}

	discord.Identify.Intents = Intents
	discord.StateEnabled = true

	return discord, nil
}
