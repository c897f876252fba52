package commands

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

var guildOnly = false

func GetApplicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		voiceCommand("join", "Join your voice channel"),
		voiceCommand("leave", "Leave the voice channel and drop the queue"),
		{
			Name:         "play",
			Description:  "Queue a track by URL or search terms",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("query", "A URL or something to search for", true),
			},
		},
		voiceCommand("pause", "Pause the current track"),
		voiceCommand("resume", "Resume the paused track"),
		voiceCommand("stop", "Stop playback and clear the queue"),
		voiceCommand("skip", "Skip to the next track"),
		voiceCommand("info", "Show the queue"),
		voiceCommand("history", "Show recently requested tracks"),
	}
}

func voiceCommand(name, description string) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         name,
		Description:  description,
		DMPermission: &guildOnly,
	}
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func RegisterCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID, guildID string) []*discordgo.ApplicationCommand {
	registered := make([]*discordgo.ApplicationCommand, len(commands))

	for i, cmd := range commands {
		result, err := session.ApplicationCommandCreate(userID, guildID, cmd)
		if err != nil {
			slog.Error("Cannot create command", "name", cmd.Name, "error", err)
			continue
		}
		registered[i] = result
		slog.Info("Registered command", "name", cmd.Name, "guild", guildID)
	}

	return registered
}

func CleanupCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID, guildID string) {
	for _, cmd := range commands {
		if cmd == nil {
			continue
		}
		if err := session.ApplicationCommandDelete(userID, guildID, cmd.ID); err != nil {
			slog.Error("Cannot delete command", "name", cmd.Name, "error", err)
		}
	}
}
