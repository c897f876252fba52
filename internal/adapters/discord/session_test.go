package discord

import (
	"testing"

	"voice-session-bot/internal/config"

	"github.com/bwmarrin/discordgo"
)

func TestNewSession_Success(t *testing.T) {
	cfg := &config.Config{
		Token: "MTk.test.token",
	}

	session, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expectedIntents := discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates
	if session.Identify.Intents != expectedIntents {
		t.Errorf("Expected intents %d, got %d", expectedIntents, session.Identify.Intents)
	}
	if !session.StateEnabled {
		t.Error("Expected state tracking to be enabled")
	}
}

func TestNewSession_NoMessageIntents(t *testing.T) {
	session, err := NewSession(&config.Config{Token: "test-token"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if session.Identify.Intents&discordgo.IntentsGuildMessages != 0 {
		t.Error("Guild message intent should not be requested")
	}
}

func TestNewSession_TokenPrefixing(t *testing.T) {
	testCases := []struct {
		name     string
		token    string
		expected string
	}{
		{"standard format", "MTk.test.token", "Bot MTk.test.token"},
		{"with special chars", "test-token_123", "Bot test-token_123"},
		{"empty", "", "Bot "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			session, err := NewSession(&config.Config{Token: tc.token})
			if err != nil {
				t.Fatalf("Unexpected error creating session: %v", err)
			}

			if session.Token != tc.expected {
				t.Errorf("Expected token '%s', got '%s'", tc.expected, session.Token)
			}
		})
	}
}
