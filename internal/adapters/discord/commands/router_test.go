package commands

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestNewRouter(t *testing.T) {
	router := NewRouter()

	if router == nil || router.routes == nil {
		t.Fatal("expected initialized router")
	}
	if len(router.routes) != 0 {
		t.Errorf("expected empty routes, got %d", len(router.routes))
	}
}

func TestRouter_Register_OverwritesPrevious(t *testing.T) {
	router := NewRouter()
	session := &mockDiscordSession{}

	called := ""
	router.Register("play", func(s DiscordSession, i *discordgo.InteractionCreate) { called = "first" })
	router.Register("play", func(s DiscordSession, i *discordgo.InteractionCreate) { called = "second" })

	router.Handle(session, makeInteraction("play", discordgo.InteractionApplicationCommand))

	if called != "second" {
		t.Errorf("expected the latest handler, got %q", called)
	}
	if len(router.routes) != 1 {
		t.Errorf("expected 1 route, got %d", len(router.routes))
	}
}

func TestRouter_Handle_DispatchesToCorrectHandler(t *testing.T) {
	router := NewRouter()
	session := &mockDiscordSession{}

	called := ""
	router.Register("pause", func(s DiscordSession, i *discordgo.InteractionCreate) { called = "pause" })
	router.Register("resume", func(s DiscordSession, i *discordgo.InteractionCreate) { called = "resume" })

	router.Handle(session, makeInteraction("resume", discordgo.InteractionApplicationCommand))
	if called != "resume" {
		t.Errorf("expected 'resume', got %q", called)
	}
}

func TestRouter_Handle_IgnoresOtherInteractionTypes(t *testing.T) {
	ignoredTypes := []discordgo.InteractionType{
		discordgo.InteractionPing,
		discordgo.InteractionApplicationCommandAutocomplete,
		discordgo.InteractionMessageComponent,
		discordgo.InteractionModalSubmit,
	}

	for _, iType := range ignoredTypes {
		t.Run(iType.String(), func(t *testing.T) {
			router := NewRouter()

			called := false
			router.Register("play", func(s DiscordSession, i *discordgo.InteractionCreate) { called = true })

			router.Handle(&mockDiscordSession{}, makeInteraction("play", iType))

			if called {
				t.Errorf("handler should NOT be called for %s", iType)
			}
		})
	}
}

func TestRouter_Handle_UnregisteredCommand(t *testing.T) {
	router := NewRouter()

	called := false
	router.Register("play", func(s DiscordSession, i *discordgo.InteractionCreate) { called = true })

	router.Handle(&mockDiscordSession{}, makeInteraction("unknown", discordgo.InteractionApplicationCommand))
	NewRouter().Handle(&mockDiscordSession{}, makeInteraction("any", discordgo.InteractionApplicationCommand))

	if called {
		t.Error("handler should NOT be called for unregistered command")
	}
}

func TestRouter_Handle_PassesSessionAndInteraction(t *testing.T) {
	router := NewRouter()
	session := &mockDiscordSession{}
	interaction := makeInteraction("info", discordgo.InteractionApplicationCommand)

	var gotSession DiscordSession
	var gotInteraction *discordgo.InteractionCreate

	router.Register("info", func(s DiscordSession, i *discordgo.InteractionCreate) {
		gotSession = s
		gotInteraction = i
	})

	router.Handle(session, interaction)

	if gotSession != session {
		t.Error("handler should receive the session")
	}
	if gotInteraction != interaction {
		t.Error("handler should receive the interaction")
	}
}

func TestRouter_HandleFunc_ReturnsCompatibleHandler(t *testing.T) {
	router := NewRouter()

	called := false
	router.Register("skip", func(s DiscordSession, i *discordgo.InteractionCreate) { called = true })

	handler := router.HandleFunc()
	handler(&discordgo.Session{}, makeInteraction("skip", discordgo.InteractionApplicationCommand))

	if !called {
		t.Error("HandleFunc should dispatch to registered handler")
	}
}

func TestBotHandler_RegisterWiresAllCommands(t *testing.T) {
	router := NewRouter()
	(&BotHandler{}).Register(router)

	for _, cmd := range GetApplicationCommands() {
		if _, ok := router.routes[cmd.Name]; !ok {
			t.Errorf("command %q has no route", cmd.Name)
		}
	}
	if len(router.routes) != len(GetApplicationCommands()) {
		t.Errorf("expected %d routes, got %d", len(GetApplicationCommands()), len(router.routes))
	}
}

func makeInteraction(name string, iType discordgo.InteractionType) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: iType,
			Data: discordgo.ApplicationCommandInteractionData{Name: name},
		},
	}
}
