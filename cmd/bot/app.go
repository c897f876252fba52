package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"voice-session-bot/internal/adapters/discord"
	"voice-session-bot/internal/adapters/discord/commands"
	"voice-session-bot/internal/adapters/media"
	"voice-session-bot/internal/adapters/storage/postgres"
	rediscache "voice-session-bot/internal/adapters/storage/redis"
	"voice-session-bot/internal/config"
	"voice-session-bot/internal/core/ports"
	"voice-session-bot/internal/core/services"
	"voice-session-bot/internal/core/services/voice"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	config             *config.Config
	discord            *discordgo.Session
	registry           *voice.Registry
	history            ports.PlayHistory
	cache              io.Closer
	router             *commands.Router
	metricsServer      *http.Server
	registeredCommands []*discordgo.ApplicationCommand
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{config: cfg}

	session, err := discord.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	app.discord = session

	resolver, err := app.buildResolver(ctx)
	if err != nil {
		return nil, err
	}

	if cfg.DatabaseURL != "" {
		store, err := postgres.NewHistoryStore(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("Failed to connect to storage", "error", err)
			app.closeStores()
			return nil, err
		}
		app.history = store
		pruneHistory(ctx, store, cfg.HistoryRetention)
	} else {
		slog.Info("DATABASE_URL not set, play history disabled")
	}

	locator := discord.NewChannelLocator(session.State)
	session.AddHandler(locator.OnVoiceStateUpdate)

	app.registry = voice.NewRegistry(voice.Dependencies{
		Config:    cfg,
		Transport: discord.NewVoiceTransport(session),
		Resolver:  resolver,
		History:   app.history,
	})

	botHandlers := &commands.BotHandler{
		Config:   cfg,
		Registry: app.registry,
		Locator:  locator,
		History:  services.NewHistoryService(app.history, cfg.HistoryLimit),
	}
	app.router = commands.NewRouter()
	botHandlers.Register(app.router)

	session.AddHandler(commands.ReadyHandler)
	session.AddHandler(app.router.HandleFunc())

	return app, nil
}

func (a *App) buildResolver(ctx context.Context) (ports.MediaResolver, error) {
	client := media.NewClient(a.config.ResolverBaseURL, a.config.ResolverTimeout, a.config.ResolverRateLimit)
	var resolver ports.MediaResolver = media.NewResolver(client)

	if a.config.RedisAddr == "" {
		return resolver, nil
	}

	cache, err := rediscache.NewMetadataCache(ctx, a.config.RedisAddr, a.config.RedisPassword, a.config.RedisDB, a.config.MetadataCacheTTL)
	if err != nil {
		slog.Error("Failed to connect to metadata cache", "error", err)
		return nil, err
	}
	a.cache = cache

	slog.Info("Metadata cache enabled", "addr", a.config.RedisAddr, "ttl", a.config.MetadataCacheTTL)
	return media.NewCachedResolver(resolver, cache), nil
}

type historyPruner interface {
	PruneBefore(ctx context.Context, retention time.Duration) (int64, error)
}

func pruneHistory(ctx context.Context, store historyPruner, retention time.Duration) {
	if retention <= 0 {
		return
	}
	deleted, err := store.PruneBefore(ctx, retention)
	if err != nil {
		slog.Warn("Failed to prune play history", "error", err)
		return
	}
	slog.Info("Pruned play history", "deleted", deleted, "retention", retention)
}

func (a *App) Run() error {
	if err := a.discord.Open(); err != nil {
		slog.Error("Failed to open discord session", "error", err)
		return err
	}

	a.startMetricsServer()

	a.registeredCommands = commands.RegisterCommands(
		a.discord,
		commands.GetApplicationCommands(),
		a.discord.State.User.ID,
		a.config.DiscordGuildID,
	)

	slog.Info("Voice session bot is running", "guild_scope", a.config.DiscordGuildID)
	return nil
}

func (a *App) startMetricsServer() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	a.metricsServer = &http.Server{
		Addr:              a.config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Metrics server listening", "addr", a.config.MetricsAddr)
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	var errs []error

	if a.registry != nil {
		if err := a.registry.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close sessions: %w", err))
		}
	}

	if a.discord != nil && a.config.CleanupCommands && a.discord.State != nil && a.discord.State.User != nil {
		commands.CleanupCommands(a.discord, a.registeredCommands, a.discord.State.User.ID, a.config.DiscordGuildID)
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server: %w", err))
		}
	}

	a.closeStores()

	if a.discord != nil {
		if err := a.discord.Close(); err != nil {
			errs = append(errs, fmt.Errorf("discord session: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (a *App) closeStores() {
	if a.history != nil {
		a.history.Close()
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			slog.Warn("Failed to close metadata cache", "error", err)
		}
	}
}
