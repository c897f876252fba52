package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"voice-session-bot/internal/config"
	"voice-session-bot/internal/core/domain"
	"voice-session-bot/internal/core/ports"
	"voice-session-bot/internal/metrics"

	"golang.org/x/sync/singleflight"
)

const defaultResolveTimeout = 10 * time.Second

const (
	reasonLeave    = "leave"
	reasonIdle     = "idle"
	reasonShutdown = "shutdown"
)

// ChannelLookup reports the voice channel of the user issuing a command.
type ChannelLookup func() (channelID string, ok bool)

type Dependencies struct {
	Config    *config.Config
	Transport ports.Transport
	Resolver  ports.MediaResolver
	History   ports.PlayHistory
}

// Registry owns every live session, keyed by guild. The map lock is only held
// for map access, so connecting one guild never blocks another.
type Registry struct {
	transport      ports.Transport
	resolver       ports.MediaResolver
	history        ports.PlayHistory
	idleTimeout    time.Duration
	resolveTimeout time.Duration

	mu       sync.RWMutex
	sessions map[domain.GuildID]*Session
	leaving  map[domain.GuildID]chan struct{}
	joins    singleflight.Group
}

func NewRegistry(deps Dependencies) *Registry {
	r := &Registry{
		transport:      deps.Transport,
		resolver:       deps.Resolver,
		history:        deps.History,
		idleTimeout:    DefaultIdleTimeout,
		resolveTimeout: defaultResolveTimeout,
		sessions:       make(map[domain.GuildID]*Session),
		leaving:        make(map[domain.GuildID]chan struct{}),
	}
	if deps.Config != nil {
		if deps.Config.IdleTimeout > 0 {
			r.idleTimeout = deps.Config.IdleTimeout
		}
		if deps.Config.ResolverTimeout > 0 {
			r.resolveTimeout = deps.Config.ResolverTimeout
		}
	}
	return r
}

// GetOrCreate returns the guild's session, joining the caller's voice channel
// first when there is none. Concurrent calls for one guild share a single
// connect attempt.
func (r *Registry) GetOrCreate(ctx context.Context, guildID domain.GuildID, lookup ChannelLookup) (*Session, error) {
	if s, ok := r.Get(guildID); ok {
		return s, nil
	}

	channelID, ok := lookup()
	if !ok || channelID == "" {
		return nil, domain.ErrNoVoiceChannel
	}

	v, err, shared := r.joins.Do(guildID.String(), func() (any, error) {
		if s, ok := r.Get(guildID); ok {
			return s, nil
		}
		return r.connect(ctx, guildID, channelID)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("Joined concurrent connect", "guild_id", guildID)
	}
	return v.(*Session), nil
}

func (r *Registry) Get(guildID domain.GuildID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[guildID]
	return s, ok
}

// Remove tears down the guild's session and disconnects from voice. Removing
// a guild without a session is a no-op. The session is removed even when the
// disconnect call fails; that error is returned alongside it.
func (r *Registry) Remove(ctx context.Context, guildID domain.GuildID) (*Session, error) {
	return r.remove(ctx, guildID, reasonLeave)
}

// Close removes every session.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.RLock()
	ids := make([]domain.GuildID, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	var errs []error
	for _, id := range ids {
		if _, err := r.remove(ctx, id, reasonShutdown); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) connect(ctx context.Context, guildID domain.GuildID, channelID string) (*Session, error) {
	if err := r.awaitTeardown(ctx, guildID); err != nil {
		return nil, fmt.Errorf("%w: previous disconnect still running: %w", domain.ErrTransportFailure, err)
	}

	conn, err := r.transport.Connect(ctx, guildID, channelID)
	if err != nil {
		metrics.TransportErrors.WithLabelValues("connect").Inc()
		slog.Error("Failed to join voice channel", "guild_id", guildID, "channel_id", channelID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrTransportFailure, err)
	}

	s := newSession(sessionParams{
		guildID:        guildID,
		channelID:      channelID,
		conn:           conn,
		resolver:       r.resolver,
		history:        r.history,
		resolveTimeout: r.resolveTimeout,
	})

	r.mu.Lock()
	r.sessions[guildID] = s
	r.mu.Unlock()

	metrics.SessionsCreated.Inc()
	metrics.ActiveSessions.Inc()
	slog.Info("Joined voice channel", "guild_id", guildID, "channel_id", channelID)

	NewIdleWatchdog(s, r.idleTimeout, r.removeIdle).Arm()
	return s, nil
}

// removeIdle tears s down only if it is still the guild's session and its
// queue is empty at that moment. It reports whether s was removed.
func (r *Registry) removeIdle(ctx context.Context, s *Session) bool {
	r.mu.Lock()
	if cur, ok := r.sessions[s.guildID]; !ok || cur != s || !s.closeIfEmpty() {
		r.mu.Unlock()
		slog.Debug("Idle removal skipped", "guild_id", s.guildID)
		return false
	}
	done := r.detach(s.guildID)
	r.mu.Unlock()

	if err := r.teardown(ctx, s, reasonIdle, done); err != nil {
		slog.Error("Failed to leave idle voice channel", "guild_id", s.guildID, "error", err)
	}
	return true
}

func (r *Registry) remove(ctx context.Context, guildID domain.GuildID, reason string) (*Session, error) {
	r.mu.Lock()
	s, ok := r.sessions[guildID]
	if !ok {
		r.mu.Unlock()
		return nil, nil
	}
	done := r.detach(guildID)
	r.mu.Unlock()

	s.close()
	return s, r.teardown(ctx, s, reason, done)
}

// detach drops the guild's map entry and marks it as leaving until done is
// closed. Caller holds mu.
func (r *Registry) detach(guildID domain.GuildID) chan struct{} {
	delete(r.sessions, guildID)
	done := make(chan struct{})
	r.leaving[guildID] = done
	return done
}

// teardown disconnects an already closed session and then releases any join
// waiting on the guild.
func (r *Registry) teardown(ctx context.Context, s *Session, reason string, done chan struct{}) error {
	defer func() {
		r.mu.Lock()
		if r.leaving[s.guildID] == done {
			delete(r.leaving, s.guildID)
		}
		r.mu.Unlock()
		close(done)
	}()

	metrics.ActiveSessions.Dec()
	metrics.SessionsRemoved.WithLabelValues(reason).Inc()

	if err := r.transport.Disconnect(ctx, s.guildID); err != nil {
		metrics.TransportErrors.WithLabelValues("disconnect").Inc()
		return fmt.Errorf("disconnect guild %s: %w", s.guildID, err)
	}

	slog.Info("Left voice channel", "guild_id", s.guildID, "reason", reason)
	return nil
}

// awaitTeardown blocks while an earlier disconnect of the guild is running,
// so it cannot tear down the link a new join is about to create.
func (r *Registry) awaitTeardown(ctx context.Context, guildID domain.GuildID) error {
	r.mu.RLock()
	done, ok := r.leaving[guildID]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	slog.Debug("Waiting for previous disconnect", "guild_id", guildID)
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
