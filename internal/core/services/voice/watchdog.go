package voice

import (
	"context"
	"log/slog"
	"time"
)

const DefaultIdleTimeout = 420 * time.Second

// IdleWatchdog periodically checks one session and asks for its removal once
// the queue is found empty. The armed bit lives on the session, so each guild
// gets at most one running watchdog.
type IdleWatchdog struct {
	session  *Session
	interval time.Duration
	onIdle   IdleFunc
}

// IdleFunc handles an empty queue and reports whether the session was torn
// down. The watchdog keeps ticking when it was not.
type IdleFunc func(ctx context.Context, s *Session) bool

func NewIdleWatchdog(session *Session, interval time.Duration, onIdle IdleFunc) *IdleWatchdog {
	if interval <= 0 {
		interval = DefaultIdleTimeout
	}
	return &IdleWatchdog{
		session:  session,
		interval: interval,
		onIdle:   onIdle,
	}
}

// Arm starts the watchdog. It returns false without doing anything when the
// session already has an armed watchdog or has been torn down.
func (w *IdleWatchdog) Arm() bool {
	if w.session.closed() {
		return false
	}
	if !w.session.armed.CompareAndSwap(false, true) {
		slog.Debug("Idle watchdog already armed", "guild_id", w.session.guildID)
		return false
	}

	slog.Info("Idle watchdog armed", "guild_id", w.session.guildID, "interval", w.interval)
	go w.run(w.session.ctx)
	return true
}

func (w *IdleWatchdog) Armed() bool {
	return w.session.armed.Load()
}

func (w *IdleWatchdog) run(ctx context.Context) {
	defer w.session.armed.Store(false)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("Idle watchdog disarmed", "guild_id", w.session.guildID)
			return
		case <-ticker.C:
			if !w.session.IsEmpty() {
				continue
			}
			// Teardown cancels before clearing the queue.
			if ctx.Err() != nil {
				return
			}
			slog.Info("Queue empty, leaving voice channel", "guild_id", w.session.guildID)
			if w.onIdle(context.Background(), w.session) {
				return
			}
		}
	}
}
