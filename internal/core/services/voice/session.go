package voice

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"voice-session-bot/internal/core/domain"
	"voice-session-bot/internal/core/ports"
	"voice-session-bot/internal/metrics"
)

const (
	snapshotLimit         = 10
	defaultHistoryTimeout = 5 * time.Second
)

var errNoResolver = errors.New("no media resolver configured")

// EnqueueResult is returned as soon as the entry has a position. Resolved
// receives the entry once its metadata is filled in and is then closed. It is
// closed without a value when the session is torn down first.
type EnqueueResult struct {
	Position int
	EntryID  string
	Resolved <-chan domain.QueueEntry
}

// Session is the live voice connection, queue and playback state of one guild.
// Mutations are serialized on mu; snapshots share the read lock.
type Session struct {
	guildID        domain.GuildID
	channelID      string
	conn           ports.Connection
	resolver       ports.MediaResolver
	history        ports.PlayHistory
	resolveTimeout time.Duration
	historyTimeout time.Duration

	mu           sync.RWMutex
	queue        *TrackQueue
	state        domain.PlaybackState
	lastActivity time.Time

	armed  atomic.Bool
	ctx    context.Context
	cancel context.CancelFunc
}

type sessionParams struct {
	guildID        domain.GuildID
	channelID      string
	conn           ports.Connection
	resolver       ports.MediaResolver
	history        ports.PlayHistory
	resolveTimeout time.Duration
}

func newSession(p sessionParams) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		guildID:        p.guildID,
		channelID:      p.channelID,
		conn:           p.conn,
		resolver:       p.resolver,
		history:        p.history,
		resolveTimeout: p.resolveTimeout,
		historyTimeout: defaultHistoryTimeout,
		queue:          NewTrackQueue(),
		state:          domain.StateIdle,
		lastActivity:   time.Now(),
		ctx:            ctx,
		cancel:         cancel,
	}
}

func (s *Session) GuildID() domain.GuildID { return s.guildID }

func (s *Session) ChannelID() string { return s.channelID }

// Enqueue appends source to the queue and starts resolving its metadata in
// the background. Playback never waits on the resolver.
func (s *Session) Enqueue(source, requestedBy string) (EnqueueResult, error) {
	s.mu.Lock()
	if s.closed() {
		s.mu.Unlock()
		return EnqueueResult{}, domain.ErrSessionClosed
	}
	entry, pos := s.queue.Push(domain.TrackDescriptor{Source: source}, requestedBy, time.Now())
	if pos == 0 {
		s.playHead()
	}
	s.touch()
	s.mu.Unlock()

	metrics.TracksEnqueued.Inc()
	slog.Info("Track enqueued", "guild_id", s.guildID, "source", source, "position", pos)

	resolved := make(chan domain.QueueEntry, 1)
	go s.resolve(entry, resolved)

	return EnqueueResult{Position: pos, EntryID: entry.ID, Resolved: resolved}, nil
}

func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed() {
		return domain.ErrSessionClosed
	}
	if s.queue.Len() == 0 || s.state != domain.StatePlaying {
		metrics.PlaybackCommands.WithLabelValues("pause", "noop").Inc()
		return domain.ErrNothingPlaying
	}

	if err := s.conn.Pause(); err != nil {
		metrics.TransportErrors.WithLabelValues("pause").Inc()
		slog.Warn("Failed to pause stream", "guild_id", s.guildID, "error", err)
	}
	s.state = domain.StatePaused
	s.touch()
	metrics.PlaybackCommands.WithLabelValues("pause", "ok").Inc()
	return nil
}

func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed() {
		return domain.ErrSessionClosed
	}
	if s.queue.Len() == 0 || s.state != domain.StatePaused {
		metrics.PlaybackCommands.WithLabelValues("resume", "noop").Inc()
		return domain.ErrNothingPlaying
	}

	if err := s.conn.Resume(); err != nil {
		metrics.TransportErrors.WithLabelValues("resume").Inc()
		slog.Warn("Failed to resume stream", "guild_id", s.guildID, "error", err)
	}
	s.state = domain.StatePlaying
	s.touch()
	metrics.PlaybackCommands.WithLabelValues("resume", "ok").Inc()
	return nil
}

// Stop clears the queue and stops the stream. Calling it on an idle session
// leaves the same state behind.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed() {
		return domain.ErrSessionClosed
	}
	s.queue.Clear()
	s.state = domain.StateIdle
	if err := s.conn.Stop(); err != nil {
		metrics.TransportErrors.WithLabelValues("stop").Inc()
		slog.Warn("Failed to stop stream", "guild_id", s.guildID, "error", err)
	}
	s.touch()
	metrics.PlaybackCommands.WithLabelValues("stop", "ok").Inc()
	return nil
}

// Skip drops the current track and starts the next one, if any.
func (s *Session) Skip() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed() {
		return domain.ErrSessionClosed
	}
	skipped, ok := s.queue.Pop()
	if !ok {
		metrics.PlaybackCommands.WithLabelValues("skip", "noop").Inc()
		return domain.ErrNothingPlaying
	}

	if err := s.conn.Stop(); err != nil {
		metrics.TransportErrors.WithLabelValues("stop").Inc()
		slog.Warn("Failed to stop stream", "guild_id", s.guildID, "error", err)
	}

	if s.queue.Len() > 0 {
		s.playHead()
	} else {
		s.state = domain.StateIdle
	}
	s.touch()

	metrics.PlaybackCommands.WithLabelValues("skip", "ok").Inc()
	slog.Info("Track skipped", "guild_id", s.guildID, "source", skipped.Track.Source, "remaining", s.queue.Len())
	return nil
}

// Snapshot returns a copy of the first entries of the queue.
func (s *Session) Snapshot() []domain.QueueEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Entries(snapshotLimit)
}

func (s *Session) State() domain.PlaybackState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActivity
}

func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Len()
}

func (s *Session) IsEmpty() bool {
	return s.Len() == 0
}

// close discards the queue and cancels background work bound to the session.
// Every later mutation fails with ErrSessionClosed.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

// closeIfEmpty closes the session only when nothing is queued, checked under
// the same lock Enqueue takes.
func (s *Session) closeIfEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed() || s.queue.Len() > 0 {
		return false
	}
	s.closeLocked()
	return true
}

// closeLocked does the teardown. Caller holds mu.
func (s *Session) closeLocked() {
	s.cancel()
	if s.queue.Len() > 0 {
		if err := s.conn.Stop(); err != nil {
			slog.Warn("Failed to stop stream on teardown", "guild_id", s.guildID, "error", err)
		}
	}
	s.queue.Clear()
	s.state = domain.StateIdle
}

func (s *Session) closed() bool {
	return s.ctx.Err() != nil
}

// playHead hands the head to the connection. Caller holds mu.
func (s *Session) playHead() {
	head, ok := s.queue.Head()
	if !ok {
		return
	}
	if err := s.conn.Play(head.Track); err != nil {
		metrics.TransportErrors.WithLabelValues("play").Inc()
		slog.Warn("Failed to start stream", "guild_id", s.guildID, "source", head.Track.Source, "error", err)
	}
	s.state = domain.StatePlaying
}

// touch records activity. Caller holds mu.
func (s *Session) touch() {
	s.lastActivity = time.Now()
}

func (s *Session) resolve(entry domain.QueueEntry, out chan<- domain.QueueEntry) {
	defer close(out)

	ctx, cancel := context.WithTimeout(s.ctx, s.resolveTimeout)
	defer cancel()

	var (
		track domain.TrackDescriptor
		err   = errNoResolver
	)
	if s.resolver != nil {
		track, err = s.resolver.Resolve(ctx, entry.Track.Source)
	}
	if s.closed() {
		slog.Debug("Discarding metadata for closed session", "guild_id", s.guildID, "source", entry.Track.Source)
		return
	}

	if err != nil {
		slog.Warn("Failed to resolve track, using fallback", "guild_id", s.guildID, "source", entry.Track.Source, "error", err)
		metrics.ResolveResults.WithLabelValues("fallback").Inc()
		track = domain.TrackDescriptor{}
	} else {
		metrics.ResolveResults.WithLabelValues("success").Inc()
	}
	track.Source = entry.Track.Source

	fill := func(e *domain.QueueEntry) {
		e.Track = track
		e.Resolved = true
	}

	s.mu.Lock()
	updated, ok := s.queue.Update(entry.ID, fill)
	s.mu.Unlock()
	if !ok {
		// Skipped or stopped before resolution finished.
		updated = entry
		fill(&updated)
	}

	s.recordPlay(updated)
	out <- updated
}

func (s *Session) recordPlay(entry domain.QueueEntry) {
	if s.history == nil {
		return
	}

	record := domain.PlayRecord{
		GuildID:     s.guildID,
		Source:      entry.Track.Source,
		Title:       entry.DisplayTitle(),
		URL:         entry.DisplayURL(),
		RequestedBy: entry.RequestedBy,
		PlayedAt:    entry.EnqueuedAt,
	}
	ctx, cancel := context.WithTimeout(s.ctx, s.historyTimeout)
	defer cancel()

	if err := s.history.RecordPlay(ctx, record); err != nil {
		slog.Error("Failed to record play", "guild_id", s.guildID, "source", entry.Track.Source, "error", err)
	}
}
