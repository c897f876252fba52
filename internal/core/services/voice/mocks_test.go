package voice

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"voice-session-bot/internal/core/domain"
	"voice-session-bot/internal/core/ports"
)

type mockTransport struct {
	connectFunc    func(ctx context.Context, guildID domain.GuildID, channelID string) (ports.Connection, error)
	disconnectFunc func(ctx context.Context, guildID domain.GuildID) error

	connects    atomic.Int32
	disconnects atomic.Int32
}

func (m *mockTransport) Connect(ctx context.Context, guildID domain.GuildID, channelID string) (ports.Connection, error) {
	m.connects.Add(1)
	if m.connectFunc != nil {
		return m.connectFunc(ctx, guildID, channelID)
	}
	return &mockConnection{}, nil
}

func (m *mockTransport) Disconnect(ctx context.Context, guildID domain.GuildID) error {
	m.disconnects.Add(1)
	if m.disconnectFunc != nil {
		return m.disconnectFunc(ctx, guildID)
	}
	return nil
}

type mockConnection struct {
	mu     sync.Mutex
	calls  []string
	played []domain.TrackDescriptor

	playErr  error
	pauseErr error
}

func (m *mockConnection) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockConnection) Play(track domain.TrackDescriptor) error {
	m.mu.Lock()
	m.played = append(m.played, track)
	m.mu.Unlock()
	m.record("play")
	return m.playErr
}

func (m *mockConnection) Pause() error {
	m.record("pause")
	return m.pauseErr
}

func (m *mockConnection) Resume() error {
	m.record("resume")
	return nil
}

func (m *mockConnection) Stop() error {
	m.record("stop")
	return nil
}

func (m *mockConnection) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockConnection) Played() []domain.TrackDescriptor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.TrackDescriptor(nil), m.played...)
}

type mockResolver struct {
	resolveFunc func(ctx context.Context, source string) (domain.TrackDescriptor, error)
}

func (m *mockResolver) Resolve(ctx context.Context, source string) (domain.TrackDescriptor, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, source)
	}
	return domain.TrackDescriptor{Source: source, Title: "Resolved " + source, URL: "https://example.com/" + source}, nil
}

type mockHistory struct {
	mu      sync.Mutex
	records []domain.PlayRecord

	recordPlayFunc func(ctx context.Context, record domain.PlayRecord) error
}

func (m *mockHistory) RecordPlay(ctx context.Context, record domain.PlayRecord) error {
	m.mu.Lock()
	m.records = append(m.records, record)
	m.mu.Unlock()
	if m.recordPlayFunc != nil {
		return m.recordPlayFunc(ctx, record)
	}
	return nil
}

func (m *mockHistory) RecentPlays(ctx context.Context, guildID domain.GuildID, limit int) ([]domain.PlayRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.PlayRecord(nil), m.records...), nil
}

func (m *mockHistory) Close() {}

func (m *mockHistory) Records() []domain.PlayRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.PlayRecord(nil), m.records...)
}

func inChannel(id string) ChannelLookup {
	return func() (string, bool) { return id, true }
}

func notInChannel() (string, bool) { return "", false }

func newTestSession(conn *mockConnection, resolver ports.MediaResolver) *Session {
	return newSession(sessionParams{
		guildID:        1,
		channelID:      "voice-1",
		conn:           conn,
		resolver:       resolver,
		resolveTimeout: time.Second,
	})
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func receive(ch <-chan domain.QueueEntry, timeout time.Duration) (domain.QueueEntry, bool) {
	select {
	case e, ok := <-ch:
		return e, ok
	case <-time.After(timeout):
		return domain.QueueEntry{}, false
	}
}

func mustEnqueue(t *testing.T, s *Session, source, requestedBy string) EnqueueResult {
	t.Helper()
	res, err := s.Enqueue(source, requestedBy)
	if err != nil {
		t.Fatalf("Enqueue(%s) error = %v", source, err)
	}
	return res
}
