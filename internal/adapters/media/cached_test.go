package media

import (
	"context"
	"errors"
	"testing"

	"voice-session-bot/internal/core/domain"
)

type mockResolver struct {
	calls       int
	resolveFunc func(ctx context.Context, source string) (domain.TrackDescriptor, error)
}

func (m *mockResolver) Resolve(ctx context.Context, source string) (domain.TrackDescriptor, error) {
	m.calls++
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, source)
	}
	return domain.TrackDescriptor{Source: source, Title: "Fresh"}, nil
}

type mockCache struct {
	items  map[string]domain.TrackDescriptor
	getErr error
	setErr error
	sets   int
}

func (m *mockCache) Get(ctx context.Context, source string) (*domain.TrackDescriptor, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if t, ok := m.items[source]; ok {
		return &t, nil
	}
	return nil, nil
}

func (m *mockCache) Set(ctx context.Context, source string, track domain.TrackDescriptor) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	if m.items == nil {
		m.items = make(map[string]domain.TrackDescriptor)
	}
	m.items[source] = track
	return nil
}

func TestCachedResolver_MissThenHit(t *testing.T) {
	next := &mockResolver{}
	cache := &mockCache{}
	resolver := NewCachedResolver(next, cache)

	first, err := resolver.Resolve(context.Background(), "abc")
	if err != nil || first.Title != "Fresh" {
		t.Fatalf("first Resolve = %+v, %v", first, err)
	}

	second, err := resolver.Resolve(context.Background(), "abc")
	if err != nil || second.Title != "Fresh" {
		t.Fatalf("second Resolve = %+v, %v", second, err)
	}

	if next.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", next.calls)
	}
	if cache.sets != 1 {
		t.Errorf("expected 1 cache write, got %d", cache.sets)
	}
}

func TestCachedResolver_CacheErrorsAreIgnored(t *testing.T) {
	next := &mockResolver{}
	cache := &mockCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	resolver := NewCachedResolver(next, cache)

	track, err := resolver.Resolve(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if track.Title != "Fresh" || next.calls != 1 {
		t.Errorf("expected upstream result, got %+v (calls=%d)", track, next.calls)
	}
}

func TestCachedResolver_UpstreamErrorNotCached(t *testing.T) {
	next := &mockResolver{resolveFunc: func(ctx context.Context, source string) (domain.TrackDescriptor, error) {
		return domain.TrackDescriptor{}, ErrNoResults
	}}
	cache := &mockCache{}
	resolver := NewCachedResolver(next, cache)

	if _, err := resolver.Resolve(context.Background(), "xyz"); !errors.Is(err, ErrNoResults) {
		t.Errorf("expected ErrNoResults, got %v", err)
	}
	if cache.sets != 0 {
		t.Error("failed resolutions must not be cached")
	}
}
