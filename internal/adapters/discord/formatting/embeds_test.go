package formatting

import (
	"strings"
	"testing"
	"time"

	"voice-session-bot/internal/core/domain"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{5 * time.Second, "0:05"},
		{3*time.Minute + 7*time.Second, "3:07"},
		{61*time.Minute + 1*time.Second, "61:01"},
		{1500 * time.Millisecond, "0:01"},
		{-time.Second, "0:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStateLabel(t *testing.T) {
	tests := map[domain.PlaybackState]string{
		domain.StateIdle:    "Idle",
		domain.StatePlaying: "Playing",
		domain.StatePaused:  "Paused",
	}
	for state, want := range tests {
		if got := StateLabel(state); got != want {
			t.Errorf("StateLabel(%v) = %q, want %q", state, got, want)
		}
	}
}

func TestNowPlayingEmbed_Resolved(t *testing.T) {
	entry := domain.QueueEntry{
		Resolved: true,
		Track: domain.TrackDescriptor{
			Source:    "never gonna",
			Title:     "Never Gonna Give You Up",
			Artist:    "Rick Astley",
			URL:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Duration:  3*time.Minute + 33*time.Second,
			Thumbnail: "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		},
	}

	embed := NowPlayingEmbed(entry, 2)

	if embed.Title != EmbedTitle || embed.Color != EmbedColour {
		t.Errorf("unexpected title/colour: %q %x", embed.Title, embed.Color)
	}
	if embed.URL != entry.Track.URL {
		t.Errorf("URL = %q", embed.URL)
	}
	if embed.Image == nil || embed.Image.URL != entry.Track.Thumbnail {
		t.Error("expected thumbnail image")
	}
	if embed.Footer == nil || embed.Footer.Text == "" {
		t.Error("expected footer")
	}

	want := map[string]string{
		"Artist":            "Rick Astley",
		"Track":             "Never Gonna Give You Up",
		"Song Duration":     "3:33",
		"Position in Queue": "2",
	}
	if len(embed.Fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(embed.Fields))
	}
	for _, f := range embed.Fields {
		if want[f.Name] != f.Value {
			t.Errorf("field %s = %q, want %q", f.Name, f.Value, want[f.Name])
		}
	}
}

func TestNowPlayingEmbed_Fallback(t *testing.T) {
	entry := domain.QueueEntry{Resolved: true, Track: domain.TrackDescriptor{Source: "xyz"}}

	embed := NowPlayingEmbed(entry, 0)

	if embed.URL != domain.FallbackURL {
		t.Errorf("URL = %q, want fallback", embed.URL)
	}
	names := make([]string, 0, len(embed.Fields))
	for _, f := range embed.Fields {
		names = append(names, f.Name)
		if f.Name == "Track" && f.Value != domain.FallbackTitle {
			t.Errorf("Track = %q, want %q", f.Value, domain.FallbackTitle)
		}
	}
	if strings.Join(names, ",") != "Track,Position in Queue" {
		t.Errorf("unexpected fields %v", names)
	}
}

func TestNowPlayingEmbed_Unresolved(t *testing.T) {
	entry := domain.QueueEntry{Track: domain.TrackDescriptor{Source: "some search"}}

	embed := NowPlayingEmbed(entry, 1)

	if embed.URL != "" {
		t.Errorf("unresolved entry should not link, got %q", embed.URL)
	}
	if embed.Fields[0].Value != "some search" {
		t.Errorf("Track = %q, want the raw source", embed.Fields[0].Value)
	}
}

func TestQueueEmbed(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		embed := QueueEmbed(domain.StateIdle, nil, 0)
		if embed.Description != MsgQueueEmpty {
			t.Errorf("Description = %q", embed.Description)
		}
		if !strings.Contains(embed.Footer.Text, "Idle") {
			t.Errorf("footer should carry the state, got %q", embed.Footer.Text)
		}
	})

	t.Run("entries", func(t *testing.T) {
		entries := []domain.QueueEntry{
			{Resolved: true, Track: domain.TrackDescriptor{Title: "One", Artist: "A", Duration: 90 * time.Second}},
			{Track: domain.TrackDescriptor{Source: "two"}},
		}
		embed := QueueEmbed(domain.StatePlaying, entries, 12)

		expected := "0. A - One (1:30)\n1. two\n"
		if embed.Description != expected {
			t.Errorf("Description = %q, want %q", embed.Description, expected)
		}
		if !strings.Contains(embed.Footer.Text, "Playing") || !strings.Contains(embed.Footer.Text, "12 queued") {
			t.Errorf("unexpected footer %q", embed.Footer.Text)
		}
	})
}

func TestHistoryEmbed(t *testing.T) {
	if embed := HistoryEmbed(nil); embed.Description != MsgHistoryEmpty {
		t.Errorf("Description = %q", embed.Description)
	}

	records := []domain.PlayRecord{
		{Title: "One", URL: "https://example.com/1", RequestedBy: "42", PlayedAt: time.Unix(1700000000, 0)},
		{Title: "Two", URL: "https://example.com/2", PlayedAt: time.Unix(1700000100, 0)},
	}
	embed := HistoryEmbed(records)

	if len(embed.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(embed.Fields))
	}
	if embed.Fields[0].Name != "One" || !strings.Contains(embed.Fields[0].Value, "<@42>") {
		t.Errorf("unexpected first field %+v", embed.Fields[0])
	}
	if !strings.Contains(embed.Fields[1].Value, "<t:1700000100:R>") {
		t.Errorf("unexpected timestamp in %q", embed.Fields[1].Value)
	}
}

func TestMessages(t *testing.T) {
	if got := MsgJoined("123"); got != "Joined <#123>" {
		t.Errorf("MsgJoined = %q", got)
	}
	if got := MsgSkippedTo("Next"); got != "Skipped song, now playing **Next**" {
		t.Errorf("MsgSkippedTo = %q", got)
	}
}
