package domain

import (
	"strconv"
	"time"
)

// GuildID is the Discord snowflake of a guild.
type GuildID uint64

func ParseGuildID(s string) (GuildID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return GuildID(id), nil
}

func (g GuildID) String() string {
	return strconv.FormatUint(uint64(g), 10)
}

const (
	FallbackTitle = "Title"
	FallbackURL   = "https://www.youtube.com"
)

type PlaybackState int

const (
	StateIdle PlaybackState = iota
	StatePlaying
	StatePaused
)

func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// TrackDescriptor describes one playable item. Source is the raw user input;
// the remaining fields are filled by the media resolver.
type TrackDescriptor struct {
	Source    string
	Title     string
	URL       string
	Artist    string
	Duration  time.Duration
	Thumbnail string
}

type QueueEntry struct {
	ID          string
	Track       TrackDescriptor
	Resolved    bool
	RequestedBy string
	EnqueuedAt  time.Time
}

func (e QueueEntry) DisplayTitle() string {
	if e.Track.Title != "" {
		return e.Track.Title
	}
	return FallbackTitle
}

func (e QueueEntry) DisplayURL() string {
	if e.Track.URL != "" {
		return e.Track.URL
	}
	return FallbackURL
}

type PlayRecord struct {
	GuildID     GuildID
	Source      string
	Title       string
	URL         string
	RequestedBy string
	PlayedAt    time.Time
}
