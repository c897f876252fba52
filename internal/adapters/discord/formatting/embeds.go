package formatting

import (
	"fmt"
	"strconv"
	"time"

	"voice-session-bot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	EmbedTitle  = "music"
	EmbedColour = 0xeb984e
	EmbedFooter = "voice-session-bot"

	// DcShortTimeFormat renders as a relative timestamp in the client.
	DcShortTimeFormat = "<t:%d:R>"
)

// FormatDuration renders d as m:ss. Tracks longer than an hour keep counting
// minutes.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// StateLabel capitalizes the playback state. Casers keep state, so each call
// builds its own.
func StateLabel(s domain.PlaybackState) string {
	return cases.Title(language.English).String(s.String())
}

// NowPlayingEmbed describes a freshly enqueued entry. Unknown metadata fields
// are left out.
func NowPlayingEmbed(entry domain.QueueEntry, position int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  EmbedTitle,
		Color:  EmbedColour,
		Footer: &discordgo.MessageEmbedFooter{Text: EmbedFooter},
	}

	t := entry.Track
	if t.Artist != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Artist", Value: t.Artist, Inline: true})
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Track", Value: trackName(entry), Inline: true})
	if entry.Resolved {
		embed.URL = entry.DisplayURL()
	}
	if t.Duration > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Song Duration", Value: FormatDuration(t.Duration)})
	}
	if t.Thumbnail != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: t.Thumbnail}
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Position in Queue", Value: strconv.Itoa(position)})
	return embed
}

// QueueEmbed lists a snapshot of the queue; the first entry is the one playing.
func QueueEmbed(state domain.PlaybackState, entries []domain.QueueEntry, total int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  EmbedTitle + " | queue",
		Color:  EmbedColour,
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%s | %s | %d queued", EmbedFooter, StateLabel(state), total)},
	}

	if len(entries) == 0 {
		embed.Description = MsgQueueEmpty
		return embed
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = queueLine(e)
	}
	embed.Description = MsgQueueLines(lines)
	return embed
}

func HistoryEmbed(records []domain.PlayRecord) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  EmbedTitle + " | history",
		Color:  EmbedColour,
		Footer: &discordgo.MessageEmbedFooter{Text: EmbedFooter},
	}

	if len(records) == 0 {
		embed.Description = MsgHistoryEmpty
		return embed
	}

	for _, r := range records {
		value := fmt.Sprintf("[link](%s) %s", r.URL, fmt.Sprintf(DcShortTimeFormat, r.PlayedAt.Unix()))
		if r.RequestedBy != "" {
			value += fmt.Sprintf(" by <@%s>", r.RequestedBy)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: r.Title, Value: value})
	}
	return embed
}

func trackName(e domain.QueueEntry) string {
	if !e.Resolved {
		return e.Track.Source
	}
	return e.DisplayTitle()
}

func queueLine(e domain.QueueEntry) string {
	line := trackName(e)
	if e.Track.Artist != "" {
		line = e.Track.Artist + " - " + line
	}
	if e.Track.Duration > 0 {
		line += " (" + FormatDuration(e.Track.Duration) + ")"
	}
	return line
}
