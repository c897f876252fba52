package formatting

import (
	"fmt"
	"strings"
)

const (
	MsgGuildOnly       = "This command can only be used in a server."
	MsgNotInVoice      = "Not in a voice channel"
	MsgNoSession       = "Not in a voice channel to play in"
	MsgJoinFailed      = "Failed to join your voice channel."
	MsgQueryRequired   = "Must provide a URL or search terms"
	MsgNothingPlaying  = "Nothing is playing."
	MsgPaused          = "Paused song"
	MsgResumed         = "Resumed song"
	MsgStopped         = "Stopping song and clearing queue"
	MsgSkipped         = "Skipped song"
	MsgLeft            = "Left voice channel"
	MsgQueueEmpty      = "The queue is empty."
	MsgHistoryDisabled = "Play history is not enabled."
	MsgHistoryError    = "Failed to load play history."
	MsgHistoryEmpty    = "Nothing has been played here yet."
	MsgCommandFailed   = "Something went wrong, try again."
)

func MsgJoined(channelID string) string {
	return fmt.Sprintf("Joined <#%s>", channelID)
}

func MsgLeaveFailed(err error) string {
	return fmt.Sprintf("Failed: %v", err)
}

// MsgSkippedTo names the track that took over after a skip.
func MsgSkippedTo(title string) string {
	return fmt.Sprintf("%s, now playing **%s**", MsgSkipped, title)
}

func MsgQueueLines(lines []string) string {
	var b strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&b, "%d. %s\n", i, l)
	}
	return b.String()
}
