package domain

import "errors"

var (
	// ErrNoVoiceChannel means the caller is not connected to any voice channel.
	ErrNoVoiceChannel = errors.New("not in a voice channel")
	// ErrTransportFailure wraps errors returned by the voice transport on connect.
	ErrTransportFailure = errors.New("voice transport failure")
	// ErrNothingPlaying is returned by playback controls that have nothing to act on.
	ErrNothingPlaying = errors.New("nothing is playing")
	// ErrSessionClosed is returned by a session handle whose guild has already left voice.
	ErrSessionClosed = errors.New("voice session closed")
)
