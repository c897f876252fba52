package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "voice_sessions_active",
		Help: "Number of guilds with a live voice session",
	})

	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voice_sessions_created_total",
		Help: "The total number of voice sessions created",
	})

	SessionsRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_sessions_removed_total",
		Help: "The total number of voice sessions torn down",
	}, []string{"reason"})

	TracksEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voice_tracks_enqueued_total",
		Help: "The total number of tracks added to a queue",
	})

	PlaybackCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_playback_commands_total",
		Help: "Playback control operations by outcome",
	}, []string{"op", "result"})

	TransportErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_transport_errors_total",
		Help: "Errors returned by the voice transport",
	}, []string{"op"})

	ResolverRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "media_resolver_request_duration_seconds",
		Help:    "Duration of media metadata HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "status"})

	ResolverRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "media_resolver_requests_total",
		Help: "Total number of media metadata HTTP requests",
	}, []string{"endpoint", "status"})

	ResolveResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "media_resolve_results_total",
		Help: "Track resolutions by outcome",
	}, []string{"result"})

	MetadataCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "media_metadata_cache_lookups_total",
		Help: "Metadata cache lookups by result",
	}, []string{"result"})
)
