package voice

import (
	"time"

	"voice-session-bot/internal/core/domain"

	"github.com/google/uuid"
)

// TrackQueue is a FIFO of queue entries. The head is the track currently
// handed to the voice connection; everything behind it is pending.
// It is not safe for concurrent use; Session guards it.
type TrackQueue struct {
	entries []domain.QueueEntry
}

func NewTrackQueue() *TrackQueue {
	return &TrackQueue{}
}

// Push appends a new entry and returns it with its position (0 = now playing).
func (q *TrackQueue) Push(track domain.TrackDescriptor, requestedBy string, at time.Time) (domain.QueueEntry, int) {
	entry := domain.QueueEntry{
		ID:          uuid.NewString(),
		Track:       track,
		RequestedBy: requestedBy,
		EnqueuedAt:  at,
	}
	q.entries = append(q.entries, entry)
	return entry, len(q.entries) - 1
}

// Pop removes the head. The second return value is false on an empty queue.
func (q *TrackQueue) Pop() (domain.QueueEntry, bool) {
	if len(q.entries) == 0 {
		return domain.QueueEntry{}, false
	}
	head := q.entries[0]
	q.entries[0] = domain.QueueEntry{}
	q.entries = q.entries[1:]
	return head, true
}

func (q *TrackQueue) Head() (domain.QueueEntry, bool) {
	if len(q.entries) == 0 {
		return domain.QueueEntry{}, false
	}
	return q.entries[0], true
}

func (q *TrackQueue) Clear() {
	q.entries = nil
}

func (q *TrackQueue) Len() int {
	return len(q.entries)
}

// Entries returns a copy of at most limit entries from the head.
// A non-positive limit returns every entry.
func (q *TrackQueue) Entries(limit int) []domain.QueueEntry {
	n := len(q.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.QueueEntry, n)
	copy(out, q.entries[:n])
	return out
}

// Update applies fn to the entry with the given ID, wherever it sits in the
// queue, and returns the updated copy.
func (q *TrackQueue) Update(id string, fn func(*domain.QueueEntry)) (domain.QueueEntry, bool) {
	for i := range q.entries {
		if q.entries[i].ID == id {
			fn(&q.entries[i])
			return q.entries[i], true
		}
	}
	return domain.QueueEntry{}, false
}
