// Package state holds the client-side merged view of pushed and pulled data.
package state

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	domainerrors "cooked/internal/domain/errors"
	"cooked/internal/domain/entity"
	"cooked/internal/errors"

	"github.com/google/uuid"
)

const (
	// DefaultFeedLimit bounds the general notification feed.
	DefaultFeedLimit = 50
	// DefaultCompactLimit bounds the cook dashboard preview.
	DefaultCompactLimit = 5
)

// DecodePushEvent parses one push frame. Anything that is not a JSON object
// with a non-empty type fails with MalformedPushEventError.
func DecodePushEvent(raw []byte) (entity.PushEvent, error) {
	var ev entity.PushEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return entity.PushEvent{}, domainerrors.NewMalformedPushEventError(err, raw)
	}
	if strings.TrimSpace(ev.Type) == "" {
		return entity.PushEvent{}, domainerrors.NewMalformedPushEventError(errors.New("missing type"), raw)
	}

	return ev, nil
}

// FeedOption configures a Feed.
type FeedOption func(*Feed)

// WithClock overrides the time source.
func WithClock(now func() time.Time) FeedOption {
	return func(f *Feed) { f.now = now }
}

// WithLogger sets the logger used for dropped events.
func WithLogger(logger *slog.Logger) FeedOption {
	return func(f *Feed) { f.logger = logger }
}

// Feed is a bounded, newest-first list of notifications with read tracking.
// It is safe for concurrent use.
type Feed struct {
	mu      sync.Mutex
	limit   int
	entries []entity.FeedEntry
	seq     uint64

	now    func() time.Time
	logger *slog.Logger
}

// NewFeed creates an empty feed holding at most limit entries.
func NewFeed(limit int, opts ...FeedOption) *Feed {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	f := &Feed{
		limit:   limit,
		entries: make([]entity.FeedEntry, 0, limit),
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// IngestPush decodes and ingests a raw frame. Malformed or unknown events
// are logged and dropped.
func (f *Feed) IngestPush(raw []byte) (entity.FeedEntry, bool) {
	ev, err := DecodePushEvent(raw)
	if err != nil {
		f.logger.Warn("Dropping malformed push event", slog.Any("error", err))

		return entity.FeedEntry{}, false
	}

	return f.Ingest(ev)
}

// Ingest stamps ev with a local id and prepends it.
func (f *Feed) Ingest(ev entity.PushEvent) (entity.FeedEntry, bool) {
	if ev.Kind() == entity.EventUnknown {
		f.logger.Warn("Dropping push event of unknown type", slog.String("type", ev.Type))

		return entity.FeedEntry{}, false
	}

	now := f.now()
	if !ev.Timestamp.IsSet() {
		ev.Timestamp = entity.NewTimestamp(now)
	}

	entry := entity.FeedEntry{
		PushEvent:  ev,
		LocalID:    uuid.New(),
		ReceivedAt: now,
	}

	return f.Insert(entry), true
}

// Insert prepends an already stamped entry, keeping its LocalID so two feeds
// fed from the same event can be marked read together.
func (f *Feed) Insert(entry entity.FeedEntry) entity.FeedEntry {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	entry = entry.Clone()
	entry.Seq = f.seq

	if len(f.entries) >= f.limit {
		f.entries = f.entries[:f.limit-1]
	}
	f.entries = append(f.entries, entity.FeedEntry{})
	copy(f.entries[1:], f.entries)
	f.entries[0] = entry

	return entry.Clone()
}

// MarkAllRead sets every entry read.
func (f *Feed) MarkAllRead() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.entries {
		f.entries[i].Read = true
	}
}

// MarkOneRead sets the entry with id read and reports whether it exists.
func (f *Feed) MarkOneRead(id uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.entries {
		if f.entries[i].LocalID == id {
			f.entries[i].Read = true

			return true
		}
	}

	return false
}

// Entries returns a newest-first copy.
func (f *Feed) Entries() []entity.FeedEntry {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]entity.FeedEntry, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.Clone()
	}

	return out
}

// UnreadCount counts unread entries whose type starts with prefix.
// An empty prefix counts all of them.
func (f *Feed) UnreadCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, e := range f.entries {
		if !e.Read && strings.HasPrefix(e.Type, prefix) {
			n++
		}
	}

	return n
}

func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.entries)
}

func (f *Feed) Limit() int {
	return f.limit
}

// Reset drops every entry. The sequence keeps counting.
func (f *Feed) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = f.entries[:0]
}
