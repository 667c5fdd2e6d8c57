package state

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	domainerrors "cooked/internal/domain/errors"
	"cooked/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFeed(limit int) *Feed {
	return NewFeed(limit, WithLogger(quietLogger()))
}

func event(kind entity.EventKind, msg string) entity.PushEvent {
	return entity.PushEvent{Type: string(kind), Message: msg}
}

func TestFeed_NewestFirstAndBounded(t *testing.T) {
	f := newTestFeed(DefaultFeedLimit)
	for i := range 50 {
		_, ok := f.Ingest(event(entity.EventNewBookingRequest, fmt.Sprintf("m%d", i)))
		require.True(t, ok)
	}
	require.Equal(t, 50, f.Len())

	oldest := f.Entries()[49]
	assert.Equal(t, "m0", oldest.Message)

	added, ok := f.Ingest(event(entity.EventBookingAccepted, "new"))
	require.True(t, ok)

	entries := f.Entries()
	assert.Len(t, entries, 50)
	assert.Equal(t, added.LocalID, entries[0].LocalID)
	assert.Equal(t, "new", entries[0].Message)
	assert.Equal(t, "m1", entries[49].Message)
	for _, e := range entries {
		assert.NotEqual(t, oldest.LocalID, e.LocalID)
	}
}

func TestFeed_CompactBound(t *testing.T) {
	f := newTestFeed(DefaultCompactLimit)
	for i := range 8 {
		f.Ingest(event(entity.EventNewBookingRequest, fmt.Sprintf("m%d", i)))
	}

	entries := f.Entries()
	require.Len(t, entries, 5)
	assert.Equal(t, "m7", entries[0].Message)
	assert.Equal(t, "m3", entries[4].Message)
	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i-1].Seq, entries[i].Seq)
	}
}

func TestFeed_IngestStampsEntry(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f := NewFeed(10, WithLogger(quietLogger()), WithClock(func() time.Time { return fixed }))

	entry, ok := f.IngestPush([]byte(`{"type":"BOOKING_ACCEPTED","message":"ok","bookingId":7}`))
	require.True(t, ok)

	assert.NotEqual(t, uuid.Nil, entry.LocalID)
	assert.False(t, entry.Read)
	assert.Equal(t, fixed, entry.ReceivedAt)
	require.True(t, entry.Timestamp.IsSet())
	assert.True(t, fixed.Equal(entry.Timestamp.Time))
	require.NotNil(t, entry.BookingID)
	assert.Equal(t, int64(7), *entry.BookingID)
}

func TestFeed_KeepsServerTimestamp(t *testing.T) {
	f := newTestFeed(10)

	entry, ok := f.IngestPush([]byte(`{"type":"BOOKING_REJECTED","message":"no","timestamp":"2024-01-02T03:04:05Z"}`))
	require.True(t, ok)
	assert.Equal(t, 2024, entry.Timestamp.Year())
	assert.Equal(t, time.January, entry.Timestamp.Month())
}

func TestFeed_DropsMalformedAndUnknown(t *testing.T) {
	f := newTestFeed(10)

	for _, raw := range []string{
		`not json`,
		`[]`,
		`{"message":"no type"}`,
		`{"type":"SOMETHING_ELSE","message":"?"}`,
		`{"type":"BOOKING_ACCEPTED","timestamp":{"bad":true}}`,
	} {
		_, ok := f.IngestPush([]byte(raw))
		assert.False(t, ok, raw)
	}
	assert.Equal(t, 0, f.Len())
}

func TestDecodePushEvent_MalformedError(t *testing.T) {
	_, err := DecodePushEvent([]byte(`{`))
	require.Error(t, err)

	var malformed *domainerrors.MalformedPushEventError
	assert.ErrorAs(t, err, &malformed)
	assert.Equal(t, "MALFORMED_PUSH_EVENT", malformed.ErrorCode())
}

func TestFeed_MarkAllRead(t *testing.T) {
	f := newTestFeed(10)
	f.Ingest(event(entity.EventNewBookingRequest, "a"))
	f.Ingest(event(entity.EventBookingAccepted, "b"))
	f.Ingest(event(entity.EventRatingSubmitted, "c"))

	assert.Equal(t, 3, f.UnreadCount(""))
	assert.Equal(t, 1, f.UnreadCount("BOOKING_"))

	f.MarkAllRead()

	assert.Equal(t, 0, f.UnreadCount(""))
	assert.Equal(t, 0, f.UnreadCount("BOOKING_"))
	assert.Equal(t, 0, f.UnreadCount("NEW_"))
}

func TestFeed_MarkOneRead(t *testing.T) {
	f := newTestFeed(10)
	f.Ingest(event(entity.EventNewBookingRequest, "a"))
	target, _ := f.Ingest(event(entity.EventBookingAccepted, "b"))
	f.Ingest(event(entity.EventBookingRejected, "c"))

	before := f.Entries()
	require.True(t, f.MarkOneRead(target.LocalID))
	after := f.Entries()

	changed := 0
	for i := range after {
		if before[i].Read != after[i].Read {
			changed++
			assert.Equal(t, target.LocalID, after[i].LocalID)
		}
	}
	assert.Equal(t, 1, changed)
	assert.Equal(t, 2, f.UnreadCount(""))

	assert.False(t, f.MarkOneRead(uuid.New()))
}

func TestFeed_EntriesAreCopies(t *testing.T) {
	f := newTestFeed(10)
	f.Ingest(event(entity.EventBookingAccepted, "a"))

	entries := f.Entries()
	entries[0].Read = true
	entries[0].Message = "mutated"

	assert.Equal(t, 1, f.UnreadCount(""))
	assert.Equal(t, "a", f.Entries()[0].Message)
}

func TestFeed_InsertKeepsLocalID(t *testing.T) {
	general := newTestFeed(10)
	compact := newTestFeed(2)

	entry, _ := general.Ingest(event(entity.EventNewBookingRequest, "a"))
	compact.Insert(entry)

	assert.True(t, compact.MarkOneRead(entry.LocalID))
	assert.Equal(t, 1, general.UnreadCount(""))
}

func TestFeed_Reset(t *testing.T) {
	f := newTestFeed(10)
	first, _ := f.Ingest(event(entity.EventNewBookingRequest, "a"))
	f.Reset()
	assert.Equal(t, 0, f.Len())

	second, _ := f.Ingest(event(entity.EventNewBookingRequest, "b"))
	assert.Greater(t, second.Seq, first.Seq)
}
