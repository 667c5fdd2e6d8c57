package state

import (
	"sort"
	"sync"
	"time"

	"cooked/internal/domain/entity"
)

// Board is the reconciled booking list of one session.
//
// Writes that carry a generation are discarded once the board has been
// reset past it, so results of a pull issued by a torn-down session never
// land. Merges are monotonic: a booking never moves backwards along the
// lifecycle and a terminal booking is never revived by stale data.
type Board struct {
	mu         sync.Mutex
	bookings   map[int64]*entity.Booking
	removed    map[int64]struct{}
	inFlight   map[int64]entity.Action
	generation uint64
	version    uint64
	syncedAt   time.Time
}

// Snapshot is an opaque copy of the board taken before a local mutation.
type Snapshot struct {
	generation uint64
	bookings   map[int64]*entity.Booking
	removed    map[int64]struct{}
}

func NewBoard() *Board {
	return &Board{
		bookings: make(map[int64]*entity.Booking),
		removed:  make(map[int64]struct{}),
		inFlight: make(map[int64]entity.Action),
	}
}

// Generation identifies the current scope. Capture it before issuing a pull.
func (b *Board) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.generation
}

// Version increments on every applied change.
func (b *Board) Version() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.version
}

// SyncedAt is the time of the last applied wholesale replace.
func (b *Board) SyncedAt() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.syncedAt
}

// Replace reconciles the board with an authoritative list. Bookings missing
// from list are dropped. It reports false when generation is stale.
func (b *Board) Replace(generation uint64, list []*entity.Booking) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if generation != b.generation {
		return false
	}

	next := make(map[int64]*entity.Booking, len(list))
	for _, incoming := range list {
		if incoming == nil {
			continue
		}
		if _, gone := b.removed[incoming.ID]; gone {
			continue
		}
		next[incoming.ID] = mergeBooking(b.bookings[incoming.ID], next[incoming.ID], incoming)
	}

	b.bookings = next
	b.version++
	b.syncedAt = time.Now()

	return true
}

// Apply merges a single booking, e.g. an action response.
func (b *Board) Apply(generation uint64, booking *entity.Booking) bool {
	if booking == nil {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if generation != b.generation {
		return false
	}
	if _, gone := b.removed[booking.ID]; gone {
		return false
	}

	b.bookings[booking.ID] = mergeBooking(b.bookings[booking.ID], nil, booking)
	b.version++

	return true
}

// Remove drops a booking for good; later pulls will not bring it back.
func (b *Board) Remove(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.bookings[id]
	delete(b.bookings, id)
	b.removed[id] = struct{}{}
	b.version++

	return ok
}

// Get returns a copy of one booking.
func (b *Board) Get(id int64) (*entity.Booking, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	bk, ok := b.bookings[id]
	if !ok {
		return nil, false
	}

	return bk.Clone(), true
}

// List returns copies ordered newest first by creation time, then id.
func (b *Board) List() []*entity.Booking {
	b.mu.Lock()
	out := make([]*entity.Booking, 0, len(b.bookings))
	for _, bk := range b.bookings {
		out = append(out, bk.Clone())
	}
	b.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		ti, tj := createdAt(out[i]), createdAt(out[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}

		return out[i].ID > out[j].ID
	})

	return out
}

func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.bookings)
}

// Snapshot captures the board for a later Restore.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Snapshot{
		generation: b.generation,
		bookings:   make(map[int64]*entity.Booking, len(b.bookings)),
		removed:    make(map[int64]struct{}, len(b.removed)),
	}
	for id, bk := range b.bookings {
		s.bookings[id] = bk.Clone()
	}
	for id := range b.removed {
		s.removed[id] = struct{}{}
	}

	return s
}

// Restore puts the snapshot back verbatim, bypassing the monotonic merge.
// It refuses a snapshot from an earlier generation.
func (b *Board) Restore(s Snapshot) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s.bookings == nil || s.generation != b.generation {
		return false
	}

	b.bookings = make(map[int64]*entity.Booking, len(s.bookings))
	for id, bk := range s.bookings {
		b.bookings[id] = bk.Clone()
	}
	b.removed = make(map[int64]struct{}, len(s.removed))
	for id := range s.removed {
		b.removed[id] = struct{}{}
	}
	b.version++

	return true
}

// Begin marks an action in flight on a booking. It reports false if one
// already is.
func (b *Board) Begin(id int64, action entity.Action) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, busy := b.inFlight[id]; busy {
		return false
	}
	b.inFlight[id] = action

	return true
}

// End clears the in-flight mark.
func (b *Board) End(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.inFlight, id)
}

// InFlight returns the action in flight on a booking, if any.
func (b *Board) InFlight(id int64) (entity.Action, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.inFlight[id]

	return a, ok
}

// Reset empties the board and starts a new generation.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bookings = make(map[int64]*entity.Booking)
	b.removed = make(map[int64]struct{})
	b.inFlight = make(map[int64]entity.Action)
	b.generation++
	b.version++
	b.syncedAt = time.Time{}
}

// mergeBooking folds incoming into what the board already knows. dup is an
// earlier copy of the same id in the list being replaced.
func mergeBooking(existing, dup, incoming *entity.Booking) *entity.Booking {
	if dup != nil {
		existing = dup
	}
	if existing == nil {
		return incoming.Clone()
	}

	from, to := existing.EffectiveStatus(), incoming.EffectiveStatus()
	if !from.CanReach(to) {
		keep := existing.Clone()
		keep.RatedByCurrentUser = existing.RatedByCurrentUser || incoming.RatedByCurrentUser

		return keep
	}

	next := incoming.Clone()
	next.RatedByCurrentUser = existing.RatedByCurrentUser || incoming.RatedByCurrentUser
	if !next.ServiceCompletedAt.IsSet() && existing.ServiceCompletedAt.IsSet() {
		next.ServiceCompletedAt = entity.NewTimestamp(existing.ServiceCompletedAt.Time)
	}
	if !next.PaymentCompletedAt.IsSet() && existing.PaymentCompletedAt.IsSet() {
		next.PaymentCompletedAt = entity.NewTimestamp(existing.PaymentCompletedAt.Time)
	}
	if next.TotalCharges == nil && existing.TotalCharges != nil {
		v := *existing.TotalCharges
		next.TotalCharges = &v
	}

	return next
}

func createdAt(b *entity.Booking) time.Time {
	if b.CreatedAt.IsSet() {
		return b.CreatedAt.Time
	}

	return time.Time{}
}
