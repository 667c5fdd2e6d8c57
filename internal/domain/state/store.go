package state

import "log/slog"

// Store groups the merged state of the signed-in session: the general
// feed, the cook dashboard preview and the booking board.
type Store struct {
	Feed    *Feed
	Preview *Feed
	Board   *Board
}

func NewStore(feedLimit, previewLimit int, logger *slog.Logger) *Store {
	return &Store{
		Feed:    NewFeed(feedLimit, WithLogger(logger)),
		Preview: NewFeed(previewLimit, WithLogger(logger)),
		Board:   NewBoard(),
	}
}

// Reset drops everything and invalidates in-flight pulls.
func (s *Store) Reset() {
	s.Feed.Reset()
	s.Preview.Reset()
	s.Board.Reset()
}
