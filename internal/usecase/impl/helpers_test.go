package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"cooked/config"
	"cooked/internal/domain/entity"
	"cooked/internal/domain/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	cfg := &config.Config{
		Push: &config.PushConfig{TopicPrefix: "/topic"},
		Feed: &config.FeedConfig{Limit: 50, CompactLimit: 5},
		Sync: &config.SyncConfig{},
	}

	return cfg
}

func cookSession(id int64) *entity.Session {
	return &entity.Session{
		UserID:   id,
		Username: "cook-user",
		Token:    "cook-token",
		Roles:    entity.Roles{entity.RoleCook},
	}
}

func customerSession(id int64) *entity.Session {
	return &entity.Session{
		UserID:   id,
		Username: "customer-user",
		Token:    "customer-token",
		Roles:    entity.Roles{entity.RoleUser},
	}
}

// fakeChannel is an in-memory push channel.
type fakeChannel struct {
	topic  string
	frames chan []byte

	mu     sync.Mutex
	closed bool
	err    error
}

func newFakeChannel(topic string) *fakeChannel {
	return &fakeChannel{topic: topic, frames: make(chan []byte, 16)}
}

func (c *fakeChannel) Frames() <-chan []byte { return c.frames }

func (c *fakeChannel) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.err
}

func (c *fakeChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.frames)
	}

	return nil
}

// push sends a frame unless the channel is already closed.
func (c *fakeChannel) push(body string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	c.frames <- []byte(body)

	return true
}

// drop ends the channel as if the server went away.
func (c *fakeChannel) drop(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		c.err = err
		close(c.frames)
	}
}

func (c *fakeChannel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

// fakeTransport hands out fakeChannels and remembers them by topic.
type fakeTransport struct {
	mu       sync.Mutex
	channels map[string]*fakeChannel
	tokens   []string
	dials    int
	dialErr  error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{channels: make(map[string]*fakeChannel)}
}

var _ service.PushTransport = (*fakeTransport)(nil)

func (t *fakeTransport) Dial(_ context.Context, topic, token string) (service.PushChannel, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.dials++
	t.tokens = append(t.tokens, token)
	if t.dialErr != nil {
		return nil, t.dialErr
	}

	ch := newFakeChannel(topic)
	t.channels[topic] = ch

	return ch, nil
}

func (t *fakeTransport) channel(topic string) *fakeChannel {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.channels[topic]
}

// openChannels counts channels that are neither closed nor dropped.
func (t *fakeTransport) openChannels() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, ch := range t.channels {
		if !ch.isClosed() {
			n++
		}
	}

	return n
}

func (t *fakeTransport) dialCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.dials
}

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func timeout() <-chan time.Time {
	return time.After(waitFor)
}
