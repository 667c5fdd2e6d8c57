package push

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cooked/config"

	"github.com/coder/websocket"
	"github.com/go-stomp/stomp/v3/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBroker accepts one STOMP session, records what the client sent and
// publishes the given bodies on the first subscription.
type fakeBroker struct {
	t         *testing.T
	bodies    []string
	holdOpen  bool
	authSeen  chan string
	topicSeen chan string
}

func (b *fakeBroker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.authSeen <- r.Header.Get("Authorization")

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{Subprotocols: []string{"v12.stomp"}})
	if err != nil {
		return
	}
	defer ws.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn := websocket.NetConn(ctx, ws, websocket.MessageText)
	reader := frame.NewReader(conn)
	writer := frame.NewWriter(conn)

	connect := readFrame(reader)
	if connect == nil {
		return
	}
	b.authSeen <- connect.Header.Get("Authorization")

	if err := writer.Write(frame.New(frame.CONNECTED, frame.Version, "1.2", frame.HeartBeat, "0,0")); err != nil {
		return
	}

	subscribe := readFrame(reader)
	if subscribe == nil {
		return
	}
	b.topicSeen <- subscribe.Header.Get(frame.Destination)
	subID := subscribe.Header.Get(frame.Id)

	for i, body := range b.bodies {
		msg := frame.New(frame.MESSAGE,
			frame.Destination, subscribe.Header.Get(frame.Destination),
			frame.Subscription, subID,
			frame.MessageId, strings.Repeat("m", i+1),
			frame.ContentType, "application/json",
		)
		msg.Body = []byte(body)
		if err := writer.Write(msg); err != nil {
			return
		}
	}

	if b.holdOpen {
		for readFrame(reader) != nil {
		}
	}
}

func readFrame(r *frame.Reader) *frame.Frame {
	for {
		f, err := r.Read()
		if err != nil {
			return nil
		}
		if f != nil {
			return f
		}
	}
}

func newBroker(t *testing.T, bodies []string, holdOpen bool) (*fakeBroker, string) {
	t.Helper()

	b := &fakeBroker{
		t:         t,
		bodies:    bodies,
		holdOpen:  holdOpen,
		authSeen:  make(chan string, 2),
		topicSeen: make(chan string, 1),
	}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	return b, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws-cookapp/websocket"
}

func newTestTransport(endpoint string) *stompTransport {
	return &stompTransport{
		cfg:    &config.PushConfig{Endpoint: endpoint, ConnectTimeout: 5 * time.Second},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestStompTransport_DeliversMessages(t *testing.T) {
	broker, endpoint := newBroker(t, []string{`{"type":"BOOKING_ACCEPTED"}`, `{"type":"BOOKING_REJECTED"}`}, true)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := newTestTransport(endpoint).Dial(ctx, "/topic/cook/2/notifications", "tok")
	require.NoError(t, err)
	defer ch.Close()

	assert.Equal(t, "Bearer tok", <-broker.authSeen)
	assert.Equal(t, "Bearer tok", <-broker.authSeen)
	assert.Equal(t, "/topic/cook/2/notifications", <-broker.topicSeen)

	var got []string
	for len(got) < 2 {
		select {
		case body, ok := <-ch.Frames():
			require.True(t, ok)
			got = append(got, string(body))
		case <-ctx.Done():
			t.Fatal("timed out waiting for frames")
		}
	}
	assert.Equal(t, []string{`{"type":"BOOKING_ACCEPTED"}`, `{"type":"BOOKING_REJECTED"}`}, got)
}

func TestStompTransport_CloseEndsFrames(t *testing.T) {
	_, endpoint := newBroker(t, nil, true)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := newTestTransport(endpoint).Dial(ctx, "/topic/user/1/notifications", "tok")
	require.NoError(t, err)

	require.NoError(t, ch.Close())
	require.NoError(t, ch.Close())

	select {
	case _, ok := <-ch.Frames():
		assert.False(t, ok)
	case <-ctx.Done():
		t.Fatal("frames not closed")
	}
	assert.NoError(t, ch.Err())
}

func TestStompTransport_ServerHangupReportsError(t *testing.T) {
	_, endpoint := newBroker(t, nil, false)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := newTestTransport(endpoint).Dial(ctx, "/topic/user/1/notifications", "tok")
	require.NoError(t, err)
	defer ch.Close()

	select {
	case _, ok := <-ch.Frames():
		assert.False(t, ok)
	case <-ctx.Done():
		t.Fatal("frames not closed after hangup")
	}
	assert.Error(t, ch.Err())
}

func TestStompTransport_DialFailure(t *testing.T) {
	_, err := newTestTransport("ws://127.0.0.1:1/ws").Dial(context.Background(), "/topic/user/1/notifications", "tok")
	assert.Error(t, err)
}

func TestStompTransport_RequiresEndpoint(t *testing.T) {
	_, err := newTestTransport("").Dial(context.Background(), "/topic/user/1/notifications", "tok")
	assert.Error(t, err)
}
