// Package push carries server-pushed booking events over STOMP on WebSocket.
package push

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"cooked/config"
	"cooked/internal/domain/service"
	"cooked/internal/errors"

	"github.com/coder/websocket"
	"github.com/go-stomp/stomp/v3"
	"go.uber.org/fx"
)

const (
	readLimit         = 1 << 20
	frameBuffer       = 16
	disconnectTimeout = 2 * time.Second
)

// ErrConnectionLost is reported when the server side ends the subscription.
var ErrConnectionLost = errors.New("push connection lost")

// stompTransport dials the push endpoint and subscribes to one topic per connection.
type stompTransport struct {
	cfg    *config.PushConfig
	logger *slog.Logger
}

// TransportParams holds dependencies for the transport, injected by Fx
type TransportParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewTransport creates the STOMP push transport from configuration
func NewTransport(params TransportParams) service.PushTransport {
	return New(params.Config.Push, params.Logger)
}

// New builds the transport without Fx.
func New(cfg *config.PushConfig, logger *slog.Logger) service.PushTransport {
	return &stompTransport{cfg: cfg, logger: logger}
}

// Dial opens the socket, sends CONNECT and SUBSCRIBE, and returns once the
// broker answered CONNECTED. The bearer token rides on both the HTTP
// upgrade and the CONNECT frame.
func (t *stompTransport) Dial(ctx context.Context, topic, token string) (service.PushChannel, error) {
	if t.cfg.Endpoint == "" {
		return nil, errors.New("push endpoint is not configured")
	}

	dialCtx := ctx
	if t.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, t.cfg.ConnectTimeout)
		defer cancel()
	}

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	ws, _, err := websocket.Dial(dialCtx, t.cfg.Endpoint, &websocket.DialOptions{
		HTTPHeader:   header,
		Subprotocols: []string{"v12.stomp", "v11.stomp"},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", t.cfg.Endpoint)
	}
	ws.SetReadLimit(readLimit)

	connCtx, connCancel := context.WithCancel(context.Background())
	netConn := websocket.NetConn(connCtx, ws, websocket.MessageText)

	opts := []func(*stomp.Conn) error{
		stomp.ConnOpt.AcceptVersion(stomp.V12),
		stomp.ConnOpt.HeartBeat(t.cfg.HeartbeatSend, t.cfg.HeartbeatRecv),
		stomp.ConnOpt.Host(hostOf(t.cfg.Endpoint)),
	}
	if token != "" {
		opts = append(opts, stomp.ConnOpt.Header("Authorization", "Bearer "+token))
	}

	type handshake struct {
		conn *stomp.Conn
		sub  *stomp.Subscription
		err  error
	}
	done := make(chan handshake, 1)

	go func() {
		conn, err := stomp.Connect(netConn, opts...)
		if err != nil {
			done <- handshake{err: errors.Wrap(err, "stomp connect")}

			return
		}

		sub, err := conn.Subscribe(topic, stomp.AckAuto)
		if err != nil {
			_ = conn.MustDisconnect()
			done <- handshake{err: errors.Wrapf(err, "subscribe %s", topic)}

			return
		}

		done <- handshake{conn: conn, sub: sub}
	}()

	var hs handshake
	select {
	case hs = <-done:
	case <-dialCtx.Done():
		_ = netConn.Close()
		connCancel()
		<-done

		return nil, errors.Wrap(dialCtx.Err(), "stomp handshake")
	}

	if hs.err != nil {
		_ = netConn.Close()
		connCancel()

		return nil, hs.err
	}

	ch := &stompChannel{
		conn:   hs.conn,
		sub:    hs.sub,
		ws:     ws,
		cancel: connCancel,
		frames: make(chan []byte, frameBuffer),
		closed: make(chan struct{}),
		topic:  topic,
		logger: t.logger,
	}
	go ch.run()

	return ch, nil
}

// stompChannel pumps MESSAGE bodies of one subscription into Frames.
type stompChannel struct {
	conn   *stomp.Conn
	sub    *stomp.Subscription
	ws     *websocket.Conn
	cancel context.CancelFunc

	frames    chan []byte
	closed    chan struct{}
	closeOnce sync.Once

	mu  sync.Mutex
	err error

	topic  string
	logger *slog.Logger
}

func (c *stompChannel) Frames() <-chan []byte {
	return c.frames
}

func (c *stompChannel) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.err
}

// Close disconnects gracefully, falling back to dropping the socket.
func (c *stompChannel) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)

		done := make(chan error, 1)
		go func() { done <- c.conn.Disconnect() }()

		select {
		case err := <-done:
			if err != nil {
				c.logger.Debug("STOMP disconnect returned error", slog.String("topic", c.topic), slog.Any("error", err))
			}
		case <-time.After(disconnectTimeout):
			_ = c.conn.MustDisconnect()
		}

		c.cancel()
		_ = c.ws.CloseNow()
	})

	return nil
}

func (c *stompChannel) run() {
	defer close(c.frames)

	for {
		select {
		case <-c.closed:
			return
		case msg, ok := <-c.sub.C:
			if !ok {
				c.fail(ErrConnectionLost)

				return
			}
			if msg.Err != nil {
				c.fail(errors.Wrap(msg.Err, "stomp"))

				return
			}

			select {
			case c.frames <- msg.Body:
			case <-c.closed:
				return
			}
		}
	}
}

// fail records why the stream ended unless the channel was closed locally.
func (c *stompChannel) fail(err error) {
	select {
	case <-c.closed:
		return
	default:
	}

	c.mu.Lock()
	c.err = err
	c.mu.Unlock()

	c.logger.Warn("Push subscription ended", slog.String("topic", c.topic), slog.Any("error", err))
}

func hostOf(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Hostname() == "" {
		return "/"
	}

	return u.Hostname()
}

// Module provides the push transport FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewTransport),
)
