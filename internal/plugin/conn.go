package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nextlevelbuilder/pbgate/pkg/onebot"
)

const (
	defaultPort    = "8081"
	retryDelay     = 5 * time.Second
	pingInterval   = 5 * time.Second
	outboundBuffer = 128
	writeTimeout   = 10 * time.Second
)

// FrameHandler executes one inbound request frame and returns the response.
type FrameHandler func(ctx context.Context, frame *onebot.Frame) *onebot.Frame

type outbound struct {
	messageType int
	data        []byte
}

// Connection supervises the WebSocket link to one plugin for one bot. The
// supervisor cycles through the plugin's URLs round-robin and reconnects
// after a fixed pause until stopped.
type Connection struct {
	plugin  *Plugin
	selfID  int64
	handler FrameHandler

	urls     []string
	urlIndex atomic.Uint64
	eventSeq atomic.Int64

	out      chan outbound
	stop     chan struct{}
	stopOnce sync.Once
	ctx      context.Context
	cancel   context.CancelFunc

	// Overridable in tests; fixed in production.
	retryDelay   time.Duration
	pingInterval time.Duration

	dialer *websocket.Dialer
	log    *slog.Logger
}

// NewConnection builds a connection for one bot and plugin pair. URLs are
// shuffled once so a fleet of gateways spreads load across plugin endpoints.
func NewConnection(selfID int64, p *Plugin, handler FrameHandler) *Connection {
	urls := append([]string(nil), p.URLs...)
	rand.Shuffle(len(urls), func(i, j int) { urls[i], urls[j] = urls[j], urls[i] })

	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		plugin:       p,
		selfID:       selfID,
		handler:      handler,
		urls:         urls,
		out:          make(chan outbound, outboundBuffer),
		stop:         make(chan struct{}),
		ctx:          ctx,
		cancel:       cancel,
		retryDelay:   retryDelay,
		pingInterval: pingInterval,
		dialer:       &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		log:          slog.With("component", "plugin-conn", "plugin", p.Name, "bot", selfID),
	}
}

// Plugin returns the owning plugin config.
func (c *Connection) Plugin() *Plugin { return c.plugin }

// Run supervises the connection until Stop. Each failed attempt or dropped
// connection is followed by the retry pause; an empty URL list simply fails
// every attempt at the same cadence.
func (c *Connection) Run() {
	for {
		select {
		case <-c.stop:
			return
		default:
		}

		target := c.nextURL()
		if err := c.runOnce(target); err != nil {
			c.log.Warn("plugin connection lost", "url", target, "error", err)
		}

		select {
		case <-c.stop:
			return
		case <-time.After(c.retryDelay):
		}
	}
}

// Stop terminates the supervisor and the current connection. Idempotent.
func (c *Connection) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
		c.cancel()
	})
}

// HandleEvent wraps a translated event body in a frame and enqueues it.
// The echo is a per-connection monotonic sequence. A full outbound buffer
// drops the event rather than block the bot's event loop.
func (c *Connection) HandleEvent(body onebot.Body) {
	frame := &onebot.Frame{
		BotID:     c.selfID,
		FrameType: body.FrameType(),
		Echo:      strconv.FormatInt(c.eventSeq.Add(1), 10),
		Ok:        true,
		Data:      body,
	}
	c.send(outbound{messageType: websocket.BinaryMessage, data: frame.Marshal()})
}

func (c *Connection) send(msg outbound) {
	select {
	case c.out <- msg:
	default:
		c.log.Debug("outbound buffer full, frame dropped")
	}
}

// nextURL picks the next URL round-robin. With no URLs configured it
// returns "", which fails the dial and lands in the retry path.
func (c *Connection) nextURL() string {
	if len(c.urls) == 0 {
		return ""
	}
	idx := c.urlIndex.Add(1) - 1
	return c.urls[int(idx%uint64(len(c.urls)))]
}

// normalizeURL fills in the ws scheme and the default plugin port.
func normalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" {
		u.Scheme = "ws"
	}
	if u.Host == "" {
		return "", fmt.Errorf("no host in %q", raw)
	}
	if u.Port() == "" {
		u.Host = net.JoinHostPort(u.Hostname(), defaultPort)
	}
	return u.String(), nil
}

func (c *Connection) runOnce(raw string) error {
	target, err := normalizeURL(raw)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}

	header := http.Header{}
	header.Set("x-self-id", strconv.FormatInt(c.selfID, 10))
	conn, _, err := c.dialer.Dial(target, header)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()
	c.log.Info("plugin connected", "url", target)

	conn.SetPingHandler(func(payload string) error {
		c.send(outbound{messageType: websocket.PongMessage, data: []byte(payload)})
		return nil
	})

	// Reader dispatches inbound binary frames; any read error ends the
	// session. Each request runs detached, so concurrency is bounded only
	// by the driver's own rate limiting.
	readErr := make(chan error, 1)
	go func() {
		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			if msgType == websocket.BinaryMessage {
				go c.handleBinary(data)
			}
		}
	}()

	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeTimeout))
			return nil
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeTimeout)); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
		case msg := <-c.out:
			if msg.messageType == websocket.PongMessage {
				if err := conn.WriteControl(websocket.PongMessage, msg.data, time.Now().Add(writeTimeout)); err != nil {
					return fmt.Errorf("pong: %w", err)
				}
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(msg.messageType, msg.data); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		case err := <-readErr:
			return err
		}
	}
}

func (c *Connection) handleBinary(data []byte) {
	frame, err := onebot.UnmarshalFrame(data)
	if err != nil {
		c.log.Warn("bad frame from plugin", "error", err)
		return
	}
	resp := c.handler(c.ctx, frame)
	if resp == nil {
		return
	}
	c.send(outbound{messageType: websocket.BinaryMessage, data: resp.Marshal()})
}
