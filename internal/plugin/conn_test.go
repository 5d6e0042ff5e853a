package plugin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nextlevelbuilder/pbgate/pkg/onebot"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func echoHandler(ctx context.Context, frame *onebot.Frame) *onebot.Frame {
	return &onebot.Frame{
		BotID:     frame.BotID,
		FrameType: frame.FrameType + onebot.ResponseOffset,
		Echo:      frame.Echo,
		Ok:        true,
	}
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestConnectionReconnects(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		// Drop the connection immediately to force the retry path.
		conn.Close()
	}))
	defer srv.Close()

	c := NewConnection(42, &Plugin{Name: "flaky", URLs: []string{wsURL(srv)}}, echoHandler)
	c.retryDelay = 10 * time.Millisecond
	done := make(chan struct{})
	go func() {
		c.Run()
		close(done)
	}()

	deadline := time.After(5 * time.Second)
	for attempts.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d attempts before deadline", attempts.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	c.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not exit after Stop")
	}
}

func TestConnectionHandshakeAndEcho(t *testing.T) {
	selfID := make(chan string, 1)
	type exchange struct {
		resp *onebot.Frame
		err  error
	}
	result := make(chan exchange, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		selfID <- r.Header.Get("x-self-id")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		req := &onebot.Frame{
			BotID:     42,
			FrameType: onebot.FrameTypeGetLoginInfoReq,
			Echo:      "corr-1",
			Data:      &onebot.GetLoginInfoReq{},
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, req.Marshal()); err != nil {
			result <- exchange{err: err}
			return
		}
		_, data, err := conn.ReadMessage()
		if err != nil {
			result <- exchange{err: err}
			return
		}
		resp, err := onebot.UnmarshalFrame(data)
		result <- exchange{resp: resp, err: err}
	}))
	defer srv.Close()

	c := NewConnection(42, &Plugin{Name: "echo", URLs: []string{wsURL(srv)}}, echoHandler)
	c.retryDelay = 10 * time.Millisecond
	go c.Run()
	defer c.Stop()

	select {
	case got := <-selfID:
		if got != "42" {
			t.Errorf("x-self-id = %q, want %q", got, "42")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no handshake")
	}

	select {
	case ex := <-result:
		if ex.err != nil {
			t.Fatalf("exchange: %v", ex.err)
		}
		if ex.resp.BotID != 42 || ex.resp.Echo != "corr-1" || !ex.resp.Ok {
			t.Errorf("response envelope: %+v", ex.resp)
		}
		if ex.resp.FrameType != onebot.FrameTypeGetLoginInfoReq+onebot.ResponseOffset {
			t.Errorf("frame_type = %d", ex.resp.FrameType)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no response from gateway")
	}
}

func TestConnectionPingsWithPayload(t *testing.T) {
	pings := make(chan string, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.SetPingHandler(func(payload string) error {
			pings <- payload
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	c := NewConnection(42, &Plugin{Name: "pinger", URLs: []string{wsURL(srv)}}, echoHandler)
	c.retryDelay = 10 * time.Millisecond
	c.pingInterval = 20 * time.Millisecond
	go c.Run()
	defer c.Stop()

	select {
	case payload := <-pings:
		if payload != "ping" {
			t.Errorf("ping payload = %q, want %q", payload, "ping")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no ping received")
	}
}

func TestHandleEventEchoMonotonicAndLossy(t *testing.T) {
	// No Run: nothing drains the outbound buffer, so it fills and the
	// excess drops silently.
	c := NewConnection(42, &Plugin{Name: "slow"}, echoHandler)
	for i := 0; i < outboundBuffer+10; i++ {
		c.HandleEvent(&onebot.FriendAddNoticeEvent{UserID: int64(i)})
	}
	if got := len(c.out); got != outboundBuffer {
		t.Errorf("buffered = %d, want %d", got, outboundBuffer)
	}

	var prev int64
	for i := 0; i < 3; i++ {
		msg := <-c.out
		frame, err := onebot.UnmarshalFrame(msg.data)
		if err != nil {
			t.Fatalf("UnmarshalFrame: %v", err)
		}
		seq, err := strconv.ParseInt(frame.Echo, 10, 64)
		if err != nil {
			t.Fatalf("echo %q: %v", frame.Echo, err)
		}
		if seq <= prev {
			t.Errorf("echo %d not increasing after %d", seq, prev)
		}
		prev = seq
		if frame.BotID != 42 || frame.FrameType != onebot.FrameTypeFriendAddNoticeEvent {
			t.Errorf("frame envelope: %+v", frame)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in, want string
		wantErr  bool
	}{
		{in: "ws://localhost:9000/ws", want: "ws://localhost:9000/ws"},
		{in: "ws://localhost/ws", want: "ws://localhost:8081/ws"},
		{in: "ws://10.0.0.1", want: "ws://10.0.0.1:8081"},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := normalizeURL(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("normalizeURL(%q): want error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("normalizeURL(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("normalizeURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
