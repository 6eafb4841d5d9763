package ws

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type fakeSocket struct {
	mu       sync.Mutex
	frames   [][]byte
	types    []int
	closed   bool
	readErr  chan error
	readOnce sync.Once
}

func newFakeSocket() *fakeSocket {
	return &fakeSocket{readErr: make(chan error, 1)}
}

func (f *fakeSocket) SetReadLimit(int64)                {}
func (f *fakeSocket) SetReadDeadline(time.Time) error   { return nil }
func (f *fakeSocket) SetPongHandler(func(string) error) {}

func (f *fakeSocket) ReadMessage() (int, []byte, error) {
	if err, ok := <-f.readErr; ok {
		return 0, nil, err
	}
	return 0, nil, io.EOF
}

func (f *fakeSocket) SetWriteDeadline(time.Time) error { return nil }

func (f *fakeSocket) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.types = append(f.types, messageType)
	f.frames = append(f.frames, append([]byte(nil), data...))
	return nil
}

func (f *fakeSocket) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSocket) disconnect() {
	f.readOnce.Do(func() {
		f.readErr <- errors.New("peer gone")
		close(f.readErr)
	})
}

func (f *fakeSocket) written() ([]int, [][]byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.types...), append([][]byte(nil), f.frames...)
}

func TestConnectionDeliversQueuedFrames(t *testing.T) {
	sock := newFakeSocket()
	conn := NewConnection("200012345678", sock, time.Second, zap.NewNop(), nil)

	conn.Send([]byte(`{"title":"hello"}`))

	done := make(chan struct{})
	go func() {
		conn.Start(context.Background())
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		types, frames := sock.written()
		if len(frames) > 0 {
			if types[0] != websocket.TextMessage {
				t.Fatalf("frame type = %d, want text", types[0])
			}
			if string(frames[0]) != `{"title":"hello"}` {
				t.Fatalf("unexpected frame payload %q", frames[0])
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("frame was never written")
		case <-time.After(5 * time.Millisecond):
		}
	}

	sock.disconnect()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after read failure")
	}
}

func TestSendAfterCloseIsNoop(t *testing.T) {
	sock := newFakeSocket()
	removed := make(chan *Connection, 1)
	conn := NewConnection("200012345678", sock, time.Second, zap.NewNop(), func(c *Connection) {
		removed <- c
	})

	sock.disconnect()
	conn.Start(context.Background())

	select {
	case got := <-removed:
		if got != conn {
			t.Fatal("onClose received a different connection")
		}
	default:
		t.Fatal("onClose was not invoked")
	}

	sock.mu.Lock()
	closed := sock.closed
	sock.mu.Unlock()
	if !closed {
		t.Fatal("underlying socket was not closed")
	}

	conn.Send([]byte("late"))
	conn.Send([]byte("late again"))
}
