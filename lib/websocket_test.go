package lib

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func wsServer(t *testing.T, handler func(*websocket.Conn)) string {
	t.Helper()
	upgrader := websocket.Upgrader{Subprotocols: []string{"binary"}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handler(conn)
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func drainUntil(t *testing.T, socket MudSocket, want int) ([]byte, error) {
	t.Helper()
	var got []byte
	deadline := time.Now().Add(5 * time.Second)
	for len(got) < want && time.Now().Before(deadline) {
		data, err := socket.DrainAvailable(20 * time.Millisecond)
		got = append(got, data...)
		if err != nil {
			return got, err
		}
	}
	return got, nil
}

func TestWebSocketRoundTrip(t *testing.T) {
	received := make(chan string, 1)
	url := wsServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.BinaryMessage, []byte("Welcome to "))
		conn.WriteMessage(websocket.BinaryMessage, []byte("Barren Realms!\n"))
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.BinaryMessage {
			received <- "wrong message type"
			return
		}
		received <- string(data)
		// stay open until the client hangs up
		conn.ReadMessage()
	})

	socket, err := NewConnection(ConnectionConfig{Host: url, SendTimeout: time.Second})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer socket.Disconnect()

	got, err := drainUntil(t, socket, len("Welcome to Barren Realms!\n"))
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if string(got) != "Welcome to Barren Realms!\n" {
		t.Fatalf("unexpected drain %q", got)
	}

	if err := socket.SendLine("north"); err != nil {
		t.Fatalf("send: %v", err)
	}
	select {
	case line := <-received:
		if line != "north\n\r" {
			t.Fatalf("server received %q", line)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for server to receive line")
	}
}

func TestWebSocketDrainReportsClose(t *testing.T) {
	url := wsServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.BinaryMessage, []byte("bye"))
	})

	socket, err := NewMudWebSocket(url, "", nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer socket.Disconnect()

	got, err := drainUntil(t, socket, 1<<20)
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *ReadError, got %v", err)
	}
	if string(got) != "bye" {
		t.Fatalf("expected bytes before close, got %q", got)
	}
	if _, err := socket.DrainAvailable(time.Millisecond); !errors.As(err, &readErr) {
		t.Fatalf("expected read error to stick, got %v", err)
	}
}

func TestWebSocketConnectError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	defer server.Close()

	_, err := NewConnection(ConnectionConfig{Host: url})
	var connectErr *ConnectError
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected *ConnectError, got %v", err)
	}
}
