package lib

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const wsFrameBacklog = 64

type wsFrame struct {
	data []byte
	err  error
}

// MudWebSocket is a MudSocket over a WebSocket endpoint. Each frame payload is
// treated as a slice of the server's byte stream.
type MudWebSocket struct {
	writeMutex  sync.Mutex
	closeOnce   sync.Once
	websocket   *websocket.Conn
	sendTimeout time.Duration

	frames  chan wsFrame
	done    chan struct{}
	readErr error
}

func NewMudWebSocket(wsUrl, origin string, tlsConfig *tls.Config) (*MudWebSocket, error) {
	var headers http.Header
	if origin != "" {
		headers = make(http.Header)
		u, err := url.Parse(origin)
		if err != nil {
			return nil, &ConnectError{Address: wsUrl, Err: err}
		}
		if u.Scheme == "" {
			u.Scheme = "https"
		}
		headers.Set("Origin", u.String())
	}

	dialer := websocket.Dialer{
		Subprotocols:     []string{"binary", "text"},
		TLSClientConfig:  tlsConfig,
		HandshakeTimeout: 30 * time.Second,
	}
	ws, resp, err := dialer.Dial(wsUrl, headers)
	if err != nil {
		if resp != nil {
			err = fmt.Errorf("%w: %d", err, resp.StatusCode)
		}
		return nil, &ConnectError{Address: wsUrl, Err: err}
	}
	result := &MudWebSocket{
		websocket:   ws,
		sendTimeout: DefaultSendTimeout,
		frames:      make(chan wsFrame, wsFrameBacklog),
		done:        make(chan struct{}),
	}
	go result.readLoop()
	return result, nil
}

// gorilla connections cannot be read again after a read deadline fires, so
// frames are pumped by a goroutine and DrainAvailable polls the channel.
func (w *MudWebSocket) readLoop() {
	defer close(w.frames)
	for {
		_, data, err := w.websocket.ReadMessage()
		select {
		case w.frames <- wsFrame{data: data, err: err}:
		case <-w.done:
			return
		}
		if err != nil {
			return
		}
	}
}

// DrainAvailable implements MudSocket.
func (w *MudWebSocket) DrainAvailable(pollTimeout time.Duration) ([]byte, error) {
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}
	if w.readErr != nil {
		return nil, w.readErr
	}

	var accumulated []byte
	timer := time.NewTimer(pollTimeout)
	defer timer.Stop()
	for {
		select {
		case frame, ok := <-w.frames:
			if !ok {
				w.readErr = &ReadError{Err: ErrorDisconnected}
				return accumulated, w.readErr
			}
			if frame.err != nil {
				w.readErr = &ReadError{Err: frame.err}
				return accumulated, w.readErr
			}
			accumulated = append(accumulated, frame.data...)
			// Reset discards any pending expiry since go1.23
			timer.Reset(pollTimeout)
		case <-timer.C:
			return accumulated, nil
		}
	}
}

// SetSendTimeout bounds how long SendLine may block; zero disables the bound.
func (w *MudWebSocket) SetSendTimeout(timeout time.Duration) {
	w.writeMutex.Lock()
	defer w.writeMutex.Unlock()
	w.sendTimeout = timeout
}

func (w *MudWebSocket) SendLine(line string) error {
	messageType := websocket.TextMessage
	if w.websocket.Subprotocol() == "binary" {
		messageType = websocket.BinaryMessage
	}
	w.writeMutex.Lock()
	defer w.writeMutex.Unlock()
	if w.sendTimeout > 0 {
		if err := w.websocket.SetWriteDeadline(time.Now().Add(w.sendTimeout)); err != nil {
			return &SendError{Err: err}
		}
	}
	if err := w.websocket.WriteMessage(messageType, []byte(line+LineTerminator)); err != nil {
		return &SendError{Err: err}
	}
	return nil
}

func (w *MudWebSocket) Disconnect() {
	w.closeOnce.Do(w.realDisconnect)
}

func (w *MudWebSocket) realDisconnect() {
	close(w.done)
	w.websocket.Close()
}

func (w *MudWebSocket) RemoteAddr() net.Addr {
	return w.websocket.RemoteAddr()
}
