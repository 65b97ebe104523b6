package lib

import (
	"net"
	"sync"
	"time"
)

// fakeSocket is an in-memory MudSocket. Each queued drain is returned by one
// DrainAvailable call; an empty queue behaves like a quiet server.
type fakeSocket struct {
	sync.Mutex
	drains       [][]byte
	readErr      error
	sendErr      error
	sent         []string
	drainCalls   int
	disconnected int
}

func (f *fakeSocket) queue(data string) {
	f.Lock()
	defer f.Unlock()
	f.drains = append(f.drains, []byte(data))
}

func (f *fakeSocket) failReads(err error) {
	f.Lock()
	defer f.Unlock()
	f.readErr = err
}

func (f *fakeSocket) DrainAvailable(pollTimeout time.Duration) ([]byte, error) {
	f.Lock()
	defer f.Unlock()
	f.drainCalls++
	if len(f.drains) > 0 {
		next := f.drains[0]
		f.drains = f.drains[1:]
		return next, nil
	}
	if f.readErr != nil {
		return nil, &ReadError{Err: f.readErr}
	}
	return nil, nil
}

func (f *fakeSocket) SendLine(line string) error {
	f.Lock()
	defer f.Unlock()
	if f.sendErr != nil {
		return &SendError{Err: f.sendErr}
	}
	f.sent = append(f.sent, line+LineTerminator)
	return nil
}

func (f *fakeSocket) sentLines() []string {
	f.Lock()
	defer f.Unlock()
	return append([]string(nil), f.sent...)
}

func (f *fakeSocket) Disconnect() {
	f.Lock()
	defer f.Unlock()
	f.disconnected++
}

func (f *fakeSocket) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8000}
}

// eventRecorder collects append events.
type eventRecorder struct {
	sync.Mutex
	events []AppendEvent
}

func (r *eventRecorder) OnAppend(ev AppendEvent) {
	r.Lock()
	defer r.Unlock()
	r.events = append(r.events, ev)
}

func (r *eventRecorder) snapshot() []AppendEvent {
	r.Lock()
	defer r.Unlock()
	return append([]AppendEvent(nil), r.events...)
}
