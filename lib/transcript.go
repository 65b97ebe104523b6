package lib

import (
	"strings"
	"sync"
	"time"
)

const (
	DefaultTranscriptMaxBytes = 8 * 1024 * 1024
	DefaultScrollDuration     = time.Second
)

// Origin tells renderers who produced a transcript chunk.
type Origin int

const (
	OriginServer Origin = iota
	OriginLocal
	OriginNotice
)

func (o Origin) String() string {
	switch o {
	case OriginServer:
		return "server"
	case OriginLocal:
		return "local"
	case OriginNotice:
		return "notice"
	default:
		return "unknown"
	}
}

// ScrollRequest asks the renderer to animate the view to the bottom of the
// content over Duration.
type ScrollRequest struct {
	Duration time.Duration
}

// AppendEvent is emitted exactly once for every Append.
type AppendEvent struct {
	Seq    uint64
	Origin Origin
	Text   string
	Scroll ScrollRequest
}

type TranscriptListener interface {
	OnAppend(AppendEvent)
}

// ListenerFunc adapts a function to TranscriptListener.
type ListenerFunc func(AppendEvent)

func (f ListenerFunc) OnAppend(ev AppendEvent) {
	f(ev)
}

type TranscriptOptions struct {
	// MaxBytes caps the retained text; 0 keeps everything.
	MaxBytes       int
	ScrollDuration time.Duration
}

type subscriber struct {
	id       uint64
	listener TranscriptListener
}

// Transcript is the append-only scrollback of a session.
//
// Once MaxBytes is exceeded the oldest chunks are evicted whole; the newest
// chunk is always kept even if it alone is larger than the cap.
type Transcript struct {
	// appendMutex serializes Append so events reach listeners in order
	appendMutex sync.Mutex

	mu           sync.RWMutex
	chunks       []string
	size         int
	evicted      int64
	seq          uint64
	maxBytes     int
	scroll       time.Duration
	nextListener uint64
	listeners    []subscriber
}

func NewTranscript(opts TranscriptOptions) *Transcript {
	if opts.MaxBytes < 0 {
		opts.MaxBytes = 0
	}
	if opts.ScrollDuration < 0 {
		opts.ScrollDuration = 0
	}
	return &Transcript{
		maxBytes: opts.MaxBytes,
		scroll:   opts.ScrollDuration,
	}
}

// Append adds text to the end of the transcript and notifies listeners.
// Listeners must not call Append.
func (t *Transcript) Append(origin Origin, text string) {
	t.appendMutex.Lock()
	defer t.appendMutex.Unlock()

	t.mu.Lock()
	t.chunks = append(t.chunks, text)
	t.size += len(text)
	t.evictLocked()
	t.seq++
	event := AppendEvent{
		Seq:    t.seq,
		Origin: origin,
		Text:   text,
		Scroll: ScrollRequest{Duration: t.scroll},
	}
	listeners := make([]subscriber, len(t.listeners))
	copy(listeners, t.listeners)
	t.mu.Unlock()

	for _, sub := range listeners {
		sub.listener.OnAppend(event)
	}
}

func (t *Transcript) evictLocked() {
	if t.maxBytes <= 0 {
		return
	}
	drop := 0
	for t.size > t.maxBytes && drop < len(t.chunks)-1 {
		t.size -= len(t.chunks[drop])
		t.evicted += int64(len(t.chunks[drop]))
		drop++
	}
	if drop == 0 {
		return
	}
	// copy down so evicted strings can be collected
	remaining := copy(t.chunks, t.chunks[drop:])
	for i := remaining; i < len(t.chunks); i++ {
		t.chunks[i] = ""
	}
	t.chunks = t.chunks[:remaining]
}

// Contents returns every retained chunk concatenated in append order.
func (t *Transcript) Contents() string {
	text, _ := t.Snapshot()
	return text
}

// Snapshot returns Contents together with the Seq of the last append it
// includes, so a listener can tell which events it already has.
func (t *Transcript) Snapshot() (text string, seq uint64) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var b strings.Builder
	b.Grow(t.size)
	for _, chunk := range t.chunks {
		b.WriteString(chunk)
	}
	return b.String(), t.seq
}

// Len is the number of retained bytes.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Chunks is the number of retained chunks.
func (t *Transcript) Chunks() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.chunks)
}

// Evicted is the number of bytes dropped by the size cap so far.
func (t *Transcript) Evicted() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.evicted
}

// Subscribe registers l for every future append.
func (t *Transcript) Subscribe(l TranscriptListener) (unsubscribe func()) {
	t.mu.Lock()
	t.nextListener++
	id := t.nextListener
	t.listeners = append(t.listeners, subscriber{id: id, listener: l})
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			for i, sub := range t.listeners {
				if sub.id == id {
					t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
					return
				}
			}
		})
	}
}
