package lib

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pkt.systems/pslog"
)

const submitBacklog = 64

type SessionOptions struct {
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// Session runs the single loop that owns the connection: poll ticks and
// submitted lines are handled one at a time, so the transcript only ever has
// one writer.
type Session struct {
	conn       MudSocket
	transcript *Transcript
	reader     *Reader
	input      *InputChannel
	interval   time.Duration

	lines chan string

	runOnce  sync.Once
	done     chan struct{}
	errMutex sync.Mutex
	err      error
}

func NewSession(conn MudSocket, transcript *Transcript, opts SessionOptions) *Session {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	return &Session{
		conn:       conn,
		transcript: transcript,
		reader:     NewReader(conn, transcript, opts.PollTimeout),
		input:      NewInputChannel(conn, transcript),
		interval:   opts.PollInterval,
		lines:      make(chan string, submitBacklog),
		done:       make(chan struct{}),
	}
}

func (s *Session) Transcript() *Transcript {
	return s.transcript
}

// Done is closed once Run has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Err is the error Run returned, valid after Done is closed.
func (s *Session) Err() error {
	s.errMutex.Lock()
	defer s.errMutex.Unlock()
	return s.err
}

// Submit queues a typed line for sending.
func (s *Session) Submit(ctx context.Context, line string) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	select {
	case s.lines <- line:
		return nil
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySubmit queues a typed line without blocking, for callers that must keep
// their own ordering such as a UI event loop.
func (s *Session) TrySubmit(line string) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	select {
	case s.lines <- line:
		return nil
	default:
		return ErrSubmitBacklogFull
	}
}

// Run drives the session until ctx is cancelled or the connection fails.
// A connection failure is reported in the transcript before Run returns it.
// The connection is always closed on return. Run may only be called once.
func (s *Session) Run(ctx context.Context) (err error) {
	err = ErrSessionClosed
	s.runOnce.Do(func() {
		err = s.run(ctx)
		s.errMutex.Lock()
		s.err = err
		s.errMutex.Unlock()
		close(s.done)
	})
	return err
}

func (s *Session) run(ctx context.Context) error {
	log := pslog.Ctx(ctx)
	defer s.conn.Disconnect()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Info("session started", "remote", remoteString(s.conn))
	for {
		select {
		case <-ctx.Done():
			log.Info("session ended", "reason", "cancelled")
			return nil
		case <-ticker.C:
			if _, err := s.reader.Tick(ctx); err != nil {
				return s.fail(log, "disconnected", err)
			}
		case line := <-s.lines:
			s.input.SetPending(line)
			if err := s.input.Submit(); err != nil {
				return s.fail(log, "could not send line", err)
			}
		}
	}
}

func (s *Session) fail(log pslog.Logger, what string, err error) error {
	log.Error("session failed", "err", err)
	s.transcript.Append(OriginNotice, fmt.Sprintf("\n** mudconsole %s: %s\n", what, err.Error()))
	return err
}

func remoteString(conn MudSocket) string {
	if addr := conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}
