package lib

import (
	"context"
	"time"

	"pkt.systems/pslog"
)

const DefaultPollInterval = time.Second

// Reader moves pending server bytes into the transcript, one tick at a time.
type Reader struct {
	conn        MudSocket
	transcript  *Transcript
	pollTimeout time.Duration
}

func NewReader(conn MudSocket, transcript *Transcript, pollTimeout time.Duration) *Reader {
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}
	return &Reader{
		conn:        conn,
		transcript:  transcript,
		pollTimeout: pollTimeout,
	}
}

// Tick drains the connection once. Nothing is appended when the server was
// quiet. Bytes that arrived before a read error are still appended.
func (r *Reader) Tick(ctx context.Context) (appended bool, err error) {
	raw, err := r.conn.DrainAvailable(r.pollTimeout)
	if len(raw) > 0 {
		text, fellBack := Decode(raw)
		if fellBack {
			pslog.Ctx(ctx).Debug("server output is not ascii, showing raw bytes", "bytes", len(raw))
		}
		r.transcript.Append(OriginServer, text)
		appended = true
	}
	return appended, err
}
