package lib

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/gofrs/flock"
)

// ErrTranscriptLocked means another session is already writing the file.
var ErrTranscriptLocked = errors.New("transcript file is in use by another session")

// TranscriptLog appends every transcript chunk to a file, so that text evicted
// from memory is still on disk.
type TranscriptLog struct {
	sync.Mutex
	outfile *os.File
	lock    *flock.Flock
	err     error
}

func OpenTranscriptLog(filename string) (result *TranscriptLog, err error) {
	lock := flock.New(filename + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock transcript %s: %w", filename, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", filename, ErrTranscriptLocked)
	}
	outfile, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		lock.Unlock()
		return
	}
	return &TranscriptLog{
		outfile: outfile,
		lock:    lock,
	}, nil
}

func (t *TranscriptLog) Close() error {
	if t == nil {
		return nil
	}
	t.Lock()
	defer t.Unlock()
	err := t.outfile.Close()
	if unlockErr := t.lock.Unlock(); err == nil {
		err = unlockErr
	}
	return err
}

// OnAppend implements TranscriptListener. The first write error is kept and
// later chunks are dropped.
func (t *TranscriptLog) OnAppend(ev AppendEvent) {
	if t == nil {
		return
	}
	t.Lock()
	defer t.Unlock()
	if t.err != nil {
		return
	}
	if _, err := t.outfile.WriteString(ev.Text); err != nil {
		t.err = err
	}
}

// Err returns the first write error, if any.
func (t *TranscriptLog) Err() error {
	if t == nil {
		return nil
	}
	t.Lock()
	defer t.Unlock()
	return t.err
}
