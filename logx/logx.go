// Package logx builds the pslog logger used across mudconsole.
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"

	"pkt.systems/pslog"
)

// New returns a structured logger writing to w at the named level.
func New(w io.Writer, level string) (pslog.Logger, error) {
	opts := pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.InfoLevel,
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "warn", "warning":
		opts.MinLevel = pslog.WarnLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return pslog.NewWithOptions(w, opts), nil
}

// Open returns a logger appending to path. An empty path discards everything,
// since stdout and stderr belong to the terminal UI.
func Open(path, level string) (pslog.Logger, io.Closer, error) {
	if path == "" {
		log, err := New(io.Discard, level)
		return log, nopCloser{}, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	log, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return log, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// WithSession annotates the logger with a session id when available.
func WithSession(log pslog.Logger, sessionID string) pslog.Logger {
	if sessionID != "" {
		log = log.With("session", sessionID)
	}
	return log
}

// WithMud annotates the logger with the server name and address.
func WithMud(log pslog.Logger, name, address string) pslog.Logger {
	if name != "" {
		log = log.With("mud", name)
	}
	if address != "" {
		log = log.With("address", address)
	}
	return log
}
