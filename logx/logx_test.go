package logx

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWithSessionAddsField(t *testing.T) {
	capture := &logCapture{}
	logger, err := New(capture, "info")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	WithSession(logger, "abc-123").Info("hello")

	entry := capture.firstEntry(t)
	if entry["session"] != "abc-123" {
		t.Fatalf("expected session field, got %+v", entry)
	}
}

func TestWithMudSkipsEmptyFields(t *testing.T) {
	capture := &logCapture{}
	logger, err := New(capture, "")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	WithMud(logger, "Barren Realms", "").Info("hello")

	entry := capture.firstEntry(t)
	if entry["mud"] != "Barren Realms" {
		t.Fatalf("expected mud field, got %+v", entry)
	}
	if _, ok := entry["address"]; ok {
		t.Fatalf("did not expect address for empty value")
	}
}

func TestLevelFiltering(t *testing.T) {
	capture := &logCapture{}
	logger, err := New(capture, "error")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("dropped")
	if capture.buf.Len() != 0 {
		t.Fatalf("info entry written at error level: %s", capture.buf.String())
	}
}

func TestUnknownLevel(t *testing.T) {
	if _, err := New(&logCapture{}, "loud"); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
}

func TestOpenAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mudconsole.log")
	logger, closer, err := Open(path, "debug")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	logger.Debug("connected", "remote", "127.0.0.1:8000")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	capture := &logCapture{}
	capture.buf.Write(data)
	if entry := capture.firstEntry(t); entry["remote"] != "127.0.0.1:8000" {
		t.Fatalf("expected remote field, got %+v", entry)
	}
}

func TestOpenWithoutPathDiscards(t *testing.T) {
	logger, closer, err := Open("", "info")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	logger.Info("nowhere")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

func (c *logCapture) firstEntry(t *testing.T) map[string]any {
	t.Helper()
	data := c.buf.Bytes()
	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		idx = len(data)
	}
	line := bytes.TrimSpace(data[:idx])
	entry := map[string]any{}
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("parse log entry: %v", err)
	}
	return entry
}
