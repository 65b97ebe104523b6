package lib

import (
	"strings"
	"testing"
	"time"
)

func TestTranscriptAppendOrdering(t *testing.T) {
	transcript := NewTranscript(TranscriptOptions{})
	if transcript.Contents() != "" {
		t.Fatalf("expected empty transcript, got %q", transcript.Contents())
	}

	chunks := []string{"Welcome", " to ", "", "Barren Realms!\n", "north\n\r"}
	var want strings.Builder
	for i, chunk := range chunks {
		origin := OriginServer
		if i%2 == 1 {
			origin = OriginLocal
		}
		transcript.Append(origin, chunk)
		want.WriteString(chunk)
		if transcript.Contents() != want.String() {
			t.Fatalf("after %d appends want %q, got %q", i+1, want.String(), transcript.Contents())
		}
	}
	if transcript.Len() != want.Len() {
		t.Fatalf("expected length %d, got %d", want.Len(), transcript.Len())
	}
	if transcript.Chunks() != len(chunks) {
		t.Fatalf("expected %d chunks, got %d", len(chunks), transcript.Chunks())
	}
}

func TestTranscriptEmitsOneScrollRequestPerAppend(t *testing.T) {
	transcript := NewTranscript(TranscriptOptions{ScrollDuration: time.Second})
	recorder := &eventRecorder{}
	transcript.Subscribe(recorder)

	transcript.Append(OriginServer, "one")
	transcript.Append(OriginLocal, "two\n\r")
	transcript.Append(OriginNotice, "three")

	events := recorder.snapshot()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	wantOrigins := []Origin{OriginServer, OriginLocal, OriginNotice}
	for i, ev := range events {
		if ev.Seq != uint64(i+1) {
			t.Errorf("event %d: expected seq %d, got %d", i, i+1, ev.Seq)
		}
		if ev.Origin != wantOrigins[i] {
			t.Errorf("event %d: expected origin %v, got %v", i, wantOrigins[i], ev.Origin)
		}
		if ev.Scroll.Duration != time.Second {
			t.Errorf("event %d: expected 1s scroll, got %v", i, ev.Scroll.Duration)
		}
	}
	if events[1].Text != "two\n\r" {
		t.Errorf("unexpected event text %q", events[1].Text)
	}
}

func TestTranscriptUnsubscribe(t *testing.T) {
	transcript := NewTranscript(TranscriptOptions{})
	first := &eventRecorder{}
	second := &eventRecorder{}
	unsubscribe := transcript.Subscribe(first)
	transcript.Subscribe(second)

	transcript.Append(OriginServer, "a")
	unsubscribe()
	unsubscribe()
	transcript.Append(OriginServer, "b")

	if n := len(first.snapshot()); n != 1 {
		t.Fatalf("expected 1 event after unsubscribe, got %d", n)
	}
	if n := len(second.snapshot()); n != 2 {
		t.Fatalf("expected 2 events for remaining listener, got %d", n)
	}
}

func TestTranscriptListenerCanReadContents(t *testing.T) {
	transcript := NewTranscript(TranscriptOptions{})
	var seen []string
	transcript.Subscribe(ListenerFunc(func(ev AppendEvent) {
		seen = append(seen, transcript.Contents())
	}))
	transcript.Append(OriginServer, "a")
	transcript.Append(OriginServer, "b")
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "ab" {
		t.Fatalf("unexpected contents seen by listener: %q", seen)
	}
}

func TestTranscriptEvictsOldestChunks(t *testing.T) {
	transcript := NewTranscript(TranscriptOptions{MaxBytes: 10})
	total := 0
	for _, chunk := range []string{"aaaa", "bbbb", "cccc", "dd"} {
		transcript.Append(OriginServer, chunk)
		total += len(chunk)
	}
	if transcript.Contents() != "bbbbccccdd" {
		t.Fatalf("unexpected retained text %q", transcript.Contents())
	}
	if transcript.Len() > 10 {
		t.Fatalf("retained %d bytes over the cap", transcript.Len())
	}
	if transcript.Evicted()+int64(transcript.Len()) != int64(total) {
		t.Fatalf("evicted %d + retained %d != appended %d", transcript.Evicted(), transcript.Len(), total)
	}
}

func TestTranscriptKeepsOversizedNewestChunk(t *testing.T) {
	transcript := NewTranscript(TranscriptOptions{MaxBytes: 4})
	transcript.Append(OriginServer, "ab")
	transcript.Append(OriginServer, "0123456789")
	if transcript.Contents() != "0123456789" {
		t.Fatalf("unexpected retained text %q", transcript.Contents())
	}
	if transcript.Chunks() != 1 {
		t.Fatalf("expected one chunk, got %d", transcript.Chunks())
	}
	if transcript.Evicted() != 2 {
		t.Fatalf("expected 2 evicted bytes, got %d", transcript.Evicted())
	}
}

func TestTranscriptSnapshotReportsLastSeq(t *testing.T) {
	transcript := NewTranscript(TranscriptOptions{MaxBytes: 8})
	text, seq := transcript.Snapshot()
	if text != "" || seq != 0 {
		t.Fatalf("empty transcript gave %q at seq %d", text, seq)
	}

	transcript.Append(OriginServer, "abcd")
	transcript.Append(OriginServer, "efgh")
	transcript.Append(OriginServer, "ijkl")
	text, seq = transcript.Snapshot()
	if seq != 3 {
		t.Fatalf("expected seq 3, got %d", seq)
	}
	if text != "efghijkl" || text != transcript.Contents() {
		t.Fatalf("unexpected snapshot %q", text)
	}
}
