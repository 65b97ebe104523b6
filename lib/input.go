package lib

import "unicode/utf8"

// InputChannel holds the line being typed and submits it.
type InputChannel struct {
	conn       MudSocket
	transcript *Transcript
	pending    []byte
}

func NewInputChannel(conn MudSocket, transcript *Transcript) *InputChannel {
	return &InputChannel{
		conn:       conn,
		transcript: transcript,
	}
}

// Type appends keystrokes to the pending line.
func (i *InputChannel) Type(s string) {
	i.pending = append(i.pending, s...)
}

// Backspace removes the last character, reporting whether there was one.
func (i *InputChannel) Backspace() bool {
	if len(i.pending) == 0 {
		return false
	}
	_, size := utf8.DecodeLastRune(i.pending)
	i.pending = i.pending[:len(i.pending)-size]
	return true
}

// SetPending replaces the pending line, for widgets that edit it themselves.
func (i *InputChannel) SetPending(s string) {
	i.pending = append(i.pending[:0], s...)
}

func (i *InputChannel) Pending() string {
	return string(i.pending)
}

// Submit sends the pending line and, once the send succeeded, echoes it into
// the transcript and clears it. An empty line is sent as a bare terminator.
// On failure nothing is echoed and the pending line is kept.
func (i *InputChannel) Submit() error {
	line := string(i.pending)
	if err := i.conn.SendLine(line); err != nil {
		return err
	}
	i.transcript.Append(OriginLocal, line+LineTerminator)
	i.pending = i.pending[:0]
	return nil
}
