package console

import (
	"io"
	"sync"

	"github.com/ergochat/mudconsole/lib"
)

// Renderer prints transcript appends to a line console. The terminal's own
// scrollback follows new output, so scroll requests need no handling here.
// Local echo is skipped because the line editor already shows what was typed.
type Renderer struct {
	sync.Mutex
	out   io.Writer
	level lib.ColorLevel
	err   error
}

func NewRenderer(out io.Writer, level lib.ColorLevel) *Renderer {
	return &Renderer{
		out:   out,
		level: level,
	}
}

// OnAppend implements lib.TranscriptListener.
func (r *Renderer) OnAppend(ev lib.AppendEvent) {
	if ev.Origin == lib.OriginLocal {
		return
	}
	r.Lock()
	defer r.Unlock()
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.out, lib.FormatForTerminal(ev.Text, r.level))
}

// Err returns the first write error.
func (r *Renderer) Err() error {
	r.Lock()
	defer r.Unlock()
	return r.err
}
