package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"github.com/ergochat/mudconsole/lib"
)

// wrappedText holds transcript text already formatted and wrapped to the
// viewport width. Appends only format what they add; the unterminated last
// line is kept raw because the next chunk may continue it.
type wrappedText struct {
	width    int
	level    lib.ColorLevel
	maxBytes int

	lines []string
	size  int
	tail  string
}

// reset rebuilds from the full transcript, after a resize or missed events.
func (w *wrappedText) reset(text string) {
	w.lines = nil
	w.size = 0
	w.tail = ""
	w.add(text)
}

func (w *wrappedText) add(text string) {
	text = w.tail + lib.NormalizeNewlines(text)
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			break
		}
		for _, line := range strings.Split(w.wrap(text[:i]), "\n") {
			w.lines = append(w.lines, line)
			w.size += len(line) + 1
		}
		text = text[i+1:]
	}
	w.tail = text

	// the transcript itself is capped; keep the display within the same budget
	for w.maxBytes > 0 && w.size > w.maxBytes && len(w.lines) > 0 {
		w.size -= len(w.lines[0]) + 1
		w.lines[0] = ""
		w.lines = w.lines[1:]
	}
}

func (w *wrappedText) wrap(line string) string {
	line = lib.FormatForTerminal(line, w.level)
	if w.width > 0 {
		line = xansi.Wrap(line, w.width, "")
	}
	return line
}

func (w *wrappedText) String() string {
	var b strings.Builder
	b.Grow(w.size + len(w.tail))
	for _, line := range w.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(w.wrap(w.tail))
	return b.String()
}
