// Package tui is the full-screen renderer: a title bar, the scrolling
// transcript and a one-line input box.
package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ergochat/mudconsole/lib"
)

const defaultFrameInterval = time.Second / 30

// Submitter accepts typed lines without blocking; *lib.Session implements
// it. Lines are handed over from Update, so they arrive in the order typed.
type Submitter interface {
	TrySubmit(line string) error
}

// Source is the text being displayed; *lib.Transcript implements it.
type Source interface {
	Snapshot() (text string, seq uint64)
}

type Options struct {
	Title      string
	ColorLevel lib.ColorLevel
	// MaxBytes bounds the wrapped display text; 0 keeps everything.
	MaxBytes int
	// FrameInterval is the scroll animation step, 30 fps when zero.
	FrameInterval time.Duration
	Now           func() time.Time
}

// AppendMsg carries a transcript append into the program.
type AppendMsg struct {
	Event lib.AppendEvent
}

// SessionEndedMsg tells the program the connection is gone.
type SessionEndedMsg struct {
	Err error
}

type frameMsg time.Time

type Model struct {
	title      string
	session    Submitter
	transcript Source

	text *wrappedText
	seq  uint64

	viewport viewport.Model
	input    textinput.Model
	width    int
	ready    bool

	anim      *lib.ScrollAnimation
	animating bool
	frame     time.Duration
	now       func() time.Time

	notice string
	ended  bool
}

func New(session Submitter, transcript Source, opts Options) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "type a command"
	input.Focus()

	if opts.FrameInterval <= 0 {
		opts.FrameInterval = defaultFrameInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	text := &wrappedText{
		level:    opts.ColorLevel,
		maxBytes: opts.MaxBytes,
	}
	return Model{
		title:      opts.Title,
		session:    session,
		transcript: transcript,
		text:       text,
		input:      input,
		frame:      opts.FrameInterval,
		now:        opts.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case AppendMsg:
		return m, m.reveal(msg.Event)

	case frameMsg:
		return m, m.step()

	case SessionEndedMsg:
		m.ended = true
		if msg.Err != nil {
			m.notice = msg.Err.Error()
		}
		return m, tea.Quit

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			m.anim = nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			// a human scrolling takes over until the next append
			m.anim = nil
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resize(width, height int) {
	vpHeight := height - headerHeight - inputHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	wasAtBottom := !m.ready || m.viewport.AtBottom()
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.width = width
	// border and padding take four columns
	m.input.Width = width - 4 - lipgloss.Width(m.input.Prompt) - 1
	m.rebuild()
	m.viewport.SetContent(m.text.String())
	if wasAtBottom {
		m.viewport.GotoBottom()
	}
}

// rebuild wraps the whole transcript again.
func (m *Model) rebuild() {
	text, seq := m.transcript.Snapshot()
	m.text.width = m.width
	m.text.reset(text)
	m.seq = seq
}

// reveal adds the appended text without moving the view, then animates to
// the new bottom.
func (m *Model) reveal(ev lib.AppendEvent) tea.Cmd {
	if !m.ready {
		return nil
	}
	switch {
	case ev.Seq <= m.seq:
		// already part of the last rebuild
	case ev.Seq == m.seq+1:
		m.text.add(ev.Text)
		m.seq = ev.Seq
	default:
		m.rebuild()
	}
	pre := m.viewport.YOffset
	m.viewport.SetContent(m.text.String())
	m.viewport.SetYOffset(pre)
	anim := lib.NewScrollAnimation(m.viewport.YOffset, m.bottomOffset(), m.now(), ev.Scroll.Duration)
	m.anim = &anim
	if m.animating {
		return nil
	}
	m.animating = true
	return m.nextFrame()
}

func (m *Model) step() tea.Cmd {
	if m.anim == nil {
		m.animating = false
		return nil
	}
	offset, done := m.anim.At(m.now())
	m.viewport.SetYOffset(offset)
	if done {
		m.anim = nil
		m.animating = false
		return nil
	}
	return m.nextFrame()
}

func (m *Model) nextFrame() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) bottomOffset() int {
	bottom := m.viewport.TotalLineCount() - m.viewport.Height
	if bottom < 0 {
		return 0
	}
	return bottom
}

// submit hands the line over from the Update goroutine so lines keep their
// typed order. The input is only cleared once the session accepted it.
func (m *Model) submit() {
	err := m.session.TrySubmit(m.input.Value())
	switch {
	case err == nil:
		m.input.Reset()
	case errors.Is(err, lib.ErrSessionClosed):
	default:
		m.notice = err.Error()
	}
}

func (m Model) View() string {
	if !m.ready {
		return statusStyle.Render("connecting to " + m.title + "...")
	}
	header := titleStyle.Render(m.title)
	if m.notice != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, noticeStyle.Render(m.notice))
	} else if !m.viewport.AtBottom() && m.anim == nil {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, statusStyle.Render("scrolled back"))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		inputStyle.Width(m.width-2).Render(m.input.View()),
	)
}
