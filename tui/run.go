package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ergochat/mudconsole/lib"
)

// Forward delivers transcript appends to a running program.
func Forward(p *tea.Program) lib.TranscriptListener {
	return lib.ListenerFunc(func(ev lib.AppendEvent) {
		p.Send(AppendMsg{Event: ev})
	})
}

// Run shows the session full screen until the user quits or the session ends.
func Run(ctx context.Context, session *lib.Session, opts Options) error {
	model := New(session, session.Transcript(), opts)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	unsubscribe := session.Transcript().Subscribe(Forward(p))
	defer unsubscribe()

	go func() {
		<-session.Done()
		p.Send(SessionEndedMsg{Err: session.Err()})
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
