//go:build !minimal

package console

import (
	"errors"
	"io"
	"syscall"

	"github.com/ergochat/readline"
	"golang.org/x/term"
)

func NewConsole(enableReadline bool, historyFile string) (Console, error) {
	if !(enableReadline && term.IsTerminal(int(syscall.Stdin))) {
		return NewStandardConsole()
	}
	return readline.NewFromConfig(&readline.Config{
		Prompt:       "> ",
		HistoryFile:  historyFile,
		HistoryLimit: 1000,
	})
}

// IsQuit reports whether a Readline error means the user asked to leave
// (end of input or ^C).
func IsQuit(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt)
}
