//go:build minimal

package console

import (
	"errors"
	"io"
)

func NewConsole(enableReadline bool, historyFile string) (Console, error) {
	return NewStandardConsole()
}

func IsQuit(err error) bool {
	return errors.Is(err, io.EOF)
}
