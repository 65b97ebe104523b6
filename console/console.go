// Copyright (c) 2023 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the ISC license

package console

import (
	"io"
	"os"
	"strings"

	"github.com/ergochat/irc-go/ircreader"

	"github.com/ergochat/mudconsole/lib"
)

// Console is an abstract representation of keyboard input and screen output
type Console interface {
	io.Writer

	Readline() (string, error)

	// this is a hook to perform terminal cleanup, as in chzyer/readline
	Close() error
}

type stdioConsole struct {
	reader ircreader.Reader
	out    io.Writer
}

func NewStandardConsole() (Console, error) {
	return newStdioConsole(os.Stdin, os.Stdout), nil
}

func newStdioConsole(in io.Reader, out io.Writer) *stdioConsole {
	result := &stdioConsole{out: out}
	result.reader.Initialize(in, lib.InitialBufferSize, lib.MaxBufferSize)
	return result
}

func (s *stdioConsole) Readline() (string, error) {
	lineBytes, err := s.reader.ReadLine()
	return strings.TrimRight(string(lineBytes), "\r\n"), err
}

func (s *stdioConsole) Write(b []byte) (n int, err error) {
	return s.out.Write(b)
}

func (s *stdioConsole) Close() error {
	return nil
}
