//go:build windows

package ansi

import (
	"sync"

	"golang.org/x/sys/windows"
)

var (
	ansiErr  error
	ansiOnce sync.Once
)

// EnableANSI turns on VT processing so server colour codes and the
// full-screen view render in cmd.exe and PowerShell consoles.
func EnableANSI() error {
	ansiOnce.Do(func() {
		ansiErr = realEnableANSI()
	})
	return ansiErr
}

func realEnableANSI() error {
	modes := []struct {
		handle uint32
		flag   uint32
	}{
		{windows.STD_OUTPUT_HANDLE, windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING},
		{windows.STD_INPUT_HANDLE, windows.ENABLE_VIRTUAL_TERMINAL_INPUT},
	}
	for _, m := range modes {
		if err := addConsoleMode(m.handle, m.flag); err != nil {
			return err
		}
	}
	return nil
}

func addConsoleMode(stdhandle uint32, modeFlag uint32) error {
	handle, err := windows.GetStdHandle(stdhandle)
	if err != nil {
		return err
	}

	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return err
	}
	if mode&modeFlag == modeFlag {
		return nil
	}
	return windows.SetConsoleMode(handle, mode|modeFlag)
}
