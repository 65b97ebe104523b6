// Copyright (c) 2017 Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package lib

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

var newlineNormalizer = strings.NewReplacer("\r\n", "\n", "\n\r", "\n", "\r", "")

// FormatForTerminal prepares transcript text for display. Servers colour
// their output with ANSI sequences; those are passed through unless the
// terminal cannot show them.
func FormatForTerminal(text string, level ColorLevel) string {
	if level == ColorLevelNone {
		return xansi.Strip(text)
	}
	return text
}

// NormalizeNewlines folds the CRLF, LFCR and bare CR line endings MUD servers
// mix freely into plain LF, for renderers that lay out lines themselves.
func NormalizeNewlines(text string) string {
	return newlineNormalizer.Replace(text)
}
