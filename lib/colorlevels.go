// Copyright (c) 2023 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the ISC license

package lib

import (
	"os"

	"github.com/jwalton/go-supportscolor"
)

// ColorLevel represents the ANSI color level supported by the terminal.
type ColorLevel int

const (
	// ColorLevelNone represents a terminal that does not support colors.
	ColorLevelNone ColorLevel = 0
	// ColorLevelBasic represents a terminal with basic 16 color support.
	ColorLevelBasic ColorLevel = 1
	// ColorLevelAnsi256 represents a terminal with 256 color support.
	ColorLevelAnsi256 ColorLevel = 2
	// ColorLevelAnsi16m represents a terminal with full true color support.
	ColorLevelAnsi16m ColorLevel = 3
)

// DetectColorLevel asks go-supportscolor about stdout.
func DetectColorLevel() ColorLevel {
	support := supportscolor.SupportsColor(os.Stdout.Fd())
	return ColorLevel(support.Level)
}
