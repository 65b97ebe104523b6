// Copyright (c) 2017 Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package lib

const (
	// SemVer is the full version of mudconsole.
	SemVer = "0.1.0"
)
