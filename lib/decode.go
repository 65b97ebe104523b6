package lib

import (
	"bytes"
	"strings"
)

const hexDigits = "0123456789abcdef"

// DecodeASCII returns b as text if every byte is 7-bit ASCII.
func DecodeASCII(b []byte) (string, error) {
	for i, c := range b {
		if c >= 0x80 {
			return "", &DecodeError{Offset: i, Byte: c}
		}
	}
	return string(b), nil
}

// Decode converts raw server bytes to transcript text. Input that is not
// ASCII (usually telnet negotiation or 8-bit art) falls back to RawRepr, so
// the result is never empty for a non-nil input and never fails.
func Decode(b []byte) (text string, fellBack bool) {
	text, err := DecodeASCII(b)
	if err != nil {
		return RawRepr(b), true
	}
	return text, false
}

// RawRepr renders bytes as a quoted byte literal such as b'abc\xff\r\n'.
// Printable ASCII is kept as is; everything else is escaped.
func RawRepr(b []byte) string {
	quote := byte('\'')
	if bytes.IndexByte(b, '\'') >= 0 && bytes.IndexByte(b, '"') < 0 {
		quote = '"'
	}

	var out strings.Builder
	out.Grow(len(b) + 3)
	out.WriteByte('b')
	out.WriteByte(quote)
	for _, c := range b {
		switch {
		case c == quote || c == '\\':
			out.WriteByte('\\')
			out.WriteByte(c)
		case c == '\t':
			out.WriteString(`\t`)
		case c == '\n':
			out.WriteString(`\n`)
		case c == '\r':
			out.WriteString(`\r`)
		case c < 0x20 || c >= 0x7f:
			out.WriteString(`\x`)
			out.WriteByte(hexDigits[c>>4])
			out.WriteByte(hexDigits[c&0x0f])
		default:
			out.WriteByte(c)
		}
	}
	out.WriteByte(quote)
	return out.String()
}
