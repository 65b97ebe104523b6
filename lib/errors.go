package lib

import (
	"errors"
	"fmt"
)

var (
	// ErrorDisconnected indicates that this socket is disconnected.
	ErrorDisconnected = errors.New("Socket is disconnected")
	// ErrSessionClosed is returned when submitting to a session whose loop has exited.
	ErrSessionClosed = errors.New("session is closed")
	// ErrSubmitBacklogFull is returned by TrySubmit while the loop is behind.
	ErrSubmitBacklogFull = errors.New("too many lines waiting to be sent")
)

// ConnectError is returned when the stream to the server cannot be established.
type ConnectError struct {
	Address string
	Err     error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("could not connect to %s: %v", e.Address, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// ReadError is returned when the stream fails or closes while draining.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read failed: %v", e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// SendError is returned when a line could not be written to the stream.
type SendError struct {
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send failed: %v", e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// DecodeError reports the first byte that is not 7-bit ASCII.
type DecodeError struct {
	Offset int
	Byte   byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("byte 0x%02x at offset %d is not ascii", e.Byte, e.Offset)
}
