// Copyright (c) 2017 Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package lib

import (
	"crypto/tls"
	"errors"
	"net"
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	InitialBufferSize = 1024
	MaxBufferSize     = 1024 * 1024

	DefaultReadChunkSize = 4096
	DefaultPollTimeout   = 50 * time.Millisecond
	DefaultSendTimeout   = 10 * time.Second

	// LineTerminator ends every line we send: LF followed by CR, the reverse
	// of telnet's CRLF. MUD servers treat both as end of line.
	LineTerminator = "\n\r"
)

type MudSocket interface {
	// DrainAvailable reads everything the server has sent so far, waiting at
	// most pollTimeout for each further chunk. It returns an empty slice and
	// nil error when nothing was pending.
	DrainAvailable(pollTimeout time.Duration) ([]byte, error)
	SendLine(string) error
	Disconnect()
	RemoteAddr() net.Addr
}

// Socket is a MudSocket over a plain or TLS stream connection.
type Socket struct {
	connection  net.Conn
	sendTimeout time.Duration

	readMutex sync.Mutex
	chunk     []byte

	writeMutex sync.Mutex
	closeOnce  sync.Once
	closed     bool
}

// ConnectSocket connects to the given host/port.
func ConnectSocket(host string, port int, useTLS bool, tlsConfig *tls.Config) (*Socket, error) {
	// assemble address
	address := net.JoinHostPort(host, strconv.Itoa(port))

	var conn net.Conn
	var err error

	if useTLS {
		conn, err = tls.Dial("tcp", address, tlsConfig)
	} else {
		conn, err = net.Dial("tcp", address)
	}

	if err != nil {
		return nil, &ConnectError{Address: address, Err: err}
	}

	return MakeSocket(conn), nil
}

// MakeSocket makes a socket from the given connection.
func MakeSocket(conn net.Conn) *Socket {
	return &Socket{
		connection:  conn,
		sendTimeout: DefaultSendTimeout,
		chunk:       make([]byte, DefaultReadChunkSize),
	}
}

// SetReadChunkSize changes the size of each individual read.
func (s *Socket) SetReadChunkSize(size int) {
	if size <= 0 {
		size = DefaultReadChunkSize
	}
	s.readMutex.Lock()
	defer s.readMutex.Unlock()
	s.chunk = make([]byte, size)
}

// SetSendTimeout bounds how long SendLine may block; zero disables the bound.
func (s *Socket) SetSendTimeout(timeout time.Duration) {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	s.sendTimeout = timeout
}

// DrainAvailable implements MudSocket.
func (s *Socket) DrainAvailable(pollTimeout time.Duration) ([]byte, error) {
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}

	s.readMutex.Lock()
	defer s.readMutex.Unlock()

	var accumulated []byte
	for {
		if err := s.connection.SetReadDeadline(time.Now().Add(pollTimeout)); err != nil {
			return accumulated, &ReadError{Err: err}
		}
		n, err := s.connection.Read(s.chunk)
		accumulated = append(accumulated, s.chunk[:n]...)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return accumulated, nil
			}
			return accumulated, &ReadError{Err: err}
		}
	}
}

// SendLine sends a single line plus LineTerminator to the socket.
func (s *Socket) SendLine(line string) error {
	out := make([]byte, len(line)+len(LineTerminator))
	copy(out, line)
	copy(out[len(line):], LineTerminator)

	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	if s.closed {
		return &SendError{Err: ErrorDisconnected}
	}
	if s.sendTimeout > 0 {
		if err := s.connection.SetWriteDeadline(time.Now().Add(s.sendTimeout)); err != nil {
			return &SendError{Err: err}
		}
	}
	// net.Conn.Write either writes everything or returns an error
	if _, err := s.connection.Write(out); err != nil {
		return &SendError{Err: err}
	}
	return nil
}

// Disconnect severs our connection to the server.
func (s *Socket) Disconnect() {
	s.closeOnce.Do(s.realDisconnect)
}

func (s *Socket) realDisconnect() {
	// closing first unblocks a pending Read or Write before we take the lock
	s.connection.Close()
	s.writeMutex.Lock()
	s.closed = true
	s.writeMutex.Unlock()
}

func (s *Socket) RemoteAddr() net.Addr {
	return s.connection.RemoteAddr()
}
