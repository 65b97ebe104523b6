// Copyright (c) 2017 Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package lib

import (
	"crypto/tls"
	"net/url"
	"time"
)

type ConnectionConfig struct {
	Host      string
	Port      int
	TLS       bool
	TLSConfig *tls.Config
	Origin    string

	ReadChunkSize int
	SendTimeout   time.Duration
}

// IsWebSocketURL reports whether host names a ws:// or wss:// endpoint.
func IsWebSocketURL(host string) bool {
	u, err := url.Parse(host)
	return err == nil && (u.Scheme == "ws" || u.Scheme == "wss")
}

func NewConnection(config ConnectionConfig) (MudSocket, error) {
	if IsWebSocketURL(config.Host) {
		socket, err := NewMudWebSocket(config.Host, config.Origin, config.TLSConfig)
		if err != nil {
			return nil, err
		}
		socket.SetSendTimeout(config.SendTimeout)
		return socket, nil
	}

	socket, err := ConnectSocket(config.Host, config.Port, config.TLS, config.TLSConfig)
	if err != nil {
		return nil, err
	}
	socket.SetReadChunkSize(config.ReadChunkSize)
	socket.SetSendTimeout(config.SendTimeout)
	return socket, nil
}
