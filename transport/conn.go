// Package transport owns the raw TCP connection beneath a protocol session:
// dialing (with Minecraft SRV-record resolution), and an optional
// encryption passthrough that the framing codec and session layer read and
// write through without needing to know whether encryption is enabled.
package transport

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/brackenfield/mcclient/crypto"
)

// Conn wraps a net.Conn with an encryption passthrough. If encryption is
// never enabled (the offline-mode path always leaves it disabled, since
// ENCRYPTION_REQUEST is treated as fatal by the session state machine),
// Read/Write behave as a plain passthrough to the underlying socket.
type Conn struct {
	conn       net.Conn
	encryption *crypto.Encryption
}

// Dial resolves address (optionally via SRV record) and opens a TCP
// connection to a Minecraft server.
func Dial(address string) (*Conn, error) {
	resolved, err := ResolveAddress(address)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve address: %w", err)
	}

	nc, err := net.Dial("tcp", resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", resolved, err)
	}

	return NewConn(nc), nil
}

// NewConn wraps an already-established net.Conn (used by proxy mode, which
// accepts inbound connections rather than dialing out).
func NewConn(nc net.Conn) *Conn {
	return &Conn{
		conn:       nc,
		encryption: crypto.NewEncryption(),
	}
}

// Read implements io.Reader, decrypting in place if encryption is enabled.
func (c *Conn) Read(p []byte) (int, error) {
	n, err := c.conn.Read(p)
	if err != nil {
		return n, err
	}
	if c.encryption.IsEnabled() {
		copy(p[:n], c.encryption.Decrypt(p[:n]))
	}
	return n, nil
}

// Write implements io.Writer, encrypting if encryption is enabled.
func (c *Conn) Write(p []byte) (int, error) {
	data := p
	if c.encryption.IsEnabled() {
		data = c.encryption.Encrypt(p)
	}
	return c.conn.Write(data)
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// NetConn returns the underlying net.Conn.
func (c *Conn) NetConn() net.Conn { return c.conn }

// Encryption returns the encryption passthrough for configuration.
func (c *Conn) Encryption() *crypto.Encryption { return c.encryption }

// LocalAddr returns the local network address.
func (c *Conn) LocalAddr() net.Addr {
	if c.conn == nil {
		return nil
	}
	return c.conn.LocalAddr()
}

// RemoteAddr returns the remote network address.
func (c *Conn) RemoteAddr() net.Addr {
	if c.conn == nil {
		return nil
	}
	return c.conn.RemoteAddr()
}

// ResolveAddress resolves a Minecraft server address using SRV records if
// available, falling back to the default port 25565 when none is
// specified.
func ResolveAddress(address string) (string, error) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		host = address
		port = ""
	}

	if port != "" {
		return net.JoinHostPort(host, port), nil
	}

	_, srvRecords, err := net.LookupSRV("minecraft", "tcp", host)
	if err == nil && len(srvRecords) > 0 {
		srv := srvRecords[0]
		target := strings.TrimSuffix(srv.Target, ".")
		return net.JoinHostPort(target, strconv.Itoa(int(srv.Port))), nil
	}

	return net.JoinHostPort(host, "25565"), nil
}
