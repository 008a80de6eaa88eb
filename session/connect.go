package session

import (
	"fmt"
	"net"
	"strconv"

	ns "github.com/brackenfield/mcclient/net_structures"
	"github.com/brackenfield/mcclient/protocol"
	"github.com/brackenfield/mcclient/transport"
)

// ProtocolVersion is the wire protocol version this module speaks: 769,
// matching game version 1.21.4.
const ProtocolVersion = 769

// Connect dials address, performs the handshake + login handshake (up to
// and including the server's LOGIN_SUCCESS/SET_COMPRESSION exchange), and
// leaves the session ready for Run to take over the Configuration/Play
// dispatch loop. Online-mode servers (which reply with ENCRYPTION_REQUEST)
// are not supported — see player.New's offline-UUID derivation.
func Connect(address, name string) (*Session, error) {
	conn, err := transport.Dial(address)
	if err != nil {
		return nil, err
	}

	s := New(conn, name)
	if err := s.handshakeAndLogin(address); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) handshakeAndLogin(address string) error {
	host, port, err := splitAddress(address)
	if err != nil {
		return err
	}

	if err := s.Send(&protocol.Handshake{
		ProtocolVersion: ProtocolVersion,
		ServerAddress:   ns.String(host),
		ServerPort:      ns.Uint16(port),
		NextState:       protocol.IntentLogin,
	}); err != nil {
		return fmt.Errorf("send handshake: %w", err)
	}
	s.setState(protocol.Login)

	if err := s.Send(&protocol.LoginStart{
		Name:       ns.String(s.Player.Name),
		PlayerUUID: s.Player.UUID,
	}); err != nil {
		return fmt.Errorf("send login start: %w", err)
	}

	// Read raw login-state packets synchronously, outside the worker-pool
	// dispatch loop Run drives later: login is a short, strictly sequential
	// handshake and doesn't need backpressure or concurrent handlers.
	readBuf := make([]byte, 4096)
	for {
		dp, err := s.nextLoginPacket(readBuf)
		if err != nil {
			return err
		}

		desc, ok := protocol.Lookup(protocol.Login, protocol.Clientbound, dp.ID)
		if !ok {
			s.debugf("unknown login packet id 0x%02X, discarding", dp.ID)
			continue
		}

		pkt := desc.NewFunc()
		if err := pkt.Decode(ns.NewReader(dp.Data)); err != nil {
			return fmt.Errorf("decode %s: %w", desc.Name, err)
		}

		switch p := pkt.(type) {
		case *protocol.SetCompression:
			s.setCompression(int(p.Threshold))
		case *protocol.EncryptionRequest:
			return fmt.Errorf("server requires encryption (online-mode login is not supported)")
		case *protocol.DisconnectLogin:
			return fmt.Errorf("disconnected during login: %v", p.Reason)
		case *protocol.LoginSuccess:
			s.Player.Name = string(p.Profile.Username)
			s.Player.UUID = p.Profile.UUID
			if err := s.Send(&protocol.LoginAcknowledged{}); err != nil {
				return fmt.Errorf("send login acknowledged: %w", err)
			}
			s.setState(protocol.Configuration)
			if err := s.Send(defaultClientInformation()); err != nil {
				return fmt.Errorf("send client information: %w", err)
			}
			return nil
		}
	}
}

// nextLoginPacket reads from the connection until one full packet has been
// framed, reusing readBuf as scratch space.
func (s *Session) nextLoginPacket(readBuf []byte) (*protocol.DataPacket, error) {
	for {
		dp, err := s.inFramer.Next()
		if err != nil {
			return nil, fmt.Errorf("framing error: %w", err)
		}
		if dp != nil {
			return dp, nil
		}
		n, err := s.conn.Read(readBuf)
		if n > 0 {
			s.inFramer.Feed(readBuf[:n])
		}
		if err != nil {
			return nil, fmt.Errorf("connection closed during login: %w", err)
		}
	}
}

// splitAddress extracts the host/port pair the handshake packet advertises.
// Unlike transport.ResolveAddress (which may follow an SRV record to a
// different physical host:port), this always reports what the caller typed
// — vanilla clients pass the original virtual-host address through to the
// handshake even when SRV redirected the actual TCP connection.
func splitAddress(address string) (host string, port uint16, err error) {
	h, p, err := net.SplitHostPort(address)
	if err != nil {
		return address, 25565, nil
	}
	n, err := strconv.Atoi(p)
	if err != nil {
		return "", 0, fmt.Errorf("parse port in %q: %w", address, err)
	}
	return h, uint16(n), nil
}
