// Command mcproxy is a transparent Minecraft protocol proxy: it relays
// bytes verbatim between a client and a real server while an observer
// session decodes the same stream for logging, without altering anything
// either side sends.
package main

import (
	"flag"
	"io"
	"log"
	"net"

	ns "github.com/brackenfield/mcclient/net_structures"
	"github.com/brackenfield/mcclient/protocol"
)

func main() {
	listenAddr := flag.String("listen", ":25566", "address to accept client connections on")
	upstream := flag.String("upstream", "127.0.0.1:25565", "real server address to relay to")
	debug := flag.Bool("debug", false, "log every decoded packet")
	flag.Parse()

	ln, err := net.Listen("tcp", *listenAddr)
	if err != nil {
		log.Fatalf("listen on %s: %v", *listenAddr, err)
	}
	log.Printf("mcproxy: listening on %s, relaying to %s", *listenAddr, *upstream)

	for {
		client, err := ln.Accept()
		if err != nil {
			log.Printf("accept: %v", err)
			continue
		}
		go handleConn(client, *upstream, *debug)
	}
}

func handleConn(client net.Conn, upstream string, debug bool) {
	defer client.Close()

	server, err := net.Dial("tcp", upstream)
	if err != nil {
		log.Printf("dial upstream %s: %v", upstream, err)
		return
	}
	defer server.Close()

	log.Printf("relaying %s <-> %s", client.RemoteAddr(), server.RemoteAddr())

	done := make(chan struct{}, 2)
	go relay(client, server, "client->server", newObserver(protocol.Serverbound, debug), done)
	go relay(server, client, "server->client", newObserver(protocol.Clientbound, debug), done)
	<-done
	<-done
}

// relay copies bytes from src to dst unmodified, feeding a copy of every
// chunk through obs purely for decode/logging purposes — obs never
// influences what gets written to dst.
func relay(src io.Reader, dst io.Writer, label string, obs *observer, done chan<- struct{}) {
	defer func() { done <- struct{}{} }()
	buf := make([]byte, 4096)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			chunk := append([]byte{}, buf[:n]...)
			if _, werr := dst.Write(chunk); werr != nil {
				return
			}
			obs.feed(label, chunk)
		}
		if err != nil {
			return
		}
	}
}

// observer decodes one direction's packet stream purely for inspection; it
// holds no connection of its own and is never written back to.
type observer struct {
	bound  protocol.Bound
	state  protocol.State
	framer *protocol.Framer
	debug  bool
}

func newObserver(bound protocol.Bound, debug bool) *observer {
	return &observer{bound: bound, state: protocol.Handshaking, framer: protocol.NewFramer(), debug: debug}
}

func (o *observer) feed(label string, data []byte) {
	o.framer.Feed(data)
	for {
		dp, err := o.framer.Next()
		if err != nil {
			log.Printf("%s: framing error: %v", label, err)
			return
		}
		if dp == nil {
			return
		}

		desc, ok := protocol.Lookup(o.state, o.bound, dp.ID)
		if !ok {
			if o.debug {
				log.Printf("%s: unknown packet id 0x%02X in state %s", label, dp.ID, o.state)
			}
			continue
		}

		pkt := desc.NewFunc()
		if err := pkt.Decode(ns.NewReader(dp.Data)); err != nil {
			log.Printf("%s: decode %s: %v", label, desc.Name, err)
			continue
		}
		if o.debug {
			log.Printf("%s: %s %+v", label, desc.Name, pkt)
		}

		switch p := pkt.(type) {
		case *protocol.Handshake:
			if o.bound == protocol.Serverbound {
				// Intent values (Status=1, Login=2, Transfer=3) line up
				// with State (Status=1, Login=2) except Transfer, which
				// also proceeds through the Login state on the wire.
				if p.NextState == protocol.IntentTransfer {
					o.state = protocol.Login
				} else {
					o.state = protocol.State(p.NextState)
				}
			}
		case *protocol.LoginAcknowledged:
			o.state = protocol.Configuration
		case *protocol.FinishConfiguration:
			// server side sees this; client's own observer flips on
			// AcknowledgeFinishConfiguration below.
		case *protocol.AcknowledgeFinishConfiguration:
			o.state = protocol.Play
		}
	}
}
